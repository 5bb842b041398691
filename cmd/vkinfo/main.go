// Command vkinfo prints what the installed Vulkan driver reports: the
// instance version, layers and extensions, and for every physical device
// its properties, queue families and memory heaps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/NOT-REAL-GAMES/vkbind"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	var (
		libPath    = flag.String("lib", "", "Path to the Vulkan loader library (default: search)")
		verbose    = flag.Bool("v", false, "Log driver calls to stderr")
		plain      = flag.Bool("plain", false, "Disable colors")
		extensions = flag.Bool("ext", false, "List instance and device extensions")
	)
	flag.Parse()

	styled := !*plain && term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Stdout, *libPath, *verbose, *extensions, styled); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if styled {
			msg = errorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

type printer struct {
	w      io.Writer
	styled bool
}

func (p printer) title(s string) {
	if p.styled {
		s = titleStyle.Render(s)
	}
	fmt.Fprintln(p.w, s)
}

func (p printer) field(indent int, key string, value any) {
	k, v := key+":", fmt.Sprint(value)
	if p.styled {
		k, v = keyStyle.Render(k), valueStyle.Render(v)
	}
	fmt.Fprintf(p.w, "%s%s %s\n", strings.Repeat("  ", indent), k, v)
}

func run(w io.Writer, libPath string, verbose, listExtensions, styled bool) error {
	log := zap.NewNop()
	if verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
	}
	vkbind.SetLogger(log)

	opts := []vkbind.Option{vkbind.WithLogger(log)}
	if libPath != "" {
		opts = append(opts, vkbind.WithLibraryPath(libPath))
	}
	loader, err := vkbind.Load(opts...)
	if err != nil {
		return err
	}
	defer loader.Close()

	p := printer{w: w, styled: styled}

	version, err := loader.EnumerateInstanceVersion()
	if err != nil {
		return err
	}
	p.title("Instance")
	p.field(1, "version", formatVersion(version))

	layers, err := loader.EnumerateInstanceLayerProperties()
	if err != nil {
		return err
	}
	p.field(1, "layers", len(layers))
	for _, l := range layers {
		p.field(2, l.LayerName, fmt.Sprintf("%s (spec %s)", l.Description, formatVersion(l.SpecVersion)))
	}

	if listExtensions {
		exts, err := loader.EnumerateInstanceExtensionProperties("")
		if err != nil {
			return err
		}
		p.field(1, "extensions", len(exts))
		for _, e := range exts {
			p.field(2, e.ExtensionName, e.SpecVersion)
		}
	}

	instance, err := loader.CreateInstance(&vkbind.InstanceCreateInfo{
		ApplicationInfo: &vkbind.ApplicationInfo{
			ApplicationName: "vkinfo",
			EngineName:      "vkbind",
			ApiVersion:      version,
		},
	}, nil)
	if err != nil {
		return err
	}
	defer instance.Dispose()

	devices, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}
	for i, pd := range devices {
		if err := printDevice(p, i, pd, listExtensions); err != nil {
			return err
		}
	}
	return nil
}

func printDevice(p printer, index int, pd *vkbind.PhysicalDevice, listExtensions bool) error {
	props, err := pd.Properties()
	if err != nil {
		return err
	}
	p.title(fmt.Sprintf("GPU %d: %s", index, props.DeviceName))
	p.field(1, "type", props.DeviceType)
	p.field(1, "api version", formatVersion(props.ApiVersion))
	p.field(1, "vendor", fmt.Sprintf("%#04x", props.VendorID))
	p.field(1, "device", fmt.Sprintf("%#04x", props.DeviceID))

	families, err := pd.QueueFamilyProperties()
	if err != nil {
		return err
	}
	p.field(1, "queue families", len(families))
	for i, f := range families {
		p.field(2, fmt.Sprintf("family %d", i), fmt.Sprintf("%d queues, %s", f.QueueCount, formatQueueFlags(f.QueueFlags)))
	}

	mem, err := pd.MemoryProperties()
	if err != nil {
		return err
	}
	p.field(1, "memory heaps", len(mem.MemoryHeaps))
	for i, h := range mem.MemoryHeaps {
		local := ""
		if h.Flags&vkbind.MEMORY_HEAP_DEVICE_LOCAL_BIT != 0 {
			local = ", device local"
		}
		p.field(2, fmt.Sprintf("heap %d", i), formatBytes(h.Size)+local)
	}

	if listExtensions {
		exts, err := pd.EnumerateDeviceExtensionProperties("")
		if err != nil {
			return err
		}
		p.field(1, "extensions", len(exts))
		for _, e := range exts {
			p.field(2, e.ExtensionName, e.SpecVersion)
		}
	}
	return nil
}

func formatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", vkbind.ApiVersionMajor(v), vkbind.ApiVersionMinor(v), vkbind.ApiVersionPatch(v))
}

func formatQueueFlags(f vkbind.QueueFlags) string {
	var names []string
	for _, q := range []struct {
		bit  vkbind.QueueFlags
		name string
	}{
		{vkbind.QUEUE_GRAPHICS_BIT, "graphics"},
		{vkbind.QUEUE_COMPUTE_BIT, "compute"},
		{vkbind.QUEUE_TRANSFER_BIT, "transfer"},
		{vkbind.QUEUE_SPARSE_BINDING_BIT, "sparse"},
	} {
		if f&q.bit != 0 {
			names = append(names, q.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
