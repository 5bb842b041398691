package vkbind

import (
	"sync"

	"go.uber.org/zap"
)

// Loader is the entry into the driver: it owns the loaded library, the
// process-wide command table and the entry point resolver every object
// created from it shares.
type Loader struct {
	lib      Library
	ownsLib  bool
	resolver *Resolver
	cmds     *dispatcher
}

// Load opens the driver library and returns a Loader for it. Without
// WithLibrary or WithLibraryPath the library is searched for in
// $VKBIND_LIBRARY, the platform's default names and $VULKAN_SDK.
func Load(opts ...Option) (*Loader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lib, owns := o.library, false
	if lib == nil {
		var err error
		if o.libraryPath != "" {
			lib, err = OpenLibrary(o.libraryPath)
		} else {
			lib, err = openDefaultLibrary()
		}
		if err != nil {
			return nil, err
		}
		owns = true
	}

	l := newLoader(lib, o)
	l.ownsLib = owns
	return l, nil
}

// NewLoader wraps an already loaded library. The library is not closed by
// Close.
func NewLoader(lib Library, opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newLoader(lib, o)
}

func newLoader(lib Library, o options) *Loader {
	log := o.log
	if log == nil {
		log = Logger()
	}
	r := newResolver(lib, o.bind, log)
	return &Loader{
		lib:      lib,
		resolver: r,
		cmds:     &dispatcher{resolver: r, scope: GlobalScope, log: log},
	}
}

var (
	defaultLoader     *Loader
	defaultLoaderErr  error
	defaultLoaderOnce sync.Once
)

// Default returns the process-wide Loader, loading the library on first use.
// The outcome, success or failure, is fixed for the life of the process; it
// is never closed.
func Default() (*Loader, error) {
	defaultLoaderOnce.Do(func() {
		defaultLoader, defaultLoaderErr = Load()
	})
	return defaultLoader, defaultLoaderErr
}

// Close unloads the library if the Loader opened it. Objects created from
// the Loader must be disposed first.
func (l *Loader) Close() error {
	if !l.ownsLib {
		return nil
	}
	l.ownsLib = false
	return l.lib.Close()
}

// Resolver returns the entry point resolver shared by every object created
// from this Loader.
func (l *Loader) Resolver() *Resolver { return l.resolver }

type ExtensionProperties struct {
	ExtensionName string
	SpecVersion   uint32
}

func (p *nativeExtensionProperties) decode() ExtensionProperties {
	return ExtensionProperties{
		ExtensionName: decodeFixed(p.extensionName[:]),
		SpecVersion:   p.specVersion,
	}
}

type LayerProperties struct {
	LayerName             string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

func (p *nativeLayerProperties) decode() LayerProperties {
	return LayerProperties{
		LayerName:             decodeFixed(p.layerName[:]),
		SpecVersion:           p.specVersion,
		ImplementationVersion: p.implementationVersion,
		Description:           decodeFixed(p.description[:]),
	}
}

// EnumerateInstanceVersion returns the instance-level API version. A 1.0
// loader does not export the query at all and reports 1.0.0.
func (l *Loader) EnumerateInstanceVersion() (uint32, error) {
	fn, ok := ResolveTyped[func(version *uint32) Result](l.resolver, GlobalScope, "vkEnumerateInstanceVersion")
	if !ok {
		return ApiVersion_1_0, nil
	}
	var version uint32
	if _, err := check("vkEnumerateInstanceVersion", fn(&version)); err != nil {
		return 0, err
	}
	return version, nil
}

// EnumerateInstanceExtensionProperties lists the instance extensions, either
// those of the implementation and implicit layers (layer == "") or those of
// one layer.
func (l *Loader) EnumerateInstanceExtensionProperties(layer string) ([]ExtensionProperties, error) {
	const name = "vkEnumerateInstanceExtensionProperties"
	fn, err := command[func(layer *byte, count *uint32, props *nativeExtensionProperties) Result](l.cmds, name)
	if err != nil {
		return nil, err
	}

	a := newCallArena()
	defer a.release()
	pLayer, err := a.cstring("layer", layer, true)
	if err != nil {
		return nil, err
	}

	props, err := enumerate(name, func(count *uint32, out *nativeExtensionProperties) Result {
		return fn(pLayer, count, out)
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(props, (*nativeExtensionProperties).decode), nil
}

// EnumerateInstanceLayerProperties lists the available layers.
func (l *Loader) EnumerateInstanceLayerProperties() ([]LayerProperties, error) {
	const name = "vkEnumerateInstanceLayerProperties"
	fn, err := command[func(count *uint32, props *nativeLayerProperties) Result](l.cmds, name)
	if err != nil {
		return nil, err
	}
	props, err := enumerate(name, fn)
	if err != nil {
		return nil, err
	}
	return decodeAll(props, (*nativeLayerProperties).decode), nil
}

// CreateInstance creates the root object of a driver session. alloc, which
// may be nil, becomes the default allocator of every descendant.
func (l *Loader) CreateInstance(info *InstanceCreateInfo, alloc *AllocationCallbacks) (*Instance, error) {
	if info == nil {
		info = &InstanceCreateInfo{}
	}
	createFn, err := command[func(info *nativeInstanceCreateInfo, alloc *nativeAllocationCallbacks, out *Handle) Result](l.cmds, "vkCreateInstance")
	if err != nil {
		return nil, err
	}
	destroyFn, err := command[pfnDestroyRoot](l.cmds, "vkDestroyInstance")
	if err != nil {
		return nil, err
	}
	getProcAddr, err := command[func(instance Handle, name *byte) uintptr](l.cmds, "vkGetInstanceProcAddr")
	if err != nil {
		return nil, err
	}

	a := newCallArena()
	defer a.release()

	cInfo, err := info.vulkanize(a)
	if err != nil {
		return nil, err
	}

	var h Handle
	alloc.acquire()
	if r := createFn(cInfo, alloc.table(a), &h); r != SUCCESS {
		alloc.release()
		return nil, driverError("vkCreateInstance", r)
	}

	scope := l.resolver.register(OBJECT_TYPE_INSTANCE, h, procAddrQuery(getProcAddr, h))
	cmds := &dispatcher{resolver: l.resolver, scope: scope, log: l.cmds.log}
	o := newRoot(OBJECT_TYPE_INSTANCE, h, alloc, cmds, destroyRootWith(destroyFn))
	o.ownsScope = true
	o.logger().Debug("instance created", zap.Uint32("api_version", info.apiVersion()))
	return &Instance{object: o, loader: l, getProcAddr: getProcAddr}, nil
}

// procAddrQuery adapts vkGetInstanceProcAddr and vkGetDeviceProcAddr to the
// resolver.
func procAddrQuery(fn func(Handle, *byte) uintptr, h Handle) queryFunc {
	return func(name string) uintptr {
		a := newCallArena()
		defer a.release()
		p, err := a.cstring("name", name, false)
		if err != nil {
			return 0
		}
		return fn(h, p)
	}
}

func decodeAll[N, T any](in []N, decode func(*N) T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	for i := range in {
		out[i] = decode(&in[i])
	}
	return out
}
