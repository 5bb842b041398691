//go:build unix

package vkbind

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/ebitengine/purego"
)

var libraryNames = func() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libvulkan.1.dylib", "libvulkan.dylib", "libMoltenVK.dylib"}
	}
	return []string{"libvulkan.so.1", "libvulkan.so"}
}()

const sdkLibraryDir = "lib"

type dlLibrary struct {
	path   string
	handle uintptr
}

// OpenLibrary loads the shared library at path.
func OpenLibrary(path string) (Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrapf(err, "dlopen %s", path)
	}
	return &dlLibrary{path: path, handle: h}, nil
}

func (l *dlLibrary) Lookup(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, errors.Wrapf(err, "dlsym %s in %s", name, l.path)
	}
	return addr, nil
}

func (l *dlLibrary) Close() error {
	if l.handle == 0 {
		return nil
	}
	h := l.handle
	l.handle = 0
	return purego.Dlclose(h)
}
