//go:build windows

package vkbind

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var libraryNames = []string{"vulkan-1.dll"}

const sdkLibraryDir = "Bin"

type dllLibrary struct {
	path   string
	handle windows.Handle
}

// OpenLibrary loads the DLL at path.
func OpenLibrary(path string) (Library, error) {
	var flags uintptr
	if filepath.IsAbs(path) {
		flags = windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS | windows.LOAD_LIBRARY_SEARCH_DLL_LOAD_DIR
	}
	h, err := windows.LoadLibraryEx(path, 0, flags)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadLibraryEx %s", path)
	}
	return &dllLibrary{path: path, handle: h}, nil
}

func (l *dllLibrary) Lookup(name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0, errors.Wrapf(err, "GetProcAddress %s in %s", name, l.path)
	}
	return addr, nil
}

func (l *dllLibrary) Close() error {
	if l.handle == 0 {
		return nil
	}
	h := l.handle
	l.handle = 0
	return windows.FreeLibrary(h)
}
