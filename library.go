package vkbind

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

// Library is a loaded driver loader library.
type Library interface {
	// Lookup returns the address of an exported symbol.
	Lookup(name string) (uintptr, error)
	Close() error
}

// BindFunc installs the native function at addr into the function variable
// fptr points to.
type BindFunc func(fptr any, addr uintptr)

// PuregoBinder binds through purego.RegisterFunc, so no cgo is needed.
func PuregoBinder(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}

const libraryEnv = "VKBIND_LIBRARY"

// libraryCandidates lists what openDefaultLibrary tries, in order.
func libraryCandidates() []string {
	var out []string
	if p := os.Getenv(libraryEnv); p != "" {
		out = append(out, p)
	}
	sdk := os.Getenv("VULKAN_SDK")
	for _, name := range libraryNames {
		out = append(out, name)
		if sdk != "" {
			out = append(out, filepath.Join(sdk, sdkLibraryDir, name))
		}
	}
	return out
}

func openDefaultLibrary() (Library, error) {
	tried := libraryCandidates()
	var last error
	for _, path := range tried {
		lib, err := OpenLibrary(path)
		if err == nil {
			Logger().Debug("loaded vulkan library", zap.String("path", path))
			return lib, nil
		}
		last = err
	}
	err := errors.Wrapf(ErrLibraryNotFound, "tried %s", strings.Join(tried, ", "))
	if last != nil {
		err = errors.WithSecondaryError(err, last)
	}
	return nil, err
}
