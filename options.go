package vkbind

import "go.uber.org/zap"

// Option configures a Loader.
type Option func(*options)

type options struct {
	libraryPath string
	library     Library
	bind        BindFunc
	log         *zap.Logger
}

func defaultOptions() options {
	return options{
		bind: PuregoBinder,
	}
}

// WithLibraryPath loads the driver library from path instead of searching
// the default locations.
func WithLibraryPath(path string) Option {
	return func(o *options) {
		o.libraryPath = path
	}
}

// WithLibrary uses an already loaded library. The Loader does not close it.
func WithLibrary(lib Library) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithBinder replaces the function used to turn resolved addresses into Go
// functions.
func WithBinder(bind BindFunc) Option {
	return func(o *options) {
		if bind != nil {
			o.bind = bind
		}
	}
}

// WithLogger scopes a logger to one Loader and everything created from it.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}
