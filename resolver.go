package vkbind

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Scope is the granularity an entry point address is valid for. GlobalScope
// covers the commands exported by the loader library itself; every instance
// and device gets a scope of its own, which is never reused.
type Scope struct {
	id uint64
}

var GlobalScope = Scope{}

func (s Scope) String() string {
	if s.id == 0 {
		return "global"
	}
	return "scope#" + strconv.FormatUint(s.id, 10)
}

type entryState uint8

const (
	entryUnresolved entryState = iota
	entryResolved
	entryAbsent
)

// EntryPoint is the cached outcome of resolving one command name in one
// scope. An entry moves from unresolved to resolved or absent exactly once.
type EntryPoint struct {
	Name  string
	state entryState
	addr  uintptr
}

// Found reports whether the command has an address in its scope.
func (e EntryPoint) Found() bool { return e.state == entryResolved }

// Resolved reports whether a lookup has been performed at all.
func (e EntryPoint) Resolved() bool { return e.state != entryUnresolved }

// Addr returns the command address, or 0 when absent.
func (e EntryPoint) Addr() uintptr { return e.addr }

// queryFunc asks the native side for one command address; 0 means absent.
type queryFunc func(name string) uintptr

type scopeEntry struct {
	kind   ObjectType
	handle Handle
	query  queryFunc
}

type entryKey struct {
	scope uint64
	name  string
}

type typedKey struct {
	scope uint64
	name  string
	typ   reflect.Type
}

type typedEntry struct {
	fn any
	ok bool
}

// Resolver resolves and caches command addresses. It is safe for
// concurrent use: lookups of different keys never wait on each other, and
// concurrent first lookups of one key share a single native query.
type Resolver struct {
	lib  Library
	bind BindFunc
	log  *zap.Logger

	nextScope atomic.Uint64
	scopes    sync.Map // uint64 -> *scopeEntry
	entries   sync.Map // entryKey -> EntryPoint
	typed     sync.Map // typedKey -> typedEntry
	inflight  singleflight.Group
	queries   atomic.Uint64
}

func newResolver(lib Library, bind BindFunc, log *zap.Logger) *Resolver {
	r := &Resolver{lib: lib, bind: bind, log: log}
	r.scopes.Store(GlobalScope.id, &scopeEntry{query: r.lookupLibrary})
	return r
}

func (r *Resolver) lookupLibrary(name string) uintptr {
	addr, err := r.lib.Lookup(name)
	if err != nil {
		return 0
	}
	return addr
}

// register opens a new scope served by query.
func (r *Resolver) register(kind ObjectType, handle Handle, query queryFunc) Scope {
	s := Scope{id: r.nextScope.Add(1)}
	r.scopes.Store(s.id, &scopeEntry{kind: kind, handle: handle, query: query})
	r.log.Debug("entry point scope opened",
		zap.Stringer("scope", s),
		zap.Stringer("kind", kind),
		zap.Uint64("handle", uint64(handle)))
	return s
}

// Forget drops a scope and every entry cached for it. Resolutions in a
// forgotten scope report absent.
func (r *Resolver) Forget(s Scope) {
	if s == GlobalScope {
		return
	}
	r.scopes.Delete(s.id)
	r.entries.Range(func(k, _ any) bool {
		if k.(entryKey).scope == s.id {
			r.entries.Delete(k)
		}
		return true
	})
	r.typed.Range(func(k, _ any) bool {
		if k.(typedKey).scope == s.id {
			r.typed.Delete(k)
		}
		return true
	})
}

// Queries returns how many native address lookups have been issued.
func (r *Resolver) Queries() uint64 {
	return r.queries.Load()
}

// Resolve returns the entry point for name in scope s. Absent commands are
// cached like present ones; a second lookup never reaches the driver.
func (r *Resolver) Resolve(s Scope, name string) EntryPoint {
	key := entryKey{scope: s.id, name: name}
	if v, ok := r.entries.Load(key); ok {
		return v.(EntryPoint)
	}

	v, _, _ := r.inflight.Do(strconv.FormatUint(s.id, 10)+"/"+name, func() (any, error) {
		if v, ok := r.entries.Load(key); ok {
			return v, nil
		}
		ep := r.query(s, name)
		v, _ := r.entries.LoadOrStore(key, ep)
		return v, nil
	})
	return v.(EntryPoint)
}

func (r *Resolver) query(s Scope, name string) EntryPoint {
	ep := EntryPoint{Name: name, state: entryAbsent}

	v, ok := r.scopes.Load(s.id)
	if !ok {
		r.log.Debug("entry point lookup in unknown scope", zap.Stringer("scope", s), zap.String("name", name))
		return ep
	}

	r.queries.Add(1)
	if addr := v.(*scopeEntry).query(name); addr != 0 {
		ep.state = entryResolved
		ep.addr = addr
		return ep
	}

	r.log.Debug("entry point not found", zap.Stringer("scope", s), zap.String("name", name))
	return ep
}

// ResolveTyped resolves name in scope s and binds it to a Go function of
// type F. Bound functions are cached per function type, so one address may
// be used through several signatures. An absent command yields the zero F
// and false, never a function that would call through a null address.
func ResolveTyped[F any](r *Resolver, s Scope, name string) (F, bool) {
	key := typedKey{scope: s.id, name: name, typ: reflect.TypeFor[F]()}
	if v, ok := r.typed.Load(key); ok {
		e := v.(typedEntry)
		if !e.ok {
			var zero F
			return zero, false
		}
		return e.fn.(F), true
	}

	var fn F
	ep := r.Resolve(s, name)
	e := typedEntry{}
	if ep.Found() {
		r.bind(&fn, ep.Addr())
		e = typedEntry{fn: fn, ok: true}
	}
	v, _ := r.typed.LoadOrStore(key, e)
	e = v.(typedEntry)
	if !e.ok {
		var zero F
		return zero, false
	}
	return e.fn.(F), true
}
