package vkbind

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// dispatcher carries what every object needs to reach its commands: the
// shared resolver, the scope its commands resolve in and the logger.
// Children of an instance or device share their root's dispatcher.
type dispatcher struct {
	resolver *Resolver
	scope    Scope
	log      *zap.Logger
}

// command resolves name in the dispatcher's scope as a function of type F.
func command[F any](d *dispatcher, name string) (F, error) {
	fn, ok := ResolveTyped[F](d.resolver, d.scope, name)
	if !ok {
		return fn, unavailable(name)
	}
	return fn, nil
}

// Object is implemented by every disposable wrapper.
type Object interface {
	Handle() Handle
	Kind() ObjectType
	Valid() bool
	Dispose()
}

// object is the ownership record behind every disposable wrapper.
//
// Calling any method other than Dispose on a disposed object, or on an
// object whose parent was disposed, is undefined behaviour at the driver
// level and is not checked. Dispose itself is always safe: it is idempotent
// and never issues a destroy call for an object the driver already
// reclaimed.
type object struct {
	handle Handle
	kind   ObjectType
	parent Handle
	ref    slotRef
	alloc  *AllocationCallbacks
	cmds   *dispatcher

	teardown  func(*object)
	ownsScope bool
	disposed  atomic.Bool

	arenasMu sync.Mutex
	arenas   map[ObjectType]*arena
}

// Handle returns the raw native handle.
func (o *object) Handle() Handle {
	if o == nil {
		return NullHandle
	}
	return o.handle
}

// Kind returns the native object type.
func (o *object) Kind() ObjectType { return o.kind }

// Allocator returns the callbacks captured when the object was created.
// They are the ones its destroy call receives.
func (o *object) Allocator() *AllocationCallbacks { return o.alloc }

// Disposed reports whether Dispose ran, or the object was invalidated along
// with its parent.
func (o *object) Disposed() bool { return o.disposed.Load() }

// Valid reports whether the object may still be used: it was not disposed,
// its parent chain is alive, and its pool was not reset since it was
// allocated.
func (o *object) Valid() bool {
	return !o.disposed.Load() && o.ref.valid()
}

func (o *object) logger() *zap.Logger {
	return o.cmds.log.With(zap.Stringer("kind", o.kind), zap.Uint64("handle", uint64(o.handle)))
}

func (o *object) arena(kind ObjectType) *arena {
	o.arenasMu.Lock()
	defer o.arenasMu.Unlock()

	if o.arenas == nil {
		o.arenas = make(map[ObjectType]*arena)
	}
	a, ok := o.arenas[kind]
	if !ok {
		a = newArena(o, kind)
		if o.disposed.Load() {
			a.close()
		}
		o.arenas[kind] = a
	}
	return a
}

func (o *object) closeArenas() []*object {
	o.arenasMu.Lock()
	arenas := o.arenas
	o.arenas = nil
	o.arenasMu.Unlock()

	var live []*object
	for _, a := range arenas {
		live = append(live, a.close()...)
	}
	return live
}

// liveChildren counts children of kind that were neither disposed nor
// invalidated.
func (o *object) liveChildren(kind ObjectType) int {
	o.arenasMu.Lock()
	a := o.arenas[kind]
	o.arenasMu.Unlock()
	if a == nil {
		return 0
	}
	return a.live()
}

func newRoot(kind ObjectType, h Handle, alloc *AllocationCallbacks, cmds *dispatcher, teardown func(*object)) *object {
	o := &object{handle: h, kind: kind, alloc: alloc, cmds: cmds, teardown: teardown}
	o.logger().Debug("object created")
	return o
}

// child records a new object owned by o. The allocator reference must
// already be acquired.
func (o *object) child(kind ObjectType, h Handle, alloc *AllocationCallbacks, teardown func(*object)) *object {
	c := &object{handle: h, kind: kind, parent: o.handle, alloc: alloc, cmds: o.cmds, teardown: teardown}
	c.ref = o.arena(kind).insert(c)
	c.logger().Debug("object created")
	return c
}

// Dispose destroys the native object with the allocator captured at its
// creation. Children still alive become invalid; the driver reclaims pool
// allocated ones, anything else is reported as leaked. Repeated calls do
// nothing.
func (o *object) Dispose() {
	if o == nil || !o.disposed.CompareAndSwap(false, true) {
		return
	}
	log := o.logger()

	for _, c := range o.closeArenas() {
		if !c.kind.poolAllocated() {
			log.Warn("child still alive when its parent was disposed",
				zap.Stringer("child_kind", c.kind),
				zap.Uint64("child_handle", uint64(c.handle)))
		}
		c.orphan()
	}

	switch {
	case o.ref.valid():
		if o.teardown != nil {
			o.teardown(o)
		}
		log.Debug("object destroyed")
	case o.kind.poolAllocated():
		log.Debug("object already reclaimed by its pool")
	default:
		log.Warn("skipping destroy of an object whose parent is gone")
	}

	o.ref.release()
	o.finish()
}

// orphan marks o and its whole subtree disposed without native calls.
func (o *object) orphan() {
	if !o.disposed.CompareAndSwap(false, true) {
		return
	}
	for _, c := range o.closeArenas() {
		c.orphan()
	}
	o.finish()
}

func (o *object) finish() {
	o.alloc.release()
	if o.ownsScope {
		o.cmds.resolver.Forget(o.cmds.scope)
	}
}

// pfnCreate is the shape of every vkCreate* command.
type pfnCreate[N any] func(parent Handle, info *N, alloc *nativeAllocationCallbacks, out *Handle) Result

// pfnDestroy is the shape of every vkDestroy* command taking a parent.
type pfnDestroy func(parent Handle, h Handle, alloc *nativeAllocationCallbacks)

// pfnDestroyRoot is the shape of vkDestroyInstance and vkDestroyDevice.
type pfnDestroyRoot func(h Handle, alloc *nativeAllocationCallbacks)

func destroyWith(fn pfnDestroy) func(*object) {
	return func(o *object) {
		a := newCallArena()
		defer a.release()
		fn(o.parent, o.handle, o.alloc.table(a))
	}
}

func destroyRootWith(fn pfnDestroyRoot) func(*object) {
	return func(o *object) {
		a := newCallArena()
		defer a.release()
		fn(o.handle, o.alloc.table(a))
	}
}

// create runs one vkCreate* command under p. Both entry points are resolved
// before anything is marshaled, so an object is never created without a way
// to destroy it. A nil alloc inherits p's allocator. On any failure no
// object exists and every temporary allocation is released.
func create[N any](p *object, kind ObjectType, createName, destroyName string, alloc *AllocationCallbacks, build func(*callArena) (*N, error)) (*object, error) {
	createFn, err := command[pfnCreate[N]](p.cmds, createName)
	if err != nil {
		return nil, err
	}
	destroyFn, err := command[pfnDestroy](p.cmds, destroyName)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = p.alloc
	}

	a := newCallArena()
	defer a.release()

	info, err := build(a)
	if err != nil {
		return nil, errors.Wrap(err, createName)
	}

	var h Handle
	alloc.acquire()
	if r := createFn(p.handle, info, alloc.table(a), &h); r != SUCCESS {
		alloc.release()
		return nil, driverError(createName, r)
	}
	return p.child(kind, h, alloc, destroyWith(destroyFn)), nil
}

func isNilOwner[H handleOwner](h H) bool {
	v := reflect.ValueOf(h)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
