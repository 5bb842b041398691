package vkbind

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
)

// SystemAllocationScope tells a host allocator how long an allocation is
// expected to live.
type SystemAllocationScope int32

const (
	SYSTEM_ALLOCATION_SCOPE_COMMAND  SystemAllocationScope = 0
	SYSTEM_ALLOCATION_SCOPE_OBJECT   SystemAllocationScope = 1
	SYSTEM_ALLOCATION_SCOPE_CACHE    SystemAllocationScope = 2
	SYSTEM_ALLOCATION_SCOPE_DEVICE   SystemAllocationScope = 3
	SYSTEM_ALLOCATION_SCOPE_INSTANCE SystemAllocationScope = 4
)

type InternalAllocationType int32

const (
	INTERNAL_ALLOCATION_TYPE_EXECUTABLE InternalAllocationType = 0
)

// HostAllocator supplies host memory to the driver. Returned memory is
// handed to native code and must not be managed by the Go garbage collector
// (allocate it with mmap, a C allocator or similar). Implementations are
// called from driver threads and must be safe for concurrent use.
type HostAllocator interface {
	Allocate(size, alignment uintptr, scope SystemAllocationScope) unsafe.Pointer
	Reallocate(original unsafe.Pointer, size, alignment uintptr, scope SystemAllocationScope) unsafe.Pointer
	Free(memory unsafe.Pointer)
}

// InternalAllocationNotifier is optionally implemented by a HostAllocator
// that wants to observe allocations the driver makes on its own.
type InternalAllocationNotifier interface {
	InternalAllocation(size uintptr, typ InternalAllocationType, scope SystemAllocationScope)
	InternalFree(size uintptr, typ InternalAllocationType, scope SystemAllocationScope)
}

type nativeAllocationCallbacks struct {
	pUserData             uintptr
	pfnAllocation         uintptr
	pfnReallocation       uintptr
	pfnFree               uintptr
	pfnInternalAllocation uintptr
	pfnInternalFree       uintptr
}

// AllocationCallbacks is the native callback table built from a
// HostAllocator. A nil *AllocationCallbacks means "use the driver's default
// allocator" and is passed to the driver as a null pointer.
//
// The table is immutable once built. It may be shared between any number of
// objects; its host allocator stays reachable from driver callbacks for as
// long as one of those objects is alive.
type AllocationCallbacks struct {
	id     uintptr
	host   HostAllocator
	native *nativeAllocationCallbacks
	refs   atomic.Int64
}

// allocators maps the pUserData ids handed to the driver back to their
// callbacks. A Go pointer is never stored in driver memory.
var (
	allocators   sync.Map // uintptr -> *AllocationCallbacks
	allocatorIdx atomic.Uintptr
)

type trampolines struct {
	allocation         uintptr
	reallocation       uintptr
	free               uintptr
	internalAllocation uintptr
	internalFree       uintptr
}

var (
	newCallback     = purego.NewCallback
	trampolinesOnce sync.Once
	trampolineTable trampolines
)

// The process can only create a bounded number of callbacks, so the five
// entry points are created once and shared by every table.
func callbackTrampolines() trampolines {
	trampolinesOnce.Do(func() {
		trampolineTable = trampolines{
			allocation:         newCallback(allocationTrampoline),
			reallocation:       newCallback(reallocationTrampoline),
			free:               newCallback(freeTrampoline),
			internalAllocation: newCallback(internalAllocationTrampoline),
			internalFree:       newCallback(internalFreeTrampoline),
		}
	})
	return trampolineTable
}

// NewAllocationCallbacks builds a callback table around host. It returns nil
// for a nil host.
func NewAllocationCallbacks(host HostAllocator) *AllocationCallbacks {
	if host == nil {
		return nil
	}
	t := callbackTrampolines()
	c := &AllocationCallbacks{
		id:   allocatorIdx.Add(1),
		host: host,
		native: &nativeAllocationCallbacks{
			pfnAllocation:   t.allocation,
			pfnReallocation: t.reallocation,
			pfnFree:         t.free,
		},
	}
	c.native.pUserData = c.id
	if _, ok := host.(InternalAllocationNotifier); ok {
		c.native.pfnInternalAllocation = t.internalAllocation
		c.native.pfnInternalFree = t.internalFree
	}
	return c
}

// Host returns the allocator the table dispatches to.
func (c *AllocationCallbacks) Host() HostAllocator {
	if c == nil {
		return nil
	}
	return c.host
}

// table returns the pointer to pass to the driver for the duration of one
// call: nil when no allocator is set, never a zeroed table.
func (c *AllocationCallbacks) table(a *callArena) *nativeAllocationCallbacks {
	if c == nil {
		return nil
	}
	a.pin(c.native)
	return c.native
}

// acquire makes the host allocator reachable from the driver. Every object
// created with the table holds one reference.
func (c *AllocationCallbacks) acquire() {
	if c == nil {
		return
	}
	if c.refs.Add(1) == 1 {
		allocators.Store(c.id, c)
	}
}

func (c *AllocationCallbacks) release() {
	if c == nil {
		return
	}
	switch n := c.refs.Add(-1); {
	case n == 0:
		allocators.Delete(c.id)
	case n < 0:
		panic("vkbind: allocation callbacks released more often than acquired")
	}
}

func lookupAllocator(userData uintptr) HostAllocator {
	v, ok := allocators.Load(userData)
	if !ok {
		Logger().DPanic("allocation callback for unregistered allocator")
		return nil
	}
	return v.(*AllocationCallbacks).host
}

func allocationTrampoline(userData, size, alignment, scope uintptr) uintptr {
	host := lookupAllocator(userData)
	if host == nil {
		return 0
	}
	return uintptr(host.Allocate(size, alignment, SystemAllocationScope(int32(scope))))
}

func reallocationTrampoline(userData, original, size, alignment, scope uintptr) uintptr {
	host := lookupAllocator(userData)
	if host == nil {
		return 0
	}
	p := host.Reallocate(unsafe.Pointer(original), size, alignment, SystemAllocationScope(int32(scope)))
	return uintptr(p)
}

func freeTrampoline(userData, memory uintptr) {
	if memory == 0 {
		return
	}
	if host := lookupAllocator(userData); host != nil {
		host.Free(unsafe.Pointer(memory))
	}
}

func internalAllocationTrampoline(userData, size, typ, scope uintptr) {
	if n, ok := lookupAllocator(userData).(InternalAllocationNotifier); ok {
		n.InternalAllocation(size, InternalAllocationType(int32(typ)), SystemAllocationScope(int32(scope)))
	}
}

func internalFreeTrampoline(userData, size, typ, scope uintptr) {
	if n, ok := lookupAllocator(userData).(InternalAllocationNotifier); ok {
		n.InternalFree(size, InternalAllocationType(int32(typ)), SystemAllocationScope(int32(scope)))
	}
}
