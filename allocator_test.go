package vkbind

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHost hands out Go memory. That is only sound because the trampolines
// are called directly from the tests, never by a driver.
type testHost struct {
	mu     sync.Mutex
	live   map[uintptr][]byte
	scopes []SystemAllocationScope
	frees  int
}

func newTestHost() *testHost {
	return &testHost{live: make(map[uintptr][]byte)}
}

func (h *testHost) Allocate(size, _ uintptr, scope SystemAllocationScope) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := make([]byte, size)
	p := unsafe.Pointer(&buf[0])
	h.live[uintptr(p)] = buf
	h.scopes = append(h.scopes, scope)
	return p
}

func (h *testHost) Reallocate(original unsafe.Pointer, size, alignment uintptr, scope SystemAllocationScope) unsafe.Pointer {
	p := h.Allocate(size, alignment, scope)
	h.mu.Lock()
	defer h.mu.Unlock()
	copy(h.live[uintptr(p)], h.live[uintptr(original)])
	delete(h.live, uintptr(original))
	return p
}

func (h *testHost) Free(memory unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.live, uintptr(memory))
	h.frees++
}

func (h *testHost) liveCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

type notifyingHost struct {
	*testHost
	internal int64
}

func (h *notifyingHost) InternalAllocation(size uintptr, _ InternalAllocationType, _ SystemAllocationScope) {
	h.internal += int64(size)
}

func (h *notifyingHost) InternalFree(size uintptr, _ InternalAllocationType, _ SystemAllocationScope) {
	h.internal -= int64(size)
}

func TestNilAllocationCallbacks(t *testing.T) {
	var cb *AllocationCallbacks
	assert.Nil(t, NewAllocationCallbacks(nil))
	assert.Nil(t, cb.Host())

	a := newCallArena()
	defer a.release()
	assert.Nil(t, cb.table(a))

	cb.acquire()
	cb.release()
}

func TestTrampolinesDispatchToHost(t *testing.T) {
	host := newTestHost()
	cb := NewAllocationCallbacks(host)
	require.NotNil(t, cb)
	assert.Same(t, host, cb.Host())
	assert.NotZero(t, cb.native.pfnAllocation)
	assert.Zero(t, cb.native.pfnInternalAllocation)

	cb.acquire()
	defer cb.release()
	id := cb.native.pUserData

	p := allocationTrampoline(id, 64, 16, uintptr(SYSTEM_ALLOCATION_SCOPE_OBJECT))
	require.NotZero(t, p)
	assert.Equal(t, 1, host.liveCount())

	q := reallocationTrampoline(id, p, 128, 16, uintptr(SYSTEM_ALLOCATION_SCOPE_OBJECT))
	require.NotZero(t, q)
	assert.Equal(t, 1, host.liveCount())

	freeTrampoline(id, q)
	freeTrampoline(id, 0)
	assert.Zero(t, host.liveCount())
	assert.Equal(t, 1, host.frees)
	assert.Equal(t, []SystemAllocationScope{SYSTEM_ALLOCATION_SCOPE_OBJECT, SYSTEM_ALLOCATION_SCOPE_OBJECT}, host.scopes)
}

func TestReleasedCallbacksAreUnregistered(t *testing.T) {
	host := newTestHost()
	cb := NewAllocationCallbacks(host)

	cb.acquire()
	cb.acquire()
	cb.release()
	assert.NotZero(t, allocationTrampoline(cb.native.pUserData, 8, 8, 0))

	cb.release()
	assert.Zero(t, allocationTrampoline(cb.native.pUserData, 8, 8, 0))
	assert.Equal(t, 1, host.liveCount())
}

func TestReleaseUnderflowPanics(t *testing.T) {
	cb := NewAllocationCallbacks(newTestHost())
	assert.Panics(t, cb.release)
}

func TestInternalAllocationNotifier(t *testing.T) {
	host := &notifyingHost{testHost: newTestHost()}
	cb := NewAllocationCallbacks(host)
	assert.NotZero(t, cb.native.pfnInternalAllocation)
	assert.NotZero(t, cb.native.pfnInternalFree)

	cb.acquire()
	defer cb.release()
	internalAllocationTrampoline(cb.native.pUserData, 256, uintptr(INTERNAL_ALLOCATION_TYPE_EXECUTABLE), uintptr(SYSTEM_ALLOCATION_SCOPE_DEVICE))
	assert.EqualValues(t, 256, host.internal)
	internalFreeTrampoline(cb.native.pUserData, 256, uintptr(INTERNAL_ALLOCATION_TYPE_EXECUTABLE), uintptr(SYSTEM_ALLOCATION_SCOPE_DEVICE))
	assert.Zero(t, host.internal)
}

func TestTablesShareTrampolines(t *testing.T) {
	a := NewAllocationCallbacks(newTestHost())
	b := NewAllocationCallbacks(newTestHost())
	assert.NotEqual(t, a.native.pUserData, b.native.pUserData)
	assert.Equal(t, a.native.pfnAllocation, b.native.pfnAllocation)
	assert.Equal(t, a.native.pfnFree, b.native.pfnFree)
}

func TestObjectsHoldAllocatorReferences(t *testing.T) {
	s := newFakeSession(t)
	cb := NewAllocationCallbacks(newTestHost())

	fence, err := s.device.CreateFence(nil, cb)
	require.NoError(t, err)
	sem, err := s.device.CreateSemaphore(nil, cb)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cb.refs.Load())

	fence.Dispose()
	assert.EqualValues(t, 1, cb.refs.Load())

	// Objects invalidated with their parent release their reference too.
	s.device.Dispose()
	assert.True(t, sem.Disposed())
	assert.Zero(t, cb.refs.Load())
	_, registered := allocators.Load(cb.id)
	assert.False(t, registered)
}
