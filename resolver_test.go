package vkbind

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingQuery serves a fixed table and counts native lookups per name.
type countingQuery struct {
	mu    sync.Mutex
	addrs map[string]uintptr
	calls map[string]int
	gate  chan struct{}
}

func newCountingQuery(addrs map[string]uintptr) *countingQuery {
	return &countingQuery{addrs: addrs, calls: make(map[string]int)}
}

func (q *countingQuery) query(name string) uintptr {
	if q.gate != nil {
		<-q.gate
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls[name]++
	return q.addrs[name]
}

func (q *countingQuery) count(name string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls[name]
}

func newTestResolver(t *testing.T) (*Resolver, *fakeDriver) {
	d := newFakeDriver(t)
	return newResolver(d, d.bind, zap.NewNop()), d
}

func TestResolveCachesPresentCommands(t *testing.T) {
	r, _ := newTestResolver(t)
	q := newCountingQuery(map[string]uintptr{"vkCreateFence": 0x100})
	s := r.register(OBJECT_TYPE_DEVICE, 1, q.query)

	ep := r.Resolve(s, "vkCreateFence")
	assert.True(t, ep.Found())
	assert.True(t, ep.Resolved())
	assert.Equal(t, uintptr(0x100), ep.Addr())
	assert.Equal(t, "vkCreateFence", ep.Name)

	r.Resolve(s, "vkCreateFence")
	assert.Equal(t, 1, q.count("vkCreateFence"))
	assert.Equal(t, uint64(1), r.Queries())
}

func TestResolveCachesAbsentCommands(t *testing.T) {
	r, _ := newTestResolver(t)
	q := newCountingQuery(nil)
	s := r.register(OBJECT_TYPE_INSTANCE, 1, q.query)

	for range 3 {
		ep := r.Resolve(s, "vkCreateRayTracingPipelinesKHR")
		assert.False(t, ep.Found())
		assert.True(t, ep.Resolved())
		assert.Zero(t, ep.Addr())
	}
	assert.Equal(t, 1, q.count("vkCreateRayTracingPipelinesKHR"))
}

func TestResolveGlobalScopeUsesLibrary(t *testing.T) {
	r, d := newTestResolver(t)

	assert.True(t, r.Resolve(GlobalScope, "vkCreateInstance").Found())
	assert.False(t, r.Resolve(GlobalScope, "vkNoSuchCommand").Found())
	r.Resolve(GlobalScope, "vkCreateInstance")
	r.Resolve(GlobalScope, "vkNoSuchCommand")
	assert.Equal(t, int64(2), d.lookups.Load())
}

func TestScopesAreIndependent(t *testing.T) {
	r, _ := newTestResolver(t)
	a := newCountingQuery(map[string]uintptr{"vkQueueSubmit": 0xa})
	b := newCountingQuery(map[string]uintptr{"vkQueueSubmit": 0xb})
	sa := r.register(OBJECT_TYPE_DEVICE, 1, a.query)
	sb := r.register(OBJECT_TYPE_DEVICE, 2, b.query)
	require.NotEqual(t, sa, sb)

	assert.Equal(t, uintptr(0xa), r.Resolve(sa, "vkQueueSubmit").Addr())
	assert.Equal(t, uintptr(0xb), r.Resolve(sb, "vkQueueSubmit").Addr())
}

func TestForgetDropsScope(t *testing.T) {
	r, _ := newTestResolver(t)
	q := newCountingQuery(map[string]uintptr{"vkDeviceWaitIdle": 0x10})
	s := r.register(OBJECT_TYPE_DEVICE, 1, q.query)
	require.True(t, r.Resolve(s, "vkDeviceWaitIdle").Found())

	r.Forget(s)
	ep := r.Resolve(s, "vkDeviceWaitIdle")
	assert.False(t, ep.Found())
	assert.Equal(t, 1, q.count("vkDeviceWaitIdle"))

	// The global scope cannot be forgotten.
	r.Forget(GlobalScope)
	assert.True(t, r.Resolve(GlobalScope, "vkCreateInstance").Found())
}

func TestConcurrentFirstResolutionIssuesOneQuery(t *testing.T) {
	r, _ := newTestResolver(t)
	q := newCountingQuery(map[string]uintptr{"vkCreateBuffer": 0x42})
	q.gate = make(chan struct{})
	s := r.register(OBJECT_TYPE_DEVICE, 1, q.query)

	const workers = 32
	var (
		wg    sync.WaitGroup
		ready sync.WaitGroup
		found atomic.Int32
	)
	ready.Add(workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ready.Done()
			if r.Resolve(s, "vkCreateBuffer").Addr() == 0x42 {
				found.Add(1)
			}
		}()
	}
	ready.Wait()
	close(q.gate)
	wg.Wait()

	assert.Equal(t, int32(workers), found.Load())
	assert.Equal(t, 1, q.count("vkCreateBuffer"))
}

func TestResolveTyped(t *testing.T) {
	r, d := newTestResolver(t)

	fn, ok := ResolveTyped[func(*uint32) Result](r, GlobalScope, "vkEnumerateInstanceVersion")
	require.True(t, ok)
	var v uint32
	assert.Equal(t, SUCCESS, fn(&v))
	assert.Equal(t, ApiVersion_1_3, v)

	// A second request of the same type is served from the typed cache.
	_, ok = ResolveTyped[func(*uint32) Result](r, GlobalScope, "vkEnumerateInstanceVersion")
	require.True(t, ok)
	assert.Equal(t, int64(1), d.lookups.Load())
}

func TestResolveTypedAbsentReturnsZero(t *testing.T) {
	r, _ := newTestResolver(t)

	fn, ok := ResolveTyped[func() Result](r, GlobalScope, "vkNoSuchCommand")
	assert.False(t, ok)
	assert.Nil(t, fn)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", GlobalScope.String())
	assert.Equal(t, "scope#3", Scope{id: 3}.String())
}
