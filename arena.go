package vkbind

import "sync"

// arena tracks the live children of one kind under one parent. Children
// refer to their slot by index and generation instead of holding a pointer
// into the parent, so a slot that was freed, reset or closed can never be
// mistaken for the object that used to live there.
type arena struct {
	owner *object
	kind  ObjectType

	mu       sync.Mutex
	slots    []slot
	freeList []uint32
	closed   bool
}

type slot struct {
	gen uint32
	obj *object
}

// slotRef is a child's weak reference to its parent. The zero value belongs
// to root objects, which have no parent and are always structurally valid.
type slotRef struct {
	arena *arena
	index uint32
	gen   uint32
}

func newArena(owner *object, kind ObjectType) *arena {
	return &arena{owner: owner, kind: kind}
}

func (a *arena) insert(obj *object) slotRef {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		// The parent is gone; the ref is born invalid.
		return slotRef{arena: a, index: ^uint32(0)}
	}

	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.slots[idx].obj = obj
		return slotRef{arena: a, index: idx, gen: a.slots[idx].gen}
	}

	a.slots = append(a.slots, slot{obj: obj})
	return slotRef{arena: a, index: uint32(len(a.slots) - 1)}
}

// remove frees the slot r points at, if r still owns it.
func (a *arena) remove(r slotRef) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || int(r.index) >= len(a.slots) || a.slots[r.index].gen != r.gen {
		return
	}
	a.slots[r.index].gen++
	a.slots[r.index].obj = nil
	a.freeList = append(a.freeList, r.index)
}

// reset invalidates every occupied slot at once without closing the arena.
// It models a pool reset: the native side reclaimed every child, and new
// children may be allocated afterwards.
func (a *arena) reset() []*object {
	a.mu.Lock()
	defer a.mu.Unlock()

	var dropped []*object
	for i := range a.slots {
		s := &a.slots[i]
		if s.obj == nil {
			continue
		}
		dropped = append(dropped, s.obj)
		s.gen++
		s.obj = nil
		a.freeList = append(a.freeList, uint32(i))
	}
	return dropped
}

// close invalidates every slot permanently and returns the children that
// were still live.
func (a *arena) close() []*object {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	var live []*object
	for i := range a.slots {
		if a.slots[i].obj != nil {
			live = append(live, a.slots[i].obj)
		}
	}
	a.slots = nil
	a.freeList = nil
	return live
}

func (a *arena) live() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for i := range a.slots {
		if a.slots[i].obj != nil {
			n++
		}
	}
	return n
}

// valid reports whether the slot is still owned by the object that was
// given r, walking up through every ancestor.
func (r slotRef) valid() bool {
	for r.arena != nil {
		a := r.arena
		a.mu.Lock()
		ok := !a.closed && int(r.index) < len(a.slots) && a.slots[r.index].gen == r.gen
		a.mu.Unlock()
		if !ok || a.owner.disposed.Load() {
			return false
		}
		r = a.owner.ref
	}
	return true
}

func (r slotRef) release() {
	if r.arena != nil {
		r.arena.remove(r)
	}
}
