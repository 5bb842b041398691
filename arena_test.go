package vkbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestObject(kind ObjectType, h Handle) *object {
	return &object{handle: h, kind: kind, cmds: &dispatcher{log: Logger()}}
}

func TestArenaInsertAndRemove(t *testing.T) {
	owner := newTestObject(OBJECT_TYPE_DEVICE, 1)
	a := owner.arena(OBJECT_TYPE_FENCE)

	r1 := a.insert(newTestObject(OBJECT_TYPE_FENCE, 10))
	r2 := a.insert(newTestObject(OBJECT_TYPE_FENCE, 11))
	assert.True(t, r1.valid())
	assert.True(t, r2.valid())
	assert.Equal(t, 2, a.live())

	r1.release()
	assert.False(t, r1.valid())
	assert.True(t, r2.valid())
	assert.Equal(t, 1, a.live())

	// The freed slot is reused with a new generation; the stale ref stays
	// invalid.
	r3 := a.insert(newTestObject(OBJECT_TYPE_FENCE, 12))
	assert.Equal(t, r1.index, r3.index)
	assert.NotEqual(t, r1.gen, r3.gen)
	assert.False(t, r1.valid())
	assert.True(t, r3.valid())

	// Releasing a stale ref must not free the new occupant.
	r1.release()
	assert.True(t, r3.valid())
}

func TestArenaReset(t *testing.T) {
	pool := newTestObject(OBJECT_TYPE_DESCRIPTOR_POOL, 1)
	a := pool.arena(OBJECT_TYPE_DESCRIPTOR_SET)
	before := []slotRef{
		a.insert(newTestObject(OBJECT_TYPE_DESCRIPTOR_SET, 10)),
		a.insert(newTestObject(OBJECT_TYPE_DESCRIPTOR_SET, 11)),
	}

	dropped := a.reset()
	assert.Len(t, dropped, 2)
	for _, r := range before {
		assert.False(t, r.valid())
	}

	after := a.insert(newTestObject(OBJECT_TYPE_DESCRIPTOR_SET, 12))
	assert.True(t, after.valid())
	assert.Equal(t, 1, a.live())
}

func TestArenaClose(t *testing.T) {
	owner := newTestObject(OBJECT_TYPE_DEVICE, 1)
	a := owner.arena(OBJECT_TYPE_BUFFER)
	r := a.insert(newTestObject(OBJECT_TYPE_BUFFER, 10))

	live := a.close()
	require.Len(t, live, 1)
	assert.Equal(t, Handle(10), live[0].handle)
	assert.False(t, r.valid())
	assert.Nil(t, a.close())

	// Children inserted after the close are born invalid.
	late := a.insert(newTestObject(OBJECT_TYPE_BUFFER, 11))
	assert.False(t, late.valid())
}

func TestSlotRefWalksOwnerChain(t *testing.T) {
	instance := newTestObject(OBJECT_TYPE_INSTANCE, 1)
	device := newTestObject(OBJECT_TYPE_DEVICE, 2)
	device.ref = instance.arena(OBJECT_TYPE_DEVICE).insert(device)
	pool := newTestObject(OBJECT_TYPE_COMMAND_POOL, 3)
	pool.ref = device.arena(OBJECT_TYPE_COMMAND_POOL).insert(pool)
	cmd := newTestObject(OBJECT_TYPE_COMMAND_BUFFER, 4)
	cmd.ref = pool.arena(OBJECT_TYPE_COMMAND_BUFFER).insert(cmd)
	require.True(t, cmd.ref.valid())

	// Invalidating the grandparent invalidates the whole subtree.
	instance.disposed.Store(true)
	assert.False(t, device.ref.valid())
	assert.False(t, pool.ref.valid())
	assert.False(t, cmd.ref.valid())
}

func TestRootRefIsValid(t *testing.T) {
	assert.True(t, slotRef{}.valid())
	slotRef{}.release()
}
