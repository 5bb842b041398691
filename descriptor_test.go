package vkbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDescriptorPool(t *testing.T, s *fakeSession, flags DescriptorPoolCreateFlags) (*DescriptorPool, *DescriptorSetLayout) {
	t.Helper()
	layout, err := s.device.CreateDescriptorSetLayout(&DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{
			Binding:         0,
			DescriptorType:  DESCRIPTOR_TYPE_UNIFORM_BUFFER,
			DescriptorCount: 1,
			StageFlags:      SHADER_STAGE_COMPUTE_BIT,
		}},
	}, nil)
	require.NoError(t, err)
	pool, err := s.device.CreateDescriptorPool(&DescriptorPoolCreateInfo{
		Flags:     flags,
		MaxSets:   4,
		PoolSizes: []DescriptorPoolSize{{Type: DESCRIPTOR_TYPE_UNIFORM_BUFFER, DescriptorCount: 4}},
	}, nil)
	require.NoError(t, err)
	return pool, layout
}

func TestDescriptorPoolValidation(t *testing.T) {
	s := newFakeSession(t)

	_, err := s.device.CreateDescriptorPool(&DescriptorPoolCreateInfo{MaxSets: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.device.CreateDescriptorPool(&DescriptorPoolCreateInfo{
		PoolSizes: []DescriptorPoolSize{{Type: DESCRIPTOR_TYPE_SAMPLER, DescriptorCount: 1}},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.device.CreateDescriptorPool(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Zero(t, s.driver.callCount("vkCreateDescriptorPool"))
}

func TestDescriptorSetLayoutImmutableSamplers(t *testing.T) {
	s := newFakeSession(t)
	sampler, err := s.device.CreateSampler(&SamplerCreateInfo{}, nil)
	require.NoError(t, err)

	_, err = s.device.CreateDescriptorSetLayout(&DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{
			DescriptorType:    DESCRIPTOR_TYPE_SAMPLER,
			DescriptorCount:   2,
			ImmutableSamplers: []*Sampler{sampler},
		}},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, s.driver.callCount("vkCreateDescriptorSetLayout"))

	layout, err := s.device.CreateDescriptorSetLayout(&DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{
			DescriptorType:    DESCRIPTOR_TYPE_SAMPLER,
			DescriptorCount:   1,
			ImmutableSamplers: []*Sampler{sampler},
		}},
	}, nil)
	require.NoError(t, err)
	assert.True(t, layout.Valid())
}

func TestDescriptorSetDisposeFreesOnlyWithFreeFlag(t *testing.T) {
	s := newFakeSession(t)

	freeable, layout := newTestDescriptorPool(t, s, DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT)
	assert.True(t, freeable.CanFree())
	sets, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: freeable,
		SetLayouts:     []*DescriptorSetLayout{layout, layout},
	})
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Same(t, freeable, sets[0].Pool())

	sets[0].Dispose()
	assert.Equal(t, 1, s.driver.callCount("vkFreeDescriptorSets"))
	rec, ok := s.driver.destroyRecord(sets[0].Handle())
	require.True(t, ok)
	assert.Equal(t, "descriptor set", rec.kind)
	assert.True(t, sets[1].Valid())

	fixed, _ := newTestDescriptorPool(t, s, 0)
	assert.False(t, fixed.CanFree())
	kept, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: fixed,
		SetLayouts:     []*DescriptorSetLayout{layout},
	})
	require.NoError(t, err)

	kept[0].Dispose()
	assert.True(t, kept[0].Disposed())
	assert.Equal(t, 1, s.driver.callCount("vkFreeDescriptorSets"))
}

func TestDescriptorPoolResetInvalidatesSets(t *testing.T) {
	s := newFakeSession(t)
	pool, layout := newTestDescriptorPool(t, s, DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT)
	before, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []*DescriptorSetLayout{layout},
	})
	require.NoError(t, err)

	require.NoError(t, pool.Reset())
	assert.False(t, before[0].Valid())

	// The driver already reclaimed the set.
	before[0].Dispose()
	assert.Zero(t, s.driver.callCount("vkFreeDescriptorSets"))

	after, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []*DescriptorSetLayout{layout},
	})
	require.NoError(t, err)
	assert.True(t, after[0].Valid())
	assert.Equal(t, 1, pool.liveChildren(OBJECT_TYPE_DESCRIPTOR_SET))
}

func TestDescriptorPoolDisposeReclaimsSetsSilently(t *testing.T) {
	s := newFakeSession(t)
	pool, layout := newTestDescriptorPool(t, s, DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT)
	sets, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []*DescriptorSetLayout{layout},
	})
	require.NoError(t, err)

	pool.Dispose()
	assert.False(t, sets[0].Valid())
	sets[0].Dispose()
	assert.Zero(t, s.driver.callCount("vkFreeDescriptorSets"))
	assert.Empty(t, s.logs.FilterMessage("child still alive when its parent was disposed").All())
}

func TestAllocateDescriptorSetsValidation(t *testing.T) {
	s := newFakeSession(t)
	pool, layout := newTestDescriptorPool(t, s, 0)

	_, err := s.device.AllocateDescriptorSets(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{SetLayouts: []*DescriptorSetLayout{layout}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{DescriptorPool: pool})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{DescriptorPool: pool, SetLayouts: []*DescriptorSetLayout{nil}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, s.driver.callCount("vkAllocateDescriptorSets"))
}

func TestUpdateDescriptorSets(t *testing.T) {
	s := newFakeSession(t)
	pool, layout := newTestDescriptorPool(t, s, 0)
	sets, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []*DescriptorSetLayout{layout, layout},
	})
	require.NoError(t, err)
	buffer, err := s.device.CreateBuffer(&BufferCreateInfo{Size: 256, Usage: BUFFER_USAGE_UNIFORM_BUFFER_BIT}, nil)
	require.NoError(t, err)

	require.NoError(t, s.device.UpdateDescriptorSets(nil, nil))
	assert.Zero(t, s.driver.callCount("vkUpdateDescriptorSets"))

	write := WriteDescriptorSet{
		DstSet:         sets[0],
		DescriptorType: DESCRIPTOR_TYPE_UNIFORM_BUFFER,
		BufferInfo:     []DescriptorBufferInfo{{Buffer: buffer, Range: WHOLE_SIZE}},
	}
	copySet := CopyDescriptorSet{SrcSet: sets[0], DstSet: sets[1], DescriptorCount: 1}
	require.NoError(t, s.device.UpdateDescriptorSets([]WriteDescriptorSet{write}, []CopyDescriptorSet{copySet}))
	assert.Equal(t, 1, s.driver.callCount("vkUpdateDescriptorSets"))
}

func TestWriteDescriptorSetNeedsOnePayload(t *testing.T) {
	s := newFakeSession(t)
	pool, layout := newTestDescriptorPool(t, s, 0)
	sets, err := s.device.AllocateDescriptorSets(&DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []*DescriptorSetLayout{layout},
	})
	require.NoError(t, err)
	buffer, err := s.device.CreateBuffer(&BufferCreateInfo{Size: 256}, nil)
	require.NoError(t, err)
	view, err := s.device.CreateBufferView(&BufferViewCreateInfo{Buffer: buffer, Range: WHOLE_SIZE}, nil)
	require.NoError(t, err)

	cases := map[string]WriteDescriptorSet{
		"none": {DstSet: sets[0]},
		"two": {
			DstSet:           sets[0],
			BufferInfo:       []DescriptorBufferInfo{{Buffer: buffer}},
			TexelBufferViews: []*BufferView{view},
		},
		"nil set":    {BufferInfo: []DescriptorBufferInfo{{Buffer: buffer}}},
		"nil buffer": {DstSet: sets[0], BufferInfo: []DescriptorBufferInfo{{}}},
	}
	for name, write := range cases {
		t.Run(name, func(t *testing.T) {
			err := s.device.UpdateDescriptorSets([]WriteDescriptorSet{write}, nil)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Zero(t, s.driver.callCount("vkUpdateDescriptorSets"))
}
