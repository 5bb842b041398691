package vkbind

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPoolRequiresCreateInfo(t *testing.T) {
	s := newFakeSession(t)
	_, err := s.device.CreateCommandPool(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, s.driver.callCount("vkCreateCommandPool"))
}

func TestAllocateAndFreeCommandBuffers(t *testing.T) {
	s := newFakeSession(t)
	pool, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{QueueFamilyIndex: 0}, nil)
	require.NoError(t, err)

	_, err = pool.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	cmds, err := pool.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 3)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	for _, cmd := range cmds {
		assert.Same(t, pool, cmd.Pool())
		assert.Equal(t, COMMAND_BUFFER_LEVEL_PRIMARY, cmd.Level())
		rec, ok := s.driver.object(cmd.Handle())
		require.True(t, ok)
		assert.Equal(t, pool.Handle(), rec.parent)
	}
	assert.Equal(t, 3, pool.liveChildren(OBJECT_TYPE_COMMAND_BUFFER))

	cmds[1].Dispose()
	cmds[1].Dispose()
	assert.Equal(t, 1, s.driver.callCount("vkFreeCommandBuffers"))
	assert.Equal(t, 2, pool.liveChildren(OBJECT_TYPE_COMMAND_BUFFER))

	// The rest go back with the pool, without individual frees or leak
	// reports.
	pool.Dispose()
	assert.False(t, cmds[0].Valid())
	cmds[0].Dispose()
	assert.Equal(t, 1, s.driver.callCount("vkFreeCommandBuffers"))
	assert.Empty(t, s.logs.FilterMessage("child still alive when its parent was disposed").All())
}

func TestCommandPoolResetKeepsBuffers(t *testing.T) {
	s := newFakeSession(t)
	pool, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{}, nil)
	require.NoError(t, err)
	cmds, err := pool.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 1)
	require.NoError(t, err)

	require.NoError(t, cmds[0].Begin(nil))
	require.NoError(t, cmds[0].End())
	require.NoError(t, pool.Reset(COMMAND_POOL_RESET_RELEASE_RESOURCES_BIT))
	assert.True(t, cmds[0].Valid())

	require.NoError(t, cmds[0].Begin(&CommandBufferBeginInfo{Flags: COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT}))
	cmds[0].Dispose()
	assert.Equal(t, 1, s.driver.callCount("vkFreeCommandBuffers"))
}

func TestSecondaryCommandBufferNeedsInheritance(t *testing.T) {
	var seen *nativeCommandBufferInheritanceInfo
	s := newFakeSession(t, func(d *fakeDriver) {
		d.on(levelDevice, "vkBeginCommandBuffer", func(_ Handle, info *nativeCommandBufferBeginInfo) Result {
			if info.pInheritanceInfo != nil {
				copied := *info.pInheritanceInfo
				seen = &copied
			}
			return SUCCESS
		})
	})
	pool, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{}, nil)
	require.NoError(t, err)
	cmds, err := pool.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_SECONDARY, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, cmds[0].Begin(nil), ErrInvalidArgument)
	assert.Zero(t, s.driver.callCount("vkBeginCommandBuffer"))

	require.NoError(t, cmds[0].Begin(&CommandBufferBeginInfo{
		InheritanceInfo: &CommandBufferInheritanceInfo{Subpass: 2, OcclusionQueryEnable: true},
	}))
	require.NotNil(t, seen)
	assert.Equal(t, COMMAND_BUFFER_INHERITANCE_INFO, seen.sType)
	assert.EqualValues(t, 2, seen.subpass)
	assert.Equal(t, TRUE, seen.occlusionQueryEnable)
}

func TestCommandBufferResetNeedsPoolFlag(t *testing.T) {
	s := newFakeSession(t)
	plain, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{}, nil)
	require.NoError(t, err)
	resettable, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{Flags: COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT}, nil)
	require.NoError(t, err)

	a, err := plain.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 1)
	require.NoError(t, err)
	b, err := resettable.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, a[0].Reset(0), ErrInvalidArgument)
	require.NoError(t, b[0].Reset(COMMAND_BUFFER_RESET_RELEASE_RESOURCES_BIT))
	assert.Equal(t, 1, s.driver.callCount("vkResetCommandBuffer"))
}

func TestCmdClearColorImage(t *testing.T) {
	var (
		gotImage  Handle
		gotLayout ImageLayout
		gotColor  [4]uint32
		gotRanges []nativeImageSubresourceRange
	)
	s := newFakeSession(t, func(d *fakeDriver) {
		d.on(levelDevice, "vkCmdClearColorImage", func(_, image Handle, layout ImageLayout, color *[4]uint32, count uint32, ranges *nativeImageSubresourceRange) {
			gotImage, gotLayout, gotColor = image, layout, *color
			gotRanges = append([]nativeImageSubresourceRange(nil), unsafe.Slice(ranges, count)...)
		})
	})
	pool, err := s.device.CreateCommandPool(&CommandPoolCreateInfo{}, nil)
	require.NoError(t, err)
	cmds, err := pool.AllocateCommandBuffers(COMMAND_BUFFER_LEVEL_PRIMARY, 1)
	require.NoError(t, err)
	image, err := s.device.CreateImage(&ImageCreateInfo{
		ImageType: IMAGE_TYPE_2D,
		Format:    FORMAT_R8G8B8A8_UNORM,
		Extent:    Extent3D{Width: 16, Height: 16, Depth: 1},
		Usage:     IMAGE_USAGE_TRANSFER_DST_BIT,
	}, nil)
	require.NoError(t, err)

	cmd := cmds[0]
	whole := ImageSubresourceRange{AspectMask: IMAGE_ASPECT_COLOR_BIT, LevelCount: 1, LayerCount: 1}
	assert.ErrorIs(t, cmd.CmdClearColorImage(nil, IMAGE_LAYOUT_GENERAL, ClearColorFloat32(0, 0, 0, 1), []ImageSubresourceRange{whole}), ErrInvalidArgument)
	assert.ErrorIs(t, cmd.CmdClearColorImage(image, IMAGE_LAYOUT_GENERAL, ClearColorFloat32(0, 0, 0, 1), nil), ErrInvalidArgument)
	assert.Zero(t, s.driver.callCount("vkCmdClearColorImage"))

	require.NoError(t, cmd.CmdClearColorImage(image, IMAGE_LAYOUT_TRANSFER_DST_OPTIMAL, ClearColorFloat32(0.25, 0.5, 0.75, 1), []ImageSubresourceRange{whole}))
	assert.Equal(t, image.Handle(), gotImage)
	assert.Equal(t, IMAGE_LAYOUT_TRANSFER_DST_OPTIMAL, gotLayout)
	assert.Equal(t, [4]uint32{
		math.Float32bits(0.25), math.Float32bits(0.5), math.Float32bits(0.75), math.Float32bits(1),
	}, gotColor)
	require.Len(t, gotRanges, 1)
	assert.EqualValues(t, 1, gotRanges[0].layerCount)
}

func TestClearColorConstructors(t *testing.T) {
	assert.Equal(t, [4]uint32{1, 2, 3, 4}, ClearColorUint32(1, 2, 3, 4).bits)
	assert.Equal(t, [4]uint32{math.MaxUint32, 0, 1, 0}, ClearColorInt32(-1, 0, 1, 0).bits)
}
