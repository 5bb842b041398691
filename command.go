package vkbind

import "go.uber.org/zap"

type CommandPoolCreateFlags uint32

const (
	COMMAND_POOL_CREATE_TRANSIENT_BIT            CommandPoolCreateFlags = 0x00000001
	COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT CommandPoolCreateFlags = 0x00000002
)

type CommandPoolResetFlags uint32

const (
	COMMAND_POOL_RESET_RELEASE_RESOURCES_BIT CommandPoolResetFlags = 0x00000001
)

type CommandBufferLevel int32

const (
	COMMAND_BUFFER_LEVEL_PRIMARY   CommandBufferLevel = 0
	COMMAND_BUFFER_LEVEL_SECONDARY CommandBufferLevel = 1
)

type CommandBufferUsageFlags uint32

const (
	COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT      CommandBufferUsageFlags = 0x00000001
	COMMAND_BUFFER_USAGE_RENDER_PASS_CONTINUE_BIT CommandBufferUsageFlags = 0x00000002
	COMMAND_BUFFER_USAGE_SIMULTANEOUS_USE_BIT     CommandBufferUsageFlags = 0x00000004
)

type CommandBufferResetFlags uint32

const (
	COMMAND_BUFFER_RESET_RELEASE_RESOURCES_BIT CommandBufferResetFlags = 0x00000001
)

// Command Pool

type CommandPoolCreateInfo struct {
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

func (info *CommandPoolCreateInfo) vulkanize(a *callArena) (*nativeCommandPoolCreateInfo, error) {
	cInfo := arenaNew[nativeCommandPoolCreateInfo](a)
	cInfo.sType = COMMAND_POOL_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.queueFamilyIndex = info.QueueFamilyIndex
	return cInfo, nil
}

// CommandPool owns the command buffers allocated from it. Resetting the
// pool keeps its buffers alive; disposing it invalidates them.
type CommandPool struct {
	*object
	flags CommandPoolCreateFlags
}

func (device *Device) CreateCommandPool(createInfo *CommandPoolCreateInfo, alloc *AllocationCallbacks) (*CommandPool, error) {
	if createInfo == nil {
		return nil, invalidArgument("CommandPoolCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_COMMAND_POOL, "vkCreateCommandPool", "vkDestroyCommandPool", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &CommandPool{object: o, flags: createInfo.Flags}, nil
}

// Reset returns every command buffer of the pool to the initial state.
func (pool *CommandPool) Reset(flags CommandPoolResetFlags) error {
	const name = "vkResetCommandPool"
	fn, err := command[func(device, pool Handle, flags CommandPoolResetFlags) Result](pool.cmds, name)
	if err != nil {
		return err
	}
	_, err = check(name, fn(pool.parent, pool.handle, flags))
	return err
}

// Command Buffer Allocation

// AllocateCommandBuffers allocates count buffers of level from the pool.
// Disposing a buffer frees it back to the pool; buffers still alive when
// the pool is disposed are reclaimed with it.
func (pool *CommandPool) AllocateCommandBuffers(level CommandBufferLevel, count uint32) ([]*CommandBuffer, error) {
	const name = "vkAllocateCommandBuffers"
	if count == 0 {
		return nil, invalidArgument("command buffer count must be greater than zero")
	}
	allocFn, err := command[func(device Handle, info *nativeCommandBufferAllocateInfo, buffers *Handle) Result](pool.cmds, name)
	if err != nil {
		return nil, err
	}
	freeFn, err := command[func(device, pool Handle, count uint32, buffers *Handle)](pool.cmds, "vkFreeCommandBuffers")
	if err != nil {
		return nil, err
	}
	device := pool.parent
	teardown := func(o *object) {
		a := newCallArena()
		defer a.release()
		h := arenaNew[Handle](a)
		*h = o.handle
		freeFn(device, o.parent, 1, h)
	}

	a := newCallArena()
	defer a.release()

	cInfo := arenaNew[nativeCommandBufferAllocateInfo](a)
	cInfo.sType = COMMAND_BUFFER_ALLOCATE_INFO
	cInfo.commandPool = pool.handle
	cInfo.level = level
	cInfo.commandBufferCount = count

	handles, pBuffers := arenaSlice[Handle](a, int(count))
	if r := allocFn(device, cInfo, pBuffers); r != SUCCESS {
		return nil, driverError(name, r)
	}

	buffers := make([]*CommandBuffer, len(handles))
	for i, h := range handles {
		buffers[i] = &CommandBuffer{
			object: pool.child(OBJECT_TYPE_COMMAND_BUFFER, h, nil, teardown),
			pool:   pool,
			level:  level,
		}
	}
	pool.logger().Debug("command buffers allocated", zap.Uint32("count", count))
	return buffers, nil
}

// Command Buffer Recording

// CommandBufferInheritanceInfo describes the state a secondary command
// buffer inherits from the primary that executes it.
type CommandBufferInheritanceInfo struct {
	RenderPass           Handle
	Subpass              uint32
	Framebuffer          Handle
	OcclusionQueryEnable bool
	QueryFlags           uint32
	PipelineStatistics   uint32
}

func (info *CommandBufferInheritanceInfo) vulkanize(a *callArena) *nativeCommandBufferInheritanceInfo {
	if info == nil {
		return nil
	}
	cInfo := arenaNew[nativeCommandBufferInheritanceInfo](a)
	cInfo.sType = COMMAND_BUFFER_INHERITANCE_INFO
	cInfo.renderPass = info.RenderPass
	cInfo.subpass = info.Subpass
	cInfo.framebuffer = info.Framebuffer
	cInfo.occlusionQueryEnable = boolean(info.OcclusionQueryEnable)
	cInfo.queryFlags = info.QueryFlags
	cInfo.pipelineStatistics = info.PipelineStatistics
	return cInfo
}

type CommandBufferBeginInfo struct {
	Flags           CommandBufferUsageFlags
	InheritanceInfo *CommandBufferInheritanceInfo
}

func (info *CommandBufferBeginInfo) vulkanize(a *callArena) *nativeCommandBufferBeginInfo {
	cInfo := arenaNew[nativeCommandBufferBeginInfo](a)
	cInfo.sType = COMMAND_BUFFER_BEGIN_INFO
	cInfo.flags = info.Flags
	cInfo.pInheritanceInfo = info.InheritanceInfo.vulkanize(a)
	return cInfo
}

type CommandBuffer struct {
	*object
	pool  *CommandPool
	level CommandBufferLevel
}

func (cmd *CommandBuffer) Pool() *CommandPool        { return cmd.pool }
func (cmd *CommandBuffer) Level() CommandBufferLevel { return cmd.level }

// Begin starts recording. A nil beginInfo records with no usage flags.
func (cmd *CommandBuffer) Begin(beginInfo *CommandBufferBeginInfo) error {
	const name = "vkBeginCommandBuffer"
	if beginInfo == nil {
		beginInfo = &CommandBufferBeginInfo{}
	}
	if beginInfo.InheritanceInfo == nil && cmd.level == COMMAND_BUFFER_LEVEL_SECONDARY {
		return invalidArgument("secondary command buffers need InheritanceInfo")
	}
	fn, err := command[func(cmd Handle, info *nativeCommandBufferBeginInfo) Result](cmd.cmds, name)
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	_, err = check(name, fn(cmd.handle, beginInfo.vulkanize(a)))
	return err
}

func (cmd *CommandBuffer) End() error {
	const name = "vkEndCommandBuffer"
	fn, err := command[func(cmd Handle) Result](cmd.cmds, name)
	if err != nil {
		return err
	}
	_, err = check(name, fn(cmd.handle))
	return err
}

// Reset returns the buffer to the initial state. The pool must have been
// created with COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT.
func (cmd *CommandBuffer) Reset(flags CommandBufferResetFlags) error {
	const name = "vkResetCommandBuffer"
	if cmd.pool.flags&COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT == 0 {
		return invalidArgument("command pool was not created with COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT")
	}
	fn, err := command[func(cmd Handle, flags CommandBufferResetFlags) Result](cmd.cmds, name)
	if err != nil {
		return err
	}
	_, err = check(name, fn(cmd.handle, flags))
	return err
}
