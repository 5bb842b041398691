package vkbind

type PipelineStageFlags uint32

const (
	PIPELINE_STAGE_TOP_OF_PIPE_BIT    PipelineStageFlags = 0x00000001
	PIPELINE_STAGE_DRAW_INDIRECT_BIT  PipelineStageFlags = 0x00000002
	PIPELINE_STAGE_VERTEX_INPUT_BIT   PipelineStageFlags = 0x00000004
	PIPELINE_STAGE_COMPUTE_SHADER_BIT PipelineStageFlags = 0x00000800
	PIPELINE_STAGE_TRANSFER_BIT       PipelineStageFlags = 0x00001000
	PIPELINE_STAGE_BOTTOM_OF_PIPE_BIT PipelineStageFlags = 0x00002000
	PIPELINE_STAGE_ALL_COMMANDS_BIT   PipelineStageFlags = 0x00010000
)

// Queue is retrieved from a device and lives as long as it does.
type Queue struct {
	handle Handle
	device *Device
	family uint32
	index  uint32
}

func (queue *Queue) Handle() Handle {
	if queue == nil {
		return NullHandle
	}
	return queue.handle
}

func (queue *Queue) Device() *Device     { return queue.device }
func (queue *Queue) FamilyIndex() uint32 { return queue.family }
func (queue *Queue) Index() uint32       { return queue.index }

// SubmitInfo describes one batch. WaitDstStageMask pairs element by
// element with WaitSemaphores and must have the same length.
type SubmitInfo struct {
	WaitSemaphores   []*Semaphore
	WaitDstStageMask []PipelineStageFlags
	CommandBuffers   []*CommandBuffer
	SignalSemaphores []*Semaphore
}

func (info *SubmitInfo) vulkanize(a *callArena, cInfo *nativeSubmitInfo) error {
	if err := pairedLengths("WaitSemaphores", len(info.WaitSemaphores), "WaitDstStageMask", len(info.WaitDstStageMask)); err != nil {
		return err
	}
	cInfo.sType = SUBMIT_INFO

	var err error
	if cInfo.waitSemaphoreCount, cInfo.pWaitSemaphores, err = marshalHandles(a, "WaitSemaphores", info.WaitSemaphores); err != nil {
		return err
	}
	if _, cInfo.pWaitDstStageMask, err = marshalValues[PipelineStageFlags, PipelineStageFlags](a, "WaitDstStageMask", info.WaitDstStageMask); err != nil {
		return err
	}
	if cInfo.commandBufferCount, cInfo.pCommandBuffers, err = marshalHandles(a, "CommandBuffers", info.CommandBuffers); err != nil {
		return err
	}
	if cInfo.signalSemaphoreCount, cInfo.pSignalSemaphores, err = marshalHandles(a, "SignalSemaphores", info.SignalSemaphores); err != nil {
		return err
	}
	return nil
}

// Submit queues the batches for execution. fence may be nil. Wrapper
// handles are read when the call is made, not when submits was built.
func (queue *Queue) Submit(submits []SubmitInfo, fence *Fence) error {
	const name = "vkQueueSubmit"
	fn, err := command[func(queue Handle, count uint32, submits *nativeSubmitInfo, fence Handle) Result](queue.device.cmds, name)
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	count, cSubmits, err := marshalSlice(a, "submits", submits, (*SubmitInfo).vulkanize)
	if err != nil {
		return err
	}
	_, err = check(name, fn(queue.handle, count, cSubmits, optionalHandle(fence)))
	return err
}

func (queue *Queue) WaitIdle() error {
	fn, err := command[func(queue Handle) Result](queue.device.cmds, "vkQueueWaitIdle")
	if err != nil {
		return err
	}
	_, err = check("vkQueueWaitIdle", fn(queue.handle))
	return err
}
