package vkbind

import "unsafe"

// Pipeline Layout

type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

func (r *PushConstantRange) vulkanize(_ *callArena, out *nativePushConstantRange) error {
	if r.Size == 0 || r.Size%4 != 0 || r.Offset%4 != 0 {
		return invalidArgument("push constant range offset %d size %d must be non-empty multiples of 4", r.Offset, r.Size)
	}
	out.stageFlags = r.StageFlags
	out.offset = r.Offset
	out.size = r.Size
	return nil
}

type PipelineLayoutCreateInfo struct {
	Flags              uint32
	SetLayouts         []*DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

func (info *PipelineLayoutCreateInfo) vulkanize(a *callArena) (*nativePipelineLayoutCreateInfo, error) {
	cInfo := arenaNew[nativePipelineLayoutCreateInfo](a)
	cInfo.sType = PIPELINE_LAYOUT_CREATE_INFO
	cInfo.flags = info.Flags

	var err error
	cInfo.setLayoutCount, cInfo.pSetLayouts, err = marshalHandles(a, "SetLayouts", info.SetLayouts)
	if err != nil {
		return nil, err
	}
	cInfo.pushConstantRangeCount, cInfo.pPushConstantRanges, err = marshalSlice(a, "PushConstantRanges", info.PushConstantRanges, (*PushConstantRange).vulkanize)
	if err != nil {
		return nil, err
	}
	return cInfo, nil
}

type PipelineLayout struct{ *object }

func (device *Device) CreatePipelineLayout(createInfo *PipelineLayoutCreateInfo, alloc *AllocationCallbacks) (*PipelineLayout, error) {
	if createInfo == nil {
		createInfo = &PipelineLayoutCreateInfo{}
	}
	o, err := create(device.object, OBJECT_TYPE_PIPELINE_LAYOUT, "vkCreatePipelineLayout", "vkDestroyPipelineLayout", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &PipelineLayout{o}, nil
}

// Pipeline Cache

type PipelineCacheCreateInfo struct {
	Flags uint32
	// InitialData is a blob previously returned by PipelineCache.Data. The
	// driver ignores data it does not recognise.
	InitialData []byte
}

func (info *PipelineCacheCreateInfo) vulkanize(a *callArena) (*nativePipelineCacheCreateInfo, error) {
	cInfo := arenaNew[nativePipelineCacheCreateInfo](a)
	cInfo.sType = PIPELINE_CACHE_CREATE_INFO
	cInfo.flags = info.Flags
	if len(info.InitialData) > 0 {
		data, first := arenaSlice[byte](a, len(info.InitialData))
		copy(data, info.InitialData)
		cInfo.initialDataSize = uintptr(len(data))
		cInfo.pInitialData = unsafe.Pointer(first)
	}
	return cInfo, nil
}

type PipelineCache struct{ *object }

func (device *Device) CreatePipelineCache(createInfo *PipelineCacheCreateInfo, alloc *AllocationCallbacks) (*PipelineCache, error) {
	if createInfo == nil {
		createInfo = &PipelineCacheCreateInfo{}
	}
	o, err := create(device.object, OBJECT_TYPE_PIPELINE_CACHE, "vkCreatePipelineCache", "vkDestroyPipelineCache", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &PipelineCache{o}, nil
}

// Data returns the cache contents for persisting between runs.
func (cache *PipelineCache) Data() ([]byte, error) {
	const name = "vkGetPipelineCacheData"
	fn, err := command[func(device, cache Handle, size *uintptr, data *byte) Result](cache.cmds, name)
	if err != nil {
		return nil, err
	}
	return enumerate(name, func(size *uintptr, data *byte) Result {
		return fn(cache.parent, cache.handle, size, data)
	})
}
