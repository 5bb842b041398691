package vkbind

import "github.com/cockroachdb/errors"

type BufferUsageFlags uint32

const (
	BUFFER_USAGE_TRANSFER_SRC_BIT         BufferUsageFlags = 0x00000001
	BUFFER_USAGE_TRANSFER_DST_BIT         BufferUsageFlags = 0x00000002
	BUFFER_USAGE_UNIFORM_TEXEL_BUFFER_BIT BufferUsageFlags = 0x00000004
	BUFFER_USAGE_STORAGE_TEXEL_BUFFER_BIT BufferUsageFlags = 0x00000008
	BUFFER_USAGE_UNIFORM_BUFFER_BIT       BufferUsageFlags = 0x00000010
	BUFFER_USAGE_STORAGE_BUFFER_BIT       BufferUsageFlags = 0x00000020
	BUFFER_USAGE_INDEX_BUFFER_BIT         BufferUsageFlags = 0x00000040
	BUFFER_USAGE_VERTEX_BUFFER_BIT        BufferUsageFlags = 0x00000080
)

type BufferCreateInfo struct {
	Flags              uint32
	Size               uint64
	Usage              BufferUsageFlags
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
}

func (info *BufferCreateInfo) vulkanize(a *callArena) (*nativeBufferCreateInfo, error) {
	if info.Size == 0 {
		return nil, invalidArgument("buffer Size must be greater than zero")
	}
	cInfo := arenaNew[nativeBufferCreateInfo](a)
	cInfo.sType = BUFFER_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.size = info.Size
	cInfo.usage = info.Usage
	cInfo.sharingMode = info.SharingMode

	var err error
	cInfo.queueFamilyIndexCount, cInfo.pQueueFamilyIndices, err = marshalValues[uint32, uint32](a, "QueueFamilyIndices", info.QueueFamilyIndices)
	if err != nil {
		return nil, err
	}
	return cInfo, nil
}

type Buffer struct{ *object }

func (device *Device) CreateBuffer(createInfo *BufferCreateInfo, alloc *AllocationCallbacks) (*Buffer, error) {
	if createInfo == nil {
		return nil, invalidArgument("BufferCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_BUFFER, "vkCreateBuffer", "vkDestroyBuffer", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &Buffer{o}, nil
}

func (buffer *Buffer) MemoryRequirements() (MemoryRequirements, error) {
	return memoryRequirements(buffer.object, "vkGetBufferMemoryRequirements")
}

func (buffer *Buffer) BindMemory(memory *DeviceMemory, offset uint64) error {
	return bindMemory(buffer.object, "vkBindBufferMemory", memory, offset)
}

func memoryRequirements(o *object, name string) (MemoryRequirements, error) {
	fn, err := command[func(device, object Handle, reqs *nativeMemoryRequirements)](o.cmds, name)
	if err != nil {
		return MemoryRequirements{}, err
	}
	a := newCallArena()
	defer a.release()
	reqs := arenaNew[nativeMemoryRequirements](a)
	fn(o.parent, o.handle, reqs)
	return reqs.decode(), nil
}

func bindMemory(o *object, name string, memory *DeviceMemory, offset uint64) error {
	if isNilOwner(memory) {
		return invalidArgument("%s: memory is nil", name)
	}
	fn, err := command[func(device, object, memory Handle, offset uint64) Result](o.cmds, name)
	if err != nil {
		return err
	}
	_, err = check(name, fn(o.parent, o.handle, memory.Handle(), offset))
	return err
}

// CreateBufferWithMemory creates a buffer, allocates memory with the
// requested properties for it and binds the two. On failure nothing is left
// behind.
func (device *Device) CreateBufferWithMemory(createInfo *BufferCreateInfo, properties MemoryPropertyFlags, alloc *AllocationCallbacks) (*Buffer, *DeviceMemory, error) {
	buffer, err := device.CreateBuffer(createInfo, alloc)
	if err != nil {
		return nil, nil, err
	}

	memReqs, err := buffer.MemoryRequirements()
	if err != nil {
		buffer.Dispose()
		return nil, nil, err
	}

	memProps, err := device.physicalDevice.MemoryProperties()
	if err != nil {
		buffer.Dispose()
		return nil, nil, err
	}
	memTypeIndex, found := memProps.FindMemoryType(memReqs.MemoryTypeBits, properties)
	if !found {
		buffer.Dispose()
		return nil, nil, errors.Newf("no memory type with properties %#x for buffer", uint32(properties))
	}

	memory, err := device.AllocateMemory(&MemoryAllocateInfo{
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memTypeIndex,
	}, alloc)
	if err != nil {
		buffer.Dispose()
		return nil, nil, err
	}

	if err := buffer.BindMemory(memory, 0); err != nil {
		memory.Dispose()
		buffer.Dispose()
		return nil, nil, err
	}
	return buffer, memory, nil
}

type BufferViewCreateInfo struct {
	Flags  uint32
	Buffer *Buffer
	Format Format
	Offset uint64
	Range  uint64
}

func (info *BufferViewCreateInfo) vulkanize(a *callArena) (*nativeBufferViewCreateInfo, error) {
	if isNilOwner(info.Buffer) {
		return nil, invalidArgument("BufferViewCreateInfo.Buffer is nil")
	}
	cInfo := arenaNew[nativeBufferViewCreateInfo](a)
	cInfo.sType = BUFFER_VIEW_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.buffer = info.Buffer.Handle()
	cInfo.format = info.Format
	cInfo.offset = info.Offset
	cInfo.rng = info.Range
	return cInfo, nil
}

type BufferView struct{ *object }

func (device *Device) CreateBufferView(createInfo *BufferViewCreateInfo, alloc *AllocationCallbacks) (*BufferView, error) {
	if createInfo == nil {
		return nil, invalidArgument("BufferViewCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_BUFFER_VIEW, "vkCreateBufferView", "vkDestroyBufferView", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &BufferView{o}, nil
}
