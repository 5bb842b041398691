package vkbind

import "unsafe"

// WHOLE_SIZE maps or binds from an offset to the end of the allocation.
const WHOLE_SIZE uint64 = ^uint64(0)

type MemoryAllocateInfo struct {
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

func (r *nativeMemoryRequirements) decode() MemoryRequirements {
	return MemoryRequirements{Size: r.size, Alignment: r.alignment, MemoryTypeBits: r.memoryTypeBits}
}

// DeviceMemory is a device allocation. Disposing it frees the memory with
// the allocator it was allocated with.
type DeviceMemory struct{ *object }

func (device *Device) AllocateMemory(allocInfo *MemoryAllocateInfo, alloc *AllocationCallbacks) (*DeviceMemory, error) {
	if allocInfo == nil || allocInfo.AllocationSize == 0 {
		return nil, invalidArgument("AllocationSize must be greater than zero")
	}
	o, err := create(device.object, OBJECT_TYPE_DEVICE_MEMORY, "vkAllocateMemory", "vkFreeMemory", alloc,
		func(a *callArena) (*nativeMemoryAllocateInfo, error) {
			cInfo := arenaNew[nativeMemoryAllocateInfo](a)
			cInfo.sType = MEMORY_ALLOCATE_INFO
			cInfo.allocationSize = allocInfo.AllocationSize
			cInfo.memoryTypeIndex = allocInfo.MemoryTypeIndex
			return cInfo, nil
		})
	if err != nil {
		return nil, err
	}
	return &DeviceMemory{o}, nil
}

// Map maps a range of host-visible memory and returns its address. size
// may be WHOLE_SIZE.
func (memory *DeviceMemory) Map(offset, size uint64) (unsafe.Pointer, error) {
	const name = "vkMapMemory"
	fn, err := command[func(device, memory Handle, offset, size uint64, flags uint32, data *unsafe.Pointer) Result](memory.cmds, name)
	if err != nil {
		return nil, err
	}
	var pData unsafe.Pointer
	if _, err := check(name, fn(memory.parent, memory.handle, offset, size, 0, &pData)); err != nil {
		return nil, err
	}
	return pData, nil
}

func (memory *DeviceMemory) Unmap() error {
	fn, err := command[func(device, memory Handle)](memory.cmds, "vkUnmapMemory")
	if err != nil {
		return err
	}
	fn(memory.parent, memory.handle)
	return nil
}

// Upload maps the start of the allocation, copies data into it and unmaps
// it again. The memory must be host visible and host coherent.
func (memory *DeviceMemory) Upload(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	ptr, err := memory.Map(0, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(unsafe.Slice((*byte)(ptr), len(data)), data)
	return memory.Unmap()
}
