package vkbind

import "fmt"

type PhysicalDeviceType int32

const (
	PHYSICAL_DEVICE_TYPE_OTHER          PhysicalDeviceType = 0
	PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU PhysicalDeviceType = 1
	PHYSICAL_DEVICE_TYPE_DISCRETE_GPU   PhysicalDeviceType = 2
	PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU    PhysicalDeviceType = 3
	PHYSICAL_DEVICE_TYPE_CPU            PhysicalDeviceType = 4
)

func (t PhysicalDeviceType) String() string {
	switch t {
	case PHYSICAL_DEVICE_TYPE_OTHER:
		return "other"
	case PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU:
		return "integrated GPU"
	case PHYSICAL_DEVICE_TYPE_DISCRETE_GPU:
		return "discrete GPU"
	case PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU:
		return "virtual GPU"
	case PHYSICAL_DEVICE_TYPE_CPU:
		return "CPU"
	default:
		return fmt.Sprintf("VkPhysicalDeviceType(%d)", int32(t))
	}
}

type QueueFlags uint32

const (
	QUEUE_GRAPHICS_BIT       QueueFlags = 0x00000001
	QUEUE_COMPUTE_BIT        QueueFlags = 0x00000002
	QUEUE_TRANSFER_BIT       QueueFlags = 0x00000004
	QUEUE_SPARSE_BINDING_BIT QueueFlags = 0x00000008
)

type MemoryPropertyFlags uint32

const (
	MEMORY_PROPERTY_DEVICE_LOCAL_BIT     MemoryPropertyFlags = 0x00000001
	MEMORY_PROPERTY_HOST_VISIBLE_BIT     MemoryPropertyFlags = 0x00000002
	MEMORY_PROPERTY_HOST_COHERENT_BIT    MemoryPropertyFlags = 0x00000004
	MEMORY_PROPERTY_HOST_CACHED_BIT      MemoryPropertyFlags = 0x00000008
	MEMORY_PROPERTY_LAZILY_ALLOCATED_BIT MemoryPropertyFlags = 0x00000010
)

type MemoryHeapFlags uint32

const (
	MEMORY_HEAP_DEVICE_LOCAL_BIT MemoryHeapFlags = 0x00000001
)

// PhysicalDevice is enumerated from an instance and owned by it; it has
// nothing to dispose.
type PhysicalDevice struct {
	handle   Handle
	instance *Instance
}

func (physicalDevice *PhysicalDevice) Handle() Handle {
	if physicalDevice == nil {
		return NullHandle
	}
	return physicalDevice.handle
}

func (physicalDevice *PhysicalDevice) Instance() *Instance { return physicalDevice.instance }

type PhysicalDeviceProperties struct {
	ApiVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        PhysicalDeviceType
	DeviceName        string
	PipelineCacheUUID [uuidSize]byte
}

func (p *nativePhysicalDeviceProperties) decode() PhysicalDeviceProperties {
	return PhysicalDeviceProperties{
		ApiVersion:        p.apiVersion,
		DriverVersion:     p.driverVersion,
		VendorID:          p.vendorID,
		DeviceID:          p.deviceID,
		DeviceType:        p.deviceType,
		DeviceName:        decodeFixed(p.deviceName[:]),
		PipelineCacheUUID: p.pipelineCacheUUID,
	}
}

type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

func (p *nativeQueueFamilyProperties) decode() QueueFamilyProperties {
	return QueueFamilyProperties{
		QueueFlags:                  p.queueFlags,
		QueueCount:                  p.queueCount,
		TimestampValidBits:          p.timestampValidBits,
		MinImageTransferGranularity: p.minImageTransferGranularity,
	}
}

type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags MemoryHeapFlags
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypes []MemoryType
	MemoryHeaps []MemoryHeap
}

func (p *nativePhysicalDeviceMemoryProperties) decode() PhysicalDeviceMemoryProperties {
	types := min(int(p.memoryTypeCount), maxMemoryTypes)
	heaps := min(int(p.memoryHeapCount), maxMemoryHeaps)
	out := PhysicalDeviceMemoryProperties{
		MemoryTypes: make([]MemoryType, types),
		MemoryHeaps: make([]MemoryHeap, heaps),
	}
	for i := range out.MemoryTypes {
		out.MemoryTypes[i] = MemoryType{PropertyFlags: p.memoryTypes[i].propertyFlags, HeapIndex: p.memoryTypes[i].heapIndex}
	}
	for i := range out.MemoryHeaps {
		out.MemoryHeaps[i] = MemoryHeap{Size: p.memoryHeaps[i].size, Flags: p.memoryHeaps[i].flags}
	}
	return out
}

// FindMemoryType returns the index of the first memory type allowed by
// typeBits that has all of the required properties.
func (p PhysicalDeviceMemoryProperties) FindMemoryType(typeBits uint32, required MemoryPropertyFlags) (uint32, bool) {
	for i, t := range p.MemoryTypes {
		if typeBits&(1<<uint(i)) != 0 && t.PropertyFlags&required == required {
			return uint32(i), true
		}
	}
	return 0, false
}

func (physicalDevice *PhysicalDevice) Properties() (PhysicalDeviceProperties, error) {
	fn, err := command[func(physicalDevice Handle, props *nativePhysicalDeviceProperties)](physicalDevice.instance.cmds, "vkGetPhysicalDeviceProperties")
	if err != nil {
		return PhysicalDeviceProperties{}, err
	}
	a := newCallArena()
	defer a.release()
	props := arenaNew[nativePhysicalDeviceProperties](a)
	fn(physicalDevice.handle, props)
	return props.decode(), nil
}

func (physicalDevice *PhysicalDevice) QueueFamilyProperties() ([]QueueFamilyProperties, error) {
	fn, err := command[func(physicalDevice Handle, count *uint32, props *nativeQueueFamilyProperties)](physicalDevice.instance.cmds, "vkGetPhysicalDeviceQueueFamilyProperties")
	if err != nil {
		return nil, err
	}
	props := enumerateVoid(func(count *uint32, out *nativeQueueFamilyProperties) {
		fn(physicalDevice.handle, count, out)
	})
	return decodeAll(props, (*nativeQueueFamilyProperties).decode), nil
}

func (physicalDevice *PhysicalDevice) MemoryProperties() (PhysicalDeviceMemoryProperties, error) {
	fn, err := command[func(physicalDevice Handle, props *nativePhysicalDeviceMemoryProperties)](physicalDevice.instance.cmds, "vkGetPhysicalDeviceMemoryProperties")
	if err != nil {
		return PhysicalDeviceMemoryProperties{}, err
	}
	a := newCallArena()
	defer a.release()
	props := arenaNew[nativePhysicalDeviceMemoryProperties](a)
	fn(physicalDevice.handle, props)
	return props.decode(), nil
}

func (physicalDevice *PhysicalDevice) EnumerateDeviceExtensionProperties(layer string) ([]ExtensionProperties, error) {
	const name = "vkEnumerateDeviceExtensionProperties"
	fn, err := command[func(physicalDevice Handle, layer *byte, count *uint32, props *nativeExtensionProperties) Result](physicalDevice.instance.cmds, name)
	if err != nil {
		return nil, err
	}

	a := newCallArena()
	defer a.release()
	pLayer, err := a.cstring("layer", layer, true)
	if err != nil {
		return nil, err
	}

	props, err := enumerate(name, func(count *uint32, out *nativeExtensionProperties) Result {
		return fn(physicalDevice.handle, pLayer, count, out)
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(props, (*nativeExtensionProperties).decode), nil
}

type DeviceQueueCreateInfo struct {
	Flags            uint32
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	Flags                 uint32
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

func (info *DeviceQueueCreateInfo) vulkanize(a *callArena, cInfo *nativeDeviceQueueCreateInfo) error {
	if len(info.QueuePriorities) == 0 {
		return invalidArgument("queue family %d: QueuePriorities is empty", info.QueueFamilyIndex)
	}
	cInfo.sType = DEVICE_QUEUE_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.queueFamilyIndex = info.QueueFamilyIndex

	var err error
	cInfo.queueCount, cInfo.pQueuePriorities, err = marshalValues[float32, float32](a, "QueuePriorities", info.QueuePriorities)
	return err
}

func (info *DeviceCreateInfo) vulkanize(a *callArena) (*nativeDeviceCreateInfo, error) {
	if info == nil || len(info.QueueCreateInfos) == 0 {
		return nil, invalidArgument("QueueCreateInfos is empty")
	}
	cInfo := arenaNew[nativeDeviceCreateInfo](a)
	cInfo.sType = DEVICE_CREATE_INFO
	cInfo.flags = info.Flags

	var err error
	if cInfo.queueCreateInfoCount, cInfo.pQueueCreateInfos, err = marshalSlice(a, "QueueCreateInfos", info.QueueCreateInfos, (*DeviceQueueCreateInfo).vulkanize); err != nil {
		return nil, err
	}
	if cInfo.enabledLayerCount, cInfo.ppEnabledLayerNames, err = a.cstrings("EnabledLayerNames", info.EnabledLayerNames); err != nil {
		return nil, err
	}
	if cInfo.enabledExtensionCount, cInfo.ppEnabledExtensionNames, err = a.cstrings("EnabledExtensionNames", info.EnabledExtensionNames); err != nil {
		return nil, err
	}
	return cInfo, nil
}

// CreateDevice creates a logical device. The device belongs to the
// instance: disposing the instance invalidates it.
func (physicalDevice *PhysicalDevice) CreateDevice(info *DeviceCreateInfo, alloc *AllocationCallbacks) (*Device, error) {
	instance := physicalDevice.instance
	createFn, err := command[func(physicalDevice Handle, info *nativeDeviceCreateInfo, alloc *nativeAllocationCallbacks, out *Handle) Result](instance.cmds, "vkCreateDevice")
	if err != nil {
		return nil, err
	}
	destroyFn, err := command[pfnDestroyRoot](instance.cmds, "vkDestroyDevice")
	if err != nil {
		return nil, err
	}
	getProcAddr, err := command[func(device Handle, name *byte) uintptr](instance.cmds, "vkGetDeviceProcAddr")
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = instance.alloc
	}

	a := newCallArena()
	defer a.release()

	cInfo, err := info.vulkanize(a)
	if err != nil {
		return nil, err
	}

	var h Handle
	alloc.acquire()
	if r := createFn(physicalDevice.handle, cInfo, alloc.table(a), &h); r != SUCCESS {
		alloc.release()
		return nil, driverError("vkCreateDevice", r)
	}

	o := instance.child(OBJECT_TYPE_DEVICE, h, alloc, destroyRootWith(destroyFn))
	o.parent = physicalDevice.handle
	o.cmds = &dispatcher{
		resolver: instance.cmds.resolver,
		scope:    instance.cmds.resolver.register(OBJECT_TYPE_DEVICE, h, procAddrQuery(getProcAddr, h)),
		log:      instance.cmds.log,
	}
	o.ownsScope = true
	return &Device{object: o, physicalDevice: physicalDevice}, nil
}
