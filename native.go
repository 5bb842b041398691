package vkbind

import "unsafe"

// Native struct mirrors. Each one is laid out exactly like its C
// counterpart on 64-bit targets: the sType discriminant, the pNext
// extension pointer (always nil here), then the fields in declaration
// order, with every array count immediately followed by its pointer.

const (
	maxExtensionNameSize = 256
	maxDescriptionSize   = 256
	maxDeviceNameSize    = 256
	uuidSize             = 16
	maxMemoryTypes       = 32
	maxMemoryHeaps       = 16
)

type nativeApplicationInfo struct {
	sType              StructureType
	pNext              unsafe.Pointer
	pApplicationName   *byte
	applicationVersion uint32
	pEngineName        *byte
	engineVersion      uint32
	apiVersion         uint32
}

type nativeInstanceCreateInfo struct {
	sType                   StructureType
	pNext                   unsafe.Pointer
	flags                   uint32
	pApplicationInfo        *nativeApplicationInfo
	enabledLayerCount       uint32
	ppEnabledLayerNames     **byte
	enabledExtensionCount   uint32
	ppEnabledExtensionNames **byte
}

type nativeExtensionProperties struct {
	extensionName [maxExtensionNameSize]byte
	specVersion   uint32
}

type nativeLayerProperties struct {
	layerName             [maxExtensionNameSize]byte
	specVersion           uint32
	implementationVersion uint32
	description           [maxDescriptionSize]byte
}

// nativePhysicalDeviceProperties keeps the limits and sparse property blocks
// opaque; only their size and alignment matter here.
type nativePhysicalDeviceProperties struct {
	apiVersion        uint32
	driverVersion     uint32
	vendorID          uint32
	deviceID          uint32
	deviceType        PhysicalDeviceType
	deviceName        [maxDeviceNameSize]byte
	pipelineCacheUUID [uuidSize]byte
	limits            [63]uint64
	sparseProperties  [5]Bool32
}

type nativeQueueFamilyProperties struct {
	queueFlags                  QueueFlags
	queueCount                  uint32
	timestampValidBits          uint32
	minImageTransferGranularity Extent3D
}

type nativeMemoryType struct {
	propertyFlags MemoryPropertyFlags
	heapIndex     uint32
}

type nativeMemoryHeap struct {
	size  uint64
	flags MemoryHeapFlags
}

type nativePhysicalDeviceMemoryProperties struct {
	memoryTypeCount uint32
	memoryTypes     [maxMemoryTypes]nativeMemoryType
	memoryHeapCount uint32
	memoryHeaps     [maxMemoryHeaps]nativeMemoryHeap
}

type nativeDeviceQueueCreateInfo struct {
	sType            StructureType
	pNext            unsafe.Pointer
	flags            uint32
	queueFamilyIndex uint32
	queueCount       uint32
	pQueuePriorities *float32
}

type nativeDeviceCreateInfo struct {
	sType                   StructureType
	pNext                   unsafe.Pointer
	flags                   uint32
	queueCreateInfoCount    uint32
	pQueueCreateInfos       *nativeDeviceQueueCreateInfo
	enabledLayerCount       uint32
	ppEnabledLayerNames     **byte
	enabledExtensionCount   uint32
	ppEnabledExtensionNames **byte
	pEnabledFeatures        unsafe.Pointer
}

type nativeSubmitInfo struct {
	sType                StructureType
	pNext                unsafe.Pointer
	waitSemaphoreCount   uint32
	pWaitSemaphores      *Handle
	pWaitDstStageMask    *PipelineStageFlags
	commandBufferCount   uint32
	pCommandBuffers      *Handle
	signalSemaphoreCount uint32
	pSignalSemaphores    *Handle
}

// nativeFlagsCreateInfo serves every create info that carries nothing but
// flags: fences, semaphores and events.
type nativeFlagsCreateInfo struct {
	sType StructureType
	pNext unsafe.Pointer
	flags uint32
}

type nativeMemoryAllocateInfo struct {
	sType           StructureType
	pNext           unsafe.Pointer
	allocationSize  uint64
	memoryTypeIndex uint32
}

type nativeMemoryRequirements struct {
	size           uint64
	alignment      uint64
	memoryTypeBits uint32
}

type nativeBufferCreateInfo struct {
	sType                 StructureType
	pNext                 unsafe.Pointer
	flags                 uint32
	size                  uint64
	usage                 BufferUsageFlags
	sharingMode           SharingMode
	queueFamilyIndexCount uint32
	pQueueFamilyIndices   *uint32
}

type nativeBufferViewCreateInfo struct {
	sType  StructureType
	pNext  unsafe.Pointer
	flags  uint32
	buffer Handle
	format Format
	offset uint64
	rng    uint64
}

type nativeImageCreateInfo struct {
	sType                 StructureType
	pNext                 unsafe.Pointer
	flags                 uint32
	imageType             ImageType
	format                Format
	extent                Extent3D
	mipLevels             uint32
	arrayLayers           uint32
	samples               SampleCountFlags
	tiling                ImageTiling
	usage                 ImageUsageFlags
	sharingMode           SharingMode
	queueFamilyIndexCount uint32
	pQueueFamilyIndices   *uint32
	initialLayout         ImageLayout
}

type nativeImageSubresourceRange struct {
	aspectMask     ImageAspectFlags
	baseMipLevel   uint32
	levelCount     uint32
	baseArrayLayer uint32
	layerCount     uint32
}

type nativeImageViewCreateInfo struct {
	sType            StructureType
	pNext            unsafe.Pointer
	flags            uint32
	image            Handle
	viewType         ImageViewType
	format           Format
	components       [4]ComponentSwizzle
	subresourceRange nativeImageSubresourceRange
}

type nativeSamplerCreateInfo struct {
	sType                   StructureType
	pNext                   unsafe.Pointer
	flags                   uint32
	magFilter               Filter
	minFilter               Filter
	mipmapMode              SamplerMipmapMode
	addressModeU            SamplerAddressMode
	addressModeV            SamplerAddressMode
	addressModeW            SamplerAddressMode
	mipLodBias              float32
	anisotropyEnable        Bool32
	maxAnisotropy           float32
	compareEnable           Bool32
	compareOp               CompareOp
	minLod                  float32
	maxLod                  float32
	borderColor             BorderColor
	unnormalizedCoordinates Bool32
}

type nativeShaderModuleCreateInfo struct {
	sType    StructureType
	pNext    unsafe.Pointer
	flags    uint32
	codeSize uintptr
	pCode    *uint32
}

type nativeDescriptorSetLayoutBinding struct {
	binding            uint32
	descriptorType     DescriptorType
	descriptorCount    uint32
	stageFlags         ShaderStageFlags
	pImmutableSamplers *Handle
}

type nativeDescriptorSetLayoutCreateInfo struct {
	sType        StructureType
	pNext        unsafe.Pointer
	flags        uint32
	bindingCount uint32
	pBindings    *nativeDescriptorSetLayoutBinding
}

type nativeDescriptorPoolSize struct {
	typ             DescriptorType
	descriptorCount uint32
}

type nativeDescriptorPoolCreateInfo struct {
	sType         StructureType
	pNext         unsafe.Pointer
	flags         DescriptorPoolCreateFlags
	maxSets       uint32
	poolSizeCount uint32
	pPoolSizes    *nativeDescriptorPoolSize
}

type nativeDescriptorSetAllocateInfo struct {
	sType              StructureType
	pNext              unsafe.Pointer
	descriptorPool     Handle
	descriptorSetCount uint32
	pSetLayouts        *Handle
}

type nativeDescriptorImageInfo struct {
	sampler     Handle
	imageView   Handle
	imageLayout ImageLayout
}

type nativeDescriptorBufferInfo struct {
	buffer Handle
	offset uint64
	rng    uint64
}

type nativeWriteDescriptorSet struct {
	sType            StructureType
	pNext            unsafe.Pointer
	dstSet           Handle
	dstBinding       uint32
	dstArrayElement  uint32
	descriptorCount  uint32
	descriptorType   DescriptorType
	pImageInfo       *nativeDescriptorImageInfo
	pBufferInfo      *nativeDescriptorBufferInfo
	pTexelBufferView *Handle
}

type nativeCopyDescriptorSet struct {
	sType           StructureType
	pNext           unsafe.Pointer
	srcSet          Handle
	srcBinding      uint32
	srcArrayElement uint32
	dstSet          Handle
	dstBinding      uint32
	dstArrayElement uint32
	descriptorCount uint32
}

type nativePushConstantRange struct {
	stageFlags ShaderStageFlags
	offset     uint32
	size       uint32
}

type nativePipelineLayoutCreateInfo struct {
	sType                  StructureType
	pNext                  unsafe.Pointer
	flags                  uint32
	setLayoutCount         uint32
	pSetLayouts            *Handle
	pushConstantRangeCount uint32
	pPushConstantRanges    *nativePushConstantRange
}

type nativePipelineCacheCreateInfo struct {
	sType           StructureType
	pNext           unsafe.Pointer
	flags           uint32
	initialDataSize uintptr
	pInitialData    unsafe.Pointer
}

type nativeCommandPoolCreateInfo struct {
	sType            StructureType
	pNext            unsafe.Pointer
	flags            CommandPoolCreateFlags
	queueFamilyIndex uint32
}

type nativeCommandBufferAllocateInfo struct {
	sType              StructureType
	pNext              unsafe.Pointer
	commandPool        Handle
	level              CommandBufferLevel
	commandBufferCount uint32
}

type nativeCommandBufferInheritanceInfo struct {
	sType                StructureType
	pNext                unsafe.Pointer
	renderPass           Handle
	subpass              uint32
	framebuffer          Handle
	occlusionQueryEnable Bool32
	queryFlags           uint32
	pipelineStatistics   uint32
}

type nativeCommandBufferBeginInfo struct {
	sType            StructureType
	pNext            unsafe.Pointer
	flags            CommandBufferUsageFlags
	pInheritanceInfo *nativeCommandBufferInheritanceInfo
}

type nativeDebugUtilsObjectNameInfo struct {
	sType        StructureType
	pNext        unsafe.Pointer
	objectType   ObjectType
	objectHandle uint64
	pObjectName  *byte
}

type nativeSparseImageFormatProperties struct {
	aspectMask       ImageAspectFlags
	imageGranularity Extent3D
	flags            SparseImageFormatFlags
}

type nativeSparseImageMemoryRequirements struct {
	formatProperties     nativeSparseImageFormatProperties
	imageMipTailFirstLod uint32
	imageMipTailSize     uint64
	imageMipTailOffset   uint64
	imageMipTailStride   uint64
}
