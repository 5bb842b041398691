package vkbind

type ImageCreateFlags uint32

type ImageType int32

const (
	IMAGE_TYPE_1D ImageType = 0
	IMAGE_TYPE_2D ImageType = 1
	IMAGE_TYPE_3D ImageType = 2
)

type ImageTiling int32

const (
	IMAGE_TILING_OPTIMAL ImageTiling = 0
	IMAGE_TILING_LINEAR  ImageTiling = 1
)

type ImageLayout int32

const (
	IMAGE_LAYOUT_UNDEFINED                ImageLayout = 0
	IMAGE_LAYOUT_GENERAL                  ImageLayout = 1
	IMAGE_LAYOUT_COLOR_ATTACHMENT_OPTIMAL ImageLayout = 2
	IMAGE_LAYOUT_SHADER_READ_ONLY_OPTIMAL ImageLayout = 5
	IMAGE_LAYOUT_TRANSFER_SRC_OPTIMAL     ImageLayout = 6
	IMAGE_LAYOUT_TRANSFER_DST_OPTIMAL     ImageLayout = 7
	IMAGE_LAYOUT_PREINITIALIZED           ImageLayout = 8
)

type SampleCountFlags uint32

const (
	SAMPLE_COUNT_1_BIT SampleCountFlags = 0x00000001
	SAMPLE_COUNT_4_BIT SampleCountFlags = 0x00000004
)

type ImageUsageFlags uint32

const (
	IMAGE_USAGE_TRANSFER_SRC_BIT     ImageUsageFlags = 0x00000001
	IMAGE_USAGE_TRANSFER_DST_BIT     ImageUsageFlags = 0x00000002
	IMAGE_USAGE_SAMPLED_BIT          ImageUsageFlags = 0x00000004
	IMAGE_USAGE_STORAGE_BIT          ImageUsageFlags = 0x00000008
	IMAGE_USAGE_COLOR_ATTACHMENT_BIT ImageUsageFlags = 0x00000010
)

type ImageAspectFlags uint32

const (
	IMAGE_ASPECT_COLOR_BIT   ImageAspectFlags = 0x00000001
	IMAGE_ASPECT_DEPTH_BIT   ImageAspectFlags = 0x00000002
	IMAGE_ASPECT_STENCIL_BIT ImageAspectFlags = 0x00000004
)

type ImageViewType int32

const (
	IMAGE_VIEW_TYPE_1D   ImageViewType = 0
	IMAGE_VIEW_TYPE_2D   ImageViewType = 1
	IMAGE_VIEW_TYPE_3D   ImageViewType = 2
	IMAGE_VIEW_TYPE_CUBE ImageViewType = 3
)

type ComponentSwizzle int32

const (
	COMPONENT_SWIZZLE_IDENTITY ComponentSwizzle = 0
	COMPONENT_SWIZZLE_ZERO     ComponentSwizzle = 1
	COMPONENT_SWIZZLE_ONE      ComponentSwizzle = 2
	COMPONENT_SWIZZLE_R        ComponentSwizzle = 3
	COMPONENT_SWIZZLE_G        ComponentSwizzle = 4
	COMPONENT_SWIZZLE_B        ComponentSwizzle = 5
	COMPONENT_SWIZZLE_A        ComponentSwizzle = 6
)

// Image

type ImageCreateInfo struct {
	Flags              ImageCreateFlags
	ImageType          ImageType
	Format             Format
	Extent             Extent3D
	MipLevels          uint32
	ArrayLayers        uint32
	Samples            SampleCountFlags
	Tiling             ImageTiling
	Usage              ImageUsageFlags
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
	InitialLayout      ImageLayout
}

func (info *ImageCreateInfo) vulkanize(a *callArena) (*nativeImageCreateInfo, error) {
	cInfo := arenaNew[nativeImageCreateInfo](a)
	cInfo.sType = IMAGE_CREATE_INFO
	cInfo.flags = uint32(info.Flags)
	cInfo.imageType = info.ImageType
	cInfo.format = info.Format
	cInfo.extent = info.Extent
	cInfo.mipLevels = max(info.MipLevels, 1)
	cInfo.arrayLayers = max(info.ArrayLayers, 1)
	cInfo.samples = info.Samples
	if cInfo.samples == 0 {
		cInfo.samples = SAMPLE_COUNT_1_BIT
	}
	cInfo.tiling = info.Tiling
	cInfo.usage = info.Usage
	cInfo.sharingMode = info.SharingMode
	cInfo.initialLayout = info.InitialLayout

	var err error
	cInfo.queueFamilyIndexCount, cInfo.pQueueFamilyIndices, err = marshalValues[uint32, uint32](a, "QueueFamilyIndices", info.QueueFamilyIndices)
	if err != nil {
		return nil, err
	}
	return cInfo, nil
}

type Image struct{ *object }

func (device *Device) CreateImage(createInfo *ImageCreateInfo, alloc *AllocationCallbacks) (*Image, error) {
	if createInfo == nil {
		return nil, invalidArgument("ImageCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_IMAGE, "vkCreateImage", "vkDestroyImage", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &Image{o}, nil
}

func (image *Image) MemoryRequirements() (MemoryRequirements, error) {
	return memoryRequirements(image.object, "vkGetImageMemoryRequirements")
}

func (image *Image) BindMemory(memory *DeviceMemory, offset uint64) error {
	return bindMemory(image.object, "vkBindImageMemory", memory, offset)
}

// Image view

type ComponentMapping struct {
	R, G, B, A ComponentSwizzle
}

type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

func (r *ImageSubresourceRange) vulkanize(_ *callArena, out *nativeImageSubresourceRange) error {
	*out = nativeImageSubresourceRange{
		aspectMask:     r.AspectMask,
		baseMipLevel:   r.BaseMipLevel,
		levelCount:     r.LevelCount,
		baseArrayLayer: r.BaseArrayLayer,
		layerCount:     r.LayerCount,
	}
	return nil
}

type ImageViewCreateInfo struct {
	Flags            uint32
	Image            *Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

func (info *ImageViewCreateInfo) vulkanize(a *callArena) (*nativeImageViewCreateInfo, error) {
	if isNilOwner(info.Image) {
		return nil, invalidArgument("ImageViewCreateInfo.Image is nil")
	}
	cInfo := arenaNew[nativeImageViewCreateInfo](a)
	cInfo.sType = IMAGE_VIEW_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.image = info.Image.Handle()
	cInfo.viewType = info.ViewType
	cInfo.format = info.Format
	cInfo.components = [4]ComponentSwizzle{info.Components.R, info.Components.G, info.Components.B, info.Components.A}
	if err := info.SubresourceRange.vulkanize(a, &cInfo.subresourceRange); err != nil {
		return nil, err
	}
	return cInfo, nil
}

type ImageView struct{ *object }

func (device *Device) CreateImageView(createInfo *ImageViewCreateInfo, alloc *AllocationCallbacks) (*ImageView, error) {
	if createInfo == nil {
		return nil, invalidArgument("ImageViewCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_IMAGE_VIEW, "vkCreateImageView", "vkDestroyImageView", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &ImageView{o}, nil
}

// CreateImageViewForTexture creates an identity-swizzled 2D color view of
// the first mip level and layer.
func (device *Device) CreateImageViewForTexture(image *Image, format Format) (*ImageView, error) {
	return device.CreateImageView(&ImageViewCreateInfo{
		Image:    image,
		ViewType: IMAGE_VIEW_TYPE_2D,
		Format:   format,
		SubresourceRange: ImageSubresourceRange{
			AspectMask: IMAGE_ASPECT_COLOR_BIT,
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil)
}

// Sampler

type Filter int32
type SamplerMipmapMode int32
type SamplerAddressMode int32
type BorderColor int32
type CompareOp int32

const (
	FILTER_NEAREST Filter = 0
	FILTER_LINEAR  Filter = 1

	SAMPLER_MIPMAP_MODE_NEAREST SamplerMipmapMode = 0
	SAMPLER_MIPMAP_MODE_LINEAR  SamplerMipmapMode = 1

	SAMPLER_ADDRESS_MODE_REPEAT          SamplerAddressMode = 0
	SAMPLER_ADDRESS_MODE_MIRRORED_REPEAT SamplerAddressMode = 1
	SAMPLER_ADDRESS_MODE_CLAMP_TO_EDGE   SamplerAddressMode = 2
	SAMPLER_ADDRESS_MODE_CLAMP_TO_BORDER SamplerAddressMode = 3

	BORDER_COLOR_FLOAT_TRANSPARENT_BLACK BorderColor = 0
	BORDER_COLOR_INT_TRANSPARENT_BLACK   BorderColor = 1
	BORDER_COLOR_FLOAT_OPAQUE_BLACK      BorderColor = 2
	BORDER_COLOR_INT_OPAQUE_BLACK        BorderColor = 3
	BORDER_COLOR_FLOAT_OPAQUE_WHITE      BorderColor = 4
	BORDER_COLOR_INT_OPAQUE_WHITE        BorderColor = 5

	COMPARE_OP_NEVER  CompareOp = 0
	COMPARE_OP_LESS   CompareOp = 1
	COMPARE_OP_EQUAL  CompareOp = 2
	COMPARE_OP_ALWAYS CompareOp = 7
)

type SamplerCreateInfo struct {
	MagFilter               Filter
	MinFilter               Filter
	MipmapMode              SamplerMipmapMode
	AddressModeU            SamplerAddressMode
	AddressModeV            SamplerAddressMode
	AddressModeW            SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        bool
	MaxAnisotropy           float32
	CompareEnable           bool
	CompareOp               CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             BorderColor
	UnnormalizedCoordinates bool
}

func (info *SamplerCreateInfo) vulkanize(a *callArena) (*nativeSamplerCreateInfo, error) {
	cInfo := arenaNew[nativeSamplerCreateInfo](a)
	cInfo.sType = SAMPLER_CREATE_INFO
	cInfo.magFilter = info.MagFilter
	cInfo.minFilter = info.MinFilter
	cInfo.mipmapMode = info.MipmapMode
	cInfo.addressModeU = info.AddressModeU
	cInfo.addressModeV = info.AddressModeV
	cInfo.addressModeW = info.AddressModeW
	cInfo.mipLodBias = info.MipLodBias
	cInfo.anisotropyEnable = boolean(info.AnisotropyEnable)
	cInfo.maxAnisotropy = info.MaxAnisotropy
	cInfo.compareEnable = boolean(info.CompareEnable)
	cInfo.compareOp = info.CompareOp
	cInfo.minLod = info.MinLod
	cInfo.maxLod = info.MaxLod
	cInfo.borderColor = info.BorderColor
	cInfo.unnormalizedCoordinates = boolean(info.UnnormalizedCoordinates)
	return cInfo, nil
}

type Sampler struct{ *object }

func (device *Device) CreateSampler(createInfo *SamplerCreateInfo, alloc *AllocationCallbacks) (*Sampler, error) {
	if createInfo == nil {
		createInfo = &SamplerCreateInfo{}
	}
	o, err := create(device.object, OBJECT_TYPE_SAMPLER, "vkCreateSampler", "vkDestroySampler", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &Sampler{o}, nil
}
