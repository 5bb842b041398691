package vkbind

type SparseImageFormatFlags uint32

const (
	SPARSE_IMAGE_FORMAT_SINGLE_MIPTAIL_BIT         SparseImageFormatFlags = 0x00000001
	SPARSE_IMAGE_FORMAT_ALIGNED_MIP_SIZE_BIT       SparseImageFormatFlags = 0x00000002
	SPARSE_IMAGE_FORMAT_NONSTANDARD_BLOCK_SIZE_BIT SparseImageFormatFlags = 0x00000004
)

type SparseImageFormatProperties struct {
	AspectMask       ImageAspectFlags
	ImageGranularity Extent3D
	Flags            SparseImageFormatFlags
}

// SparseImageMemoryRequirements describes how one aspect of a sparse image
// is laid out in memory.
type SparseImageMemoryRequirements struct {
	FormatProperties     SparseImageFormatProperties
	ImageMipTailFirstLod uint32
	ImageMipTailSize     uint64
	ImageMipTailOffset   uint64
	ImageMipTailStride   uint64
}

func (r *nativeSparseImageMemoryRequirements) decode() SparseImageMemoryRequirements {
	return SparseImageMemoryRequirements{
		FormatProperties: SparseImageFormatProperties{
			AspectMask:       r.formatProperties.aspectMask,
			ImageGranularity: r.formatProperties.imageGranularity,
			Flags:            r.formatProperties.flags,
		},
		ImageMipTailFirstLod: r.imageMipTailFirstLod,
		ImageMipTailSize:     r.imageMipTailSize,
		ImageMipTailOffset:   r.imageMipTailOffset,
		ImageMipTailStride:   r.imageMipTailStride,
	}
}

// SparseMemoryRequirements lists the sparse requirements of an image created
// with a sparse residency flag. Other images report none.
func (image *Image) SparseMemoryRequirements() ([]SparseImageMemoryRequirements, error) {
	fn, err := command[func(device, image Handle, count *uint32, reqs *nativeSparseImageMemoryRequirements)](image.cmds, "vkGetImageSparseMemoryRequirements")
	if err != nil {
		return nil, err
	}
	reqs := enumerateVoid(func(count *uint32, out *nativeSparseImageMemoryRequirements) {
		fn(image.parent, image.handle, count, out)
	})
	return decodeAll(reqs, (*nativeSparseImageMemoryRequirements).decode), nil
}
