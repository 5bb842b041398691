package vkbind

import "math"

// ClearColorValue holds the four components of a clear color. The driver
// reads them as float, int or uint depending on the image format, so build
// it with the constructor matching the format.
type ClearColorValue struct {
	bits [4]uint32
}

func ClearColorFloat32(r, g, b, a float32) ClearColorValue {
	return ClearColorValue{bits: [4]uint32{math.Float32bits(r), math.Float32bits(g), math.Float32bits(b), math.Float32bits(a)}}
}

func ClearColorInt32(r, g, b, a int32) ClearColorValue {
	return ClearColorValue{bits: [4]uint32{uint32(r), uint32(g), uint32(b), uint32(a)}}
}

func ClearColorUint32(r, g, b, a uint32) ClearColorValue {
	return ClearColorValue{bits: [4]uint32{r, g, b, a}}
}

// CmdClearColorImage records a fill of the given subresource ranges of image
// with a constant color. image must be in imageLayout when the command runs.
func (cmd *CommandBuffer) CmdClearColorImage(image *Image, imageLayout ImageLayout, color ClearColorValue, ranges []ImageSubresourceRange) error {
	if isNilOwner(image) {
		return invalidArgument("CmdClearColorImage: image is nil")
	}
	if len(ranges) == 0 {
		return invalidArgument("CmdClearColorImage: no subresource ranges")
	}
	fn, err := command[func(cmd, image Handle, layout ImageLayout, color *[4]uint32, rangeCount uint32, ranges *nativeImageSubresourceRange)](cmd.cmds, "vkCmdClearColorImage")
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	pColor := arenaNew[[4]uint32](a)
	*pColor = color.bits
	count, pRanges, err := marshalSlice(a, "ranges", ranges, (*ImageSubresourceRange).vulkanize)
	if err != nil {
		return err
	}
	fn(cmd.handle, image.Handle(), imageLayout, pColor, count, pRanges)
	return nil
}
