package vkbind

import (
	"encoding/binary"
	"unsafe"
)

type ShaderModuleCreateInfo struct {
	// Code is SPIR-V: a non-empty whole number of 32-bit words.
	Code []byte
}

func (info *ShaderModuleCreateInfo) vulkanize(a *callArena) (*nativeShaderModuleCreateInfo, error) {
	if len(info.Code) == 0 {
		return nil, invalidArgument("shader Code is empty")
	}
	if len(info.Code)%4 != 0 {
		return nil, invalidArgument("shader Code length %d is not a multiple of 4", len(info.Code))
	}

	// The driver reads the code as uint32 words; copy it into word-aligned
	// memory rather than trusting the alignment of the byte slice.
	_, pCode := arenaSlice[uint32](a, len(info.Code)/4)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(pCode)), len(info.Code)), info.Code)

	cInfo := arenaNew[nativeShaderModuleCreateInfo](a)
	cInfo.sType = SHADER_MODULE_CREATE_INFO
	cInfo.codeSize = uintptr(len(info.Code))
	cInfo.pCode = pCode
	return cInfo, nil
}

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// IsSPIRV reports whether code starts with the SPIR-V magic number, in
// either byte order.
func IsSPIRV(code []byte) bool {
	if len(code) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(code) == spirvMagic || binary.BigEndian.Uint32(code) == spirvMagic
}

type ShaderModule struct{ *object }

func (device *Device) CreateShaderModule(createInfo *ShaderModuleCreateInfo, alloc *AllocationCallbacks) (*ShaderModule, error) {
	if createInfo == nil {
		return nil, invalidArgument("ShaderModuleCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_SHADER_MODULE, "vkCreateShaderModule", "vkDestroyShaderModule", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &ShaderModule{o}, nil
}
