package vkbind

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// Sizes and offsets of the C structs on 64-bit targets.
func TestNativeLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layouts are checked for 64-bit targets")
	}

	sizes := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"VkApplicationInfo", unsafe.Sizeof(nativeApplicationInfo{}), 48},
		{"VkInstanceCreateInfo", unsafe.Sizeof(nativeInstanceCreateInfo{}), 64},
		{"VkExtensionProperties", unsafe.Sizeof(nativeExtensionProperties{}), 260},
		{"VkLayerProperties", unsafe.Sizeof(nativeLayerProperties{}), 520},
		{"VkPhysicalDeviceProperties", unsafe.Sizeof(nativePhysicalDeviceProperties{}), 824},
		{"VkQueueFamilyProperties", unsafe.Sizeof(nativeQueueFamilyProperties{}), 24},
		{"VkPhysicalDeviceMemoryProperties", unsafe.Sizeof(nativePhysicalDeviceMemoryProperties{}), 520},
		{"VkDeviceQueueCreateInfo", unsafe.Sizeof(nativeDeviceQueueCreateInfo{}), 40},
		{"VkDeviceCreateInfo", unsafe.Sizeof(nativeDeviceCreateInfo{}), 72},
		{"VkSubmitInfo", unsafe.Sizeof(nativeSubmitInfo{}), 72},
		{"VkFenceCreateInfo", unsafe.Sizeof(nativeFlagsCreateInfo{}), 24},
		{"VkMemoryAllocateInfo", unsafe.Sizeof(nativeMemoryAllocateInfo{}), 32},
		{"VkMemoryRequirements", unsafe.Sizeof(nativeMemoryRequirements{}), 24},
		{"VkBufferCreateInfo", unsafe.Sizeof(nativeBufferCreateInfo{}), 56},
		{"VkBufferViewCreateInfo", unsafe.Sizeof(nativeBufferViewCreateInfo{}), 56},
		{"VkImageCreateInfo", unsafe.Sizeof(nativeImageCreateInfo{}), 88},
		{"VkImageViewCreateInfo", unsafe.Sizeof(nativeImageViewCreateInfo{}), 80},
		{"VkSamplerCreateInfo", unsafe.Sizeof(nativeSamplerCreateInfo{}), 80},
		{"VkShaderModuleCreateInfo", unsafe.Sizeof(nativeShaderModuleCreateInfo{}), 40},
		{"VkDescriptorSetLayoutBinding", unsafe.Sizeof(nativeDescriptorSetLayoutBinding{}), 24},
		{"VkDescriptorSetLayoutCreateInfo", unsafe.Sizeof(nativeDescriptorSetLayoutCreateInfo{}), 32},
		{"VkDescriptorPoolCreateInfo", unsafe.Sizeof(nativeDescriptorPoolCreateInfo{}), 40},
		{"VkDescriptorSetAllocateInfo", unsafe.Sizeof(nativeDescriptorSetAllocateInfo{}), 40},
		{"VkDescriptorImageInfo", unsafe.Sizeof(nativeDescriptorImageInfo{}), 24},
		{"VkDescriptorBufferInfo", unsafe.Sizeof(nativeDescriptorBufferInfo{}), 24},
		{"VkWriteDescriptorSet", unsafe.Sizeof(nativeWriteDescriptorSet{}), 64},
		{"VkCopyDescriptorSet", unsafe.Sizeof(nativeCopyDescriptorSet{}), 56},
		{"VkPipelineLayoutCreateInfo", unsafe.Sizeof(nativePipelineLayoutCreateInfo{}), 48},
		{"VkPipelineCacheCreateInfo", unsafe.Sizeof(nativePipelineCacheCreateInfo{}), 40},
		{"VkCommandPoolCreateInfo", unsafe.Sizeof(nativeCommandPoolCreateInfo{}), 24},
		{"VkCommandBufferAllocateInfo", unsafe.Sizeof(nativeCommandBufferAllocateInfo{}), 32},
		{"VkCommandBufferInheritanceInfo", unsafe.Sizeof(nativeCommandBufferInheritanceInfo{}), 56},
		{"VkCommandBufferBeginInfo", unsafe.Sizeof(nativeCommandBufferBeginInfo{}), 32},
		{"VkDebugUtilsObjectNameInfoEXT", unsafe.Sizeof(nativeDebugUtilsObjectNameInfo{}), 40},
		{"VkSparseImageMemoryRequirements", unsafe.Sizeof(nativeSparseImageMemoryRequirements{}), 48},
		{"VkAllocationCallbacks", unsafe.Sizeof(nativeAllocationCallbacks{}), 48},
	}
	for _, s := range sizes {
		assert.Equal(t, s.want, s.got, "sizeof(%s)", s.name)
	}
}

func TestNativeOffsets(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layouts are checked for 64-bit targets")
	}

	var pd nativePhysicalDeviceProperties
	assert.Equal(t, uintptr(20), unsafe.Offsetof(pd.deviceName))
	assert.Equal(t, uintptr(296), unsafe.Offsetof(pd.limits))
	assert.Equal(t, uintptr(800), unsafe.Offsetof(pd.sparseProperties))

	var mem nativePhysicalDeviceMemoryProperties
	assert.Equal(t, uintptr(260), unsafe.Offsetof(mem.memoryHeapCount))
	assert.Equal(t, uintptr(264), unsafe.Offsetof(mem.memoryHeaps))

	var submit nativeSubmitInfo
	assert.Equal(t, uintptr(16), unsafe.Offsetof(submit.waitSemaphoreCount))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(submit.pWaitSemaphores))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(submit.pSignalSemaphores))

	var write nativeWriteDescriptorSet
	assert.Equal(t, uintptr(40), unsafe.Offsetof(write.pImageInfo))

	var sparse nativeSparseImageMemoryRequirements
	assert.Equal(t, uintptr(20), unsafe.Offsetof(sparse.imageMipTailFirstLod))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(sparse.imageMipTailSize))
}
