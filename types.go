package vkbind

import "fmt"

// Handle is an opaque driver object handle. Dispatchable handles (instance,
// physical device, device, queue, command buffer) are pointers on the native
// side and non-dispatchable ones are 64-bit integers; both fit a uint64 on the
// 64-bit targets this package supports.
type Handle uint64

// NullHandle is VK_NULL_HANDLE.
const NullHandle Handle = 0

// Bool32 mirrors VkBool32.
type Bool32 uint32

const (
	FALSE Bool32 = 0
	TRUE  Bool32 = 1
)

func boolean(b bool) Bool32 {
	if b {
		return TRUE
	}
	return FALSE
}

// Result is a native status code. Zero is success, positive values are
// advisory outcomes the caller branches on, negative values are errors.
type Result int32

const (
	SUCCESS                   Result = 0
	NOT_READY                 Result = 1
	TIMEOUT                   Result = 2
	EVENT_SET                 Result = 3
	EVENT_RESET               Result = 4
	INCOMPLETE                Result = 5
	OUT_OF_HOST_MEMORY        Result = -1
	OUT_OF_DEVICE_MEMORY      Result = -2
	INITIALIZATION_FAILED     Result = -3
	DEVICE_LOST               Result = -4
	MEMORY_MAP_FAILED         Result = -5
	LAYER_NOT_PRESENT         Result = -6
	EXTENSION_NOT_PRESENT     Result = -7
	FEATURE_NOT_PRESENT       Result = -8
	INCOMPATIBLE_DRIVER       Result = -9
	TOO_MANY_OBJECTS          Result = -10
	FORMAT_NOT_SUPPORTED      Result = -11
	FRAGMENTED_POOL           Result = -12
	UNKNOWN                   Result = -13
	OUT_OF_POOL_MEMORY        Result = -1000069000
	INVALID_EXTERNAL_HANDLE   Result = -1000072003
	FRAGMENTATION             Result = -1000161000
	PIPELINE_COMPILE_REQUIRED Result = 1000297000
	SUBOPTIMAL                Result = 1000001003
	OUT_OF_DATE               Result = -1000001004
	VALIDATION_FAILED         Result = -1000011001
	THREAD_IDLE               Result = 1000268000
	THREAD_DONE               Result = 1000268001
	OPERATION_DEFERRED        Result = 1000268002
	OPERATION_NOT_DEFERRED    Result = 1000268003
)

// IsError reports whether r is a failure code.
func (r Result) IsError() bool { return r < 0 }

// IsAdvisory reports whether r is a non-error, non-success outcome such as
// TIMEOUT or INCOMPLETE.
func (r Result) IsAdvisory() bool { return r > 0 }

func (r Result) Error() string {
	return r.String()
}

func (r Result) String() string {
	switch r {
	case SUCCESS:
		return "SUCCESS"
	case NOT_READY:
		return "NOT READY"
	case TIMEOUT:
		return "TIMEOUT"
	case EVENT_SET:
		return "EVENT SET"
	case EVENT_RESET:
		return "EVENT RESET"
	case INCOMPLETE:
		return "INCOMPLETE"
	case OUT_OF_HOST_MEMORY:
		return "OUT OF HOST MEMORY"
	case OUT_OF_DEVICE_MEMORY:
		return "OUT OF DEVICE MEMORY"
	case INITIALIZATION_FAILED:
		return "INITIALIZATION FAILED"
	case DEVICE_LOST:
		return "DEVICE LOST"
	case MEMORY_MAP_FAILED:
		return "MEMORY MAP FAILED"
	case LAYER_NOT_PRESENT:
		return "LAYER NOT PRESENT"
	case EXTENSION_NOT_PRESENT:
		return "EXTENSION NOT PRESENT"
	case FEATURE_NOT_PRESENT:
		return "FEATURE NOT PRESENT"
	case INCOMPATIBLE_DRIVER:
		return "INCOMPATIBLE DRIVER"
	case TOO_MANY_OBJECTS:
		return "TOO MANY OBJECTS"
	case FORMAT_NOT_SUPPORTED:
		return "FORMAT NOT SUPPORTED"
	case FRAGMENTED_POOL:
		return "FRAGMENTED POOL"
	case UNKNOWN:
		return "UNKNOWN"
	case OUT_OF_POOL_MEMORY:
		return "OUT OF POOL MEMORY"
	case INVALID_EXTERNAL_HANDLE:
		return "INVALID EXTERNAL HANDLE"
	case FRAGMENTATION:
		return "FRAGMENTATION"
	case PIPELINE_COMPILE_REQUIRED:
		return "PIPELINE COMPILE REQUIRED"
	case SUBOPTIMAL:
		return "SUBOPTIMAL"
	case OUT_OF_DATE:
		return "OUT OF DATE"
	case VALIDATION_FAILED:
		return "VALIDATION FAILED"
	case THREAD_IDLE:
		return "THREAD IDLE"
	case THREAD_DONE:
		return "THREAD DONE"
	case OPERATION_DEFERRED:
		return "OPERATION DEFERRED"
	case OPERATION_NOT_DEFERRED:
		return "OPERATION NOT DEFERRED"
	default:
		return fmt.Sprintf("VkResult(%d)", int32(r))
	}
}

// StructureType is the sType discriminant of every extensible native struct.
type StructureType int32

const (
	APPLICATION_INFO                  StructureType = 0
	INSTANCE_CREATE_INFO              StructureType = 1
	DEVICE_QUEUE_CREATE_INFO          StructureType = 2
	DEVICE_CREATE_INFO                StructureType = 3
	SUBMIT_INFO                       StructureType = 4
	MEMORY_ALLOCATE_INFO              StructureType = 5
	FENCE_CREATE_INFO                 StructureType = 8
	SEMAPHORE_CREATE_INFO             StructureType = 9
	EVENT_CREATE_INFO                 StructureType = 10
	BUFFER_CREATE_INFO                StructureType = 12
	BUFFER_VIEW_CREATE_INFO           StructureType = 13
	IMAGE_CREATE_INFO                 StructureType = 14
	IMAGE_VIEW_CREATE_INFO            StructureType = 15
	SHADER_MODULE_CREATE_INFO         StructureType = 16
	PIPELINE_CACHE_CREATE_INFO        StructureType = 17
	PIPELINE_LAYOUT_CREATE_INFO       StructureType = 30
	SAMPLER_CREATE_INFO               StructureType = 31
	DESCRIPTOR_SET_LAYOUT_CREATE_INFO StructureType = 32
	DESCRIPTOR_POOL_CREATE_INFO       StructureType = 33
	DESCRIPTOR_SET_ALLOCATE_INFO      StructureType = 34
	WRITE_DESCRIPTOR_SET              StructureType = 35
	COPY_DESCRIPTOR_SET               StructureType = 36
	COMMAND_POOL_CREATE_INFO          StructureType = 39
	COMMAND_BUFFER_ALLOCATE_INFO      StructureType = 40
	COMMAND_BUFFER_INHERITANCE_INFO   StructureType = 41
	COMMAND_BUFFER_BEGIN_INFO         StructureType = 42
	DEBUG_UTILS_OBJECT_NAME_INFO_EXT  StructureType = 1000128000
)

// ObjectType identifies the kind of a native object. It doubles as the key
// of the per-kind child arenas.
type ObjectType int32

const (
	OBJECT_TYPE_UNKNOWN               ObjectType = 0
	OBJECT_TYPE_INSTANCE              ObjectType = 1
	OBJECT_TYPE_PHYSICAL_DEVICE       ObjectType = 2
	OBJECT_TYPE_DEVICE                ObjectType = 3
	OBJECT_TYPE_QUEUE                 ObjectType = 4
	OBJECT_TYPE_SEMAPHORE             ObjectType = 5
	OBJECT_TYPE_COMMAND_BUFFER        ObjectType = 6
	OBJECT_TYPE_FENCE                 ObjectType = 7
	OBJECT_TYPE_DEVICE_MEMORY         ObjectType = 8
	OBJECT_TYPE_BUFFER                ObjectType = 9
	OBJECT_TYPE_IMAGE                 ObjectType = 10
	OBJECT_TYPE_EVENT                 ObjectType = 11
	OBJECT_TYPE_BUFFER_VIEW           ObjectType = 13
	OBJECT_TYPE_IMAGE_VIEW            ObjectType = 14
	OBJECT_TYPE_SHADER_MODULE         ObjectType = 15
	OBJECT_TYPE_PIPELINE_CACHE        ObjectType = 16
	OBJECT_TYPE_PIPELINE_LAYOUT       ObjectType = 17
	OBJECT_TYPE_DESCRIPTOR_SET_LAYOUT ObjectType = 20
	OBJECT_TYPE_SAMPLER               ObjectType = 21
	OBJECT_TYPE_DESCRIPTOR_POOL       ObjectType = 22
	OBJECT_TYPE_DESCRIPTOR_SET        ObjectType = 23
	OBJECT_TYPE_COMMAND_POOL          ObjectType = 25
)

var objectTypeNames = map[ObjectType]string{
	OBJECT_TYPE_INSTANCE:              "instance",
	OBJECT_TYPE_PHYSICAL_DEVICE:       "physical device",
	OBJECT_TYPE_DEVICE:                "device",
	OBJECT_TYPE_QUEUE:                 "queue",
	OBJECT_TYPE_SEMAPHORE:             "semaphore",
	OBJECT_TYPE_COMMAND_BUFFER:        "command buffer",
	OBJECT_TYPE_FENCE:                 "fence",
	OBJECT_TYPE_DEVICE_MEMORY:         "device memory",
	OBJECT_TYPE_BUFFER:                "buffer",
	OBJECT_TYPE_IMAGE:                 "image",
	OBJECT_TYPE_EVENT:                 "event",
	OBJECT_TYPE_BUFFER_VIEW:           "buffer view",
	OBJECT_TYPE_IMAGE_VIEW:            "image view",
	OBJECT_TYPE_SHADER_MODULE:         "shader module",
	OBJECT_TYPE_PIPELINE_CACHE:        "pipeline cache",
	OBJECT_TYPE_PIPELINE_LAYOUT:       "pipeline layout",
	OBJECT_TYPE_DESCRIPTOR_SET_LAYOUT: "descriptor set layout",
	OBJECT_TYPE_SAMPLER:               "sampler",
	OBJECT_TYPE_DESCRIPTOR_POOL:       "descriptor pool",
	OBJECT_TYPE_DESCRIPTOR_SET:        "descriptor set",
	OBJECT_TYPE_COMMAND_POOL:          "command pool",
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VkObjectType(%d)", int32(t))
}

// poolAllocated reports whether objects of this kind are reclaimed by the
// native side when their pool is reset or destroyed.
func (t ObjectType) poolAllocated() bool {
	return t == OBJECT_TYPE_DESCRIPTOR_SET || t == OBJECT_TYPE_COMMAND_BUFFER
}

// API version packing

func MakeApiVersion(variant, major, minor, patch uint32) uint32 {
	return variant<<29 | major<<22 | minor<<12 | patch
}

func ApiVersionVariant(version uint32) uint32 { return version >> 29 }
func ApiVersionMajor(version uint32) uint32   { return (version >> 22) & 0x7F }
func ApiVersionMinor(version uint32) uint32   { return (version >> 12) & 0x3FF }
func ApiVersionPatch(version uint32) uint32   { return version & 0xFFF }

var (
	ApiVersion_1_0 = MakeApiVersion(0, 1, 0, 0)
	ApiVersion_1_1 = MakeApiVersion(0, 1, 1, 0)
	ApiVersion_1_2 = MakeApiVersion(0, 1, 2, 0)
	ApiVersion_1_3 = MakeApiVersion(0, 1, 3, 0)
	ApiVersion_1_4 = MakeApiVersion(0, 1, 4, 0)
)

type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Format is passed through to the driver unchanged; only a few common
// values are named.
type Format int32

const (
	FORMAT_UNDEFINED           Format = 0
	FORMAT_R8G8B8A8_UNORM      Format = 37
	FORMAT_R8G8B8A8_SRGB       Format = 43
	FORMAT_B8G8R8A8_UNORM      Format = 44
	FORMAT_B8G8R8A8_SRGB       Format = 50
	FORMAT_R32_UINT            Format = 98
	FORMAT_R32_SFLOAT          Format = 100
	FORMAT_R32G32B32A32_SFLOAT Format = 109
	FORMAT_D32_SFLOAT          Format = 126
)

type SharingMode int32

const (
	SHARING_MODE_EXCLUSIVE  SharingMode = 0
	SHARING_MODE_CONCURRENT SharingMode = 1
)

type ShaderStageFlags uint32

const (
	SHADER_STAGE_VERTEX_BIT   ShaderStageFlags = 0x00000001
	SHADER_STAGE_FRAGMENT_BIT ShaderStageFlags = 0x00000010
	SHADER_STAGE_COMPUTE_BIT  ShaderStageFlags = 0x00000020
	SHADER_STAGE_ALL_GRAPHICS ShaderStageFlags = 0x0000001F
	SHADER_STAGE_ALL          ShaderStageFlags = 0x7FFFFFFF
)
