package vkbind

// Device is a logical device. It resolves its commands in a scope of its
// own; every object created from it is a child that becomes invalid when
// the device is disposed.
type Device struct {
	*object
	physicalDevice *PhysicalDevice
}

func (device *Device) PhysicalDevice() *PhysicalDevice { return device.physicalDevice }

// Scope returns the entry point scope of device-level commands.
func (device *Device) Scope() Scope { return device.cmds.scope }

// ProcAddr resolves a device-level command, returning 0 when absent.
func (device *Device) ProcAddr(name string) uintptr {
	return device.cmds.resolver.Resolve(device.cmds.scope, name).Addr()
}

// HasCommand reports whether the driver provides a device-level command.
func (device *Device) HasCommand(name string) bool {
	return device.cmds.resolver.Resolve(device.cmds.scope, name).Found()
}

func (device *Device) WaitIdle() error {
	fn, err := command[func(device Handle) Result](device.cmds, "vkDeviceWaitIdle")
	if err != nil {
		return err
	}
	_, err = check("vkDeviceWaitIdle", fn(device.handle))
	return err
}

// GetQueue returns a queue created along with the device. Queues are owned
// by the device and are not disposed.
func (device *Device) GetQueue(queueFamilyIndex, queueIndex uint32) (*Queue, error) {
	fn, err := command[func(device Handle, family, index uint32, queue *Handle)](device.cmds, "vkGetDeviceQueue")
	if err != nil {
		return nil, err
	}
	var h Handle
	fn(device.handle, queueFamilyIndex, queueIndex, &h)
	return &Queue{handle: h, device: device, family: queueFamilyIndex, index: queueIndex}, nil
}

// SetObjectName attaches a debug name to one of the device's objects. It
// needs VK_EXT_debug_utils enabled on the instance and reports
// ErrEntryPointUnavailable otherwise.
func (device *Device) SetObjectName(obj Object, name string) error {
	const cmd = "vkSetDebugUtilsObjectNameEXT"
	if isNilOwner(obj) {
		return invalidArgument("object is nil")
	}
	fn, err := command[func(device Handle, info *nativeDebugUtilsObjectNameInfo) Result](device.physicalDevice.instance.cmds, cmd)
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	info := arenaNew[nativeDebugUtilsObjectNameInfo](a)
	info.sType = DEBUG_UTILS_OBJECT_NAME_INFO_EXT
	info.objectType = obj.Kind()
	info.objectHandle = uint64(obj.Handle())
	if info.pObjectName, err = a.cstring("name", name, true); err != nil {
		return err
	}
	_, err = check(cmd, fn(device.handle, info))
	return err
}
