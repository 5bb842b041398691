package vkbind

type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	ApiVersion         uint32
}

type InstanceCreateInfo struct {
	Flags                 uint32
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

func (info *ApplicationInfo) vulkanize(a *callArena) (*nativeApplicationInfo, error) {
	if info == nil {
		return nil, nil
	}
	cInfo := arenaNew[nativeApplicationInfo](a)
	cInfo.sType = APPLICATION_INFO
	cInfo.applicationVersion = info.ApplicationVersion
	cInfo.engineVersion = info.EngineVersion
	cInfo.apiVersion = info.ApiVersion

	var err error
	if cInfo.pApplicationName, err = a.cstring("ApplicationName", info.ApplicationName, true); err != nil {
		return nil, err
	}
	if cInfo.pEngineName, err = a.cstring("EngineName", info.EngineName, true); err != nil {
		return nil, err
	}
	return cInfo, nil
}

func (info *InstanceCreateInfo) vulkanize(a *callArena) (*nativeInstanceCreateInfo, error) {
	cInfo := arenaNew[nativeInstanceCreateInfo](a)
	cInfo.sType = INSTANCE_CREATE_INFO
	cInfo.flags = info.Flags

	var err error
	if cInfo.pApplicationInfo, err = info.ApplicationInfo.vulkanize(a); err != nil {
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

func (info *InstanceCreateInfo) apiVersion() uint32 {
	if info.ApplicationInfo == nil || info.ApplicationInfo.ApiVersion == 0 {
		return ApiVersion_1_0
	}
	return info.ApplicationInfo.ApiVersion
}

// Instance is the root of an object tree. Disposing it invalidates every
// device and object created under it.
type Instance struct {
	*object
	loader      *Loader
	getProcAddr func(instance Handle, name *byte) uintptr
}

// Loader returns the loader the instance was created from.
func (instance *Instance) Loader() *Loader { return instance.loader }

// Scope returns the entry point scope of instance-level commands.
func (instance *Instance) Scope() Scope { return instance.cmds.scope }

// ProcAddr resolves an instance-level command, returning 0 when the driver
// does not provide it. Results are cached, including absence.
func (instance *Instance) ProcAddr(name string) uintptr {
	return instance.cmds.resolver.Resolve(instance.cmds.scope, name).Addr()
}

// HasCommand reports whether the driver provides an instance-level command,
// which is how optional extension functionality is probed.
func (instance *Instance) HasCommand(name string) bool {
	return instance.cmds.resolver.Resolve(instance.cmds.scope, name).Found()
}

func (instance *Instance) EnumeratePhysicalDevices() ([]*PhysicalDevice, error) {
	const name = "vkEnumeratePhysicalDevices"
	fn, err := command[func(instance Handle, count *uint32, devices *Handle) Result](instance.cmds, name)
	if err != nil {
		return nil, err
	}
	handles, err := enumerate(name, func(count *uint32, out *Handle) Result {
		return fn(instance.handle, count, out)
	})
	if err != nil {
		return nil, err
	}

	devices := make([]*PhysicalDevice, len(handles))
	for i, h := range handles {
		devices[i] = &PhysicalDevice{handle: h, instance: instance}
	}
	return devices, nil
}
