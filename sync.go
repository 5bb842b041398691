package vkbind

type FenceCreateFlags uint32

const (
	FENCE_CREATE_SIGNALED_BIT FenceCreateFlags = 0x00000001
)

type FenceCreateInfo struct {
	Flags FenceCreateFlags
}

type SemaphoreCreateInfo struct {
	Flags uint32
}

type EventCreateInfo struct {
	Flags uint32
}

type Fence struct{ *object }

type Semaphore struct{ *object }

type Event struct{ *object }

func flagsCreateInfo(sType StructureType, flags uint32) func(*callArena) (*nativeFlagsCreateInfo, error) {
	return func(a *callArena) (*nativeFlagsCreateInfo, error) {
		cInfo := arenaNew[nativeFlagsCreateInfo](a)
		cInfo.sType = sType
		cInfo.flags = flags
		return cInfo, nil
	}
}

// Fence

func (device *Device) CreateFence(createInfo *FenceCreateInfo, alloc *AllocationCallbacks) (*Fence, error) {
	var flags FenceCreateFlags
	if createInfo != nil {
		flags = createInfo.Flags
	}
	o, err := create(device.object, OBJECT_TYPE_FENCE, "vkCreateFence", "vkDestroyFence", alloc,
		flagsCreateInfo(FENCE_CREATE_INFO, uint32(flags)))
	if err != nil {
		return nil, err
	}
	return &Fence{o}, nil
}

// Status checks the fence without blocking: SUCCESS when signaled,
// NOT_READY otherwise.
func (fence *Fence) Status() (Result, error) {
	fn, err := command[func(device, fence Handle) Result](fence.cmds, "vkGetFenceStatus")
	if err != nil {
		return 0, err
	}
	return check("vkGetFenceStatus", fn(fence.parent, fence.handle))
}

func (fence *Fence) Reset() error {
	return resetFences(fence.cmds, fence.parent, []*Fence{fence})
}

// Wait blocks until the fence is signaled or timeout nanoseconds elapse.
// See Device.WaitForFences.
func (fence *Fence) Wait(timeout uint64) (Result, error) {
	return waitForFences(fence.cmds, fence.parent, []*Fence{fence}, true, timeout)
}

// WaitForFences waits for all (waitAll) or any of fences. timeout is in
// nanoseconds and is passed to the driver unchanged: 0 checks the fences
// once without blocking. An elapsed timeout is reported as TIMEOUT with a
// nil error.
func (device *Device) WaitForFences(fences []*Fence, waitAll bool, timeout uint64) (Result, error) {
	return waitForFences(device.cmds, device.handle, fences, waitAll, timeout)
}

func (device *Device) ResetFences(fences []*Fence) error {
	return resetFences(device.cmds, device.handle, fences)
}

func waitForFences(cmds *dispatcher, device Handle, fences []*Fence, waitAll bool, timeout uint64) (Result, error) {
	const name = "vkWaitForFences"
	if len(fences) == 0 {
		return 0, invalidArgument("no fences to wait for")
	}
	fn, err := command[func(device Handle, count uint32, fences *Handle, waitAll Bool32, timeout uint64) Result](cmds, name)
	if err != nil {
		return 0, err
	}

	a := newCallArena()
	defer a.release()

	count, cFences, err := marshalHandles(a, "fences", fences)
	if err != nil {
		return 0, err
	}
	return check(name, fn(device, count, cFences, boolean(waitAll), timeout))
}

func resetFences(cmds *dispatcher, device Handle, fences []*Fence) error {
	const name = "vkResetFences"
	if len(fences) == 0 {
		return nil
	}
	fn, err := command[func(device Handle, count uint32, fences *Handle) Result](cmds, name)
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	count, cFences, err := marshalHandles(a, "fences", fences)
	if err != nil {
		return err
	}
	_, err = check(name, fn(device, count, cFences))
	return err
}

// Semaphore

func (device *Device) CreateSemaphore(createInfo *SemaphoreCreateInfo, alloc *AllocationCallbacks) (*Semaphore, error) {
	var flags uint32
	if createInfo != nil {
		flags = createInfo.Flags
	}
	o, err := create(device.object, OBJECT_TYPE_SEMAPHORE, "vkCreateSemaphore", "vkDestroySemaphore", alloc,
		flagsCreateInfo(SEMAPHORE_CREATE_INFO, flags))
	if err != nil {
		return nil, err
	}
	return &Semaphore{o}, nil
}

// Event

func (device *Device) CreateEvent(createInfo *EventCreateInfo, alloc *AllocationCallbacks) (*Event, error) {
	var flags uint32
	if createInfo != nil {
		flags = createInfo.Flags
	}
	o, err := create(device.object, OBJECT_TYPE_EVENT, "vkCreateEvent", "vkDestroyEvent", alloc,
		flagsCreateInfo(EVENT_CREATE_INFO, flags))
	if err != nil {
		return nil, err
	}
	return &Event{o}, nil
}

// Status returns EVENT_SET or EVENT_RESET.
func (event *Event) Status() (Result, error) {
	fn, err := command[func(device, event Handle) Result](event.cmds, "vkGetEventStatus")
	if err != nil {
		return 0, err
	}
	return check("vkGetEventStatus", fn(event.parent, event.handle))
}

func (event *Event) Set() error {
	return event.signal("vkSetEvent")
}

func (event *Event) Reset() error {
	return event.signal("vkResetEvent")
}

func (event *Event) signal(name string) error {
	fn, err := command[func(device, event Handle) Result](event.cmds, name)
	if err != nil {
		return err
	}
	_, err = check(name, fn(event.parent, event.handle))
	return err
}
