package vkbind

import "go.uber.org/zap"

type DescriptorType int32

const (
	DESCRIPTOR_TYPE_SAMPLER                DescriptorType = 0
	DESCRIPTOR_TYPE_COMBINED_IMAGE_SAMPLER DescriptorType = 1
	DESCRIPTOR_TYPE_SAMPLED_IMAGE          DescriptorType = 2
	DESCRIPTOR_TYPE_STORAGE_IMAGE          DescriptorType = 3
	DESCRIPTOR_TYPE_UNIFORM_TEXEL_BUFFER   DescriptorType = 4
	DESCRIPTOR_TYPE_STORAGE_TEXEL_BUFFER   DescriptorType = 5
	DESCRIPTOR_TYPE_UNIFORM_BUFFER         DescriptorType = 6
	DESCRIPTOR_TYPE_STORAGE_BUFFER         DescriptorType = 7
)

type DescriptorPoolCreateFlags uint32

const (
	DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT DescriptorPoolCreateFlags = 0x00000001
)

// Descriptor Set Layout

type DescriptorSetLayoutBinding struct {
	Binding         uint32
	DescriptorType  DescriptorType
	DescriptorCount uint32
	StageFlags      ShaderStageFlags
	// ImmutableSamplers, when set, holds exactly DescriptorCount samplers.
	ImmutableSamplers []*Sampler
}

func (b *DescriptorSetLayoutBinding) vulkanize(a *callArena, out *nativeDescriptorSetLayoutBinding) error {
	if len(b.ImmutableSamplers) > 0 {
		if err := pairedLengths("ImmutableSamplers", len(b.ImmutableSamplers), "DescriptorCount", int(b.DescriptorCount)); err != nil {
			return err
		}
	}
	out.binding = b.Binding
	out.descriptorType = b.DescriptorType
	out.descriptorCount = b.DescriptorCount
	out.stageFlags = b.StageFlags

	var err error
	_, out.pImmutableSamplers, err = marshalHandles(a, "ImmutableSamplers", b.ImmutableSamplers)
	return err
}

type DescriptorSetLayoutCreateInfo struct {
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
}

func (info *DescriptorSetLayoutCreateInfo) vulkanize(a *callArena) (*nativeDescriptorSetLayoutCreateInfo, error) {
	cInfo := arenaNew[nativeDescriptorSetLayoutCreateInfo](a)
	cInfo.sType = DESCRIPTOR_SET_LAYOUT_CREATE_INFO
	cInfo.flags = info.Flags

	var err error
	cInfo.bindingCount, cInfo.pBindings, err = marshalSlice(a, "Bindings", info.Bindings, (*DescriptorSetLayoutBinding).vulkanize)
	if err != nil {
		return nil, err
	}
	return cInfo, nil
}

type DescriptorSetLayout struct{ *object }

func (device *Device) CreateDescriptorSetLayout(createInfo *DescriptorSetLayoutCreateInfo, alloc *AllocationCallbacks) (*DescriptorSetLayout, error) {
	if createInfo == nil {
		createInfo = &DescriptorSetLayoutCreateInfo{}
	}
	o, err := create(device.object, OBJECT_TYPE_DESCRIPTOR_SET_LAYOUT, "vkCreateDescriptorSetLayout", "vkDestroyDescriptorSetLayout", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &DescriptorSetLayout{o}, nil
}

// Descriptor Pool

type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

func (s *DescriptorPoolSize) vulkanize(_ *callArena, out *nativeDescriptorPoolSize) error {
	out.typ = s.Type
	out.descriptorCount = s.DescriptorCount
	return nil
}

type DescriptorPoolCreateInfo struct {
	Flags     DescriptorPoolCreateFlags
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

func (info *DescriptorPoolCreateInfo) vulkanize(a *callArena) (*nativeDescriptorPoolCreateInfo, error) {
	if info.MaxSets == 0 {
		return nil, invalidArgument("descriptor pool MaxSets must be greater than zero")
	}
	if len(info.PoolSizes) == 0 {
		return nil, invalidArgument("descriptor pool needs at least one pool size")
	}
	cInfo := arenaNew[nativeDescriptorPoolCreateInfo](a)
	cInfo.sType = DESCRIPTOR_POOL_CREATE_INFO
	cInfo.flags = info.Flags
	cInfo.maxSets = info.MaxSets

	var err error
	cInfo.poolSizeCount, cInfo.pPoolSizes, err = marshalSlice(a, "PoolSizes", info.PoolSizes, (*DescriptorPoolSize).vulkanize)
	if err != nil {
		return nil, err
	}
	return cInfo, nil
}

// DescriptorPool owns the sets allocated from it. Resetting or disposing
// the pool invalidates every set; the driver reclaims them without
// individual free calls.
type DescriptorPool struct {
	*object
	flags DescriptorPoolCreateFlags
}

func (device *Device) CreateDescriptorPool(createInfo *DescriptorPoolCreateInfo, alloc *AllocationCallbacks) (*DescriptorPool, error) {
	if createInfo == nil {
		return nil, invalidArgument("DescriptorPoolCreateInfo is nil")
	}
	o, err := create(device.object, OBJECT_TYPE_DESCRIPTOR_POOL, "vkCreateDescriptorPool", "vkDestroyDescriptorPool", alloc, createInfo.vulkanize)
	if err != nil {
		return nil, err
	}
	return &DescriptorPool{object: o, flags: createInfo.Flags}, nil
}

// CanFree reports whether sets from this pool may be freed individually.
func (pool *DescriptorPool) CanFree() bool {
	return pool.flags&DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT != 0
}

// Reset returns every set allocated from the pool to it. Sets allocated
// before the reset become invalid and disposing them is a no-op.
func (pool *DescriptorPool) Reset() error {
	const name = "vkResetDescriptorPool"
	fn, err := command[func(device, pool Handle, flags uint32) Result](pool.cmds, name)
	if err != nil {
		return err
	}
	if _, err := check(name, fn(pool.parent, pool.handle, 0)); err != nil {
		return err
	}
	dropped := pool.arena(OBJECT_TYPE_DESCRIPTOR_SET).reset()
	for _, set := range dropped {
		set.orphan()
	}
	pool.logger().Debug("descriptor pool reset")
	return nil
}

// Descriptor Set Allocation

type DescriptorSetAllocateInfo struct {
	DescriptorPool *DescriptorPool
	SetLayouts     []*DescriptorSetLayout
}

type DescriptorSet struct {
	*object
	pool *DescriptorPool
}

// Pool returns the pool the set was allocated from.
func (set *DescriptorSet) Pool() *DescriptorPool { return set.pool }

// AllocateDescriptorSets allocates one set per layout. Disposing a set
// frees it only when its pool was created with
// DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT; otherwise the set lives
// until its pool is reset or disposed.
func (device *Device) AllocateDescriptorSets(allocInfo *DescriptorSetAllocateInfo) ([]*DescriptorSet, error) {
	const name = "vkAllocateDescriptorSets"
	if allocInfo == nil || isNilOwner(allocInfo.DescriptorPool) {
		return nil, invalidArgument("DescriptorSetAllocateInfo.DescriptorPool is nil")
	}
	if len(allocInfo.SetLayouts) == 0 {
		return nil, invalidArgument("no descriptor set layouts to allocate")
	}
	pool := allocInfo.DescriptorPool

	allocFn, err := command[func(device Handle, info *nativeDescriptorSetAllocateInfo, sets *Handle) Result](device.cmds, name)
	if err != nil {
		return nil, err
	}
	var teardown func(*object)
	if pool.CanFree() {
		freeFn, err := command[func(device, pool Handle, count uint32, sets *Handle) Result](device.cmds, "vkFreeDescriptorSets")
		if err != nil {
			return nil, err
		}
		teardown = func(o *object) {
			a := newCallArena()
			defer a.release()
			h := arenaNew[Handle](a)
			*h = o.handle
			if r := freeFn(pool.parent, o.parent, 1, h); r != SUCCESS {
				o.logger().Warn("freeing descriptor set failed", zap.Stringer("result", r))
			}
		}
	}

	a := newCallArena()
	defer a.release()

	cInfo := arenaNew[nativeDescriptorSetAllocateInfo](a)
	cInfo.sType = DESCRIPTOR_SET_ALLOCATE_INFO
	cInfo.descriptorPool = pool.Handle()
	cInfo.descriptorSetCount, cInfo.pSetLayouts, err = marshalHandles(a, "SetLayouts", allocInfo.SetLayouts)
	if err != nil {
		return nil, err
	}

	handles, pSets := arenaSlice[Handle](a, len(allocInfo.SetLayouts))
	if r := allocFn(device.handle, cInfo, pSets); r != SUCCESS {
		return nil, driverError(name, r)
	}

	sets := make([]*DescriptorSet, len(handles))
	for i, h := range handles {
		sets[i] = &DescriptorSet{
			object: pool.child(OBJECT_TYPE_DESCRIPTOR_SET, h, nil, teardown),
			pool:   pool,
		}
	}
	return sets, nil
}

// Descriptor Set Updates

type DescriptorImageInfo struct {
	Sampler     *Sampler
	ImageView   *ImageView
	ImageLayout ImageLayout
}

func (info *DescriptorImageInfo) vulkanize(_ *callArena, out *nativeDescriptorImageInfo) error {
	out.sampler = optionalHandle(info.Sampler)
	out.imageView = optionalHandle(info.ImageView)
	out.imageLayout = info.ImageLayout
	return nil
}

type DescriptorBufferInfo struct {
	Buffer *Buffer
	Offset uint64
	Range  uint64
}

func (info *DescriptorBufferInfo) vulkanize(_ *callArena, out *nativeDescriptorBufferInfo) error {
	if isNilOwner(info.Buffer) {
		return invalidArgument("DescriptorBufferInfo.Buffer is nil")
	}
	out.buffer = info.Buffer.Handle()
	out.offset = info.Offset
	out.rng = info.Range
	return nil
}

// WriteDescriptorSet updates consecutive descriptors of one binding. Exactly
// one of ImageInfo, BufferInfo and TexelBufferViews must be set; its length
// is the descriptor count.
type WriteDescriptorSet struct {
	DstSet           *DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorType   DescriptorType
	ImageInfo        []DescriptorImageInfo
	BufferInfo       []DescriptorBufferInfo
	TexelBufferViews []*BufferView
}

func (w *WriteDescriptorSet) vulkanize(a *callArena, out *nativeWriteDescriptorSet) error {
	if isNilOwner(w.DstSet) {
		return invalidArgument("WriteDescriptorSet.DstSet is nil")
	}
	payloads := 0
	for _, n := range []int{len(w.ImageInfo), len(w.BufferInfo), len(w.TexelBufferViews)} {
		if n > 0 {
			payloads++
		}
	}
	if payloads != 1 {
		return invalidArgument("WriteDescriptorSet needs exactly one of ImageInfo, BufferInfo or TexelBufferViews, got %d", payloads)
	}

	out.sType = WRITE_DESCRIPTOR_SET
	out.dstSet = w.DstSet.Handle()
	out.dstBinding = w.DstBinding
	out.dstArrayElement = w.DstArrayElement
	out.descriptorType = w.DescriptorType

	var err error
	switch {
	case len(w.ImageInfo) > 0:
		out.descriptorCount, out.pImageInfo, err = marshalSlice(a, "ImageInfo", w.ImageInfo, (*DescriptorImageInfo).vulkanize)
	case len(w.BufferInfo) > 0:
		out.descriptorCount, out.pBufferInfo, err = marshalSlice(a, "BufferInfo", w.BufferInfo, (*DescriptorBufferInfo).vulkanize)
	default:
		out.descriptorCount, out.pTexelBufferView, err = marshalHandles(a, "TexelBufferViews", w.TexelBufferViews)
	}
	return err
}

type CopyDescriptorSet struct {
	SrcSet          *DescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          *DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

func (c *CopyDescriptorSet) vulkanize(_ *callArena, out *nativeCopyDescriptorSet) error {
	if isNilOwner(c.SrcSet) || isNilOwner(c.DstSet) {
		return invalidArgument("CopyDescriptorSet needs both SrcSet and DstSet")
	}
	out.sType = COPY_DESCRIPTOR_SET
	out.srcSet = c.SrcSet.Handle()
	out.srcBinding = c.SrcBinding
	out.srcArrayElement = c.SrcArrayElement
	out.dstSet = c.DstSet.Handle()
	out.dstBinding = c.DstBinding
	out.dstArrayElement = c.DstArrayElement
	out.descriptorCount = c.DescriptorCount
	return nil
}

// UpdateDescriptorSets applies writes and then copies. Nothing is sent to
// the driver when any element is malformed.
func (device *Device) UpdateDescriptorSets(writes []WriteDescriptorSet, copies []CopyDescriptorSet) error {
	if len(writes) == 0 && len(copies) == 0 {
		return nil
	}
	fn, err := command[func(device Handle, writeCount uint32, writes *nativeWriteDescriptorSet, copyCount uint32, copies *nativeCopyDescriptorSet)](device.cmds, "vkUpdateDescriptorSets")
	if err != nil {
		return err
	}

	a := newCallArena()
	defer a.release()

	writeCount, pWrites, err := marshalSlice(a, "writes", writes, (*WriteDescriptorSet).vulkanize)
	if err != nil {
		return err
	}
	copyCount, pCopies, err := marshalSlice(a, "copies", copies, (*CopyDescriptorSet).vulkanize)
	if err != nil {
		return err
	}
	fn(device.handle, writeCount, pWrites, copyCount, pCopies)
	return nil
}
