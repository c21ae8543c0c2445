package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset. Binding InstanceBinding targets the
// provider's instance buffer instead of a bind group buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// InstanceBinding is the pseudo binding index addressing a provider's instance buffer.
const InstanceBinding = -1
