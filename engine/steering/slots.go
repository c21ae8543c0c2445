package steering

// SlotTable maps each body to one of the BodyCount target slots. The mapping is always a
// rotation of the identity, so every slot is owned by exactly one body.
type SlotTable struct {
	offset int
}

// Slot returns the slot index currently assigned to body i.
//
// Parameters:
//   - i: the body index
//
// Returns:
//   - int: the slot index in [0, BodyCount)
func (t SlotTable) Slot(i int) int {
	return ((i+t.offset)%BodyCount + BodyCount) % BodyCount
}

// Cycle rotates the assignment by dir steps. Positive is "next", negative "previous".
//
// Parameters:
//   - dir: the number of steps
//
// Returns:
//   - SlotTable: the rotated table
func (t SlotTable) Cycle(dir int) SlotTable {
	return SlotTable{offset: ((t.offset+dir)%BodyCount + BodyCount) % BodyCount}
}

// Offset returns the active rotation, the index of the slot held by body 0.
func (t SlotTable) Offset() int {
	return t.offset
}
