package sparse

// Block is a contiguous owned run of bytes at a known start address within
// the sparse address space.
//
// Stored blocks always satisfy len(Data) > 0; empty blocks are removed, never
// kept in the block list. The engine owns the Data slice of every stored
// block: callers receive copies unless an API is documented as zero-copy.
type Block struct {
	Start int64  // Absolute address of the first byte
	Data  []byte // Block content, never empty when stored
}

// Endex returns the exclusive end address of the block.
func (b Block) Endex() int64 {
	return b.Start + int64(len(b.Data))
}

// clone returns a deep copy of the block.
func (b Block) clone() Block {
	data := make([]byte, len(b.Data))
	copy(data, b.Data)
	return Block{Start: b.Start, Data: data}
}

// contains reports whether addr falls inside the block.
func (b Block) contains(addr int64) bool {
	return b.Start <= addr && addr < b.Endex()
}
