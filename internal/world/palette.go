package world

// MaxPaletteSize is the maximum number of distinct voxel kinds a single
// chunk's palette may hold.
const MaxPaletteSize = 256

// Palette is a bounded ordered sequence of voxel kinds, at most
// MaxPaletteSize entries, with Air at index 0 by construction.
type Palette struct {
	entries []VoxelKind
}

// NewPalette returns a palette holding only Air at index 0.
func NewPalette() *Palette {
	p := &Palette{entries: make([]VoxelKind, 0, 16)}
	p.entries = append(p.entries, Air)
	return p
}

// addType returns the existing index if kind is already registered,
// otherwise appends it. When the palette is full it degrades to index 0
// (PaletteOverflow, spec §7), trading fidelity for progress.
func (p *Palette) addType(kind VoxelKind) uint8 {
	for i, e := range p.entries {
		if e == kind {
			return uint8(i)
		}
	}
	if len(p.entries) >= MaxPaletteSize {
		return 0
	}
	p.entries = append(p.entries, kind)
	return uint8(len(p.entries) - 1)
}

// getType returns the voxel kind stored at index i, or Air if i is
// out of range.
func (p *Palette) getType(i uint8) VoxelKind {
	if int(i) >= len(p.entries) {
		return Air
	}
	return p.entries[i]
}

// Len reports the number of registered palette entries.
func (p *Palette) Len() int { return len(p.entries) }

// reset clears the palette back to just Air at index 0.
func (p *Palette) reset() {
	p.entries = p.entries[:0]
	p.entries = append(p.entries, Air)
}

// clone returns an independent copy of the palette.
func (p *Palette) clone() *Palette {
	cp := &Palette{entries: make([]VoxelKind, len(p.entries))}
	copy(cp.entries, p.entries)
	return cp
}
