package world

import "testing"

func TestPaletteStartsWithAir(t *testing.T) {
	p := NewPalette()
	if p.Len() != 1 {
		t.Fatalf("expected len 1, got %d", p.Len())
	}
	if p.getType(0) != Air {
		t.Fatalf("expected index 0 to be Air")
	}
}

func TestPaletteAddTypeReusesIndex(t *testing.T) {
	p := NewPalette()
	a := p.addType(Stone)
	b := p.addType(Dirt)
	c := p.addType(Stone)
	if a != c {
		t.Fatalf("expected addType(Stone) to be idempotent, got %d then %d", a, c)
	}
	if a == b {
		t.Fatalf("expected distinct kinds to get distinct indices")
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
}

func TestPaletteOverflowDegradesToAir(t *testing.T) {
	p := NewPalette()
	for i := 0; i < MaxPaletteSize+10; i++ {
		p.addType(VoxelKind(i%14 + 1))
	}
	if p.Len() > MaxPaletteSize {
		t.Fatalf("palette grew past MaxPaletteSize: %d", p.Len())
	}
	// The loop above registers only kinds 1..14. VoxelKind is one byte, so
	// distinct kinds can fill the palette only by registering every value;
	// pad it to the cap with a repeated kind so kind 250 stays absent.
	for p.Len() < MaxPaletteSize {
		p.entries = append(p.entries, Stone)
	}
	// Once full, further distinct kinds degrade to index 0 (Air) rather
	// than growing or panicking.
	idx := p.addType(VoxelKind(250))
	if idx != 0 {
		t.Fatalf("expected overflow addType to degrade to index 0, got %d", idx)
	}
}

func TestPaletteResetAndClone(t *testing.T) {
	p := NewPalette()
	p.addType(Stone)
	p.addType(Dirt)

	clone := p.clone()
	p.reset()

	if p.Len() != 1 {
		t.Fatalf("expected reset palette to have len 1, got %d", p.Len())
	}
	if clone.Len() != 3 {
		t.Fatalf("expected clone to retain 3 entries, got %d", clone.Len())
	}
}
