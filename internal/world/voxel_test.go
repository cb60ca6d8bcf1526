package world

import "testing"

func TestAirIsInert(t *testing.T) {
	p := Props(Air)
	if p.IsSolid || p.IsFluid || p.IsGranular {
		t.Fatalf("expected Air to be inert, got %+v", p)
	}
}

func TestOutOfRangeKindFallsBackToAir(t *testing.T) {
	p := Props(VoxelKind(250))
	if p != Props(Air) {
		t.Fatalf("expected out-of-range kind to report Air properties")
	}
}

func TestGranularAndFluidAreDisjoint(t *testing.T) {
	for k := Air; k < numVoxelKinds; k++ {
		if k.IsGranular() && k.IsFluid() {
			t.Fatalf("kind %v is both granular and fluid", k)
		}
	}
}

func TestSandAndSnowAreGranular(t *testing.T) {
	if !Sand.IsGranular() || !Snow.IsGranular() {
		t.Fatalf("expected Sand and Snow to be granular")
	}
}

func TestWaterAndLavaAreFluid(t *testing.T) {
	if !Water.IsFluid() || !Lava.IsFluid() {
		t.Fatalf("expected Water and Lava to be fluid")
	}
}
