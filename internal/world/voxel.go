package world

import "sync"

// VoxelKind is the small closed enumeration of voxel types the world ever
// stores. It is the numeric tag persisted in a chunk's palette.
type VoxelKind uint8

const (
	Air VoxelKind = iota
	Stone
	Dirt
	Grass
	Sand
	Water
	Wood
	Leaves
	Coal
	Iron
	Gold
	Diamond
	Lava
	Snow
	Ice

	numVoxelKinds
)

// VoxelProps holds the static, process-wide properties of a voxel kind.
type VoxelProps struct {
	IsSolid    bool
	IsFluid    bool
	IsGranular bool
	Density    float32
	Friction   float32
	Luminosity uint8
	Color      uint32 // packed 0xRRGGBB
}

var (
	voxelPropsOnce sync.Once
	voxelProps     [numVoxelKinds]VoxelProps
)

// initVoxelProps builds the static property table exactly once, idempotently,
// before any worker goroutine reads it (see spec §5 "Shared-resource policy").
func initVoxelProps() {
	voxelPropsOnce.Do(func() {
		voxelProps = [numVoxelKinds]VoxelProps{
			Air:     {Density: 0, Friction: 1, Color: 0x000000},
			Stone:   {IsSolid: true, Density: 2.7, Friction: 1, Color: 0x7f7f7f},
			Dirt:    {IsSolid: true, Density: 1.5, Friction: 1, Color: 0x6b4226},
			Grass:   {IsSolid: true, Density: 1.4, Friction: 1, Color: 0x4caf50},
			Sand:    {IsSolid: true, IsGranular: true, Density: 1.6, Friction: 0.9, Color: 0xe0d18f},
			Water:   {IsFluid: true, Density: 1.0, Friction: 0.3, Color: 0x3f76e4},
			Wood:    {IsSolid: true, Density: 0.7, Friction: 1, Color: 0x8b5a2b},
			Leaves:  {IsSolid: true, Density: 0.3, Friction: 1, Color: 0x2e7d32},
			Coal:    {IsSolid: true, Density: 2.8, Friction: 1, Color: 0x2b2b2b},
			Iron:    {IsSolid: true, Density: 4.0, Friction: 1, Color: 0xd8c4a0},
			Gold:    {IsSolid: true, Density: 6.0, Friction: 1, Color: 0xffd700},
			Diamond: {IsSolid: true, Density: 3.5, Friction: 1, Luminosity: 2, Color: 0x77e8e0},
			Lava:    {IsFluid: true, Density: 3.1, Friction: 0.2, Luminosity: 15, Color: 0xff5722},
			Snow:    {IsSolid: true, IsGranular: true, Density: 0.5, Friction: 0.8, Color: 0xffffff},
			Ice:     {IsSolid: true, Density: 0.9, Friction: 0.05, Color: 0xa8d8ff},
		}
	})
}

// Props returns the static properties of a voxel kind. Out-of-range kinds
// return the Air properties.
func Props(k VoxelKind) VoxelProps {
	initVoxelProps()
	if int(k) >= len(voxelProps) {
		return voxelProps[Air]
	}
	return voxelProps[k]
}

func (k VoxelKind) IsSolid() bool    { return Props(k).IsSolid }
func (k VoxelKind) IsFluid() bool    { return Props(k).IsFluid }
func (k VoxelKind) IsGranular() bool { return Props(k).IsGranular }
