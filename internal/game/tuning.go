package game

// Playfield geometry and pacing constants, in screen pixels and frames.
const (
	ScreenWidth  = 800
	ScreenHeight = 600

	ObjectRadius  = 30
	SpawnMargin   = 20  // extra inset beyond the radius on both edges
	SpawnY        = -50 // objects appear above the visible area
	PruneMargin   = 50  // objects are dropped once y >= ScreenHeight+PruneMargin
	PointerRadius = 15  // hit radius of the fingertip cursor

	StartLives = 3

	BaseSpeed         = 3
	BaseSpawnInterval = 30
	MinSpawnInterval  = 10
	SpeedStep         = 10 // score points per +1 speed
	SpawnStep         = 5  // score points per -1 frame of spawn interval
)

// Spawn weights for Banana, Coconut and Bomb, in that order.
var spawnWeights = [...]float64{0.7, 0.2, 0.1}
