package game

import "math/rand/v2"

// Spawner creates and advances falling objects. It holds only the random
// source; the population lives in the Session it is handed.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a Spawner drawing kinds and positions from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Advance counts the frame, spawns on the cadence and moves every uncaught
// object down by the session speed. A running frame is Advance, catch
// resolution, MarkMisses and Prune, in that order.
func (sp *Spawner) Advance(s *Session) {
	s.FrameCount++

	interval := s.SpawnInterval
	if interval <= 0 {
		interval = BaseSpawnInterval
	}
	if s.FrameCount%interval == 0 {
		s.Objects = append(s.Objects, sp.Spawn())
	}

	for _, obj := range s.Objects {
		if !obj.Caught {
			obj.Pos.Y += s.Speed
		}
	}
}

// MarkMisses flags bananas that reached the bottom edge uncaught and returns
// how many were flagged. A banana is flagged once.
func MarkMisses(s *Session) int {
	missed := 0
	for _, obj := range s.Objects {
		if obj.Kind == Banana && !obj.Caught && !obj.Missed && obj.Pos.Y >= ScreenHeight {
			obj.Missed = true
			missed++
		}
	}
	return missed
}

// Prune drops caught objects and objects past the bottom margin.
func Prune(s *Session) {
	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		if obj.Caught || obj.Pos.Y >= ScreenHeight+PruneMargin {
			continue
		}
		kept = append(kept, obj)
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept
}

// Spawn draws a new object above the visible area.
func (sp *Spawner) Spawn() *FallingObject {
	lo := ObjectRadius + SpawnMargin
	hi := ScreenWidth - ObjectRadius - SpawnMargin
	return &FallingObject{
		Kind:   sp.pickKind(),
		Pos:    Vec2{X: float64(lo + sp.rng.IntN(hi-lo+1)), Y: SpawnY},
		Radius: ObjectRadius,
	}
}

func (sp *Spawner) pickKind() Kind {
	r := sp.rng.Float64()
	for i, w := range spawnWeights {
		if r < w {
			return Kind(i)
		}
		r -= w
	}
	return Bomb
}
