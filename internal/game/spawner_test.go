package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// tick runs a frame with nothing caught.
func tick(sp *Spawner, s *Session) int {
	sp.Advance(s)
	missed := MarkMisses(s)
	Prune(s)
	return missed
}

func newTestSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

func TestSpawner_TickMovesBySpeed(t *testing.T) {
	sp := NewSpawner(newTestRand())
	s := newTestSession()
	s.SpawnInterval = 1000 // no spawns during the test
	s.Speed = 4
	s.Objects = []*FallingObject{
		{Kind: Banana, Pos: Vec2{X: 100, Y: 0}, Radius: ObjectRadius},
		{Kind: Bomb, Pos: Vec2{X: 300, Y: 120}, Radius: ObjectRadius},
	}

	for i := 0; i < 5; i++ {
		before := make([]float64, len(s.Objects))
		for j, obj := range s.Objects {
			before[j] = obj.Pos.Y
		}

		tick(sp, s)

		if len(s.Objects) != len(before) {
			t.Fatalf("tick %d: population changed from %d to %d", i, len(before), len(s.Objects))
		}
		for j, obj := range s.Objects {
			if got := obj.Pos.Y - before[j]; got != s.Speed {
				t.Errorf("tick %d object %d: moved %v, want %v", i, j, got, s.Speed)
			}
		}
	}

	if s.FrameCount != 5 {
		t.Errorf("FrameCount = %d, want 5", s.FrameCount)
	}
}

func TestSpawner_SpawnCadence(t *testing.T) {
	sp := NewSpawner(newTestRand())
	s := newTestSession()
	s.SpawnInterval = 3
	s.Speed = 1

	spawned := 0
	for i := 1; i <= 12; i++ {
		before := len(s.Objects)
		tick(sp, s)
		if len(s.Objects) > before {
			spawned++
			if i%3 != 0 {
				t.Errorf("spawned on frame %d, interval is 3", i)
			}
		}
	}
	if spawned != 4 {
		t.Errorf("spawned %d objects in 12 frames, want 4", spawned)
	}
}

func TestSpawner_SpawnPlacement(t *testing.T) {
	sp := NewSpawner(newTestRand())
	lo := float64(ObjectRadius + SpawnMargin)
	hi := float64(ScreenWidth - ObjectRadius - SpawnMargin)

	for i := 0; i < 2000; i++ {
		obj := sp.Spawn()
		if obj.Pos.X < lo || obj.Pos.X > hi {
			t.Fatalf("spawn x = %v outside [%v, %v]", obj.Pos.X, lo, hi)
		}
		if obj.Pos.X != math.Trunc(obj.Pos.X) {
			t.Fatalf("spawn x = %v is not a whole pixel", obj.Pos.X)
		}
		if obj.Pos.Y != SpawnY {
			t.Fatalf("spawn y = %v, want %v", obj.Pos.Y, SpawnY)
		}
		if obj.Radius != ObjectRadius || obj.Caught {
			t.Fatalf("unexpected spawn %+v", obj)
		}
	}
}

func TestSpawner_KindDistribution(t *testing.T) {
	sp := NewSpawner(newTestRand())
	const n = 20000

	var counts [3]int
	for i := 0; i < n; i++ {
		counts[sp.Spawn().Kind]++
	}

	for k, want := range spawnWeights {
		got := float64(counts[k]) / n
		if math.Abs(got-want) > 0.02 {
			t.Errorf("%v frequency = %.3f, want %.2f ± 0.02", Kind(k), got, want)
		}
	}
}

func TestSpawner_Prune(t *testing.T) {
	sp := NewSpawner(newTestRand())
	s := newTestSession()
	s.SpawnInterval = 1000
	s.Speed = 3
	s.Objects = []*FallingObject{
		{Kind: Coconut, Pos: Vec2{X: 100, Y: ScreenHeight + PruneMargin - 2}, Radius: ObjectRadius},
		{Kind: Banana, Pos: Vec2{X: 200, Y: 100}, Radius: ObjectRadius, Caught: true},
		{Kind: Bomb, Pos: Vec2{X: 300, Y: 100}, Radius: ObjectRadius},
	}

	tick(sp, s)

	if len(s.Objects) != 1 {
		t.Fatalf("expected 1 surviving object, got %d", len(s.Objects))
	}
	if s.Objects[0].Kind != Bomb {
		t.Errorf("surviving object = %v, want bomb", s.Objects[0].Kind)
	}
}

func TestSpawner_CaughtObjectsDoNotMove(t *testing.T) {
	sp := NewSpawner(newTestRand())
	s := newTestSession()
	s.SpawnInterval = 1000
	caught := &FallingObject{Kind: Banana, Pos: Vec2{X: 200, Y: 100}, Radius: ObjectRadius, Caught: true}
	s.Objects = []*FallingObject{caught}

	tick(sp, s)

	if caught.Pos.Y != 100 {
		t.Errorf("caught object moved to y=%v", caught.Pos.Y)
	}
}

func TestSpawner_MissedBananaCountedOnce(t *testing.T) {
	sp := NewSpawner(newTestRand())
	s := newTestSession()
	s.SpawnInterval = 1000
	s.Speed = 3
	s.Objects = []*FallingObject{
		{Kind: Banana, Pos: Vec2{X: 100, Y: ScreenHeight - 2}, Radius: ObjectRadius},
		{Kind: Coconut, Pos: Vec2{X: 200, Y: ScreenHeight - 2}, Radius: ObjectRadius},
	}

	if got := tick(sp, s); got != 1 {
		t.Fatalf("first tick missed = %d, want 1", got)
	}
	for i := 0; i < 5; i++ {
		if got := tick(sp, s); got != 0 {
			t.Fatalf("tick %d missed = %d, want 0", i, got)
		}
	}
}

func TestMarkMisses_SkipsCaught(t *testing.T) {
	s := newTestSession()
	s.Objects = []*FallingObject{
		{Kind: Banana, Pos: Vec2{X: 100, Y: ScreenHeight + 1}, Radius: ObjectRadius, Caught: true},
		{Kind: Banana, Pos: Vec2{X: 200, Y: ScreenHeight + 1}, Radius: ObjectRadius},
	}

	if got := MarkMisses(s); got != 1 {
		t.Fatalf("missed = %d, want 1", got)
	}
	if s.Objects[0].Missed {
		t.Error("caught banana flagged as missed")
	}
	if got := MarkMisses(s); got != 0 {
		t.Errorf("second pass missed = %d, want 0", got)
	}
}

func TestSpawner_Reproducible(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewPCG(42, 42)))
	b := NewSpawner(rand.New(rand.NewPCG(42, 42)))

	for i := 0; i < 100; i++ {
		oa, ob := a.Spawn(), b.Spawn()
		if oa.Kind != ob.Kind || oa.Pos != ob.Pos {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, oa, ob)
		}
	}
}
