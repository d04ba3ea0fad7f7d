// Package game implements the Banana Rush rules: the falling-object simulation,
// catch resolution, difficulty scaling and the phase state machine.
package game

import "time"

// Kind is the category of a falling object.
type Kind int

const (
	Banana Kind = iota
	Coconut
	Bomb
)

func (k Kind) String() string {
	switch k {
	case Banana:
		return "banana"
	case Coconut:
		return "coconut"
	case Bomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name for JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Difficulty is the selected loss-rule set. DifficultyUnset means none chosen yet.
type Difficulty int

const (
	DifficultyUnset Difficulty = iota
	Easy
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unset"
	}
}

// MarshalText encodes the difficulty by name for JSON snapshots.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Phase is the top-level game mode.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name for JSON snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Vec2 is a point in screen space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandSignal is the per-frame gesture summary fed to the state machine.
// Pointer is nil unless the hand is pointing.
type HandSignal struct {
	Pointing   bool
	ClosedFist bool
	Pointer    *Vec2
}

// FallingObject is one item dropping through the playfield.
type FallingObject struct {
	Kind   Kind    `json:"kind"`
	Pos    Vec2    `json:"pos"`
	Radius float64 `json:"radius"`
	Caught bool    `json:"caught"`

	// Missed is set the first time a banana reaches the bottom edge.
	Missed bool `json:"-"`
}

// Session is the state of one game, owned by the Machine.
type Session struct {
	Score         int
	Lives         int
	Difficulty    Difficulty
	FrameCount    int
	Speed         float64
	SpawnInterval int
	Objects       []*FallingObject
	StartedAt     time.Time
}

// Reset puts the session back to the start-of-game values, keeping the difficulty.
func (s *Session) Reset() {
	s.Score = 0
	s.Lives = StartLives
	s.FrameCount = 0
	s.Speed = BaseSpeed
	s.SpawnInterval = BaseSpawnInterval
	clear(s.Objects)
	s.Objects = s.Objects[:0]
}

// Result summarizes a finished game.
type Result struct {
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
	Frames     int        `json:"frames"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    time.Time  `json:"ended_at"`
}
