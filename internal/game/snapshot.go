package game

// Snapshot is a read-only copy of the game for rendering and spectators.
type Snapshot struct {
	Phase         Phase           `json:"phase"`
	Difficulty    Difficulty      `json:"difficulty"`
	Score         int             `json:"score"`
	Lives         int             `json:"lives"`
	Frame         int             `json:"frame"`
	Speed         float64         `json:"speed"`
	SpawnInterval int             `json:"spawn_interval"`
	Objects       []FallingObject `json:"objects"`
	Pointer       *Vec2           `json:"pointer,omitempty"`
	Last          *Result         `json:"last,omitempty"`
	Best          int             `json:"best"`
}

// Snapshot copies the current state. The pointer is the one seen this frame.
func (m *Machine) Snapshot(pointer *Vec2) Snapshot {
	s := &m.session
	snap := Snapshot{
		Phase:         m.phase,
		Difficulty:    s.Difficulty,
		Score:         s.Score,
		Lives:         s.Lives,
		Frame:         s.FrameCount,
		Speed:         s.Speed,
		SpawnInterval: s.SpawnInterval,
		Objects:       make([]FallingObject, 0, len(s.Objects)),
	}
	for _, obj := range s.Objects {
		if !obj.Caught {
			snap.Objects = append(snap.Objects, *obj)
		}
	}
	if pointer != nil {
		p := *pointer
		snap.Pointer = &p
	}
	if m.last != nil {
		r := *m.last
		snap.Last = &r
	}
	return snap
}
