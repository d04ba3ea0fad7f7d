package game

import (
	"math/rand/v2"
	"time"
)

// CommandType identifies a discrete UI command.
type CommandType int

const (
	CmdQuit CommandType = iota
	CmdSelectDifficulty
	CmdStart
)

// Command is one UI event consumed by the Machine.
type Command struct {
	Type       CommandType
	Difficulty Difficulty // only for CmdSelectDifficulty
}

// Quit returns a quit command.
func Quit() Command { return Command{Type: CmdQuit} }

// Start returns a start command.
func Start() Command { return Command{Type: CmdStart} }

// Select returns a difficulty selection command.
func Select(d Difficulty) Command { return Command{Type: CmdSelectDifficulty, Difficulty: d} }

// Outcome reports what happened during one Step.
type Outcome struct {
	From, To Phase
	Catches  []Catch
	Missed   int
	// Result is set on the step that ends a game.
	Result *Result
}

// Machine drives the phases of a game and owns the session.
type Machine struct {
	phase   Phase
	session Session
	spawner *Spawner
	last    *Result
	done    bool
	now     func() time.Time
}

// NewMachine creates a Machine in the menu with no difficulty selected.
func NewMachine(rng *rand.Rand) *Machine {
	m := &Machine{
		phase:   PhaseMenu,
		spawner: NewSpawner(rng),
		now:     time.Now,
	}
	m.session.Reset()
	return m
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase { return m.phase }

// Session exposes the current session. Callers must not retain it across steps.
func (m *Machine) Session() *Session { return &m.session }

// Difficulty returns the selected difficulty.
func (m *Machine) Difficulty() Difficulty { return m.session.Difficulty }

// Done reports whether a quit command was received.
func (m *Machine) Done() bool { return m.done }

// Apply consumes one command. Commands that do not fit the phase are ignored.
func (m *Machine) Apply(cmd Command) {
	switch cmd.Type {
	case CmdQuit:
		m.done = true
	case CmdSelectDifficulty:
		if m.phase != PhaseMenu {
			return
		}
		switch cmd.Difficulty {
		case Easy, Medium, Hard:
			m.session.Difficulty = cmd.Difficulty
		}
	case CmdStart:
		if m.phase != PhaseMenu || m.session.Difficulty == DifficultyUnset {
			return
		}
		m.session.Reset()
		m.session.StartedAt = m.now()
		m.phase = PhaseRunning
	}
}

// Step evaluates the phase for this frame's hand signal and, while running,
// advances the simulation by exactly one tick.
func (m *Machine) Step(sig HandSignal) Outcome {
	out := Outcome{From: m.phase}

	switch m.phase {
	case PhaseGameOver:
		m.toMenu()
	case PhaseRunning:
		if sig.ClosedFist {
			m.phase = PhasePaused
		}
	case PhasePaused:
		if sig.Pointing && !sig.ClosedFist {
			m.phase = PhaseRunning
		}
	}

	if m.phase == PhaseRunning {
		m.simulate(sig, &out)
	}

	out.To = m.phase
	return out
}

func (m *Machine) simulate(sig HandSignal, out *Outcome) {
	s := &m.session
	rules := RulesFor(s.Difficulty)

	// Catches resolve before misses so one banana never gets both effects.
	m.spawner.Advance(s)
	out.Catches = Resolve(s, sig.Pointer, rules)
	out.Missed = MarkMisses(s)
	ChargeMisses(s, out.Missed, rules)
	Prune(s)

	p := Tune(s.Score, s.Difficulty)
	s.Speed = p.Speed
	s.SpawnInterval = p.SpawnInterval

	if s.Lives <= 0 {
		m.phase = PhaseGameOver
		m.last = &Result{
			Difficulty: s.Difficulty,
			Score:      s.Score,
			Frames:     s.FrameCount,
			StartedAt:  s.StartedAt,
			EndedAt:    m.now(),
		}
		out.Result = m.last
	}
}

func (m *Machine) toMenu() {
	m.phase = PhaseMenu
	m.session.Difficulty = DifficultyUnset
	clear(m.session.Objects)
	m.session.Objects = m.session.Objects[:0]
}
