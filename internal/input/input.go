// Package input turns keyboard and menu events into game commands.
package input

import (
	"sync"

	"github.com/ayusman/bananarush/internal/game"
)

// Key codes shared by the highgui and ebiten frontends.
const (
	KeyEscape = 27
)

// Source yields the commands received since the last poll.
type Source interface {
	Poll() []game.Command
}

// FromKey maps a key code to a command. Unmapped keys report false.
func FromKey(key int) (game.Command, bool) {
	switch key {
	case '1':
		return game.Select(game.Easy), true
	case '2':
		return game.Select(game.Medium), true
	case '3':
		return game.Select(game.Hard), true
	case 's', 'S':
		return game.Start(), true
	case 'q', 'Q', KeyEscape:
		return game.Quit(), true
	default:
		return game.Command{}, false
	}
}

// QueueSize bounds the commands buffered between polls.
const QueueSize = 16

// Queue buffers commands pushed from other goroutines, such as the tray menu,
// until the game loop polls them.
type Queue struct {
	ch chan game.Command
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{ch: make(chan game.Command, QueueSize)}
}

// Push adds a command without blocking. It reports false when the queue is
// full and the command was dropped.
func (q *Queue) Push(cmd game.Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

// Poll drains the queue.
func (q *Queue) Poll() []game.Command {
	var cmds []game.Command
	for {
		select {
		case cmd := <-q.ch:
			cmds = append(cmds, cmd)
		default:
			return cmds
		}
	}
}

// Multi merges several sources, in order.
type Multi struct {
	mu      sync.Mutex
	sources []Source
}

// NewMulti combines sources. Nil sources are skipped.
func NewMulti(sources ...Source) *Multi {
	m := &Multi{}
	for _, s := range sources {
		m.Add(s)
	}
	return m
}

// Add appends a source.
func (m *Multi) Add(s Source) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, s)
}

// Poll polls every source and concatenates the results.
func (m *Multi) Poll() []game.Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cmds []game.Command
	for _, s := range m.sources {
		cmds = append(cmds, s.Poll()...)
	}
	return cmds
}
