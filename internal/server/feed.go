package server

import (
	"sync"

	"github.com/ayusman/bananarush/internal/game"
)

// Feed holds the latest game snapshot for spectators. The game loop publishes
// and HTTP handlers read; neither blocks the other for longer than a copy.
type Feed struct {
	mu   sync.RWMutex
	snap game.Snapshot
	seq  uint64
}

// NewFeed creates a Feed holding an empty menu snapshot.
func NewFeed() *Feed {
	return &Feed{snap: game.Snapshot{Phase: game.PhaseMenu}}
}

// Publish replaces the latest snapshot. The feed takes ownership of snap.
func (f *Feed) Publish(snap game.Snapshot) {
	f.mu.Lock()
	f.snap = snap
	f.seq++
	f.mu.Unlock()
}

// Latest returns the most recent snapshot and its sequence number, which
// increases with every Publish.
func (f *Feed) Latest() (game.Snapshot, uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap, f.seq
}
