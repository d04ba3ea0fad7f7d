package app

import (
	"context"
	"time"
)

// Pacer blocks until the next frame boundary at the given rate.
type Pacer interface {
	Wait(ctx context.Context, fps int) error
}

// TickerPacer paces the loop with a ticker that is reset when the rate changes.
type TickerPacer struct {
	ticker *time.Ticker
	fps    int
}

// NewTickerPacer creates a pacer. The ticker starts on the first Wait.
func NewTickerPacer() *TickerPacer {
	return &TickerPacer{}
}

// Wait blocks for one frame interval at fps, or until ctx is done.
func (p *TickerPacer) Wait(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = MenuFPS
	}

	interval := time.Second / time.Duration(fps)
	switch {
	case p.ticker == nil:
		p.ticker = time.NewTicker(interval)
		p.fps = fps
	case fps != p.fps:
		p.ticker.Reset(interval)
		p.fps = fps
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop stops the ticker.
func (p *TickerPacer) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
