// Package app runs the Banana Rush game loop: one camera frame, one batch of
// input commands and one simulation tick per iteration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ayusman/bananarush/internal/capture"
	"github.com/ayusman/bananarush/internal/detector"
	"github.com/ayusman/bananarush/internal/game"
	"github.com/ayusman/bananarush/internal/gesture"
	"github.com/ayusman/bananarush/internal/input"
	"github.com/ayusman/bananarush/internal/render"
	"github.com/ayusman/bananarush/internal/sound"
	"github.com/ayusman/bananarush/internal/store"
)

// Loop rates.
const (
	// MenuFPS is the polling rate in the menu, while paused and on game over.
	MenuFPS = 10
	// RunningFPS is the frame rate during play.
	RunningFPS = 30
)

// detectErrLogEvery is how many consecutive detector failures pass between
// two log lines.
const detectErrLogEvery = 100

// ErrFrameSourceEnded is returned once the camera stops delivering frames.
// It ends the session.
var ErrFrameSourceEnded = errors.New("frame source ended")

// TargetFPS returns the loop rate for a phase.
func TargetFPS(p game.Phase) int {
	if p == game.PhaseRunning {
		return RunningFPS
	}
	return MenuFPS
}

// Sounds plays cue sounds. *sound.Player implements it.
type Sounds interface {
	Play(sound.Cue)
}

// Publisher receives the snapshot of every iteration.
type Publisher interface {
	Publish(game.Snapshot)
}

// Publishers fans a snapshot out to several publishers.
type Publishers []Publisher

// Publish implements Publisher.
func (ps Publishers) Publish(snap game.Snapshot) {
	for _, p := range ps {
		p.Publish(snap)
	}
}

// Config holds the collaborators of the game loop. Camera, Detector and
// Canvas are required.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Canvas   render.Canvas
	Input    input.Source
	Pacer    Pacer
	Store    *store.Store
	Sounds   Sounds
	Feed     Publisher
	// Seed seeds the spawner. Zero picks a time based seed.
	Seed uint64
}

// App is the game loop.
type App struct {
	config     Config
	machine    *game.Machine
	classifier *gesture.Classifier
	best       int
	mu         sync.Mutex
	started    bool
	detectErrs int
}

// New creates an App in the menu.
func New(config Config) (*App, error) {
	if config.Camera == nil {
		return nil, errors.New("app: camera is required")
	}
	if config.Detector == nil {
		return nil, errors.New("app: detector is required")
	}
	if config.Canvas == nil {
		return nil, errors.New("app: canvas is required")
	}
	if config.Input == nil {
		config.Input = input.NewMulti()
	}
	if config.Pacer == nil {
		config.Pacer = NewTickerPacer()
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return &App{
		config:     config,
		machine:    game.NewMachine(rng),
		classifier: gesture.NewClassifier(game.ScreenWidth, game.ScreenHeight),
	}, nil
}

// Start opens the camera at the menu rate.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return nil
	}
	if !a.config.Camera.IsOpen() {
		if err := a.config.Camera.Open(); err != nil {
			return fmt.Errorf("open camera: %w", err)
		}
	}
	a.config.Camera.SetFPS(TargetFPS(a.machine.Phase()))
	a.started = true

	log.Println("Game loop started")
	return nil
}

// Stop releases the camera and the detector.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return
	}
	a.started = false

	if err := a.config.Camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if err := a.config.Detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Game loop stopped")
}

// Run steps the game until quit, context cancellation or the end of the frame
// source, waiting on the pacer between iterations.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		done, err := a.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if err := a.config.Pacer.Wait(ctx, a.TargetFPS()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("pacer: %w", err)
		}
	}
}

// Step runs one iteration:
// 1. Read a frame; failure ends the session
// 2. Detect hands; detector errors count as no hand
// 3. Classify the first hand into a signal
// 4. Apply this iteration's commands
// 5. Advance the state machine by one tick
// 6. Follow phase changes with the camera rate, record finished games
// 7. Render and publish the snapshot
func (a *App) Step() (done bool, err error) {
	frame, err := a.config.Camera.ReadFrame()
	if err != nil {
		return true, fmt.Errorf("%w: %w", ErrFrameSourceEnded, err)
	}

	hands, err := a.config.Detector.Detect(frame)
	frame.Close()
	if err != nil {
		a.detectErrs++
		if a.detectErrs%detectErrLogEvery == 1 {
			log.Printf("Error detecting hands (%d in a row): %v", a.detectErrs, err)
		}
		hands = nil
	} else if a.detectErrs > 0 {
		log.Printf("Hand detection recovered after %d errors", a.detectErrs)
		a.detectErrs = 0
	}
	sig := a.classifier.Classify(hands)

	from := a.machine.Phase()
	for _, cmd := range a.config.Input.Poll() {
		a.machine.Apply(cmd)
	}
	if a.machine.Done() {
		log.Println("Quit requested")
		return true, nil
	}

	out := a.machine.Step(sig)

	for _, c := range out.Catches {
		a.play(sound.CueFor(c.Kind))
	}
	if out.Result != nil {
		a.play(sound.CueGameOver)
		a.record(out.Result)
	}
	if to := a.machine.Phase(); to != from {
		if fps := TargetFPS(to); a.config.Camera.FPS() != fps {
			a.config.Camera.SetFPS(fps)
		}
		log.Printf("Switched to %s", to)
	}

	snap := a.machine.Snapshot(sig.Pointer)
	snap.Best = a.best
	if err := render.Draw(a.config.Canvas, snap); err != nil {
		return true, fmt.Errorf("render: %w", err)
	}
	if a.config.Feed != nil {
		a.config.Feed.Publish(snap)
	}
	return false, nil
}

// TargetFPS returns the loop rate of the current phase.
func (a *App) TargetFPS() int {
	return TargetFPS(a.machine.Phase())
}

// Phase returns the current phase.
func (a *App) Phase() game.Phase {
	return a.machine.Phase()
}

// Best returns the best score of the session.
func (a *App) Best() int {
	return a.best
}

func (a *App) play(c sound.Cue) {
	if a.config.Sounds != nil {
		a.config.Sounds.Play(c)
	}
}

// record logs a finished game and stores it in the run history.
func (a *App) record(r *game.Result) {
	log.Printf("Game over: score=%d difficulty=%s frames=%d", r.Score, r.Difficulty, r.Frames)

	a.best = max(a.best, r.Score)
	if a.config.Store == nil {
		return
	}

	runs := a.config.Store.Runs()
	err := runs.Create(&store.Run{
		Difficulty: r.Difficulty.String(),
		Score:      r.Score,
		Frames:     r.Frames,
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
	})
	if err != nil {
		log.Printf("Failed to record run: %v", err)
		return
	}
	if best, err := runs.Best(); err == nil {
		a.best = best
	}
}
