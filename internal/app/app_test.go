package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/bananarush/internal/capture"
	"github.com/ayusman/bananarush/internal/detector"
	"github.com/ayusman/bananarush/internal/game"
	"github.com/ayusman/bananarush/internal/input"
	"github.com/ayusman/bananarush/internal/render"
	"github.com/ayusman/bananarush/internal/sound"
	"github.com/ayusman/bananarush/internal/store"
)

type recordedSounds struct {
	mu   sync.Mutex
	cues []sound.Cue
}

func (r *recordedSounds) Play(c sound.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

type recordedFeed struct {
	snaps []game.Snapshot
}

func (f *recordedFeed) Publish(snap game.Snapshot) {
	f.snaps = append(f.snaps, snap)
}

func (f *recordedFeed) last() game.Snapshot {
	return f.snaps[len(f.snaps)-1]
}

// countingPacer pushes a quit once it has waited limit times.
type countingPacer struct {
	waits []int
	limit int
	quit  *input.Queue
}

func (p *countingPacer) Wait(ctx context.Context, fps int) error {
	p.waits = append(p.waits, fps)
	if len(p.waits) == p.limit {
		p.quit.Push(game.Quit())
	}
	return nil
}

type harness struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	canvas   *render.Recorder
	queue    *input.Queue
	sounds   *recordedSounds
	feed     *recordedFeed
	store    *store.Store
}

func newHarness(t *testing.T, frames int, loop bool) *harness {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	mats := make([]*gocv.Mat, frames)
	for i := range mats {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		mats[i] = &m
	}
	t.Cleanup(func() {
		for _, m := range mats {
			m.Close()
		}
	})

	st, err := store.New(store.Memory)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	h := &harness{
		camera:   capture.NewMockCamera(mats, loop),
		detector: detector.NewMockDetector(),
		canvas:   render.NewRecorder(),
		queue:    input.NewQueue(),
		sounds:   &recordedSounds{},
		feed:     &recordedFeed{},
		store:    st,
	}

	h.app, err = New(Config{
		Camera:   h.camera,
		Detector: h.detector,
		Canvas:   h.canvas,
		Input:    h.queue,
		Store:    st,
		Sounds:   h.sounds,
		Feed:     h.feed,
		Seed:     42,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(h.app.Stop)
	return h
}

func (h *harness) step(t *testing.T) {
	t.Helper()
	done, err := h.app.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if done {
		t.Fatal("Step() reported done unexpectedly")
	}
}

func (h *harness) startGame(t *testing.T, d game.Difficulty) {
	t.Helper()
	h.queue.Push(game.Select(d))
	h.queue.Push(game.Start())
	h.step(t)
	if h.app.Phase() != game.PhaseRunning {
		t.Fatalf("phase = %v after start, want running", h.app.Phase())
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "no camera", config: Config{Detector: detector.NewMockDetector(), Canvas: render.NewRecorder()}},
		{name: "no detector", config: Config{Camera: capture.NewMockCamera(nil, false), Canvas: render.NewRecorder()}},
		{name: "no canvas", config: Config{Camera: capture.NewMockCamera(nil, false), Detector: detector.NewMockDetector()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestTargetFPS(t *testing.T) {
	tests := []struct {
		phase game.Phase
		want  int
	}{
		{game.PhaseMenu, MenuFPS},
		{game.PhaseRunning, RunningFPS},
		{game.PhasePaused, MenuFPS},
		{game.PhaseGameOver, MenuFPS},
	}
	for _, tt := range tests {
		if got := TargetFPS(tt.phase); got != tt.want {
			t.Errorf("TargetFPS(%v) = %d, want %d", tt.phase, got, tt.want)
		}
	}
}

func TestApp_StartSwitchesToRunningRate(t *testing.T) {
	h := newHarness(t, 1, true)

	h.step(t)
	if h.app.Phase() != game.PhaseMenu {
		t.Fatalf("phase = %v, want menu", h.app.Phase())
	}

	h.startGame(t, game.Easy)

	if got := h.camera.FPSChanges(); !slices.Equal(got, []int{MenuFPS, RunningFPS}) {
		t.Errorf("camera FPS changes = %v, want [%d %d]", got, MenuFPS, RunningFPS)
	}
	if h.app.TargetFPS() != RunningFPS {
		t.Errorf("TargetFPS() = %d, want %d", h.app.TargetFPS(), RunningFPS)
	}
	snap := h.feed.last()
	if snap.Phase != game.PhaseRunning || snap.Lives != game.StartLives || snap.Frame != 1 {
		t.Errorf("snapshot = %+v, want running with full lives on frame 1", snap)
	}
	if h.canvas.Presents() != 2 {
		t.Errorf("Presents() = %d, want one per step", h.canvas.Presents())
	}
}

func TestApp_CatchUntilGameOver(t *testing.T) {
	h := newHarness(t, 1, true)
	h.startGame(t, game.Medium)

	// One banana and one coconut right under the pointer after this tick's move.
	s := h.app.machine.Session()
	s.Lives = 1
	y := 300 - s.Speed
	s.Objects = append(s.Objects,
		&game.FallingObject{Kind: game.Banana, Pos: game.Vec2{X: 400, Y: y}, Radius: game.ObjectRadius},
		&game.FallingObject{Kind: game.Coconut, Pos: game.Vec2{X: 400, Y: y}, Radius: game.ObjectRadius},
	)
	h.detector.Script([]detector.HandLandmarks{detector.PointingLandmarks(0.5, 0.5)})

	h.step(t)

	if h.app.Phase() != game.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.app.Phase())
	}
	wantCues := []sound.Cue{sound.CueBanana, sound.CueCoconut, sound.CueGameOver}
	if !slices.Equal(h.sounds.cues, wantCues) {
		t.Errorf("cues = %v, want %v", h.sounds.cues, wantCues)
	}

	runs, err := h.store.Runs().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 1 || runs[0].Difficulty != "medium" {
		t.Fatalf("runs = %+v, want one medium run with score 1", runs)
	}

	// The game over frame hands over to the menu on the next evaluation.
	h.step(t)

	snap := h.feed.last()
	if snap.Phase != game.PhaseMenu || snap.Difficulty != game.DifficultyUnset {
		t.Errorf("snapshot phase/difficulty = %v/%v, want menu/unset", snap.Phase, snap.Difficulty)
	}
	if len(snap.Objects) != 0 {
		t.Errorf("menu should have no objects, got %d", len(snap.Objects))
	}
	if snap.Last == nil || snap.Last.Score != 1 || snap.Best != 1 {
		t.Errorf("snapshot last/best = %+v/%d, want score 1 and best 1", snap.Last, snap.Best)
	}
	// Game over and the menu share a rate, so the camera is asked only once.
	want := []int{MenuFPS, RunningFPS, MenuFPS}
	if got := h.camera.FPSChanges(); !slices.Equal(got, want) {
		t.Errorf("camera FPS changes = %v, want %v", got, want)
	}
}

func TestApp_PauseAndResume(t *testing.T) {
	h := newHarness(t, 1, true)
	h.startGame(t, game.Easy)

	h.detector.Script(
		[]detector.HandLandmarks{detector.FistLandmarks()},
		nil,
		nil,
		[]detector.HandLandmarks{detector.PointingLandmarks(0.1, 0.1)},
	)

	h.step(t)
	if h.app.Phase() != game.PhasePaused {
		t.Fatalf("phase = %v after fist, want paused", h.app.Phase())
	}
	frame := h.app.machine.Session().FrameCount

	// No hand keeps the game paused and frozen.
	h.step(t)
	h.step(t)
	if h.app.Phase() != game.PhasePaused {
		t.Errorf("phase = %v without a hand, want paused", h.app.Phase())
	}
	if got := h.app.machine.Session().FrameCount; got != frame {
		t.Errorf("frame count moved while paused: %d -> %d", frame, got)
	}

	h.step(t)
	if h.app.Phase() != game.PhaseRunning {
		t.Errorf("phase = %v after pointing, want running", h.app.Phase())
	}

	want := []int{MenuFPS, RunningFPS, MenuFPS, RunningFPS}
	if got := h.camera.FPSChanges(); !slices.Equal(got, want) {
		t.Errorf("camera FPS changes = %v, want %v", got, want)
	}
}

func TestApp_DetectorErrorIsNoHand(t *testing.T) {
	h := newHarness(t, 1, true)
	h.startGame(t, game.Hard)

	h.detector.SetError(errors.New("service crashed"))
	h.step(t)

	if h.app.Phase() != game.PhaseRunning {
		t.Errorf("phase = %v, a detector error must not pause", h.app.Phase())
	}
	if h.feed.last().Pointer != nil {
		t.Error("no pointer expected without a hand")
	}
}

func TestApp_DetectorErrorLoggedOncePerStreak(t *testing.T) {
	h := newHarness(t, 1, true)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h.detector.SetError(errors.New("service crashed"))
	for i := 0; i < 5; i++ {
		h.step(t)
	}
	if got := strings.Count(buf.String(), "Error detecting hands"); got != 1 {
		t.Errorf("logged %d detector errors for one streak, want 1", got)
	}

	h.detector.SetError(nil)
	h.step(t)
	if !strings.Contains(buf.String(), "recovered after 5 errors") {
		t.Errorf("missing recovery line in log:\n%s", buf.String())
	}

	h.detector.SetError(errors.New("service crashed again"))
	h.step(t)
	if got := strings.Count(buf.String(), "Error detecting hands"); got != 2 {
		t.Errorf("logged %d detector errors after a new streak, want 2", got)
	}
}

func TestApp_StartKeepsOpenCamera(t *testing.T) {
	h := newHarness(t, 3, false)

	h.step(t)
	// Start on an already open camera must not rewind playback.
	h.app.started = false
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	h.step(t)
	h.step(t)

	if _, err := h.app.Step(); !errors.Is(err, capture.ErrNoFrame) {
		t.Errorf("Step() error = %v, want ErrNoFrame after three frames", err)
	}
}

func TestApp_FrameSourceEnded(t *testing.T) {
	h := newHarness(t, 2, false)

	h.step(t)
	h.step(t)

	done, err := h.app.Step()
	if !done {
		t.Error("Step() should report done once frames run out")
	}
	if !errors.Is(err, ErrFrameSourceEnded) || !errors.Is(err, capture.ErrNoFrame) {
		t.Errorf("Step() error = %v, want ErrFrameSourceEnded wrapping ErrNoFrame", err)
	}
}

func TestApp_QuitFromAnyPhase(t *testing.T) {
	h := newHarness(t, 1, true)
	h.startGame(t, game.Easy)

	h.queue.Push(game.Quit())
	done, err := h.app.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !done {
		t.Error("Step() should report done after quit")
	}
}

func TestApp_Run(t *testing.T) {
	h := newHarness(t, 1, true)
	pacer := &countingPacer{limit: 3, quit: h.queue}
	h.app.config.Pacer = pacer

	h.queue.Push(game.Select(game.Easy))
	h.queue.Push(game.Start())

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(pacer.waits, []int{RunningFPS, RunningFPS, RunningFPS}) {
		t.Errorf("pacer waits = %v, want three at the running rate", pacer.waits)
	}
}

func TestApp_RunEndsWithFrameSource(t *testing.T) {
	h := newHarness(t, 3, false)
	h.app.config.Pacer = &countingPacer{limit: -1, quit: h.queue}

	err := h.app.Run(context.Background())
	if !errors.Is(err, ErrFrameSourceEnded) {
		t.Errorf("Run() error = %v, want ErrFrameSourceEnded", err)
	}
}

func TestApp_RunCancelled(t *testing.T) {
	h := newHarness(t, 1, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.app.Run(ctx); err != nil {
		t.Errorf("Run() with a cancelled context error = %v, want nil", err)
	}
}

func TestTickerPacer(t *testing.T) {
	p := NewTickerPacer()
	defer p.Stop()

	t.Run("waits about one interval", func(t *testing.T) {
		start := time.Now()
		if err := p.Wait(context.Background(), 50); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
			t.Errorf("Wait() returned after %v, want about 20ms", elapsed)
		}
	})

	t.Run("rate change resets the ticker", func(t *testing.T) {
		if err := p.Wait(context.Background(), 100); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if p.fps != 100 {
			t.Errorf("fps = %d, want 100", p.fps)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := NewTickerPacer()
		defer slow.Stop()
		if err := slow.Wait(ctx, 1); !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want context.Canceled", err)
		}
	})
}
