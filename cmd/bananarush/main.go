package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ayusman/bananarush/internal/app"
	"github.com/ayusman/bananarush/internal/capture"
	"github.com/ayusman/bananarush/internal/config"
	"github.com/ayusman/bananarush/internal/detector"
	"github.com/ayusman/bananarush/internal/game"
	"github.com/ayusman/bananarush/internal/input"
	"github.com/ayusman/bananarush/internal/render"
	"github.com/ayusman/bananarush/internal/render/ebitenui"
	"github.com/ayusman/bananarush/internal/server"
	"github.com/ayusman/bananarush/internal/sound"
	"github.com/ayusman/bananarush/internal/store"
	"github.com/ayusman/bananarush/internal/tray"
)

const title = "Banana Rush"

// Both frontends and the tray need the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	fmt.Println("Banana Rush - Gesture Catching Game")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		if errors.Is(err, app.ErrFrameSourceEnded) {
			log.Printf("Camera stopped delivering frames: %v", err)
			return
		}
		log.Fatalf("Game failed: %v", err)
	}
}

func run(cfg config.Config) error {
	// Run history lives only as long as the process.
	st, err := store.New(store.Memory)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	queue := input.NewQueue()
	var feeds app.Publishers

	if cfg.HTTPAddr != "" {
		feed := server.NewFeed()
		feeds = append(feeds, feed)

		srv := server.New(server.Config{Store: st, Feed: feed})
		defer srv.Close()

		go func() {
			log.Printf("Starting spectator server on %s", cfg.HTTPAddr)
			if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
				log.Printf("Spectator server failed: %v", err)
			}
		}()
	}

	if cfg.Tray {
		tr := tray.New()
		tr.OnCommand(func(cmd game.Command) {
			if !queue.Push(cmd) {
				log.Println("Tray command dropped")
			}
		})
		feeds = append(feeds, tr)

		// Config only allows the tray with the window frontend, whose
		// highgui loop on this thread pumps the tray's events.
		tr.Register()
		defer tr.Quit()
	}

	var sounds app.Sounds
	if cfg.Sound {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			sounds = player
			defer player.Close()
		}
	}

	appCfg := app.Config{
		Camera:   capture.NewCamera(cfg.CameraID, cfg.Mirror),
		Detector: newDetector(cfg),
		Store:    st,
		Sounds:   sounds,
		Feed:     feeds,
		Seed:     cfg.Seed,
	}

	switch cfg.Frontend {
	case config.FrontendEbiten:
		return runEbiten(appCfg, queue)
	default:
		return runWindow(appCfg, queue)
	}
}

// runWindow drives the loop from the main goroutine into a highgui window.
func runWindow(cfg app.Config, queue *input.Queue) error {
	win := render.NewWindow(title, game.ScreenWidth, game.ScreenHeight)
	defer win.Close()

	cfg.Canvas = win
	cfg.Input = input.NewMulti(win, queue)

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}

// runEbiten hands the loop to Ebitengine, which paces it with SetTPS.
func runEbiten(cfg app.Config, queue *input.Queue) error {
	frame := render.NewRecorder()

	cfg.Canvas = frame
	cfg.Input = input.NewMulti(ebitenui.Keys{}, queue)

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()

	return ebitenui.Run(title, ebitenui.New(a, frame))
}

// newDetector uses MediaPipe when its service is installed and falls back to
// the mock detector, which never reports a hand.
func newDetector(cfg config.Config) detector.Detector {
	dc := detector.DefaultConfig()
	dc.MinConfidence = cfg.MinConfidence

	mp, err := detector.NewMediaPipeDetector(dc)
	if err != nil {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
	log.Println("Using MediaPipe hand detection")
	return mp
}
