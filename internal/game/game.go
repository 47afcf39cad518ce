// Package game wires the window, renderer, audio and rocket scene together
// and runs the frame loop.
package game

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/config"
	"github.com/Faultbox/launchpad/internal/engine/audio"
	"github.com/Faultbox/launchpad/internal/engine/debug"
	"github.com/Faultbox/launchpad/internal/engine/input"
	"github.com/Faultbox/launchpad/internal/engine/renderer"
	"github.com/Faultbox/launchpad/internal/engine/window"
	"github.com/Faultbox/launchpad/internal/logger"
	"github.com/Faultbox/launchpad/internal/rocket/scene"
)

// Title is the window title.
const Title = "Launchpad"

// Game is the running application.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window     *window.Window
	renderer   *renderer.Renderer
	audio      *audio.Manager
	dispatcher *input.Dispatcher
	scene      *scene.Scene
	shots      *debug.Screenshots

	events []input.Event
}

// New creates the window, GL context, audio and scene.
func New(cfg *config.Config) (_ *Game, err error) {
	g := &Game{
		cfg:        cfg,
		log:        logger.Named("game"),
		dispatcher: input.NewDispatcher(),
		shots:      debug.NewScreenshots(cfg.Debug.ScreenshotDir, "launchpad"),
	}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		HighDPI:    cfg.Graphics.HighDPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.audio = g.initAudio()

	opts := scene.Options{
		Width:      int32(width),
		Height:     int32(height),
		Config:     cfg,
		Logger:     logger.Named("scene"),
		Dispatcher: g.dispatcher,
	}
	if g.audio != nil {
		opts.Sound = g.audio
	}
	g.scene, err = scene.New(g.renderer, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	// The window draws no widgets over the scene, so no hit test is
	// installed and every click reaches it.
	g.dispatcher.On(input.EventQuit, func(input.Event) { g.running = false })
	g.dispatcher.On(input.EventKeyDown, g.handleKey)

	g.log.Info("initialized")
	return g, nil
}

// initAudio opens the speaker. Audio is optional: on failure the scene runs
// silent.
func (g *Game) initAudio() *audio.Manager {
	a := audio.New()
	if err := a.Init(); err != nil {
		g.log.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	a.SetMasterVolume(float64(g.cfg.Audio.MasterVolume))
	a.SetSFXVolume(float64(g.cfg.Audio.SFXVolume))
	a.SetMuted(g.cfg.Audio.Muted)

	if path := g.cfg.Audio.LaunchSound; path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			err = a.LoadLaunchSample(data)
		}
		if err != nil {
			g.log.Warn("launch sound, using synthesised rumble", zap.String("path", path), zap.Error(err))
		}
	}
	return a
}

func (g *Game) handleKey(e input.Event) {
	switch e.Key {
	case input.KeyEscape:
		g.running = false
	case input.KeyF12:
		path, err := g.scene.Screenshot(g.shots)
		if err != nil {
			g.log.Error("screenshot failed", zap.Error(err))
			return
		}
		g.log.Info("screenshot saved", zap.String("path", path))
	case input.KeyP:
		g.log.Info("post processing", zap.Bool("enabled", g.scene.TogglePostProcessing()))
	case input.KeyM:
		if g.audio != nil {
			g.log.Info("audio", zap.Bool("muted", g.audio.ToggleMute()))
		}
	}
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	var budget time.Duration
	if limit := g.cfg.Graphics.FPSLimit; limit > 0 {
		budget = time.Second / time.Duration(limit)
	}
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for g.running {
		start := time.Now()

		// 1. Input
		g.events = g.window.PollEvents(g.events)
		for _, e := range g.events {
			g.dispatcher.Dispatch(e)
		}
		if !g.running {
			break
		}

		// 2. Animate and render
		g.scene.Frame()

		// 3. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Stringer("state", g.scene.State()))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases the scene, audio and window.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.scene != nil {
		g.scene.Dispose()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
