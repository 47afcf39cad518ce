// Package scene assembles the rocket, starfield, backdrop and post
// processing into one frame-driven scene.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/config"
	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/clock"
	"github.com/Faultbox/launchpad/internal/engine/debug"
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/input"
	"github.com/Faultbox/launchpad/internal/engine/picking"
	"github.com/Faultbox/launchpad/internal/engine/postfx"
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/internal/engine/texture"
	"github.com/Faultbox/launchpad/internal/logger"
	"github.com/Faultbox/launchpad/internal/rocket/animator"
	"github.com/Faultbox/launchpad/internal/rocket/model"
	"github.com/Faultbox/launchpad/internal/rocket/starfield"
	"github.com/Faultbox/launchpad/internal/rocket/state"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Camera lens.
const (
	FOV  = 45
	Near = 0.1
	Far  = 2000
)

// ErrDisposed is returned by operations on a disposed scene.
var ErrDisposed = errors.New("scene: disposed")

// Backdrop plane placement, behind the farthest background star.
const (
	backdropZ      = -520
	backdropWidth  = 1600
	backdropHeight = 1000
)

// Options configures a new Scene. Config, Clock, Logger, Sound and
// Dispatcher may be nil.
type Options struct {
	Width  int32
	Height int32

	Config     *config.Config
	Clock      clock.Clock
	Logger     *zap.Logger
	Sound      animator.Sound
	Dispatcher *input.Dispatcher
}

// Scene owns every resource of the rocket scene. All methods run on the
// frame thread.
type Scene struct {
	cfg   *config.Config
	clock clock.Clock
	log   *zap.Logger

	arena    *gpu.Arena
	renderer *scenegraph.Renderer
	camera   *camera.Perspective
	root     *scenegraph.Node
	rocket   *model.Rocket
	stars    *starfield.Parallax
	backdrop *scenegraph.Node
	state    *state.Machine
	anim     *animator.Animator
	composer *postfx.Composer

	dispatcher *input.Dispatcher
	listeners  []input.ListenerID

	cancel     context.CancelFunc
	background <-chan texture.Result

	width, height int32
	last          time.Duration
	disposed      bool
}

// New builds the scene on dev. On error everything created so far is freed.
func New(dev gpu.Device, opts Options) (_ *Scene, err error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewReal()
	}

	s := &Scene{
		cfg:        cfg,
		clock:      clk,
		log:        logger.Or(opts.Logger, "scene"),
		arena:      gpu.NewArena(dev),
		dispatcher: opts.Dispatcher,
		width:      max(opts.Width, 1),
		height:     max(opts.Height, 1),
	}
	defer func() {
		if err != nil {
			s.Dispose()
		}
	}()

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	s.arena.SetViewport(s.width, s.height)
	s.renderer = scenegraph.NewRenderer(s.arena, s.log)
	if err = s.renderer.Compile(); err != nil {
		return nil, err
	}
	s.camera = camera.NewPerspective(FOV, s.aspect(), Near, Far)

	s.rocket = model.New(seed)
	s.stars = starfield.NewParallax(starfield.Config{
		BackgroundCount: cfg.Starfield.BackgroundCount,
		MidCount:        cfg.Starfield.MidCount,
		NearCount:       cfg.Starfield.NearCount,
		BaseSpeed:       cfg.Starfield.BaseSpeed,
		Drift:           cfg.Starfield.Drift,
		Seed:            seed,
	})
	s.backdrop = newBackdrop()

	s.root = scenegraph.NewNode("scene")
	s.root.Add(s.backdrop, s.stars.Root(), s.rocket.Root)

	s.state = state.NewMachine(s.log.Named("state"))
	s.anim = animator.New(animator.Options{
		Camera:    s.camera,
		Rocket:    s.rocket,
		State:     s.state,
		Clock:     clk,
		Starfield: s.stars,
		Sound:     opts.Sound,
		Timing:    timing(cfg),
		Logger:    s.log.Named("animator"),
	})

	if s.composer, err = postfx.NewComposer(s.arena, s.width, s.height); err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}
	if err = s.addPasses(); err != nil {
		return nil, err
	}
	s.composer.Bypass = !cfg.Scene.PostProcessing

	if s.dispatcher != nil {
		for _, t := range []input.EventType{
			input.EventResize,
			input.EventKeyDown,
			input.EventMouseMove,
			input.EventMouseDown,
		} {
			s.listeners = append(s.listeners, s.dispatcher.On(t, s.HandleEvent))
		}
	}

	if src := cfg.Scene.BackgroundTexture; src != "" {
		var ctx context.Context
		ctx, s.cancel = context.WithCancel(context.Background())
		s.background = texture.LoadAsync(ctx, src, texture.DefaultMaxSize)
	}

	s.last = clk.Now()
	s.log.Info("scene ready",
		zap.Int32("width", s.width),
		zap.Int32("height", s.height),
		zap.Uint64("seed", seed),
		zap.Bool("postfx", cfg.Scene.PostProcessing))
	return s, nil
}

func newBackdrop() *scenegraph.Node {
	mat := scenegraph.NewMaterial(scenegraph.ShaderTextured, math.White)
	mat.Side = gpu.DoubleSide
	mat.NoDepthWrite = true
	n := scenegraph.NewMeshNode("backdrop", scenegraph.NewMesh(gpu.Plane(backdropWidth, backdropHeight), mat))
	n.Position.Z = backdropZ
	n.Visible = false
	return n
}

func timing(cfg *config.Config) animator.Timing {
	return animator.Timing{
		LaunchDuration:  cfg.Scene.LaunchDuration,
		ResetDuration:   cfg.Scene.ResetDuration,
		ResetDelay:      cfg.Scene.ResetDelay,
		ClickBoost:      cfg.Scene.ClickBoost,
		WarpMultiplier:  cfg.Starfield.WarpMultiplier,
		ClickMultiplier: cfg.Starfield.ClickMultiplier,
	}
}

func (s *Scene) addPasses() error {
	fx := s.cfg.PostFX
	distortion, err := postfx.NewDistortion(s.arena, fx.DistortionStrength, fx.Vignette, fx.Aberration)
	if err != nil {
		return fmt.Errorf("distortion pass: %w", err)
	}
	s.composer.AddPass(distortion)

	glow, err := postfx.NewGlow(s.arena, fx.GlowThreshold, fx.GlowIntensity)
	if err != nil {
		return fmt.Errorf("glow pass: %w", err)
	}
	s.composer.AddPass(glow)

	crt, err := postfx.NewCRT(s.arena, fx.Scanlines, fx.Noise, fx.Vignette, fx.RGBOffset)
	if err != nil {
		return fmt.Errorf("crt pass: %w", err)
	}
	s.composer.AddPass(crt)
	return nil
}

func (s *Scene) aspect() float32 {
	return float32(s.width) / float32(s.height)
}

// Frame advances the animation and renders one frame through the pass chain.
func (s *Scene) Frame() {
	if s.disposed {
		return
	}
	now := s.clock.Now()
	dt := max(now-s.last, 0)
	s.last = now

	s.anim.Update(dt)
	s.stars.Update()
	s.pollBackdrop()

	s.renderer.ClearColor = s.anim.ClearColor()
	s.renderer.Render(s.root, s.camera, s.composer.ReadTarget())
	s.composer.Render(clock.Seconds(now))
}

// pollBackdrop uploads the background image once it has loaded. A failed
// load leaves the backdrop hidden.
func (s *Scene) pollBackdrop() {
	select {
	case res, ok := <-s.background:
		s.background = nil
		if !ok {
			return
		}
		if res.Err != nil {
			s.log.Warn("background texture", zap.Error(res.Err))
			return
		}
		tex, err := s.arena.NewTexture(res.Image)
		if err != nil {
			s.log.Warn("background upload", zap.Error(err))
			return
		}
		s.backdrop.Mesh.Material.SetTexture(tex)
		s.backdrop.Visible = true
		w, h := tex.Size()
		s.log.Debug("background ready", zap.Int32("width", w), zap.Int32("height", h))
	default:
	}
}

// ShootOff starts the launch. onLaunchComplete fires once the rocket has
// left the frame. Returns false when a launch is already running.
func (s *Scene) ShootOff(onLaunchComplete func()) bool {
	if s.disposed {
		return false
	}
	return s.anim.StartLaunch(onLaunchComplete, nil)
}

// HandleResize applies a new drawable size to the viewport, camera and
// both render targets before the next frame.
func (s *Scene) HandleResize(width, height int32) {
	if s.disposed {
		return
	}
	s.width, s.height = max(width, 1), max(height, 1)
	s.arena.SetViewport(s.width, s.height)
	s.camera.SetAspect(s.aspect())
	s.composer.SetSize(s.width, s.height)
	s.log.Debug("resize", zap.Int32("width", s.width), zap.Int32("height", s.height))
}

// HandleEvent reacts to pointer, keyboard and resize events. Clicking the
// rocket launches it; clicking anywhere else boosts the starfield.
func (s *Scene) HandleEvent(e input.Event) {
	if s.disposed {
		return
	}
	switch e.Type {
	case input.EventResize:
		s.HandleResize(int32(e.Width), int32(e.Height))
	case input.EventMouseMove:
		s.anim.SetPointerTarget(e.NX, e.NY)
	case input.EventMouseDown:
		if e.Interactive {
			return
		}
		if s.state.CanShoot() && picking.Hit(e.NX, e.NY, s.camera, s.rocket.Body) {
			s.ShootOff(nil)
			return
		}
		direction := float32(1)
		if e.NX < 0 {
			direction = -1
		}
		s.anim.PlayClickAnimation(direction)
	case input.EventKeyDown:
		if e.Key == input.KeySpace || e.Key == input.KeyEnter {
			s.ShootOff(nil)
		}
	}
}

// TogglePostProcessing switches the pass chain on or off and returns the
// new setting.
func (s *Scene) TogglePostProcessing() bool {
	if s.composer == nil {
		return false
	}
	s.composer.Bypass = !s.composer.Bypass
	return !s.composer.Bypass
}

// Screenshot reads back the screen and saves it through shots.
func (s *Scene) Screenshot(shots *debug.Screenshots) (string, error) {
	if s.disposed {
		return "", ErrDisposed
	}
	pixels := s.arena.ReadPixels(s.width, s.height)
	return shots.CaptureFromPixels(pixels, int(s.width), int(s.height))
}

// State returns the scene's interaction state.
func (s *Scene) State() state.State {
	if s.state == nil {
		return state.Idle
	}
	return s.state.State()
}

// Size returns the drawable size the scene renders at.
func (s *Scene) Size() (int32, int32) {
	return s.width, s.height
}

// Dispose stops the scene and frees every resource. It is safe to call
// more than once and on a scene whose construction failed part way.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.cancel != nil {
		s.cancel()
	}
	s.background = nil
	if s.anim != nil {
		s.anim.Dispose()
	}
	if s.dispatcher != nil {
		for _, id := range s.listeners {
			s.dispatcher.Off(id)
		}
		s.listeners = nil
	}
	if s.rocket != nil {
		s.rocket.Dispose()
	}
	if s.stars != nil {
		s.stars.Dispose()
	}
	if s.root != nil {
		s.root.Dispose()
	} else if s.backdrop != nil {
		s.backdrop.Dispose()
	}
	if s.composer != nil {
		s.composer.Dispose()
	}
	if s.renderer != nil {
		s.renderer.Dispose()
	}
	s.arena.Release()
	s.log.Debug("scene disposed")
}
