// Package animator drives the rocket scene: the idle float, the launch
// sequence, the return to the pad and the click boost.
package animator

import (
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/clock"
	"github.com/Faultbox/launchpad/internal/logger"
	"github.com/Faultbox/launchpad/internal/rocket/model"
	"github.com/Faultbox/launchpad/internal/rocket/state"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Animation is the animation currently in control of the scene.
type Animation int

const (
	None Animation = iota
	Idle
	Launch
	Reset
)

func (a Animation) String() string {
	switch a {
	case None:
		return "none"
	case Idle:
		return "idle"
	case Launch:
		return "launch"
	case Reset:
		return "reset"
	}
	return "animation(?)"
}

// Scene constants.
var (
	CameraHome   = math.Vec3{Z: 20}
	CameraLaunch = math.Vec3{Y: 6, Z: 200}
	RocketLaunch = math.Vec3{Y: 3, Z: -5}
)

const (
	ScaleFloor     = 0.01
	LaunchTurns    = 4
	ShakeAmplitude = 0.5
	ShakeWindow    = 0.1

	idleFloat     = 0.3
	idleYaw       = 0.1
	pointerCamX   = 2
	pointerCamY   = 1.2
	pointerTiltX  = 0.1
	pointerTiltZ  = 0.15
	pointerFollow = 3 // per second
	kickDecay     = 4 // per second
)

const fullTurn = 2 * gomath.Pi

// Phase records a timed animation.
type Phase struct {
	Start    time.Duration
	Duration time.Duration
	Progress float32
	Playing  bool
}

func (p *Phase) begin(now, d time.Duration) {
	*p = Phase{Start: now, Duration: d, Playing: true}
}

func (p *Phase) advance(now time.Duration) float32 {
	if p.Duration <= 0 {
		p.Progress = 1
		return 1
	}
	p.Progress = math.Clamp01(float32(now-p.Start) / float32(p.Duration))
	return p.Progress
}

// Starfield receives the combined warp and click speed multiplier.
type Starfield interface {
	SetSpeedMultiplier(m float32)
}

// Sound plays the launch and click effects.
type Sound interface {
	PlayLaunch(d time.Duration) error
	PlayClick() error
}

// Timing holds the durations and speed multipliers.
type Timing struct {
	LaunchDuration  time.Duration
	ResetDuration   time.Duration
	ResetDelay      time.Duration
	ClickBoost      time.Duration
	WarpMultiplier  float32
	ClickMultiplier float32
}

// DefaultTiming returns the stock scene timings.
func DefaultTiming() Timing {
	return Timing{
		LaunchDuration:  2 * time.Second,
		ResetDuration:   1500 * time.Millisecond,
		ResetDelay:      time.Second,
		ClickBoost:      400 * time.Millisecond,
		WarpMultiplier:  12,
		ClickMultiplier: 4,
	}
}

// Options configures a new Animator. Camera, Rocket, State and Clock are
// required; Starfield and Sound may be nil.
type Options struct {
	Camera    *camera.Perspective
	Rocket    *model.Rocket
	State     *state.Machine
	Clock     clock.Clock
	Starfield Starfield
	Sound     Sound
	Timing    Timing
	Logger    *zap.Logger
}

// snapshot holds the values a launch or reset eases away from.
type snapshot struct {
	camPos   math.Vec3
	camRoll  float32
	rootPos  math.Vec3
	rootTilt math.Vec3
	scale    float32
	spin     float32
	fire     math.Vec3
	fireCore math.Color
	fireTip  math.Color
	clear    math.Color
	warp     float32
}

// launchCurves are the flame channels of one launch.
type launchCurves struct {
	fireScale math.Curve
	fireLen   math.Curve
	colour    math.Curve
	clear     math.Curve
	warp      math.Curve
}

// Animator owns the per-frame animation of camera, rocket, flame and
// starfield speed. Everything runs on the frame thread.
type Animator struct {
	cam       *camera.Perspective
	rocket    *model.Rocket
	state     *state.Machine
	clock     clock.Clock
	timers    *clock.Timers
	starfield Starfield
	sound     Sound
	timing    Timing
	log       *zap.Logger

	current Animation
	launch  Phase
	reset   Phase
	from    snapshot
	curves  launchCurves

	onLaunchComplete func()
	onResetComplete  func()
	resetTimer       clock.TimerID
	boostTimer       clock.TimerID

	clear   math.Color
	warp    float32
	boost   float32
	pointer math.Vec2
	kick    float32

	disposed bool
}

// New creates an animator and starts the idle animation.
func New(opts Options) *Animator {
	a := &Animator{
		cam:       opts.Camera,
		rocket:    opts.Rocket,
		state:     opts.State,
		clock:     opts.Clock,
		timers:    clock.NewTimers(opts.Clock),
		starfield: opts.Starfield,
		sound:     opts.Sound,
		timing:    opts.Timing,
		log:       logger.Or(opts.Logger, "animator"),
		clear:     math.Black,
		warp:      1,
		boost:     1,
	}
	if a.timing.WarpMultiplier <= 0 {
		a.timing.WarpMultiplier = 1
	}
	if a.timing.ClickMultiplier <= 0 {
		a.timing.ClickMultiplier = 1
	}
	a.cam.Position = CameraHome
	a.startIdle()
	return a
}

// Current returns the active animation.
func (a *Animator) Current() Animation { return a.current }

// LaunchPhase returns the launch phase record.
func (a *Animator) LaunchPhase() Phase { return a.launch }

// ResetPhase returns the reset phase record.
func (a *Animator) ResetPhase() Phase { return a.reset }

// ClearColor returns the colour the scene should clear to this frame.
func (a *Animator) ClearColor() math.Color { return a.clear }

// SpeedMultiplier returns the warp multiplier times any click boost.
func (a *Animator) SpeedMultiplier() float32 { return a.warp * a.boost }

// PendingTimers returns the number of scheduled callbacks.
func (a *Animator) PendingTimers() int { return a.timers.Pending() }

// StartLaunch begins the launch sequence. onLaunchComplete fires once when
// the rocket has left, onResetComplete once it is back on the pad. Both may
// be nil. It reports false when the scene is not idle.
func (a *Animator) StartLaunch(onLaunchComplete, onResetComplete func()) bool {
	if a.disposed {
		return false
	}
	if !a.state.CanShoot() {
		a.log.Warn("launch ignored", zap.Stringer("state", a.state.State()))
		return false
	}
	a.capture()
	if !a.state.Transition(state.Preparing) {
		return false
	}
	if !a.state.Transition(state.Launching) {
		a.state.Transition(state.Idle)
		return false
	}
	if a.disposed {
		return false
	}

	a.onLaunchComplete = onLaunchComplete
	a.onResetComplete = onResetComplete
	a.current = Launch
	a.curves = a.buildLaunchCurves()
	a.launch.begin(a.clock.Now(), a.timing.LaunchDuration)
	a.log.Info("launch", zap.Duration("duration", a.timing.LaunchDuration))

	if a.sound != nil {
		if err := a.sound.PlayLaunch(a.timing.LaunchDuration); err != nil {
			a.log.Debug("launch sound", zap.Error(err))
		}
	}
	return true
}

// Update advances timers and runs exactly one of the launch, reset or idle
// branches.
func (a *Animator) Update(dt time.Duration) {
	if a.disposed {
		return
	}
	a.timers.Advance()
	now := a.clock.Now()

	switch {
	case a.launch.Playing:
		p := a.launch.advance(now)
		a.animateLaunch(p, clock.Seconds(now))
		if p >= 1 {
			a.launch.Playing = false
			a.finishLaunch()
		}
	case a.reset.Playing:
		p := a.reset.advance(now)
		a.animateReset(p)
		if p >= 1 {
			a.reset.Playing = false
			a.finishReset()
		}
	case a.current == Idle:
		a.animateIdle(clock.Seconds(now), clock.Seconds(dt))
	}

	if a.starfield != nil {
		a.starfield.SetSpeedMultiplier(a.SpeedMultiplier())
	}
}

// SetPointerTarget sets the normalized pointer the idle camera leans
// toward. Ignored unless the scene is interactive.
func (a *Animator) SetPointerTarget(x, y float32) {
	if a.disposed || !a.state.CanInteract() {
		return
	}
	a.pointer = math.Vec2{X: math.Clamp(x, -1, 1), Y: math.Clamp(y, -1, 1)}
}

// PlayClickAnimation boosts the starfield for the click duration and kicks
// the rocket's yaw toward direction. A click during a pending boost restarts
// it. It reports false when the scene is not interactive.
func (a *Animator) PlayClickAnimation(direction float32) bool {
	if a.disposed {
		return false
	}
	if !a.state.CanInteract() {
		a.log.Warn("click ignored", zap.Stringer("state", a.state.State()))
		return false
	}
	a.timers.Cancel(a.boostTimer)
	a.boost = a.timing.ClickMultiplier
	a.boostTimer = a.timers.After(a.timing.ClickBoost, func() {
		a.boost = 1
		a.boostTimer = 0
	})
	a.kick += math.Clamp(direction, -1, 1) * gomath.Pi / 4

	if a.sound != nil {
		if err := a.sound.PlayClick(); err != nil {
			a.log.Debug("click sound", zap.Error(err))
		}
	}
	return true
}

// Dispose cancels pending timers and drops completion callbacks. The camera
// and rocket are not owned and stay untouched.
func (a *Animator) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.timers.CancelAll()
	a.resetTimer, a.boostTimer = 0, 0
	a.onLaunchComplete, a.onResetComplete = nil, nil
	a.launch.Playing, a.reset.Playing = false, false
	a.current = None
}

func (a *Animator) startIdle() {
	a.current = Idle
	a.pointer = math.Vec2{}
	a.kick = 0
}

func (a *Animator) capture() {
	root := a.rocket.Root
	core, tip := a.rocket.FireColors()
	a.from = snapshot{
		camPos:   a.cam.Position,
		camRoll:  a.cam.Rotation.Z,
		rootPos:  root.Position,
		rootTilt: root.Rotation,
		scale:    root.Scale.X,
		spin:     a.rocket.Body.Rotation.Y,
		fire:     a.rocket.FireScale(),
		fireCore: core,
		fireTip:  tip,
		clear:    a.clear,
		warp:     a.warp,
	}
}

func (a *Animator) buildLaunchCurves() launchCurves {
	startScale := a.from.fire.X
	startLen := float32(model.FireElongation)
	if startScale > 0 {
		startLen = a.from.fire.Y / startScale
	}
	return launchCurves{
		fireScale: math.Curve{
			{From: 0, To: 0.05, Start: startScale, End: 0.25, Ease: math.EaseOutCubic},
			math.Hold(0.05, 0.1, 0.25),
			math.Ramp(0.1, 0.3, 0.25, 0.12),
			math.Hold(0.3, 0.6, 0.12),
			math.Ramp(0.6, 1, 0.12, 0.04),
		},
		fireLen: math.Curve{
			{From: 0, To: 0.05, Start: startLen, End: 3, Ease: math.EaseOutCubic},
			math.Hold(0.05, 0.1, 3),
			math.Ramp(0.1, 0.3, 3, 2.2),
			math.Hold(0.3, 0.6, 2.2),
			math.Ramp(0.6, 1, 2.2, model.FireElongation),
		},
		colour: math.Curve{
			math.Hold(0, 0.1, 0),
			math.Ramp(0.1, 0.3, 0, 1),
		},
		clear: math.Curve{
			math.Hold(0, 0.5, 0),
			{From: 0.5, To: 1, Start: 0, End: 1, Ease: math.EaseInOutCubic},
		},
		warp: math.Curve{
			{From: 0, To: 0.2, Start: a.from.warp, End: a.timing.WarpMultiplier, Ease: math.EaseOutCubic},
		},
	}
}

// Shake rolls the camera during ignition and is exactly zero afterwards.
func Shake(p float32) float32 {
	if p >= ShakeWindow || p < 0 {
		return 0
	}
	return (ShakeWindow - p) * ShakeAmplitude * float32(gomath.Sin(float64(p)*100))
}

func (a *Animator) animateLaunch(p, seconds float32) {
	e := math.EaseInOutCubic(p)
	q := math.EaseOutQuart(p)
	f := a.from

	a.cam.Position = math.Vec3{
		X: math.Lerp(f.camPos.X, CameraLaunch.X, e),
		Y: math.Lerp(f.camPos.Y, CameraLaunch.Y, e),
		Z: math.Lerp(f.camPos.Z, CameraLaunch.Z, q),
	}
	a.cam.Rotation.Z = Shake(p)

	root := a.rocket.Root
	root.Position = math.Vec3{
		X: math.Lerp(f.rootPos.X, RocketLaunch.X, e),
		Y: math.Lerp(f.rootPos.Y, RocketLaunch.Y, e),
		Z: math.Lerp(f.rootPos.Z, RocketLaunch.Z, e),
	}
	root.Rotation = f.rootTilt.Lerp(math.Vec3{}, e)
	root.Scale = math.Splat(max(math.Lerp(f.scale, ScaleFloor, q), ScaleFloor))
	a.rocket.Body.Rotation.Y = f.spin + p*LaunchTurns*fullTurn

	flicker := 1 + 0.1*float32(gomath.Sin(float64(seconds)*40))
	s := a.curves.fireScale.Eval(p) * flicker
	a.rocket.SetFireScale(math.Vec3{X: s, Y: s * a.curves.fireLen.Eval(p), Z: s})

	mix := a.curves.colour.Eval(p)
	a.rocket.SetFireColors(math.White.Lerp(model.FireCore, mix), math.LightBlue.Lerp(model.FireTip, mix))

	a.clear = f.clear.Lerp(math.DarkGray, a.curves.clear.Eval(p))
	a.warp = a.curves.warp.Eval(p)
}

func (a *Animator) finishLaunch() {
	a.log.Debug("launch complete")
	if cb := a.onLaunchComplete; cb != nil {
		a.onLaunchComplete = nil
		cb()
	}
	if a.disposed {
		return
	}
	a.resetTimer = a.timers.After(a.timing.ResetDelay, a.startReset)
}

func (a *Animator) startReset() {
	a.resetTimer = 0
	if a.disposed {
		return
	}
	if !a.state.Transition(state.Resetting) {
		return
	}
	a.capture()
	a.current = Reset
	a.reset.begin(a.clock.Now(), a.timing.ResetDuration)
}

func (a *Animator) animateReset(p float32) {
	e := math.EaseInOutCubic(p)
	f := a.from

	a.cam.Position = f.camPos.Lerp(CameraHome, e)
	a.cam.Rotation.Z = math.Lerp(f.camRoll, 0, e)

	root := a.rocket.Root
	root.Position = f.rootPos.Lerp(math.Vec3{}, e)
	root.Rotation = f.rootTilt.Lerp(math.Vec3{}, e)
	root.Scale = math.Splat(math.Lerp(f.scale, 1, e))

	home := float32(gomath.Round(float64(f.spin)/fullTurn) * fullTurn)
	a.rocket.Body.Rotation.Y = math.Lerp(f.spin, home, e)

	a.rocket.SetFireScale(f.fire.Lerp(math.Splat(model.FireBase), e))
	a.rocket.SetFireColors(f.fireCore.Lerp(model.FireCore, e), f.fireTip.Lerp(model.FireTip, e))

	a.clear = f.clear.Lerp(math.Black, e)
	a.warp = math.Lerp(f.warp, 1, e)
}

func (a *Animator) finishReset() {
	a.rocket.Reset()
	a.cam.Position = CameraHome
	a.cam.Rotation = math.Vec3{}
	a.clear = math.Black
	a.warp = 1

	a.startIdle()
	done := a.onResetComplete
	a.onResetComplete = nil

	// Idle listeners may start the next launch.
	a.state.Transition(state.Idle)
	a.log.Debug("reset complete")

	if done != nil {
		done()
	}
}

func (a *Animator) animateIdle(t, dt float32) {
	root := a.rocket.Root
	root.Position.Y = float32(gomath.Sin(float64(t)*0.5)) * idleFloat

	k := 1 - float32(gomath.Exp(-float64(dt)*pointerFollow))
	a.cam.Position.X = math.Lerp(a.cam.Position.X, a.pointer.X*pointerCamX, k)
	a.cam.Position.Y = math.Lerp(a.cam.Position.Y, a.pointer.Y*pointerCamY, k)
	root.Rotation.X = math.Lerp(root.Rotation.X, -a.pointer.Y*pointerTiltX, k)
	root.Rotation.Z = math.Lerp(root.Rotation.Z, -a.pointer.X*pointerTiltZ, k)

	a.kick *= float32(gomath.Exp(-float64(dt) * kickDecay))
	a.rocket.Body.Rotation.Y = float32(gomath.Sin(float64(t)))*idleYaw + a.kick

	a.rocket.UpdateFire(t)
}
