package animator

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/clock"
	"github.com/Faultbox/launchpad/internal/rocket/model"
	"github.com/Faultbox/launchpad/internal/rocket/state"
	"github.com/Faultbox/launchpad/pkg/math"
)

const frame = 16 * time.Millisecond

type fakeStarfield struct {
	last float32
	peak float32
}

func (f *fakeStarfield) SetSpeedMultiplier(m float32) {
	f.last = m
	f.peak = max(f.peak, m)
}

type fakeSound struct {
	launches []time.Duration
	clicks   int
	err      error
}

func (f *fakeSound) PlayLaunch(d time.Duration) error {
	f.launches = append(f.launches, d)
	return f.err
}

func (f *fakeSound) PlayClick() error {
	f.clicks++
	return f.err
}

type rig struct {
	anim   *Animator
	clk    *clock.Manual
	cam    *camera.Perspective
	rocket *model.Rocket
	state  *state.Machine
	seen   []state.State
}

func newRig(t *testing.T, stars Starfield, sound Sound) *rig {
	t.Helper()
	r := &rig{
		clk:    clock.NewManual(),
		cam:    camera.NewPerspective(45, 16.0/9, 0.1, 1000),
		rocket: model.New(7),
		state:  state.NewMachine(nil),
	}
	r.state.OnChange(func(_, to state.State) { r.seen = append(r.seen, to) })
	r.anim = New(Options{
		Camera:    r.cam,
		Rocket:    r.rocket,
		State:     r.state,
		Clock:     r.clk,
		Starfield: stars,
		Sound:     sound,
		Timing:    DefaultTiming(),
	})
	t.Cleanup(func() {
		r.anim.Dispose()
		r.rocket.Dispose()
	})
	return r
}

func (r *rig) step(n int) {
	for range n {
		r.clk.Advance(frame)
		r.anim.Update(frame)
	}
}

// runUntil steps frames until done reports true or the limit is hit.
func (r *rig) runUntil(t *testing.T, limit int, done func() bool) {
	t.Helper()
	for range limit {
		if done() {
			return
		}
		r.step(1)
	}
	if !done() {
		t.Fatalf("condition not reached after %d frames", limit)
	}
}

func TestFullCycle(t *testing.T) {
	r := newRig(t, nil, nil)
	r.step(10)

	var launched, reset int
	if !r.anim.StartLaunch(func() { launched++ }, func() { reset++ }) {
		t.Fatal("StartLaunch() = false in idle")
	}
	if r.anim.Current() != Launch {
		t.Errorf("Current() = %v, want launch", r.anim.Current())
	}

	r.runUntil(t, 600, func() bool { return reset > 0 })
	r.step(60)

	want := []state.State{state.Preparing, state.Launching, state.Resetting, state.Idle}
	if len(r.seen) != len(want) {
		t.Fatalf("states = %v, want %v", r.seen, want)
	}
	for i := range want {
		if r.seen[i] != want[i] {
			t.Errorf("states[%d] = %v, want %v", i, r.seen[i], want[i])
		}
	}
	if launched != 1 || reset != 1 {
		t.Errorf("callbacks fired launch=%d reset=%d, want 1 each", launched, reset)
	}
	if r.anim.Current() != Idle {
		t.Errorf("Current() = %v after cycle, want idle", r.anim.Current())
	}
	if r.anim.PendingTimers() != 0 {
		t.Errorf("PendingTimers() = %d after cycle", r.anim.PendingTimers())
	}
}

func TestCycleTiming(t *testing.T) {
	r := newRig(t, nil, nil)
	var launchedAt, resetAt time.Duration
	r.anim.StartLaunch(
		func() { launchedAt = r.clk.Now() },
		func() { resetAt = r.clk.Now() },
	)
	r.runUntil(t, 600, func() bool { return resetAt > 0 })

	if launchedAt < 2*time.Second || launchedAt > 2*time.Second+frame {
		t.Errorf("launch completed at %v, want ~2s", launchedAt)
	}
	// 1s linger plus 1.5s reset, each quantised to a frame.
	total := resetAt - launchedAt
	if total < 2500*time.Millisecond || total > 2500*time.Millisecond+2*frame {
		t.Errorf("reset completed %v after launch, want ~2.5s", total)
	}
}

func TestSecondLaunchIgnored(t *testing.T) {
	r := newRig(t, nil, nil)
	var first, second int
	r.anim.StartLaunch(nil, func() { first++ })
	r.step(20)

	if r.anim.StartLaunch(nil, func() { second++ }) {
		t.Error("StartLaunch() = true while launching")
	}
	if r.state.State() != state.Launching {
		t.Errorf("State() = %v, want launching", r.state.State())
	}
	start := r.anim.LaunchPhase().Start
	r.runUntil(t, 600, func() bool { return first > 0 })

	if second != 0 {
		t.Error("callback of ignored launch fired")
	}
	if start != 0 {
		t.Errorf("launch phase start = %v, want 0", start)
	}
}

func TestRoundTripRestoresBaseline(t *testing.T) {
	r := newRig(t, nil, nil)
	r.anim.SetPointerTarget(0.8, -0.5)
	r.anim.PlayClickAnimation(1)
	r.step(30)

	type baseline struct {
		cam      math.Vec3
		roll     float32
		pos      math.Vec3
		tilt     math.Vec3
		scale    math.Vec3
		spin     float32
		fire     math.Vec3
		core     math.Color
		tip      math.Color
		clear    math.Color
		speedMul float32
	}
	var got baseline
	done := false
	r.anim.StartLaunch(nil, func() {
		core, tip := r.rocket.FireColors()
		got = baseline{
			cam:      r.cam.Position,
			roll:     r.cam.Rotation.Z,
			pos:      r.rocket.Root.Position,
			tilt:     r.rocket.Root.Rotation,
			scale:    r.rocket.Root.Scale,
			spin:     r.rocket.Body.Rotation.Y,
			fire:     r.rocket.FireScale(),
			core:     core,
			tip:      tip,
			clear:    r.anim.ClearColor(),
			speedMul: r.anim.SpeedMultiplier(),
		}
		done = true
	})
	r.runUntil(t, 600, func() bool { return done })

	want := baseline{
		cam:      CameraHome,
		scale:    math.One,
		fire:     math.Splat(model.FireBase),
		core:     model.FireCore,
		tip:      model.FireTip,
		clear:    math.Black,
		speedMul: 1,
	}
	if got != want {
		t.Errorf("after reset:\n got %+v\nwant %+v", got, want)
	}
}

func TestLaunchChannels(t *testing.T) {
	stars := &fakeStarfield{}
	r := newRig(t, stars, nil)
	r.anim.StartLaunch(nil, nil)

	prevZ := r.cam.Position.Z
	for range 124 {
		r.step(1)
		if r.cam.Position.Z < prevZ {
			t.Fatalf("camera z went back from %v to %v", prevZ, r.cam.Position.Z)
		}
		prevZ = r.cam.Position.Z
		if s := r.rocket.Root.Scale.X; s < ScaleFloor {
			t.Fatalf("rocket scale %v below floor", s)
		}
		if p := r.anim.LaunchPhase().Progress; p >= ShakeWindow && r.cam.Rotation.Z != 0 {
			t.Fatalf("camera roll %v at progress %v", r.cam.Rotation.Z, p)
		}
	}

	p := r.anim.LaunchPhase()
	if !p.Playing || p.Progress < 0.95 {
		t.Errorf("LaunchPhase() = %+v, want playing near the end", p)
	}
	if r.cam.Position.Z < 150 {
		t.Errorf("camera z = %v near the end of launch", r.cam.Position.Z)
	}
	if stars.peak != DefaultTiming().WarpMultiplier {
		t.Errorf("starfield peak multiplier = %v, want %v", stars.peak, DefaultTiming().WarpMultiplier)
	}
	core, tip := r.rocket.FireColors()
	if core != model.FireCore || tip != model.FireTip {
		t.Errorf("flame colours = %v/%v past 0.3, want idle colours", core, tip)
	}
	if r.anim.ClearColor() == math.Black {
		t.Error("clear colour did not drift in the second half")
	}
}

func TestIgnitionIsWhiteHot(t *testing.T) {
	r := newRig(t, nil, nil)
	r.anim.StartLaunch(nil, nil)
	r.step(3)

	core, tip := r.rocket.FireColors()
	if core != math.White || tip != math.LightBlue {
		t.Errorf("ignition colours = %v/%v, want white/light blue", core, tip)
	}
	if r.rocket.FireScale().X <= model.FireBase {
		t.Errorf("flame width %v did not grow at ignition", r.rocket.FireScale().X)
	}
}

func TestShake(t *testing.T) {
	tests := []struct {
		p    float32
		zero bool
	}{
		{-0.1, true},
		{0, true},
		{0.03, false},
		{0.099, false},
		{0.1, true},
		{0.5, true},
		{1, true},
	}
	for _, tt := range tests {
		got := Shake(tt.p)
		if (got == 0) != tt.zero {
			t.Errorf("Shake(%v) = %v, zero want %v", tt.p, got, tt.zero)
		}
		if abs := max(got, -got); abs > ShakeWindow*ShakeAmplitude {
			t.Errorf("Shake(%v) = %v exceeds amplitude", tt.p, got)
		}
	}
}

func TestClickBoostRestarts(t *testing.T) {
	stars := &fakeStarfield{}
	sound := &fakeSound{}
	r := newRig(t, stars, sound)
	boost := DefaultTiming().ClickMultiplier

	if !r.anim.PlayClickAnimation(-1) {
		t.Fatal("PlayClickAnimation() = false in idle")
	}
	r.clk.Advance(200 * time.Millisecond)
	r.anim.Update(200 * time.Millisecond)
	if stars.last != boost {
		t.Fatalf("multiplier = %v during boost, want %v", stars.last, boost)
	}

	r.anim.PlayClickAnimation(1)
	if r.anim.PendingTimers() != 1 {
		t.Errorf("PendingTimers() = %d after second click, want 1", r.anim.PendingTimers())
	}
	r.clk.Advance(300 * time.Millisecond)
	r.anim.Update(300 * time.Millisecond)
	if stars.last != boost {
		t.Errorf("multiplier = %v, restarted boost should still hold", stars.last)
	}

	r.clk.Advance(150 * time.Millisecond)
	r.anim.Update(150 * time.Millisecond)
	if stars.last != 1 {
		t.Errorf("multiplier = %v after boost, want 1", stars.last)
	}
	if sound.clicks != 2 {
		t.Errorf("click sounds = %d, want 2", sound.clicks)
	}
}

func TestInteractionGatedOutsideIdle(t *testing.T) {
	r := newRig(t, nil, nil)
	r.anim.StartLaunch(nil, nil)

	if r.anim.PlayClickAnimation(1) {
		t.Error("PlayClickAnimation() = true while launching")
	}
	r.anim.SetPointerTarget(1, 1)
	if r.anim.pointer != (math.Vec2{}) {
		t.Errorf("pointer = %v, want unchanged", r.anim.pointer)
	}
}

func TestBusyDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	clk := clock.NewManual()
	rocket := model.New(1)
	defer rocket.Dispose()
	sm := state.NewMachine(zap.NewNop())
	a := New(Options{
		Camera: camera.NewPerspective(45, 1, 0.1, 100),
		Rocket: rocket,
		State:  sm,
		Clock:  clk,
		Timing: DefaultTiming(),
		Logger: zap.New(core),
	})
	defer a.Dispose()

	a.StartLaunch(nil, nil)
	a.StartLaunch(nil, nil)
	a.PlayClickAnimation(1)

	want := []string{"launch ignored", "click ignored"}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("logged %d warnings, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Errorf("warning[%d] = %q, want %q", i, e.Message, want[i])
		}
		if got := e.ContextMap()["state"]; got != "launching" {
			t.Errorf("warning[%d] state = %v, want launching", i, got)
		}
	}
}

func TestPointerEasesCamera(t *testing.T) {
	r := newRig(t, nil, nil)
	r.anim.SetPointerTarget(1, 0)
	r.step(300)

	if x := r.cam.Position.X; x < 1.9 || x > 2.01 {
		t.Errorf("camera x = %v, want close to %v", x, float32(pointerCamX))
	}
	if z := r.rocket.Root.Rotation.Z; z > -0.14 {
		t.Errorf("rocket tilt = %v, want close to %v", z, -pointerTiltZ)
	}
}

func TestIdleFloat(t *testing.T) {
	r := newRig(t, nil, nil)
	for range 500 {
		r.step(1)
		if y := r.rocket.Root.Position.Y; y > idleFloat || y < -idleFloat {
			t.Fatalf("idle float y = %v out of range", y)
		}
	}
}

func TestDisposeCancelsPendingReset(t *testing.T) {
	r := newRig(t, nil, nil)
	var launched, reset int
	r.anim.StartLaunch(func() { launched++ }, func() { reset++ })
	r.runUntil(t, 600, func() bool { return launched > 0 })

	if r.anim.PendingTimers() != 1 {
		t.Fatalf("PendingTimers() = %d during linger, want 1", r.anim.PendingTimers())
	}
	r.anim.Dispose()
	r.anim.Dispose()
	if r.anim.PendingTimers() != 0 {
		t.Errorf("PendingTimers() = %d after Dispose", r.anim.PendingTimers())
	}
	r.step(300)
	if reset != 0 {
		t.Error("reset completed after Dispose")
	}
	if r.state.State() != state.Launching {
		t.Errorf("State() = %v, want launching", r.state.State())
	}
	if r.anim.StartLaunch(nil, nil) {
		t.Error("StartLaunch() = true after Dispose")
	}
}

func TestSoundPlayedOnLaunch(t *testing.T) {
	sound := &fakeSound{err: errors.New("no device")}
	r := newRig(t, nil, sound)
	if !r.anim.StartLaunch(nil, nil) {
		t.Fatal("StartLaunch() = false")
	}
	if len(sound.launches) != 1 || sound.launches[0] != DefaultTiming().LaunchDuration {
		t.Errorf("launch sounds = %v", sound.launches)
	}
}

func TestAnimationString(t *testing.T) {
	tests := []struct {
		a    Animation
		want string
	}{
		{None, "none"},
		{Idle, "idle"},
		{Launch, "launch"},
		{Reset, "reset"},
		{Animation(9), "animation(?)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}

func TestRelaunchFromIdleListener(t *testing.T) {
	r := newRig(t, nil, nil)

	var firstReset, secondReset int
	relaunched := false
	r.state.On(state.Idle, func(_, _ state.State) {
		if relaunched {
			return
		}
		relaunched = true
		if !r.anim.StartLaunch(nil, func() { secondReset++ }) {
			t.Error("StartLaunch() from idle listener = false")
		}
	})

	if !r.anim.StartLaunch(nil, func() { firstReset++ }) {
		t.Fatal("StartLaunch() = false in idle")
	}
	r.runUntil(t, 600, func() bool { return firstReset > 0 })

	if secondReset != 0 {
		t.Errorf("second reset callback fired %d times before its launch ran", secondReset)
	}
	if r.state.State() != state.Launching {
		t.Errorf("state = %v after relaunch, want launching", r.state.State())
	}
	if r.anim.Current() != Launch {
		t.Errorf("Current() = %v after relaunch, want launch", r.anim.Current())
	}
	if !r.anim.LaunchPhase().Playing {
		t.Error("second launch phase not playing")
	}

	r.runUntil(t, 600, func() bool { return secondReset > 0 })
	if firstReset != 1 || secondReset != 1 {
		t.Errorf("reset callbacks = %d, %d, want 1, 1", firstReset, secondReset)
	}
	if r.anim.Current() != Idle {
		t.Errorf("Current() = %v after second cycle, want idle", r.anim.Current())
	}
}
