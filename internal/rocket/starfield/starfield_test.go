package starfield

import (
	"testing"

	"github.com/Faultbox/launchpad/pkg/math"
)

func testField(count int) *ParticleField {
	return NewParticleField("test", FieldConfig{
		Count:    count,
		RangeH:   40,
		RangeV:   20,
		RangeZ:   100,
		RecycleZ: 10,
		Speed:    3,
		Size:     1,
		Color:    math.White,
		Seed:     7,
	})
}

func checkBounds(t *testing.T, f *ParticleField) {
	t.Helper()
	cfg := f.Config()
	pos := f.Positions()
	for i := 0; i < len(pos); i += 3 {
		x, y, z := pos[i], pos[i+1], pos[i+2]
		if z < -cfg.RangeZ || z > cfg.RecycleZ {
			t.Fatalf("point %d z = %v outside [%v, %v]", i/3, z, -cfg.RangeZ, cfg.RecycleZ)
		}
		if x < -cfg.RangeH/2 || x > cfg.RangeH/2 || y < -cfg.RangeV/2 || y > cfg.RangeV/2 {
			t.Fatalf("point %d (%v, %v) outside the field", i/3, x, y)
		}
	}
}

func TestInitialBounds(t *testing.T) {
	checkBounds(t, testField(500))
}

func TestUpdateConstantKeepsDepthInRange(t *testing.T) {
	f := testField(300)
	for i := 0; i < 2000; i++ {
		f.UpdateConstant()
		checkBounds(t, f)
	}
}

func TestRecycleSetsFarDepthExactly(t *testing.T) {
	f := testField(1)
	pos := f.Positions()
	pos[2] = 9.9

	// Any positive step at factor >= 0.5 crosses the threshold.
	f.UpdateWithVelocity(5)

	if pos[2] != -100 {
		t.Errorf("respawned z = %v, want exactly -100", pos[2])
	}
}

func TestNegativeVelocityWrapsToThreshold(t *testing.T) {
	f := testField(1)
	pos := f.Positions()
	pos[2] = -99.9

	f.UpdateWithVelocity(-5)

	if pos[2] != 10 {
		t.Errorf("wrapped z = %v, want 10", pos[2])
	}
	for i := 0; i < 500; i++ {
		f.UpdateWithVelocity(-7)
		checkBounds(t, f)
	}
}

func TestHugeStepStaysInRange(t *testing.T) {
	f := testField(50)
	f.UpdateWithVelocity(1e6)
	checkBounds(t, f)
	f.UpdateWithVelocity(-1e6)
	checkBounds(t, f)
}

func TestUpdateDoesNotAllocate(t *testing.T) {
	f := testField(1000)
	allocs := testing.AllocsPerRun(100, func() {
		f.UpdateConstant()
		f.UpdateWithVelocity(2)
	})
	if allocs != 0 {
		t.Errorf("allocs per update = %v, want 0", allocs)
	}
}

func TestZeroCountField(t *testing.T) {
	f := testField(0)
	f.UpdateConstant()
	if len(f.Positions()) != 0 {
		t.Error("empty field has positions")
	}
}

func TestBackgroundDrift(t *testing.T) {
	b := NewBackgroundStarField(FieldConfig{Count: 10, RangeH: 10, RangeV: 10, RangeZ: 50, RecycleZ: -10, Speed: 0.01}, 0.001)
	for i := 0; i < 10; i++ {
		b.Update()
	}
	if got := b.Node().Rotation.Z; got < 0.0099 || got > 0.0101 {
		t.Errorf("roll = %v, want 0.01", got)
	}
	checkBounds(t, b.Field)
}

// depthTravel sums z movement of non-recycled points.
func depthTravel(before, after []float32) float32 {
	var sum float32
	for i := 2; i < len(before); i += 3 {
		if d := after[i] - before[i]; d > 0 {
			sum += d
		}
	}
	return sum
}

func TestParallaxRatios(t *testing.T) {
	p := NewParallax(Config{MidCount: 200, NearCount: 200, BaseSpeed: 0.001, Seed: 3})
	// Equalise the layers so travel depends only on the ratio.
	copy(p.Mid.factors, p.Near.factors)
	copy(p.Mid.positions, p.Near.positions)
	for i := 2; i < len(p.Mid.positions); i += 3 {
		p.Mid.positions[i] = -50
		p.Near.positions[i] = -50
	}

	midBefore := append([]float32(nil), p.Mid.Positions()...)
	nearBefore := append([]float32(nil), p.Near.Positions()...)
	p.UpdateWithVelocity(1)

	mid := depthTravel(midBefore, p.Mid.Positions())
	near := depthTravel(nearBefore, p.Near.Positions())
	if ratio := mid / near; ratio < 0.39 || ratio > 0.41 {
		t.Errorf("mid/near travel = %v, want 0.4", ratio)
	}
}

func TestParallaxSpeedMultiplier(t *testing.T) {
	p := NewParallax(Config{NearCount: 1, BaseSpeed: 0.5, Seed: 1})
	p.Near.positions[2] = -150
	factor := p.Near.factors[0]

	p.SetSpeedMultiplier(4)
	p.Update()

	if want := -150 + 0.5*4*factor; !approx(p.Near.positions[2], want) {
		t.Errorf("z = %v, want %v", p.Near.positions[2], want)
	}
	if p.SpeedMultiplier() != 4 {
		t.Error("multiplier not stored")
	}
}

func TestParallaxDispose(t *testing.T) {
	p := NewParallax(Config{BackgroundCount: 5, MidCount: 5, NearCount: 5})
	if len(p.Nodes()) != 3 || len(p.Root().Children()) != 3 {
		t.Fatal("expected three layers")
	}
	p.Dispose()
	p.Dispose()
	for _, n := range p.Nodes() {
		if !n.Disposed() {
			t.Error("layer not disposed")
		}
	}
	// Updates after dispose are ignored.
	p.Update()
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
