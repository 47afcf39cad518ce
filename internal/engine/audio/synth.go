package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep/v2"
)

// Rumble synthesises a launch roar: low-passed noise over a 55 Hz hum, with
// a fast attack and an exponential tail. The stream ends after d.
func Rumble(sr beep.SampleRate, d time.Duration, seed uint64) beep.Streamer {
	rng := rand.New(rand.NewPCG(seed, 0x6c61756e6368))
	total := sr.N(d)
	attack := sr.N(150 * time.Millisecond)
	rate := float64(sr)

	var pos int
	var lowL, lowR float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := envelope(pos, attack, total)
			hum := 0.35 * math.Sin(2*math.Pi*55*float64(pos)/rate)

			lowL += 0.04 * (rng.Float64()*2 - 1 - lowL)
			lowR += 0.04 * (rng.Float64()*2 - 1 - lowR)

			samples[i][0] = clampSample(env * (hum + 3*lowL))
			samples[i][1] = clampSample(env * (hum + 3*lowR))
			pos++
			n++
		}
		return n, true
	})
}

// Blip synthesises a decaying sine at freq Hz lasting d.
func Blip(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	rate := float64(sr)

	var pos int
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / rate
			decay := 1 - float64(pos)/float64(total)
			v := 0.5 * decay * decay * math.Sin(2*math.Pi*freq*t)
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

// envelope rises linearly over attack samples then decays exponentially to
// near silence at total.
func envelope(pos, attack, total int) float64 {
	if pos < attack {
		return float64(pos) / float64(attack)
	}
	tail := float64(pos-attack) / float64(max(total-attack, 1))
	return math.Exp(-4 * tail)
}

func clampSample(v float64) float64 {
	return clamp(v, -1, 1)
}
