// Package audio plays the scene's sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init succeeded.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager mixes sound effects onto the speaker. Methods are safe to call
// from any goroutine.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	seed        uint64

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// Decoded launch sample; nil selects the synthesised rumble.
	launch *beep.Buffer

	// Mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences new effects.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// ToggleMute flips the mute state and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// IsMuted reports whether effects are silenced.
func (m *Manager) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// effectiveVolume is master * sfx, zero when muted. Callers hold mu.
func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.sfxVolLevel
}

// volumeToDb converts a 0-1 volume to decibel scale:
// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

// volumeExponent converts a 0-1 volume to the base-2 exponent used by
// effects.Volume.
func volumeExponent(vol float64) float64 {
	return volumeToDb(vol) / (20 * math.Log10(2))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadLaunchSample decodes WAV data to replace the synthesised launch rumble.
func (m *Manager) LoadLaunchSample(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	m.launch = buf
	return nil
}

// PlayLaunch plays the launch sound, lasting roughly d when synthesised.
func (m *Manager) PlayLaunch(d time.Duration) error {
	m.mu.Lock()
	m.seed++
	seed := m.seed
	sample := m.launch
	m.mu.Unlock()

	if sample != nil {
		return m.play(sample.Streamer(0, sample.Len()))
	}
	return m.play(Rumble(m.sampleRate, d, seed))
}

// PlayClick plays a short blip.
func (m *Manager) PlayClick() error {
	return m.play(Blip(m.sampleRate, 880, 90*time.Millisecond))
}

// play adds s to the mixer at the current effect volume.
func (m *Manager) play(s beep.Streamer) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.effectiveVolume()
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	volStreamer := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	}

	speaker.Lock()
	m.sfxMixer.Add(volStreamer)
	speaker.Unlock()
	return nil
}
