// Package config handles launchpad configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all application settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Starfield StarfieldConfig `yaml:"starfield"`
	PostFX    PostFXConfig    `yaml:"postfx"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	HighDPI    bool `yaml:"high_dpi"`
}

// SceneConfig holds the rocket animation timings.
type SceneConfig struct {
	LaunchDuration    time.Duration `yaml:"launch_duration"`
	ResetDuration     time.Duration `yaml:"reset_duration"`
	ResetDelay        time.Duration `yaml:"reset_delay"`
	ClickBoost        time.Duration `yaml:"click_boost"`
	PostProcessing    bool          `yaml:"post_processing"`
	BackgroundTexture string        `yaml:"background_texture"` // file path or http(s) URL
	Seed              uint64        `yaml:"seed"`               // 0 picks a random seed
}

// StarfieldConfig holds the parallax layer sizes and speeds.
type StarfieldConfig struct {
	BackgroundCount int     `yaml:"background_count"`
	MidCount        int     `yaml:"mid_count"`
	NearCount       int     `yaml:"near_count"`
	BaseSpeed       float32 `yaml:"base_speed"`
	WarpMultiplier  float32 `yaml:"warp_multiplier"`
	ClickMultiplier float32 `yaml:"click_multiplier"`
	Drift           float32 `yaml:"drift"`
}

// PostFXConfig holds the post-processing uniforms.
type PostFXConfig struct {
	DistortionStrength float32 `yaml:"distortion_strength"`
	Vignette           float32 `yaml:"vignette"`
	Aberration         float32 `yaml:"aberration"`
	GlowThreshold      float32 `yaml:"glow_threshold"`
	GlowIntensity      float32 `yaml:"glow_intensity"`
	Scanlines          float32 `yaml:"scanlines"`
	Noise              float32 `yaml:"noise"`
	RGBOffset          float32 `yaml:"rgb_offset"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	LaunchSound  string  `yaml:"launch_sound"` // WAV file, empty synthesises the rumble
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			HighDPI:    true,
		},
		Scene: SceneConfig{
			LaunchDuration: 2 * time.Second,
			ResetDuration:  1500 * time.Millisecond,
			ResetDelay:     time.Second,
			ClickBoost:     400 * time.Millisecond,
			PostProcessing: true,
		},
		Starfield: StarfieldConfig{
			BackgroundCount: 1500,
			MidCount:        600,
			NearCount:       300,
			BaseSpeed:       0.4,
			WarpMultiplier:  12,
			ClickMultiplier: 4,
			Drift:           0.0002,
		},
		PostFX: PostFXConfig{
			DistortionStrength: 0.08,
			Vignette:           0.35,
			Aberration:         0.003,
			GlowThreshold:      0.6,
			GlowIntensity:      0.8,
			Scanlines:          0.12,
			Noise:              0.04,
			RGBOffset:          0.0015,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// Validate reports settings the scene cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"scene.launch_duration", c.Scene.LaunchDuration},
		{"scene.reset_duration", c.Scene.ResetDuration},
		{"scene.reset_delay", c.Scene.ResetDelay},
		{"scene.click_boost", c.Scene.ClickBoost},
	}
	for _, d := range durations {
		if d.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", d.name, d.d))
		}
	}
	if c.Starfield.BackgroundCount < 0 || c.Starfield.MidCount < 0 || c.Starfield.NearCount < 0 {
		errs = append(errs, errors.New("starfield counts must not be negative"))
	}
	return errors.Join(errs...)
}
