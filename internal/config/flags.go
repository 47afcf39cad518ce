package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagNoPostFX    = flag.Bool("no-postfx", false, "Disable post-processing passes")
	flagTexture     = flag.String("texture", "", "Background texture path or URL")
	flagMute        = flag.Bool("mute", false, "Disable audio")
	flagLaunchSound = flag.String("launch-sound", "", "WAV file played on launch")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// SaveConfigRequested reports whether --save-config was given.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagNoPostFX {
		cfg.Scene.PostProcessing = false
	}
	if *flagTexture != "" {
		cfg.Scene.BackgroundTexture = *flagTexture
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagLaunchSound != "" {
		cfg.Audio.LaunchSound = *flagLaunchSound
	}
}
