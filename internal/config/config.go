// Package config handles configurator settings loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AssetsConfig holds mesh asset locations.
type AssetsConfig struct {
	// Root is the directory containing {tentType}/{variant}/frame and
	// SharedFrames asset folders.
	Root string `yaml:"root"`

	// Catalog is an optional tent variant catalog file; empty means the
	// built-in catalog.
	Catalog string `yaml:"catalog"`
}

// ViewerConfig holds the initial configurator state.
type ViewerConfig struct {
	TentType    string `yaml:"tent_type"`
	Variant     string `yaml:"variant"`
	NumBays     int    `yaml:"num_bays"`
	Environment string `yaml:"environment"`
	ShowFPS     bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Viewer: ViewerConfig{
			TentType:    "classic",
			Variant:     "grande",
			NumBays:     3,
			Environment: "day",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
