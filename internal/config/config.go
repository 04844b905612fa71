// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Bloom     BloomConfig     `yaml:"bloom"`
	Particles ParticlesConfig `yaml:"particles"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds surface and rendering settings.
type GraphicsConfig struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	ClearColor  [4]float32 `yaml:"clear_color"`
	MSAASamples int        `yaml:"msaa_samples"`
}

// BloomConfig holds the bloom post-process settings.
type BloomConfig struct {
	Enabled        bool       `yaml:"enabled"`
	Threshold      float32    `yaml:"threshold"`
	ColorWeights   [3]float32 `yaml:"color_weights"`
	BlurIterations int        `yaml:"blur_iterations"`
}

// ParticlesConfig holds particle simulation settings.
type ParticlesConfig struct {
	Workers int `yaml:"workers"`
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
			Width:       1280,
			Height:      720,
			ClearColor:  [4]float32{0, 0, 0, 1},
			MSAASamples: 4,
		},
		Bloom: BloomConfig{
			Enabled:        true,
			Threshold:      1.0,
			ColorWeights:   [3]float32{0.2126, 0.7152, 0.0722},
			BlurIterations: 4,
		},
		Particles: ParticlesConfig{
			Workers: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
