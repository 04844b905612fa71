package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Surface width")
	flagHeight  = flag.Int("height", 0, "Surface height")
	flagNoBloom = flag.Bool("no-bloom", false, "Disable the bloom pass")
	flagWorkers = flag.Int("workers", 0, "Particle worker count")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagNoBloom {
		cfg.Bloom.Enabled = false
	}
	if *flagWorkers > 0 {
		cfg.Particles.Workers = *flagWorkers
	}
}
