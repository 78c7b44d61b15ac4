package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	AdminToken string
	Simulation SimulationConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// SimulationConfig controls score update pacing and the initial match list.
type SimulationConfig struct {
	MinDelay  Duration
	MaxDelay  Duration
	Highlight Duration
	// SeedFile points at a YAML match list; empty uses the built-in seed.
	SeedFile string
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		AdminToken: envOrDefault(envAdminToken, ""),
		Simulation: loadSimulation(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}

func loadSimulation() SimulationConfig {
	cfg := SimulationConfig{
		MinDelay:  durationEnvOrDefault(envMinDelay, defaultMinDelay),
		MaxDelay:  durationEnvOrDefault(envMaxDelay, defaultMaxDelay),
		Highlight: durationEnvOrDefault(envHighlight, defaultHighlight),
		SeedFile:  envOrDefault(envSeedFile, ""),
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return cfg
}
