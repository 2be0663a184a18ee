package raypick

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes an EventManager and its input surfaces.
type Config struct {
	// Debug enables per-cycle timing and count logs at debug level.
	Debug bool `env:"RAYPICK_DEBUG"`
	// RayNear and RayFar bound accepted hit distances. A zero RayFar means
	// unbounded.
	RayNear float64 `env:"RAYPICK_RAY_NEAR" envDefault:"0"`
	RayFar  float64 `env:"RAYPICK_RAY_FAR"  envDefault:"0"`
	// WarnModifiers enables the one-time warning for unsupported
	// Capture/Passive/Once prop suffixes.
	WarnModifiers bool `env:"RAYPICK_WARN_MODIFIERS" envDefault:"true"`
	// DoubleClickInterval is the longest gap between two clicks that still
	// counts as a double click.
	DoubleClickInterval time.Duration `env:"RAYPICK_DBLCLICK_INTERVAL" envDefault:"500ms"`
	// DoubleClickTolerance is the farthest, in pixels, the second click may
	// land from the first.
	DoubleClickTolerance float64 `env:"RAYPICK_DBLCLICK_TOLERANCE" envDefault:"4"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		WarnModifiers:        true,
		DoubleClickInterval:  500 * time.Millisecond,
		DoubleClickTolerance: 4,
	}
}

// LoadConfigFromEnv reads RAYPICK_* environment variables on top of the
// defaults.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse raypick env: %w", err)
	}
	if cfg.RayNear < 0 {
		return DefaultConfig(), fmt.Errorf("parse raypick env: RAYPICK_RAY_NEAR must be >= 0, got %v", cfg.RayNear)
	}
	if cfg.RayFar != 0 && cfg.RayFar < cfg.RayNear {
		return DefaultConfig(), fmt.Errorf("parse raypick env: RAYPICK_RAY_FAR %v is below RAYPICK_RAY_NEAR %v", cfg.RayFar, cfg.RayNear)
	}
	return cfg, nil
}
