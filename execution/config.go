package execution

import (
	"runtime"

	"github.com/kbukum/streamfusion/config"
	"github.com/kbukum/streamfusion/validation"
)

// ConfigSection is the configuration key read by LoadConfig.
const ConfigSection = "execution"

// Config controls how an Engine runs plans.
type Config struct {
	// WorkerCount bounds the number of workers running at once.
	WorkerCount int `yaml:"worker_count" mapstructure:"worker_count" validate:"gt=0"`
	// YieldEvery is the number of non-terminal polls between scheduler yields.
	YieldEvery int `yaml:"yield_every" mapstructure:"yield_every" validate:"gt=0"`
	// MorselCapacity is the number of items per morsel for static plans.
	MorselCapacity int `yaml:"morsel_capacity" mapstructure:"morsel_capacity" validate:"gt=0"`
}

// DefaultConfig returns one worker per available processor, a yield every
// 32 polls and morsels of 256 items.
func DefaultConfig() Config {
	return Config{
		WorkerCount:    runtime.GOMAXPROCS(0),
		YieldEvery:     32,
		MorselCapacity: 256,
	}
}

// Validate reports an INVALID_CONFIG error for any value that is not
// greater than zero.
func (c Config) Validate() error {
	return validation.Validate(c)
}

// LoadConfig reads the execution section on top of DefaultConfig and
// validates the result.
func LoadConfig(opts ...config.Option) (Config, error) {
	cfg := DefaultConfig()
	if err := config.Load(ConfigSection, &cfg, opts...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
