package frontier

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BiasConfig describes the avoid-point term of the cost model
type BiasConfig struct {
	// World position the exploration should steer away from
	AvoidPoint Point `yaml:"avoid_point"`
	// Gaussian noise added to the avoid-point distance
	NoiseMean   float64 `yaml:"noise_mean"`
	NoiseStdDev float64 `yaml:"noise_std_dev"`
	// Robot closer than NearThreshold to the avoid point suppresses the bias
	NearThreshold float64 `yaml:"near_threshold"`
	// Entering [NearThreshold, FarThreshold) arms the bias for good
	FarThreshold float64 `yaml:"far_threshold"`
	// Weight applied once armed
	Weight float64 `yaml:"weight"`
}

// Config holds search and cost model parameters
type Config struct {
	PotentialScale  float64 `yaml:"potential_scale"`
	GainScale       float64 `yaml:"gain_scale"`
	MinFrontierSize float64 `yaml:"min_frontier_size"`
	// Bound (in cells, chessboard distance) for the nearest free cell lookup. Zero searches whole map
	NearestFreeRadius int        `yaml:"nearest_free_radius"`
	Bias              BiasConfig `yaml:"bias"`
}

// DefaultBiasConfig returns avoid-point parameters of the reference deployment
func DefaultBiasConfig() BiasConfig {
	return BiasConfig{
		AvoidPoint:    Point{X: -2.91756, Y: -5.26284},
		NoiseMean:     0.0,
		NoiseStdDev:   0.2,
		NearThreshold: 3.0,
		FarThreshold:  6.0,
		Weight:        3.0,
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		PotentialScale:    1e-3,
		GainScale:         1.0,
		MinFrontierSize:   0.5,
		NearestFreeRadius: 0,
		Bias:              DefaultBiasConfig(),
	}
}

// LoadConfig reads YAML configuration. Fields omitted in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, errors.Wrap(err, "Can't read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "Can't parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable
func (cfg *Config) Validate() error {
	if cfg.MinFrontierSize < 0 {
		return errors.Wrapf(ErrInvalidConfig, "min_frontier_size must be non-negative, got %f", cfg.MinFrontierSize)
	}
	if cfg.NearestFreeRadius < 0 {
		return errors.Wrapf(ErrInvalidConfig, "nearest_free_radius must be non-negative, got %d", cfg.NearestFreeRadius)
	}
	bias := cfg.Bias
	if bias.NoiseStdDev < 0 {
		return errors.Wrapf(ErrInvalidConfig, "bias.noise_std_dev must be non-negative, got %f", bias.NoiseStdDev)
	}
	if bias.NearThreshold < 0 || bias.FarThreshold < bias.NearThreshold {
		return errors.Wrapf(ErrInvalidConfig, "bias thresholds must satisfy 0 <= near <= far, got near=%f far=%f", bias.NearThreshold, bias.FarThreshold)
	}
	return nil
}
