package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds all smsspam configuration.
type Config struct {
	Archive string
	Output  string
	Split   SplitConfig
	Model   ModelConfig
	Log     LogConfig
}

// SplitConfig controls shuffling and partitioning.
type SplitConfig struct {
	Seed       uint64
	TrainRatio float64
}

// ModelConfig holds classifier settings.
type ModelConfig struct {
	Store          string // "memory" or "sqlite"
	SQLiteDSN      string
	PriorSmoothing float64
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	JSON  bool
}

// New returns a viper instance with defaults set and SMSSPAM_* environment
// variables bound (SMSSPAM_LOG_LEVEL for log.level).
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("archive", "archive.zip")
	v.SetDefault("output", "classified_results.csv")
	v.SetDefault("seed", 42)
	v.SetDefault("train_ratio", 0.8)
	v.SetDefault("store", StoreMemory)
	v.SetDefault("sqlite_dsn", ":memory:")
	v.SetDefault("prior_smoothing", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetEnvPrefix("smsspam")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into v and returns the validated Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", file)
		}
	}
	cfg := Config{
		Archive: v.GetString("archive"),
		Output:  v.GetString("output"),
		Split: SplitConfig{
			Seed:       v.GetUint64("seed"),
			TrainRatio: v.GetFloat64("train_ratio"),
		},
		Model: ModelConfig{
			Store:          strings.ToLower(v.GetString("store")),
			SQLiteDSN:      v.GetString("sqlite_dsn"),
			PriorSmoothing: v.GetFloat64("prior_smoothing"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Archive == "" {
		return errors.New("config: archive path is empty")
	}
	if c.Split.TrainRatio <= 0 || c.Split.TrainRatio >= 1 {
		return errors.Errorf("config: train_ratio %v must be between 0 and 1", c.Split.TrainRatio)
	}
	switch c.Model.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.Model.SQLiteDSN == "" {
			return errors.New("config: sqlite_dsn is empty")
		}
	default:
		return errors.Errorf("config: unknown store %q", c.Model.Store)
	}
	if c.Model.PriorSmoothing < 0 {
		return errors.Errorf("config: prior_smoothing %v is negative", c.Model.PriorSmoothing)
	}
	return nil
}
