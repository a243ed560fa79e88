package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Pipeline PipelineConfig
	Tuning   TuningConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// PipelineConfig holds document-processing configuration
type PipelineConfig struct {
	// DocumentTimeout bounds one document's full pipeline run. On timeout the
	// document yields an extraction-failed report, never a partial room set.
	DocumentTimeout time.Duration
	// Workers is the batch-level parallelism; each worker owns one
	// document's pipeline run end to end.
	Workers int
	// StandardsPath optionally overrides the embedded standards database.
	StandardsPath string
}

// TuningConfig carries the extraction/consolidation thresholds that are
// tunable rather than contractual. Zero values select the built-in defaults.
type TuningConfig struct {
	// DuplicateTolerance is the relative tolerance under which two candidate
	// values count as votes for the same underlying value.
	DuplicateTolerance float64 `toml:"duplicate_tolerance"`
	// ConfidenceFloor is assigned to candidates outside their plausibility
	// range instead of discarding them.
	ConfidenceFloor float64 `toml:"confidence_floor"`
	// Tier confidences, most to least specific rule tier.
	TierAnchored float64 `toml:"tier_anchored"`
	TierUnit     float64 `toml:"tier_unit"`
	TierBare     float64 `toml:"tier_bare"`
	// UnitBonus is added when a match carries an explicit unit.
	UnitBonus float64 `toml:"unit_bonus"`
}

// DefaultTuning returns the built-in thresholds.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		DuplicateTolerance: 0.02,
		ConfidenceFloor:    0.15,
		TierAnchored:       0.9,
		TierUnit:           0.7,
		TierBare:           0.45,
		UnitBonus:          0.05,
	}
}

// LoadConfig loads configuration from environment variables. When
// TUNING_FILE points at a TOML file its values override the built-in
// extraction thresholds.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "file:standards.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 5*time.Minute),
			MaxUploadBytes:  int64(getEnvAsInt("HTTP_MAX_UPLOAD_BYTES", 64<<20)),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Pipeline: PipelineConfig{
			DocumentTimeout: getEnvAsDuration("DOCUMENT_TIMEOUT", 2*time.Minute),
			Workers:         getEnvAsInt("PIPELINE_WORKERS", 4),
			StandardsPath:   getEnv("STANDARDS_PATH", ""),
		},
		Tuning: DefaultTuning(),
	}

	if path := os.Getenv("TUNING_FILE"); path != "" {
		if err := loadTuningFile(path, &cfg.Tuning); err != nil {
			return nil, fmt.Errorf("load tuning file %s: %w", path, err)
		}
	}
	return cfg, nil
}

func loadTuningFile(path string, t *TuningConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Decode over the defaults so a partial file overrides only what it sets.
	if err := toml.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	return t.validate()
}

func (t TuningConfig) validate() error {
	if t.DuplicateTolerance < 0 || t.DuplicateTolerance > 0.5 {
		return NewAppError("CONFIG_ERROR", "duplicate_tolerance out of range [0,0.5]", ErrInvalidInput)
	}
	for _, v := range []float64{t.ConfidenceFloor, t.TierAnchored, t.TierUnit, t.TierBare, t.UnitBonus} {
		if v < 0 || v > 1 {
			return NewAppError("CONFIG_ERROR", "confidence values must be in [0,1]", ErrInvalidInput)
		}
	}
	return nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Pipeline.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_WORKERS must be >= 1", ErrInvalidInput)
	}
	return c.Tuning.validate()
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
