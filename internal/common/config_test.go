package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "file:standards.db", cfg.Database.DSN)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Pipeline.DocumentTimeout)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, DefaultTuning(), cfg.Tuning)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/audit")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PIPELINE_WORKERS", "8")
	t.Setenv("DOCUMENT_TIMEOUT", "45s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/audit", cfg.Database.DSN)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, 45*time.Second, cfg.Pipeline.DocumentTimeout)
}

func TestTuningFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"duplicate_tolerance = 0.05\nconfidence_floor = 0.2\n"), 0o644))
	t.Setenv("TUNING_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.05, cfg.Tuning.DuplicateTolerance, 1e-9)
	assert.InDelta(t, 0.2, cfg.Tuning.ConfidenceFloor, 1e-9)
	// untouched keys keep the defaults
	assert.InDelta(t, DefaultTuning().TierAnchored, cfg.Tuning.TierAnchored, 1e-9)
}

func TestTuningFileRejectsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("tier_anchored = 1.5\n"), 0o644))
	t.Setenv("TUNING_FILE", path)

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestTuningFileRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("= nonsense"), 0o644))
	t.Setenv("TUNING_FILE", path)

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{Tuning: DefaultTuning()}
	cfg.Database.DSN = ""
	cfg.Pipeline.Workers = 1
	assert.Error(t, cfg.Validate())

	cfg.Database.DSN = "file:test.db"
	cfg.Pipeline.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg.Pipeline.Workers = 2
	assert.NoError(t, cfg.Validate())
}
