package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/policy-extract/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.3, cfg.Engine.MinScore, 0.001)
	assert.InDelta(t, 0.9, cfg.Engine.DirectBase, 0.001)
	assert.InDelta(t, 0.05, cfg.Engine.DirectDecay, 0.001)
	assert.InDelta(t, 0.65, cfg.Engine.FuzzyThreshold, 0.001)
	assert.Equal(t, 25, cfg.Engine.UnmatchedLimit)
	assert.Equal(t, "local", cfg.OCR.Provider)
	assert.Equal(t, "pdftotext", cfg.OCR.PdfToTextPath)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentDocuments)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
engine:
  min_score: 0.5
  bounds:
    gst_amount:
      min: 50
      max: 200000
store:
  driver: postgres
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.5, cfg.Engine.MinScore, 0.001)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	require.Contains(t, cfg.Engine.Bounds, "gst_amount")
	assert.InDelta(t, 200000, cfg.Engine.Bounds["gst_amount"].Max, 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentDocuments)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("POLEX_STORE_DRIVER", "postgres")
	t.Setenv("POLEX_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("POLEX_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config mirroring Load's defaults for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Engine.MinScore = 0.3
	cfg.Engine.DirectBase = 0.9
	cfg.Engine.DirectDecay = 0.05
	cfg.Engine.DirectFloor = 0.4
	cfg.Engine.ProximityConfidence = 0.8
	cfg.Engine.FuzzyThreshold = 0.65
	cfg.Engine.FuzzyBase = 0.65
	cfg.Engine.UnmatchedLimit = 25
	cfg.Batch.MaxConcurrentDocuments = 5
	cfg.Server.Port = 8080
	cfg.Server.RateLimit = 5
	cfg.Store.Driver = "sqlite"
	return cfg
}

func TestValidateExtract_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("extract"))
}

func TestValidateExtract_BadThreshold(t *testing.T) {
	cfg := validDefaults()
	cfg.Engine.MinScore = 1.5

	err := cfg.Validate("extract")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "min_score")
}

func TestValidateExtract_InvertedBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Engine.Bounds = map[string]model.MonetaryBounds{"gst_amount": {Min: 100, Max: 50}}

	err := cfg.Validate("extract")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gst_amount")
}

func TestValidateBatch_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.MaxConcurrentDocuments = 0
	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_documents must be between 1 and 50")

	cfg.Batch.MaxConcurrentDocuments = 51
	err = cfg.Validate("batch")
	assert.Error(t, err)

	cfg.Batch.MaxConcurrentDocuments = 50
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidateBatch_UnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "oracle"

	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
