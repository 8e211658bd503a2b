package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Select)
	assert.False(t, cfg.RealTime)
	assert.Equal(t, 30*time.Second, cfg.Publish.Timeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jester.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: json
select:
  - Jester contexts/Tests with context A
output: report.json
realTime: true
publish:
  target: ci@reports.example.com/srv/report.json
  key: /home/ci/.ssh/id_ed25519
  timeout: 5s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"Jester contexts/Tests with context A"}, cfg.Select)
	assert.Equal(t, "report.json", cfg.Output)
	assert.True(t, cfg.RealTime)
	assert.Equal(t, "ci@reports.example.com/srv/report.json", cfg.Publish.Target)
	assert.Equal(t, "/home/ci/.ssh/id_ed25519", cfg.Publish.KeyPath)
	assert.Equal(t, 5*time.Second, cfg.Publish.Timeout)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("JESTER_FORMAT", "yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
