package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)

	assert.Equal(t, "png", c.Output.Format)
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.Debug.Enabled)
	assert.NoError(t, c.Validate())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfigFile(t, `
output:
  format: webp
  dir: /tmp/compositor-out
log:
  level: debug
  format: json
debug:
  enabled: true
  stage_dir: /tmp/compositor-stages
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, "webp", c.Output.Format)
	assert.Equal(t, "/tmp/compositor-out", c.Output.Dir)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.True(t, c.Debug.Enabled)
	assert.Equal(t, "/tmp/compositor-stages", c.Debug.StageDir)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
log:
  level: warn
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "png", c.Output.Format)
	assert.Equal(t, "text", c.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
output:
  format: bmp
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "jpeg alias", mutate: func(c *Config) { c.Output.Format = "jpeg" }, wantErr: false},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "bmp" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "debug without stage dir", mutate: func(c *Config) { c.Debug.Enabled = true; c.Debug.StageDir = "" }, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default()
			test.mutate(c)
			err := c.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("COMPOSITOR_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", GetEnv("COMPOSITOR_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("COMPOSITOR_TEST_MISSING", "fallback"))
}
