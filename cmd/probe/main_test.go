package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/probe/pkg/logging"
)

func testFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	cliConfig := parseFlags(testFlagSet(), nil)

	config, err := loadConfig(cliConfig)
	require.NoError(t, err)

	assert.Equal(t, "probe", config.Suite)
	assert.Empty(t, config.Browser.Engine)
	assert.Nil(t, config.Browser.Headless, "headless default comes from stored settings")
	assert.Nil(t, config.Browser.Install)
	assert.Empty(t, config.Run)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`suite: nightly
browser:
  engine: webkit
  headless: true
run: "other/*"
logging:
  verbosity: quiet
`), 0600))

	cliConfig := parseFlags(testFlagSet(), []string{
		"-config", path,
		"-browser", "firefox",
		"-headless=false",
		"-run", "login/*",
		"-output", "out",
		"-verbosity", "debug",
		"-timeout", "45s",
		"-install",
		"-maximize",
	})

	config, err := loadConfig(cliConfig)
	require.NoError(t, err)

	assert.Equal(t, "nightly", config.Suite)
	assert.Equal(t, "firefox", config.Browser.Engine)
	require.NotNil(t, config.Browser.Headless)
	assert.False(t, *config.Browser.Headless)
	assert.Equal(t, "login/*", config.Run)
	assert.True(t, config.Artifacts.Enabled)
	assert.Equal(t, "out", config.Artifacts.OutputDir)
	assert.Equal(t, "debug", config.Logging.Verbosity)
	assert.Equal(t, 45*time.Second, config.Browser.Timeout)
	require.NotNil(t, config.Browser.Install)
	assert.True(t, *config.Browser.Install)
	require.NotNil(t, config.Browser.Maximize)
	assert.True(t, *config.Browser.Maximize)
}

func TestLoadConfig_FileValuesKeptWithoutFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser:\n  engine: webkit\n"), 0600))

	config, err := loadConfig(parseFlags(testFlagSet(), []string{"-config", path}))
	require.NoError(t, err)
	assert.Equal(t, "webkit", config.Browser.Engine)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cliConfig := parseFlags(testFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})

	_, err := loadConfig(cliConfig)
	assert.Error(t, err)
}

func TestRunLogLevel(t *testing.T) {
	assert.Equal(t, logging.LevelDebug, runLogLevel("debug"))
	assert.Equal(t, logging.LevelInfo, runLogLevel("verbose"))
	assert.Equal(t, logging.LevelInfo, runLogLevel(""))
	assert.Equal(t, logging.LevelInfo, runLogLevel("nonsense"))
}
