package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvVariable(t *testing.T) {
	_, err := GetEnvVariable("")
	assert.Error(t, err)

	t.Setenv("ROCKET_SIM_TEST_VAR", "")
	_, err = GetEnvVariable("ROCKET_SIM_TEST_VAR")
	assert.Error(t, err)

	t.Setenv("ROCKET_SIM_TEST_VAR", "value")
	v, err := GetEnvVariable("ROCKET_SIM_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("ROCKET_SIM_ADDR", "")
	assert.Equal(t, "localhost:6379", Getenv("ROCKET_SIM_ADDR", "localhost:6379"))

	t.Setenv("ROCKET_SIM_DT", "0.25")
	assert.Equal(t, 0.25, GetenvFloat("ROCKET_SIM_DT", 1))

	t.Setenv("ROCKET_SIM_DT", "fast")
	assert.Equal(t, 1.0, GetenvFloat("ROCKET_SIM_DT", 1))
}

func TestInitConfigLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ROCKET_SIM_FROM_FILE=42\n"), 0o600))
	t.Setenv("ROCKET_SIM_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("ROCKET_SIM_FROM_FILE"))

	InitConfig(path)
	assert.Equal(t, 42.0, GetenvFloat("ROCKET_SIM_FROM_FILE", 0))

	// a missing file only logs
	InitConfig(filepath.Join(t.TempDir(), "missing.env"))
}
