package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
	Inner             TestStructInner
}

type TestStructInner struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
}

func TestExpandConfig(t *testing.T) {
	inert := "DO_NOT_CHANGE"
	outerEnvVarName := "_OUTER_ENV_VAR"
	outerEnvVarValue := "OUTER_VALUE"
	innerEnvVarName := "_INNER_ENV_VAR"
	innerEnvVarValue := "INNER_VALUE"
	test := TestStruct{
		InertString:       inert,
		ExpandString:      "$" + outerEnvVarName,
		ExpandStringSlice: []string{"$" + outerEnvVarName, inert},
	}
	innerStruct := TestStructInner{
		InertString:       inert,
		ExpandString:      "$" + innerEnvVarName,
		ExpandStringSlice: []string{"$" + innerEnvVarName, inert},
	}
	test.Inner = innerStruct

	t.Setenv(outerEnvVarName, outerEnvVarValue)
	t.Setenv(innerEnvVarName, innerEnvVarValue)
	assert.Equal(t, outerEnvVarValue, os.ExpandEnv("$"+outerEnvVarName))
	assert.Equal(t, innerEnvVarValue, os.ExpandEnv("$"+innerEnvVarName))
	expandConfig(reflect.ValueOf(&test).Elem())

	assert.Equal(t, inert, test.InertString)
	assert.Equal(t, outerEnvVarValue, test.ExpandString)
	assert.Equal(t, []string{outerEnvVarValue, inert}, test.ExpandStringSlice)
	assert.Equal(t, innerEnvVarValue, test.Inner.ExpandString)
	assert.Equal(t, []string{innerEnvVarValue, inert}, test.Inner.ExpandStringSlice)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgData := "List:\n    File: " + filepath.Join(dir, "list.csv") + "\n    MaxAge: 3\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0644))

	conf, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 3, conf.S.List.MaxAge)
	assert.Equal(t, filepath.Join(dir, "list.csv"), conf.R.List.File)
	// untouched sections keep their defaults
	assert.Equal(t, 60*time.Second, conf.R.Fetch.Timeout)
	assert.Equal(t, "127.0.0.1:8080", conf.S.Server.Address)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := os.Stat(globalConfigPath); err == nil {
		t.Skip("a global config is installed on this machine")
	}

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 7, conf.S.List.MaxAge)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "mdl.csv"), conf.R.List.File)
}

func TestLoadConfigUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".mdl"), 0755))
	require.NoError(t, os.WriteFile(UserConfigPath(), []byte("List:\n    MaxAge: 2\n"), 0644))

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 2, conf.S.List.MaxAge)
}

func TestLoadTestingConfig(t *testing.T) {
	conf, err := LoadTestingConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mdl-test/mdl.csv", conf.R.List.File)
	assert.True(t, conf.S.List.Checksum)
	assert.Equal(t, uint64(0), conf.R.Version.Major)
	assert.Len(t, conf.R.Server.AllowedSubnets, 2)
}
