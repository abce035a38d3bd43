package config

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/activecm/mdl/util"
)

//Version is filled at compile time with the git version of mdl
var Version = "v0.0.0-dev"

//ExactVersion is filled at compile time with the git commit of mdl
var ExactVersion = "undefined"

// globalConfigPath is read when no user config exists
const globalConfigPath = "/etc/mdl/config.yaml"

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// UserConfigPath returns ~/.mdl/config.yaml
func UserConfigPath() string {
	return util.ExpandHome(filepath.Join("~", ".mdl", "config.yaml"))
}

// LoadConfig retrieves a configuration in order of precedence: the given
// path, the user's config, the global config. An explicitly given path must
// exist. When neither default file exists the built in defaults are used.
func LoadConfig(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		return loadConfigFile(cfgPath)
	}

	for _, candidate := range []string{UserConfigPath(), globalConfigPath} {
		exists, err := util.Exists(candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			return loadConfigFile(candidate)
		}
	}

	return newConfig(nil)
}

// loadConfigFile attempts to parse a config file
func loadConfigFile(cfgPath string) (*Config, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	return newConfig(data)
}

// newConfig builds a Config from the yaml in data layered over the defaults
func newConfig(data []byte) (*Config, error) {
	config := new(Config)

	if err := loadStaticConfig(data, &config.S); err != nil {
		return nil, err
	}

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}
	return config, nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		if !f.CanSet() {
			continue
		}
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
