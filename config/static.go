package config

import (
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		List         ListStaticCfg    `yaml:"List"`
		Fetch        FetchStaticCfg   `yaml:"Fetch"`
		Log          LogStaticCfg     `yaml:"LogConfig"`
		Server       ServerStaticCfg  `yaml:"Server"`
		UserConfig   UserCfgStaticCfg `yaml:"UserConfig"`
		Version      string           `yaml:"-"`
		ExactVersion string           `yaml:"-"`
	}

	//ListStaticCfg controls where the malware domain list lives and how it is filtered
	ListStaticCfg struct {
		File         string `yaml:"File" default:"~/mdl.csv" validate:"required"`
		URL          string `yaml:"URL" default:"http://www.malwaredomainlist.com/mdlcsv.php" validate:"required,url"`
		MaxAge       int    `yaml:"MaxAge" default:"7" validate:"min=1"`
		ShowInactive bool   `yaml:"ShowInactive"`
		Checksum     bool   `yaml:"Checksum"`
	}

	//FetchStaticCfg controls the list download
	FetchStaticCfg struct {
		// Timeout in seconds, 0 disables it
		Timeout int `yaml:"Timeout" default:"60" validate:"min=0"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"1" validate:"min=0,max=3"`
		LogPath   string `yaml:"LogPath" default:"~/.mdl/logs"`
		LogToFile bool   `yaml:"LogToFile"`
	}

	//ServerStaticCfg controls the lookup server
	ServerStaticCfg struct {
		Address string `yaml:"Address" default:"127.0.0.1:8080" validate:"required"`
		// ReadTimeout in seconds, 0 disables it
		ReadTimeout    int      `yaml:"ReadTimeout" default:"10" validate:"min=0"`
		AllowedSubnets []string `yaml:"AllowedSubnets" default:"[\"127.0.0.0/8\",\"::1/128\"]"`
	}

	//UserCfgStaticCfg holds user preferences
	UserCfgStaticCfg struct {
		// UpdateCheckFrequency in days, 0 disables the check
		UpdateCheckFrequency int    `yaml:"UpdateCheckFrequency" default:"14" validate:"min=0"`
		Repository           string `yaml:"Repository" default:"activecm/mdl" validate:"required,contains=/"`
	}
)

// loadStaticConfig fills config with the defaults, then the yaml in data
func loadStaticConfig(data []byte, config *StaticCfg) error {
	if err := defaults.Set(config); err != nil {
		return err
	}
	return parseStaticConfig(data, config)
}

// parseStaticConfig deserializes a yaml config on top of config, expands
// environment variables and validates the result
func parseStaticConfig(data []byte, config *StaticCfg) error {
	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	// clean all filepaths
	if config.List.File != "" {
		config.List.File = filepath.Clean(config.List.File)
	}
	if config.Log.LogPath != "" {
		config.Log.LogPath = filepath.Clean(config.Log.LogPath)
	}

	// grab the version constants set by the build process
	config.Version = Version
	config.ExactVersion = ExactVersion

	return validator.New().Struct(config)
}
