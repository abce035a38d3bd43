package resources

import (
	"os"

	"github.com/activecm/mdl/config"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config *config.Config
		Log    *log.Logger
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) (*Resources, error) {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		return nil, err
	}
	return NewResources(conf)
}

// NewResources fires up the logging system for an already loaded config
func NewResources(conf *config.Config) (*Resources, error) {
	log := initLogger(&conf.S.Log, os.Stderr)

	if conf.S.Log.LogToFile {
		if err := addFileLogger(log, conf.R.Log.Path); err != nil {
			return nil, err
		}
	}

	//bundle up the system resources
	r := &Resources{
		Config: conf,
		Log:    log,
	}
	return r, nil
}
