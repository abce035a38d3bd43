package config

import (
	"net"
	"path/filepath"
	"time"

	"github.com/activecm/mdl/util"
	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		List    ListRunningCfg
		Fetch   FetchRunningCfg
		Log     LogRunningCfg
		Server  ServerRunningCfg
		Version semver.Version
	}

	//ListRunningCfg holds the resolved list file location
	ListRunningCfg struct {
		File string
	}

	//FetchRunningCfg holds the parsed download settings
	FetchRunningCfg struct {
		Timeout time.Duration
	}

	//LogRunningCfg holds the resolved log directory
	LogRunningCfg struct {
		Path string
	}

	//ServerRunningCfg holds the parsed lookup server settings
	ServerRunningCfg struct {
		ReadTimeout    time.Duration
		AllowedSubnets []*net.IPNet
	}
)

// initRunningConfig uses data in the static config initialize the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	var err error

	running.List.File, err = filepath.Abs(util.ExpandHome(static.List.File))
	if err != nil {
		return err
	}

	running.Log.Path = util.ExpandHome(static.Log.LogPath)

	running.Fetch.Timeout = time.Duration(static.Fetch.Timeout) * time.Second
	running.Server.ReadTimeout = time.Duration(static.Server.ReadTimeout) * time.Second

	if _, _, err = net.SplitHostPort(static.Server.Address); err != nil {
		return err
	}

	running.Server.AllowedSubnets, err = util.ParseSubnets(static.Server.AllowedSubnets)
	if err != nil {
		return err
	}

	running.Version, err = semver.ParseTolerant(static.Version)
	return err
}
