package commands

import (
	"errors"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/activecm/mdl/resources"
	"github.com/activecm/mdl/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	// below are some prebuilt flags that get used often in various commands
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "Print a report instead of csv",
	}

	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "Print results as a JSON array",
	}

	delimFlag = cli.StringFlag{
		Name:  "delimiter, d",
		Usage: "Use a given `DELIM` as the csv field separator",
		Value: ",",
	}

	inactiveFlag = cli.BoolFlag{
		Name:  "show-inactive, i",
		Usage: "Include entries the list marks as inactive",
	}

	fileFlag = cli.StringFlag{
		Name:  "file, f",
		Usage: "Read the malware domain list from `FILE` instead of the configured path",
	}

	maxAgeFlag = cli.IntFlag{
		Name:  "max-age",
		Usage: "Refuse to use a list last updated `DAYS` or more days ago",
	}

	// lookupFlags are shared by every command which searches the list
	lookupFlags = []cli.Flag{
		configFlag,
		fileFlag,
		maxAgeFlag,
		inactiveFlag,
		humanFlag,
		jsonFlag,
		delimFlag,
	}

	allCommands []cli.Command
)

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}

// configPath returns the config flag given to the command, or failing that
// the one given before the command name
func configPath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return c.GlobalString("config")
}

// initResources loads the configuration named by the config flag
func initResources(c *cli.Context) (*resources.Resources, error) {
	res, err := resources.InitResources(configPath(c))
	if err != nil {
		return nil, cli.NewExitError("Failed to load config: "+err.Error(), -1)
	}
	return res, nil
}

// listFile returns the list path from the file flag or the config
func listFile(c *cli.Context, res *resources.Resources) (string, error) {
	file := res.Config.R.List.File
	if flagFile := c.String("file"); flagFile != "" {
		file = util.ExpandHome(flagFile)
	}
	if util.IsDir(file) {
		return "", cli.NewExitError(file+" is a directory, not a malware domain list file", -1)
	}
	return file, nil
}

// listOptions merges the list config with the command line flags
func listOptions(c *cli.Context, res *resources.Resources) (mdl.Options, error) {
	opts := mdl.DefaultOptions()
	opts.MaxAge = res.Config.S.List.MaxAge
	if c.IsSet("max-age") {
		opts.MaxAge = c.Int("max-age")
		if opts.MaxAge < 1 {
			return opts, cli.NewExitError("--max-age must be at least 1 day", -1)
		}
	}
	opts.ShowInactive = res.Config.S.List.ShowInactive || c.Bool("show-inactive")
	opts.VerifyChecksum = res.Config.S.List.Checksum
	return opts, nil
}

// loadList initializes the resources and loads the malware domain list
// through the freshness check
func loadList(c *cli.Context) (*resources.Resources, *mdl.List, error) {
	res, err := initResources(c)
	if err != nil {
		return nil, nil, err
	}

	file, err := listFile(c, res)
	if err != nil {
		return res, nil, err
	}
	opts, err := listOptions(c, res)
	if err != nil {
		return res, nil, err
	}

	list, err := mdl.NewList(file, opts)
	if err != nil {
		res.Log.WithFields(log.Fields{
			"file": file,
		}).Error(err)

		var staleErr *mdl.StaleDataError
		if errors.As(err, &staleErr) {
			return res, nil, cli.NewExitError(err.Error()+"; run 'mdl fetch' to download a fresh copy", -1)
		}
		return res, nil, cli.NewExitError(err.Error(), -1)
	}

	res.Log.WithFields(log.Fields{
		"file":    file,
		"records": list.Len(),
		"age":     list.LoadedAge(),
	}).Debug("Loaded malware domain list")

	return res, list, nil
}
