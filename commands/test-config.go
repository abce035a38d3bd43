package commands

import (
	"fmt"

	"github.com/activecm/mdl/config"
	"github.com/activecm/mdl/resources"
	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags:  []cli.Flag{configFlag},
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	conf, err := config.LoadConfig(configPath(c))
	if err != nil {
		return cli.NewExitError("Failed to load config: "+err.Error(), -1)
	}

	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "\n%s\n", string(staticConfig))

	// make sure the log destinations can be opened as well
	if _, err := resources.NewResources(conf); err != nil {
		return cli.NewExitError("Failed to initialize logging: "+err.Error(), -1)
	}
	return nil
}
