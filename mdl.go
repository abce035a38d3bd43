package main

import (
	"os"

	"github.com/activecm/mdl/commands"
	"github.com/activecm/mdl/config"
	"github.com/urfave/cli"
)

// Entry point of mdl
func main() {
	app := cli.NewApp()
	app.Name = "mdl"
	app.Usage = "Look up IP addresses and domains in the malware domain list"

	// Change the version string with updates so that a quick help command will
	// let the testers know what version of mdl they're on
	app.Version = config.Version
	cli.VersionPrinter = commands.GetVersionPrinter()

	app.Flags = commands.GlobalFlags()

	// Define commands used with this application
	app.Commands = commands.Commands()

	app.Run(os.Args)
}
