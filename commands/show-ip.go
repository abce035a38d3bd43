package commands

import (
	"strings"

	"github.com/activecm/mdl/pkg/mdl"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:      "show-ip",
		Usage:     "Print the malware domain list entry for an IP address",
		ArgsUsage: "<address>",
		Flags:     lookupFlags,
		Action:    showIP,
	}

	bootstrapCommands(command)
}

func showIP(c *cli.Context) error {
	addr := strings.TrimSpace(c.Args().Get(0))
	if addr == "" {
		return cli.NewExitError("Specify an IP address", -1)
	}

	res, list, err := loadList(c)
	if err != nil {
		return err
	}

	record, found := list.SearchIP(addr)
	res.Log.WithFields(log.Fields{
		"ip":    addr,
		"found": found,
	}).Info("Searched malware domain list by IP")

	if !found {
		return cli.NewExitError("No results were found for "+addr, -1)
	}
	return showRecords(c, []mdl.Record{record})
}
