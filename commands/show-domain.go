package commands

import (
	"github.com/activecm/mdl/pkg/mdl"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:      "show-domain",
		Usage:     "Print malware domain list entries whose domain contains a string",
		ArgsUsage: "<domain>",
		Flags: append([]cli.Flag{
			cli.StringFlag{
				Name:  "mode, m",
				Usage: "Match the forward domain, the reverse DNS name or `both`",
				Value: "both",
			},
		}, lookupFlags...),
		Action: showDomain,
	}

	bootstrapCommands(command)
}

func showDomain(c *cli.Context) error {
	domain := c.Args().Get(0)
	if domain == "" {
		return cli.NewExitError("Specify a domain", -1)
	}

	mode, err := mdl.ParseDomainMode(c.String("mode"))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	res, list, err := loadList(c)
	if err != nil {
		return err
	}

	records, err := list.SearchDomain(domain, mode)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	res.Log.WithFields(log.Fields{
		"domain":  domain,
		"mode":    mode.String(),
		"results": len(records),
	}).Info("Searched malware domain list by domain")

	if len(records) == 0 {
		return cli.NewExitError("No results were found for "+domain, -1)
	}
	return showRecords(c, records)
}
