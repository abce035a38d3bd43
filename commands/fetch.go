package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/activecm/mdl/pkg/fetch"
	"github.com/activecm/mdl/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "fetch",
		Usage: "Download a fresh copy of the malware domain list",
		Flags: []cli.Flag{
			configFlag,
			cli.StringFlag{
				Name:  "output, o",
				Usage: "Write the list to `FILE` instead of the configured path",
			},
			cli.StringFlag{
				Name:  "url, u",
				Usage: "Download the list from `URL` instead of the configured source",
			},
		},
		Action: fetchList,
	}

	bootstrapCommands(command)
}

func fetchList(c *cli.Context) error {
	res, err := initResources(c)
	if err != nil {
		return err
	}

	destination := res.Config.R.List.File
	if output := c.String("output"); output != "" {
		destination = util.ExpandHome(output)
	}
	if util.IsDir(destination) {
		return cli.NewExitError(destination+" is a directory, not a malware domain list file", -1)
	}

	url := res.Config.S.List.URL
	if c.String("url") != "" {
		url = c.String("url")
	}

	downloader := fetch.NewDownloader(url,
		fetch.WithClient(&http.Client{Timeout: res.Config.R.Fetch.Timeout}),
		fetch.WithChecksum(res.Config.S.List.Checksum),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := res.Log.WithFields(log.Fields{
		"url":  downloader.URL(),
		"file": destination,
	})
	logger.Info("Downloading malware domain list")

	if err := downloader.Fetch(ctx, destination); err != nil {
		logger.Error(err)
		return cli.NewExitError("Failed to download the malware domain list: "+err.Error(), -1)
	}

	logger.Info("Finished downloading malware domain list")
	fmt.Fprintf(c.App.Writer, "Saved the malware domain list to %s\n", destination)
	return nil
}
