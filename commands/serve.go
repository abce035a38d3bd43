package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/activecm/mdl/server"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "serve",
		Usage: "Answer malware domain list lookups over HTTP",
		Flags: []cli.Flag{
			configFlag,
			fileFlag,
			maxAgeFlag,
			inactiveFlag,
			cli.StringFlag{
				Name:  "address, a",
				Usage: "Listen on `ADDRESS` instead of the configured one",
			},
		},
		Action: serve,
	}

	bootstrapCommands(command)
}

func serve(c *cli.Context) error {
	res, list, err := loadList(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(res, list, c.String("address"))
	if err := srv.Start(ctx); err != nil {
		res.Log.WithField("address", srv.Address).Error(err)
		return cli.NewExitError("Lookup server failed: "+err.Error(), -1)
	}
	return nil
}
