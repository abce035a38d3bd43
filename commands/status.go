package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/activecm/mdl/util"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// listStatus describes the list file on disk
type listStatus struct {
	File     string `json:"file"`
	Modified string `json:"modified"`
	Age      int    `json:"age_days"`
	MaxAge   int    `json:"max_age_days"`
	Stale    bool   `json:"stale"`
	Records  int    `json:"records"`
}

func init() {
	command := cli.Command{
		Name:  "status",
		Usage: "Show the age and size of the local malware domain list",
		Flags: []cli.Flag{
			configFlag,
			fileFlag,
			maxAgeFlag,
			humanFlag,
			jsonFlag,
		},
		Action: showStatus,
	}

	bootstrapCommands(command)
}

func showStatus(c *cli.Context) error {
	res, err := initResources(c)
	if err != nil {
		return err
	}

	file, err := listFile(c, res)
	if err != nil {
		return err
	}
	opts, err := listOptions(c, res)
	if err != nil {
		return err
	}

	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return cli.NewExitError("No malware domain list found at "+file+"; run 'mdl fetch' to download one", -1)
		}
		return cli.NewExitError(err.Error(), -1)
	}

	status := listStatus{
		File:     file,
		Modified: info.ModTime().Format(util.TimeFormat),
		Age:      util.AgeInDays(info.ModTime(), time.Now()),
		MaxAge:   opts.MaxAge,
	}
	status.Stale = status.Age >= status.MaxAge

	// stale lists are refused by the loader, so only fresh ones are counted
	if !status.Stale {
		list, err := mdl.NewList(file, opts)
		if err != nil {
			return cli.NewExitError(err.Error(), -1)
		}
		status.Records = list.Len()
	}

	w := c.App.Writer
	if c.Bool("json") {
		return json.NewEncoder(w).Encode(status)
	}

	rows := [][]string{
		{"File", status.File},
		{"Modified", status.Modified},
		{"Age (days)", strconv.Itoa(status.Age)},
		{"Max Age (days)", strconv.Itoa(status.MaxAge)},
		{"State", stateString(status.Stale)},
	}
	if !status.Stale {
		rows = append(rows, []string{"Records", strconv.Itoa(status.Records)})
	}

	if c.Bool("human-readable") {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Property", "Value"})
		table.AppendBulk(rows)
		table.Render()
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s: %s\n", row[0], row[1])
	}
	return nil
}

func stateString(stale bool) string {
	if stale {
		return "stale"
	}
	return "fresh"
}
