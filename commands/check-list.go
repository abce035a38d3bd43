package commands

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/activecm/mdl/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

func init() {
	command := cli.Command{
		Name:      "check-list",
		Usage:     "Look up every IP address and domain listed in a file",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			cli.BoolFlag{
				Name:  "verbose, v",
				Usage: "Show a progress bar while checking",
			},
		}, lookupFlags...),
		Action: checkList,
	}

	bootstrapCommands(command)
}

func checkList(c *cli.Context) error {
	input := c.Args().Get(0)
	if input == "" {
		return cli.NewExitError("Specify a file of IP addresses and domains", -1)
	}

	f, err := os.Open(input)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	queries, err := readQueries(f)
	f.Close()
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	if len(queries) == 0 {
		return cli.NewExitError("No results were found for the entries in "+input, -1)
	}

	res, list, err := loadList(c)
	if err != nil {
		return err
	}

	var p *mpb.Progress
	var bar *mpb.Bar
	if c.Bool("verbose") {
		p = mpb.New(mpb.WithWidth(20), mpb.WithOutput(os.Stderr))
		bar = p.AddBar(int64(len(queries)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Checking:", decor.WC{W: 20, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	var records []mdl.Record
	hits := 0
	for _, query := range queries {
		start := time.Now()
		found := lookupQuery(list, query)
		if len(found) > 0 {
			hits++
		}
		records = append(records, found...)
		if bar != nil {
			bar.IncrBy(1, time.Since(start))
		}
	}
	if p != nil {
		p.Wait()
	}

	res.Log.WithFields(log.Fields{
		"file":    input,
		"queries": len(queries),
		"hits":    hits,
	}).Info("Checked file against malware domain list")

	if len(records) == 0 {
		return cli.NewExitError("No results were found for the entries in "+input, -1)
	}
	return showRecords(c, records)
}

// readQueries returns the trimmed lines of r, skipping blank lines and
// lines starting with #
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}

// lookupQuery searches IP addresses by exact match and anything else as a
// domain substring in both the forward and reverse columns
func lookupQuery(list mdl.Repository, query string) []mdl.Record {
	if util.IsIP(query) {
		if record, ok := list.SearchIP(query); ok {
			return []mdl.Record{record}
		}
		return nil
	}
	records, _ := list.SearchDomain(query, mdl.DomainBoth)
	return records
}
