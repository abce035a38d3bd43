package commands

import (
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/activecm/mdl/pkg/mdl"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// showRecords writes records in the format selected by the output flags
func showRecords(c *cli.Context, records []mdl.Record) error {
	w := c.App.Writer
	switch {
	case c.Bool("json"):
		return showRecordsJSON(w, records)
	case c.Bool("human-readable"):
		return showRecordsHuman(w, records)
	}
	return showRecordsCSV(w, records, c.String("delimiter"))
}

func showRecordsCSV(w io.Writer, records []mdl.Record, delim string) error {
	csvWriter := csv.NewWriter(w)
	if delim != "" {
		comma, _ := utf8.DecodeRuneInString(delim)
		csvWriter.Comma = comma
	}
	if err := csvWriter.Write(mdl.Headers); err != nil {
		return err
	}
	for _, record := range records {
		if err := csvWriter.Write(record.Fields()); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func showRecordsHuman(w io.Writer, records []mdl.Record) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(mdl.Headers)
	for _, record := range records {
		table.Append(record.Fields())
	}
	table.Render()
	return nil
}

func showRecordsJSON(w io.Writer, records []mdl.Record) error {
	if records == nil {
		records = []mdl.Record{}
	}
	return json.NewEncoder(w).Encode(records)
}
