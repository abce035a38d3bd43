package mdl

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/activecm/mdl/util"
)

const (
	// DefaultFile is the list file name used when none is configured
	DefaultFile = "mdl.csv"

	// DefaultMaxAge is the default freshness threshold in days
	DefaultMaxAge = 7

	// number of columns in a malware domain list row
	recordFields = 9
)

// column positions in the malware domain list CSV
const (
	colDate = iota
	colDomain
	colIP
	colReverse
	colDescription
	colRegistrant
	colASN
	colInactive
	colCountry
)

type (
	// Options controls how a List is loaded and filtered
	Options struct {
		// ShowInactive includes rows flagged inactive in lookup results
		ShowInactive bool

		// MaxAge is the age in days at which the list file is considered
		// stale. Values <= 0 select DefaultMaxAge.
		MaxAge int

		// VerifyChecksum compares the list file against its .md5 sidecar
		// (written by fetch) when the sidecar exists
		VerifyChecksum bool

		// Now is the clock used for freshness checks. Defaults to time.Now.
		Now func() time.Time
	}

	// List is an in-memory copy of the malware domain list file. The loaded
	// entries never change after NewList returns.
	List struct {
		filename     string
		maxAge       int
		loadedAge    int
		showInactive bool
		now          func() time.Time
		entries      []entry
	}

	entry struct {
		Record
		inactive bool
	}
)

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{MaxAge: DefaultMaxAge}
}

// DefaultFilename returns ~/mdl.csv, or mdl.csv in the working directory
// when the home directory cannot be determined
func DefaultFilename() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(home, DefaultFile)
}

// NewList loads the malware domain list stored in filename. If the file was
// last modified opts.MaxAge or more days ago a *StaleDataError is returned and
// nothing is loaded.
func NewList(filename string, opts Options) (*List, error) {
	l := &List{
		filename:     filename,
		maxAge:       opts.MaxAge,
		showInactive: opts.ShowInactive,
		now:          opts.Now,
	}
	if l.maxAge <= 0 {
		l.maxAge = DefaultMaxAge
	}
	if l.now == nil {
		l.now = time.Now
	}

	age, err := l.Age()
	if err != nil {
		return nil, err
	}
	if age >= l.maxAge {
		return nil, &StaleDataError{Filename: filename, MaxAge: l.maxAge, Age: age}
	}
	l.loadedAge = age

	if opts.VerifyChecksum {
		if err := verifyChecksum(filename); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l.entries, err = readEntries(f)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Age returns the number of whole days since the list file was last modified
func (l *List) Age() (int, error) {
	info, err := os.Stat(l.filename)
	if err != nil {
		return 0, err
	}
	return util.AgeInDays(info.ModTime(), l.now()), nil
}

// LoadedAge returns the age in days of the list file when it was loaded
func (l *List) LoadedAge() int { return l.loadedAge }

// Filename returns the path the list was loaded from
func (l *List) Filename() string { return l.filename }

// MaxAge returns the freshness threshold in days
func (l *List) MaxAge() int { return l.maxAge }

// Len returns the number of loaded rows, inactive ones included
func (l *List) Len() int { return len(l.entries) }

// ShowInactive reports whether inactive rows are returned by lookups
func (l *List) ShowInactive() bool { return l.showInactive }

// SetShowInactive changes whether inactive rows are returned by future
// lookups. It must not be called concurrently with lookups; use View for
// per-request filtering.
func (l *List) SetShowInactive(showInactive bool) {
	l.showInactive = showInactive
}

// View returns a List sharing the loaded rows with l but using its own
// inactive filter
func (l *List) View(showInactive bool) *List {
	v := *l
	v.showInactive = showInactive
	return &v
}

// readEntries parses the malware domain list CSV, keeping file order. Rows
// with fewer than nine fields are dropped. Lines starting with # are data
// like any other.
func readEntries(r io.Reader) ([]entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var entries []entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < recordFields {
			continue
		}
		entries = append(entries, newEntry(row))
	}
	return entries, nil
}

func newEntry(row []string) entry {
	return entry{
		Record: Record{
			Date:        row[colDate],
			Domain:      row[colDomain],
			IP:          row[colIP],
			Reverse:     row[colReverse],
			Description: row[colDescription],
			Registrant:  row[colRegistrant],
			ASN:         row[colASN],
			Inactive:    row[colInactive],
			Country:     row[colCountry],
		},
		inactive: strings.TrimSpace(row[colInactive]) == "1",
	}
}

func verifyChecksum(filename string) error {
	expected, err := util.ReadChecksum(util.ChecksumPath(filename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	actual, err := util.FileMD5(filename)
	if err != nil {
		return err
	}
	if actual != expected {
		return &ChecksumError{Filename: filename, Expected: expected, Actual: actual}
	}
	return nil
}

var _ Repository = (*List)(nil)
