package mdl

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/activecm/mdl/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC)

const testCSV = `"2020-01-01","evil.com","1.2.3.4","dns.evil.com","trojan","John Doe","AS123","0","US"
"2020-01-02","evil.example.com","5.6.7.8/24","host.example.net","phishing","Jane Roe","AS456","0","DE"
"2020-01-03","benign.com","9.9.9.9:8080","evil-reverse.org","exploit kit","-","AS789","0","NL"
"2020-01-04","old-evil.net","10.0.0.1","old.evil.net","dead","-","AS1","1","RU"

"2020-01-05","short.com","1.1.1.1"
"2020-01-06","comma, in.com","2.2.2.2","rev.com","desc, with comma","-","AS2","0","FR"
`

// writeList writes contents to a temporary list file last modified age ago
func writeList(t *testing.T, contents string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	mtime := testNow.Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return testNow }
	return opts
}

func loadTestList(t *testing.T) *List {
	t.Helper()
	l, err := NewList(writeList(t, testCSV, time.Hour), testOptions())
	require.NoError(t, err)
	return l
}

func TestNewListLoadsRows(t *testing.T) {
	l := loadTestList(t)

	// the empty line and the three column row are dropped
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, DefaultMaxAge, l.MaxAge())
	assert.Equal(t, 0, l.LoadedAge())
	assert.False(t, l.ShowInactive())
}

func TestNewListFreshness(t *testing.T) {
	testCases := []struct {
		age    time.Duration
		maxAge int
		stale  bool
		msg    string
	}{
		{0, 7, false, "brand new file"},
		{6*24*time.Hour + 23*time.Hour, 7, false, "six and a bit days"},
		{7 * 24 * time.Hour, 7, true, "exactly max age"},
		{30 * 24 * time.Hour, 7, true, "well past max age"},
		{24 * time.Hour, 1, true, "one day with max age one"},
		{23 * time.Hour, 1, false, "under a day with max age one"},
		{7 * 24 * time.Hour, 0, true, "zero max age falls back to the default"},
	}

	for _, testCase := range testCases {
		path := writeList(t, testCSV, testCase.age)
		opts := testOptions()
		opts.MaxAge = testCase.maxAge

		l, err := NewList(path, opts)
		if !testCase.stale {
			assert.NoError(t, err, testCase.msg)
			assert.NotNil(t, l, testCase.msg)
			continue
		}

		assert.Nil(t, l, testCase.msg)
		var staleErr *StaleDataError
		if assert.True(t, errors.As(err, &staleErr), testCase.msg) {
			assert.Equal(t, path, staleErr.Filename, testCase.msg)
			assert.Contains(t, staleErr.Error(), path, testCase.msg)
		}
	}
}

func TestStaleDataErrorMessage(t *testing.T) {
	err := &StaleDataError{Filename: "/tmp/mdl.csv", MaxAge: 7, Age: 9}
	assert.Equal(t,
		"the malware domain list file /tmp/mdl.csv is older than the threshold of 7 days",
		err.Error())
}

func TestNewListMissingFile(t *testing.T) {
	_, err := NewList(filepath.Join(t.TempDir(), "missing.csv"), testOptions())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestAgeTracksModificationTime(t *testing.T) {
	path := writeList(t, testCSV, 2*24*time.Hour)
	l, err := NewList(path, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, l.LoadedAge())

	mtime := testNow.Add(-5 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	age, err := l.Age()
	require.NoError(t, err)
	assert.Equal(t, 5, age)
	assert.Equal(t, 2, l.LoadedAge())
}

func TestNewListVerifyChecksum(t *testing.T) {
	path := writeList(t, testCSV, time.Hour)
	opts := testOptions()
	opts.VerifyChecksum = true

	// no sidecar: nothing to verify against
	_, err := NewList(path, opts)
	assert.NoError(t, err)

	sum, err := util.FileMD5(path)
	require.NoError(t, err)
	require.NoError(t, util.WriteChecksum(path, sum))
	_, err = NewList(path, opts)
	assert.NoError(t, err)

	require.NoError(t, util.WriteChecksum(path, strings.Repeat("0", 32)))
	_, err = NewList(path, opts)
	var checksumErr *ChecksumError
	if assert.True(t, errors.As(err, &checksumErr)) {
		assert.Equal(t, sum, checksumErr.Actual)
	}

	opts.VerifyChecksum = false
	_, err = NewList(path, opts)
	assert.NoError(t, err)
}

func TestQuotedFields(t *testing.T) {
	l := loadTestList(t)
	rec, ok := l.SearchIP("2.2.2.2")
	require.True(t, ok)
	assert.Equal(t, "comma, in.com", rec.Domain)
	assert.Equal(t, "desc, with comma", rec.Description)
}

func TestViewSharesRows(t *testing.T) {
	l := loadTestList(t)
	v := l.View(true)

	assert.Equal(t, l.Len(), v.Len())
	assert.True(t, v.ShowInactive())
	assert.False(t, l.ShowInactive())

	_, ok := v.SearchIP("10.0.0.1")
	assert.True(t, ok)
	_, ok = l.SearchIP("10.0.0.1")
	assert.False(t, ok)
}

func TestDefaultFilename(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "mdl.csv"), DefaultFilename())
}

func TestHashPrefixedRowsKept(t *testing.T) {
	csv := `#2020-01-01,hash.com,7.7.7.7,rev.hash.com,-,-,AS7,0,US
# a note with too few fields
`
	l, err := NewList(writeList(t, csv, time.Hour), testOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	rec, ok := l.SearchIP("7.7.7.7")
	require.True(t, ok)
	assert.Equal(t, "#2020-01-01", rec.Date)
}
