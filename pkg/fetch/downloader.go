// Package fetch downloads the malware domain list CSV
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/activecm/mdl/util"
)

// DefaultURL is the malware domain list full CSV export
const DefaultURL = "http://www.malwaredomainlist.com/mdlcsv.php"

const importPath = "github.com/activecm/mdl"

type (
	// Downloader fetches a copy of the malware domain list
	Downloader struct {
		url      string
		client   *http.Client
		checksum bool
	}

	// Option customizes a Downloader
	Option func(*Downloader)

	// StatusError is returned when the server answers with anything but 200
	StatusError struct {
		URL    string
		Code   int
		Status string
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.URL, e.Status)
}

// WithClient sets the HTTP client used for downloads
func WithClient(client *http.Client) Option {
	return func(d *Downloader) {
		d.client = client
	}
}

// WithChecksum controls whether an MD5 sidecar is written next to the list
func WithChecksum(enabled bool) Option {
	return func(d *Downloader) {
		d.checksum = enabled
	}
}

// NewDownloader creates a Downloader for url. An empty url selects DefaultURL.
func NewDownloader(url string, opts ...Option) *Downloader {
	if url == "" {
		url = DefaultURL
	}
	d := &Downloader{
		url:    url,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// URL returns the address the list is downloaded from
func (d *Downloader) URL() string {
	return d.url
}

// Fetch downloads the list and writes the response body verbatim to
// destination, replacing any existing file. The destination is not touched
// unless the server answers 200 OK. Errors are returned as they occur;
// nothing is retried.
func (d *Downloader) Fetch(ctx context.Context, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent())

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: d.url, Code: resp.StatusCode, Status: resp.Status}
	}

	handle, err := os.Create(destination)
	if err != nil {
		return err
	}

	body := util.NewMD5Reader(resp.Body)
	if _, err := io.Copy(handle, body); err != nil {
		handle.Close()
		return err
	}
	if err := handle.Close(); err != nil {
		return err
	}

	if d.checksum {
		return util.WriteChecksum(destination, body.Checksum())
	}

	// a sidecar left by an earlier download no longer describes the file
	err = os.Remove(util.ChecksumPath(destination))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// userAgent identifies this client to the list operator
func userAgent() string {
	version := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Path == importPath && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	return "mdl/" + version
}
