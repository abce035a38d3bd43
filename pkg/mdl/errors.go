package mdl

import "fmt"

// StaleDataError is returned by NewList when the list file is at least
// MaxAge days old. No records are loaded in that case.
type StaleDataError struct {
	Filename string
	MaxAge   int
	Age      int
}

func (e *StaleDataError) Error() string {
	return fmt.Sprintf(
		"the malware domain list file %s is older than the threshold of %d days",
		e.Filename, e.MaxAge,
	)
}

// UnrecognizedModeError is returned when a domain search is asked for a mode
// other than DomainBoth, DomainForward or DomainReverse
type UnrecognizedModeError struct {
	Mode  DomainMode
	Value string // set when the mode came from ParseDomainMode
}

func (e *UnrecognizedModeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("unrecognized domain search mode %q", e.Value)
	}
	return fmt.Sprintf("unrecognized domain search mode %d", int(e.Mode))
}

// ChecksumError is returned when checksum verification is enabled and the
// list file does not match its .md5 sidecar
type ChecksumError struct {
	Filename string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s",
		e.Filename, e.Expected, e.Actual)
}
