package util

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

//TimeFormat stores a correctly formatted timestamp
const TimeFormat string = "2006-01-02-T15:04:05-0700"

const day = 24 * time.Hour

// Exists returns true if file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir returns true if argument is a directory
func IsDir(path string) bool {
	file, err := os.Stat(path)
	if err != nil {
		return false
	}
	return file.IsDir()
}

// ExpandHome replaces a leading ~ with the current user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// AgeInDays returns the number of whole days between then and now
func AgeInDays(then, now time.Time) int {
	return int(now.Sub(then) / day)
}
