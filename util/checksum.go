package util

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"
)

// ChecksumSuffix is appended to a file name to form its checksum sidecar
const ChecksumSuffix = ".md5"

// ChecksumPath returns the sidecar file holding the checksum of path
func ChecksumPath(path string) string {
	return path + ChecksumSuffix
}

// MD5Reader computes the MD5 checksum of everything read through it
type MD5Reader struct {
	reader io.Reader
	hash   hash.Hash
}

// NewMD5Reader wraps reader
func NewMD5Reader(reader io.Reader) *MD5Reader {
	return &MD5Reader{reader: reader, hash: md5.New()}
}

func (r *MD5Reader) Read(buf []byte) (int, error) {
	n, err := r.reader.Read(buf)
	if n > 0 {
		r.hash.Write(buf[:n])
	}
	return n, err
}

// Checksum returns the hex encoded MD5 of the data read so far
func (r *MD5Reader) Checksum() string {
	return hex.EncodeToString(r.hash.Sum(nil))
}

// FileMD5 returns the hex encoded MD5 of the file at path
func FileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := NewMD5Reader(f)
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return r.Checksum(), nil
}

// ReadChecksum reads a checksum sidecar written by WriteChecksum
func ReadChecksum(checksumPath string) (string, error) {
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteChecksum stores checksum in the sidecar file of path
func WriteChecksum(path, checksum string) error {
	return os.WriteFile(ChecksumPath(path), []byte(checksum+"\n"), 0644)
}
