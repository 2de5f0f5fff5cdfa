package kv

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrBadKey is returned for keys that can't be used as file names.
var ErrBadKey = errors.New("invalid key")

// Dir stores each key as one file in a directory, key.data, holding the SHA-256 checksum of the value
// followed by the value itself. Files are replaced by renaming, so a reader sees either the old or the
// new file, never a mix. A checksum mismatch means the file was damaged outside of Set.
type Dir struct {
	root string
}

// NewDir creates the directory if needed.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, fmt.Errorf("dir backend: empty path")
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("dir backend: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%q: %w", key, ErrBadKey)
	}
	return filepath.Join(d.root, key+".data"), nil
}

// Get implements Storage.
func (d *Dir) Get(key string) ([]byte, error) {
	pathname, err := d.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(pathname)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(b) < sha256.Size {
		return nil, fmt.Errorf("%s: short file: %w", key, ErrCorrupted)
	}
	savedSum, data := b[:sha256.Size], b[sha256.Size:]
	sum := sha256.Sum256(data)
	for i := 0; i < len(sum); i++ {
		if savedSum[i] != sum[i] {
			return nil, fmt.Errorf("%s: checksum difference at byte %d: %w", key, i, ErrCorrupted)
		}
	}
	return data, nil
}

// Set implements Storage. The file is written under a temporary name and renamed into place.
func (d *Dir) Set(key string, value []byte) error {
	pathname, err := d.path(key)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(value)
	b := make([]byte, 0, len(sum)+len(value))
	b = append(b, sum[:]...)
	b = append(b, value...)
	return writeFileAtomic(pathname, b)
}

// Close implements Storage.
func (d *Dir) Close() error {
	return nil
}

func writeFileAtomic(pathname string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(pathname), filepath.Base(pathname)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		removeTemp(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		removeTemp(tmp)
		return err
	}
	if err := os.Rename(tmp, pathname); err != nil {
		removeTemp(tmp)
		return err
	}
	return nil
}

func removeTemp(pathname string) {
	if err := os.Remove(pathname); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithFields(log.Fields{
			"path":  pathname,
			"cause": err,
		}).Warning("Could not remove temporary file")
	}
}
