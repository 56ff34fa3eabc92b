package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is a durable Backend keeping one file per key under a base path.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (creating if needed) a file store rooted at basePath.
func NewDisk(basePath string) (*Disk, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: flatTransform,
			// No read cache: other haeuso processes write the same files.
			CacheSizeMax: 0,
			FilePerm:     0o600,
		}),
		basePath: basePath,
	}, nil
}

func flatTransform(string) []string {
	return []string{}
}

func (s *Disk) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Disk) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Disk) Name() string {
	return "diskv:" + s.basePath
}

// BasePath is the directory holding the data files.
func (s *Disk) BasePath() string {
	return s.basePath
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
