// Package store provides the key/value media the journal persists to.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the backing medium. It is resolved once at startup.
type Mode string

const (
	// ModeDurable keeps data in files under the configured path.
	ModeDurable Mode = "durable"
	// ModeVolatile keeps data in process memory; it resets on restart.
	ModeVolatile Mode = "volatile"
	// ModeRedis keeps data in a redis server.
	ModeRedis Mode = "redis"
)

// ErrUnknownMode is returned by ParseMode and Load for unsupported modes.
var ErrUnknownMode = errors.New("store: unknown mode")

// ParseMode converts a configuration string to a Mode.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case "":
		return ModeDurable, nil
	case ModeDurable, ModeVolatile, ModeRedis:
		return m, nil
	case "memory":
		return ModeVolatile, nil
	}
	return "", fmt.Errorf("%w %q (expected durable, volatile or redis)", ErrUnknownMode, raw)
}

// Backend is a text key/value store.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
	// Name describes the medium for diagnostics.
	Name() string
}

// Config is what Load needs to build a Backend.
type Config interface {
	Mode() Mode
	BasePath() string
	RedisURI() string
}

// Load creates the Backend selected by cfg.
func Load(cfg Config) (Backend, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	switch cfg.Mode() {
	case ModeDurable, "":
		return NewDisk(cfg.BasePath())
	case ModeVolatile:
		return NewMemory(), nil
	case ModeRedis:
		return NewRedis(cfg.RedisURI())
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, cfg.Mode())
	}
}
