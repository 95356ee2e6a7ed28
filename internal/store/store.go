// Package store is the persistence port for the checklist: a key-value
// backend plus JSON encoding, with reads that never fail.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by a Backend when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Backend is a local key-value store holding raw JSON documents.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Adapter wraps a Backend with JSON encode/decode and a key namespace.
type Adapter struct {
	backend Backend
	prefix  string
	logger  *log.Logger
}

// New returns an Adapter writing keys as prefix+key. A nil logger discards.
func New(b Backend, prefix string, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{backend: b, prefix: prefix, logger: logger}
}

// Key returns the backend key for a logical key.
func (a *Adapter) Key(key string) string { return a.prefix + key }

// Close closes the underlying backend.
func (a *Adapter) Close() error { return a.backend.Close() }

// Load reads key and decodes it into a T. A missing key, a decode failure,
// or any backend error yields def; nothing is surfaced to the caller.
func Load[T any](a *Adapter, key string, def T) T {
	k := a.Key(key)
	b, err := a.backend.Get(k)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Debug("read failed, using default", "key", k, "err", err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		a.logger.Debug("decode failed, using default", "key", k, "err", err)
		return def
	}
	return v
}

// Save encodes v as JSON and writes it under key.
func (a *Adapter) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal %s: %w", key, err)
	}
	if err := a.backend.Put(a.Key(key), b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
