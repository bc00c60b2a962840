// Package storage is the key-value persistence port every ledger and client
// directory is read from and written to. Values are whole JSON documents.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks a stored value that is not valid JSON for the requested shape.
var ErrMalformed = errors.New("malformed stored value")

type Store interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	// Keys lists every key in ascending order.
	Keys() ([]string, error)
}

// LoadJSON decodes the value under key into v. found is false when the key is
// missing. A value that does not decode returns ErrMalformed and leaves v as the
// caller passed it.
func LoadJSON(s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func SaveJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Set(key, string(b)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
