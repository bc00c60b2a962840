// Package admin exposes the raw key-value store for inspection and cleanup.
package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pollos-backend/internal/daykey"
	"pollos-backend/internal/storage"
)

type KeyKind string

const (
	KindLedger   KeyKind = "ledger"
	KindSchedule KeyKind = "schedule"
	KindClients  KeyKind = "clients"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyInfo describes one stored key.
type KeyInfo struct {
	Key   string  `json:"key"`
	Kind  KeyKind `json:"kind"`
	Bytes int     `json:"bytes"`
	Valid bool    `json:"valid"`
}

// Entry is a key with its value. Value is set only when Raw is valid JSON.
type Entry struct {
	KeyInfo
	Value json.RawMessage `json:"value,omitempty"`
	Raw   string          `json:"raw"`
}

// Classify guesses what a key holds from its shape. Anything that is neither a
// day key nor the schedule is a client directory.
func Classify(key string) KeyKind {
	if key == "schedule" {
		return KindSchedule
	}
	if _, err := time.Parse(daykey.KeyLayout, key); err == nil {
		return KindLedger
	}
	return KindClients
}

func info(key, raw string) KeyInfo {
	return KeyInfo{Key: key, Kind: Classify(key), Bytes: len(raw), Valid: json.Valid([]byte(raw))}
}

func ListKeys(s storage.Store) ([]KeyInfo, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	out := make([]KeyInfo, 0, len(keys))
	for _, k := range keys {
		raw, ok, err := s.Get(k)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", k, err)
		}
		if !ok {
			continue
		}
		out = append(out, info(k, raw))
	}
	return out, nil
}

func Show(s storage.Store, key string) (Entry, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return Entry{}, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	e := Entry{KeyInfo: info(key, raw), Raw: raw}
	if e.Valid {
		e.Value = json.RawMessage(raw)
	}
	return e, nil
}

// Remove deletes key and returns what it held.
func Remove(s storage.Store, key string) (Entry, error) {
	e, err := Show(s, key)
	if err != nil {
		return Entry{}, err
	}
	if err := s.Remove(key); err != nil {
		return Entry{}, fmt.Errorf("remove %q: %w", key, err)
	}
	return e, nil
}
