package clients

import (
	"errors"
	"fmt"
	"strings"

	"pollos-backend/internal/storage"

	"go.uber.org/zap"
)

// Client is a known customer of one locality.
type Client struct {
	Name        string `json:"name"`
	Blacklisted bool   `json:"blacklisted"`
}

// Directory keeps, per locality, the customers seen so far.
type Directory struct {
	store  storage.Store
	logger *zap.Logger
}

func NewDirectory(store storage.Store, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{store: store, logger: logger}
}

// Key is the store key of a locality's client list.
func Key(locality string) string {
	return Normalize(locality)
}

// List returns the stored clients. A missing or corrupt list is empty.
func (d *Directory) List(locality string) ([]Client, error) {
	var list []Client
	_, err := storage.LoadJSON(d.store, Key(locality), &list)
	if errors.Is(err, storage.ErrMalformed) {
		d.logger.Warn("client list unreadable, starting empty",
			zap.String("locality", locality), zap.Error(err))
		return []Client{}, nil
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Client{}
	}
	return list, nil
}

// Find returns the client stored under the formatted form of name.
func (d *Directory) Find(locality, name string) (Client, bool, error) {
	list, err := d.List(locality)
	if err != nil {
		return Client{}, false, err
	}
	formatted := FormatName(name)
	for _, c := range list {
		if c.Name == formatted {
			return c, true, nil
		}
	}
	return Client{}, false, nil
}

// SuggestionsFor returns the clients whose normalized name starts with the
// normalized partial. An empty partial matches nothing.
func (d *Directory) SuggestionsFor(locality, partial string) ([]Client, error) {
	prefix := Normalize(partial)
	if strings.TrimSpace(prefix) == "" {
		return []Client{}, nil
	}
	list, err := d.List(locality)
	if err != nil {
		return nil, err
	}
	out := []Client{}
	for _, c := range list {
		if strings.HasPrefix(Normalize(c.Name), prefix) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Upsert stores name in title case. An existing entry with the same formatted
// name only has its blacklist flag overwritten.
func (d *Directory) Upsert(locality, name string, blacklisted bool) (Client, error) {
	formatted := FormatName(name)
	if formatted == "" {
		return Client{}, nil
	}
	list, err := d.List(locality)
	if err != nil {
		return Client{}, err
	}

	found := false
	for i := range list {
		if list[i].Name == formatted {
			list[i].Blacklisted = blacklisted
			found = true
			break
		}
	}
	if !found {
		list = append(list, Client{Name: formatted, Blacklisted: blacklisted})
	}

	if err := storage.SaveJSON(d.store, Key(locality), list); err != nil {
		return Client{}, fmt.Errorf("client list %q: %w", locality, err)
	}
	return Client{Name: formatted, Blacklisted: blacklisted}, nil
}
