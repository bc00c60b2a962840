package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrder    = errors.New("order needs a name and at least one product")
	ErrIndexOutOfRange = errors.New("order index out of range")
)

// Ledger is the board of one day. It is also the persisted document.
// Commands never modify the receiver; they return the next state.
type Ledger struct {
	Title            string   `json:"title"`
	Date             string   `json:"date"` // "DD-MM-YYYY - <weekday>"
	Orders           []Record `json:"orders"`
	ChickensSold     float64  `json:"chickensSold"`
	PotatoesSold     float64  `json:"potatoesSold"`
	OvenChickenStock float64  `json:"ovenChickenStock,omitempty"`
	OvenPotatoStock  float64  `json:"ovenPotatoStock,omitempty"`
}

// Entry is a record together with its position in the underlying sequence.
type Entry struct {
	Index int `json:"index"`
	Record
}

func (l Ledger) clone() Ledger {
	out := l
	out.Orders = make([]Record, len(l.Orders))
	for i, r := range l.Orders {
		r.Preferences = slices.Clone(r.Preferences)
		out.Orders[i] = r
	}
	return out
}

func (l Ledger) check(index int) error {
	if index < 0 || index >= len(l.Orders) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(l.Orders))
	}
	return nil
}

// Add appends r and re-sorts. An invalid record leaves the ledger untouched.
func (l Ledger) Add(r Record) (Ledger, error) {
	if !r.Valid() {
		return l, ErrInvalidOrder
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Deleted = false
	next := l.clone()
	next.Orders = append(next.Orders, r)
	next.sort()
	return next, nil
}

// Update replaces the record at index. The stored ID and deleted flag are kept.
func (l Ledger) Update(index int, r Record) (Ledger, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	if !r.Valid() {
		return l, ErrInvalidOrder
	}
	prev := l.Orders[index]
	r.ID = prev.ID
	r.Deleted = prev.Deleted
	next := l.clone()
	next.Orders[index] = r
	next.sort()
	return next, nil
}

// SoftDelete flags the record at index. It stays in the sequence but leaves
// every view and total.
func (l Ledger) SoftDelete(index int) (Ledger, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	next := l.clone()
	next.Orders[index].Deleted = true
	next.sort()
	return next, nil
}

func (l Ledger) ToggleDelivered(index int) (Ledger, error) {
	if err := l.check(index); err != nil {
		return l, err
	}
	next := l.clone()
	next.Orders[index].Delivered = !next.Orders[index].Delivered
	next.sort()
	return next, nil
}

// AdjustOvenStock adds the deltas to the oven counters. Results may go negative.
func (l Ledger) AdjustOvenStock(chickens, potatoes float64) Ledger {
	next := l.clone()
	next.OvenChickenStock += chickens
	next.OvenPotatoStock += potatoes
	return next
}

func (l Ledger) WithOvenStock(chickens, potatoes float64) Ledger {
	next := l.clone()
	next.OvenChickenStock = chickens
	next.OvenPotatoStock = potatoes
	return next
}

// All returns the sequence, without soft-deleted records unless includeDeleted.
func (l Ledger) All(includeDeleted bool) []Record {
	out := make([]Record, 0, len(l.Orders))
	for _, r := range l.Orders {
		if r.Deleted && !includeDeleted {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Entries is All with the underlying index of each record, the index the
// commands take.
func (l Ledger) Entries(includeDeleted bool) []Entry {
	out := make([]Entry, 0, len(l.Orders))
	for i, r := range l.Orders {
		if r.Deleted && !includeDeleted {
			continue
		}
		out = append(out, Entry{Index: i, Record: r})
	}
	return out
}

// IndexOf finds a record by ID; -1 when absent.
func (l Ledger) IndexOf(id string) int {
	return slices.IndexFunc(l.Orders, func(r Record) bool { return r.ID == id })
}

// Sorted returns a copy under the board ordering.
func (l Ledger) Sorted() Ledger {
	next := l.clone()
	next.sort()
	return next
}

// sort puts pending orders before delivered ones, then earlier times first.
// Equal keys keep insertion order. Times that do not parse go last in their group.
func (l *Ledger) sort() {
	slices.SortStableFunc(l.Orders, compare)
}

func compare(a, b Record) int {
	if a.Delivered != b.Delivered {
		if a.Delivered {
			return 1
		}
		return -1
	}
	am, aok := a.Minutes()
	bm, bok := b.Minutes()
	switch {
	case aok && bok:
		return am - bm
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}

// Decode reads a stored ledger. A bare JSON array is the older schema that only
// kept the orders.
func Decode(raw []byte) (Ledger, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var orders []Record
		if err := json.Unmarshal(raw, &orders); err != nil {
			return Ledger{}, err
		}
		return Ledger{Orders: orders}.Sorted(), nil
	}
	var l Ledger
	if err := json.Unmarshal(raw, &l); err != nil {
		return Ledger{}, err
	}
	if l.Orders == nil {
		l.Orders = []Record{}
	}
	return l, nil
}
