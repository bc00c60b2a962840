package order

import (
	"strings"
	"time"
)

// Record is one customer order on the board.
type Record struct {
	ID          string      `json:"id,omitempty"`
	Chickens    float64     `json:"chickens"`
	Potatoes    float64     `json:"potatoes"`
	Time        string      `json:"time"` // "HH:MM"
	Name        string      `json:"name"`
	Paid        bool        `json:"paid"`
	Phone       bool        `json:"phone"`
	Delivered   bool        `json:"delivered"`
	Preferences Preferences `json:"preferences"`
	Blacklisted bool        `json:"blacklisted"`
	Deleted     bool        `json:"deleted,omitempty"`
}

// Valid reports whether the record is worth saving.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Name) != "" && r.Chickens+r.Potatoes > 0
}

// SetPaid marks the order as paid in advance. Paid and phone exclude each other.
func (r *Record) SetPaid(v bool) {
	r.Paid = v
	if v {
		r.Phone = false
	}
}

// SetPhone marks the order as paid by phone on delivery.
func (r *Record) SetPhone(v bool) {
	r.Phone = v
	if v {
		r.Paid = false
	}
}

// Minutes is the time of day in minutes since 00:00. ok is false when Time does not parse.
func (r Record) Minutes() (int, bool) {
	return parseClock(r.Time)
}

func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// MarkName appends the blacklist marker to a display name. A blank name stays
// blank so the order still fails validation.
func MarkName(name, marker string, blacklisted bool) string {
	base := UnmarkName(name, marker)
	if !blacklisted || marker == "" || base == "" {
		return base
	}
	return base + " " + marker
}

// UnmarkName strips the blacklist marker from a display name.
func UnmarkName(name, marker string) string {
	name = strings.TrimSpace(name)
	if marker == "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSuffix(name, marker))
}
