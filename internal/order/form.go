package order

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Amount is a quantity as typed by the operator: a JSON number or a string,
// with either "." or "," as decimal separator.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

// Float coerces the amount. Anything unparseable, negative or non-finite is 0.
func (a Amount) Float() float64 {
	s := strings.ReplaceAll(strings.TrimSpace(string(a)), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Form is the raw input of the order modal.
type Form struct {
	Name        string   `json:"name"`
	Chickens    Amount   `json:"chickens"`
	Potatoes    Amount   `json:"potatoes"`
	Time        string   `json:"time"`
	Paid        bool     `json:"paid"`
	Phone       bool     `json:"phone"`
	Delivered   bool     `json:"delivered"`
	Blacklisted bool     `json:"blacklisted"`
	Preferences []string `json:"preferences"`
}

// DefaultTime is the current hour with the minutes set to "00".
func DefaultTime(now time.Time) string {
	return fmt.Sprintf("%02d:00", now.Hour())
}

// Record coerces the form into a record. now supplies the default time.
func (f Form) Record(now time.Time) Record {
	r := Record{
		Name:        strings.TrimSpace(f.Name),
		Chickens:    f.Chickens.Float(),
		Potatoes:    f.Potatoes.Float(),
		Time:        strings.TrimSpace(f.Time),
		Delivered:   f.Delivered,
		Blacklisted: f.Blacklisted,
		Preferences: ParsePreferences(f.Preferences),
	}
	if m, ok := parseClock(r.Time); ok {
		r.Time = fmt.Sprintf("%02d:%02d", m/60, m%60)
	} else {
		r.Time = DefaultTime(now)
	}

	// paid wins when both boxes arrive checked
	r.SetPhone(f.Phone)
	r.SetPaid(f.Paid)
	return r
}
