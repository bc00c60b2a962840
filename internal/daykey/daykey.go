// Package daykey scopes a ledger to one calendar day and names the route
// (locality) worked on that weekday.
package daykey

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// KeyLayout is the store key format of a day ledger.
const KeyLayout = "02-01-2006"

var ErrInvalidKey = errors.New("invalid day key, expected DD-MM-YYYY")

// WeekdayNames, Sunday first.
var WeekdayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// Schedule maps each weekday (Sunday=0) to one locality label.
type Schedule [7]string

var DefaultSchedule = Schedule{
	"Villanueva",
	"Alcalá",
	"Torrejón",
	"Meco",
	"Camarma",
	"Daganzo",
	"Fresno",
}

// ScheduleFromLabels builds a schedule from seven labels, Sunday first.
func ScheduleFromLabels(labels []string) (Schedule, error) {
	var s Schedule
	if len(labels) != len(s) {
		return s, fmt.Errorf("schedule needs %d localities, got %d", len(s), len(labels))
	}
	for i, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return s, fmt.Errorf("empty locality for %s", WeekdayNames[i])
		}
		s[i] = l
	}
	return s, nil
}

func (s Schedule) Locality(d time.Weekday) string {
	return s[d]
}

// Merge applies overrides keyed by weekday name (any case, accents optional)
// in ascending key order, so two spellings of one weekday always resolve the
// same way. Unknown names and blank labels are reported and skipped.
func (s Schedule) Merge(overrides map[string]string) (Schedule, []string) {
	var skipped []string
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		place := overrides[name]
		d, ok := ParseWeekday(name)
		place = strings.TrimSpace(place)
		if !ok || place == "" {
			skipped = append(skipped, name)
			continue
		}
		s[d] = place
	}
	return s, skipped
}

// Map returns the schedule keyed by weekday name.
func (s Schedule) Map() map[string]string {
	out := make(map[string]string, len(s))
	for i, place := range s {
		out[WeekdayNames[i]] = place
	}
	return out
}

var asciiWeekdays = [7]string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"}

func ParseWeekday(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("é", "e", "á", "a").Replace(n)
	for i, w := range asciiWeekdays {
		if w == n {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Day describes the ledger scope of one date.
type Day struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	DateLabel string    `json:"date"`
	Weekday   string    `json:"weekday"`
	Locality  string    `json:"locality"`
	Time      time.Time `json:"-"`
}

// Key formats t as DD-MM-YYYY. The locality is not part of the key.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Label is "DD-MM-YYYY - <weekday name>".
func Label(t time.Time) string {
	return Key(t) + " - " + WeekdayNames[t.Weekday()]
}

// Resolver turns dates into Days.
type Resolver struct {
	Schedule Schedule
	Location *time.Location
	Now      func() time.Time
}

func NewResolver(s Schedule, loc *time.Location) Resolver {
	if loc == nil {
		loc = time.Local
	}
	return Resolver{Schedule: s, Location: loc, Now: time.Now}
}

func (r Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now().In(r.location())
	}
	return r.Now().In(r.location())
}

func (r Resolver) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// Resolve describes the day t falls on, in the resolver's location.
func (r Resolver) Resolve(t time.Time) Day {
	t = t.In(r.location())
	locality := r.Schedule.Locality(t.Weekday())
	return Day{
		Key:       Key(t),
		Title:     locality,
		DateLabel: Label(t),
		Weekday:   WeekdayNames[t.Weekday()],
		Locality:  locality,
		Time:      t,
	}
}

func (r Resolver) Today() Day {
	return r.Resolve(r.now())
}

// Parse resolves a DD-MM-YYYY key.
func (r Resolver) Parse(key string) (Day, error) {
	t, err := time.ParseInLocation(KeyLayout, strings.TrimSpace(key), r.location())
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return r.Resolve(t), nil
}

// Clock is the current time in the resolver's location.
func (r Resolver) Clock() time.Time {
	return r.now()
}

// WithSchedule returns a copy using s.
func (r Resolver) WithSchedule(s Schedule) Resolver {
	r.Schedule = s
	return r
}
