package order

import "slices"

// Preference is a cooking or packaging tag attached to an order.
type Preference string

const (
	PrefMuchSalt    Preference = "(MS)"
	PrefNoSalt      Preference = "(S/S)"
	PrefWellDone    Preference = "(BH)"
	PrefLightlyDone Preference = "(PH)"
	// Eye marks an order to keep an eye on. It excludes nothing.
	PrefEye Preference = "(👁)"
)

// Vocabulary in display order.
var Vocabulary = []Preference{PrefMuchSalt, PrefNoSalt, PrefWellDone, PrefLightlyDone, PrefEye}

var partner = map[Preference]Preference{
	PrefMuchSalt:    PrefNoSalt,
	PrefNoSalt:      PrefMuchSalt,
	PrefWellDone:    PrefLightlyDone,
	PrefLightlyDone: PrefWellDone,
}

func (p Preference) Known() bool {
	return slices.Contains(Vocabulary, p)
}

// Excludes returns the tag that cannot coexist with p, if any.
func (p Preference) Excludes() (Preference, bool) {
	other, ok := partner[p]
	return other, ok
}

// Preferences is a set of tags kept in selection order.
type Preferences []Preference

func (ps Preferences) Has(p Preference) bool {
	return slices.Contains(ps, p)
}

// Select adds p and drops its exclusion partner. Unknown tags are ignored.
func (ps Preferences) Select(p Preference) Preferences {
	if !p.Known() || ps.Has(p) {
		return ps
	}
	out := make(Preferences, 0, len(ps)+1)
	other, exclusive := p.Excludes()
	for _, cur := range ps {
		if exclusive && cur == other {
			continue
		}
		out = append(out, cur)
	}
	return append(out, p)
}

func (ps Preferences) Remove(p Preference) Preferences {
	out := make(Preferences, 0, len(ps))
	for _, cur := range ps {
		if cur != p {
			out = append(out, cur)
		}
	}
	return out
}

// Toggle removes p when present, otherwise selects it.
func (ps Preferences) Toggle(p Preference) Preferences {
	if ps.Has(p) {
		return ps.Remove(p)
	}
	return ps.Select(p)
}

// ParsePreferences keeps the known tags of raw, applying them in order so a
// later tag wins over an earlier exclusion partner.
func ParsePreferences(raw []string) Preferences {
	out := Preferences{}
	for _, s := range raw {
		out = out.Select(Preference(s))
	}
	return out
}
