// Package totals derives the board figures from a ledger snapshot. Nothing here
// mutates its input.
package totals

import (
	"math"

	"pollos-backend/internal/order"
)

// Quantities is an amount per product.
type Quantities struct {
	Chickens float64 `json:"chickens"`
	Potatoes float64 `json:"potatoes"`
}

func (q Quantities) Sub(o Quantities) Quantities {
	return Quantities{Chickens: q.Chickens - o.Chickens, Potatoes: q.Potatoes - o.Potatoes}
}

// Ordered sums every non-deleted order.
func Ordered(orders []order.Record) Quantities {
	var q Quantities
	for _, r := range orders {
		if r.Deleted {
			continue
		}
		q.Chickens += r.Chickens
		q.Potatoes += r.Potatoes
	}
	return q
}

// Delivered sums the non-deleted orders already handed over.
func Delivered(orders []order.Record) Quantities {
	var q Quantities
	for _, r := range orders {
		if r.Deleted || !r.Delivered {
			continue
		}
		q.Chickens += r.Chickens
		q.Potatoes += r.Potatoes
	}
	return q
}

// Pending is what is still to be delivered.
func Pending(orders []order.Record) Quantities {
	return Ordered(orders).Sub(Delivered(orders))
}

// Surplus is oven stock minus ordered. Negative means a shortage.
func Surplus(ovenStock, ordered float64) float64 {
	return ovenStock - ordered
}

// PriceTable holds the unit prices of whole and half portions.
type PriceTable struct {
	FullChicken float64 `json:"fullChicken"`
	HalfChicken float64 `json:"halfChicken"`
	FullPotato  float64 `json:"fullPotato"`
	HalfPotato  float64 `json:"halfPotato"`
}

// Price of one order. Quantities are expected in steps of 0.5; any fractional
// part is charged as one half portion.
func Price(r order.Record, pt PriceTable) float64 {
	return portionPrice(r.Chickens, pt.FullChicken, pt.HalfChicken) +
		portionPrice(r.Potatoes, pt.FullPotato, pt.HalfPotato)
}

func portionPrice(qty, full, half float64) float64 {
	if qty <= 0 {
		return 0
	}
	whole := math.Floor(qty)
	p := whole * full
	if qty-whole > 0 {
		p += half
	}
	return p
}

// Summary is every figure the board shows for a day.
type Summary struct {
	Ordered   Quantities `json:"ordered"`
	Delivered Quantities `json:"delivered"`
	Pending   Quantities `json:"pending"`
	Oven      Quantities `json:"oven"`
	Surplus   Quantities `json:"surplus"`
	Revenue   float64    `json:"revenue"`
	Collected float64    `json:"collected"`
	Orders    int        `json:"orders"`
}

func Summarize(l order.Ledger, pt PriceTable) Summary {
	s := Summary{
		Ordered:   Ordered(l.Orders),
		Delivered: Delivered(l.Orders),
		Oven:      Quantities{Chickens: l.OvenChickenStock, Potatoes: l.OvenPotatoStock},
	}
	s.Pending = s.Ordered.Sub(s.Delivered)
	s.Surplus = Quantities{
		Chickens: Surplus(s.Oven.Chickens, s.Ordered.Chickens),
		Potatoes: Surplus(s.Oven.Potatoes, s.Ordered.Potatoes),
	}
	for _, r := range l.Orders {
		if r.Deleted {
			continue
		}
		s.Orders++
		p := Price(r, pt)
		s.Revenue += p
		if r.Delivered {
			s.Collected += p
		}
	}
	return s
}
