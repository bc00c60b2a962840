// Package board runs the operator's commands against the day ledgers: load by
// day key, apply, re-sort, persist the whole document, keep the client
// directory in step and tell subscribers.
package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"pollos-backend/internal/audit"
	"pollos-backend/internal/clients"
	"pollos-backend/internal/daykey"
	"pollos-backend/internal/models"
	"pollos-backend/internal/order"
	"pollos-backend/internal/storage"
	"pollos-backend/internal/totals"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleKey holds the weekday → locality overrides.
const ScheduleKey = "schedule"

// Oven counter steps offered to the operator.
var (
	ChickenSteps     = []float64{0.5, 1, 5, 6, 12}
	PotatoPlusSteps  = []float64{0.5, 1, 10}
	PotatoMinusSteps = []float64{10, 1, 0.5}
)

// Event is published after every persisted change.
type Event struct {
	Day    daykey.Day
	Action models.AuditAction
	// Index of the touched order after re-sorting, -1 for ledger-level changes.
	Index  int
	Before *order.Record
	After  *order.Record
	Ledger order.Ledger
}

type Options struct {
	Store           storage.Store
	Resolver        daykey.Resolver
	Prices          totals.PriceTable
	BlacklistMarker string
	Audit           *audit.Service
	Logger          *zap.Logger
}

type Service struct {
	store    storage.Store
	clients  *clients.Directory
	resolver daykey.Resolver
	prices   totals.PriceTable
	marker   string
	audit    *audit.Service
	logger   *zap.Logger

	// one writer at a time: every command is a read-modify-write of a whole day
	mu          sync.Mutex
	subscribers []func(Event)
}

func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	auditSvc := opts.Audit
	if auditSvc == nil {
		auditSvc = audit.NewService(nil, logger)
	}
	return &Service{
		store:    opts.Store,
		clients:  clients.NewDirectory(opts.Store, logger),
		resolver: opts.Resolver,
		prices:   opts.Prices,
		marker:   opts.BlacklistMarker,
		audit:    auditSvc,
		logger:   logger,
	}, nil
}

// Subscribe registers fn for every later change. Callbacks run synchronously
// after the change is persisted and the ledger lock is released, so they may
// call back into the service.
func (s *Service) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Service) Prices() totals.PriceTable { return s.prices }

func (s *Service) Clients() *clients.Directory { return s.clients }

// Schedule is the configured table with the stored overrides applied.
func (s *Service) Schedule() (daykey.Schedule, error) {
	var overrides map[string]string
	_, err := storage.LoadJSON(s.store, ScheduleKey, &overrides)
	if errors.Is(err, storage.ErrMalformed) {
		s.logger.Warn("schedule overrides unreadable, using defaults", zap.Error(err))
		return s.resolver.Schedule, nil
	}
	if err != nil {
		return daykey.Schedule{}, err
	}
	merged, skipped := s.resolver.Schedule.Merge(overrides)
	if len(skipped) > 0 {
		s.logger.Warn("ignoring schedule overrides", zap.Strings("weekdays", skipped))
	}
	return merged, nil
}

// SetSchedule stores overrides keyed by weekday name. Unknown weekdays, a
// weekday named twice (e.g. "Miércoles" and "miercoles") and blank localities
// are rejected before anything is written.
func (s *Service) SetSchedule(overrides map[string]string) (daykey.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := map[string]string{}
	if _, err := storage.LoadJSON(s.store, ScheduleKey, &stored); err != nil && !errors.Is(err, storage.ErrMalformed) {
		return daykey.Schedule{}, err
	}
	if stored == nil {
		stored = map[string]string{}
	}

	var bad []string
	seen := make(map[time.Weekday]bool, len(overrides))
	for name, place := range overrides {
		d, ok := daykey.ParseWeekday(name)
		place = strings.TrimSpace(place)
		if !ok || place == "" || seen[d] {
			bad = append(bad, name)
			continue
		}
		seen[d] = true
		stored[daykey.WeekdayNames[d]] = place
	}
	if len(bad) > 0 {
		slices.Sort(bad)
		return daykey.Schedule{}, fmt.Errorf("%w: %v", ErrBadSchedule, bad)
	}

	if err := storage.SaveJSON(s.store, ScheduleKey, stored); err != nil {
		return daykey.Schedule{}, err
	}
	merged, _ := s.resolver.Schedule.Merge(stored)
	return merged, nil
}

var ErrBadSchedule = errors.New("unknown or repeated weekday, or empty locality")

func (s *Service) resolverNow() (daykey.Resolver, error) {
	sched, err := s.Schedule()
	if err != nil {
		return daykey.Resolver{}, err
	}
	return s.resolver.WithSchedule(sched), nil
}

func (s *Service) Today() (daykey.Day, error) {
	r, err := s.resolverNow()
	if err != nil {
		return daykey.Day{}, err
	}
	return r.Today(), nil
}

// Day resolves a DD-MM-YYYY key.
func (s *Service) Day(key string) (daykey.Day, error) {
	r, err := s.resolverNow()
	if err != nil {
		return daykey.Day{}, err
	}
	return r.Parse(key)
}

// Ledger loads the day stored under key. Missing or corrupt data is an empty ledger.
func (s *Service) Ledger(key string) (daykey.Day, order.Ledger, error) {
	day, err := s.Day(key)
	if err != nil {
		return daykey.Day{}, order.Ledger{}, err
	}
	l, err := s.load(day)
	return day, l, err
}

func (s *Service) load(day daykey.Day) (order.Ledger, error) {
	empty := order.Ledger{Title: day.Title, Date: day.DateLabel, Orders: []order.Record{}}

	raw, ok, err := s.store.Get(day.Key)
	if err != nil {
		return order.Ledger{}, fmt.Errorf("read ledger %s: %w", day.Key, err)
	}
	if !ok {
		return empty, nil
	}
	l, err := order.Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("ledger unreadable, starting empty", zap.String("key", day.Key), zap.Error(err))
		return empty, nil
	}
	// records from the bare-array schema carry no ID
	for i := range l.Orders {
		if l.Orders[i].ID == "" {
			l.Orders[i].ID = uuid.NewString()
		}
	}
	return l, nil
}

func (s *Service) Summary(l order.Ledger) totals.Summary {
	return totals.Summarize(l, s.prices)
}

func (s *Service) Price(r order.Record) float64 {
	return totals.Price(r, s.prices)
}

type change struct {
	action      models.AuditAction
	description string
	id          string // order touched, empty for ledger-level changes
	before      *order.Record
	// saved carries the client of a saved order into the directory
	saved *order.Record
}

// apply runs one command as a read-modify-write of the whole day. Subscribers
// are called once the lock is released.
func (s *Service) apply(key string, cmd func(order.Ledger) (order.Ledger, change, error)) (order.Ledger, error) {
	next, ev, subs, err := s.commit(key, cmd)
	if err != nil {
		return next, err
	}
	for _, fn := range subs {
		fn(ev)
	}
	return next, nil
}

func (s *Service) commit(key string, cmd func(order.Ledger) (order.Ledger, change, error)) (order.Ledger, Event, []func(Event), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, err := s.Day(key)
	if err != nil {
		return order.Ledger{}, Event{}, nil, err
	}
	cur, err := s.load(day)
	if err != nil {
		return order.Ledger{}, Event{}, nil, err
	}

	next, ch, err := cmd(cur)
	if err != nil {
		if errors.Is(err, order.ErrIndexOutOfRange) {
			s.logger.Error("order index out of range", zap.String("key", day.Key), zap.Error(err))
		}
		return cur, Event{}, nil, err
	}

	next.Title = day.Title
	next.Date = day.DateLabel
	sold := totals.Delivered(next.Orders)
	next.ChickensSold = sold.Chickens
	next.PotatoesSold = sold.Potatoes

	if err := storage.SaveJSON(s.store, day.Key, next); err != nil {
		return cur, Event{}, nil, err
	}

	if ch.saved != nil {
		s.remember(day, *ch.saved)
	}

	ev := Event{Day: day, Action: ch.action, Index: -1, Before: ch.before, Ledger: next}
	if ch.id != "" {
		ev.Index = next.IndexOf(ch.id)
		if ev.Index >= 0 {
			after := next.Orders[ev.Index]
			ev.After = &after
		}
	}

	if err := s.audit.WriteLog(audit.LogOptions{
		LedgerKey:   day.Key,
		OrderIndex:  ev.Index,
		OrderID:     ch.id,
		Action:      ch.action,
		Description: ch.description,
		Before:      ch.before,
		After:       ev.After,
	}); err != nil {
		s.logger.Warn("audit write failed", zap.Error(err))
	}

	s.logger.Debug("ledger changed",
		zap.String("key", day.Key),
		zap.String("action", string(ch.action)),
		zap.Int("index", ev.Index),
	)

	return next, ev, slices.Clone(s.subscribers), nil
}

// prepare coerces the form and applies the blacklist marker to the display name.
func (s *Service) prepare(f order.Form) order.Record {
	r := f.Record(s.resolver.Clock())
	base := clients.FormatName(order.UnmarkName(r.Name, s.marker))
	r.Name = order.MarkName(base, s.marker, r.Blacklisted)
	return r
}

// remember keeps the client directory of the day's locality in step with a saved order.
func (s *Service) remember(day daykey.Day, r order.Record) {
	base := order.UnmarkName(r.Name, s.marker)
	if _, err := s.clients.Upsert(day.Locality, base, r.Blacklisted); err != nil {
		s.logger.Warn("client directory not updated", zap.String("locality", day.Locality), zap.Error(err))
	}
}

func (s *Service) AddOrder(key string, f order.Form) (order.Ledger, error) {
	r := s.prepare(f)
	r.ID = uuid.NewString()
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next, err := l.Add(r)
		if err != nil {
			return l, change{}, err
		}
		return next, change{
			action:      models.AuditActionCreate,
			description: fmt.Sprintf("Pedido: %s - %.1f pollos, %.1f patatas (%s)", r.Name, r.Chickens, r.Potatoes, r.Time),
			id:          r.ID,
			saved:       &r,
		}, nil
	})
}

func (s *Service) UpdateOrder(key string, index int, f order.Form) (order.Ledger, error) {
	r := s.prepare(f)
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next, err := l.Update(index, r)
		if err != nil {
			return l, change{}, err
		}
		before := l.Orders[index]
		return next, change{
			action:      models.AuditActionUpdate,
			description: fmt.Sprintf("Pedido actualizado: %s", r.Name),
			id:          before.ID,
			before:      &before,
			saved:       &r,
		}, nil
	})
}

func (s *Service) DeleteOrder(key string, index int) (order.Ledger, error) {
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next, err := l.SoftDelete(index)
		if err != nil {
			return l, change{}, err
		}
		before := l.Orders[index]
		return next, change{
			action:      models.AuditActionDelete,
			description: fmt.Sprintf("Pedido eliminado: %s", before.Name),
			id:          before.ID,
			before:      &before,
		}, nil
	})
}

func (s *Service) ToggleDelivered(key string, index int) (order.Ledger, error) {
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next, err := l.ToggleDelivered(index)
		if err != nil {
			return l, change{}, err
		}
		before := l.Orders[index]
		state := "entregado"
		if before.Delivered {
			state = "pendiente"
		}
		return next, change{
			action:      models.AuditActionDeliver,
			description: fmt.Sprintf("Pedido %s: %s", state, before.Name),
			id:          before.ID,
			before:      &before,
		}, nil
	})
}

// AdjustOven adds deltas to the oven counters.
func (s *Service) AdjustOven(key string, chickens, potatoes float64) (order.Ledger, error) {
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next := l.AdjustOvenStock(chickens, potatoes)
		return next, change{
			action:      models.AuditActionOven,
			description: fmt.Sprintf("Horno: %+.1f pollos, %+.1f patatas", chickens, potatoes),
		}, nil
	})
}

// SetOven overwrites the oven counters.
func (s *Service) SetOven(key string, chickens, potatoes float64) (order.Ledger, error) {
	return s.apply(key, func(l order.Ledger) (order.Ledger, change, error) {
		next := l.WithOvenStock(chickens, potatoes)
		return next, change{
			action:      models.AuditActionOven,
			description: fmt.Sprintf("Horno: %.1f pollos, %.1f patatas", chickens, potatoes),
		}, nil
	})
}

// Suggestions autocompletes client names for the locality.
func (s *Service) Suggestions(locality, partial string) ([]clients.Client, error) {
	return s.clients.SuggestionsFor(locality, partial)
}
