package metrics

import (
	"pollos-backend/internal/board"
	"pollos-backend/internal/totals"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the board collectors. All names are prefixed with "pollos_".
//
//   - pollos_ledger_changes_total{action} - persisted ledger commands
//   - pollos_pending{product}             - still to deliver on the last touched day
//   - pollos_surplus{product}             - oven stock minus ordered on the last touched day
//   - pollos_revenue_euros                - revenue of the last touched day
type Metrics struct {
	registry *prometheus.Registry

	ChangesTotal *prometheus.CounterVec
	Pending      *prometheus.GaugeVec
	Surplus      *prometheus.GaugeVec
	Revenue      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pollos_ledger_changes_total",
			Help: "Persisted ledger commands by action",
		}, []string{"action"}),
		Pending: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pollos_pending",
			Help: "Ordered but not yet delivered on the last changed day",
		}, []string{"product"}),
		Surplus: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pollos_surplus",
			Help: "Oven stock minus ordered on the last changed day, negative is a shortage",
		}, []string{"product"}),
		Revenue: f.NewGauge(prometheus.GaugeOpts{
			Name: "pollos_revenue_euros",
			Help: "Price of every non-deleted order on the last changed day",
		}),
	}
}

// Observe is a board subscriber.
func (m *Metrics) Observe(prices totals.PriceTable) func(board.Event) {
	return func(ev board.Event) {
		m.ChangesTotal.WithLabelValues(string(ev.Action)).Inc()

		s := totals.Summarize(ev.Ledger, prices)
		m.Pending.WithLabelValues("chickens").Set(s.Pending.Chickens)
		m.Pending.WithLabelValues("potatoes").Set(s.Pending.Potatoes)
		m.Surplus.WithLabelValues("chickens").Set(s.Surplus.Chickens)
		m.Surplus.WithLabelValues("potatoes").Set(s.Surplus.Potatoes)
		m.Revenue.Set(s.Revenue)
	}
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
