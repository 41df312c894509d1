// Package metrics exposes Prometheus counters for rounds served over HTTP.
// All methods are nil-safe so callers can run without metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/guessnum/internal/game"
)

// Metrics bundles the collectors and the registry they live in.
type Metrics struct {
	reg *prometheus.Registry

	RoundsStarted prometheus.Counter
	RoundsWon     prometheus.Counter
	Guesses       *prometheus.CounterVec
	AttemptsToWin prometheus.Histogram
	ActiveRounds  prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		RoundsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "guessnum",
			Name:      "rounds_started_total",
			Help:      "Rounds started, including resets.",
		}),
		RoundsWon: f.NewCounter(prometheus.CounterOpts{
			Namespace: "guessnum",
			Name:      "rounds_won_total",
			Help:      "Rounds finished with a correct guess.",
		}),
		Guesses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guessnum",
			Name:      "guesses_total",
			Help:      "Guesses by result (win, too_low, too_high, rejected).",
		}, []string{"result"}),
		AttemptsToWin: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guessnum",
			Name:      "attempts_to_win",
			Help:      "Valid attempts needed to win a round.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 10, 15, 20},
		}),
		ActiveRounds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "guessnum",
			Name:      "active_rounds",
			Help:      "Rounds currently held in the session store.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// RoundStarted counts a new round or reset.
func (m *Metrics) RoundStarted() {
	if m == nil {
		return
	}
	m.RoundsStarted.Inc()
}

// ObserveGuess records one MakeGuess outcome.
func (m *Metrics) ObserveGuess(o game.Outcome) {
	if m == nil {
		return
	}
	if !o.Valid {
		m.Guesses.WithLabelValues("rejected").Inc()
		return
	}
	m.Guesses.WithLabelValues(string(o.Status)).Inc()
	if o.Status == game.StatusWin {
		m.RoundsWon.Inc()
		m.AttemptsToWin.Observe(float64(o.Attempts))
	}
}

// SetActive records the current session count.
func (m *Metrics) SetActive(n int) {
	if m == nil {
		return
	}
	m.ActiveRounds.Set(float64(n))
}
