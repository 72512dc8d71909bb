package metrics

import (
	"aimtrainer/internal/events"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aimtrainer"

type Metrics struct {
	Shots              *prometheus.CounterVec
	RoundsStarted      prometheus.Counter
	RoundsCompleted    prometheus.Counter
	Respawns           prometheus.Counter
	PlacementExhausted prometheus.Counter
	ActiveRooms        prometheus.Gauge
	FinalAccuracy      prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Shots fired during running rounds, by outcome.",
		}, []string{"result"}),
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds started.",
		}),
		RoundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_completed_total",
			Help:      "Rounds that ran to the end of their timer.",
		}),
		Respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "respawns_total",
			Help:      "Full target respawns caused by settings changes.",
		}),
		PlacementExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_exhausted_total",
			Help:      "Target slots skipped because no valid position was found.",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Sessions currently held in memory.",
		}),
		FinalAccuracy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_accuracy_percent",
			Help:      "Accuracy at the end of each completed round.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
	}
	reg.MustRegister(
		m.Shots,
		m.RoundsStarted,
		m.RoundsCompleted,
		m.Respawns,
		m.PlacementExhausted,
		m.ActiveRooms,
		m.FinalAccuracy,
	)
	return m
}

// Observe folds one game event into the counters. A nil Metrics ignores it.
func (m *Metrics) Observe(ev events.Event) {
	if m == nil {
		return
	}
	switch ev.Kind {
	case events.KindShot:
		if ev.Hit {
			m.Shots.WithLabelValues("hit").Inc()
		} else {
			m.Shots.WithLabelValues("miss").Inc()
		}
	case events.KindPhase:
		if ev.Phase == "running" {
			m.RoundsStarted.Inc()
		}
	case events.KindResult:
		m.RoundsCompleted.Inc()
		m.FinalAccuracy.Observe(ev.Accuracy)
	case events.KindRespawn:
		m.Respawns.Inc()
	case events.KindExhausted:
		m.PlacementExhausted.Add(float64(ev.Requested - ev.Placed))
	}
}

func (m *Metrics) RoomOpened() {
	if m != nil {
		m.ActiveRooms.Inc()
	}
}

func (m *Metrics) RoomClosed() {
	if m != nil {
		m.ActiveRooms.Dec()
	}
}
