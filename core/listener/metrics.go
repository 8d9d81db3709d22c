package listener

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Handling results recorded by Metrics.
const (
	ResultOK        = "ok"
	ResultUnhandled = "unhandled"
	ResultFailed    = "failed"
	ResultPanic     = "panic"
)

// Metrics records Prometheus counters for sends, deliveries and handler outcomes.
// A nil *Metrics is valid: it records nothing and its accessors return zero counters.
type Metrics struct {
	sent      *prometheus.CounterVec
	delivered *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	handled   *prometheus.CounterVec
	queued    *prometheus.GaugeVec
}

// NewMetrics creates the listener collectors and registers them with reg.
// Pass nil to create collectors without registering them.
//
// Example:
//
//	metrics, err := listener.NewMetrics(prometheus.DefaultRegisterer)
//	dispatcher := listener.NewDispatcher(registry, listener.WithDispatcherMetrics(metrics))
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcore",
			Subsystem: "listener",
			Name:      "events_sent_total",
			Help:      "Events passed to Send.",
		}, []string{"capability", "event"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcore",
			Subsystem: "listener",
			Name:      "events_delivered_total",
			Help:      "Envelopes enqueued on a recipient mailbox.",
		}, []string{"capability", "event"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcore",
			Subsystem: "listener",
			Name:      "events_dropped_total",
			Help:      "Envelopes a recipient refused at enqueue time.",
		}, []string{"capability", "reason"}),
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcore",
			Subsystem: "listener",
			Name:      "events_handled_total",
			Help:      "Envelopes processed by recipient loops, by result.",
		}, []string{"capability", "event", "result"}),
		queued: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "soundcore",
			Subsystem: "listener",
			Name:      "mailbox_depth",
			Help:      "Envelopes waiting in an actor mailbox.",
		}, []string{"actor"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.sent, m.delivered, m.dropped, m.handled, m.queued} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) recordSent(c Capability, event string) {
	if m == nil {
		return
	}
	m.sent.WithLabelValues(c.Name(), event).Inc()
}

func (m *Metrics) recordDelivered(c Capability, event string) {
	if m == nil {
		return
	}
	m.delivered.WithLabelValues(c.Name(), event).Inc()
}

func (m *Metrics) recordDropped(c Capability, err error) {
	if m == nil {
		return
	}
	reason := "error"
	switch {
	case errors.Is(err, ErrMailboxClosed):
		reason = "closed"
	case errors.Is(err, ErrMailboxFull):
		reason = "full"
	}
	m.dropped.WithLabelValues(c.Name(), reason).Inc()
}

func (m *Metrics) recordHandled(env Envelope, result string) {
	if m == nil {
		return
	}
	m.handled.WithLabelValues(env.Capability.Name(), env.Name(), result).Inc()
}

func (m *Metrics) setQueued(actor string, n int) {
	if m == nil {
		return
	}
	m.queued.WithLabelValues(actor).Set(float64(n))
}

func (m *Metrics) forgetActor(actor string) {
	if m == nil {
		return
	}
	m.queued.DeleteLabelValues(actor)
}

// discardCounter stands in for the accessors of a nil *Metrics. It is never registered.
func discardCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "discarded"})
}

// Sent exposes the sent counter for the given labels.
func (m *Metrics) Sent(capability, event string) prometheus.Counter {
	if m == nil {
		return discardCounter()
	}
	return m.sent.WithLabelValues(capability, event)
}

// Delivered exposes the delivered counter for the given labels.
func (m *Metrics) Delivered(capability, event string) prometheus.Counter {
	if m == nil {
		return discardCounter()
	}
	return m.delivered.WithLabelValues(capability, event)
}

// Dropped exposes the dropped counter for the given labels.
func (m *Metrics) Dropped(capability, reason string) prometheus.Counter {
	if m == nil {
		return discardCounter()
	}
	return m.dropped.WithLabelValues(capability, reason)
}

// Handled exposes the handled counter for the given labels.
func (m *Metrics) Handled(capability, event, result string) prometheus.Counter {
	if m == nil {
		return discardCounter()
	}
	return m.handled.WithLabelValues(capability, event, result)
}
