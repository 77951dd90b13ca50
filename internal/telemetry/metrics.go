package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bot's collectors. Build one per registry; tests use a
// fresh prometheus.NewRegistry().
type Metrics struct {
	MessagesSeen  prometheus.Counter
	RepliesSent   prometheus.Counter
	ReplyFailures prometheus.Counter
	CounterErrors *prometheus.CounterVec // label: op
	Rollovers     prometheus.Counter
	CurrentCount  prometheus.Gauge
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MessagesSeen:  f.NewCounter(prometheus.CounterOpts{Name: "dadbot_messages_seen_total", Help: "Chat messages received"}),
		RepliesSent:   f.NewCounter(prometheus.CounterOpts{Name: "dadbot_replies_sent_total", Help: "Dad replies sent successfully"}),
		ReplyFailures: f.NewCounter(prometheus.CounterOpts{Name: "dadbot_reply_failures_total", Help: "Replies that could not be sent"}),
		CounterErrors: f.NewCounterVec(prometheus.CounterOpts{Name: "dadbot_counter_errors_total", Help: "Failed counter operations by op"}, []string{"op"}),
		Rollovers:     f.NewCounter(prometheus.CounterOpts{Name: "dadbot_epoch_rollovers_total", Help: "Epoch rollovers observed"}),
		CurrentCount:  f.NewGauge(prometheus.GaugeOpts{Name: "dadbot_current_epoch_count", Help: "Count of the current epoch as last seen"}),
	}
}

// CounterError records a failed counter operation.
func (m *Metrics) CounterError(op string) {
	if m == nil {
		return
	}
	m.CounterErrors.WithLabelValues(op).Inc()
}

// SetCurrentCount records the latest known count.
func (m *Metrics) SetCurrentCount(n uint64) {
	if m == nil {
		return
	}
	m.CurrentCount.Set(float64(n))
}

// MessageSeen counts an inbound chat message.
func (m *Metrics) MessageSeen() {
	if m == nil {
		return
	}
	m.MessagesSeen.Inc()
}

// ReplySent counts a successfully sent reply.
func (m *Metrics) ReplySent() {
	if m == nil {
		return
	}
	m.RepliesSent.Inc()
}

// ReplyFailed counts a reply the transport rejected.
func (m *Metrics) ReplyFailed() {
	if m == nil {
		return
	}
	m.ReplyFailures.Inc()
}

// RolledOver counts a bucket transition. The count gauge follows the
// manager through SetCurrentCount.
func (m *Metrics) RolledOver() {
	if m == nil {
		return
	}
	m.Rollovers.Inc()
}
