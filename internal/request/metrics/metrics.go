package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bulk outcome buckets, used as the "outcome" label.
const (
	OutcomeInvalid         = "invalid"
	OutcomeExistingRequest = "existing_request"
	OutcomeExistingDataset = "existing_dataset"
	OutcomeAccepted        = "accepted"
)

// Metrics provides observability for the request module.
// Tracks how bulk requests are partitioned and how long the critical paths take.
type Metrics struct {
	BulkDimensions       *prometheus.CounterVec
	BulkRequestDuration  prometheus.Histogram
	ReconcileDuration    prometheus.Histogram
	Transitions          *prometheus.CounterVec
	SourcingTransitions  *prometheus.CounterVec
	InvariantViolations  prometheus.Counter
	NotificationFailures prometheus.Counter
}

// New registers the request metrics with reg. Tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BulkDimensions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sourcing_bulk_dimensions_total",
			Help: "Dimensions processed by bulk requests, by outcome bucket",
		}, []string{"outcome"}),
		BulkRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sourcing_bulk_request_duration_seconds",
			Help:    "Duration of ProcessBulkRequest including validation and lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sourcing_reconcile_history_duration_seconds",
			Help:    "Duration of GetReconciledHistory operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sourcing_request_transitions_total",
			Help: "Request state transitions, by target state",
		}, []string{"state"}),
		SourcingTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sourcing_data_sourcing_transitions_total",
			Help: "Data sourcing state transitions, by target state",
		}, []string{"state"}),
		InvariantViolations: factory.NewCounter(prometheus.CounterOpts{
			Name: "sourcing_history_invariant_violations_total",
			Help: "Reconciliations rejected because the stored history is inconsistent",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sourcing_notification_failures_total",
			Help: "Lifecycle events that could not be published",
		}),
	}
}

// AddBulkOutcome records the size of each bucket of one bulk request.
func (m *Metrics) AddBulkOutcome(invalid, existingRequests, existingDatasets, accepted int) {
	m.BulkDimensions.WithLabelValues(OutcomeInvalid).Add(float64(invalid))
	m.BulkDimensions.WithLabelValues(OutcomeExistingRequest).Add(float64(existingRequests))
	m.BulkDimensions.WithLabelValues(OutcomeExistingDataset).Add(float64(existingDatasets))
	m.BulkDimensions.WithLabelValues(OutcomeAccepted).Add(float64(accepted))
}

// ObserveBulkRequest records the duration of a ProcessBulkRequest call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveBulkRequest(start time.Time) {
	m.BulkRequestDuration.Observe(time.Since(start).Seconds())
}

// ObserveReconcile records the duration of a GetReconciledHistory call.
func (m *Metrics) ObserveReconcile(start time.Time) {
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementTransition(state string) {
	m.Transitions.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementSourcingTransition(state string) {
	m.SourcingTransitions.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementInvariantViolation() {
	m.InvariantViolations.Inc()
}

func (m *Metrics) IncrementNotificationFailure() {
	m.NotificationFailures.Inc()
}
