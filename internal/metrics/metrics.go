package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Options configures domain collectors.
type Options struct {
	Registerer prometheus.Registerer
	Namespace  string
}

// Metrics holds collectors for authentication and scoring. A nil *Metrics
// records nothing.
type Metrics struct {
	Logins         *prometheus.CounterVec
	Signups        *prometheus.CounterVec
	Predictions    *prometheus.CounterVec
	Scores         prometheus.Histogram
	HistoryFailure prometheus.Counter
}

// New constructs collectors and registers them, reusing any that are
// already registered.
func New(opts Options) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "scorepredictor"
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	logins, err := Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login submissions partitioned by result.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	signups, err := Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "signups_total",
		Help:      "Signup submissions partitioned by result.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	predictions, err := Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scoring",
		Name:      "predictions_total",
		Help:      "Prediction requests partitioned by result.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	scores, err := Register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "scoring",
		Name:      "predicted_score",
		Help:      "Distribution of clamped predicted scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}))
	if err != nil {
		return nil, err
	}

	historyFailure, err := Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scoring",
		Name:      "history_save_failures_total",
		Help:      "Predictions that were shown but could not be saved to history.",
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Logins:         logins,
		Signups:        signups,
		Predictions:    predictions,
		Scores:         scores,
		HistoryFailure: historyFailure,
	}, nil
}

// Register registers c with reg. If an equal collector is already
// registered, that one is returned instead.
func Register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
		}
		return c, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSignup(result string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePrediction(score float64) {
	if m == nil {
		return
	}
	m.Predictions.WithLabelValues(ResultSuccess).Inc()
	m.Scores.Observe(score)
}

func (m *Metrics) PredictionFailed() {
	if m == nil {
		return
	}
	m.Predictions.WithLabelValues(ResultError).Inc()
}

func (m *Metrics) HistorySaveFailed() {
	if m == nil {
		return
	}
	m.HistoryFailure.Inc()
}
