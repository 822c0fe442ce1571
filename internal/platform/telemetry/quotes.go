package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Fetch outcomes recorded on quotes.fetch.total.
const (
	OutcomeRendered  = "rendered"
	OutcomeCached    = "cached"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
	OutcomeTruncated = "truncated"
)

// QuoteMetrics records quote fetch outcomes to OpenTelemetry and to the
// Prometheus registry scraped on /-/metrics.
type QuoteMetrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	promTotal     *prometheus.CounterVec
}

// NewQuoteMetrics creates the quote instruments and registers the Prometheus
// collector with reg. A collector already registered under the same name is
// reused, so constructing twice against one registry is safe.
func NewQuoteMetrics(reg prometheus.Registerer) (*QuoteMetrics, error) {
	return newQuoteMetrics(reg, otel.Meter(instrumentationName))
}

func newQuoteMetrics(reg prometheus.Registerer, meter metric.Meter) (*QuoteMetrics, error) {
	fetchTotal, err := meter.Int64Counter(
		"quotes.fetch.total",
		metric.WithDescription("Quote fetches by outcome"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"quotes.fetch.duration",
		metric.WithDescription("Quote fetch duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	promTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_fetch_total",
		Help: "Quote fetches by outcome.",
	}, []string{"outcome"})

	if reg != nil {
		if err := reg.Register(promTotal); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, err
			}

			existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}

			promTotal = existing
		}
	}

	return &QuoteMetrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		promTotal:     promTotal,
	}, nil
}

// RecordFetch records one fetch with its outcome and elapsed time. Only the
// outcome is attached: topics are caller input and stay in logs.
// A nil receiver is a no-op.
func (m *QuoteMetrics) RecordFetch(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.fetchTotal.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.promTotal.WithLabelValues(outcome).Inc()
}
