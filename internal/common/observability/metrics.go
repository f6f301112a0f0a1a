// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider and the job-level
// instruments recorded around every worker invocation. The prometheus
// exporter feeds the same /metrics endpoint as the promauto counters.
type Observability struct {
	provider    *metric.MeterProvider
	jobsHandled otelmetric.Int64Counter
	jobDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("prometheus exporter init failed, metrics disabled: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o := &Observability{provider: provider}

	o.jobsHandled, _ = meter.Int64Counter(
		"matching.jobs.handled",
		otelmetric.WithDescription("Jobs handled per task type"),
	)
	o.jobDuration, _ = meter.Float64Histogram(
		"matching.jobs.duration",
		otelmetric.WithDescription("End-to-end job handling time"),
		otelmetric.WithUnit("ms"),
	)

	return o
}

// RecordJobHandled counts one handled job and its wall-clock duration,
// labelled with the worker task type.
func (o *Observability) RecordJobHandled(ctx context.Context, taskType string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(attribute.String("task_type", taskType))
	if o.jobsHandled != nil {
		o.jobsHandled.Add(ctx, 1, attrs)
	}
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// Shutdown flushes the meter provider.
func (o *Observability) Shutdown() {
	if o.provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	o.provider.Shutdown(ctx)
}
