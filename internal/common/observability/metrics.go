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

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	suiteCounter  otelmetric.Int64Counter
	suiteDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	suiteCounter, _ := meter.Int64Counter(
		"doctor.suites",
		otelmetric.WithDescription("Number of check suite runs"),
	)

	suiteDuration, _ := meter.Float64Histogram(
		"doctor.suite.duration",
		otelmetric.WithDescription("Check suite run duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		suiteCounter:  suiteCounter,
		suiteDuration: suiteDuration,
	}
}

func (o *Observability) RecordSuiteRun(ctx context.Context, status string) {
	if o.suiteCounter != nil {
		o.suiteCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordSuiteDuration(ctx context.Context, duration time.Duration, status string) {
	if o.suiteDuration != nil {
		o.suiteDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
