// Package metrics records engine counters and histograms with OpenTelemetry
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MeterName is the instrumentation scope of every engine instrument
const MeterName = "pplp-engine"

// Config configures the OTLP metric export
type Config struct {
	Enabled        bool
	ServiceName    string
	OTLPEndpoint   string
	Insecure       bool
	ExportInterval time.Duration
}

// Setup installs a global meter provider exporting over OTLP gRPC. The returned function flushes
// and stops the provider. When disabled, the global no-op provider is left in place.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

// Recorder records engine events
//
//go:generate mockgen -source=metrics.go -destination=../mocks/metrics.go -package=mocks -mock_names=Recorder=MockMetricsRecorder
type Recorder interface {
	ActionSubmitted(ctx context.Context, actionType string)
	ActionScored(ctx context.Context, actionType, decision string, reward float64)
	Reservation(ctx context.Context, result string)
	Signature(ctx context.Context, result string)
	MintSettled(ctx context.Context, status string)
}

type recorder struct {
	submitted    metric.Int64Counter
	scored       metric.Int64Counter
	reservations metric.Int64Counter
	signatures   metric.Int64Counter
	settled      metric.Int64Counter
	reward       metric.Float64Histogram
}

// New creates a recorder on the given meter provider
func New(provider metric.MeterProvider) (Recorder, error) {
	meter := provider.Meter(MeterName)
	r := &recorder{}

	var err error
	if r.submitted, err = meter.Int64Counter("pplp.actions.submitted",
		metric.WithDescription("Actions accepted for scoring")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if r.scored, err = meter.Int64Counter("pplp.actions.scored",
		metric.WithDescription("Actions scored, by decision")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if r.reservations, err = meter.Int64Counter("pplp.reservations",
		metric.WithDescription("Epoch cap reservations, by result")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if r.signatures, err = meter.Int64Counter("pplp.signatures",
		metric.WithDescription("Attester signatures, by result")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if r.settled, err = meter.Int64Counter("pplp.mints.settled",
		metric.WithDescription("Mint requests reaching a terminal status")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if r.reward, err = meter.Float64Histogram("pplp.reward",
		metric.WithDescription("Reward of passing actions in issuance units")); err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	return r, nil
}

// NewGlobal creates a recorder on the global meter provider
func NewGlobal() (Recorder, error) {
	return New(otel.GetMeterProvider())
}

// NewNoop creates a recorder that drops everything
func NewNoop() Recorder {
	r, _ := New(noop.NewMeterProvider())
	return r
}

func (r *recorder) ActionSubmitted(ctx context.Context, actionType string) {
	r.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("action_type", actionType)))
}

func (r *recorder) ActionScored(ctx context.Context, actionType, decision string, reward float64) {
	r.scored.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action_type", actionType),
		attribute.String("decision", decision)))
	if reward > 0 {
		r.reward.Record(ctx, reward, metric.WithAttributes(attribute.String("action_type", actionType)))
	}
}

func (r *recorder) Reservation(ctx context.Context, result string) {
	r.reservations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (r *recorder) Signature(ctx context.Context, result string) {
	r.signatures.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (r *recorder) MintSettled(ctx context.Context, status string) {
	r.settled.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
