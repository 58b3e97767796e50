package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"vostra.ai/vostracode-web/internal/matrix"
)

const metricNamespace = "vostra.ai/vostracode-web"

// MatrixReporter counts and logs feature rows whose value count does not match the tier count.
// It implements matrix.Reporter.
type MatrixReporter struct {
	ctx      context.Context
	logger   *zap.Logger
	counter  metric.Int64Counter
	counting bool
}

type reporterConfig struct {
	logger *zap.Logger
	meter  metric.Meter
}

// ReporterOption customises NewMatrixReporter.
type ReporterOption func(*reporterConfig)

// WithReporterLogger sets the logger receiving mismatch warnings.
func WithReporterLogger(logger *zap.Logger) ReporterOption {
	return func(c *reporterConfig) { c.logger = logger }
}

// WithMeter injects a custom OpenTelemetry meter.
func WithMeter(m metric.Meter) ReporterOption {
	return func(c *reporterConfig) { c.meter = m }
}

// NewMatrixReporter builds a reporter bound to ctx (used for metric recording).
func NewMatrixReporter(ctx context.Context, opts ...ReporterOption) *MatrixReporter {
	cfg := reporterConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = FromContext(ctx)
	}
	meter := cfg.meter
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	counter, err := meter.Int64Counter(
		"matrix.field_mismatch",
		metric.WithDescription("Feature rows whose value count differs from the tier count"),
	)
	if err != nil {
		cfg.logger.Warn("matrix: unable to register mismatch metric", zap.Error(err))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &MatrixReporter{
		ctx:      ctx,
		logger:   cfg.logger,
		counter:  counter,
		counting: err == nil,
	}
}

// FieldMismatch implements matrix.Reporter.
func (r *MatrixReporter) FieldMismatch(m matrix.Mismatch) {
	if r == nil {
		return
	}
	direction := "missing"
	if m.Extra() {
		direction = "extra"
	}
	r.logger.Warn("matrix: feature value count does not match tiers",
		zap.String("group", m.Group),
		zap.String("feature", m.Row),
		zap.Int("fields", m.Fields),
		zap.Int("tiers", m.Tiers),
		zap.String("direction", direction),
	)
	if r.counting {
		r.counter.Add(r.ctx, 1, metric.WithAttributes(
			attribute.String("group", m.Group),
			attribute.String("direction", direction),
		))
	}
}

// FetchCounter records where CMS content was served from.
type FetchCounter struct {
	counter metric.Int64Counter
	ok      bool
}

// NewFetchCounter registers the cms.fetch counter on meter, or the global provider when nil.
func NewFetchCounter(meter metric.Meter) *FetchCounter {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	c, err := meter.Int64Counter(
		"cms.fetch",
		metric.WithDescription("CMS queries by serving source"),
	)
	return &FetchCounter{counter: c, ok: err == nil}
}

// Record increments the counter for source (cache, remote, snapshot, local).
func (f *FetchCounter) Record(ctx context.Context, query, source string) {
	if f == nil || !f.ok {
		return
	}
	f.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("query", query),
		attribute.String("source", source),
	))
}
