package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporters accepted by Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// ErrUnknownExporter is returned for an unsupported Config.Exporter value.
var ErrUnknownExporter = errors.New("unknown tracing exporter")

// Config holds tracing settings loaded from the environment.
type Config struct {
	Exporter    string  `env:"TRACING_EXPORTER" envDefault:"none"`
	SampleRatio float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1"`
	ServiceName string  `env:"TRACING_SERVICE_NAME" envDefault:"soundcore"`
}

// Option configures Setup.
type Option func(*options)

type options struct {
	writer io.Writer
}

// WithWriter sets the destination of the stdout exporter. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// Setup creates a tracer provider for cfg.
//
// Tracing is opt-in: with the "none" exporter Setup returns a no-op provider.
// The returned shutdown function flushes pending spans and should be deferred
// by the caller. Setup does not touch the global provider.
func Setup(ctx context.Context, cfg Config, opts ...Option) (trace.TracerProvider, func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }

	o := &options{writer: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	var exporter sdktrace.SpanExporter
	switch strings.ToLower(strings.TrimSpace(cfg.Exporter)) {
	case "", ExporterNone:
		return noop.NewTracerProvider(), noopShutdown, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, noopShutdown, fmt.Errorf("create stdout exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, noopShutdown, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.Exporter)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	return tp, tp.Shutdown, nil
}
