// Package tracing builds the OpenTelemetry tracer provider used by the dispatcher
// and actors. Spans are exported to stdout when TRACING_EXPORTER=stdout and
// discarded otherwise.
//
//	tp, shutdown, err := tracing.Setup(ctx, cfg.Tracing)
//	if err != nil {
//		return err
//	}
//	defer shutdown(context.Background())
//
//	app, err := player.NewApp(player.WithTracerProvider(tp))
package tracing
