package support

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

const (
	ExporterNone    = "none"
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
	ExporterJaeger  = "jaeger"
)

const defaultJaegerEndpoint = "http://localhost:14268/api/traces"

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func OTLPExporter(ctx context.Context, endpoint string, headers map[string]string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithHeaders(headers),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		endpoint = defaultJaegerEndpoint
	}
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}

// NewExporter returns nil for ExporterNone.
func NewExporter(ctx context.Context, cfg Telemetry) (trace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterConsole:
		return ConsoleExporter()
	case ExporterOTLP:
		exporter, err := OTLPExporter(ctx, cfg.Endpoint, cfg.Headers)
		if err != nil {
			return nil, err
		}
		return exporter, nil
	case ExporterJaeger:
		exporter, err := JaegerExporter(cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return exporter, nil
	default:
		return nil, nil
	}
}

// NewTracerProvider installs the provider globally. The returned cleanup
// flushes pending spans.
func NewTracerProvider(ctx context.Context, cfg Config) (*trace.TracerProvider, func(), error) {
	exporter, err := NewExporter(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, err
	}

	var options []trace.TracerProviderOption
	if exporter != nil {
		options = append(options, trace.WithBatcher(exporter))
	}

	provider := trace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)

	cleanup := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to shut down tracer provider")
		}
	}

	return provider, cleanup, nil
}
