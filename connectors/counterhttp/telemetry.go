package counterhttp

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

func WithTelemetry(h http.Handler, name string, provider trace.TracerProvider) http.Handler {
	return otelhttp.NewHandler(h, name, otelhttp.WithTracerProvider(provider))
}
