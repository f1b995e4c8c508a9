package counterhttp

import (
	"net/http"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/weegigs/wee-counter-go/counter"
)

var Live = wire.NewSet(
	counter.NewStore,
	NewMetrics,
	ProvideHandler,
)

func ProvideHandler(store *counter.Store, metrics *Metrics, logger *zerolog.Logger, provider trace.TracerProvider) (http.Handler, error) {
	return NewHandler(store, Logger(logger), WithMetrics(metrics), WithTracerProvider(provider))
}
