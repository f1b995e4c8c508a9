package counterhttp

import (
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/weegigs/wee-counter-go/counter"
)

const Greeting = "Hello, world!"

var DefaultAllowedHeaders = []string{"Authorization", "Content-Type", "X-Response-Content-Type"}

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

func WithMetrics(metrics *Metrics) HandlerOption {
	return func(service *httpService) {
		service.metrics = metrics
	}
}

func WithTracerProvider(provider trace.TracerProvider) HandlerOption {
	return func(service *httpService) {
		service.tracerProvider = provider
	}
}

// WithAllowedHeaders replaces the request headers accepted from cross origin
// callers.
func WithAllowedHeaders(headers ...string) HandlerOption {
	return func(service *httpService) {
		service.allowedHeaders = headers
	}
}

// NewHandler exposes the store over HTTP. It fails when the CORS
// configuration is invalid; callers must not serve in that case.
func NewHandler(store *counter.Store, options ...HandlerOption) (http.Handler, error) {
	service := &httpService{store: store, allowedHeaders: DefaultAllowedHeaders}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}
	if service.tracerProvider == nil {
		service.tracerProvider = otel.GetTracerProvider()
	}

	c, err := NewCORS(service.allowedHeaders...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure cors")
	}

	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Method("GET", "/", service.hello())

	api := r.With(render.SetContentType(render.ContentTypeJSON))
	api.Method("GET", "/counter", service.getCounter())
	api.Method("PUT", "/counter", service.setCounter())

	if service.metrics != nil {
		store.Observe(service.metrics.observe)
		r.Method("GET", "/metrics", service.metrics.Handler())
	}

	return WithTelemetry(c.Handler(r), "counter-http", service.tracerProvider), nil
}

type httpService struct {
	log            *zerolog.Logger
	store          *counter.Store
	metrics        *Metrics
	tracerProvider trace.TracerProvider
	allowedHeaders []string
}

func (service *httpService) hello() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, Greeting)
	}
}

func (service *httpService) getCounter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := service.store.Next(r.Context())
		service.metrics.read()

		render.JSON(w, r, current)
	}
}

// payload rejects bodies without a number instead of treating them as zero.
type payload struct {
	Number *int32 `json:"number"`
}

func (service *httpService) setCounter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-type")
		mediaType, _, err := mime.ParseMediaType(contentType)
		if mediaType != "application/json" || err != nil {
			service.metrics.rejected(reasonContentType)
			renderError(w, r, http.StatusUnsupportedMediaType, "unsupported content type")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			service.metrics.rejected(reasonBody)
			renderError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}

		var p payload
		if err := json.UnmarshalContext(r.Context(), body, &p); err != nil {
			service.log.Info().Err(err).Msg("failed to unmarshal counter")
			service.metrics.rejected(reasonBody)
			renderError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if p.Number == nil {
			service.metrics.rejected(reasonBody)
			renderError(w, r, http.StatusBadRequest, "invalid request body: missing field `number`")
			return
		}

		update := counter.New()
		update.Set(*p.Number)
		service.store.Set(r.Context(), update)
		service.metrics.written()

		render.NoContent(w, r)
	}
}
