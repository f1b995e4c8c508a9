package main

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type requestIDGenerator struct {
	lk      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newRequestIDGenerator() *requestIDGenerator {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)

	return &requestIDGenerator{
		entropy: entropy,
	}
}

func (g *requestIDGenerator) next(t time.Time) string {
	g.lk.Lock()
	defer g.lk.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// withRequestID keeps a caller supplied id and otherwise assigns a new one.
func withRequestID(h http.Handler) http.Handler {
	ids := newRequestIDGenerator()

	fn := func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = ids.next(time.Now())
			r.Header.Set(requestIDHeader, id)
		}
		rw.Header().Set(requestIDHeader, id)

		h.ServeHTTP(rw, r)
	}
	return http.HandlerFunc(fn)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(h http.Handler) http.Handler {
	logFn := func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method
		recorder := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		h.ServeHTTP(recorder, r) // serve the original request

		duration := time.Since(start)

		log.WithFields(log.Fields{
			"uri":        uri,
			"method":     method,
			"status":     recorder.status,
			"duration":   duration,
			"request_id": r.Header.Get(requestIDHeader),
		}).Info()
	}
	return http.HandlerFunc(logFn)
}
