package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-counter-go/connectors/counterhttp"
	"github.com/weegigs/wee-counter-go/counter"
)

func newServer(t *testing.T) *httptest.Server {
	logger := zerolog.Nop()
	handler, err := counterhttp.NewHandler(counter.NewStore(), counterhttp.Logger(&logger))
	require.NoError(t, err)

	return httptest.NewServer(handler)
}

func newClient(url string) *Client {
	logger := zerolog.Nop()
	return New(url, WithLogger(&logger))
}

func TestClientAgainstService(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)
	defer server.Close()

	c := newClient(server.URL + "/")

	t.Run("reads increasing values", func(t *testing.T) {
		for i := int32(0); i < 3; i++ {
			value, err := c.GetCounter(ctx)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, i, value.Get())
		}
	})

	t.Run("sets the counter", func(t *testing.T) {
		update := counter.New()
		update.Set(-12)

		ok, err := c.SetCounter(ctx, update)
		assert.NoError(t, err)
		assert.True(t, ok)

		value, err := c.GetCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int32(-12), value.Get())
	})

	t.Run("follows the counter through overflow", func(t *testing.T) {
		top := counter.New()
		top.Set(math.MaxInt32)

		ok, err := c.SetCounter(ctx, top)
		assert.NoError(t, err)
		assert.True(t, ok)

		value, err := c.GetCounter(ctx)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, int32(math.MaxInt32), value.Get())

		value, err = c.GetCounter(ctx)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, int32(math.MinInt32), value.Get())

		bottom := counter.New()
		bottom.Set(math.MinInt32)

		ok, err = c.SetCounter(ctx, bottom)
		assert.NoError(t, err)
		assert.True(t, ok)

		value, err = c.GetCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int32(math.MinInt32), value.Get())
	})
}

func TestClientFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("reports rejected updates without an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ok, err := newClient(server.URL).SetCounter(ctx, counter.New())
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("fails on undecodable bodies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Hello, world!"))
		}))
		defer server.Close()

		_, err := newClient(server.URL).GetCounter(ctx)

		var transport *TransportError
		if assert.True(t, errors.As(err, &transport)) {
			assert.Equal(t, "get", transport.Op)
			assert.Equal(t, server.URL+"/counter", transport.URL)
		}
	})

	t.Run("fails on error statuses when reading", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newClient(server.URL).GetCounter(ctx)

		var transport *TransportError
		assert.True(t, errors.As(err, &transport))
	})

	t.Run("fails when the service is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		c := newClient(url)

		_, err := c.GetCounter(ctx)
		var transport *TransportError
		assert.True(t, errors.As(err, &transport))

		ok, err := c.SetCounter(ctx, counter.New())
		assert.False(t, ok)
		if assert.True(t, errors.As(err, &transport)) {
			assert.Equal(t, "set", transport.Op)
		}
	})
}
