package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/weegigs/wee-counter-go/counter"
)

// DefaultHost is only reachable from the machine running the server. Mobile
// clients need the server's address.
const DefaultHost = "http://localhost:3000"

type Option func(client *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(client *Client) {
		client.http = hc
	}
}

func WithLogger(log *zerolog.Logger) Option {
	return func(client *Client) {
		client.log = log
	}
}

type Client struct {
	host string
	http *http.Client
	log  *zerolog.Logger
}

func New(host string, options ...Option) *Client {
	client := &Client{host: strings.TrimRight(host, "/")}
	for _, option := range options {
		option(client)
	}
	if client.http == nil {
		client.http = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if client.log == nil {
		client.log = &log.Logger
	}

	return client
}

func (c *Client) url() string {
	return c.host + "/counter"
}

func (c *Client) GetCounter(ctx context.Context) (counter.Counter, error) {
	url := c.url()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return counter.Counter{}, transportError("get", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return counter.Counter{}, transportError("get", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return counter.Counter{}, transportError("get", url, errors.Wrap(err, "failed to read response"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return counter.Counter{}, transportError("get", url, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var result counter.Counter
	if err := json.UnmarshalContext(ctx, body, &result); err != nil {
		return counter.Counter{}, transportError("get", url, errors.Wrap(err, "failed to decode counter"))
	}

	return result, nil
}

// SetCounter reports whether the server accepted the value. A rejected value
// is not an error.
func (c *Client) SetCounter(ctx context.Context, value counter.Counter) (bool, error) {
	url := c.url()

	body, err := json.MarshalContext(ctx, value)
	if err != nil {
		return false, transportError("set", url, errors.Wrap(err, "failed to encode counter"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return false, transportError("set", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, transportError("set", url, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		c.log.Debug().Err(err).Msg("failed to drain response body")
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok {
		c.log.Debug().Int("status", resp.StatusCode).Int32("number", value.Get()).Msg("counter update rejected")
	}

	return ok, nil
}
