package bridge

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/weegigs/wee-counter-go/counter"
)

const DefaultInterval = time.Second

// CounterAPI is satisfied by *client.Client.
type CounterAPI interface {
	GetCounter(ctx context.Context) (counter.Counter, error)
	SetCounter(ctx context.Context, value counter.Counter) (bool, error)
}

type Option func(bridge *Bridge)

func WithInterval(interval time.Duration) Option {
	return func(bridge *Bridge) {
		bridge.interval = interval
	}
}

func WithLogger(log *zerolog.Logger) Option {
	return func(bridge *Bridge) {
		bridge.log = log
	}
}

// Bridge connects a UI layer to the counter service. Its loops only stop when
// their context is cancelled.
type Bridge struct {
	api      CounterAPI
	interval time.Duration
	log      *zerolog.Logger
}

func New(api CounterAPI, options ...Option) *Bridge {
	bridge := &Bridge{api: api}
	for _, option := range options {
		option(bridge)
	}
	if bridge.interval <= 0 {
		bridge.interval = DefaultInterval
	}
	if bridge.log == nil {
		bridge.log = &log.Logger
	}

	return bridge
}

// Poll waits one interval, fetches the counter and publishes it on out, then
// repeats. Failed fetches are logged and skipped.
func (b *Bridge) Poll(ctx context.Context, out chan<- CounterSignal) error {
	timer := time.NewTimer(b.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		value, err := b.api.GetCounter(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.log.Warn().Err(err).Msg("failed to poll counter")
			timer.Reset(b.interval)
			continue
		}

		signal := CounterSignal{Number: value.Get()}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- signal:
		}

		timer.Reset(b.interval)
	}
}

// Receive forwards every signal from in to the service. It returns nil once in
// is closed.
func (b *Bridge) Receive(ctx context.Context, in <-chan SetCounterSignal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case signal, ok := <-in:
			if !ok {
				return nil
			}
			b.forward(ctx, signal)
		}
	}
}

func (b *Bridge) forward(ctx context.Context, signal SetCounterSignal) {
	value := counter.New()
	value.Set(signal.Counter)

	accepted, err := b.api.SetCounter(ctx, value)
	if err != nil {
		b.log.Warn().Err(err).Str("signal", SignalName(signal)).Int32("counter", signal.Counter).Msg("failed to set counter")
		return
	}

	if !accepted {
		b.log.Warn().Str("signal", SignalName(signal)).Int32("counter", signal.Counter).Msg("counter update rejected")
	}
}

// Run drives both loops until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, in <-chan SetCounterSignal, out chan<- CounterSignal) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return b.Poll(ctx, out)
	})
	group.Go(func() error {
		return b.Receive(ctx, in)
	})

	return group.Wait()
}
