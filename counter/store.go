package counter

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
)

const tracerName = "counter-store"

// Store owns the canonical Counter. Every operation runs inside a single
// critical section.
type Store struct {
	lk       sync.Mutex
	counter  Counter
	observer func(stored Counter)
}

func NewStore() *Store {
	return &Store{counter: New()}
}

// Next returns the current value and advances the stored counter, so the Nth
// call on a fresh store returns N.
func (s *Store) Next(ctx context.Context) Counter {
	_, span := otel.Tracer(tracerName).Start(ctx, "next counter")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	current := s.counter
	s.counter.Increment()
	s.notify()

	return current
}

func (s *Store) Set(ctx context.Context, counter Counter) {
	_, span := otel.Tracer(tracerName).Start(ctx, "set counter")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	s.counter.Set(counter.Get())
	s.notify()
}

func (s *Store) Current(ctx context.Context) Counter {
	_, span := otel.Tracer(tracerName).Start(ctx, "current counter")
	defer span.End()

	s.lk.Lock()
	defer s.lk.Unlock()

	return s.counter
}

// Observe registers fn to receive the stored value after every change. fn runs
// while the lock is held and must not call back into the store. It is invoked
// once immediately with the current value.
func (s *Store) Observe(fn func(stored Counter)) {
	s.lk.Lock()
	defer s.lk.Unlock()

	s.observer = fn
	s.notify()
}

func (s *Store) notify() {
	if s.observer != nil {
		s.observer(s.counter)
	}
}
