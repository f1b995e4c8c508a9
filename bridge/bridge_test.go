package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-counter-go/counter"
)

type response struct {
	value int32
	err   error
}

type fakeAPI struct {
	lk       sync.Mutex
	reads    []response
	writes   []error
	accepts  []bool
	received []int32
}

func (f *fakeAPI) GetCounter(ctx context.Context) (counter.Counter, error) {
	f.lk.Lock()
	defer f.lk.Unlock()

	value := counter.New()
	if len(f.reads) == 0 {
		return value, errors.New("no more responses")
	}

	next := f.reads[0]
	f.reads = f.reads[1:]
	if next.err != nil {
		return value, next.err
	}

	value.Set(next.value)
	return value, nil
}

func (f *fakeAPI) SetCounter(ctx context.Context, value counter.Counter) (bool, error) {
	f.lk.Lock()
	defer f.lk.Unlock()

	index := len(f.received)
	f.received = append(f.received, value.Get())

	if index < len(f.writes) && f.writes[index] != nil {
		return false, f.writes[index]
	}
	if index < len(f.accepts) {
		return f.accepts[index], nil
	}

	return true, nil
}

func (f *fakeAPI) forwarded() []int32 {
	f.lk.Lock()
	defer f.lk.Unlock()

	return append([]int32(nil), f.received...)
}

func newBridge(api CounterAPI) *Bridge {
	logger := zerolog.Nop()
	return New(api, WithInterval(time.Millisecond), WithLogger(&logger))
}

func receive(t *testing.T, out <-chan CounterSignal) CounterSignal {
	select {
	case signal := <-out:
		return signal
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a counter signal")
		return CounterSignal{}
	}
}

func TestPoll(t *testing.T) {
	t.Run("publishes polled values and skips failures", func(t *testing.T) {
		api := &fakeAPI{reads: []response{
			{err: errors.New("connection refused")},
			{value: 1},
			{err: errors.New("bad body")},
			{value: 2},
		}}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		out := make(chan CounterSignal)
		done := make(chan error, 1)
		go func() { done <- newBridge(api).Poll(ctx, out) }()

		assert.Equal(t, CounterSignal{Number: 1}, receive(t, out))
		assert.Equal(t, CounterSignal{Number: 2}, receive(t, out))

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("stops while waiting on the ui", func(t *testing.T) {
		api := &fakeAPI{reads: []response{{value: 5}}}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := newBridge(api).Poll(ctx, make(chan CounterSignal))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("defaults to one second", func(t *testing.T) {
		assert.Equal(t, time.Second, New(&fakeAPI{}).interval)
	})
}

func TestReceive(t *testing.T) {
	t.Run("forwards every signal and survives failures", func(t *testing.T) {
		api := &fakeAPI{
			writes:  []error{nil, errors.New("connection reset"), nil},
			accepts: []bool{true, false, false},
		}

		in := make(chan SetCounterSignal, 3)
		in <- SetCounterSignal{Counter: 10}
		in <- SetCounterSignal{Counter: -3}
		in <- SetCounterSignal{Counter: 0}
		close(in)

		err := newBridge(api).Receive(context.Background(), in)
		assert.NoError(t, err)
		assert.Equal(t, []int32{10, -3, 0}, api.forwarded())
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newBridge(&fakeAPI{}).Receive(ctx, make(chan SetCounterSignal))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun(t *testing.T) {
	api := &fakeAPI{reads: []response{{value: 3}}}
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan SetCounterSignal)
	out := make(chan CounterSignal)
	done := make(chan error, 1)
	go func() { done <- newBridge(api).Run(ctx, in, out) }()

	in <- SetCounterSignal{Counter: 8}
	assert.Equal(t, CounterSignal{Number: 3}, receive(t, out))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []int32{8}, api.forwarded())
}

func TestSignalName(t *testing.T) {
	assert.Equal(t, "bridge:set-counter-signal", SignalName(SetCounterSignal{}))
	assert.Equal(t, "bridge:counter-signal", SignalName(&CounterSignal{}))
}
