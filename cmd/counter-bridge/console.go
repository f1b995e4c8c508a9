package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weegigs/wee-counter-go/bridge"
)

// console stands in for the UI layer: every number read is a set signal and
// every polled value is printed.
type console struct {
	in  io.Reader
	out io.Writer
	log *zerolog.Logger
}

// read closes signals once the input is exhausted.
func (c *console) read(ctx context.Context, signals chan<- bridge.SetCounterSignal) error {
	defer close(signals)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			c.log.Warn().Str("input", line).Msg("expected a 32 bit integer")
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case signals <- bridge.SetCounterSignal{Counter: int32(value)}:
		}
	}

	return scanner.Err()
}

func (c *console) write(ctx context.Context, signals <-chan bridge.CounterSignal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case signal := <-signals:
			if _, err := fmt.Fprintf(c.out, "counter: %d\n", signal.Number); err != nil {
				return err
			}
		}
	}
}
