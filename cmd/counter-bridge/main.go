package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/weegigs/wee-counter-go/bridge"
	"github.com/weegigs/wee-counter-go/client"
	"github.com/weegigs/wee-counter-go/support"
)

var configFile = flag.String("config", "", "Counter configuration filename")

func run() error {
	cfg, err := support.LoadConfig(*configFile)
	if err != nil {
		return err
	}
	logger := support.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, cleanup, err := support.NewTracerProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	api := client.New(cfg.Host, client.WithLogger(logger))
	b := bridge.New(api, bridge.WithInterval(cfg.PollInterval.Duration()), bridge.WithLogger(logger))
	ui := &console{in: os.Stdin, out: os.Stdout, log: logger}

	in := make(chan bridge.SetCounterSignal)
	out := make(chan bridge.CounterSignal)

	// stdin cannot be interrupted, so the reader is left running on shutdown.
	go func() {
		if err := ui.read(ctx, in); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("failed to read input")
		}
	}()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return b.Run(gctx, in, out)
	})
	group.Go(func() error {
		return ui.write(gctx, out)
	})

	logger.Info().Str("host", cfg.Host).Msg("bridge started")
	if err := group.Wait(); err != nil && err != context.Canceled {
		return err
	}

	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("counter bridge failed")
	}
}
