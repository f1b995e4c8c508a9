package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-counter-go/support"
)

var configFile = flag.String("config", "", "Counter configuration filename")

const shutdownTimeout = 5 * time.Second

func run() error {
	cfg, err := support.LoadConfig(*configFile)
	if err != nil {
		return err
	}
	logger := support.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := server(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to configure server")
	}
	defer cleanup()

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: withRequestID(withLogging(handler)),
	}

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Warn().Err(err).Msg("failed to shut down cleanly")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("counter server failed")
	}
}
