//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"net/http"

	"github.com/google/wire"

	"github.com/weegigs/wee-counter-go/connectors/counterhttp"
	"github.com/weegigs/wee-counter-go/support"
)

func server(ctx context.Context, cfg support.Config) (http.Handler, func(), error) {
	panic(wire.Build(support.Live, counterhttp.Live))
}
