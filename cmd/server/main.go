// Package main runs the link shortener HTTP service.
//
//	@title			Link Shortener API
//	@version		1.0
//	@description	Short link creation and redirect service
//	@host			localhost:8080
//	@BasePath		/
//	@schemes		http https
package main

//go:generate swag init --dir ../../ --generalInfo cmd/server/main.go --output ../../docs --parseInternal

import (
	"log/slog"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	_ "github.com/sp3dr4/linkshortener/docs"
	appfx "github.com/sp3dr4/linkshortener/internal/fx"
)

func main() {
	fx.New(
		appfx.HTTPServerModules,
		// Leaves room for the click queue to drain after the server stops.
		fx.StopTimeout(30*time.Second),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
	).Run()
}
