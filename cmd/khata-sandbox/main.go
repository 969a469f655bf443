// khata-sandbox runs the in-memory stand-in backend. Everything lives in
// process memory; restart and the data is gone. Useful for demos and for
// pointing the khata CLI at something local.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naayikhata/khata-go/internal/sandbox"
	"github.com/naayikhata/khata-go/pkg/config"
	"github.com/naayikhata/khata-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.Sandbox.Addr()).
		Msg("starting sandbox")

	app := sandbox.New(sandbox.Options{
		AppName:       cfg.App.Name + "-sandbox",
		JWTSecret:     cfg.Sandbox.JWTSecret,
		JWTIssuer:     cfg.Sandbox.Issuer,
		JWTExpMinutes: cfg.Sandbox.JWTExpMinutes,
	})

	go func() {
		if err := app.Listen(cfg.Sandbox.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("sandbox stopped")
}
