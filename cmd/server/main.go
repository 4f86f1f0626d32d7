package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.HTTP.StartupTimeout)
	bootstrap, cleanup, err := app.Bootstrap(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.HTTP.Port)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	logger.Printf("Server | app=%s env=%s store=%s addr=%s", cfg.App.AppName, cfg.App.Environment, cfg.Database.Driver, addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Printf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
	}
}
