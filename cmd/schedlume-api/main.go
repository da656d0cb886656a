package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/noah-isme/schedlume-api/api/swagger"
	"github.com/noah-isme/schedlume-api/internal/app"
	"github.com/noah-isme/schedlume-api/pkg/config"
	"github.com/noah-isme/schedlume-api/pkg/logger"
)

// @title SchedLume API
// @version 1.0.0
// @description Personal class schedule: CSV import, per-date overrides, notes and reminders.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("startup failed", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(closeCtx)
	}()

	if err := a.StartJobs(ctx); err != nil {
		logr.Error("failed to schedule reminders", zap.Error(err))
		return
	}

	if err := a.Serve(ctx, 15*time.Second); err != nil {
		logr.Error("server failed", zap.Error(err))
	}
}
