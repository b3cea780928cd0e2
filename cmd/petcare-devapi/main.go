package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/petcare/petcare-client/internal/app"
	"github.com/petcare/petcare-client/internal/infrastructure/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadDevAPI(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	a, err := app.NewDevAPI(ctx, cfg)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run app: %v", err)
	}
}
