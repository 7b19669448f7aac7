package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "rentbid/internal/biddingService"
	"rentbid/internal/config"
	"rentbid/internal/events"
	"rentbid/internal/identity"
	"rentbid/internal/repository"
	"rentbid/internal/server"
	"rentbid/utils"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(os.Getenv("RENTBID_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	store := repository.NewMemoryStore()
	publisher := events.Multi{events.LogPublisher{}}
	biddingSvc := bidding.NewBiddingService(store, cfg.Engine, publisher)

	router := server.SetupRouter(biddingSvc, identity.PassthroughResolver{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	// Periodic sweep catching sessions whose deadline passed without traffic.
	group.Go(func() error {
		ticker := time.NewTicker(cfg.Engine.SweepInterval.Duration)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := biddingSvc.SweepExpired(); err != nil {
					utils.Error("expiration sweep failed", map[string]any{"error": err.Error()})
				}
			}
		}
	})

	group.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		utils.Info("starting bidding engine server", map[string]any{"addr": addr})
		return router.Run(addr)
	})

	if err := group.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server stopped: %v\n", err)
		os.Exit(1)
	}
}
