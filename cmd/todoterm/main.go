// Package main is the entry point for the todoterm CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"todoterm/internal/backend/resttasks"
	"todoterm/internal/cli"
	"todoterm/internal/commands"
	"todoterm/internal/config"
	"todoterm/internal/session"
	"todoterm/internal/tasksync"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, log *zap.Logger, nav tasksync.Navigator) (*tasksync.Syncer, func(), error) {
		store, err := session.Open(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}

		// An absent credential is fine here; the synchronizer checks the
		// store before every remote call and redirects to login itself.
		token, _ := store.Credential()

		svc := resttasks.New(ctx, cfg.BaseURL, token, log)
		syn := tasksync.New(svc, store, nav, cfg.PageSize, log)
		return syn, func() { store.Close() }, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
