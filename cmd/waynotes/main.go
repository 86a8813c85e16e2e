// Package main is the entry point for the waynotes CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"waynotes/internal/backend/googletasks"
	"waynotes/internal/cli"
	"waynotes/internal/commands"
	"waynotes/internal/config"
	"waynotes/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
