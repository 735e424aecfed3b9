package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/vendq/vendq/api"
	"github.com/vendq/vendq/config"
	"github.com/vendq/vendq/dataset"
)

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())

	cfgPath := flag.String("config", "./.config.yaml", "path to config file")
	flag.Parse()

	fileContent, err := os.ReadFile(*cfgPath)
	if err != nil {
		panic(fmt.Errorf("cannot read config file content: %w", err))
	}

	var cfg config.Config
	if err := yaml.Unmarshal(fileContent, &cfg); err != nil {
		panic(fmt.Errorf("cannot parse config file: %w", err))
	}

	services, logger, err := cfg.Parse()
	if err != nil {
		if logger != nil {
			logger.Error("cannot parse config file", "error", err)
			os.Exit(1)
		}
		panic(fmt.Errorf("cannot parse config file: %w", err))
	}

	// Setup signal handling to catch Ctrl+C (SIGINT) or Terminate (SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received signal. shutting down.", "signal", sig)
		cancel()
	}()

	if err := services.Vendors.Connect(ctx); err != nil {
		logger.Error("cannot connect to vendor storage.", "error", err)
		os.Exit(1)
	}
	defer services.Vendors.Close(ctx) //nolint:errcheck

	source := dataset.NewFileSource(logger, services.DatasetPath, services.Processor)
	terms, err := source.Load()
	if err != nil {
		logger.Error("cannot load payment-terms dataset.", "error", err)
		os.Exit(1)
	}
	store := dataset.NewStore(terms)
	logger.Info("payment-terms dataset loaded.", "records", store.Len())

	// Keep the in-memory dataset in sync with the file for as long as the
	// server runs.
	go func() {
		if err := source.Watch(ctx, store.Replace); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("dataset watcher stopped.", "error", err)
		}
	}()

	server, err := api.NewServer(services.API, logger, services.Vendors, store)
	if err != nil {
		logger.Error("server error.", "error", err)
		os.Exit(1)
	}

	if err := server.Serve(ctx); err != nil {
		logger.Error("server error.", "error", err)
		cancel()
		os.Exit(1)
	}

	logger.Info("server stopped.")
}
