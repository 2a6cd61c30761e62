// Command httpd runs the conversational listing agent HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pazarglobal/agent/internal/bootstrap"
	"github.com/pazarglobal/agent/internal/config"
	"github.com/pazarglobal/agent/internal/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.Logger.Error("server error", logging.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		app.Logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			app.Logger.Error("graceful shutdown failed", logging.Error(err))
			os.Exit(1)
		}
		app.Logger.Info("server stopped gracefully")
	}
}
