package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/eliauren/sqs-dlq-redrive-webapp/auth"
	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
	"github.com/eliauren/sqs-dlq-redrive-webapp/config"
	"github.com/eliauren/sqs-dlq-redrive-webapp/server"
	"github.com/eliauren/sqs-dlq-redrive-webapp/session"
	"github.com/eliauren/sqs-dlq-redrive-webapp/utils"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:8080", "listen address")
		configPath = flag.String("config", "", "path to the SSO config file (default ~/.aws/config)")
		logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		openUI     = flag.Bool("open", false, "open the UI in a browser after startup")
	)
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(*addr, *configPath, *openUI, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(addr, configPath string, openUI bool, logger *slog.Logger) error {
	loader, err := config.NewLoader(configPath)
	if err != nil {
		return err
	}
	loaded, err := loader.Load()
	if err != nil {
		return err
	}
	profiles := config.NewProfileSet(loaded)
	logger.Info("profiles loaded", "count", len(profiles.Names()))

	sessions := session.NewStore()
	environments := session.NewEnvironmentRegistry()
	clients := aws.NewClientRegistry(nil)

	flow := auth.NewDeviceFlow(profiles, clients, sessions)
	discovery := auth.NewDiscovery(clients)
	broker := auth.NewBroker(clients, sessions, environments, nil)

	srv := server.New(profiles, flow, discovery, broker, sessions, environments,
		server.WithLogger(logger))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if openUI {
		url := fmt.Sprintf("http://%s/", addr)
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := utils.OpenBrowser(url); err != nil {
				logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}()
	}

	logger.Info("listening", "addr", addr)
	return httpServer.ListenAndServe()
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), nil
}
