package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/salestax-lookup/internal/app"
	"github.com/Adda-Baaj/salestax-lookup/internal/config"
	"github.com/Adda-Baaj/salestax-lookup/internal/logger"
	"github.com/Adda-Baaj/salestax-lookup/internal/report"
)

var errLookupUnavailable = errors.New("sales tax data unavailable")

func main() {
	if err := run(); err != nil {
		if msg := exitMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// exitMessage is what main prints before exiting non-zero. A failed lookup has
// already been logged once, so it prints nothing more.
func exitMessage(err error) string {
	if err == nil || errors.Is(err, errLookupUnavailable) {
		return ""
	}
	return fmt.Sprintf("salestax: %v", err)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("salestax lookup starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookup, err := app.NewLookupFromConfig(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize lookup", "error", err.Error())
		return err
	}
	defer func() {
		if err := lookup.Close(); err != nil {
			logger.WarnObj("lookup shutdown incomplete", "error", err.Error())
		}
	}()

	resp := lookup.SalesTax(ctx, cfg.LookupAddress)
	if resp == nil {
		return errLookupUnavailable
	}
	return report.Write(os.Stdout, resp)
}
