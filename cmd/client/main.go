package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrijs2005/legacyvault/internal/client/cli"
	"github.com/dmitrijs2005/legacyvault/internal/client/config"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	// The REPL owns stdout, so logs go to stderr.
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			log.Printf("sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			handler = logging.NewMultiHandler(handler, logging.NewSentryHandler(nil, slog.LevelError))
		}
	}

	logger := logging.NewSlogLogger(slog.New(handler))

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
