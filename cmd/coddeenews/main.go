package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/osero2000/coddee-news-app/internal/app"
	"github.com/osero2000/coddee-news-app/internal/config"
	"github.com/osero2000/coddee-news-app/internal/logging"
)

func main() {
	once := flag.Bool("once", false, "run a single ingestion pass and exit")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *once {
		count, err := application.RunOnce(ctx)
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("合計 %d 件の記事を保存しました。\n", count)
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
