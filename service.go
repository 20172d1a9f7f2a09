package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"ewintr.nl/ytdigest/digest"
	"ewintr.nl/ytdigest/fetcher"
	"ewintr.nl/ytdigest/handler"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Error("unable to load .env file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	apiKey := getParam("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		logger.Error("YOUTUBE_API_KEY is not set")
		os.Exit(1)
	}

	niches := digest.DefaultNiches()
	if nichesFile := getParam("NICHES_FILE", ""); nichesFile != "" {
		var err error
		niches, err = digest.LoadNiches(nichesFile)
		if err != nil {
			logger.Error("unable to load niches", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("niches loaded", slog.Int("count", niches.Len()))

	pageDelay, err := time.ParseDuration(getParam("PAGE_DELAY", digest.DefaultPageDelay.String()))
	if err != nil {
		logger.Error("unable to parse page delay", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("unable to create youtube service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	yt := fetcher.NewYoutube(ytClient)
	pipeline := digest.NewPipeline(yt, yt, niches, pageDelay, logger)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", slog.String("error", err.Error()))
		os.Exit(1)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.NewServer(pipeline, logger),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("unable to shut down http server", slog.String("error", err.Error()))
	}
	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
