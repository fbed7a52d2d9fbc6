package main

import (
	"log/slog"
	"time"

	"reviewlens-backend/internal/api"
	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/browser"
	"reviewlens-backend/lib/configutil"
	configsqlite "reviewlens-backend/lib/configutil/sqlite"
	"reviewlens-backend/lib/scrapers/trustpilot"
	"reviewlens-backend/lib/telemetry"
	"reviewlens-backend/lib/util/serviceutil"
	"reviewlens-backend/services/analytics"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/reports"
	"reviewlens-backend/services/reviews"
	"reviewlens-backend/services/sentiment"
)

type CrawlerConfig struct {
	MinDelaySeconds int `json:"min_delay_seconds"`
	MaxDelaySeconds int `json:"max_delay_seconds"`
	MaxEmptyPages   int `json:"max_empty_pages"`
}

type Config struct {
	Port     int                 `json:"port"`
	Debug    bool                `json:"debug"`
	Database configsqlite.Struct `json:"database"`
	Crawler  CrawlerConfig       `json:"crawler"`
	Reports  reports.Config      `json:"reports"`
}

func main() {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8200
	}

	telemetry.InitSlog(config.Debug)

	slog.Info("opening database...")
	sqlite, err := config.Database.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	session, err := browser.NewHttpSession(browser.HttpSessionOptions{})
	if err != nil {
		serviceutil.Fatal("failed to create browser session", err)
	}
	client := trustpilot.NewClient(session)

	tagger, err := keywords.NewTagger()
	if err != nil {
		serviceutil.Fatal("failed to initialize lemmatizer", err)
	}
	keywordSvc := keywords.NewService(sqlite, tagger)
	analyticsSvc := analytics.NewService(sqlite)
	reviewSvc := reviews.NewService(sqlite, client, sentiment.NewVADER(), keywordSvc, reviews.CrawlConfig{
		MinDelay:      time.Duration(config.Crawler.MinDelaySeconds) * time.Second,
		MaxDelay:      time.Duration(config.Crawler.MaxDelaySeconds) * time.Second,
		MaxEmptyPages: config.Crawler.MaxEmptyPages,
	})

	server := api.NewServer(api.ServerParams{
		Reviews:   reviewSvc,
		Analytics: analyticsSvc,
		Keywords:  keywordSvc,
		Reports:   reports.NewService(config.Reports, analyticsSvc),
		Registry:  reviews.NewRegistry(),
	})

	ctx := serviceutil.SignalContext()

	go serviceutil.StartHttpServer(config.Port, server)

	telemetry.SetupFromEnv(ctx, "cmd/reviewlens-server")
	telemetry.InstrumentPerfStats(ctx)

	<-ctx.Done()
}
