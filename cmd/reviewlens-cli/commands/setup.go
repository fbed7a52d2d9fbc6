package commands

import (
	"database/sql"
	"time"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/browser"
	"reviewlens-backend/lib/configutil"
	configsqlite "reviewlens-backend/lib/configutil/sqlite"
	"reviewlens-backend/lib/scrapers/trustpilot"
	"reviewlens-backend/lib/util/serviceutil"
	"reviewlens-backend/services/analytics"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/reports"
	"reviewlens-backend/services/reviews"
	"reviewlens-backend/services/sentiment"

	_ "modernc.org/sqlite"
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

type backend struct {
	config    Config
	sqlite    *sql.DB
	reviews   *reviews.Service
	keywords  keywords.Service
	analytics *analytics.Service
	reports   *reports.Service
}

// openBackend wires the full service stack from config.json5, the same
// way the server binary does.
func openBackend() backend {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	sqlite, err := config.Database.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	session, err := browser.NewHttpSession(browser.HttpSessionOptions{})
	if err != nil {
		serviceutil.Fatal("failed to create browser session", err)
	}

	tagger, err := keywords.NewTagger()
	if err != nil {
		serviceutil.Fatal("failed to initialize lemmatizer", err)
	}
	keywordSvc := keywords.NewService(sqlite, tagger)
	analyticsSvc := analytics.NewService(sqlite)

	return backend{
		config:    config,
		sqlite:    sqlite,
		keywords:  keywordSvc,
		analytics: analyticsSvc,
		reports:   reports.NewService(config.Reports, analyticsSvc),
		reviews: reviews.NewService(sqlite, trustpilot.NewClient(session),
			sentiment.NewVADER(), keywordSvc, reviews.CrawlConfig{
				MinDelay:      time.Duration(config.Crawler.MinDelaySeconds) * time.Second,
				MaxDelay:      time.Duration(config.Crawler.MaxDelaySeconds) * time.Second,
				MaxEmptyPages: config.Crawler.MaxEmptyPages,
			}),
	}
}
