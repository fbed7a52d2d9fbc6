package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/scrapers/trustpilot"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/sentiment"
)

var tracer = otel.Tracer("services/reviews")

// Fetcher retrieves one listing page worth of review records. Implemented
// by *trustpilot.Client; tests substitute a fake.
type Fetcher interface {
	FetchPage(ctx context.Context, pageUrl string) ([]trustpilot.Review, error)
}

// CrawlConfig tunes the pacing and persistence of the crawl loop. The
// zero value gets sensible defaults from NewService.
type CrawlConfig struct {
	// MinDelay and MaxDelay bound the randomized pause between pages.
	MinDelay time.Duration `json:"min_delay"`
	MaxDelay time.Duration `json:"max_delay"`
	// MaxEmptyPages is how many consecutive empty or unparseable pages
	// are tolerated before the crawl gives up.
	MaxEmptyPages int `json:"max_empty_pages"`
}

type Service struct {
	sqldb  *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx

	fetcher  Fetcher
	scorer   sentiment.Scorer
	keywords keywords.Service

	config CrawlConfig
}

func NewService(
	database *sql.DB,
	fetcher Fetcher,
	scorer sentiment.Scorer,
	keywordSvc keywords.Service,
	config CrawlConfig,
) *Service {
	if config.MinDelay <= 0 {
		config.MinDelay = 3 * time.Second
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay + 4*time.Second
	}
	if config.MaxEmptyPages <= 0 {
		config.MaxEmptyPages = 3
	}
	return &Service{
		sqldb:    database,
		qry:      db.New(database),
		makeTx:   db.NewMakeTx(database),
		fetcher:  fetcher,
		scorer:   scorer,
		keywords: keywordSvc,
		config:   config,
	}
}

// Brand is a configured crawl target.
type Brand struct {
	ID          string `json:"id"`
	SourceUrl   string `json:"source_url"`
	DisplayName string `json:"display_name"`
}

func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	ctx, span := tracer.Start(ctx, "ListBrands")
	defer span.End()

	rows, err := s.qry.ListBrands(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "list brands")
		return nil, err
	}
	brands := make([]Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, Brand{
			ID:          row.BrandID,
			SourceUrl:   row.SourceUrl,
			DisplayName: row.BrandDisplayName,
		})
	}
	return brands, nil
}

func (s *Service) GetBrand(ctx context.Context, brandID string) (Brand, error) {
	row, err := s.qry.GetBrandSource(ctx, brandID)
	if err != nil {
		return Brand{}, err
	}
	return Brand{
		ID:          row.BrandID,
		SourceUrl:   row.SourceUrl,
		DisplayName: row.BrandDisplayName,
	}, nil
}

// ResolveBrand maps loosely spelled user input onto a configured brand id.
// Exact matches win; otherwise the closest stored id by Jaro-Winkler
// similarity is accepted when it clears a conservative threshold.
func (s *Service) ResolveBrand(ctx context.Context, input string) (string, error) {
	if _, err := s.qry.GetBrandSource(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	rows, err := s.qry.ListBrands(ctx)
	if err != nil {
		return "", err
	}
	best := ""
	bestScore := 0.0
	for _, row := range rows {
		score := matchr.JaroWinkler(input, row.BrandID, true)
		if score > bestScore {
			best, bestScore = row.BrandID, score
		}
	}
	if bestScore >= 0.85 {
		slog.InfoContext(ctx, "resolved brand by fuzzy match",
			"input", input, "brand", best, "score", bestScore)
		return best, nil
	}
	if best != "" {
		return "", fmt.Errorf("unknown brand %q (closest match: %q)", input, best)
	}
	return "", fmt.Errorf("unknown brand %q", input)
}

// SetBrandSource registers or updates the listing page a brand is crawled
// from. The display name defaults to the brand id until a crawl extracts
// the real one.
func (s *Service) SetBrandSource(ctx context.Context, brandID, sourceUrl, displayName string) error {
	if brandID == "" || sourceUrl == "" {
		return fmt.Errorf("brand id and source url are required")
	}
	if displayName == "" {
		displayName = brandID
	}
	return s.qry.SetBrandSource(ctx, db.SetBrandSourceParams{
		BrandID:          brandID,
		SourceUrl:        sourceUrl,
		BrandDisplayName: displayName,
	})
}

// DeleteBrand removes a brand and everything recorded under it.
func (s *Service) DeleteBrand(ctx context.Context, brandID string) error {
	ctx, span := tracer.Start(ctx, "DeleteBrand")
	defer span.End()

	tx, discard, commit, err := s.makeTx()
	if err != nil {
		return err
	}
	defer discard()

	if err := tx.DeleteBrandReviews(ctx, brandID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := tx.DeleteBrandKeywords(ctx, brandID); err != nil {
		span.RecordError(err)
		return err
	}
	if err := tx.DeleteBrandSource(ctx, brandID); err != nil {
		span.RecordError(err)
		return err
	}
	return commit()
}

func (s *Service) CountReviews(ctx context.Context, brandID string) (int64, error) {
	return s.qry.CountReviews(ctx, brandID)
}
