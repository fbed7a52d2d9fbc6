package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/scrapers/trustpilot"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/sentiment"
)

// CrawlRequest describes one crawl run against a brand's listing pages.
type CrawlRequest struct {
	Brand string
	// MaxPages caps how many listing pages are visited. Zero means no cap;
	// the stop conditions end the run instead.
	MaxPages int
	// StartPage lets a run resume mid-listing. Zero means page 1.
	StartPage int
	// IsNewBrand marks a first-ever crawl: deduplication is skipped and
	// records without a permalink are kept under a synthesized one.
	IsNewBrand bool
}

// CrawlBrand walks the brand's review listing page by page, persisting the
// records it has not seen before. It returns how many new reviews were
// stored. Running out of pages, hitting MaxPages or reaching already
// stored content are normal ends of the run, not errors.
func (s *Service) CrawlBrand(ctx context.Context, req CrawlRequest) (int, error) {
	ctx, span := tracer.Start(ctx, "CrawlBrand")
	defer span.End()
	span.SetAttributes(attribute.String("brand", req.Brand))

	source, err := s.qry.GetBrandSource(ctx, req.Brand)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && source.SourceUrl == "") {
		slog.WarnContext(ctx, "brand has no source url configured, skipping crawl",
			"brand", req.Brand)
		return 0, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "load brand source")
		return 0, err
	}

	brandKws, err := s.keywords.BrandKeywords(ctx, req.Brand)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	globalKws, err := s.keywords.GlobalKeywords(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	if req.IsNewBrand {
		s.RefreshBrandMetadata(ctx, req.Brand)
	}

	page := req.StartPage
	if page <= 0 {
		page = 1
	}

	totalNew := 0
	emptyPages := 0

	for {
		if err := ctx.Err(); err != nil {
			slog.InfoContext(ctx, "crawl cancelled",
				"brand", req.Brand, "page", page, "new_reviews", totalNew)
			return totalNew, err
		}
		if req.MaxPages > 0 && page > req.MaxPages {
			break
		}

		pageUrl := trustpilot.PageURL(source.SourceUrl, page)
		records, err := s.fetcher.FetchPage(ctx, pageUrl)
		if err != nil {
			slog.WarnContext(ctx, "page fetch failed, treating as empty",
				"brand", req.Brand, "page", page, "error", err)
			records = nil
		}

		if len(records) == 0 {
			emptyPages++
			if emptyPages >= s.config.MaxEmptyPages {
				slog.InfoContext(ctx, "stopping crawl after consecutive empty pages",
					"brand", req.Brand, "page", page, "empty_pages", emptyPages)
				break
			}
			page++
			if err := s.pauseBetweenPages(ctx); err != nil {
				return totalNew, err
			}
			continue
		}
		emptyPages = 0

		var candidates []trustpilot.Review
		if req.IsNewBrand {
			candidates = placeholderLinks(records, pageUrl)
		} else {
			sets, err := loadIdentitySets(ctx, s.qry, req.Brand)
			if err != nil {
				span.RecordError(err)
				return totalNew, err
			}
			linked := dropLinkless(ctx, records, req.Brand)
			candidates = sets.filterNew(linked)
			records = linked
		}

		inserted, err := s.persistPage(ctx, req.Brand, candidates, brandKws, globalKws)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "persist page")
			return totalNew, err
		}
		totalNew += inserted
		slog.InfoContext(ctx, "crawled page",
			"brand", req.Brand, "page", page,
			"fetched", len(records), "new", inserted)

		// A page that is only partly new means the crawl has caught up
		// with previously stored content, so everything beyond it is old.
		if len(candidates) < len(records) {
			slog.InfoContext(ctx, "reached previously seen reviews, stopping crawl",
				"brand", req.Brand, "page", page)
			break
		}

		page++
		if err := s.pauseBetweenPages(ctx); err != nil {
			return totalNew, err
		}
	}

	span.SetAttributes(attribute.Int("new_reviews", totalNew))
	return totalNew, nil
}

// dropLinkless removes records the parser found no permalink for. On
// incremental crawls such records cannot be reliably deduplicated against
// future runs, so they are logged and skipped.
func dropLinkless(ctx context.Context, records []trustpilot.Review, brand string) []trustpilot.Review {
	kept := make([]trustpilot.Review, 0, len(records))
	for _, r := range records {
		if r.Link == "" {
			slog.WarnContext(ctx, "dropping review without permalink",
				"brand", brand, "customer", r.CustomerName, "date", r.Date)
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// placeholderLinks fills in synthetic permalinks for first-crawl records
// that lack one, keyed by page url and position so the unique constraint
// on (brand, link) still holds.
func placeholderLinks(records []trustpilot.Review, pageUrl string) []trustpilot.Review {
	out := make([]trustpilot.Review, len(records))
	for i, r := range records {
		if r.Link == "" {
			r.Link = fmt.Sprintf("%s#card-%d", pageUrl, i)
		}
		out[i] = r
	}
	return out
}

// persistPage scores, tags and inserts one page of records in a single
// transaction. A record that fails scoring or insertion is logged and
// skipped rather than failing the page.
func (s *Service) persistPage(
	ctx context.Context,
	brand string,
	records []trustpilot.Review,
	brandKws, globalKws map[string][]string,
) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, discard, commit, err := s.makeTx()
	if err != nil {
		return 0, err
	}
	defer discard()

	inserted := 0
	for _, r := range records {
		score, err := s.scorer.Score(r.Text)
		if err != nil {
			slog.WarnContext(ctx, "sentiment scoring failed, skipping review",
				"brand", brand, "link", r.Link, "error", err)
			continue
		}
		categories, matched := s.keywords.Tagger().Tag(r.Text, brandKws, globalKws)

		err = tx.CreateReview(ctx, db.CreateReviewParams{
			BrandName:         brand,
			CustomerName:      r.CustomerName,
			Review:            r.Text,
			Date:              r.Date,
			Rating:            ratingValue(r.Rating),
			ReviewLink:        sql.NullString{String: r.Link, Valid: r.Link != ""},
			SentimentScore:    score,
			SentimentCategory: sentiment.Categorize(score),
			Categories:        keywords.EncodeList(categories),
			MatchedKeywords:   keywords.EncodeList(matched),
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to insert review, skipping",
				"brand", brand, "link", r.Link, "error", err)
			continue
		}
		inserted++
	}

	if err := commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func ratingValue(rating int) sql.NullInt64 {
	if rating <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(rating), Valid: true}
}

// pauseBetweenPages sleeps a randomized interval so page requests do not
// arrive at machine cadence. Returns early when the context is cancelled.
func (s *Service) pauseBetweenPages(ctx context.Context) error {
	ms, err := random.IntRange(int(s.config.MinDelay.Milliseconds()), int(s.config.MaxDelay.Milliseconds()))
	if err != nil {
		ms = int(s.config.MinDelay.Milliseconds())
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
