package analytics

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/services/keywords"
)

var tracer = otel.Tracer("services/analytics")

// Filter narrows a brand's review set. Zero-value fields are not applied.
type Filter struct {
	Ratings    []int    `json:"ratings"`
	Sentiment  string   `json:"sentiment"`
	Categories []string `json:"categories"`
	// DateFrom and DateTo are inclusive bounds in YYYY-MM-DD form.
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// Review is the API-facing shape of a stored review, with tag columns
// decoded and keyword matches wrapped in <mark> tags.
type Review struct {
	ID                int64    `json:"id"`
	CustomerName      string   `json:"customer_name"`
	Text              string   `json:"text"`
	Date              string   `json:"date"`
	Rating            int      `json:"rating"`
	Link              string   `json:"link,omitempty"`
	SentimentScore    float64  `json:"sentiment_score"`
	SentimentCategory string   `json:"sentiment_category"`
	Categories        []string `json:"categories"`
	MatchedKeywords   []string `json:"matched_keywords"`
}

// ReviewPage is one page of filtered results plus pagination metadata.
type ReviewPage struct {
	Reviews    []Review `json:"reviews"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

const defaultPageSize = 20

type Service struct {
	qry *db.Queries
}

func NewService(database *sql.DB) *Service {
	return &Service{qry: db.New(database)}
}

// ListReviews returns the brand's reviews matching the filter, newest
// first, one page at a time. Matched keywords are highlighted in the text.
func (s *Service) ListReviews(ctx context.Context, brand string, filter Filter, page, pageSize int) (ReviewPage, error) {
	ctx, span := tracer.Start(ctx, "ListReviews")
	defer span.End()

	matched, err := s.filteredReviews(ctx, brand, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "list reviews")
		return ReviewPage{}, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pageReviews := matched[start:end]
	for i := range pageReviews {
		pageReviews[i].Text = Highlight(pageReviews[i].Text, pageReviews[i].MatchedKeywords)
	}

	return ReviewPage{
		Reviews:    pageReviews,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// filteredReviews loads, decodes, filters and sorts the brand's reviews
// newest first.
func (s *Service) filteredReviews(ctx context.Context, brand string, filter Filter) ([]Review, error) {
	rows, err := s.qry.ListReviewsByBrand(ctx, brand)
	if err != nil {
		return nil, err
	}

	matched := make([]Review, 0, len(rows))
	for _, row := range rows {
		review := decodeReview(row)
		if filter.matches(review) {
			matched = append(matched, review)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}

func decodeReview(row db.Review) Review {
	rating := 0
	if row.Rating.Valid {
		rating = int(row.Rating.Int64)
	}
	link := ""
	if row.ReviewLink.Valid {
		link = row.ReviewLink.String
	}
	return Review{
		ID:                row.ID,
		CustomerName:      row.CustomerName,
		Text:              row.Review,
		Date:              row.Date,
		Rating:            rating,
		Link:              link,
		SentimentScore:    row.SentimentScore,
		SentimentCategory: row.SentimentCategory,
		Categories:        keywords.DecodeList(row.Categories),
		MatchedKeywords:   keywords.DecodeList(row.MatchedKeywords),
	}
}

func (f Filter) matches(r Review) bool {
	if len(f.Ratings) > 0 {
		found := false
		for _, rating := range f.Ratings {
			if r.Rating == rating {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Sentiment != "" && !strings.EqualFold(f.Sentiment, r.SentimentCategory) {
		return false
	}
	if len(f.Categories) > 0 && !hasAnyCategory(r.Categories, f.Categories) {
		return false
	}
	if f.DateFrom != "" && r.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && r.Date > f.DateTo {
		return false
	}
	return true
}

func hasAnyCategory(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
