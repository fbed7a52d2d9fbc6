package keywords

import (
	"context"
	"database/sql"
	"fmt"

	"reviewlens-backend/internal/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/keywords")

type Service struct {
	qry    *db.Queries
	tagger *Tagger
}

func NewService(database *sql.DB, tagger *Tagger) Service {
	return Service{
		qry:    db.New(database),
		tagger: tagger,
	}
}

func (s Service) Tagger() *Tagger {
	return s.tagger
}

// BrandKeywords returns the brand-scoped category -> keyword-list map.
func (s Service) BrandKeywords(ctx context.Context, brandID string) (map[string][]string, error) {
	ctx, span := tracer.Start(ctx, "BrandKeywords")
	defer span.End()
	span.SetAttributes(attribute.String("brand", brandID))

	rows, err := s.qry.GetBrandKeywords(ctx, brandID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make(map[string][]string, len(rows))
	for _, row := range rows {
		out[row.Category] = DecodeList(row.Keywords)
	}
	return out, nil
}

// GlobalKeywords returns the global category -> keyword-list map.
func (s Service) GlobalKeywords(ctx context.Context) (map[string][]string, error) {
	ctx, span := tracer.Start(ctx, "GlobalKeywords")
	defer span.End()

	rows, err := s.qry.GetGlobalKeywords(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make(map[string][]string, len(rows))
	for _, row := range rows {
		out[row.Category] = DecodeList(row.Keywords)
	}
	return out, nil
}

func (s Service) SetBrandCategory(ctx context.Context, brandID, category string, kws []string) error {
	ctx, span := tracer.Start(ctx, "SetBrandCategory")
	defer span.End()
	span.SetAttributes(attribute.String("brand", brandID), attribute.String("category", category))

	if category == "" {
		return fmt.Errorf("category name must not be empty")
	}
	err := s.qry.SetBrandKeywords(ctx, db.SetBrandKeywordsParams{
		BrandID:  brandID,
		Category: category,
		Keywords: EncodeList(kws),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Service) SetGlobalCategory(ctx context.Context, category string, kws []string) error {
	ctx, span := tracer.Start(ctx, "SetGlobalCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category", category))

	if category == "" {
		return fmt.Errorf("category name must not be empty")
	}
	err := s.qry.SetGlobalKeywords(ctx, db.SetGlobalKeywordsParams{
		Category: category,
		Keywords: EncodeList(kws),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
