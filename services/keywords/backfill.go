package keywords

import (
	"context"
	"log/slog"
	"sort"

	"reviewlens-backend/internal/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Retag applies newly registered keywords to already-stored reviews without
// re-crawling. brandID == "" retags every brand's reviews (global scope).
// Matched reviews get the category and the matched keywords merged into
// their stored tag sets; reviews that match nothing are left untouched.
// Returns the number of rewritten rows.
func (s Service) Retag(ctx context.Context, brandID, category string, newKeywords []string) (int, error) {
	ctx, span := tracer.Start(ctx, "Retag")
	defer span.End()
	span.SetAttributes(
		attribute.String("brand", brandID),
		attribute.String("category", category),
		attribute.Int("keyword_count", len(newKeywords)),
	)

	var reviews []db.Review
	var err error
	if brandID == "" {
		reviews, err = s.qry.ListAllReviews(ctx)
	} else {
		reviews, err = s.qry.ListReviewsByBrand(ctx, brandID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	updated := 0
	for _, review := range reviews {
		matched := s.tagger.MatchingKeywords(review.Review, newKeywords)
		if len(matched) == 0 {
			continue
		}

		categories := mergeSet(DecodeList(review.Categories), []string{category})
		matchedKws := mergeSet(DecodeList(review.MatchedKeywords), matched)

		err := s.qry.UpdateReviewTags(ctx, db.UpdateReviewTagsParams{
			Categories:      EncodeList(categories),
			MatchedKeywords: EncodeList(matchedKws),
			ID:              review.ID,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to update review tags", "id", review.ID, "err", err)
			continue
		}
		updated++
	}

	span.SetAttributes(attribute.Int("updated", updated))
	return updated, nil
}

func mergeSet(existing, add []string) []string {
	set := make(map[string]struct{}, len(existing)+len(add))
	for _, v := range existing {
		set[v] = struct{}{}
	}
	for _, v := range add {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
