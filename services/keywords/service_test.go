package keywords

import (
	"context"
	"testing"
	"time"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/testutil"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestServiceKeywordConfig(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/keywords",
		DbSchema: db.Schema,
	})
	defer cleanup()

	tagger, err := NewTagger()
	require.NoError(t, err)
	service := NewService(setup.DB, tagger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err = service.SetBrandCategory(ctx, "acme", "Sizing & Fit", []string{"small", "runs small"})
	require.NoError(t, err)
	err = service.SetGlobalCategory(ctx, "Delivery", []string{"late", "courier"})
	require.NoError(t, err)

	brand, err := service.BrandKeywords(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"Sizing & Fit": {"small", "runs small"},
	}, brand)

	global, err := service.GlobalKeywords(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"Delivery": {"late", "courier"},
	}, global)

	// categories are upserted, not duplicated
	err = service.SetBrandCategory(ctx, "acme", "Sizing & Fit", []string{"tight"})
	require.NoError(t, err)
	brand, err = service.BrandKeywords(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, []string{"tight"}, brand["Sizing & Fit"])

	err = service.SetBrandCategory(ctx, "acme", "", []string{"x"})
	require.Error(t, err)
}

func TestRetag(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/keywords/retag",
		DbSchema: db.Schema,
	})
	defer cleanup()

	tagger, err := NewTagger()
	require.NoError(t, err)
	service := NewService(setup.DB, tagger)
	qry := db.New(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	insert := func(brand, text, cats, kws string) {
		err := qry.CreateReview(ctx, db.CreateReviewParams{
			BrandName:       brand,
			CustomerName:    "c",
			Review:          text,
			Date:            "2025-07-07",
			Categories:      cats,
			MatchedKeywords: kws,
		})
		require.NoError(t, err)
	}

	insert("acme", "the refund process took a month", "[]", "[]")
	insert("acme", "lovely colour, fits perfectly", `["Fit"]`, `["fits"]`)
	insert("other", "still waiting on my refund", "[]", "[]")

	// brand scope only touches that brand's rows
	updated, err := service.Retag(ctx, "acme", "Customer Service", []string{"refund"})
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	rows, err := qry.ListReviewsByBrand(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		if row.Review == "the refund process took a month" {
			require.Equal(t, `["Customer Service"]`, row.Categories)
			require.Equal(t, `["refund"]`, row.MatchedKeywords)
		} else {
			// untouched
			require.Equal(t, `["Fit"]`, row.Categories)
		}
	}

	// global scope reaches every brand, merging with existing tags
	updated, err = service.Retag(ctx, "", "Customer Service", []string{"refund"})
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	otherRows, err := qry.ListReviewsByBrand(ctx, "other")
	require.NoError(t, err)
	require.Len(t, otherRows, 1)
	require.Equal(t, `["Customer Service"]`, otherRows[0].Categories)
}
