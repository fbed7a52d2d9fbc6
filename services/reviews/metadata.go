package reviews

import (
	"context"
	"log/slog"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/scrapers/trustpilot"
)

// MetadataFetcher is the optional profile-scraping side of a Fetcher.
// *trustpilot.Client implements it; test fakes usually do not.
type MetadataFetcher interface {
	ExtractBrandName(ctx context.Context, profileUrl string) (string, error)
	FetchLogo(ctx context.Context, profileUrl string) (trustpilot.Logo, error)
}

// RefreshBrandMetadata scrapes the brand's profile page for its display
// name and logo and stores both. Metadata is cosmetic, so every failure is
// logged and swallowed rather than surfaced.
func (s *Service) RefreshBrandMetadata(ctx context.Context, brandID string) {
	meta, ok := s.fetcher.(MetadataFetcher)
	if !ok {
		return
	}

	source, err := s.qry.GetBrandSource(ctx, brandID)
	if err != nil || source.SourceUrl == "" {
		return
	}

	name, err := meta.ExtractBrandName(ctx, source.SourceUrl)
	if err != nil {
		slog.WarnContext(ctx, "failed to extract brand display name",
			"brand", brandID, "error", err)
	} else if name != "" && name != source.BrandDisplayName {
		err = s.qry.SetBrandSource(ctx, db.SetBrandSourceParams{
			BrandID:          brandID,
			SourceUrl:        source.SourceUrl,
			BrandDisplayName: name,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to store brand display name",
				"brand", brandID, "error", err)
		}
	}

	logo, err := meta.FetchLogo(ctx, source.SourceUrl)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch brand logo", "brand", brandID, "error", err)
		return
	}
	if len(logo.Data) == 0 {
		return
	}
	err = s.qry.SetBrandLogo(ctx, db.SetBrandLogoParams{
		LogoData: logo.Data,
		LogoMime: logo.Mime,
		BrandID:  brandID,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to store brand logo", "brand", brandID, "error", err)
	}
}

// BrandLogo returns the stored logo bytes and mime type, both empty when
// no logo has been scraped yet.
func (s *Service) BrandLogo(ctx context.Context, brandID string) ([]byte, string, error) {
	source, err := s.qry.GetBrandSource(ctx, brandID)
	if err != nil {
		return nil, "", err
	}
	return source.LogoData, source.LogoMime, nil
}
