package reviews

import (
	"context"
	"fmt"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/scrapers/trustpilot"
)

// hashPrefixLen is the number of leading characters of review text that
// participate in the content hash. Long enough to make collisions between
// different reviews from the same customer on the same day unlikely.
const hashPrefixLen = 200

type customerDate struct {
	customer string
	date     string
}

// identitySets holds every identity a brand's stored reviews answer to:
// permalinks, (customer, date) pairs and content hashes. Loaded once per
// page so mid-crawl inserts from the same run are seen by later pages.
type identitySets struct {
	links         map[string]struct{}
	customerDates map[customerDate]struct{}
	contentHashes map[string]struct{}
}

func loadIdentitySets(ctx context.Context, qry *db.Queries, brand string) (*identitySets, error) {
	rows, err := qry.ListReviewIdentities(ctx, brand)
	if err != nil {
		return nil, err
	}

	sets := &identitySets{
		links:         make(map[string]struct{}, len(rows)),
		customerDates: make(map[customerDate]struct{}, len(rows)),
		contentHashes: make(map[string]struct{}, len(rows)),
	}
	for _, row := range rows {
		if row.ReviewLink.Valid && row.ReviewLink.String != "" {
			sets.links[row.ReviewLink.String] = struct{}{}
		}
		if row.CustomerName != "" && row.Date != "" {
			sets.customerDates[customerDate{row.CustomerName, row.Date}] = struct{}{}
		}
		if row.ReviewPrefix != "" && row.CustomerName != "" && row.Date != "" {
			sets.contentHashes[contentHashFromPrefix(row.ReviewPrefix, row.CustomerName, row.Date)] = struct{}{}
		}
	}
	return sets, nil
}

func contentHash(text, customer, date string) string {
	runes := []rune(text)
	if len(runes) > hashPrefixLen {
		runes = runes[:hashPrefixLen]
	}
	return contentHashFromPrefix(string(runes), customer, date)
}

func contentHashFromPrefix(prefix, customer, date string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, customer, date)
}

// isDuplicate applies the hybrid identity policy. A permalink, when
// present, is authoritative on its own: two records with the same link are
// the same review no matter what the text says. Only linkless candidates
// fall back to the composite checks.
func (s *identitySets) isDuplicate(r trustpilot.Review) bool {
	if r.Link != "" {
		_, dup := s.links[r.Link]
		return dup
	}

	if _, dup := s.customerDates[customerDate{r.CustomerName, r.Date}]; dup {
		return true
	}
	if r.Text != "" && r.CustomerName != "" && r.Date != "" {
		if _, dup := s.contentHashes[contentHash(r.Text, r.CustomerName, r.Date)]; dup {
			return true
		}
	}
	return false
}

// filterNew returns the candidates that are not duplicates of any stored
// review or of an earlier candidate in the same batch, preserving input
// order.
func (s *identitySets) filterNew(candidates []trustpilot.Review) []trustpilot.Review {
	fresh := make([]trustpilot.Review, 0, len(candidates))
	for _, c := range candidates {
		if s.isDuplicate(c) {
			continue
		}
		fresh = append(fresh, c)
		s.observe(c)
	}
	return fresh
}

// observe records an accepted candidate's identities so the rest of the
// batch deduplicates against it too.
func (s *identitySets) observe(r trustpilot.Review) {
	if r.Link != "" {
		s.links[r.Link] = struct{}{}
	}
	if r.CustomerName != "" && r.Date != "" {
		s.customerDates[customerDate{r.CustomerName, r.Date}] = struct{}{}
		if r.Text != "" {
			s.contentHashes[contentHash(r.Text, r.CustomerName, r.Date)] = struct{}{}
		}
	}
}
