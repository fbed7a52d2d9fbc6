// Package trustpilot extracts review records from Trustpilot business
// listing pages. It is written against the browser substrate in
// lib/browser and never assumes a particular page-loading engine.
package trustpilot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"reviewlens-backend/lib/browser"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/trustpilot")

// Review is one raw review record extracted from a listing page, before
// deduplication, sentiment scoring and tagging.
type Review struct {
	CustomerName string
	Text         string
	// Rating is 1-5, or 0 when the star image could not be read.
	Rating int
	// Date is normalized to YYYY-MM-DD.
	Date string
	// Link is the review permalink, or empty when no extraction strategy
	// found one.
	Link string
}

type Client struct {
	session browser.Session
}

func NewClient(session browser.Session) *Client {
	return &Client{session: session}
}

func (c *Client) Close() error {
	return c.session.Close()
}

// PageURL appends the pagination parameter to a brand's base listing URL,
// dropping any query string the stored URL already carries.
func PageURL(sourceUrl string, page int) string {
	base := sourceUrl
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}

// FetchPage loads one listing page and extracts every review card on it.
// A returned error means the page could not be loaded or parsed at all;
// callers treat that the same as an empty page.
func (c *Client) FetchPage(ctx context.Context, pageUrl string) ([]Review, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	doc, err := c.session.Navigate(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load listing page")
		return nil, err
	}

	origin, err := pageOrigin(pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid listing url")
		return nil, err
	}

	reviews := extractReviews(doc, origin)
	span.SetAttributes(attribute.Int("review_count", len(reviews)))
	return reviews, nil
}

func pageOrigin(pageUrl string) (string, error) {
	u, err := url.Parse(pageUrl)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("listing url %q has no origin", pageUrl)
	}
	return u.Scheme + "://" + u.Host, nil
}
