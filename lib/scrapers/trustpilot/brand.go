package trustpilot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"reviewlens-backend/lib/htmlutil"
	"reviewlens-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var reviewsSuffixRegex = regexp.MustCompile(`Reviews.*`)

// ExtractBrandName reads the official display name off a business profile
// page, trying the structured display-name span first and falling back to
// the page heading with its "Reviews ..." suffix stripped.
func (c *Client) ExtractBrandName(ctx context.Context, profileUrl string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:ExtractBrandName")
	defer span.End()
	span.SetAttributes(attribute.String("url", profileUrl))

	doc, err := c.session.Navigate(ctx, profileUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load profile page")
		return "", err
	}

	if elem := doc.Query(`span[class*='title_title_displayName']`); elem != nil {
		if name := htmlutil.CleanText(elem.Text()); name != "" {
			return name, nil
		}
	}
	for _, selector := range []string{"h1", "h1[data-business-unit-title-typography]"} {
		if elem := doc.Query(selector); elem != nil {
			name := htmlutil.CleanText(reviewsSuffixRegex.ReplaceAllString(elem.Text(), ""))
			if name != "" {
				return name, nil
			}
		}
	}
	return "", fmt.Errorf("brand name not found on %s", profileUrl)
}

// Logo is a downloaded brand logo image.
type Logo struct {
	Data []byte
	Mime string
}

// FetchLogo locates the business profile image on the page and downloads
// it.
func (c *Client) FetchLogo(ctx context.Context, profileUrl string) (Logo, error) {
	ctx, span := tracer.Start(ctx, "client:FetchLogo")
	defer span.End()
	span.SetAttributes(attribute.String("url", profileUrl))

	doc, err := c.session.Navigate(ctx, profileUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load profile page")
		return Logo{}, err
	}

	elem := doc.Query(`img[class*='business-profile-image']`)
	if elem == nil {
		return Logo{}, fmt.Errorf("no profile image on %s", profileUrl)
	}
	src, ok := elem.Attr("src")
	if !ok || src == "" {
		return Logo{}, fmt.Errorf("profile image on %s has no src", profileUrl)
	}

	client := resty.New().SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "scrapers/trustpilot/logo")

	res, err := client.R().SetContext(ctx).Get(src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download logo")
		return Logo{}, err
	}
	if res.StatusCode() >= 400 {
		return Logo{}, fmt.Errorf("logo download %s: status %d", src, res.StatusCode())
	}

	mime := res.Header().Get("Content-Type")
	if mime == "" {
		mime = mimeFromUrl(src)
	}
	return Logo{Data: res.Body(), Mime: mime}, nil
}

func mimeFromUrl(src string) string {
	ext := src
	if i := strings.IndexByte(ext, '?'); i >= 0 {
		ext = ext[:i]
	}
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = strings.ToLower(ext[i+1:])
	}
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
