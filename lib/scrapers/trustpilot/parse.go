package trustpilot

import (
	"regexp"
	"strconv"
	"strings"

	"reviewlens-backend/lib/browser"
	"reviewlens-backend/lib/htmlutil"
)

const dateOfExperiencePrefix = "Date of experience:"

var ratingRegex = regexp.MustCompile(`Rated (\d) out of 5 stars`)

// extractReviews walks every review card on a listing document. Cards
// missing a customer name or a parseable date are dropped; everything else
// degrades to an empty field.
func extractReviews(doc browser.Document, origin string) []Review {
	cards := doc.QueryAll("article")
	reviews := make([]Review, 0, len(cards))

	for _, card := range cards {
		name := extractCustomerName(card)
		if name == "" {
			continue
		}
		date, ok := extractDate(card)
		if !ok {
			continue
		}

		title := ""
		if titleElem := card.Query("h2"); titleElem != nil {
			title = htmlutil.CleanText(titleElem.Text())
		}
		body := extractBody(card)
		if body == "" {
			// very short reviews render title-only cards
			body = title
		}

		reviews = append(reviews, Review{
			CustomerName: name,
			Text:         body,
			Rating:       extractRating(card),
			Date:         date,
			Link:         extractLink(card, origin),
		})
	}
	return reviews
}

func extractCustomerName(card browser.Node) string {
	elem := card.Query("[data-consumer-name-typography]")
	if elem == nil {
		return ""
	}
	return htmlutil.CleanText(elem.Text())
}

func extractDate(card browser.Node) (string, bool) {
	for _, p := range card.QueryAll("p") {
		text := strings.TrimSpace(p.Text())
		if !strings.Contains(text, dateOfExperiencePrefix) {
			continue
		}
		raw := strings.TrimSpace(strings.Replace(text, dateOfExperiencePrefix, "", 1))
		parsed, ok := ParseDate(raw)
		if !ok {
			return "", false
		}
		return parsed.Format(DateFormat), true
	}
	return "", false
}

func extractRating(card browser.Node) int {
	img := card.Query(`img[alt*="Rated"]`)
	if img == nil {
		return 0
	}
	alt, ok := img.Attr("alt")
	if !ok {
		return 0
	}
	groups := ratingRegex.FindStringSubmatch(alt)
	if len(groups) < 2 {
		return 0
	}
	rating, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0
	}
	return rating
}

func extractBody(card browser.Node) string {
	if elem := card.Query("[data-service-review-text-typography]"); elem != nil {
		return htmlutil.CleanText(elem.Text())
	}
	// fall back to the first paragraph that isn't the experience date
	for _, p := range card.QueryAll("p") {
		text := htmlutil.CleanText(p.Text())
		if text == "" || strings.Contains(text, dateOfExperiencePrefix) {
			continue
		}
		return text
	}
	return ""
}

// extractLink tries the permalink strategies in order: a structured title
// link, any anchor pointing at an individual review, then a review id
// carried in a data attribute.
func extractLink(card browser.Node, origin string) string {
	if link := card.Query(`h2 a[href*="/review/"]`); link != nil {
		if href, ok := link.Attr("href"); ok && href != "" {
			return absoluteLink(href, origin)
		}
	}

	for _, link := range card.QueryAll(`a[href*="/review/"]`) {
		if href, ok := link.Attr("href"); ok && strings.Contains(href, "/review/") {
			return absoluteLink(href, origin)
		}
	}

	for _, attr := range []string{"data-review-id", "data-testid"} {
		if id, ok := card.Attr(attr); ok && id != "" {
			return origin + "/review/" + id
		}
	}

	return ""
}

func absoluteLink(href, origin string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return origin + href
	default:
		return origin + "/" + href
	}
}
