package browser

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"reviewlens-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type HttpSessionOptions struct {
	// Timeout bounds a single page load. Zero means 60 seconds.
	Timeout time.Duration
}

// httpSession fetches pages over plain HTTP and parses the served markup.
// Review listing pages on the sites we target are server-rendered, so a
// full browser engine is not required; the cloudflare bypass transport and
// a desktop user agent are enough to get the real document.
type httpSession struct {
	http *resty.Client
}

func NewHttpSession(opts HttpSessionOptions) (Session, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 60
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "browser/http")

	return &httpSession{http: client}, nil
}

func (s *httpSession) Navigate(ctx context.Context, url string) (Document, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("navigate %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("navigate %s: parse document: %w", url, err)
	}
	return goqueryDocument{sel: doc.Selection}, nil
}

func (s *httpSession) Close() error {
	return nil
}

type goqueryDocument struct {
	sel *goquery.Selection
}

func (d goqueryDocument) QueryAll(selector string) []Node {
	found := d.sel.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryDocument{sel: s})
	})
	return nodes
}

func (d goqueryDocument) Query(selector string) Node {
	found := d.sel.Find(selector)
	if found.Length() == 0 {
		return nil
	}
	return goqueryDocument{sel: found.First()}
}

func (d goqueryDocument) Attr(name string) (string, bool) {
	return d.sel.Attr(name)
}

func (d goqueryDocument) Text() string {
	return d.sel.Text()
}

// ParseDocument wraps already-fetched markup in the substrate's Document
// type. Used by tests and by callers that fetch through other channels.
func ParseDocument(markup string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(markup)))
	if err != nil {
		return nil, err
	}
	return goqueryDocument{sel: doc.Selection}, nil
}
