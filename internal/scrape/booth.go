package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// DefaultBaseURL is the marketplace root used when none is configured.
const DefaultBaseURL = "https://booth.pm/ja"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "new-item-notifier/1.0"
	maxBodyBytes     = 5 << 20
)

// Selectors for the listing page markup.
const (
	selectorCard     = "li[data-product-id]"
	selectorName     = "a.item-card__title-anchor--multiline"
	selectorNameAlt  = ".item-card__title a"
	selectorShopName = ".item-card__shop-name"
	selectorShopLink = "a.item-card__shop-name-anchor"
	attrProductID    = "data-product-id"
)

// BoothScraper implements Scraper for BOOTH browse pages.
type BoothScraper struct {
	baseURL   string
	category  string
	params    map[string][]string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// BoothOption configures the BoothScraper.
type BoothOption func(*BoothScraper)

// WithBaseURL overrides the marketplace base URL, e.g. for a test server.
func WithBaseURL(u string) BoothOption {
	return func(s *BoothScraper) {
		s.baseURL = u
	}
}

// WithParams sets the listing query parameters.
func WithParams(p map[string][]string) BoothOption {
	return func(s *BoothScraper) {
		s.params = p
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) BoothOption {
	return func(s *BoothScraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) BoothOption {
	return func(s *BoothScraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) BoothOption {
	return func(s *BoothScraper) {
		s.client = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) BoothOption {
	return func(s *BoothScraper) {
		s.logger = l
	}
}

// NewBoothScraper creates a scraper for the given category.
func NewBoothScraper(category string, opts ...BoothOption) *BoothScraper {
	s := &BoothScraper{
		baseURL:   DefaultBaseURL,
		category:  category,
		params:    map[string][]string{"sort": {"new"}},
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the listing URL the scraper fetches.
func (s *BoothScraper) URL() string {
	return ListURL(s.baseURL, s.category, s.params)
}

// Scrape implements Scraper.Scrape.
func (s *BoothScraper) Scrape(ctx context.Context) (domain.ItemList, error) {
	u := s.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("listing returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("listing exceeds %d bytes", maxBodyBytes)
	}

	items, err := ParseListing(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scraped listing", "url", u, "items", len(items))
	return items, nil
}

// ParseListing extracts items from a listing page. Cards without a numeric ID
// or a name are skipped, and repeated IDs keep their first occurrence.
func ParseListing(r io.Reader) (domain.ItemList, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	items := domain.ItemList{}
	doc.Find(selectorCard).Each(func(_ int, card *goquery.Selection) {
		item, ok := parseCard(card)
		if ok {
			items = append(items, item)
		}
	})

	return items.Dedupe(), nil
}

func parseCard(card *goquery.Selection) (domain.Item, bool) {
	rawID, _ := card.Attr(attrProductID)
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Item{}, false
	}

	name := strings.TrimSpace(card.Find(selectorName).First().Text())
	if name == "" {
		name = strings.TrimSpace(card.Find(selectorNameAlt).First().Text())
	}
	if name == "" {
		return domain.Item{}, false
	}

	return domain.Item{
		ID:       id,
		Name:     name,
		ShopName: strings.TrimSpace(card.Find(selectorShopName).First().Text()),
		ShopID:   shopID(card),
	}, true
}

// shopID returns the shop subdomain from the card's shop link, e.g. "lapwing"
// for https://lapwing.booth.pm/.
func shopID(card *goquery.Selection) string {
	href, ok := card.Find(selectorShopLink).First().Attr("href")
	if !ok {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Hostname() == "" {
		return ""
	}

	sub, _, found := strings.Cut(u.Hostname(), ".")
	if !found {
		return ""
	}
	return sub
}
