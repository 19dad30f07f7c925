package scrape

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/new-item-notifier/pkg/logger"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<ul class="l-cards">
  <li class="item-card" data-product-id="300">
    <div class="item-card__title">
      <a class="item-card__title-anchor--multiline" href="/ja/items/300"> Newest Outfit </a>
    </div>
    <div class="item-card__shop-info">
      <a class="item-card__shop-name-anchor" href="https://lapwing.booth.pm/">
        <div class="item-card__shop-name">Lapwing Shop</div>
      </a>
    </div>
  </li>
  <li class="item-card" data-product-id="200">
    <div class="item-card__title"><a href="/ja/items/200">Fallback Name</a></div>
  </li>
  <li class="item-card" data-product-id="abc">
    <a class="item-card__title-anchor--multiline">Bad ID</a>
  </li>
  <li class="item-card" data-product-id="150">
    <div class="item-card__title"></div>
  </li>
  <li class="item-card" data-product-id="300">
    <a class="item-card__title-anchor--multiline">Duplicate</a>
  </li>
  <li class="item-card" data-product-id="100">
    <a class="item-card__title-anchor--multiline">Oldest</a>
  </li>
</ul>
</body></html>`

func TestParseListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want domain.ItemList
	}{
		{
			name: "full listing",
			html: listingHTML,
			want: domain.ItemList{
				{ID: 300, Name: "Newest Outfit", ShopID: "lapwing", ShopName: "Lapwing Shop"},
				{ID: 200, Name: "Fallback Name"},
				{ID: 100, Name: "Oldest"},
			},
		},
		{
			name: "minimal cards",
			html: `<ul>
				<li data-product-id="123"><a class="item-card__title-anchor--multiline">Product A</a></li>
				<li data-product-id="456"><a class="item-card__title-anchor--multiline">Product B</a></li>
			</ul>`,
			want: domain.ItemList{{ID: 123, Name: "Product A"}, {ID: 456, Name: "Product B"}},
		},
		{
			name: "no cards",
			html: `<ul></ul>`,
			want: domain.ItemList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseListing(strings.NewReader(tt.html))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseListing() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoothScraper_Scrape(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingHTML))
	}))
	t.Cleanup(srv.Close)

	s := NewBoothScraper("3Dモデル",
		WithBaseURL(srv.URL+"/ja"),
		WithParams(map[string][]string{"sort": {"new"}, "q": {"Lapwing"}}),
		WithUserAgent("test-agent"),
		WithTimeout(5*time.Second),
		WithLogger(logger.Discard()),
	)

	items, err := s.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{300, 200, 100}, items.IDs())
	assert.Equal(t, "/ja/browse/3Dモデル", gotPath)
	assert.Equal(t, "q=Lapwing&sort=new", gotQuery)
	assert.Equal(t, "test-agent", gotUA)
}

func TestBoothScraper_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "maintenance", http.StatusServiceUnavailable)
			},
			wantErr: "listing returned status 503: maintenance",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: "listing returned status 404",
		},
		{
			name: "page over size cap",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<ul><li data-product-id="1">`))
				_, _ = w.Write(bytes.Repeat([]byte(" "), maxBodyBytes))
			},
			wantErr: "listing exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			s := NewBoothScraper("all", WithBaseURL(srv.URL), WithLogger(logger.Discard()))
			items, err := s.Scrape(context.Background())
			require.Error(t, err)
			assert.Nil(t, items)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBoothScraper_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewBoothScraper("all", WithBaseURL(url), WithLogger(logger.Discard()))
	_, err := s.Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching listing")
}

func TestBoothScraper_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewBoothScraper("all", WithBaseURL(srv.URL), WithLogger(logger.Discard()))
	_, err := s.Scrape(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
