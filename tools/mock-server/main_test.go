package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/new-item-notifier/internal/scrape"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func loadTestCatalog(t *testing.T) *catalog {
	t.Helper()
	fx, err := loadFixture(filepath.Join("testdata", "listing.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return &catalog{items: fx.Items}
}

func TestLoadFixture(t *testing.T) {
	cat := loadTestCatalog(t)
	if len(cat.items) == 0 {
		t.Fatal("expected items in fixture")
	}
	for i := 1; i < len(cat.items); i++ {
		if cat.items[i-1].ID <= cat.items[i].ID {
			t.Errorf("fixture not newest first at index %d", i)
		}
	}
}

func TestListingHandler_ParsesWithScraper(t *testing.T) {
	cat := loadTestCatalog(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{lang}/browse/{category}", listingHandler(testLogger(), cat))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := scrape.NewBoothScraper("3Dモデル", scrape.WithBaseURL(srv.URL+"/ja"))
	items, err := s.Scrape(t.Context())
	if err != nil {
		t.Fatalf("scraping mock listing: %v", err)
	}

	if len(items) != len(cat.items) {
		t.Fatalf("items=%d, want %d", len(items), len(cat.items))
	}
	first := items[0]
	if first.ID != 100005 || first.Name != "Winter Coat for Avatar" {
		t.Errorf("first item=%+v", first)
	}
	if first.ShopID != "lapwing" || first.ShopName != "Lapwing Works" {
		t.Errorf("shop=%q/%q, want lapwing/Lapwing Works", first.ShopID, first.ShopName)
	}
}

func TestAddItemHandler(t *testing.T) {
	cat := loadTestCatalog(t)
	handler := addItemHandler(testLogger(), cat)

	req := httptest.NewRequest(http.MethodPost, "/admin/items",
		strings.NewReader(`{"name":"New Hat","shop_id":"kumo","shop_name":"Kumo Atelier"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusCreated)
	}
	items := cat.snapshot()
	if items[0].Name != "New Hat" || items[0].ID != 100006 {
		t.Errorf("head=%+v, want New Hat with id 100006", items[0])
	}
}

func TestAddItemHandler_RequiresName(t *testing.T) {
	handler := addItemHandler(testLogger(), loadTestCatalog(t))

	req := httptest.NewRequest(http.MethodPost, "/admin/items", strings.NewReader(`{"shop_id":"kumo"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTweetHandler(t *testing.T) {
	tests := []struct {
		name       string
		auth       string
		body       string
		failNext   int32
		wantStatus int
	}{
		{name: "posts", auth: "Bearer tok", body: `{"text":"hello"}`, wantStatus: http.StatusCreated},
		{name: "missing token", body: `{"text":"hello"}`, wantStatus: http.StatusUnauthorized},
		{name: "empty text", auth: "Bearer tok", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "injected failure", auth: "Bearer tok", body: `{"text":"hello"}`, failNext: 1, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &tweetServer{}
			ts.failNext.Store(tt.failNext)
			handler := tweetHandler(testLogger(), ts)

			req := httptest.NewRequest(http.MethodPost, "/2/tweets", strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var resp struct {
				Data struct {
					ID   string `json:"id"`
					Text string `json:"text"`
				} `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Data.ID == "" || resp.Data.Text != "hello" {
				t.Errorf("data=%+v", resp.Data)
			}
			if w.Header().Get("x-rate-limit-remaining") == "" {
				t.Error("expected rate limit headers")
			}
		})
	}
}

func TestFailNextHandler(t *testing.T) {
	ts := &tweetServer{}
	handler := failNextHandler(testLogger(), ts)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/admin/fail-next?n=3", http.NoBody))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNoContent)
	}
	if got := ts.failNext.Load(); got != 3 {
		t.Errorf("failNext=%d, want 3", got)
	}
}
