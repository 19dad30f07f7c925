// Package main implements a mock marketplace and X API server for local
// development. It renders a listing page from a JSON fixture in the markup
// the scraper expects and accepts tweet posts without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type fixtureItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ShopID   string `json:"shop_id"`
	ShopName string `json:"shop_name"`
}

type fixture struct {
	Items []fixtureItem `json:"items"`
}

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html lang="ja">
<head><meta charset="UTF-8"><title>{{.Category}}</title></head>
<body>
<ul class="l-row">
{{- range .Items}}
  <li class="item-card" data-product-id="{{.ID}}">
    <div class="item-card__title">
      <a class="item-card__title-anchor--multiline" href="/ja/items/{{.ID}}">{{.Name}}</a>
    </div>
    <a class="item-card__shop-name-anchor" href="https://{{.ShopID}}.booth.pm/">
      <div class="item-card__shop-name">{{.ShopName}}</div>
    </a>
  </li>
{{- end}}
</ul>
</body>
</html>`))

// catalog is the mutable listing, newest first.
type catalog struct {
	mu    sync.RWMutex
	items []fixtureItem
}

func (c *catalog) snapshot() []fixtureItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]fixtureItem(nil), c.items...)
}

// add prepends an item, assigning the next ID when id is zero.
func (c *catalog) add(it fixtureItem) fixtureItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it.ID == 0 {
		it.ID = 1
		if len(c.items) > 0 {
			it.ID = c.items[0].ID + 1
		}
	}
	c.items = append([]fixtureItem{it}, c.items...)
	return it
}

// tweetServer accepts posts and fails the next n of them on request.
type tweetServer struct {
	nextID   atomic.Int64
	failNext atomic.Int32
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listing.json", "path to listing fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fx.Items))

	cat := &catalog{items: fx.Items}
	ts := &tweetServer{}
	ts.nextID.Store(1445880548472328192)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{lang}/browse/{category}", listingHandler(logger, cat))
	mux.HandleFunc("POST /admin/items", addItemHandler(logger, cat))
	mux.HandleFunc("POST /admin/fail-next", failNextHandler(logger, ts))
	mux.HandleFunc("POST /2/tweets", tweetHandler(logger, ts))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock marketplace server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func listingHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := cat.snapshot()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := listingTmpl.Execute(w, map[string]any{
			"Category": r.PathValue("category"),
			"Items":    items,
		})
		if err != nil {
			logger.Error("rendering listing", "error", err)
			return
		}
		logger.Info("listing", "category", r.PathValue("category"), "items", len(items))
	}
}

func addItemHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var it fixtureItem
		if err := json.NewDecoder(r.Body).Decode(&it); err != nil || strings.TrimSpace(it.Name) == "" {
			http.Error(w, "body must be a JSON item with a name", http.StatusBadRequest)
			return
		}
		it = cat.add(it)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(it)
		logger.Info("added item", "id", it.ID, "name", it.Name)
	}
}

func failNextHandler(logger *slog.Logger, ts *tweetServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.URL.Query().Get("n"))
		if err != nil || n < 0 {
			n = 1
		}
		ts.failNext.Store(int32(n)) //nolint:gosec // small operator-supplied count
		w.WriteHeader(http.StatusNoContent)
		logger.Info("next tweets will fail", "count", n)
	}
}

func tweetHandler(logger *slog.Logger, ts *tweetServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			logger.Warn("tweet request missing bearer token")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{
				"title":  "Unauthorized",
				"detail": "Unauthorized",
				"status": http.StatusUnauthorized,
			})
			return
		}

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{"title": "Invalid Request", "detail": "text is required"})
			return
		}

		if ts.failNext.Load() > 0 {
			ts.failNext.Add(-1)
			logger.Warn("failing tweet on request")
			w.WriteHeader(http.StatusServiceUnavailable)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{"title": "Service Unavailable", "detail": "injected failure"})
			return
		}

		id := strconv.FormatInt(ts.nextID.Add(1), 10)
		reset := strconv.FormatInt(time.Now().Add(15*time.Minute).Unix(), 10)
		w.Header().Set("x-rate-limit-limit", "200")
		w.Header().Set("x-rate-limit-remaining", "199")
		w.Header().Set("x-rate-limit-reset", reset)
		w.WriteHeader(http.StatusCreated)
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"id": id, "text": req.Text},
		})
		logger.Info("posted tweet", "id", id, "text", req.Text)
	}
}
