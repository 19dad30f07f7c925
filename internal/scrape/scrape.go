// Package scrape fetches the marketplace listing page and turns it into an
// ordered item list.
package scrape

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// Scraper returns the current listing, newest first. Errors are fatal for the
// run; there are no partial results.
type Scraper interface {
	Scrape(ctx context.Context) (domain.ItemList, error)
}

// ItemURL returns the public page of an item, e.g.
// https://booth.pm/ja/items/123456.
func ItemURL(base string, id int64) string {
	return strings.TrimRight(base, "/") + "/items/" + strconv.FormatInt(id, 10)
}

// ListURL returns the browse URL for category with the given query
// parameters. Keys are emitted in sorted order and repeated values keep
// their order.
func ListURL(base, category string, params map[string][]string) string {
	u := strings.TrimRight(base, "/") + "/browse/" + url.PathEscape(category)

	if q := EncodeParams(params); q != "" {
		u += "?" + q
	}
	return u
}

// EncodeParams renders params as a query string. A key with an empty value
// list is dropped; a key with an empty string value is kept as "key=".
func EncodeParams(params map[string][]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range params[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
