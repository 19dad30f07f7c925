package engine

import (
	"strings"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// Predicate reports whether an item should be excluded from notification.
type Predicate func(domain.Item) bool

// BlockShops excludes items sold by any of the given shop subdomains.
// Matching is case-insensitive. Blank entries are ignored, and with no
// entries the predicate is nil.
func BlockShops(shopIDs ...string) Predicate {
	blocked := make(map[string]struct{}, len(shopIDs))
	for _, id := range shopIDs {
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" {
			blocked[id] = struct{}{}
		}
	}
	if len(blocked) == 0 {
		return nil
	}
	return func(it domain.Item) bool {
		_, ok := blocked[strings.ToLower(it.ShopID)]
		return ok
	}
}
