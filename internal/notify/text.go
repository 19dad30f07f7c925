package notify

import "strings"

// TextParams holds the fields of one announcement.
type TextParams struct {
	Name     string
	ShopName string
	Hashtags []string
	URL      string
}

// BuildText renders an announcement, one field per line: the item name,
// the shop name when known, the hashtags joined by spaces, and the item URL.
// The hashtag line is always present, empty when there are no hashtags.
func BuildText(p TextParams) string {
	lines := make([]string, 0, 4)
	lines = append(lines, p.Name)

	if p.ShopName != "" {
		lines = append(lines, p.ShopName)
	}
	lines = append(lines, strings.Join(p.Hashtags, " "))
	lines = append(lines, p.URL)
	return strings.Join(lines, "\n")
}
