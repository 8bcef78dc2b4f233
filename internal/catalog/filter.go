package catalog

import (
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

// KeywordFilter keeps products whose title, description, category or brand
// contains any of its keywords, case-insensitively. A filter without keywords
// keeps everything.
type KeywordFilter struct {
	keywords []string
}

func NewKeywordFilter(keywords []string) KeywordFilter {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return KeywordFilter{keywords: kw}
}

func (f KeywordFilter) Enabled() bool { return len(f.keywords) > 0 }

func (f KeywordFilter) Match(p models.Product) bool {
	if !f.Enabled() {
		return true
	}
	fields := [...]string{
		strings.ToLower(p.Title),
		strings.ToLower(p.Description),
		strings.ToLower(p.Category),
		strings.ToLower(p.Brand),
	}
	for _, k := range f.keywords {
		for _, field := range fields {
			if strings.Contains(field, k) {
				return true
			}
		}
	}
	return false
}

func (f KeywordFilter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// MatchLocal is the degraded-mode search: a plain substring match of query
// against title, brand and category.
func MatchLocal(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
