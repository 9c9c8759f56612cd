package catalog

import "strings"

// Normalize lowercases a category token and collapses whitespace runs to
// hyphens, producing the slug used as the synonym-table key. An empty or
// blank token normalizes to "".
func Normalize(token string) string {
	fields := strings.Fields(strings.ToLower(token))
	return strings.Join(fields, "-")
}

// ResolveKeywords returns the keyword set for a slug. Slugs without a mapping
// fall back to the slug itself as a single literal keyword, so an unmapped
// category still yields a best-effort match rather than an empty grid.
func ResolveKeywords(slug string) []string {
	if slug == "" {
		return nil
	}
	if kws, ok := categorySynonyms[slug]; ok {
		return kws
	}
	return []string{slug}
}

// FilterProducts keeps products whose searchable text contains any of the
// keywords as a substring. The result preserves input order. An empty keyword
// set matches nothing.
func FilterProducts(products []Product, keywords []string) []Product {
	if len(keywords) == 0 {
		return []Product{}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		text := searchableText(p)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, kw) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// searchableText concatenates name, category, description and tags,
// lowercased. Absent optional fields contribute an empty component.
func searchableText(p Product) string {
	parts := []string{p.Name, p.Category, p.Description, strings.Join(p.Tags, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}
