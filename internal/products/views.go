package products

import "strings"

// FilteredProducts applies the search query (case-insensitive substring of
// title, description or category) and then the selected category (exact).
// Empty filters are skipped. The result is recomputed on every call.
func (s *Store) FilteredProducts() []Product {
	s.mu.RLock()
	list, query, category := s.products, s.searchQuery, s.selectedCategory
	s.mu.RUnlock()

	return filterProducts(list, query, category)
}

// ProductsByCategory groups products under each known category, in category
// order. Products whose category is not known are left out.
func (s *Store) ProductsByCategory() []CategoryGroup {
	s.mu.RLock()
	list, categories := s.products, s.categories
	s.mu.RUnlock()

	return groupByCategory(list, categories)
}

func filterProducts(list []Product, query, category string) []Product {
	out := make([]Product, 0, len(list))
	q := strings.ToLower(query)

	for _, p := range list {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}

func groupByCategory(list []Product, categories []string) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categories))
	index := make(map[string]int, len(categories))

	for _, c := range categories {
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = len(groups)
		groups = append(groups, CategoryGroup{Category: c, Products: []Product{}})
	}

	for _, p := range list {
		if i, ok := index[p.Category]; ok {
			groups[i].Products = append(groups[i].Products, p)
		}
	}
	return groups
}
