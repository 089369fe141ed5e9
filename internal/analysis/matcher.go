package analysis

import (
	"sort"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

type candidate struct {
	product *entities.Product
	matched []string
}

// MatchProducts picks a small ordered set of products covering the
// recommended ingredients. It is a greedy set cover: products are tried by
// descending overlap (ties by id) and kept only if they add an uncovered
// ingredient. Each entry lists its matched ingredients in recommendation order.
func MatchProducts(recommended []string, catalog []*entities.Product) []entities.ProductRecommendation {
	out := make([]entities.ProductRecommendation, 0)
	if len(recommended) == 0 || len(catalog) == 0 {
		return out
	}

	candidates := make([]candidate, 0, len(catalog))
	for _, p := range catalog {
		if p == nil {
			continue
		}
		if matched := intersect(recommended, p.Ingredients); len(matched) > 0 {
			candidates = append(candidates, candidate{product: p, matched: matched})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].matched) != len(candidates[j].matched) {
			return len(candidates[i].matched) > len(candidates[j].matched)
		}
		return candidates[i].product.ID < candidates[j].product.ID
	})

	wanted := make(map[string]struct{}, len(recommended))
	for _, name := range recommended {
		wanted[name] = struct{}{}
	}
	covered := make(map[string]struct{}, len(wanted))

	for _, c := range candidates {
		if len(covered) == len(wanted) {
			break
		}
		adds := false
		for _, name := range c.matched {
			if _, ok := covered[name]; !ok {
				adds = true
				break
			}
		}
		if !adds {
			continue
		}
		for _, name := range c.matched {
			covered[name] = struct{}{}
		}
		out = append(out, entities.ProductRecommendation{
			ProductID:          c.product.ID,
			Name:               c.product.Name,
			Description:        c.product.Description,
			Price:              c.product.Price,
			MatchedIngredients: c.matched,
		})
	}
	return out
}

// intersect returns the recommended names the product contains, in
// recommendation order and without duplicates
func intersect(recommended, ingredients []string) []string {
	has := make(map[string]struct{}, len(ingredients))
	for _, name := range ingredients {
		has[name] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(recommended))
	for _, name := range recommended {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := has[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
