package search

import (
	"strings"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// buildProductDocument flattens a product into its index document.
// Ingredient names are trimmed and deduplicated, keeping catalog order.
func buildProductDocument(p *entities.Product) map[string]interface{} {
	ingredients := uniqueTerms(p.Ingredients)
	return map[string]interface{}{
		"id":               p.ID,
		"name":             p.Name,
		"description":      p.Description,
		"price":            p.Price,
		"ingredients":      ingredients,
		"ingredient_count": len(ingredients),
	}
}

// productFromDocument rebuilds a product from a search hit
func productFromDocument(doc map[string]interface{}) *entities.Product {
	p := &entities.Product{}
	p.ID, _ = doc["id"].(string)
	p.Name, _ = doc["name"].(string)
	p.Description, _ = doc["description"].(string)

	switch v := doc["price"].(type) {
	case float64:
		p.Price = v
	case int:
		p.Price = float64(v)
	}

	if raw, ok := doc["ingredients"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				p.Ingredients = append(p.Ingredients, s)
			}
		}
	} else if raw, ok := doc["ingredients"].([]string); ok {
		p.Ingredients = append(p.Ingredients, raw...)
	}
	return p
}

func uniqueTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
