package entities

// Product is a catalog item, read-only reference data owned by the catalog subsystem
type Product struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Price       float64  `json:"price" db:"price"`
	Ingredients []string `json:"ingredients" db:"ingredients"`
}

// ProductRecommendation is a selected product together with the recommended
// ingredients it covers
type ProductRecommendation struct {
	ProductID          string   `json:"productId"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	MatchedIngredients []string `json:"matchedIngredients"`
}
