package models

// CartItem is one row of a session cart. Product and Variation are copied by
// value so cart math never reads the live catalog. Identity of a row is
// (product id, variation id, sorted selected ingredient ids).
type CartItem struct {
	Product               Product          `json:"product"`
	Variation             ProductVariation `json:"variation"`
	Quantity              int              `json:"quantity"`
	SelectedIngredientIDs []string         `json:"selected_ingredient_ids"` // kept sorted
	Notes                 string           `json:"notes"`
}
