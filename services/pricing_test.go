package services

import (
	"testing"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testBurger() models.Product {
	return models.Product{
		ID:           "p-burger",
		RestaurantID: "r1",
		Name:         "Burger",
		Variations: []models.ProductVariation{
			{ID: "v-regular", Name: "Regular", Price: decimal.RequireFromString("10.00")},
			{ID: "v-double", Name: "Double", Price: decimal.RequireFromString("14.50")},
		},
		Ingredients: []models.ProductIngredient{
			{ID: "i-lettuce", Name: "Lettuce", Optional: false},
			{ID: "i-cheese", Name: "Extra cheese", Optional: true, ExtraCost: decimal.RequireFromString("1.50")},
			{ID: "i-bacon", Name: "Bacon", Optional: true, ExtraCost: decimal.RequireFromString("2.00")},
		},
		Available: true,
	}
}

func regularVariation(t *testing.T, p models.Product) models.ProductVariation {
	t.Helper()
	v, ok := p.Variation("v-regular")
	if !ok {
		t.Fatal("fixture missing regular variation")
	}
	return v
}

func TestUnitPriceBaseVariation(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)

	price := UnitPrice(p, v, nil)
	assert.True(t, price.Equal(decimal.RequireFromString("10.00")), "got %s", price)
}

func TestUnitPriceSelectedOptionals(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)

	price := UnitPrice(p, v, []string{"i-cheese"})
	assert.True(t, price.Equal(decimal.RequireFromString("11.50")), "got %s", price)

	price = UnitPrice(p, v, []string{"i-cheese", "i-bacon"})
	assert.True(t, price.Equal(decimal.RequireFromString("13.50")), "got %s", price)
}

func TestUnitPriceIgnoresNonOptionalSelection(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)

	// Selecting the bundled lettuce must not add anything.
	price := UnitPrice(p, v, []string{"i-lettuce"})
	assert.True(t, price.Equal(decimal.RequireFromString("10.00")), "got %s", price)
}

func TestUnitPriceMissingExtraCostIsZero(t *testing.T) {
	p := testBurger()
	p.Ingredients = append(p.Ingredients, models.ProductIngredient{
		ID: "i-sauce", Name: "Sauce", Optional: true, // ExtraCost left at zero value
	})
	v := regularVariation(t, p)

	price := UnitPrice(p, v, []string{"i-sauce"})
	assert.True(t, price.Equal(decimal.RequireFromString("10.00")), "got %s", price)
}

func TestLineTotal(t *testing.T) {
	total := LineTotal(decimal.RequireFromString("11.50"), 2)
	assert.True(t, total.Equal(decimal.RequireFromString("23.00")), "got %s", total)
}
