package controllers

import (
	"testing"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateRestaurantSettings(t *testing.T) {
	ok := models.Restaurant{
		Name:         "Testaurant",
		DeliveryCost: decimal.RequireFromString("3.00"),
		MinimumOrder: decimal.RequireFromString("10.00"),
		Billing: models.BillingConfig{
			TaxEnabled:  true,
			TaxRate:     decimal.RequireFromString("16"),
			TipPercents: []int{10, 15},
		},
	}
	assert.Empty(t, validateRestaurantSettings(ok))

	negativeCost := ok
	negativeCost.DeliveryCost = decimal.RequireFromString("-1")
	assert.NotEmpty(t, validateRestaurantSettings(negativeCost))

	negativeMinimum := ok
	negativeMinimum.MinimumOrder = decimal.RequireFromString("-0.01")
	assert.NotEmpty(t, validateRestaurantSettings(negativeMinimum))

	// -100 would make the included-tax division blow up; any negative rate
	// is rejected before it reaches storage.
	negativeTax := ok
	negativeTax.Billing.TaxRate = decimal.RequireFromString("-100")
	assert.NotEmpty(t, validateRestaurantSettings(negativeTax))

	negativeTip := ok
	negativeTip.Billing.TipPercents = []int{10, -5}
	assert.NotEmpty(t, validateRestaurantSettings(negativeTip))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "la-casa-del-taco", slugify("La Casa del Taco"))
	assert.Equal(t, "bob-s-burgers-24-7", slugify("  Bob's Burgers 24/7!  "))
}
