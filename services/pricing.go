package services

import (
	"platyo/models"

	"github.com/shopspring/decimal"
)

// UnitPrice computes the price of one unit: the variation price plus the
// extra cost of every selected optional ingredient. Non-optional ingredients
// are bundled into the variation price and never add cost; an ingredient with
// no extra cost counts as zero.
func UnitPrice(product models.Product, variation models.ProductVariation, selectedIngredientIDs []string) decimal.Decimal {
	price := variation.Price
	for _, ing := range product.Ingredients {
		if !ing.Optional {
			continue
		}
		for _, id := range selectedIngredientIDs {
			if id == ing.ID {
				price = price.Add(ing.ExtraCost)
				break
			}
		}
	}
	return price
}

// LineTotal multiplies a unit price by a quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
