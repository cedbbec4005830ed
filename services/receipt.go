package services

import (
	"fmt"
	"strings"

	"platyo/models"

	"github.com/shopspring/decimal"
)

const receiptWidth = 32

func receiptCenter(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func receiptLine(left, right string) string {
	gap := receiptWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

var receiptDivider = strings.Repeat("-", receiptWidth)

// Receipt renders the self-contained printable ticket for an order. The
// regulatory header lines and the tax and tip blocks appear only when the
// restaurant's billing configuration enables them; the tax line is
// informational (tax included in prices) and never changes the total.
func Receipt(restaurant models.Restaurant, order models.Order) string {
	var b strings.Builder
	cur := restaurant.Currency

	b.WriteString(receiptCenter(restaurant.Name) + "\n")
	for _, line := range restaurant.Billing.RegulatoryLines {
		b.WriteString(receiptCenter(line) + "\n")
	}
	if restaurant.Address != "" {
		b.WriteString(receiptCenter(restaurant.Address) + "\n")
	}
	b.WriteString(receiptDivider + "\n")

	fmt.Fprintf(&b, "Order: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Date:  %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Type:  %s\n", fulfillmentLabel(order.Fulfillment))
	if order.Customer.TableNumber != "" {
		fmt.Fprintf(&b, "Table: %s\n", order.Customer.TableNumber)
	}
	fmt.Fprintf(&b, "Name:  %s\n", order.Customer.Name)
	b.WriteString(receiptDivider + "\n")

	for _, item := range order.Items {
		left := fmt.Sprintf("%dx %s %s", item.Quantity, item.ProductName, item.VariationName)
		b.WriteString(receiptLine(left, money(cur, item.Total)) + "\n")
		for _, ing := range item.Ingredients {
			if ing.Optional {
				b.WriteString("   + " + ing.Name + "\n")
			}
		}
		if item.Notes != "" {
			b.WriteString("   * " + item.Notes + "\n")
		}
	}
	b.WriteString(receiptDivider + "\n")

	b.WriteString(receiptLine("Subtotal", money(cur, order.Subtotal)) + "\n")
	if order.Fulfillment == models.FulfillmentDelivery {
		b.WriteString(receiptLine("Delivery", money(cur, order.DeliveryCost)) + "\n")
	}
	b.WriteString(receiptLine("TOTAL", money(cur, order.Total)) + "\n")

	if restaurant.Billing.TaxEnabled {
		label := restaurant.Billing.TaxLabel
		if label == "" {
			label = "Tax"
		}
		rate := restaurant.Billing.TaxRate
		// Tax included in prices: total * rate / (100 + rate).
		tax := order.Total.Mul(rate).Div(decimal.NewFromInt(100).Add(rate)).Round(2)
		line := fmt.Sprintf("%s (%s%%) incl.", label, rate.String())
		b.WriteString(receiptLine(line, money(cur, tax)) + "\n")
	}

	if restaurant.Billing.TipSuggestions && len(restaurant.Billing.TipPercents) > 0 {
		b.WriteString(receiptDivider + "\n")
		b.WriteString("Tip suggestions:\n")
		for _, pct := range restaurant.Billing.TipPercents {
			tip := order.Total.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)
			b.WriteString(receiptLine(fmt.Sprintf("  %d%%", pct), money(cur, tip)) + "\n")
		}
	}

	b.WriteString(receiptDivider + "\n")
	b.WriteString(receiptCenter("Thank you!") + "\n")
	return b.String()
}
