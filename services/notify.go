package services

import (
	"fmt"
	"net/url"
	"strings"

	"platyo/models"

	"github.com/shopspring/decimal"
)

// fulfillmentLabel renders a fulfillment mode for human-facing text.
func fulfillmentLabel(f models.Fulfillment) string {
	switch f {
	case models.FulfillmentPickup:
		return "Pickup"
	case models.FulfillmentDineIn:
		return "Dine-in"
	case models.FulfillmentDelivery:
		return "Delivery"
	default:
		return string(f)
	}
}

func money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// OrderMessage builds the plain-text notification for a new order: contact,
// fulfillment detail, itemized lines, totals and estimated prep time. This is
// the payload handed to the messaging deep link; sending it is not our job.
func OrderMessage(restaurant models.Restaurant, order models.Order) string {
	var b strings.Builder
	cur := restaurant.Currency

	fmt.Fprintf(&b, "*%s*\n", restaurant.Name)
	fmt.Fprintf(&b, "New order %s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Customer.Phone)

	fmt.Fprintf(&b, "Fulfillment: %s\n", fulfillmentLabel(order.Fulfillment))
	switch order.Fulfillment {
	case models.FulfillmentDelivery:
		fmt.Fprintf(&b, "Address: %s, %s\n", order.Customer.Address, order.Customer.City)
	case models.FulfillmentDineIn:
		if order.Customer.TableNumber != "" {
			fmt.Fprintf(&b, "Table: %s\n", order.Customer.TableNumber)
		}
	}
	if order.Customer.Instructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", order.Customer.Instructions)
	}

	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s (%s) - %s\n",
			item.Quantity, item.ProductName, item.VariationName,
			money(cur, item.Total))
		for _, ing := range item.Ingredients {
			if ing.Optional {
				fmt.Fprintf(&b, "  + %s (%s)\n", ing.Name, money(cur, ing.ExtraCost))
			}
		}
		if item.Notes != "" {
			fmt.Fprintf(&b, "  Note: %s\n", item.Notes)
		}
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", money(cur, order.Subtotal))
	if order.Fulfillment == models.FulfillmentDelivery {
		fmt.Fprintf(&b, "Delivery: %s\n", money(cur, order.DeliveryCost))
	}
	fmt.Fprintf(&b, "Total: %s\n", money(cur, order.Total))
	if restaurant.PrepMinutes > 0 {
		fmt.Fprintf(&b, "\nEstimated prep time: %d min\n", restaurant.PrepMinutes)
	}
	return b.String()
}

// StatusUpdateMessage is the short variant used for re-notifications once
// the full order message has already gone out.
func StatusUpdateMessage(restaurant models.Restaurant, order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", restaurant.Name)
	fmt.Fprintf(&b, "Order %s update\n", order.OrderNumber)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Total: %s\n", money(restaurant.Currency, order.Total))
	return b.String()
}

// NotificationMessage picks the full or short payload depending on whether
// the order was notified before.
func NotificationMessage(restaurant models.Restaurant, order models.Order) string {
	if order.Notified {
		return StatusUpdateMessage(restaurant, order)
	}
	return OrderMessage(restaurant, order)
}

// WhatsAppLink builds the phone-addressed deep link carrying the message.
func WhatsAppLink(phone, message string) string {
	digits := strings.TrimPrefix(NormalizePhone(phone), "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// CustomerOrderLink is the storefront-side counterpart: the link a customer
// opens after checkout to send their order to the restaurant's phone.
func CustomerOrderLink(restaurant models.Restaurant, order models.Order) string {
	return WhatsAppLink(restaurant.Phone, OrderMessage(restaurant, order))
}
