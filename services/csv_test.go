package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"platyo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCustomersCSV(t *testing.T) {
	customers := []models.CustomerSummary{
		{
			Phone:        "5551111",
			Name:         `Ada "The Countess", Esq.`,
			Email:        "ada@example.com",
			TotalOrders:  4,
			TotalSpent:   decimal.RequireFromString("100.00"),
			LastOrderAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Fulfillments: []models.Fulfillment{models.FulfillmentPickup, models.FulfillmentDelivery},
			VIP:          true,
			Segment:      models.SegmentRegular,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCustomersCSV(&buf, customers))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	// Name contains a comma and quotes, so it must come out quoted.
	assert.Contains(t, lines[1], `"Ada ""The Countess"", Esq."`)
	assert.Contains(t, lines[1], "100.00")
	assert.Contains(t, lines[1], "25.00") // average order value
	assert.Contains(t, lines[1], "pickup|delivery")
	assert.Contains(t, lines[1], "yes")
}

func TestParseCustomersCSV(t *testing.T) {
	input := strings.Join([]string{
		"name,phone,email,vip",
		"Ada,555 1111,ada@example.com,yes",
		",555 2222,,",               // missing name
		"Grace,,grace@example.com,", // missing phone
		"Joan,555 3333,,VIP",
		"Dup,555 1111,,",   // duplicate within file
		"Old,555 0000,,no", // collides with existing customer
	}, "\n")

	existing := map[string]bool{"5550000": true}
	rows, errs, err := ParseCustomersCSV(strings.NewReader(input), existing)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Ada", rows[0].Customer.Name)
	assert.Equal(t, "5551111", rows[0].Customer.Phone)
	assert.True(t, rows[0].VIP)
	assert.Equal(t, "Joan", rows[1].Customer.Name)
	assert.True(t, rows[1].VIP, "vip tokens are case-insensitive")

	require.Len(t, errs, 4)
	assert.Equal(t, 3, errs[0].Line)
	assert.Contains(t, errs[0].Message, "name")
	assert.Equal(t, 4, errs[1].Line)
	assert.Contains(t, errs[1].Message, "phone")
	assert.Equal(t, 6, errs[2].Line)
	assert.Contains(t, errs[2].Message, "duplicate")
	assert.Equal(t, 7, errs[3].Line)
	assert.Contains(t, errs[3].Message, "already exists")
}

func TestParseCustomersCSVMissingRequiredColumn(t *testing.T) {
	_, _, err := ParseCustomersCSV(strings.NewReader("name,email\nAda,a@b.c"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
}
