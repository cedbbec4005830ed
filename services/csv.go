package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"platyo/database"
	"platyo/models"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"name", "phone", "email", "address",
	"total_orders", "total_spent", "avg_order_value",
	"fulfillment_modes", "vip", "segment", "last_order_date",
	"delivery_instructions",
}

// vipTruthy are the accepted case-insensitive tokens for the VIP column.
var vipTruthy = map[string]bool{
	"yes": true, "y": true, "true": true, "1": true, "vip": true,
}

// ExportCustomersCSV writes the customer view as CSV. encoding/csv handles
// quoting for fields containing commas, quotes or newlines.
func ExportCustomersCSV(w io.Writer, customers []models.CustomerSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range customers {
		avg := decimal.Zero
		if c.TotalOrders > 0 {
			avg = c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders))).Round(2)
		}
		lastOrder := ""
		if !c.LastOrderAt.IsZero() {
			lastOrder = c.LastOrderAt.Format(time.RFC3339)
		}
		modes := make([]string, 0, len(c.Fulfillments))
		for _, m := range c.Fulfillments {
			modes = append(modes, string(m))
		}
		vip := "no"
		if c.VIP {
			vip = "yes"
		}
		record := []string{
			c.Name, c.Phone, c.Email, c.Address,
			fmt.Sprintf("%d", c.TotalOrders),
			c.TotalSpent.StringFixed(2),
			avg.StringFixed(2),
			strings.Join(modes, "|"),
			vip, c.Segment, lastOrder,
			c.Instructions,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportRow is one accepted row of an import preview.
type ImportRow struct {
	Line     int                     `json:"line"`
	Customer models.ImportedCustomer `json:"customer"`
	VIP      bool                    `json:"vip"`
}

// ImportError rejects one row, pointing at its line in the file.
type ImportError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseCustomersCSV validates an import file against the existing customer
// set. Rows missing the required name or phone columns, or colliding on
// phone with an existing customer or an earlier row, are rejected with their
// line number and excluded from the preview. The header row decides column
// positions; only name and phone are mandatory columns.
func ParseCustomersCSV(r io.Reader, existingPhones map[string]bool) ([]ImportRow, []ImportError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: name")
	}
	if _, ok := col["phone"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: phone")
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []ImportRow
	var errs []ImportError
	seen := make(map[string]bool)

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, ImportError{Line: line, Message: err.Error()})
			continue
		}

		name := field(record, "name")
		phone := NormalizePhone(field(record, "phone"))
		if name == "" {
			errs = append(errs, ImportError{Line: line, Message: "missing required field: name"})
			continue
		}
		if phone == "" {
			errs = append(errs, ImportError{Line: line, Message: "missing required field: phone"})
			continue
		}
		if existingPhones[phone] {
			errs = append(errs, ImportError{Line: line, Message: fmt.Sprintf("phone %s already exists", phone)})
			continue
		}
		if seen[phone] {
			errs = append(errs, ImportError{Line: line, Message: fmt.Sprintf("duplicate phone %s in file", phone)})
			continue
		}
		seen[phone] = true

		rows = append(rows, ImportRow{
			Line: line,
			Customer: models.ImportedCustomer{
				Name:         name,
				Phone:        phone,
				Email:        field(record, "email"),
				Address:      field(record, "address"),
				Instructions: field(record, "delivery_instructions"),
				CreatedAt:    time.Now(),
			},
			VIP: vipTruthy[strings.ToLower(field(record, "vip"))],
		})
	}

	return rows, errs, nil
}

// CSVService glues parsing to storage: preview builds the accepted/rejected
// split, apply stores accepted contacts and their VIP flags.
type CSVService struct {
	db        *database.Database
	customers *CustomerService
}

// NewCSVService creates a CSVService.
func NewCSVService(db *database.Database, customers *CustomerService) *CSVService {
	return &CSVService{db: db, customers: customers}
}

// Preview validates an upload against the restaurant's current customers.
func (s *CSVService) Preview(ctx context.Context, restaurantID string, r io.Reader) ([]ImportRow, []ImportError, error) {
	existing, err := s.customers.List(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	phones := make(map[string]bool, len(existing))
	for _, c := range existing {
		phones[c.Phone] = true
	}
	return ParseCustomersCSV(r, phones)
}

// Apply stores the accepted rows of a preview: contacts into the imported
// list, VIP-flagged phones onto the side list.
func (s *CSVService) Apply(ctx context.Context, restaurantID string, rows []ImportRow) error {
	err := s.db.Update(func() error {
		imported, err := s.db.ImportedCustomers(ctx, restaurantID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			imported = append(imported, row.Customer)
		}
		return s.db.SaveImportedCustomers(ctx, restaurantID, imported)
	})
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.VIP {
			if err := s.customers.SetVIP(ctx, restaurantID, row.Customer.Phone, true); err != nil {
				return err
			}
		}
	}
	return nil
}
