package invoice

import "fmt"

// Numeric columns per collection, enumerated statically so each record
// type has its own coercion routine.
var headerNumericFields = []fieldRef[Header]{
	{"place_of_supply", func(h *Header) *Field { return &h.PlaceOfSupply }},
	{"place_of_origin", func(h *Header) *Field { return &h.PlaceOfOrigin }},
	{"taxable_value", func(h *Header) *Field { return &h.TaxableValue }},
	{"invoice_value", func(h *Header) *Field { return &h.InvoiceValue }},
	{"tax_amount", func(h *Header) *Field { return &h.TaxAmount }},
}

var lineItemNumericFields = []fieldRef[LineItem]{
	{"quantity", func(li *LineItem) *Field { return &li.Quantity }},
	{"rate_per_item_after_discount", func(li *LineItem) *Field { return &li.RatePerItem }},
	{"taxable_value", func(li *LineItem) *Field { return &li.TaxableValue }},
	{"sgst_amount", func(li *LineItem) *Field { return &li.SGSTAmount }},
	{"cgst_amount", func(li *LineItem) *Field { return &li.CGSTAmount }},
	{"igst_amount", func(li *LineItem) *Field { return &li.IGSTAmount }},
	{"sgst_rate", func(li *LineItem) *Field { return &li.SGSTRate }},
	{"cgst_rate", func(li *LineItem) *Field { return &li.CGSTRate }},
	{"igst_rate", func(li *LineItem) *Field { return &li.IGSTRate }},
	{"tax_amount", func(li *LineItem) *Field { return &li.TaxAmount }},
	{"tax_rate", func(li *LineItem) *Field { return &li.TaxRate }},
	{"final_amount", func(li *LineItem) *Field { return &li.FinalAmount }},
}

var summaryNumericFields = []fieldRef[Summary]{
	{"total_taxable_value", func(s *Summary) *Field { return &s.TotalTaxableValue }},
	{"total_invoice_value", func(s *Summary) *Field { return &s.TotalInvoiceValue }},
	{"total_tax_amount", func(s *Summary) *Field { return &s.TotalTaxAmount }},
	{"total_cgst_amount", func(s *Summary) *Field { return &s.TotalCGSTAmount }},
	{"total_sgst_amount", func(s *Summary) *Field { return &s.TotalSGSTAmount }},
	{"total_igst_amount", func(s *Summary) *Field { return &s.TotalIGSTAmount }},
	{"rounding_adjustment", func(s *Summary) *Field { return &s.RoundingAdjustment }},
}

type fieldRef[T any] struct {
	name string
	get  func(*T) *Field
}

// CoerceTypes parses invoice_date under the fixed "DD-Mon-YY" format and
// coerces every numeric column to a decimal, mutating cells in place.
// Absent cells are skipped. Failures are reported in evaluation order
// (header dates, then numeric columns, column-major, per collection);
// cells coerced before an error keep their coerced form.
func CoerceTypes(doc *Document) []Failure {
	var fails []Failure
	fails = append(fails, coerceHeaders(doc.Header)...)
	fails = append(fails, coerceColumns(doc.Items, lineItemNumericFields, CollectionItems)...)
	fails = append(fails, coerceColumns(doc.Summary, summaryNumericFields, CollectionSummary)...)
	return fails
}

func coerceHeaders(rows []Header) []Failure {
	var fails []Failure
	for i := range rows {
		if err := rows[i].InvoiceDate.coerceDate(); err != nil {
			fails = append(fails, coercionFailure(CollectionHeader, i, "invoice_date", err))
		}
	}
	fails = append(fails, coerceColumns(rows, headerNumericFields, CollectionHeader)...)
	return fails
}

func coerceColumns[T any](rows []T, cols []fieldRef[T], coll Collection) []Failure {
	var fails []Failure
	for _, col := range cols {
		for i := range rows {
			if err := col.get(&rows[i]).coerceNumber(); err != nil {
				fails = append(fails, coercionFailure(coll, i, col.name, err))
			}
		}
	}
	return fails
}

func coercionFailure(coll Collection, row int, field string, err error) Failure {
	return Failure{
		Collection: coll,
		Row:        row,
		Message:    fmt.Sprintf("Data type conversion failed: %s row %d: %s: %v", coll, row, field, err),
	}
}
