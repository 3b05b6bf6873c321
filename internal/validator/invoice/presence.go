package invoice

import (
	"fmt"
	"strings"
)

// CheckPresence evaluates the fixed presence predicate of each collection,
// header rows first, then line items, then summary rows. Failures are
// returned in evaluation order, so the first element is the failure the
// default first-failure contract reports. For header rows the failure also
// names every absent column at that row.
func CheckPresence(doc *Document) []Failure {
	var fails []Failure

	for i := range doc.Header {
		h := &doc.Header[i]
		if headerPresenceOK(h) {
			continue
		}
		missing := absentHeaderFields(h)
		fails = append(fails, Failure{
			Collection: CollectionHeader,
			Row:        i,
			Fields:     missing,
			Message: fmt.Sprintf("Missing required values in %s: %s at row %d",
				CollectionHeader, strings.Join(missing, ", "), i),
		})
	}

	for i := range doc.Items {
		if lineItemPresenceOK(&doc.Items[i]) {
			continue
		}
		fails = append(fails, Failure{
			Collection: CollectionItems,
			Row:        i,
			Message:    fmt.Sprintf("Missing required values in %s at row %d", CollectionItems, i),
		})
	}

	for i := range doc.Summary {
		if summaryPresenceOK(&doc.Summary[i]) {
			continue
		}
		fails = append(fails, Failure{
			Collection: CollectionSummary,
			Row:        i,
			Message:    fmt.Sprintf("Missing required values in %s at row %d", CollectionSummary, i),
		})
	}

	return fails
}

// Header row valid iff all hard-required fields are present and at least
// one of taxable_value / invoice_value is supplied.
func headerPresenceOK(h *Header) bool {
	return h.InvoiceNumber.Present() &&
		h.InvoiceDate.Present() &&
		h.PlaceOfSupply.Present() &&
		h.PlaceOfOrigin.Present() &&
		h.ReceiverName.Present() &&
		h.GSTINSupplier.Present() &&
		(h.TaxableValue.Present() || h.InvoiceValue.Present()) &&
		h.TaxAmount.Present()
}

// Line-item row valid iff at least one tax-representation group and at
// least one value-representation group is present.
func lineItemPresenceOK(li *LineItem) bool {
	tax := li.TaxAmount.Present() ||
		li.TaxRate.Present() ||
		(li.SGSTAmount.Present() && li.CGSTAmount.Present()) ||
		li.IGSTAmount.Present() ||
		(li.SGSTRate.Present() && li.CGSTRate.Present()) ||
		li.IGSTRate.Present()
	value := li.FinalAmount.Present() ||
		li.TaxableValue.Present() ||
		(li.RatePerItem.Present() && li.Quantity.Present())
	return tax && value
}

// Summary row valid iff a value total and a tax total are each supplied
// through at least one alternative.
func summaryPresenceOK(s *Summary) bool {
	value := s.TotalTaxableValue.Present() || s.TotalInvoiceValue.Present()
	tax := s.TotalTaxAmount.Present() ||
		s.TotalIGSTAmount.Present() ||
		(s.TotalCGSTAmount.Present() && s.TotalSGSTAmount.Present())
	return value && tax
}

// absentHeaderFields lists every absent column at the row, in schema order.
func absentHeaderFields(h *Header) []string {
	var out []string
	for i, f := range h.fields() {
		if !f.Present() {
			out = append(out, headerFieldNames[i])
		}
	}
	return out
}
