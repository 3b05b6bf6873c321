package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// relTolerance is the relative tolerance for reconciliation comparisons:
// two values agree iff |a-b| <= 1e-5 * max(|a|,|b|). No absolute tolerance.
var (
	relTolerance = decimal.New(1, -5)
	hundred      = decimal.NewFromInt(100)
)

func closeEnough(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	bound := decimal.Max(a.Abs(), b.Abs()).Mul(relTolerance)
	return diff.LessThanOrEqual(bound)
}

// CheckRelations re-derives overlapping quantities from independent field
// groups and asserts agreement within tolerance, within records and across
// collections. Header rows are checked first, then line items, then
// summary rows; failures are returned in that order. Rows whose inputs are
// incomplete are skipped, never failed: absent means unknown, not zero.
func CheckRelations(doc *Document) []Failure {
	var fails []Failure
	fails = append(fails, checkHeaderRelations(doc.Header)...)
	fails = append(fails, checkLineItemRelations(doc.Items)...)
	fails = append(fails, checkSummaryRelations(doc.Summary)...)
	return fails
}

func checkHeaderRelations(rows []Header) []Failure {
	var fails []Failure
	for i := range rows {
		h := &rows[i]
		if !h.InvoiceValue.Present() || !h.TaxableValue.Present() || !h.TaxAmount.Present() {
			continue
		}
		want := h.TaxableValue.Decimal().Add(h.TaxAmount.Decimal())
		if !closeEnough(h.InvoiceValue.Decimal(), want) {
			fails = append(fails, Failure{
				Collection: CollectionHeader,
				Row:        i,
				Message: fmt.Sprintf("Invoice value mismatch at row %d: %s != %s + %s",
					i, h.InvoiceValue.Decimal(), h.TaxableValue.Decimal(), h.TaxAmount.Decimal()),
			})
		}
	}
	return fails
}

func checkLineItemRelations(items []LineItem) []Failure {
	var fails []Failure
	for i := range items {
		li := &items[i]
		base, ok := baseValue(li)
		if !ok {
			continue
		}

		estimates := taxEstimates(li, base)
		mismatched := false
		for j := 0; j+1 < len(estimates); j++ {
			if !closeEnough(estimates[j], estimates[j+1]) {
				fails = append(fails, Failure{
					Collection: CollectionItems,
					Row:        i,
					Message: fmt.Sprintf("Tax amount mismatch at row %d: different tax calculations yield different results", i),
				})
				mismatched = true
				break
			}
		}
		if mismatched {
			continue
		}

		if li.FinalAmount.Present() && len(estimates) > 0 {
			want := base.Add(estimates[0])
			if !closeEnough(li.FinalAmount.Decimal(), want) {
				fails = append(fails, Failure{
					Collection: CollectionItems,
					Row:        i,
					Message: fmt.Sprintf("Final amount mismatch at row %d: %s != %s + %s",
						i, li.FinalAmount.Decimal(), base, estimates[0]),
				})
			}
		}
	}
	return fails
}

// baseValue resolves the pre-tax base of a line item: taxable_value when
// present, else rate x quantity when both are present. Rows with no
// resolvable base skip reconciliation entirely.
func baseValue(li *LineItem) (decimal.Decimal, bool) {
	switch {
	case li.TaxableValue.Present():
		return li.TaxableValue.Decimal(), true
	case li.RatePerItem.Present() && li.Quantity.Present():
		return li.RatePerItem.Decimal().Mul(li.Quantity.Decimal()), true
	default:
		return decimal.Decimal{}, false
	}
}

// taxEstimates computes up to four independent tax derivations, each
// included only when all of its inputs are present, in the fixed order:
// split amounts, split rates, flat amount, flat rate.
func taxEstimates(li *LineItem, base decimal.Decimal) []decimal.Decimal {
	est := make([]decimal.Decimal, 0, 4)
	if li.SGSTAmount.Present() && li.CGSTAmount.Present() && li.IGSTAmount.Present() {
		est = append(est, li.SGSTAmount.Decimal().Add(li.CGSTAmount.Decimal()).Add(li.IGSTAmount.Decimal()))
	}
	if li.SGSTRate.Present() && li.CGSTRate.Present() && li.IGSTRate.Present() {
		sum := li.SGSTRate.Decimal().Add(li.CGSTRate.Decimal()).Add(li.IGSTRate.Decimal())
		est = append(est, base.Mul(sum).Div(hundred))
	}
	if li.TaxAmount.Present() {
		est = append(est, li.TaxAmount.Decimal())
	}
	if li.TaxRate.Present() {
		est = append(est, base.Mul(li.TaxRate.Decimal()).Div(hundred))
	}
	return est
}

func checkSummaryRelations(rows []Summary) []Failure {
	var fails []Failure
	for i := range rows {
		s := &rows[i]
		totalTax, ok := resolveTotalTax(s)
		if !ok || !s.TotalTaxableValue.Present() || !s.TotalInvoiceValue.Present() {
			continue
		}
		want := s.TotalTaxableValue.Decimal().Add(totalTax)
		if !closeEnough(s.TotalInvoiceValue.Decimal(), want) {
			fails = append(fails, Failure{
				Collection: CollectionSummary,
				Row:        i,
				Message: fmt.Sprintf("Total invoice value mismatch at row %d: %s != %s + %s",
					i, s.TotalInvoiceValue.Decimal(), s.TotalTaxableValue.Decimal(), totalTax),
			})
		}
	}
	return fails
}

// resolveTotalTax resolves the aggregate tax for a summary row:
// total_tax_amount when present, else the complete cgst+sgst+igst triple.
// ok=false means the row's invoice-total check is not applicable.
func resolveTotalTax(s *Summary) (decimal.Decimal, bool) {
	if s.TotalTaxAmount.Present() {
		return s.TotalTaxAmount.Decimal(), true
	}
	if s.TotalCGSTAmount.Present() && s.TotalSGSTAmount.Present() && s.TotalIGSTAmount.Present() {
		return s.TotalCGSTAmount.Decimal().Add(s.TotalSGSTAmount.Decimal()).Add(s.TotalIGSTAmount.Decimal()), true
	}
	return decimal.Decimal{}, false
}
