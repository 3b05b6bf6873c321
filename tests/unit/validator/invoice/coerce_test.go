package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

func TestCoerceTypes_ValidDocument(t *testing.T) {
	doc := validDocument()
	fails := invoice.CoerceTypes(doc)
	require.Empty(t, fails)

	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), doc.Header[0].InvoiceDate.Date())
	assert.True(t, doc.Header[0].TaxableValue.Decimal().Equal(decimal.NewFromInt(100)))
	assert.True(t, doc.Items[0].TaxAmount.Decimal().Equal(decimal.NewFromInt(180)))
	assert.True(t, doc.Summary[0].TotalInvoiceValue.Decimal().Equal(decimal.NewFromInt(1180)))
}

func TestCoerceTypes_DecimalAndNegativeValues(t *testing.T) {
	doc := validDocument()
	doc.Summary[0].RoundingAdjustment = invoice.Text("-0.49")
	doc.Items[0].TaxRate = invoice.Text("18.00")

	require.Empty(t, invoice.CoerceTypes(doc))
	assert.True(t, doc.Summary[0].RoundingAdjustment.Decimal().Equal(decimal.RequireFromString("-0.49")))
	assert.True(t, doc.Items[0].TaxRate.Decimal().Equal(decimal.NewFromInt(18)))
}

func TestCoerceTypes_SurroundingWhitespaceTolerated(t *testing.T) {
	doc := validDocument()
	doc.Header[0].TaxAmount = invoice.Text(" 18 ")
	doc.Header[0].InvoiceDate = invoice.Text(" 05-Jan-24 ")

	require.Empty(t, invoice.CoerceTypes(doc))
	assert.True(t, doc.Header[0].TaxAmount.Decimal().Equal(decimal.NewFromInt(18)))
}

func TestCoerceTypes_AbsentCellsSkipped(t *testing.T) {
	doc := validDocument()
	doc.Header[0].InvoiceValue = invoice.Field{}
	doc.Items[0].FinalAmount = invoice.Field{}

	assert.Empty(t, invoice.CoerceTypes(doc))
	assert.False(t, doc.Header[0].InvoiceValue.Present())
}

func TestCoerceTypes_BadDate(t *testing.T) {
	doc := validDocument()
	doc.Header[0].InvoiceDate = invoice.Text("2024-01-05")

	fails := invoice.CoerceTypes(doc)
	require.NotEmpty(t, fails)
	assert.Equal(t, invoice.CollectionHeader, fails[0].Collection)
	assert.Contains(t, fails[0].Message, "Data type conversion failed: invoice header row 0: invoice_date:")
}

func TestCoerceTypes_BadNumber(t *testing.T) {
	doc := validDocument()
	doc.Items[0].TaxableValue = invoice.Text("one thousand")

	fails := invoice.CoerceTypes(doc)
	require.Len(t, fails, 1)
	assert.Equal(t, invoice.CollectionItems, fails[0].Collection)
	assert.Equal(t, 0, fails[0].Row)
	assert.Contains(t, fails[0].Message, "Data type conversion failed: line items row 0: taxable_value:")
}

func TestCoerceTypes_FailureOrderIsColumnMajor(t *testing.T) {
	// quantity comes before taxable_value in the column order, so the
	// quantity failure on row 1 precedes the taxable_value failure on row 0.
	doc := validDocument()
	doc.Items = append(doc.Items, validDocument().Items[0])
	doc.Items[0].TaxableValue = invoice.Text("bad")
	doc.Items[1].Quantity = invoice.Text("also bad")

	fails := invoice.CoerceTypes(doc)
	require.Len(t, fails, 2)
	assert.Contains(t, fails[0].Message, "quantity")
	assert.Equal(t, 1, fails[0].Row)
	assert.Contains(t, fails[1].Message, "taxable_value")
	assert.Equal(t, 0, fails[1].Row)
}

func TestCoerceTypes_Idempotent(t *testing.T) {
	doc := validDocument()
	require.Empty(t, invoice.CoerceTypes(doc))
	require.Empty(t, invoice.CoerceTypes(doc))
	assert.True(t, doc.Header[0].TaxableValue.Decimal().Equal(decimal.NewFromInt(100)))
}
