package invoice_test

import (
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// validDocument returns a document that passes every pipeline stage.
// Intrastate invoice: CGST+SGST at 9% each, zero IGST.
// Header: taxable=100, tax=18, invoice=118.
// 1 line item: qty=10, rate=100, taxable=1000, tax=180 by every derivation, final=1180.
// Summary: taxable=1000, tax=180, invoice=1180.
func validDocument() *invoice.Document {
	return &invoice.Document{
		Header: []invoice.Header{
			{
				InvoiceNumber: invoice.Text("INV-001"),
				InvoiceDate:   invoice.Text("05-Jan-24"),
				PlaceOfSupply: invoice.Text("29"),
				PlaceOfOrigin: invoice.Text("29"),
				ReceiverName:  invoice.Text("Buyer Corp"),
				GSTINSupplier: invoice.Text("29ABCDE1234F1Z5"),
				TaxableValue:  invoice.Text("100"),
				InvoiceValue:  invoice.Text("118"),
				TaxAmount:     invoice.Text("18"),
			},
		},
		Items: []invoice.LineItem{
			{
				Quantity:     invoice.Text("10"),
				RatePerItem:  invoice.Text("100"),
				TaxableValue: invoice.Text("1000"),
				SGSTAmount:   invoice.Text("90"),
				CGSTAmount:   invoice.Text("90"),
				IGSTAmount:   invoice.Text("0"),
				SGSTRate:     invoice.Text("9"),
				CGSTRate:     invoice.Text("9"),
				IGSTRate:     invoice.Text("0"),
				TaxAmount:    invoice.Text("180"),
				TaxRate:      invoice.Text("18"),
				FinalAmount:  invoice.Text("1180"),
			},
		},
		Summary: []invoice.Summary{
			{
				TotalTaxableValue:  invoice.Text("1000"),
				TotalInvoiceValue:  invoice.Text("1180"),
				TotalTaxAmount:     invoice.Text("180"),
				TotalCGSTAmount:    invoice.Text("90"),
				TotalSGSTAmount:    invoice.Text("90"),
				TotalIGSTAmount:    invoice.Text("0"),
				RoundingAdjustment: invoice.Text("0"),
			},
		},
	}
}
