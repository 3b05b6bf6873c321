// Package csvexport renders validated invoice documents as CSV reports
// suitable for download from the API.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// BOM is the UTF-8 byte order mark. Excel needs it to detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns is the fixed report layout: verdict first, then the invoice
// header fields, one block of line item fields, and the summary totals.
// Document-level values repeat on every row.
var columns = []string{
	"passed",
	"failed_step",
	"details",
	"invoice_number",
	"invoice_date",
	"place_of_supply",
	"place_of_origin",
	"receiver_name",
	"gstin_supplier",
	"taxable_value",
	"invoice_value",
	"tax_amount",
	"item_quantity",
	"item_rate_per_item_after_discount",
	"item_taxable_value",
	"item_sgst_amount",
	"item_cgst_amount",
	"item_igst_amount",
	"item_sgst_rate",
	"item_cgst_rate",
	"item_igst_rate",
	"item_tax_amount",
	"item_tax_rate",
	"item_final_amount",
	"total_taxable_value",
	"total_invoice_value",
	"total_tax_amount",
	"total_cgst_amount",
	"total_sgst_amount",
	"total_igst_amount",
	"rounding_adjustment",
}

// Writer writes invoice validation reports in CSV form.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer targeting w. The caller is responsible for
// writing the BOM before the header if the output is meant for Excel.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocument writes one row per line item. A document without line
// items still produces a single row with the item columns left blank.
func (w *Writer) WriteDocument(doc *invoice.Document, rep *validator.Report) error {
	verdict := []string{
		fmt.Sprintf("%t", rep.Passed),
		string(rep.Step),
		rep.Details,
	}

	header := make([]string, 9)
	if len(doc.Header) > 0 {
		h := &doc.Header[0]
		header = []string{
			h.InvoiceNumber.String(),
			h.InvoiceDate.String(),
			h.PlaceOfSupply.String(),
			h.PlaceOfOrigin.String(),
			h.ReceiverName.String(),
			h.GSTINSupplier.String(),
			h.TaxableValue.String(),
			h.InvoiceValue.String(),
			h.TaxAmount.String(),
		}
	}

	summary := make([]string, 7)
	if len(doc.Summary) > 0 {
		s := &doc.Summary[0]
		summary = []string{
			s.TotalTaxableValue.String(),
			s.TotalInvoiceValue.String(),
			s.TotalTaxAmount.String(),
			s.TotalCGSTAmount.String(),
			s.TotalSGSTAmount.String(),
			s.TotalIGSTAmount.String(),
			s.RoundingAdjustment.String(),
		}
	}

	if len(doc.Items) == 0 {
		row := buildRow(verdict, header, make([]string, 12), summary)
		return w.csv.Write(row)
	}

	for i := range doc.Items {
		it := &doc.Items[i]
		item := []string{
			it.Quantity.String(),
			it.RatePerItem.String(),
			it.TaxableValue.String(),
			it.SGSTAmount.String(),
			it.CGSTAmount.String(),
			it.IGSTAmount.String(),
			it.SGSTRate.String(),
			it.CGSTRate.String(),
			it.IGSTRate.String(),
			it.TaxAmount.String(),
			it.TaxRate.String(),
			it.FinalAmount.String(),
		}
		if err := w.csv.Write(buildRow(verdict, header, item, summary)); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error reports any error that occurred during a previous write or flush.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func buildRow(groups ...[]string) []string {
	row := make([]string, 0, len(columns))
	for _, g := range groups {
		row = append(row, g...)
	}
	return row
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips characters that are unsafe in a download filename.
func SanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		name = "invoice"
	}
	return name
}

// BuildFilename derives the CSV report filename from the uploaded file name.
func BuildFilename(uploaded string) string {
	base := strings.TrimSuffix(uploaded, filepath.Ext(uploaded))
	base = SanitizeFilename(base)
	return fmt.Sprintf("%s_validation_%s.csv", base, time.Now().Format("20060102"))
}
