package invoice

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the fixed invoice date format, e.g. "05-Jan-24".
const dateLayout = "02-Jan-06"

// Field is a single extracted cell. A cell starts out as raw text (or
// absent) and is overwritten in place with its coerced decimal or date form
// by the type checker. Absence means "unknown", never zero: an absent Field
// must not participate in arithmetic checks.
type Field struct {
	raw     string
	present bool
	num     decimal.Decimal
	numeric bool
	date    time.Time
	dated   bool
}

// Text returns a present Field holding raw text. The zero Field is absent.
func Text(s string) Field {
	return Field{raw: s, present: true}
}

// Present reports whether the cell holds a value.
func (f Field) Present() bool { return f.present }

// Raw returns the cell's raw text as extracted.
func (f Field) Raw() string { return f.raw }

// Decimal returns the coerced numeric value. It is the zero decimal until
// the type checker has coerced the cell.
func (f Field) Decimal() decimal.Decimal { return f.num }

// Date returns the coerced date value, zero until coerced.
func (f Field) Date() time.Time { return f.date }

// UnmarshalJSON accepts a JSON string, number, or null. Numbers keep their
// literal text so coercion sees exactly what the extraction service sent.
func (f *Field) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = Field{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = Field{raw: v, present: true}
		return nil
	}
	*f = Field{raw: s, present: true}
	return nil
}

// MarshalJSON renders the coerced form when one exists, the raw text
// otherwise, and null for absent cells.
func (f Field) MarshalJSON() ([]byte, error) {
	switch {
	case !f.present:
		return []byte("null"), nil
	case f.numeric:
		return []byte(f.num.String()), nil
	case f.dated:
		return json.Marshal(f.date.Format(dateLayout))
	default:
		return json.Marshal(f.raw)
	}
}

// String renders the cell for display: the coerced form when one exists,
// the raw text otherwise, and the empty string for absent cells.
func (f Field) String() string {
	switch {
	case !f.present:
		return ""
	case f.numeric:
		return f.num.String()
	case f.dated:
		return f.date.Format(dateLayout)
	default:
		return f.raw
	}
}

// nullLike lists the raw values the normalizer treats as absent
// (lower-cased; the match is case-insensitive).
var nullLike = map[string]bool{
	"":     true,
	"nan":  true,
	"null": true,
	"none": true,
}

func (f *Field) normalize() {
	if f.present && nullLike[strings.ToLower(f.raw)] {
		*f = Field{}
	}
}

func (f *Field) coerceNumber() error {
	if !f.present || f.numeric {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(f.raw))
	if err != nil {
		return err
	}
	f.num = d
	f.numeric = true
	return nil
}

func (f *Field) coerceDate() error {
	if !f.present || f.dated {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(f.raw))
	if err != nil {
		return err
	}
	f.date = t
	f.dated = true
	return nil
}

// Header is one invoice-header record.
type Header struct {
	InvoiceNumber Field `json:"invoice_number"`
	InvoiceDate   Field `json:"invoice_date"`
	PlaceOfSupply Field `json:"place_of_supply"`
	PlaceOfOrigin Field `json:"place_of_origin"`
	ReceiverName  Field `json:"receiver_name"`
	GSTINSupplier Field `json:"gstin_supplier"`
	TaxableValue  Field `json:"taxable_value"`
	InvoiceValue  Field `json:"invoice_value"`
	TaxAmount     Field `json:"tax_amount"`
}

// LineItem is one line-item record. Every field is individually optional;
// the presence checker enforces that at least one tax-representation group
// and one value-representation group is supplied.
type LineItem struct {
	Quantity     Field `json:"quantity"`
	RatePerItem  Field `json:"rate_per_item_after_discount"`
	TaxableValue Field `json:"taxable_value"`
	SGSTAmount   Field `json:"sgst_amount"`
	CGSTAmount   Field `json:"cgst_amount"`
	IGSTAmount   Field `json:"igst_amount"`
	SGSTRate     Field `json:"sgst_rate"`
	CGSTRate     Field `json:"cgst_rate"`
	IGSTRate     Field `json:"igst_rate"`
	TaxAmount    Field `json:"tax_amount"`
	TaxRate      Field `json:"tax_rate"`
	FinalAmount  Field `json:"final_amount"`
}

// Summary is one summary-totals record.
type Summary struct {
	TotalTaxableValue  Field `json:"total_taxable_value"`
	TotalInvoiceValue  Field `json:"total_invoice_value"`
	TotalTaxAmount     Field `json:"total_tax_amount"`
	TotalCGSTAmount    Field `json:"total_cgst_amount"`
	TotalSGSTAmount    Field `json:"total_sgst_amount"`
	TotalIGSTAmount    Field `json:"total_igst_amount"`
	RoundingAdjustment Field `json:"rounding_adjustment"`
}

// Document holds the three ordered record collections for one invoice.
// Header and Summary typically carry a single row, Items carries N rows.
type Document struct {
	Header  []Header   `json:"invoice_details"`
	Items   []LineItem `json:"line_items"`
	Summary []Summary  `json:"total_summary"`
}

// Collection identifies one of the three record collections in failure
// reports. Row indices are 0-based and collection-local.
type Collection string

const (
	CollectionHeader  Collection = "invoice header"
	CollectionItems   Collection = "line items"
	CollectionSummary Collection = "total summary"
)

// Failure pinpoints one violating record. Fields is populated only by the
// presence checker, and only for the header collection.
type Failure struct {
	Collection Collection `json:"collection"`
	Row        int        `json:"row"`
	Fields     []string   `json:"fields,omitempty"`
	Message    string     `json:"message"`
}

// headerFieldNames lists the header columns in schema order, used to name
// absent fields in presence failures.
var headerFieldNames = []string{
	"invoice_number",
	"invoice_date",
	"place_of_supply",
	"place_of_origin",
	"receiver_name",
	"gstin_supplier",
	"taxable_value",
	"invoice_value",
	"tax_amount",
}

func (h *Header) fields() []*Field {
	return []*Field{
		&h.InvoiceNumber,
		&h.InvoiceDate,
		&h.PlaceOfSupply,
		&h.PlaceOfOrigin,
		&h.ReceiverName,
		&h.GSTINSupplier,
		&h.TaxableValue,
		&h.InvoiceValue,
		&h.TaxAmount,
	}
}

func (li *LineItem) fields() []*Field {
	return []*Field{
		&li.Quantity,
		&li.RatePerItem,
		&li.TaxableValue,
		&li.SGSTAmount,
		&li.CGSTAmount,
		&li.IGSTAmount,
		&li.SGSTRate,
		&li.CGSTRate,
		&li.IGSTRate,
		&li.TaxAmount,
		&li.TaxRate,
		&li.FinalAmount,
	}
}

func (s *Summary) fields() []*Field {
	return []*Field{
		&s.TotalTaxableValue,
		&s.TotalInvoiceValue,
		&s.TotalTaxAmount,
		&s.TotalCGSTAmount,
		&s.TotalSGSTAmount,
		&s.TotalIGSTAmount,
		&s.RoundingAdjustment,
	}
}
