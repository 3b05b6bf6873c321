package port

import (
	"context"
	"io"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// InvoiceExtractor sends an uploaded invoice to the upstream extraction
// service and materializes the returned record collections.
type InvoiceExtractor interface {
	Extract(ctx context.Context, filename string, file io.Reader) (*invoice.Document, error)
}
