package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// MockInvoiceExtractor is a mock implementation of port.InvoiceExtractor.
type MockInvoiceExtractor struct {
	mock.Mock
}

func (m *MockInvoiceExtractor) Extract(ctx context.Context, filename string, file io.Reader) (*invoice.Document, error) {
	args := m.Called(ctx, filename, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Document), args.Error(1)
}
