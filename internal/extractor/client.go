package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/config"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/domain"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// Client calls the upstream document extraction service. The service takes
// a PDF as multipart form data and returns three loosely-typed record sets
// keyed "Invoice Details" (object), "Line Items" (array of objects) and
// "Total Summary" (object).
type Client struct {
	endpoint    string
	accessToken string
	email       string
	client      *http.Client
}

// NewClient creates an extraction client from config.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, cfg.URL)
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		email:       cfg.Email,
		client:      &http.Client{Timeout: timeout},
	}
}

// extractionPayload is the wire shape of a successful extraction response.
type extractionPayload struct {
	InvoiceDetails invoice.Header     `json:"Invoice Details"`
	LineItems      []invoice.LineItem `json:"Line Items"`
	TotalSummary   invoice.Summary    `json:"Total Summary"`
}

// document materializes the payload into the three ordered collections.
// Header and summary are single-row even when the service omitted the key;
// the validator then reports the absent fields rather than the transport.
func (p *extractionPayload) document() *invoice.Document {
	return &invoice.Document{
		Header:  []invoice.Header{p.InvoiceDetails},
		Items:   p.LineItems,
		Summary: []invoice.Summary{p.TotalSummary},
	}
}

// Extract posts the file to the extraction service and materializes the
// response into a Document.
func (c *Client) Extract(ctx context.Context, filename string, file io.Reader) (*invoice.Document, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copying file into request: %w", err)
	}
	if err := mw.WriteField("access_token", c.accessToken); err != nil {
		return nil, fmt.Errorf("writing access_token field: %w", err)
	}
	if err := mw.WriteField("email", c.email); err != nil {
		return nil, fmt.Errorf("writing email field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrExtractionFailed, resp.StatusCode, string(respBody))
	}

	var payload extractionPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}

	return payload.document(), nil
}
