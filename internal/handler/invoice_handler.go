package handler

import (
	"bytes"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/config"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/csvexport"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/domain"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/port"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// InvoiceHandler handles invoice upload, extraction and validation endpoints.
type InvoiceHandler struct {
	extractor   port.InvoiceExtractor
	engine      *validator.Engine
	maxFileSize int64 // bytes
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(ex port.InvoiceExtractor, engine *validator.Engine, uploadCfg *config.UploadConfig) *InvoiceHandler {
	return &InvoiceHandler{
		extractor:   ex,
		engine:      engine,
		maxFileSize: uploadCfg.MaxFileSizeMB * 1024 * 1024,
	}
}

// Validate handles POST /api/v1/invoices/validate.
// It accepts a multipart PDF upload, sends it to the extraction service,
// runs the validation pipeline over the returned record collections and
// responds with the verdict plus the materialized collections.
// ?mode=all opts into the all-violations report.
func (h *InvoiceHandler) Validate(c *gin.Context) {
	doc, name, ok := h.extract(c)
	if !ok {
		return
	}

	var rep *validator.Report
	if c.Query("mode") == "all" {
		rep = h.engine.ValidateAll(c.Request.Context(), doc)
	} else {
		rep = h.engine.Validate(c.Request.Context(), doc)
	}

	requestID, _ := c.Get("request_id")
	log.Printf("[%s] invoiceHandler.Validate: %s passed=%t step=%q",
		requestID, name, rep.Passed, rep.Step)

	RespondOK(c, gin.H{
		"verdict": rep,
		"invoice": doc,
	})
}

// Export handles POST /api/v1/invoices/export.
// Same pipeline as Validate, but responds with a CSV report: one row per
// line item with document-level and verdict columns repeated.
func (h *InvoiceHandler) Export(c *gin.Context) {
	doc, name, ok := h.extract(c)
	if !ok {
		return
	}

	rep := h.engine.Validate(c.Request.Context(), doc)

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteDocument(doc, rep); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(name)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// extract reads and checks the uploaded file, then calls the extraction
// service. Returns ok=false if an error response has already been written.
func (h *InvoiceHandler) extract(c *gin.Context) (*invoice.Document, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, "", false
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return nil, "", false
	}

	doc, err := h.extractor.Extract(c.Request.Context(), header.Filename, file)
	if err != nil {
		HandleError(c, err)
		return nil, "", false
	}

	return doc, header.Filename, true
}
