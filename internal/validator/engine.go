package validator

import (
	"context"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator/invoice"
)

// Step labels the pipeline stage a verdict refers to.
type Step string

const (
	StepMissingValues Step = "Step 1: Missing Values"
	StepDataTypes     Step = "Step 2: Data Types"
	StepRelations     Step = "Step 3: Relations"
	StepAll           Step = "All Steps"
)

// Report is the verdict for one document: whether it passed, which step
// failed (StepAll on success), and a human-readable diagnostic. Violations
// is populated only by ValidateAll.
type Report struct {
	Passed     bool              `json:"passed"`
	Step       Step              `json:"failed_step"`
	Details    string            `json:"details"`
	Violations []invoice.Failure `json:"violations,omitempty"`
}

// Engine runs the validation pipeline over one document's three record
// collections: normalize, then presence, type coercion and reconciliation
// as sequential gates. It holds no state across calls; independent calls
// may run concurrently as long as they operate on distinct documents.
type Engine struct{}

// NewEngine creates a validation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Validate runs the pipeline and reports the first failure only, in fixed
// stage and row order. Type coercion mutates the document's cells in place;
// re-running on the same document yields the same verdict.
func (e *Engine) Validate(ctx context.Context, doc *invoice.Document) *Report {
	return e.run(ctx, doc, false)
}

// ValidateAll is the opt-in all-violations variant: it reports every
// violation within the failing stage. Stages remain gated, so a later
// stage runs only when every record passed the prior stage.
func (e *Engine) ValidateAll(ctx context.Context, doc *invoice.Document) *Report {
	return e.run(ctx, doc, true)
}

func (e *Engine) run(_ context.Context, doc *invoice.Document, collectAll bool) *Report {
	invoice.Normalize(doc)

	if fails := invoice.CheckPresence(doc); len(fails) > 0 {
		return failedReport(StepMissingValues, fails, collectAll)
	}
	if fails := invoice.CoerceTypes(doc); len(fails) > 0 {
		return failedReport(StepDataTypes, fails, collectAll)
	}
	if fails := invoice.CheckRelations(doc); len(fails) > 0 {
		return failedReport(StepRelations, fails, collectAll)
	}

	return &Report{Passed: true, Step: StepAll, Details: "Validation successful"}
}

func failedReport(step Step, fails []invoice.Failure, collectAll bool) *Report {
	rep := &Report{Passed: false, Step: step, Details: fails[0].Message}
	if collectAll {
		rep.Violations = fails
	}
	return rep
}
