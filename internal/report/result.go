// Package report runs a validation pass over two databases and renders
// its outcome.
package report

import (
	"fmt"
	"strings"
	"time"

	"db-migcheck/internal/validation"
)

// Result is everything one run produced. It is read-only once Run returns.
type Result struct {
	RowCounts      validation.RowCounts
	Validation     validation.Validation
	Comparison     map[string]validation.SchemaComparison
	Details        validation.DatabaseSummary
	Datatypes      validation.DatatypeComparison
	MissingSchemas []string
	OutputFileName string
	GeneratedAt    time.Time
}

const fileNameLayout = "20060102_150405"

// FileName builds migration_summary_<src>_to_<tgt>_<UTC timestamp>.<format>
// from the engine names of both sides.
func FileName(sourceEngine, targetEngine, format string, at time.Time) string {
	return fmt.Sprintf("migration_summary_%s_to_%s_%s.%s",
		strings.ToLower(sourceEngine),
		strings.ToLower(targetEngine),
		at.UTC().Format(fileNameLayout),
		strings.ToLower(format))
}
