package report

import (
	"sort"
	"time"

	"db-migcheck/internal/validation"
)

// Document is the serialized form of a Result. It is built fresh for every
// rendering and shares no slices with the Result.
type Document struct {
	GeneratedAt      string                        `json:"generated_at" yaml:"generated_at"`
	Databases        validation.DatabaseSummary    `json:"databases" yaml:"databases"`
	SchemaValidation SchemaLevelView               `json:"schema_validation" yaml:"schema_validation"`
	MissingSchemas   []string                      `json:"missing_schemas" yaml:"missing_schemas"`
	Validation       []SchemaView                  `json:"validation" yaml:"validation"`
	Schemas          []SchemaView                  `json:"schemas" yaml:"schemas"`
	RowCounts        []RowCountView                `json:"row_counts" yaml:"row_counts"`
	TargetOnlyTables []RowCountView                `json:"target_only_tables" yaml:"target_only_tables"`
	Datatypes        validation.DatatypeComparison `json:"datatypes" yaml:"datatypes"`
}

type SchemaLevelView struct {
	ValidationPercent float64  `json:"validation_percent" yaml:"validation_percent"`
	AllItems          []string `json:"all_items" yaml:"all_items"`
	MissingItems      []string `json:"missing_items" yaml:"missing_items"`
	TotalSource       int      `json:"total_source_objects" yaml:"total_source_objects"`
	TotalTarget       int      `json:"total_target_objects" yaml:"total_target_objects"`
}

// SchemaView is the validation of one schema joined with its comparison.
type SchemaView struct {
	Name              string                `json:"name" yaml:"name"`
	ValidationPercent validation.Percent    `json:"validation_percent" yaml:"validation_percent"`
	Grade             validation.MatchState `json:"grade" yaml:"grade"`
	SourceCount       int                   `json:"source_count" yaml:"source_count"`
	TargetCount       int                   `json:"target_count" yaml:"target_count"`
	MissingCount      int                   `json:"missing_count" yaml:"missing_count"`
	Objects           []ObjectView          `json:"objects" yaml:"objects"`
}

// ObjectView joins the comparison and the validation of one object type.
type ObjectView struct {
	Type              validation.ObjectType `json:"type" yaml:"type"`
	SourceCount       int                   `json:"source_count" yaml:"source_count"`
	TargetCount       int                   `json:"target_count" yaml:"target_count"`
	ValidationPercent float64               `json:"validation_percent" yaml:"validation_percent"`
	Reason            validation.Reason     `json:"reason" yaml:"reason"`
	Missing           []string              `json:"missing" yaml:"missing"`
	TargetOnly        []string              `json:"target_only" yaml:"target_only"`
}

// RowCountView is one table line. A nil count means the table is absent
// on that side.
type RowCountView struct {
	Schema      string                `json:"schema" yaml:"schema"`
	Table       string                `json:"table" yaml:"table"`
	SourceCount *int64                `json:"source_count" yaml:"source_count"`
	TargetCount *int64                `json:"target_count" yaml:"target_count"`
	State       validation.MatchState `json:"state,omitempty" yaml:"state,omitempty"`
}

// SummaryView builds the Document for r. Validation lists every schema
// with objects on either side; Schemas, the comparison detail, only those
// with objects on both.
func SummaryView(r *Result) Document {
	doc := Document{
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Databases:   r.Details,
		SchemaValidation: SchemaLevelView{
			ValidationPercent: r.Validation.Schema.ValidationPercent,
			AllItems:          clone(r.Validation.Schema.AllItems),
			MissingItems:      clone(r.Validation.Schema.MissingItems),
			TotalSource:       r.Validation.Schema.TotalSource,
			TotalTarget:       r.Validation.Schema.TotalTarget,
		},
		MissingSchemas:   clone(r.MissingSchemas),
		Validation:       []SchemaView{},
		Schemas:          []SchemaView{},
		RowCounts:        []RowCountView{},
		TargetOnlyTables: []RowCountView{},
		Datatypes: validation.DatatypeComparison{
			Counts:        append([]validation.DatatypeCount{}, r.Datatypes.Counts...),
			SourceColumns: append([]validation.DatatypeColumn{}, r.Datatypes.SourceColumns...),
			TargetColumns: append([]validation.DatatypeColumn{}, r.Datatypes.TargetColumns...),
		},
	}

	names := make([]string, 0, len(r.Validation.Objects))
	for name := range r.Validation.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sv := r.Validation.Objects[name]
		cmp := r.Comparison[name]
		if sv.DisplayFlag {
			doc.Validation = append(doc.Validation, schemaView(name, sv, cmp))
		}
		if cmp.DisplayFlag {
			doc.Schemas = append(doc.Schemas, schemaView(name, sv, cmp))
		}
	}

	for _, k := range r.RowCounts.Keys() {
		e := r.RowCounts.Source[k]
		src := e.SourceCount
		line := RowCountView{Schema: k.Schema, Table: k.Table, SourceCount: &src, State: e.State}
		if e.TargetCount != nil {
			tgt := *e.TargetCount
			line.TargetCount = &tgt
		}
		doc.RowCounts = append(doc.RowCounts, line)
	}
	for _, k := range r.RowCounts.TargetOnly() {
		tgt := r.RowCounts.Target[k]
		doc.TargetOnlyTables = append(doc.TargetOnlyTables, RowCountView{Schema: k.Schema, Table: k.Table, TargetCount: &tgt})
	}
	return doc
}

func schemaView(name string, sv validation.SchemaValidation, cmp validation.SchemaComparison) SchemaView {
	view := SchemaView{
		Name:              name,
		ValidationPercent: sv.ValidationPercent,
		Grade:             validation.Grade(sv.ValidationPercent),
		SourceCount:       sv.SourceCount,
		TargetCount:       sv.TargetCount,
		MissingCount:      sv.MissingCount,
	}
	for _, t := range validation.ObjectTypes {
		entry := cmp.Entries[t]
		ov := sv.Objects[t]
		view.Objects = append(view.Objects, ObjectView{
			Type:              t,
			SourceCount:       entry.SourceCount,
			TargetCount:       entry.TargetCount,
			ValidationPercent: ov.ValidationPercent,
			Reason:            ov.Reason,
			Missing:           clone(ov.MissingItems),
			TargetOnly:        clone(entry.TargetOnly),
		})
	}
	return view
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
