package validation

import (
	"sort"
)

// ObjectType is a kind of catalog entity tracked per schema.
type ObjectType string

const (
	Schema     ObjectType = "schema"
	Table      ObjectType = "table"
	View       ObjectType = "view"
	Procedure  ObjectType = "procedure"
	Function   ObjectType = "function"
	Index      ObjectType = "index"
	Trigger    ObjectType = "trigger"
	Constraint ObjectType = "constraint"
	Sequence   ObjectType = "sequence"
)

// ObjectTypes lists the kinds tracked inside a schema, in report order.
var ObjectTypes = []ObjectType{Table, View, Procedure, Function, Index, Trigger, Constraint, Sequence}

// NameField is the column a catalog row carries the object name in.
func (t ObjectType) NameField() string {
	return string(t) + "_name"
}

// Side identifies which database a value was fetched from.
type Side string

const (
	SourceSide Side = "source"
	TargetSide Side = "target"
)

// Row is one result row keyed by lowercased column name.
type Row map[string]interface{}

// NameSet is a set of normalized object names.
type NameSet map[string]struct{}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int { return len(s) }

// Sorted returns the members in ascending order. Never nil.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the names present in both sets.
func (s NameSet) Intersect(other NameSet) NameSet {
	out := make(NameSet)
	for n := range s {
		if other.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Minus returns the names of s that are not in other.
func (s NameSet) Minus(other NameSet) NameSet {
	out := make(NameSet)
	for n := range s {
		if !other.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Bucket holds the objects of one type in one schema.
// Count is the number of rows fetched and is fixed at ingestion.
type Bucket struct {
	Names NameSet
	Count int
}

func emptyBucket() Bucket {
	return Bucket{Names: NameSet{}}
}

// SchemaObjects maps every tracked object type to its bucket.
type SchemaObjects map[ObjectType]Bucket

func emptySchemaObjects() SchemaObjects {
	so := make(SchemaObjects, len(ObjectTypes))
	for _, t := range ObjectTypes {
		so[t] = emptyBucket()
	}
	return so
}

// Bucket returns the bucket for t, or an empty one.
func (so SchemaObjects) Bucket(t ObjectType) Bucket {
	if b, ok := so[t]; ok && b.Names != nil {
		return b
	}
	return emptyBucket()
}

// Total sums the fetched counts over all tracked types.
func (so SchemaObjects) Total() int {
	total := 0
	for _, t := range ObjectTypes {
		total += so.Bucket(t).Count
	}
	return total
}

// Inventory is the normalized catalog of one database side.
type Inventory struct {
	Side    Side
	Schemas map[string]SchemaObjects
	// Listed holds the schemas the side actually reported. Schemas may
	// carry extra padded keys with empty buckets.
	Listed NameSet
}

// Has reports whether the side listed the schema.
func (inv Inventory) Has(schema string) bool {
	return inv.Listed.Has(schema)
}

// Objects returns the buckets for a schema; absent schemas yield empty buckets.
func (inv Inventory) Objects(schema string) SchemaObjects {
	if so, ok := inv.Schemas[schema]; ok {
		return so
	}
	return emptySchemaObjects()
}

// Names returns every schema key in ascending order.
func (inv Inventory) Names() []string {
	out := make([]string, 0, len(inv.Schemas))
	for n := range inv.Schemas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ComparisonEntry is the reconciled view of one object type in one schema.
type ComparisonEntry struct {
	SourceOnly  []string `json:"source_only" yaml:"source_only"`
	TargetOnly  []string `json:"target_only" yaml:"target_only"`
	SourceCount int      `json:"source_count" yaml:"source_count"`
	TargetCount int      `json:"target_count" yaml:"target_count"`
}

// SchemaComparison groups the entries of one schema.
// DisplayFlag is false for schemas with no objects on one of the sides.
type SchemaComparison struct {
	DisplayFlag bool                           `json:"display_flag" yaml:"display_flag"`
	Entries     map[ObjectType]ComparisonEntry `json:"entries" yaml:"entries"`
}

// Reason explains an object-type validation result.
type Reason string

const (
	ReasonOnlyOnTarget  Reason = "Only present on target"
	ReasonNotMigrated   Reason = "No objects were migrated"
	ReasonNoObjects     Reason = "No objects at source or target"
	ReasonNamesMismatch Reason = "Count matched, names didn't"
	ReasonPartial       Reason = "Partially migrated"
	ReasonMatched       Reason = "Counts and names matched"
	ReasonSchemaAbsent  Reason = "Schema absent on destination"
)

// ObjectValidation scores one object type of one schema.
type ObjectValidation struct {
	MissingItems      []string `json:"missing_items" yaml:"missing_items"`
	AllItems          []string `json:"all_items" yaml:"all_items"`
	ValidationPercent float64  `json:"validation_percent" yaml:"validation_percent"`
	Reason            Reason   `json:"reason" yaml:"reason"`
}

// SchemaValidation rolls the object validations of a schema up.
type SchemaValidation struct {
	Objects           map[ObjectType]ObjectValidation `json:"objects" yaml:"objects"`
	ValidationPercent Percent                         `json:"validation_percent" yaml:"validation_percent"`
	DisplayFlag       bool                            `json:"display_flag" yaml:"display_flag"`
	SourceCount       int                             `json:"source_count" yaml:"source_count"`
	TargetCount       int                             `json:"target_count" yaml:"target_count"`
	MissingCount      int                             `json:"missing_count" yaml:"missing_count"`
}

// SchemaLevelValidation scores schema presence across the two sides.
type SchemaLevelValidation struct {
	MissingItems      []string `json:"missing_items" yaml:"missing_items"`
	AllItems          []string `json:"all_items" yaml:"all_items"`
	ValidationPercent float64  `json:"validation_percent" yaml:"validation_percent"`
	TotalSource       int      `json:"total_source" yaml:"total_source"`
	TotalTarget       int      `json:"total_target" yaml:"total_target"`
}

// Validation is the full scoring output of a run.
type Validation struct {
	Schema  SchemaLevelValidation       `json:"schema" yaml:"schema"`
	Objects map[string]SchemaValidation `json:"objects" yaml:"objects"`
}

// MissingSchemas returns the source schemas absent on the target.
func (v Validation) MissingSchemas() []string {
	return v.Schema.MissingItems
}

// MatchState colours a count comparison.
type MatchState string

const (
	Green  MatchState = "green"
	Yellow MatchState = "yellow"
	Red    MatchState = "red"
	// Unrated marks informational rows, e.g. tables only on the target.
	Unrated MatchState = ""
)
