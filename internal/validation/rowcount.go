package validation

import (
	"sort"
)

// TableKey identifies a table across sides. Both parts are normalized.
type TableKey struct {
	Schema string
	Table  string
}

func (k TableKey) String() string {
	return k.Schema + "." + k.Table
}

// RowCountEntry is the comparison of one source table. TargetCount is nil
// when the table is absent on the target.
type RowCountEntry struct {
	SourceCount int64
	TargetCount *int64
	State       MatchState
}

// RowCounts holds the row counts of both sides. Source entries are
// coloured; Target keeps every target table as fetched.
type RowCounts struct {
	Source map[TableKey]RowCountEntry
	Target map[TableKey]int64
}

// Keys returns the source keys in schema, table order.
func (rc RowCounts) Keys() []TableKey {
	return sortedKeys(rc.Source)
}

// TargetOnly returns the target tables with no source counterpart.
func (rc RowCounts) TargetOnly() []TableKey {
	var out []TableKey
	for k := range rc.Target {
		if _, ok := rc.Source[k]; !ok {
			out = append(out, k)
		}
	}
	sortKeys(out)
	return out
}

// CompareRowCounts colours each source table by its target row count.
func CompareRowCounts(source, target []Row) (RowCounts, error) {
	src, err := indexRowCounts(SourceSide, source)
	if err != nil {
		return RowCounts{}, err
	}
	tgt, err := indexRowCounts(TargetSide, target)
	if err != nil {
		return RowCounts{}, err
	}

	rc := RowCounts{Source: make(map[TableKey]RowCountEntry, len(src)), Target: tgt}
	for k, n := range src {
		entry := RowCountEntry{SourceCount: n, State: Red}
		if t, ok := tgt[k]; ok {
			entry.TargetCount = &t
			if t == n {
				entry.State = Green
			} else {
				entry.State = Yellow
			}
		}
		rc.Source[k] = entry
	}
	return rc, nil
}

func indexRowCounts(side Side, rows []Row) (map[TableKey]int64, error) {
	out := make(map[TableKey]int64, len(rows))
	for _, row := range rows {
		schema, problem := text(row, "schema_name")
		if problem != "" {
			return nil, &MalformedRowError{Side: side, ObjectType: Table, Field: "schema_name", Problem: problem}
		}
		table, problem := text(row, "table_name")
		if problem != "" {
			return nil, &MalformedRowError{Side: side, Schema: schema, ObjectType: Table, Field: "table_name", Problem: problem}
		}
		n, problem := integer(row, "row_count")
		if problem != "" {
			return nil, &MalformedRowError{Side: side, Schema: schema, ObjectType: Table, Field: "row_count", Problem: problem}
		}
		out[TableKey{Schema: NormalizeName(schema), Table: NormalizeName(table)}] = n
	}
	return out, nil
}

func sortedKeys[V any](m map[TableKey]V) []TableKey {
	out := make([]TableKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortKeys(out)
	return out
}

func sortKeys(keys []TableKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Schema != keys[j].Schema {
			return keys[i].Schema < keys[j].Schema
		}
		return keys[i].Table < keys[j].Table
	})
}
