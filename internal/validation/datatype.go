package validation

import (
	"sort"
)

// DatatypeCount is the number of columns of one data type on each side.
type DatatypeCount struct {
	DataType    string     `json:"data_type" yaml:"data_type"`
	SourceCount int64      `json:"source_count" yaml:"source_count"`
	TargetCount int64      `json:"target_count" yaml:"target_count"`
	State       MatchState `json:"state" yaml:"state"`
}

// DatatypeColumn is one column and its declared type.
type DatatypeColumn struct {
	Schema   string `json:"schema" yaml:"schema"`
	Table    string `json:"table" yaml:"table"`
	Column   string `json:"column" yaml:"column"`
	DataType string `json:"data_type" yaml:"data_type"`
}

// DatatypeComparison is the datatype section of a report.
type DatatypeComparison struct {
	Counts        []DatatypeCount  `json:"counts" yaml:"counts"`
	SourceColumns []DatatypeColumn `json:"source_columns" yaml:"source_columns"`
	TargetColumns []DatatypeColumn `json:"target_columns" yaml:"target_columns"`
}

// CompareDatatypes lines up per-type column counts of both sides. Types
// only on the source are red, types only on the target stay unrated.
func CompareDatatypes(srcCounts, tgtCounts, srcDetails, tgtDetails []Row) (DatatypeComparison, error) {
	src, err := indexDatatypeCounts(SourceSide, srcCounts)
	if err != nil {
		return DatatypeComparison{}, err
	}
	tgt, err := indexDatatypeCounts(TargetSide, tgtCounts)
	if err != nil {
		return DatatypeComparison{}, err
	}

	types := make(NameSet, len(src)+len(tgt))
	for t := range src {
		types[t] = struct{}{}
	}
	for t := range tgt {
		types[t] = struct{}{}
	}

	var dc DatatypeComparison
	for _, t := range types.Sorted() {
		s, inSrc := src[t]
		g, inTgt := tgt[t]
		c := DatatypeCount{DataType: t, SourceCount: s, TargetCount: g}
		switch {
		case inSrc && inTgt && s == g:
			c.State = Green
		case inSrc && inTgt:
			c.State = Yellow
		case inSrc:
			c.State = Red
		default:
			c.State = Unrated
		}
		dc.Counts = append(dc.Counts, c)
	}

	if dc.SourceColumns, err = datatypeColumns(SourceSide, srcDetails); err != nil {
		return DatatypeComparison{}, err
	}
	if dc.TargetColumns, err = datatypeColumns(TargetSide, tgtDetails); err != nil {
		return DatatypeComparison{}, err
	}
	return dc, nil
}

func indexDatatypeCounts(side Side, rows []Row) (map[string]int64, error) {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		t, problem := text(row, "data_type")
		if problem != "" {
			return nil, &MalformedRowError{Side: side, Field: "data_type", Problem: problem}
		}
		n, problem := integer(row, "count")
		if problem != "" {
			return nil, &MalformedRowError{Side: side, Field: "count", Problem: problem}
		}
		out[NormalizeName(t)] += n
	}
	return out, nil
}

func datatypeColumns(side Side, rows []Row) ([]DatatypeColumn, error) {
	out := make([]DatatypeColumn, 0, len(rows))
	for _, row := range rows {
		var c DatatypeColumn
		for field, dst := range map[string]*string{
			"schema_name": &c.Schema,
			"table_name":  &c.Table,
			"column_name": &c.Column,
			"data_type":   &c.DataType,
		} {
			v, problem := text(row, field)
			if problem != "" {
				return nil, &MalformedRowError{Side: side, Field: field, Problem: problem}
			}
			*dst = v
		}
		c.Schema = NormalizeName(c.Schema)
		c.Table = NormalizeName(c.Table)
		c.Column = NormalizeName(c.Column)
		c.DataType = NormalizeName(c.DataType)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Schema != b.Schema {
			return a.Schema < b.Schema
		}
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		return a.Column < b.Column
	})
	return out, nil
}
