package validation_test

import (
	"testing"

	"db-migcheck/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareDatatypes(t *testing.T) {
	srcCounts := []validation.Row{
		{"data_type": "INT", "count": int64(10)},
		{"data_type": "varchar", "count": int64(4)},
		{"data_type": "xml", "count": int64(1)},
	}
	tgtCounts := []validation.Row{
		{"data_type": "int", "count": "10"},
		{"data_type": "VARCHAR", "count": int64(3)},
		{"data_type": "jsonb", "count": int64(2)},
	}
	srcDetails := []validation.Row{
		{"schema_name": "dbo", "table_name": "Orders", "column_name": "Note", "data_type": "VARCHAR"},
		{"schema_name": "dbo", "table_name": "Orders", "column_name": "Id", "data_type": "INT"},
	}

	dc, err := validation.CompareDatatypes(srcCounts, tgtCounts, srcDetails, nil)
	require.NoError(t, err)

	assert.Equal(t, []validation.DatatypeCount{
		{DataType: "int", SourceCount: 10, TargetCount: 10, State: validation.Green},
		{DataType: "jsonb", SourceCount: 0, TargetCount: 2, State: validation.Unrated},
		{DataType: "varchar", SourceCount: 4, TargetCount: 3, State: validation.Yellow},
		{DataType: "xml", SourceCount: 1, TargetCount: 0, State: validation.Red},
	}, dc.Counts)

	assert.Equal(t, []validation.DatatypeColumn{
		{Schema: "dbo", Table: "orders", Column: "id", DataType: "int"},
		{Schema: "dbo", Table: "orders", Column: "note", DataType: "varchar"},
	}, dc.SourceColumns)
	assert.Empty(t, dc.TargetColumns)
}

func TestCompareDatatypes_Malformed(t *testing.T) {
	_, err := validation.CompareDatatypes(nil, nil, nil, []validation.Row{{"schema_name": "s", "table_name": "t"}})
	require.Error(t, err)
}
