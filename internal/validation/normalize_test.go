package validation_test

import (
	"errors"
	"testing"

	"db-migcheck/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "orders", validation.NormalizeName("ORDERS"))
	assert.Equal(t, "order items", validation.NormalizeName("  Order Items "))
	assert.Equal(t, "", validation.NormalizeName(""))
}

func TestNormalize_CaseVariantsCollapse(t *testing.T) {
	raw := validation.RawInventory{
		Side: validation.SourceSide,
		Schemas: []validation.Row{
			{"schema_name": "Sales"},
			{"schema_name": "SALES"},
		},
		Objects: map[string]map[validation.ObjectType][]validation.Row{
			"Sales": {
				validation.Table: {{"table_name": "Orders"}, {"table_name": "orders"}},
			},
			"SALES": {
				validation.Table: {{"table_name": "CUSTOMERS"}},
			},
		},
	}

	inv, err := validation.Normalize(raw)
	require.NoError(t, err)

	require.Len(t, inv.Schemas, 1)
	tables := inv.Objects("sales").Bucket(validation.Table)
	assert.Equal(t, []string{"customers", "orders"}, tables.Names.Sorted())
	assert.Equal(t, 3, tables.Count, "count keeps the fetched cardinality")
	assert.True(t, inv.Has("sales"))
}

func TestNormalize_EveryTypeHasBucket(t *testing.T) {
	inv := mustNormalize(t, rawSide(validation.SourceSide, map[string]map[validation.ObjectType][]string{
		"hr": {validation.View: {"v_staff"}},
	}))

	for _, ot := range validation.ObjectTypes {
		b, ok := inv.Schemas["hr"][ot]
		require.True(t, ok, "bucket for %s", ot)
		assert.NotNil(t, b.Names)
	}
	assert.Equal(t, 1, inv.Objects("hr").Total())
}

func TestNormalize_PaddedSchemasAreNotListed(t *testing.T) {
	inv := mustNormalize(t, rawSide(validation.TargetSide, map[string]map[validation.ObjectType][]string{
		"public": {validation.Table: {"orders"}},
	}), "FIN", "public")

	assert.Equal(t, []string{"fin", "public"}, inv.Names())
	assert.False(t, inv.Has("fin"))
	assert.True(t, inv.Has("public"))
	assert.Equal(t, 0, inv.Objects("fin").Total())
}

func TestNormalize_SchemaWithoutObjectRows(t *testing.T) {
	raw := validation.RawInventory{
		Side:    validation.SourceSide,
		Schemas: []validation.Row{{"schema_name": []byte("empty")}},
	}
	inv, err := validation.Normalize(raw)
	require.NoError(t, err)
	assert.True(t, inv.Has("empty"))
	assert.Equal(t, 0, inv.Objects("empty").Total())
}

func TestNormalize_MalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		raw    validation.RawInventory
		field  string
		schema string
	}{
		{
			name: "schema row without name",
			raw: validation.RawInventory{
				Side:    validation.SourceSide,
				Schemas: []validation.Row{{"name": "x"}},
			},
			field: "schema_name",
		},
		{
			name: "object row with null name",
			raw: validation.RawInventory{
				Side: validation.TargetSide,
				Objects: map[string]map[validation.ObjectType][]validation.Row{
					"dbo": {validation.Trigger: {{"trigger_name": nil}}},
				},
			},
			field:  "trigger_name",
			schema: "dbo",
		},
		{
			name: "object row under wrong alias",
			raw: validation.RawInventory{
				Side: validation.TargetSide,
				Objects: map[string]map[validation.ObjectType][]validation.Row{
					"dbo": {validation.View: {{"table_name": "v"}}},
				},
			},
			field:  "view_name",
			schema: "dbo",
		},
		{
			name: "object row with numeric name",
			raw: validation.RawInventory{
				Side: validation.SourceSide,
				Objects: map[string]map[validation.ObjectType][]validation.Row{
					"dbo": {validation.Index: {{"index_name": int64(7)}}},
				},
			},
			field:  "index_name",
			schema: "dbo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validation.Normalize(tt.raw)
			require.Error(t, err)

			var malformed *validation.MalformedRowError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
			assert.Equal(t, tt.schema, malformed.Schema)
			assert.Equal(t, tt.raw.Side, malformed.Side)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
