package validation_test

import (
	"testing"

	"db-migcheck/internal/validation"

	"github.com/stretchr/testify/require"
)

// rawSide builds raw catalog rows: schema -> type -> object names.
func rawSide(side validation.Side, objects map[string]map[validation.ObjectType][]string) validation.RawInventory {
	raw := validation.RawInventory{Side: side, Objects: map[string]map[validation.ObjectType][]validation.Row{}}
	for schema, byType := range objects {
		raw.Schemas = append(raw.Schemas, validation.Row{"schema_name": schema})
		rows := map[validation.ObjectType][]validation.Row{}
		for t, names := range byType {
			for _, n := range names {
				rows[t] = append(rows[t], validation.Row{t.NameField(): n})
			}
		}
		raw.Objects[schema] = rows
	}
	return raw
}

func mustNormalize(t *testing.T, raw validation.RawInventory, pad ...string) validation.Inventory {
	t.Helper()
	inv, err := validation.Normalize(raw, pad...)
	require.NoError(t, err)
	return inv
}

// pair normalizes both sides the way the report pipeline does.
func pair(t *testing.T, src, tgt map[string]map[validation.ObjectType][]string) (validation.Inventory, validation.Inventory) {
	t.Helper()
	source := mustNormalize(t, rawSide(validation.SourceSide, src))
	target := mustNormalize(t, rawSide(validation.TargetSide, tgt))
	target = mustNormalize(t, rawSide(validation.TargetSide, tgt), validation.SchemaUnion(source, target)...)
	return source, target
}
