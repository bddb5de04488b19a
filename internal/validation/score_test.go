package validation_test

import (
	"encoding/json"
	"testing"

	"db-migcheck/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		src, tgt, missing int
		want              validation.Reason
	}{
		{0, 3, 0, validation.ReasonOnlyOnTarget},
		{2, 0, 2, validation.ReasonNotMigrated},
		{0, 0, 0, validation.ReasonNoObjects},
		{2, 2, 1, validation.ReasonNamesMismatch},
		{2, 1, 1, validation.ReasonPartial},
		{3, 5, 1, validation.ReasonPartial},
		{2, 2, 0, validation.ReasonMatched},
		{2, 4, 0, validation.ReasonMatched},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validation.Classify(tt.src, tt.tgt, tt.missing), "src=%d tgt=%d missing=%d", tt.src, tt.tgt, tt.missing)
	}
}

func TestScore_PartiallyMigratedTables(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{
			"sales": {validation.Table: {"orders", "customers"}},
		},
		map[string]map[validation.ObjectType][]string{
			"sales": {validation.Table: {"ORDERS"}},
		},
	)

	v := validation.Score(source, target)

	tables := v.Objects["sales"].Objects[validation.Table]
	assert.Equal(t, validation.ReasonPartial, tables.Reason)
	assert.Equal(t, []string{"customers"}, tables.MissingItems)
	assert.Equal(t, []string{"customers", "orders"}, tables.AllItems)
	assert.Equal(t, 50.0, tables.ValidationPercent)

	rolled := v.Objects["sales"]
	assert.True(t, rolled.ValidationPercent.Valid)
	assert.Equal(t, 50.0, rolled.ValidationPercent.Value)
	assert.True(t, rolled.DisplayFlag)
	assert.Equal(t, 100.0, v.Schema.ValidationPercent)
	assert.Empty(t, v.MissingSchemas())
}

func TestScore_OnlyPresentOnTarget(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{
			"hr": {},
		},
		map[string]map[validation.ObjectType][]string{
			"hr": {validation.Table: {"staff", "roles", "grades"}},
		},
	)

	v := validation.Score(source, target)

	tables := v.Objects["hr"].Objects[validation.Table]
	assert.Equal(t, validation.ReasonOnlyOnTarget, tables.Reason)
	assert.Equal(t, 0.0, tables.ValidationPercent)
	assert.Equal(t, validation.ReasonNoObjects, v.Objects["hr"].Objects[validation.View].Reason)

	rolled := v.Objects["hr"]
	assert.False(t, rolled.ValidationPercent.Valid)
	assert.Equal(t, "NA", rolled.ValidationPercent.String())
	assert.True(t, rolled.DisplayFlag)
}

func TestScore_SchemaAbsentOnTarget(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{
			"fin":    {validation.Table: {"ledger"}, validation.View: {"v_balance"}},
			"public": {validation.Table: {"orders"}},
		},
		map[string]map[validation.ObjectType][]string{
			"public": {validation.Table: {"orders"}},
		},
	)

	v := validation.Score(source, target)

	for _, ot := range validation.ObjectTypes {
		ov := v.Objects["fin"].Objects[ot]
		assert.Equal(t, validation.ReasonSchemaAbsent, ov.Reason, ot)
		assert.Equal(t, 0.0, ov.ValidationPercent, ot)
	}
	assert.Equal(t, []string{"ledger"}, v.Objects["fin"].Objects[validation.Table].MissingItems)
	assert.Equal(t, []string{"v_balance"}, v.Objects["fin"].Objects[validation.View].MissingItems)
	assert.Equal(t, []string{"fin"}, v.MissingSchemas())
	assert.Equal(t, 50.0, v.Schema.ValidationPercent)
	assert.Equal(t, []string{"fin", "public"}, v.Schema.AllItems)
	assert.False(t, v.Objects["fin"].ValidationPercent.Valid)
	assert.True(t, v.Objects["fin"].DisplayFlag)
}

func TestScore_ZeroSourceSchemas(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{},
		map[string]map[validation.ObjectType][]string{
			"public": {validation.Table: {"orders"}},
		},
	)

	v := validation.Score(source, target)

	assert.Equal(t, 100.0, v.Schema.ValidationPercent)
	assert.Empty(t, v.MissingSchemas())
	assert.Equal(t, 0, v.Schema.TotalSource)
	assert.Equal(t, 1, v.Schema.TotalTarget)
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{
			"a": {validation.Function: {"f1", "f2", "f3"}},
			"b": {},
			"c": {},
		},
		map[string]map[validation.ObjectType][]string{
			"a": {validation.Function: {"f1"}},
			"b": {},
		},
	)

	v := validation.Score(source, target)

	assert.Equal(t, 33.33, v.Objects["a"].Objects[validation.Function].ValidationPercent)
	assert.Equal(t, 33.33, v.Objects["a"].ValidationPercent.Value)
	assert.Equal(t, 66.67, v.Schema.ValidationPercent)
	assert.Equal(t, []string{"c"}, v.MissingSchemas())
}

func TestScore_SchemaAndRollupPercentDiffer(t *testing.T) {
	source, target := pair(t,
		map[string]map[validation.ObjectType][]string{
			"app": {validation.Table: {"t1", "t2", "t3", "t4"}, validation.Index: {"ix1"}},
		},
		map[string]map[validation.ObjectType][]string{
			"app": {validation.Table: {"t1", "t2", "t3", "t4"}},
		},
	)

	v := validation.Score(source, target)

	assert.Equal(t, 100.0, v.Schema.ValidationPercent)
	assert.Equal(t, 80.0, v.Objects["app"].ValidationPercent.Value)
	assert.Equal(t, validation.ReasonNotMigrated, v.Objects["app"].Objects[validation.Index].Reason)
	assert.Equal(t, validation.ReasonMatched, v.Objects["app"].Objects[validation.Table].Reason)
}

func TestPercent_Marshal(t *testing.T) {
	b, err := json.Marshal(map[string]validation.Percent{
		"a": validation.NA,
		"b": validation.PercentOf(12.5),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"NA","b":12.5}`, string(b))

	y, err := validation.PercentOf(99.99).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, 99.99, y)

	y, err = validation.NA.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "NA", y)
	assert.Equal(t, "12.50", validation.PercentOf(12.5).String())
}

func TestGrade(t *testing.T) {
	assert.Equal(t, validation.Green, validation.Grade(validation.PercentOf(100)))
	assert.Equal(t, validation.Green, validation.Grade(validation.PercentOf(90.01)))
	assert.Equal(t, validation.Yellow, validation.Grade(validation.PercentOf(90)))
	assert.Equal(t, validation.Yellow, validation.Grade(validation.PercentOf(51.5)))
	assert.Equal(t, validation.Red, validation.Grade(validation.PercentOf(51)))
	assert.Equal(t, validation.Red, validation.Grade(validation.PercentOf(0)))
	assert.Equal(t, validation.Red, validation.Grade(validation.NA))
}
