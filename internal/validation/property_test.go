package validation_test

import (
	"strings"
	"testing"

	"db-migcheck/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomNames draws n identifiers, sometimes upper-cased so case folding
// produces duplicates.
func randomNames(f *gofakeit.Faker, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := f.RandomString([]string{"orders", "customers", "invoices", "ledger", "audit", "users", "roles"})
		if f.Bool() {
			name = strings.ToUpper(name)
		}
		if f.Bool() {
			name += "_" + f.LetterN(2)
		}
		out = append(out, name)
	}
	return out
}

func randomSide(f *gofakeit.Faker) map[string]map[validation.ObjectType][]string {
	side := map[string]map[validation.ObjectType][]string{}
	for _, schema := range []string{"public", "sales", "HR", "hr"} {
		if f.Bool() {
			continue
		}
		byType := map[validation.ObjectType][]string{}
		for _, ot := range validation.ObjectTypes {
			byType[ot] = randomNames(f, f.Number(0, 6))
		}
		side[schema] = byType
	}
	return side
}

func TestProperties_Randomized(t *testing.T) {
	f := gofakeit.New(20240517)

	for i := 0; i < 200; i++ {
		source, target := pair(t, randomSide(f), randomSide(f))

		cmp := validation.Reconcile(source, target)
		v := validation.Score(source, target)

		for schema, sc := range cmp {
			for _, ot := range validation.ObjectTypes {
				sb := source.Objects(schema).Bucket(ot)
				tb := target.Objects(schema).Bucket(ot)
				common := sb.Names.Intersect(tb.Names).Len()
				entry := sc.Entries[ot]

				require.Equal(t, sb.Names.Len(), len(entry.SourceOnly)+common)
				require.Equal(t, tb.Names.Len(), len(entry.TargetOnly)+common)

				ov := v.Objects[schema].Objects[ot]
				assert.GreaterOrEqual(t, ov.ValidationPercent, 0.0)
				assert.LessOrEqual(t, ov.ValidationPercent, 100.0)
				assert.Contains(t, []validation.Reason{
					validation.ReasonOnlyOnTarget,
					validation.ReasonNotMigrated,
					validation.ReasonNoObjects,
					validation.ReasonNamesMismatch,
					validation.ReasonPartial,
					validation.ReasonMatched,
					validation.ReasonSchemaAbsent,
				}, ov.Reason)
			}

			if p := v.Objects[schema].ValidationPercent; p.Valid {
				assert.GreaterOrEqual(t, p.Value, 0.0)
				assert.LessOrEqual(t, p.Value, 100.0)
			}
		}

		if len(v.MissingSchemas()) == 0 {
			assert.Equal(t, 100.0, v.Schema.ValidationPercent)
		}
		assert.Equal(t, cmp, validation.Reconcile(source, target))
	}
}

// Exactly one reason applies to any pair of cardinalities.
func TestProperties_ClassifyIsExclusive(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 500; i++ {
		src := f.Number(0, 5)
		tgt := f.Number(0, 5)
		missing := 0
		if src > 0 {
			missing = f.Number(0, src)
		}

		matched := 0
		rules := []bool{
			src == 0 && tgt > 0,
			src > 0 && tgt == 0,
			src == 0 && tgt == 0,
			src > 0 && tgt > 0 && src == tgt && missing > 0,
			src > 0 && tgt > 0 && src != tgt && missing > 0,
			src > 0 && tgt > 0 && missing == 0,
		}
		for _, r := range rules {
			if r {
				matched++
			}
		}
		require.Equal(t, 1, matched, "src=%d tgt=%d missing=%d", src, tgt, missing)
		require.NotEmpty(t, validation.Classify(src, tgt, missing))
	}
}

func TestProperties_RowCountStates(t *testing.T) {
	f := gofakeit.New(99)
	for i := 0; i < 100; i++ {
		var source, target []validation.Row
		tables := f.Number(1, 8)
		for j := 0; j < tables; j++ {
			table := "t" + f.DigitN(3)
			n := int64(f.Number(0, 3))
			source = append(source, countRow("public", table, n))
			if f.Bool() {
				target = append(target, countRow("public", table, int64(f.Number(0, 3))))
			}
		}

		rc, err := validation.CompareRowCounts(source, target)
		require.NoError(t, err)

		for k, e := range rc.Source {
			tn, ok := rc.Target[k]
			switch e.State {
			case validation.Green:
				require.True(t, ok)
				require.Equal(t, e.SourceCount, tn)
			case validation.Yellow:
				require.True(t, ok)
				require.NotEqual(t, e.SourceCount, tn)
			case validation.Red:
				require.False(t, ok)
			default:
				t.Fatalf("source entry %s left unrated", k)
			}
		}
	}
}
