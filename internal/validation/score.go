package validation

// Classify picks the reason for an object-type result. The first matching
// rule wins.
func Classify(sourceCount, targetCount, missing int) Reason {
	switch {
	case sourceCount == 0 && targetCount > 0:
		return ReasonOnlyOnTarget
	case sourceCount > 0 && targetCount == 0:
		return ReasonNotMigrated
	case sourceCount == 0 && targetCount == 0:
		return ReasonNoObjects
	case sourceCount == targetCount && missing > 0:
		return ReasonNamesMismatch
	case sourceCount != targetCount && missing > 0:
		return ReasonPartial
	default:
		return ReasonMatched
	}
}

// Score validates the target inventory against the source.
func Score(source, target Inventory) Validation {
	return Validation{
		Schema:  scoreSchemas(source, target),
		Objects: scoreObjects(source, target),
	}
}

func scoreSchemas(source, target Inventory) SchemaLevelValidation {
	missing := source.Listed.Minus(target.Listed)

	// nothing to migrate counts as fully migrated
	percent := 100.0
	if n := source.Listed.Len(); n > 0 {
		percent = round2((1 - float64(missing.Len())/float64(n)) * 100)
	}

	v := SchemaLevelValidation{
		MissingItems:      missing.Sorted(),
		AllItems:          source.Listed.Sorted(),
		ValidationPercent: percent,
	}
	for _, so := range source.Schemas {
		v.TotalSource += so.Total()
	}
	for _, so := range target.Schemas {
		v.TotalTarget += so.Total()
	}
	return v
}

func scoreObjects(source, target Inventory) map[string]SchemaValidation {
	out := make(map[string]SchemaValidation)
	for _, schema := range SchemaUnion(source, target) {
		src := source.Objects(schema)
		tgt := target.Objects(schema)
		present := target.Has(schema)

		sv := SchemaValidation{Objects: make(map[ObjectType]ObjectValidation, len(ObjectTypes))}
		for _, t := range ObjectTypes {
			sb := src.Bucket(t)
			if !present {
				sv.Objects[t] = ObjectValidation{
					MissingItems:      sb.Names.Sorted(),
					AllItems:          sb.Names.Sorted(),
					ValidationPercent: 0,
					Reason:            ReasonSchemaAbsent,
				}
				sv.SourceCount += sb.Count
				sv.MissingCount += sb.Names.Len()
				continue
			}

			tb := tgt.Bucket(t)
			missing := sb.Names.Minus(tb.Names)
			matches := sb.Names.Intersect(tb.Names)
			percent := 0.0
			if sb.Names.Len() > 0 {
				percent = clampPercent(float64(matches.Len()) / float64(sb.Names.Len()) * 100)
			}
			sv.Objects[t] = ObjectValidation{
				MissingItems:      missing.Sorted(),
				AllItems:          sb.Names.Sorted(),
				ValidationPercent: percent,
				Reason:            Classify(sb.Count, tb.Count, missing.Len()),
			}
			sv.SourceCount += sb.Count
			sv.TargetCount += tb.Count
			sv.MissingCount += missing.Len()
		}

		sv.ValidationPercent = rollup(sv.SourceCount, sv.TargetCount, sv.MissingCount)
		sv.DisplayFlag = sv.SourceCount > 0 || sv.TargetCount > 0
		out[schema] = sv
	}
	return out
}

// rollup turns the per-schema totals into a percentage, NA when one of the
// sides has nothing.
func rollup(sourceCount, targetCount, missingCount int) Percent {
	if sourceCount == 0 || targetCount == 0 {
		return NA
	}
	missingFraction := float64(missingCount) / float64(sourceCount)
	return PercentOf(clampPercent((1 - missingFraction) * 100))
}
