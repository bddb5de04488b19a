package validation

// Reconcile compares two inventories schema by schema. A schema known to
// only one side is compared against empty buckets. The inputs are not
// modified.
func Reconcile(source, target Inventory) map[string]SchemaComparison {
	out := make(map[string]SchemaComparison)
	for _, schema := range SchemaUnion(source, target) {
		src := source.Objects(schema)
		tgt := target.Objects(schema)

		entries := make(map[ObjectType]ComparisonEntry, len(ObjectTypes))
		for _, t := range ObjectTypes {
			sb, tb := src.Bucket(t), tgt.Bucket(t)
			common := sb.Names.Intersect(tb.Names)
			entries[t] = ComparisonEntry{
				SourceOnly:  sb.Names.Minus(common).Sorted(),
				TargetOnly:  tb.Names.Minus(common).Sorted(),
				SourceCount: sb.Count,
				TargetCount: tb.Count,
			}
		}

		out[schema] = SchemaComparison{
			DisplayFlag: src.Total() > 0 && tgt.Total() > 0,
			Entries:     entries,
		}
	}
	return out
}
