package validation

import (
	"strings"
)

// NormalizeName folds an identifier for comparison. It is the only place
// names are case-folded.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RawInventory is what a catalog side fetched before normalization.
type RawInventory struct {
	Side    Side
	Schemas []Row
	// Objects is keyed by schema name as the database spelled it. A type
	// missing from the inner map was unsupported by the dialect.
	Objects map[string]map[ObjectType][]Row
}

// Normalize turns raw catalog rows into an Inventory. Every schema key gets
// a bucket for every tracked type; padSchemas adds keys with empty buckets
// without marking them as listed by the side.
func Normalize(raw RawInventory, padSchemas ...string) (Inventory, error) {
	inv := Inventory{
		Side:    raw.Side,
		Schemas: make(map[string]SchemaObjects),
		Listed:  make(NameSet),
	}

	for _, row := range raw.Schemas {
		name, problem := text(row, "schema_name")
		if problem != "" {
			return Inventory{}, &MalformedRowError{Side: raw.Side, ObjectType: Schema, Field: "schema_name", Problem: problem}
		}
		key := NormalizeName(name)
		inv.Listed[key] = struct{}{}
		if _, ok := inv.Schemas[key]; !ok {
			inv.Schemas[key] = emptySchemaObjects()
		}
	}

	for schemaName, byType := range raw.Objects {
		key := NormalizeName(schemaName)
		inv.Listed[key] = struct{}{}
		objects, ok := inv.Schemas[key]
		if !ok {
			objects = emptySchemaObjects()
			inv.Schemas[key] = objects
		}
		for _, t := range ObjectTypes {
			rows := byType[t]
			if len(rows) == 0 {
				continue
			}
			bucket := objects[t]
			field := t.NameField()
			for _, row := range rows {
				name, problem := text(row, field)
				if problem != "" {
					return Inventory{}, &MalformedRowError{Side: raw.Side, Schema: key, ObjectType: t, Field: field, Problem: problem}
				}
				bucket.Names[NormalizeName(name)] = struct{}{}
			}
			// case variants of one schema merge their rows
			bucket.Count += len(rows)
			objects[t] = bucket
		}
	}

	for _, name := range padSchemas {
		key := NormalizeName(name)
		if _, ok := inv.Schemas[key]; !ok {
			inv.Schemas[key] = emptySchemaObjects()
		}
	}

	return inv, nil
}

// SchemaUnion returns the schema keys of both inventories, sorted.
func SchemaUnion(a, b Inventory) []string {
	union := make(NameSet, len(a.Schemas)+len(b.Schemas))
	for n := range a.Schemas {
		union[n] = struct{}{}
	}
	for n := range b.Schemas {
		union[n] = struct{}{}
	}
	return union.Sorted()
}
