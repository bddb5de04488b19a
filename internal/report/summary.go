package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"db-migcheck/internal/validation"
)

var stateIcon = map[validation.MatchState]string{
	validation.Green:   "✓",
	validation.Yellow:  "~",
	validation.Red:     "!",
	validation.Unrated: " ",
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// PrintSummary writes the terminal summary of a run.
func PrintSummary(w io.Writer, r *Result) error {
	doc := SummaryView(r)

	fmt.Fprintf(w, "\n📊 Migration Summary (%s -> %s)\n", doc.Databases.Source.Type, doc.Databases.Target.Type)
	tw := newTable(w)
	fmt.Fprintln(tw, "\tSOURCE\tTARGET")
	fmt.Fprintf(tw, "Database\t%s\t%s\n", doc.Databases.Source.Name, doc.Databases.Target.Name)
	fmt.Fprintf(tw, "Host\t%s\t%s\n", doc.Databases.Source.Host, doc.Databases.Target.Host)
	fmt.Fprintf(tw, "Version\t%s\t%s\n", firstLine(doc.Databases.Source.Version), firstLine(doc.Databases.Target.Version))
	fmt.Fprintf(tw, "Size\t%s\t%s\n", doc.Databases.Source.DatabaseSize, doc.Databases.Target.DatabaseSize)
	fmt.Fprintf(tw, "Encoding\t%s\t%s\n", doc.Databases.Source.Encoding, doc.Databases.Target.Encoding)
	if err := tw.Flush(); err != nil {
		return err
	}

	sv := doc.SchemaValidation
	fmt.Fprintf(w, "\nSchemas migrated: %.2f%% (%d of %d)\n",
		sv.ValidationPercent, len(sv.AllItems)-len(sv.MissingItems), len(sv.AllItems))
	if len(doc.MissingSchemas) > 0 {
		fmt.Fprintf(w, "Missing schemas: %s\n", strings.Join(doc.MissingSchemas, ", "))
	}

	if len(doc.Validation) > 0 {
		fmt.Fprintln(w)
		tw = newTable(w)
		fmt.Fprintln(tw, "\tSCHEMA\tSOURCE\tTARGET\tMISSING\tVALIDATED")
		for _, s := range doc.Validation {
			fmt.Fprintf(tw, "[%s]\t%s\t%d\t%d\t%d\t%s\n",
				stateIcon[s.Grade], s.Name, s.SourceCount, s.TargetCount, s.MissingCount, percentCell(s.ValidationPercent))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, s := range doc.Validation {
		if s.MissingCount == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", s.Name)
		for _, o := range s.Objects {
			if len(o.Missing) == 0 {
				continue
			}
			fmt.Fprintf(w, "  └ %s: %s (%s)\n", o.Type, strings.Join(o.Missing, ", "), o.Reason)
		}
	}

	var mismatched []string
	for _, k := range r.RowCounts.Keys() {
		if r.RowCounts.Source[k].State != validation.Green {
			mismatched = append(mismatched, k.String())
		}
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Tables compared: %d, row count mismatches: %d\n", len(doc.RowCounts), len(mismatched))
	if len(mismatched) > 0 {
		fmt.Fprintf(w, "  └ %s\n", strings.Join(mismatched, ", "))
	}
	return nil
}

// PrintRowCounts writes one line per table with both counts.
func PrintRowCounts(w io.Writer, rc validation.RowCounts) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "\tSCHEMA\tTABLE\tSOURCE\tTARGET")
	for _, k := range rc.Keys() {
		e := rc.Source[k]
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%d\t%s\n", stateIcon[e.State], k.Schema, k.Table, e.SourceCount, countCell(e.TargetCount))
	}
	for _, k := range rc.TargetOnly() {
		n := rc.Target[k]
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%d\n", stateIcon[validation.Unrated], k.Schema, k.Table, "-", n)
	}
	return tw.Flush()
}

// PrintSchemas lists the schemas of both sides and the missing ones.
func PrintSchemas(w io.Writer, source, target validation.Inventory) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SCHEMA\tSOURCE\tTARGET")
	for _, name := range validation.SchemaUnion(source, target) {
		if !source.Has(name) && !target.Has(name) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, mark(source.Has(name)), mark(target.Has(name)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	missing := source.Listed.Minus(target.Listed).Sorted()
	if len(missing) > 0 {
		fmt.Fprintf(w, "\nMissing on target: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "-"
}

func percentCell(p validation.Percent) string {
	if !p.Valid {
		return p.String()
	}
	return p.String() + "%"
}

func countCell(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
