// Package matrix turns tier and feature-group content into the comparison table rendered on the
// pricing pages. Build is pure: it never fails, performs no I/O, and yields identical output for
// identical input.
package matrix

import (
	"sort"
	"strings"
)

// ValueSeparator splits the per-tier fields of FeatureRow.RawValues.
const ValueSeparator = ";"

// Tier is one pricing column. Name is the join key for cell lookups.
type Tier struct {
	Name string
}

// FeatureGroup is a titled cluster of rows sorted by Order.
type FeatureGroup struct {
	Title    string
	Order    int
	Features []FeatureRow
}

// FeatureRow carries one feature and its raw per-tier values ("true;false;Up to 250 users").
type FeatureRow struct {
	Title     string
	RawValues string
}

// CellKind classifies a resolved cell.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellTrue
	CellFalse
	CellText
)

func (k CellKind) String() string {
	switch k {
	case CellTrue:
		return "true"
	case CellFalse:
		return "false"
	case CellText:
		return "text"
	default:
		return "absent"
	}
}

// Cell is the value of one row for one tier. Text is set only for CellText.
type Cell struct {
	Tier string
	Kind CellKind
	Text string
}

// IsTrue reports a check-mark cell.
func (c Cell) IsTrue() bool { return c.Kind == CellTrue }

// IsFalse reports a dash cell.
func (c Cell) IsFalse() bool { return c.Kind == CellFalse }

// IsText reports a free-text cell.
func (c Cell) IsText() bool { return c.Kind == CellText }

// IsAbsent reports a blank cell.
func (c Cell) IsAbsent() bool { return c.Kind == CellAbsent }

// Row is a resolved feature row with one cell per tier, in tier order.
type Row struct {
	Title string
	Cells []Cell
}

// Cell returns the cell for the named tier. Unknown tiers resolve to an absent cell.
func (r Row) Cell(tier string) Cell {
	for _, c := range r.Cells {
		if c.Tier == tier {
			return c
		}
	}
	return Cell{Tier: tier, Kind: CellAbsent}
}

// Group is a resolved feature group.
type Group struct {
	Title string
	Order int
	Rows  []Row
}

// Matrix is the renderer-agnostic comparison table.
type Matrix struct {
	Tiers  []Tier
	Groups []Group
}

// Empty reports whether there is nothing to render.
func (m Matrix) Empty() bool { return len(m.Groups) == 0 }

// TierNames lists the column labels in order.
func (m Matrix) TierNames() []string {
	names := make([]string, len(m.Tiers))
	for i, t := range m.Tiers {
		names[i] = t.Name
	}
	return names
}

// Mismatch describes a row whose field count differs from the tier count.
type Mismatch struct {
	Group  string
	Row    string
	Fields int
	Tiers  int
}

// Extra reports whether fields were discarded (as opposed to tiers left blank).
func (m Mismatch) Extra() bool { return m.Fields > m.Tiers }

// Reporter receives data-quality warnings. Implementations must not retain the builder's slices.
type Reporter interface {
	FieldMismatch(Mismatch)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Mismatch)

// FieldMismatch implements Reporter.
func (f ReporterFunc) FieldMismatch(m Mismatch) { f(m) }

type options struct {
	ordered   bool
	flatten   bool
	flatTitle string
	reporter  Reporter
}

// Option configures Build.
type Option func(*options)

// WithoutOrdering keeps groups in arrival order instead of sorting by Order.
func WithoutOrdering() Option {
	return func(o *options) { o.ordered = false }
}

// Flatten merges the rows of every group, in output order, into a single group titled title.
func Flatten(title string) Option {
	return func(o *options) {
		o.flatten = true
		o.flatTitle = title
	}
}

// WithReporter sends field-count mismatches to r. Output is unaffected.
func WithReporter(r Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// Build resolves groups against tiers.
func Build(tiers []Tier, groups []FeatureGroup, opts ...Option) Matrix {
	o := options{ordered: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	out := Matrix{Tiers: append([]Tier{}, tiers...)}
	if len(groups) == 0 {
		return out
	}

	sorted := append([]FeatureGroup(nil), groups...)
	if o.ordered {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Order < sorted[j].Order
		})
	}

	resolved := make([]Group, 0, len(sorted))
	for _, g := range sorted {
		rows := make([]Row, 0, len(g.Features))
		for _, f := range g.Features {
			rows = append(rows, buildRow(g.Title, f, tiers, o.reporter))
		}
		resolved = append(resolved, Group{Title: g.Title, Order: g.Order, Rows: rows})
	}

	if o.flatten {
		flat := Group{Title: o.flatTitle, Rows: []Row{}}
		for _, g := range resolved {
			flat.Rows = append(flat.Rows, g.Rows...)
		}
		resolved = []Group{flat}
	}
	out.Groups = resolved
	return out
}

func buildRow(group string, f FeatureRow, tiers []Tier, reporter Reporter) Row {
	fields := SplitValues(f.RawValues)
	if reporter != nil && len(fields) != len(tiers) {
		reporter.FieldMismatch(Mismatch{
			Group:  group,
			Row:    f.Title,
			Fields: len(fields),
			Tiers:  len(tiers),
		})
	}
	cells := make([]Cell, len(tiers))
	for i, t := range tiers {
		cell := Cell{Tier: t.Name}
		if i < len(fields) {
			cell.Kind, cell.Text = Classify(fields[i])
		}
		cells[i] = cell
	}
	return Row{Title: f.Title, Cells: cells}
}

// SplitValues splits raw on ValueSeparator and trims each field. A blank raw string is one
// empty field.
func SplitValues(raw string) []string {
	parts := strings.Split(raw, ValueSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Classify maps a trimmed field to its cell kind. Matching is exact and case-sensitive.
func Classify(field string) (CellKind, string) {
	switch field {
	case "":
		return CellAbsent, ""
	case "true":
		return CellTrue, ""
	case "false":
		return CellFalse, ""
	default:
		return CellText, field
	}
}
