package matrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tiersOf(names ...string) []Tier {
	out := make([]Tier, len(names))
	for i, n := range names {
		out[i] = Tier{Name: n}
	}
	return out
}

func singleRow(raw string) []FeatureGroup {
	return []FeatureGroup{{Title: "Core", Features: []FeatureRow{{Title: "SSO", RawValues: raw}}}}
}

func TestBuildClassifiesCells(t *testing.T) {
	m := Build(tiersOf("A", "B", "C"), singleRow("true;false;custom"))
	require.Len(t, m.Groups, 1)
	require.Len(t, m.Groups[0].Rows, 1)
	row := m.Groups[0].Rows[0]

	assert.Equal(t, Cell{Tier: "A", Kind: CellTrue}, row.Cell("A"))
	assert.Equal(t, Cell{Tier: "B", Kind: CellFalse}, row.Cell("B"))
	assert.Equal(t, Cell{Tier: "C", Kind: CellText, Text: "custom"}, row.Cell("C"))
}

func TestBuildFewerFieldsLeavesAbsentCells(t *testing.T) {
	m := Build(tiersOf("A", "B", "C"), singleRow("true"))
	row := m.Groups[0].Rows[0]
	require.Len(t, row.Cells, 3)
	assert.True(t, row.Cell("A").IsTrue())
	assert.True(t, row.Cell("B").IsAbsent())
	assert.True(t, row.Cell("C").IsAbsent())
	assert.False(t, row.Cell("B").IsFalse(), "missing values must not render as false")
}

func TestBuildDiscardsExtraFields(t *testing.T) {
	var got []Mismatch
	rep := ReporterFunc(func(m Mismatch) { got = append(got, m) })

	m := Build(tiersOf("A", "B", "C"), singleRow("true;false;true;extra"), WithReporter(rep))
	row := m.Groups[0].Rows[0]
	require.Len(t, row.Cells, 3)
	for _, c := range row.Cells {
		assert.NotEqual(t, "extra", c.Text)
	}
	require.Len(t, got, 1)
	assert.Equal(t, Mismatch{Group: "Core", Row: "SSO", Fields: 4, Tiers: 3}, got[0])
	assert.True(t, got[0].Extra())
}

func TestBuildTrimsWhitespace(t *testing.T) {
	tiers := tiersOf("A", "B")
	padded := Build(tiers, singleRow(" true ; false "))
	plain := Build(tiers, singleRow("true;false"))
	if diff := cmp.Diff(plain, padded); diff != "" {
		t.Fatalf("whitespace changed the matrix (-plain +padded):\n%s", diff)
	}
}

func TestBuildSortsGroupsStably(t *testing.T) {
	groups := []FeatureGroup{
		{Title: "Security", Order: 2},
		{Title: "Integrations", Order: 1},
		{Title: "Deployment", Order: 2},
		{Title: "Overview", Order: 0},
		{Title: "Support", Order: 1},
	}
	m := Build(tiersOf("A"), groups)

	titles := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		titles[i] = g.Title
	}
	assert.Equal(t, []string{"Overview", "Integrations", "Support", "Security", "Deployment"}, titles)
	assert.Equal(t, "Security", groups[0].Title, "input slice must not be reordered")
}

func TestBuildWithoutOrderingKeepsArrivalOrder(t *testing.T) {
	groups := []FeatureGroup{{Title: "B", Order: 2}, {Title: "A", Order: 1}}
	m := Build(tiersOf("X"), groups, WithoutOrdering())
	require.Len(t, m.Groups, 2)
	assert.Equal(t, "B", m.Groups[0].Title)
	assert.Equal(t, "A", m.Groups[1].Title)
}

func TestBuildFlattenMergesRowsInOrder(t *testing.T) {
	groups := []FeatureGroup{
		{Title: "Later", Order: 5, Features: []FeatureRow{{Title: "z", RawValues: "true"}}},
		{Title: "First", Order: 1, Features: []FeatureRow{{Title: "a", RawValues: "false"}, {Title: "b"}}},
	}
	m := Build(tiersOf("T"), groups, Flatten("Features"))
	require.Len(t, m.Groups, 1)
	assert.Equal(t, "Features", m.Groups[0].Title)

	var rows []string
	for _, r := range m.Groups[0].Rows {
		rows = append(rows, r.Title)
	}
	assert.Equal(t, []string{"a", "b", "z"}, rows)
}

func TestBuildEmptyGroupsYieldsEmptyMatrix(t *testing.T) {
	m := Build(tiersOf("A", "B"), nil)
	assert.True(t, m.Empty())
	assert.Empty(t, m.Groups)
	assert.Equal(t, []string{"A", "B"}, m.TierNames())
}

func TestBuildWithoutTiersKeepsTitles(t *testing.T) {
	var reported int
	m := Build(nil, singleRow("true;false"), WithReporter(ReporterFunc(func(Mismatch) { reported++ })))
	require.Len(t, m.Groups, 1)
	row := m.Groups[0].Rows[0]
	assert.Equal(t, "SSO", row.Title)
	assert.Empty(t, row.Cells)
	assert.Equal(t, 1, reported)
}

func TestBuildIsIdempotent(t *testing.T) {
	tiers := tiersOf("Base", "Plus", "Premium")
	groups := []FeatureGroup{
		{Title: "Users", Order: 1, Features: []FeatureRow{{Title: "Seats", RawValues: "Up to 250;Unlimited;Unlimited"}}},
		{Title: "Security", Order: 0, Features: []FeatureRow{{Title: "SSO", RawValues: "true;true;true"}, {Title: "Audit", RawValues: "true"}}},
	}
	first := Build(tiers, groups)
	second := Build(tiers, groups)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Build is not deterministic (-first +second):\n%s", diff)
	}
}

func TestClassifyIsCaseSensitive(t *testing.T) {
	kind, text := Classify("True")
	assert.Equal(t, CellText, kind)
	assert.Equal(t, "True", text)

	kind, _ = Classify("")
	assert.Equal(t, CellAbsent, kind)
}

func TestBlankRawValuesAreOneEmptyField(t *testing.T) {
	var got []Mismatch
	rep := WithReporter(ReporterFunc(func(mm Mismatch) { got = append(got, mm) }))

	m := Build(tiersOf("A"), singleRow("   "), rep)
	assert.True(t, m.Groups[0].Rows[0].Cell("A").IsAbsent())
	assert.Empty(t, got, "one blank field matches one tier")

	m = Build(tiersOf("A", "B"), singleRow(""), rep)
	row := m.Groups[0].Rows[0]
	assert.True(t, row.Cell("A").IsAbsent())
	assert.True(t, row.Cell("B").IsAbsent())
	require.Len(t, got, 1)
	assert.Equal(t, Mismatch{Group: "Core", Row: "SSO", Fields: 1, Tiers: 2}, got[0])
	assert.False(t, got[0].Extra())

	got = nil
	Build(nil, singleRow(""), rep)
	require.Len(t, got, 1)
	assert.True(t, got[0].Extra())
}

func TestEmptyFieldInsideListIsAbsent(t *testing.T) {
	m := Build(tiersOf("A", "B", "C"), singleRow("true;;false"))
	row := m.Groups[0].Rows[0]
	assert.True(t, row.Cell("B").IsAbsent())
	assert.True(t, row.Cell("C").IsFalse())
}

func TestRowCellUnknownTier(t *testing.T) {
	m := Build(tiersOf("A"), singleRow("true"))
	c := m.Groups[0].Rows[0].Cell("Nope")
	assert.Equal(t, Cell{Tier: "Nope", Kind: CellAbsent}, c)
}

func TestStackedPivotsPerTier(t *testing.T) {
	groups := []FeatureGroup{
		{Title: "Security", Order: 0, Features: []FeatureRow{{Title: "SSO", RawValues: "true;false"}}},
		{Title: "Scale", Order: 1, Features: []FeatureRow{{Title: "Users", RawValues: "250"}}},
	}
	stacks := Build(tiersOf("Base", "Plus"), groups).Stacked()
	require.Len(t, stacks, 2)

	plus := stacks[1]
	assert.Equal(t, "Plus", plus.Tier.Name)
	assert.Equal(t, 1, plus.Index)
	require.Len(t, plus.Groups, 2)
	assert.Equal(t, "Security", plus.Groups[0].Title)
	assert.True(t, plus.Groups[0].Entries[0].Cell.IsFalse())
	assert.True(t, plus.Groups[1].Entries[0].Cell.IsAbsent())
	assert.Equal(t, "250", stacks[0].Groups[1].Entries[0].Cell.Text)
}

func FuzzBuild(f *testing.F) {
	f.Add("true;false;custom", 3)
	f.Add("", 0)
	f.Add(";;;;", 2)
	f.Add(" true ; false ", 5)
	f.Fuzz(func(t *testing.T, raw string, n int) {
		if n < 0 {
			n = -n
		}
		n %= 16
		tiers := make([]Tier, n)
		for i := range tiers {
			tiers[i] = Tier{Name: string(rune('A' + i))}
		}
		m := Build(tiers, singleRow(raw))
		if len(m.Groups[0].Rows[0].Cells) != n {
			t.Fatalf("expected %d cells, got %d", n, len(m.Groups[0].Rows[0].Cells))
		}
	})
}
