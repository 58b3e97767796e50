package matrix

// Entry pairs a feature title with the tier's cell, used by the stacked-card layout.
type Entry struct {
	Feature string
	Cell    Cell
}

// StackGroup is one group inside a tier card.
type StackGroup struct {
	Title   string
	Entries []Entry
}

// Stack is the narrow-screen layout: one card per tier listing every group and feature.
type Stack struct {
	Tier   Tier
	Index  int
	Groups []StackGroup
}

// Stacked pivots the matrix into one Stack per tier, preserving group and row order.
func (m Matrix) Stacked() []Stack {
	stacks := make([]Stack, 0, len(m.Tiers))
	for i, t := range m.Tiers {
		s := Stack{Tier: t, Index: i, Groups: make([]StackGroup, 0, len(m.Groups))}
		for _, g := range m.Groups {
			sg := StackGroup{Title: g.Title, Entries: make([]Entry, 0, len(g.Rows))}
			for _, r := range g.Rows {
				cell := Cell{Tier: t.Name}
				if i < len(r.Cells) {
					cell = r.Cells[i]
				}
				sg.Entries = append(sg.Entries, Entry{Feature: r.Title, Cell: cell})
			}
			s.Groups = append(s.Groups, sg)
		}
		stacks = append(stacks, s)
	}
	return stacks
}
