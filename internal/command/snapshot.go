package command

// ItemState is the per-item render output.
type ItemState struct {
	ID       ItemID
	Text     string
	Group    string
	Visible  bool
	Selected bool
	Disabled bool
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Query string
	Items []ItemState
	Empty bool
}

// Snapshot captures the current render state in mount order.
func (e *Engine) Snapshot() Snapshot {
	items := make([]ItemState, 0, len(e.entries))
	for _, en := range e.entries {
		items = append(items, ItemState{
			ID:       en.id,
			Text:     en.item.Text,
			Group:    en.item.Group,
			Visible:  en.visible,
			Selected: en.id == e.selected,
			Disabled: en.item.Disabled,
		})
	}
	return Snapshot{Query: e.query, Items: items, Empty: e.Empty()}
}

// VisibleItems returns only the visible entries of the snapshot.
func (s Snapshot) VisibleItems() []ItemState {
	out := make([]ItemState, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

// Groups returns the distinct group names of visible items in first-seen order.
func (s Snapshot) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, it := range s.Items {
		if !it.Visible || seen[it.Group] {
			continue
		}
		seen[it.Group] = true
		groups = append(groups, it.Group)
	}
	return groups
}
