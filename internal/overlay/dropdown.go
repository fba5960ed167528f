package overlay

import (
	"github.com/alexisbeaulieu97/widgetry/internal/command"
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
)

// MenuItem is an entry in a dropdown menu.
type MenuItem struct {
	Text     string
	Group    string
	Disabled bool
	OnSelect func()
}

// MenuItemState is the per-item render output of a menu.
type MenuItemState struct {
	ID       command.ItemID
	Text     string
	Group    string
	Selected bool
	Disabled bool
	Checkbox bool
	Checked  bool
}

// DropdownMenu is a click-style menu navigated with the keyboard.
type DropdownMenu struct {
	*Surface
	engine  *command.Engine
	checked map[command.ItemID]*bool
}

// NewDropdownMenu creates a menu. Start from DropdownDefaults.
func NewDropdownMenu(opts Options) *DropdownMenu {
	m := &DropdownMenu{
		Surface: NewSurface(opts),
		engine:  command.New(command.Options{Logger: opts.Logger}),
		checked: make(map[command.ItemID]*bool),
	}
	m.Observe(m.onOpenChanged)
	return m
}

func (m *DropdownMenu) onOpenChanged(open bool) {
	if !open {
		return
	}
	m.engine.SelectFirst()
	m.content.Focus()
}

// AddItem appends an item. Activating it runs OnSelect and closes the menu.
func (m *DropdownMenu) AddItem(item MenuItem) command.ItemID {
	onSelect := item.OnSelect
	return m.engine.Register(command.Item{
		Text:     item.Text,
		Group:    item.Group,
		Disabled: item.Disabled,
		OnSelect: func() {
			if onSelect != nil {
				onSelect()
			}
			m.state.Dismiss()
		},
	})
}

// AddCheckbox appends an item that flips a checked flag when activated.
func (m *DropdownMenu) AddCheckbox(text string, checked bool, onChange func(checked bool)) command.ItemID {
	flag := checked
	id := m.AddItem(MenuItem{Text: text, OnSelect: func() {
		flag = !flag
		if onChange != nil {
			onChange(flag)
		}
	}})
	m.checked[id] = &flag
	return id
}

// RemoveItem drops an item; a selected item hands the selection on.
func (m *DropdownMenu) RemoveItem(id command.ItemID) {
	m.engine.Unregister(id)
	delete(m.checked, id)
}

// Checked reports a checkbox item's flag.
func (m *DropdownMenu) Checked(id command.ItemID) bool {
	flag, ok := m.checked[id]
	return ok && *flag
}

// Hover selects the item under the pointer.
func (m *DropdownMenu) Hover(id command.ItemID) {
	m.engine.Select(id)
}

// TriggerClick toggles the menu.
func (m *DropdownMenu) TriggerClick() {
	m.state.Toggle()
}

// HandleKey drives the menu. Closed, down and enter open it; open, arrows
// move the selection with wrap-around and enter activates the selected item.
// It reports whether the key was consumed.
func (m *DropdownMenu) HandleKey(key string) bool {
	if !m.IsOpen() {
		switch key {
		case dom.KeyDown, dom.KeyEnter, " ":
			m.state.RequestOpen()
			return true
		}
		return false
	}
	return m.engine.HandleKey(key)
}

// Items returns the render state of every item in order.
func (m *DropdownMenu) Items() []MenuItemState {
	snap := m.engine.Snapshot()
	out := make([]MenuItemState, 0, len(snap.Items))
	for _, it := range snap.Items {
		flag, checkbox := m.checked[it.ID]
		out = append(out, MenuItemState{
			ID:       it.ID,
			Text:     it.Text,
			Group:    it.Group,
			Selected: it.Selected,
			Disabled: it.Disabled,
			Checkbox: checkbox,
			Checked:  checkbox && *flag,
		})
	}
	return out
}
