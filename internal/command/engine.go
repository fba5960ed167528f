// Package command implements the list navigation engine behind the command
// palette: a filter query, an ordered item registry, visibility bookkeeping
// and keyboard traversal over the visible items.
package command

import (
	"strings"

	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// ItemID identifies a registered item for its whole lifetime. IDs are
// assigned by the engine and never reused within one engine.
type ItemID uint64

// Item is what the application registers.
type Item struct {
	Text     string
	Keywords []string
	Group    string
	Disabled bool
	OnSelect func()
}

// FilterFunc decides whether an item matches the query. text is the item
// text joined with its keywords.
type FilterFunc func(text, query string) bool

// Direction is a keyboard traversal step.
type Direction int

const (
	Next Direction = iota
	Prev
	First
	Last
)

// Options configures an Engine.
type Options struct {
	// Filter replaces the default case-insensitive substring match.
	Filter FilterFunc
	// FilterEmptyQuery hands empty queries to Filter too. Without it an
	// empty query shows every item.
	FilterEmptyQuery bool
	Logger           *logger.Logger
}

type entry struct {
	id      ItemID
	item    Item
	visible bool
}

// Engine is the navigation state of one palette or menu instance.
type Engine struct {
	opts    Options
	log     *logger.Logger
	query   string
	entries []*entry
	byID    map[ItemID]*entry
	nextID  ItemID

	selected ItemID
}

// New creates an empty engine.
func New(opts Options) *Engine {
	return &Engine{
		opts: opts,
		log:  opts.Logger.Component("command"),
		byID: make(map[ItemID]*entry),
	}
}

// DefaultFilter matches case-insensitively on a substring.
func DefaultFilter(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// SearchText joins an item's text and keywords the way filters see them.
func SearchText(item Item) string {
	if len(item.Keywords) == 0 {
		return item.Text
	}
	return item.Text + " " + strings.Join(item.Keywords, " ")
}

// Query returns the active filter query.
func (e *Engine) Query() string {
	return e.query
}

// SetQuery replaces the query, recomputes visibility for every item and
// moves the selection to the first visible item.
func (e *Engine) SetQuery(query string) {
	e.query = query
	for _, en := range e.entries {
		en.visible = e.matches(en.item)
	}
	e.SelectFirst()
	e.log.DebugFields("query changed", map[string]any{"query": query, "visible": e.VisibleCount()})
}

// Register appends an item in mount order and returns its ID. An empty
// selection, or one resting on a disabled item while no enabled item is
// visible, moves to the first visible enabled item.
func (e *Engine) Register(item Item) ItemID {
	e.nextID++
	en := &entry{id: e.nextID, item: item}
	en.visible = e.matches(item)
	e.entries = append(e.entries, en)
	e.byID[en.id] = en

	if en.visible && e.needsSelection(en.id) {
		e.SelectFirst()
	}
	return en.id
}

// Update replaces a registered item's data and re-evaluates its visibility.
func (e *Engine) Update(id ItemID, item Item) {
	en := e.mustEntry(id, "Update")
	pos := e.position(id)
	en.item = item
	en.visible = e.matches(item)
	if e.selected == id && !en.visible {
		e.clampFrom(pos)
	}
	if e.selected == 0 && en.visible {
		e.selected = id
	}
}

// Unregister removes an item. A selected item hands the selection to the
// nearest visible neighbour.
func (e *Engine) Unregister(id ItemID) {
	e.mustEntry(id, "Unregister")
	pos := e.position(id)
	e.entries = append(e.entries[:pos], e.entries[pos+1:]...)
	delete(e.byID, id)

	if e.selected == id {
		e.clampFrom(pos)
	}
}

// Len returns the number of registered items.
func (e *Engine) Len() int {
	return len(e.entries)
}

// Index returns the item's mount-order position, or -1 if unknown.
func (e *Engine) Index(id ItemID) int {
	if _, ok := e.byID[id]; !ok {
		return -1
	}
	return e.position(id)
}

// Visible reports whether the item currently matches the query.
func (e *Engine) Visible(id ItemID) bool {
	en, ok := e.byID[id]
	return ok && en.visible
}

// VisibleCount returns the number of visible items.
func (e *Engine) VisibleCount() int {
	n := 0
	for _, en := range e.entries {
		if en.visible {
			n++
		}
	}
	return n
}

// Empty reports the "no results" state: a non-empty query with nothing
// visible. An empty query is never "no results", even with zero items.
func (e *Engine) Empty() bool {
	return e.query != "" && e.VisibleCount() == 0
}

// GroupVisible reports whether any item in the group is visible, which is
// when its heading should render.
func (e *Engine) GroupVisible(group string) bool {
	for _, en := range e.entries {
		if en.item.Group == group && en.visible {
			return true
		}
	}
	return false
}

// Selected returns the selected item ID.
func (e *Engine) Selected() (ItemID, bool) {
	return e.selected, e.selected != 0
}

// SelectedIndex returns the selection's position among visible items, or -1.
func (e *Engine) SelectedIndex() int {
	for i, en := range e.visible() {
		if en.id == e.selected {
			return i
		}
	}
	return -1
}

// Select selects an item, typically on pointer hover. Selecting an item that
// is not visible clamps to the nearest visible item.
func (e *Engine) Select(id ItemID) {
	en := e.mustEntry(id, "Select")
	if en.visible {
		e.selected = id
		return
	}
	e.clampFrom(e.position(id))
}

// SelectIndex selects by position among visible items, clamping out-of-range
// positions to the first or last visible item.
func (e *Engine) SelectIndex(i int) {
	vis := e.visible()
	if len(vis) == 0 {
		e.selected = 0
		return
	}
	i = max(0, min(i, len(vis)-1))
	e.selected = vis[i].id
}

// Move steps the selection among visible items, wrapping at both ends.
// Disabled items take part in traversal.
func (e *Engine) Move(dir Direction) {
	vis := e.visible()
	if len(vis) == 0 {
		e.selected = 0
		return
	}

	cur := e.SelectedIndex()
	var next int
	switch dir {
	case First:
		next = 0
	case Last:
		next = len(vis) - 1
	case Prev:
		if cur <= 0 {
			next = len(vis) - 1
		} else {
			next = cur - 1
		}
	default:
		if cur < 0 || cur == len(vis)-1 {
			next = 0
		} else {
			next = cur + 1
		}
	}
	e.selected = vis[next].id
}

// Activate runs the selected item's OnSelect when it is visible and enabled.
// It reports whether the item was activated.
func (e *Engine) Activate() bool {
	en, ok := e.byID[e.selected]
	if !ok || !en.visible || en.item.Disabled {
		return false
	}
	e.log.DebugFields("item activated", map[string]any{"item": en.item.Text})
	if en.item.OnSelect != nil {
		en.item.OnSelect()
	}
	return true
}

// HandleKey maps navigation keys onto Move and Activate. It reports whether
// the key was consumed.
func (e *Engine) HandleKey(key string) bool {
	switch key {
	case "down", "ctrl+n":
		e.Move(Next)
	case "up", "ctrl+p":
		e.Move(Prev)
	case "home":
		e.Move(First)
	case "end":
		e.Move(Last)
	case "enter":
		e.Activate()
	default:
		return false
	}
	return true
}

func (e *Engine) matches(item Item) bool {
	if e.query == "" && !e.opts.FilterEmptyQuery {
		return true
	}
	filter := e.opts.Filter
	if filter == nil {
		filter = DefaultFilter
	}
	return filter(SearchText(item), e.query)
}

func (e *Engine) visible() []*entry {
	vis := make([]*entry, 0, len(e.entries))
	for _, en := range e.entries {
		if en.visible {
			vis = append(vis, en)
		}
	}
	return vis
}

// SelectFirst selects the first visible enabled item, falling back to the
// first visible one.
func (e *Engine) SelectFirst() {
	e.selected = 0
	for _, en := range e.entries {
		if !en.visible {
			continue
		}
		if !en.item.Disabled {
			e.selected = en.id
			return
		}
		if e.selected == 0 {
			e.selected = en.id
		}
	}
}

// needsSelection reports whether the selection is empty, or disabled while
// no other visible item besides skip is enabled.
func (e *Engine) needsSelection(skip ItemID) bool {
	cur, ok := e.byID[e.selected]
	if !ok {
		return true
	}
	if !cur.item.Disabled {
		return false
	}
	for _, en := range e.entries {
		if en.id != skip && en.visible && !en.item.Disabled {
			return false
		}
	}
	return true
}

// clampFrom selects the first visible item at or after pos in mount order,
// else the last visible item before it.
func (e *Engine) clampFrom(pos int) {
	e.selected = 0
	for i := pos; i < len(e.entries); i++ {
		if e.entries[i].visible {
			e.selected = e.entries[i].id
			return
		}
	}
	for i := min(pos, len(e.entries)) - 1; i >= 0; i-- {
		if e.entries[i].visible {
			e.selected = e.entries[i].id
			return
		}
	}
}

func (e *Engine) position(id ItemID) int {
	for i, en := range e.entries {
		if en.id == id {
			return i
		}
	}
	return -1
}

func (e *Engine) mustEntry(id ItemID, op string) *entry {
	en, ok := e.byID[id]
	if !ok {
		apperrors.PanicUsage("command", op, "item is not registered")
	}
	return en
}
