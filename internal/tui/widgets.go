package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/alexisbeaulieu97/widgetry/internal/collapsible"
	"github.com/alexisbeaulieu97/widgetry/internal/command"
	"github.com/alexisbeaulieu97/widgetry/internal/config"
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/overlay"
	"github.com/alexisbeaulieu97/widgetry/internal/schedule"
	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

const (
	titleRow       = 0
	triggerRow     = 8
	detailsRow     = 10
	areaTop        = 15
	pageLeft       = 2
	triggerGap     = 3
	paletteWidth   = 48
	paletteListLen = 8
	paletteTop     = 3
)

const (
	tooltipLabel = "[ Hover me ]"
	hoverLabel   = "[ @widgetry ]"
	menuLabel    = "[ Menu ▾ ]"
	paletteLabel = "[ Palette ]"
)

var hoverCardLines = []string{"widgetry", "Headless widget engine", "Move here to keep me open"}

const detailsText = "Overlays resolve their position from live measurements.\n" +
	"Dismissal listeners exist only while a surface is open.\n" +
	"Scroll offsets are the single source of truth for thumbs."

// paletteLine is one rendered row of the command palette list.
type paletteLine struct {
	text     string
	id       command.ItemID
	heading  bool
	selected bool
	disabled bool
}

// widgets owns every widget instance and the element tree they measure.
// Bubble Tea copies the Model on every update, so this state lives behind
// a pointer and is shared by all copies.
type widgets struct {
	cfg   *config.Config
	log   *logger.Logger
	clock *schedule.Virtual
	doc   *dom.Document

	page           *dom.Node
	tooltipTrigger *dom.Node
	hoverTrigger   *dom.Node
	menuTrigger    *dom.Node
	paletteTrigger *dom.Node
	detailsHeader  *dom.Node
	detailsContent *dom.Node
	areaFrame      *dom.Node
	vTrack         *dom.Node
	hTrack         *dom.Node
	tooltipContent *dom.Node
	hoverContent   *dom.Node
	menuContent    *dom.Node
	menuRows       []*dom.Node
	menuIDs        []command.ItemID
	paletteContent *dom.Node
	paletteRows    []*dom.Node
	paletteIDs     []command.ItemID

	tooltip   *overlay.Tooltip
	hoverCard *overlay.HoverCard
	menu      *overlay.DropdownMenu
	palette   *command.Dialog
	details   *collapsible.Engine
	content   *contentView
	area      *scrollarea.Area
	hovers    []*overlay.Hover

	focusRing []*dom.Node
	status    string
	width     int
	height    int
}

func newWidgets(cfg *config.Config, log *logger.Logger, now time.Time) *widgets {
	w := &widgets{
		cfg:   cfg,
		log:   log.Component("playground"),
		clock: schedule.NewVirtual(now),
		doc:   dom.NewDocument(),
	}

	w.page = w.doc.NewNode("page", nil)
	w.tooltipTrigger = w.doc.NewNode("tooltip-trigger", w.page)
	w.hoverTrigger = w.doc.NewNode("hover-card-trigger", w.page)
	w.menuTrigger = w.doc.NewNode("menu-trigger", w.page)
	w.paletteTrigger = w.doc.NewNode("palette-trigger", w.page)
	w.detailsHeader = w.doc.NewNode("details-header", w.page)
	w.detailsContent = w.doc.NewNode("details-content", w.page)
	w.areaFrame = w.doc.NewNode("scroll-area", w.page)
	w.vTrack = w.doc.NewNode("scroll-track-vertical", w.areaFrame)
	w.hTrack = w.doc.NewNode("scroll-track-horizontal", w.areaFrame)
	w.tooltipContent = w.doc.NewNode("tooltip-content", nil)
	w.hoverContent = w.doc.NewNode("hover-card-content", nil)
	w.menuContent = w.doc.NewNode("menu-content", nil)
	w.paletteContent = w.doc.NewNode("palette-content", nil)
	w.focusRing = []*dom.Node{w.tooltipTrigger, w.hoverTrigger, w.menuTrigger, w.paletteTrigger, w.detailsHeader}

	w.buildOverlays()
	w.buildMenu()
	w.buildPalette()
	w.buildDetails()
	w.buildScrollArea()
	return w
}

func (w *widgets) surfaceOptions(cfg config.Overlay, base overlay.Options, trigger, content dom.Element) overlay.Options {
	opts := cfg.Apply(base)
	opts.Document = w.doc
	opts.Clock = w.clock
	opts.Trigger = trigger
	opts.Content = content
	opts.Logger = w.log
	return opts
}

func (w *widgets) buildOverlays() {
	w.tooltip = overlay.NewTooltip(w.surfaceOptions(w.cfg.Overlays.Tooltip, overlay.TooltipDefaults(), w.tooltipTrigger, w.tooltipContent))
	w.hoverCard = overlay.NewHoverCard(w.surfaceOptions(w.cfg.Overlays.HoverCard, overlay.HoverCardDefaults(), w.hoverTrigger, w.hoverContent))

	w.hovers = []*overlay.Hover{
		overlay.TrackHover(w.doc, w.tooltipTrigger, w.tooltip.PointerEnter, w.tooltip.PointerLeave),
		overlay.TrackHover(w.doc, w.hoverTrigger, w.hoverCard.PointerEnter, w.hoverCard.PointerLeave),
		overlay.TrackHover(w.doc, w.hoverContent, w.hoverCard.ContentPointerEnter, w.hoverCard.ContentPointerLeave),
	}
}

func (w *widgets) buildMenu() {
	w.menu = overlay.NewDropdownMenu(w.surfaceOptions(w.cfg.Overlays.Dropdown, overlay.DropdownDefaults(), w.menuTrigger, w.menuContent))

	w.menuIDs = append(w.menuIDs,
		w.menu.AddItem(overlay.MenuItem{Text: "New file", OnSelect: func() { w.setStatus("new file created") }}),
		w.menu.AddItem(overlay.MenuItem{Text: "Open recent", Disabled: true}),
		w.menu.AddItem(overlay.MenuItem{Text: "Save", OnSelect: func() { w.setStatus("saved") }}),
		w.menu.AddCheckbox("Line numbers", false, func(checked bool) {
			w.content.setLineNumbers(checked)
			w.area.Refresh()
			w.setStatus(fmt.Sprintf("line numbers %s", onOff(checked)))
		}),
	)
	for i := range w.menuIDs {
		w.menuRows = append(w.menuRows, w.doc.NewNode(fmt.Sprintf("menu-item-%d", i), w.menuContent))
	}
}

func (w *widgets) buildPalette() {
	w.palette = command.NewDialog(command.DialogOptions{
		Document: w.doc,
		Clock:    w.clock,
		Trigger:  w.paletteTrigger,
		Content:  w.paletteContent,
		Logger:   w.log,
	})

	opened := func(name string) func() {
		return func() { w.setStatus("opened " + name) }
	}
	w.palette.Register(command.Item{Text: "Calendar", Group: "Suggestions", OnSelect: opened("calendar")})
	w.palette.Register(command.Item{Text: "Search Emoji", Group: "Suggestions", OnSelect: opened("emoji search")})
	w.palette.Register(command.Item{Text: "Calculator", Group: "Suggestions", OnSelect: opened("calculator")})
	w.palette.Register(command.Item{Text: "Toggle details", Group: "Widgets", OnSelect: func() { w.details.Toggle() }})
	w.palette.Register(command.Item{Text: "Scroll to top", Group: "Widgets", Keywords: []string{"home"}, OnSelect: func() {
		w.area.ScrollTo(scrollarea.Vertical, 0)
	}})
	w.palette.Register(command.Item{Text: "Scroll to bottom", Group: "Widgets", Keywords: []string{"end"}, OnSelect: func() {
		w.area.ScrollTo(scrollarea.Vertical, math.MaxInt32)
	}})
	w.palette.Register(command.Item{Text: "Profile", Group: "Settings", Keywords: []string{"account", "user"}, OnSelect: opened("profile")})
	w.palette.Register(command.Item{Text: "Billing", Group: "Settings", Keywords: []string{"payment"}, OnSelect: opened("billing")})
	w.palette.Register(command.Item{Text: "Danger zone", Group: "Settings", Disabled: true})

	for i := 0; i < paletteListLen; i++ {
		w.paletteRows = append(w.paletteRows, w.doc.NewNode(fmt.Sprintf("palette-row-%d", i), w.paletteContent))
	}
	w.paletteIDs = make([]command.ItemID, paletteListLen)
}

func (w *widgets) buildDetails() {
	w.details = collapsible.New(w.clock, collapsible.MeasureFunc(func() float64 {
		return float64(len(w.detailsLines()))
	}), collapsible.Options{
		Duration: w.cfg.Collapsible.Duration(),
		Logger:   w.log,
	})
}

func (w *widgets) buildScrollArea() {
	w.content = newContentView(sampleLines(60))
	w.area = scrollarea.NewArea(scrollarea.AreaOptions{
		Viewport:        w.content,
		Document:        w.doc,
		VerticalTrack:   w.vTrack,
		HorizontalTrack: w.hTrack,
		MinThumbRatio:   w.cfg.ScrollArea.MinThumbRatio,
		Logger:          w.log,
	})
}

func (w *widgets) setStatus(msg string) {
	w.status = msg
	w.log.DebugFields("status", map[string]any{"message": msg})
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// tick advances the widget clock to t, firing due delays and animations.
func (w *widgets) tick(t time.Time) {
	if t.After(w.clock.Now()) {
		w.clock.AdvanceTo(t)
	}
}

// layout writes every element's bounds for a width x height screen and
// repositions the open surfaces.
func (w *widgets) layout(width, height int) {
	w.width, w.height = width, height
	w.page.SetBounds(rect(0, 0, width, height))

	left := pageLeft
	for _, t := range []struct {
		node  *dom.Node
		label string
	}{
		{w.tooltipTrigger, tooltipLabel},
		{w.hoverTrigger, hoverLabel},
		{w.menuTrigger, menuLabel},
		{w.paletteTrigger, paletteLabel},
	} {
		labelWidth := runewidth.StringWidth(t.label)
		t.node.SetBounds(rect(triggerRow, left, labelWidth, 1))
		left += labelWidth + triggerGap
	}

	w.detailsHeader.SetBounds(rect(detailsRow, pageLeft, 12, 1))
	w.detailsContent.SetHidden(!w.details.Mounted())
	w.detailsContent.SetBounds(rect(detailsRow+1, pageLeft+2, max(0, width-pageLeft-4), w.detailsHeight()))

	top, frameLeft, frameWidth, frameHeight := w.areaFrameRect()
	w.areaFrame.SetBounds(rect(top, frameLeft, frameWidth, frameHeight))
	vpWidth, vpHeight := max(0, frameWidth-3), max(0, frameHeight-3)
	w.vTrack.SetBounds(rect(top+1, frameLeft+1+vpWidth, 1, vpHeight))
	w.hTrack.SetBounds(rect(top+1+vpHeight, frameLeft+1, vpWidth, 1))
	w.content.setSize(vpWidth, vpHeight)
	w.area.Refresh()

	tipWidth, tipHeight := w.tooltipSize()
	placeSurface(w.tooltip.Surface, w.tooltipContent, tipWidth, tipHeight)
	cardWidth, cardHeight := boxSize(hoverCardLines)
	placeSurface(w.hoverCard.Surface, w.hoverContent, cardWidth, cardHeight)
	menuWidth, menuHeight := w.menuSize()
	placeSurface(w.menu.Surface, w.menuContent, menuWidth, menuHeight)
	for i, row := range w.menuRows {
		b := w.menuContent.Bounds()
		row.SetBounds(geometry.Rect{Top: b.Top + 1 + float64(i), Left: b.Left + 1, Width: b.Width - 2, Height: 1})
	}

	paletteLeft := max(0, (width-paletteWidth)/2)
	w.paletteContent.SetHidden(!w.palette.IsOpen())
	w.paletteContent.SetBounds(rect(paletteTop, paletteLeft, paletteWidth, paletteListLen+4))
	lines := w.paletteWindow()
	for i, row := range w.paletteRows {
		w.paletteIDs[i] = 0
		row.SetHidden(i >= len(lines) || lines[i].heading)
		row.SetBounds(rect(paletteTop+3+i, paletteLeft+1, paletteWidth-2, 1))
		if i < len(lines) {
			w.paletteIDs[i] = lines[i].id
		}
	}
}

// placeSurface sizes a surface's content element, repositions it and moves
// the element to the resolved point so hit testing sees it there.
func placeSurface(s *overlay.Surface, content *dom.Node, width, height int) {
	content.SetHidden(!s.IsOpen())
	b := content.Bounds()
	b.Width, b.Height = float64(width), float64(height)
	content.SetBounds(b)
	s.NotifyResize()
	if pos, ok := s.Position(); ok {
		content.SetBounds(pos.Rect(b.Width, b.Height))
	}
}

func (w *widgets) areaFrameRect() (top, left, width, height int) {
	return areaTop, pageLeft, max(8, min(72, w.width-2*pageLeft)), max(6, w.height-areaTop-3)
}

func (w *widgets) tooltipText() string {
	return fmt.Sprintf("Opened after %s", w.cfg.Overlays.Tooltip.OpenDelay())
}

func (w *widgets) tooltipSize() (int, int) {
	return boxSize([]string{w.tooltipText()})
}

func (w *widgets) menuSize() (int, int) {
	widest := 0
	for _, it := range w.menu.Items() {
		widest = max(widest, runewidth.StringWidth(it.Text))
	}
	return widest + 8, len(w.menu.Items()) + 2
}

func boxSize(lines []string) (int, int) {
	widest := 0
	for _, line := range lines {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest + 4, len(lines) + 2
}

// detailsLines wraps the panel text to the current width, so the natural
// height measured on open follows the terminal size.
func (w *widgets) detailsLines() []string {
	return strings.Split(wordwrap.String(detailsText, max(16, w.width-pageLeft-4)), "\n")
}

// detailsHeight is the collapsible height rounded to whole rows.
func (w *widgets) detailsHeight() int {
	return int(math.Round(w.details.CurrentHeight()))
}

// paletteWindow returns the palette rows currently on screen, scrolled so
// the selection stays visible.
func (w *widgets) paletteWindow() []paletteLine {
	snap := w.palette.Engine().Snapshot()
	var lines []paletteLine
	group := ""
	for i, it := range snap.VisibleItems() {
		if i == 0 || it.Group != group {
			group = it.Group
			if group != "" {
				lines = append(lines, paletteLine{text: group, heading: true})
			}
		}
		lines = append(lines, paletteLine{text: it.Text, id: it.ID, selected: it.Selected, disabled: it.Disabled})
	}

	start := 0
	for i, line := range lines {
		if line.selected && i >= paletteListLen {
			start = i - paletteListLen + 1
		}
	}
	end := min(len(lines), start+paletteListLen)
	return lines[start:end]
}

// focus moves keyboard focus along the ring, blurring and focusing the
// tooltip trigger as focus leaves or enters it.
func (w *widgets) focus(delta int) {
	current := -1
	for i, node := range w.focusRing {
		if dom.Element(node) == w.doc.Focused() {
			current = i
		}
	}
	next := (current + delta + len(w.focusRing)) % len(w.focusRing)
	if current < 0 && delta < 0 {
		next = len(w.focusRing) - 1
	}
	if current >= 0 && w.focusRing[current] == w.tooltipTrigger {
		w.tooltip.Blur()
	}
	w.focusRing[next].Focus()
	if w.focusRing[next] == w.tooltipTrigger {
		w.tooltip.Focus()
	}
}

// activateFocused runs the focused trigger's action. It reports whether
// anything was focused.
func (w *widgets) activateFocused() bool {
	switch w.doc.Focused() {
	case dom.Element(w.menuTrigger):
		w.menu.HandleKey(dom.KeyEnter)
	case dom.Element(w.paletteTrigger):
		w.palette.Open()
	case dom.Element(w.detailsHeader):
		w.details.Toggle()
	case dom.Element(w.hoverTrigger):
		w.hoverCard.PointerEnter()
	case dom.Element(w.tooltipTrigger):
		w.tooltip.Focus()
	default:
		return false
	}
	return true
}

func (w *widgets) pointer(x, y int) dom.PointerEvent {
	return dom.PointerEvent{X: float64(x), Y: float64(y)}
}

// press routes a primary button press: dismissal first, then the widget
// under the pointer.
func (w *widgets) press(x, y int) {
	ev := w.pointer(x, y)
	target := w.doc.HitTest(ev.X, ev.Y)
	w.doc.DispatchPointerDown(ev)
	if target == nil {
		return
	}

	switch target {
	case w.tooltipTrigger:
		w.tooltip.TriggerPointerDown()
	case w.menuTrigger:
		w.menu.TriggerClick()
	case w.paletteTrigger:
		w.palette.Toggle()
	case w.detailsHeader:
		w.details.Toggle()
	case w.vTrack:
		w.area.Bar(scrollarea.Vertical).PointerDown(ev)
	case w.hTrack:
		w.area.Bar(scrollarea.Horizontal).PointerDown(ev)
	default:
		if id, ok := w.menuItemAt(target); ok {
			w.menu.Hover(id)
			w.menu.HandleKey(dom.KeyEnter)
		} else if id, ok := w.paletteItemAt(target); ok {
			w.palette.Engine().Select(id)
			w.palette.HandleKey(dom.KeyEnter)
		}
	}
}

// move routes pointer motion: hover tracking and drags listen on the
// document; menu and palette rows follow the pointer.
func (w *widgets) move(x, y int) {
	ev := w.pointer(x, y)
	w.doc.DispatchPointerMove(ev)
	target := w.doc.HitTest(ev.X, ev.Y)
	if target == nil {
		return
	}
	if id, ok := w.menuItemAt(target); ok && w.menu.IsOpen() {
		w.menu.Hover(id)
	} else if id, ok := w.paletteItemAt(target); ok && w.palette.IsOpen() {
		w.palette.Engine().Select(id)
	}
}

func (w *widgets) release(x, y int) {
	w.doc.DispatchPointerUp(w.pointer(x, y))
}

// wheel scrolls the area when the pointer is over it.
func (w *widgets) wheel(x, y int, delta float64, axis scrollarea.Axis) {
	if !w.areaFrame.Bounds().Contains(float64(x), float64(y)) {
		return
	}
	w.area.ScrollBy(axis, delta)
}

func (w *widgets) menuItemAt(target *dom.Node) (command.ItemID, bool) {
	for i, row := range w.menuRows {
		if row == target {
			return w.menuIDs[i], true
		}
	}
	return 0, false
}

func (w *widgets) paletteItemAt(target *dom.Node) (command.ItemID, bool) {
	for i, row := range w.paletteRows {
		if row == target && w.paletteIDs[i] != 0 {
			return w.paletteIDs[i], true
		}
	}
	return 0, false
}

func rect(top, left, width, height int) geometry.Rect {
	return geometry.Rect{Top: float64(top), Left: float64(left), Width: float64(width), Height: float64(height)}
}
