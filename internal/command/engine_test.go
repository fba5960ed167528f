package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(e *Engine, texts ...string) []ItemID {
	ids := make([]ItemID, 0, len(texts))
	for _, text := range texts {
		ids = append(ids, e.Register(Item{Text: text}))
	}
	return ids
}

func visibleTexts(e *Engine) []string {
	var out []string
	for _, it := range e.Snapshot().VisibleItems() {
		out = append(out, it.Text)
	}
	return out
}

func selectedText(t *testing.T, e *Engine) string {
	t.Helper()
	for _, it := range e.Snapshot().Items {
		if it.Selected {
			return it.Text
		}
	}
	return ""
}

func TestSetQueryFiltersCaseInsensitively(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	register(e, "Calendar", "Search Emoji", "Calculator", "Settings")

	e.SetQuery("CAL")
	require.Equal(t, []string{"Calendar", "Calculator"}, visibleTexts(e))

	e.SetQuery("")
	require.Equal(t, []string{"Calendar", "Search Emoji", "Calculator", "Settings"}, visibleTexts(e))
}

func TestKeywordsParticipateInFilter(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	e.Register(Item{Text: "Profile", Keywords: []string{"account", "user"}})
	e.Register(Item{Text: "Billing"})

	e.SetQuery("acc")
	require.Equal(t, []string{"Profile"}, visibleTexts(e))
}

func TestVisibleSetMatchesPredicate(t *testing.T) {
	t.Parallel()

	prefix := func(text, query string) bool { return strings.HasPrefix(text, query) }
	items := []string{"alpha", "alps", "beta", "gamma", "al"}

	for _, query := range []string{"a", "al", "alp", "b", "z", "gamma"} {
		e := New(Options{Filter: prefix})
		register(e, items...)
		e.SetQuery(query)

		var want []string
		for _, it := range items {
			if prefix(it, query) {
				want = append(want, it)
			}
		}
		require.Equal(t, want, visibleTexts(e), "query %q", query)
	}
}

func TestEmptyQueryShowsAllRegardlessOfPredicate(t *testing.T) {
	t.Parallel()

	never := func(string, string) bool { return false }
	e := New(Options{Filter: never})
	register(e, "one", "two")

	e.SetQuery("x")
	require.Zero(t, e.VisibleCount())

	e.SetQuery("")
	require.Equal(t, 2, e.VisibleCount())
}

func TestFilterEmptyQueryHandsEmptyQueryToPredicate(t *testing.T) {
	t.Parallel()

	onlyPinned := func(text, query string) bool {
		if query == "" {
			return strings.HasPrefix(text, "*")
		}
		return strings.Contains(text, query)
	}
	e := New(Options{Filter: onlyPinned, FilterEmptyQuery: true})
	register(e, "*home", "docs", "*blog")

	require.Equal(t, []string{"*home", "*blog"}, visibleTexts(e))
	require.False(t, e.Empty(), "empty query is never no-results")
}

func TestSetQueryResetsSelectionToFirstVisible(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	register(e, "Calendar", "Mail", "Calculator")
	e.Move(Last)
	require.Equal(t, "Calculator", selectedText(t, e))

	e.SetQuery("cal")
	require.Equal(t, "Calendar", selectedText(t, e))
	require.Equal(t, 0, e.SelectedIndex())

	e.SetQuery("mail")
	require.Equal(t, "Mail", selectedText(t, e))
}

func TestSetQuerySkipsDisabledWhenChoosingFirst(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	e.Register(Item{Text: "Archive", Disabled: true})
	e.Register(Item{Text: "Archive all"})

	e.SetQuery("arch")
	require.Equal(t, "Archive all", selectedText(t, e))

	only := New(Options{})
	only.Register(Item{Text: "Locked", Disabled: true})
	only.SetQuery("lock")
	require.Equal(t, "Locked", selectedText(t, only))
}

func TestRegisterMovesSelectionOffDisabledItem(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	e.Register(Item{Text: "Archived", Disabled: true})
	require.Equal(t, "Archived", selectedText(t, e), "a lone disabled item is still selected")

	billing := e.Register(Item{Text: "Billing", OnSelect: func() {}})
	got, ok := e.Selected()
	require.True(t, ok)
	require.Equal(t, billing, got)
	require.True(t, e.Activate())

	e.Register(Item{Text: "Profile"})
	got, _ = e.Selected()
	require.Equal(t, billing, got, "an enabled selection is kept")

	e.SetQuery("")
	after, _ := e.Selected()
	require.Equal(t, got, after)
}

func TestRegisterKeepsTraversedDisabledSelection(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	register(e, "Copy")
	e.Register(Item{Text: "Paste", Disabled: true})
	e.Move(Last)
	require.Equal(t, "Paste", selectedText(t, e))

	register(e, "Cut")
	require.Equal(t, "Paste", selectedText(t, e))
}

func TestSelectFirstPrefersEnabled(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	e.Register(Item{Text: "Locked", Disabled: true})
	register(e, "Open", "Save")
	e.Move(Last)

	e.SelectFirst()
	require.Equal(t, "Open", selectedText(t, e))
}

func TestMoveWrapsAmongVisibleItems(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	register(e, "a1", "b1", "a2", "b2", "a3")
	e.SetQuery("a")
	require.Equal(t, "a1", selectedText(t, e))

	e.Move(Next)
	require.Equal(t, "a2", selectedText(t, e))
	e.Move(Next)
	require.Equal(t, "a3", selectedText(t, e))
	e.Move(Next)
	require.Equal(t, "a1", selectedText(t, e), "next wraps to first")

	e.Move(Prev)
	require.Equal(t, "a3", selectedText(t, e), "prev wraps to last")

	e.Move(First)
	require.Equal(t, "a1", selectedText(t, e))
	e.Move(Last)
	require.Equal(t, "a3", selectedText(t, e))
}

func TestMoveNextIsCyclic(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		e := New(Options{})
		for i := 0; i < n; i++ {
			e.Register(Item{Text: strings.Repeat("x", i+1), Disabled: i%2 == 1})
		}
		e.SelectIndex(n / 2)
		start, _ := e.Selected()

		for i := 0; i < e.VisibleCount(); i++ {
			e.Move(Next)
		}
		got, _ := e.Selected()
		require.Equal(t, start, got, "n=%d", n)
	}
}

func TestDisabledItemsAreTraversedButNotActivated(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	fired := map[string]int{}
	for _, it := range []struct {
		text     string
		disabled bool
	}{{"Copy", false}, {"Paste", true}, {"Cut", false}} {
		text := it.text
		e.Register(Item{Text: text, Disabled: it.disabled, OnSelect: func() { fired[text]++ }})
	}

	e.Move(Next)
	require.Equal(t, "Paste", selectedText(t, e))
	require.False(t, e.Activate())
	require.Zero(t, fired["Paste"])

	e.Move(Next)
	require.True(t, e.Activate())
	require.Equal(t, 1, fired["Cut"])
}

func TestActivateRequiresVisibleSelection(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	fired := 0
	e.Register(Item{Text: "Mail", OnSelect: func() { fired++ }})

	e.SetQuery("zz")
	require.False(t, e.Activate())
	require.Zero(t, fired)

	empty := New(Options{})
	require.False(t, empty.Activate())
}

func TestEmptyState(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	require.False(t, e.Empty(), "empty query with zero items")

	register(e, "Calendar", "Mail")
	e.SetQuery("zz")
	require.True(t, e.Empty())
	require.True(t, e.Snapshot().Empty)

	e.SetQuery("mai")
	require.False(t, e.Empty())

	e.SetQuery("")
	require.False(t, e.Empty())
}

func TestUnregisterClampsSelection(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	ids := register(e, "a", "b", "c", "d")

	e.Select(ids[2])
	e.Unregister(ids[2])
	require.Equal(t, "d", selectedText(t, e), "next visible neighbour")

	e.Unregister(ids[3])
	require.Equal(t, "b", selectedText(t, e), "falls back to previous visible")

	e.Unregister(ids[0])
	e.Unregister(ids[1])
	_, ok := e.Selected()
	require.False(t, ok)
	require.Equal(t, -1, e.SelectedIndex())

	e.Move(Next)
	_, ok = e.Selected()
	require.False(t, ok)
}

func TestUnregisterIsOrderIndependentAndIDsAreStable(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	ids := register(e, "a", "b", "c")
	e.Unregister(ids[1])

	require.Equal(t, 0, e.Index(ids[0]))
	require.Equal(t, 1, e.Index(ids[2]))
	require.Equal(t, -1, e.Index(ids[1]))

	d := e.Register(Item{Text: "d"})
	require.NotEqual(t, ids[1], d)
	require.Equal(t, 2, e.Index(d))
	require.Equal(t, 3, e.Len())
}

func TestEnginesDoNotShareState(t *testing.T) {
	t.Parallel()

	a := New(Options{})
	b := New(Options{})
	idA := a.Register(Item{Text: "x"})
	idB := b.Register(Item{Text: "y"})

	require.Equal(t, idA, idB, "ids are per engine")
	a.SetQuery("zzz")
	require.Equal(t, 1, b.VisibleCount())
}

func TestSelectHiddenItemClamps(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	ids := register(e, "apple", "banana", "avocado")
	e.SetQuery("av")
	require.False(t, e.Visible(ids[0]))
	e.Select(ids[0])
	require.Equal(t, "avocado", selectedText(t, e))

	e.SelectIndex(99)
	require.Equal(t, "avocado", selectedText(t, e))
	e.SelectIndex(-4)
	require.Equal(t, "avocado", selectedText(t, e))
}

func TestUpdateReevaluatesVisibility(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	ids := register(e, "red", "green")
	e.SetQuery("re")
	require.Equal(t, "red", selectedText(t, e))

	e.Update(ids[0], Item{Text: "blue"})
	require.False(t, e.Visible(ids[0]))
	require.Equal(t, "green", selectedText(t, e))
}

func TestGroupVisible(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	e.Register(Item{Text: "Calendar", Group: "Suggestions"})
	e.Register(Item{Text: "Profile", Group: "Settings"})
	e.Register(Item{Text: "Billing", Group: "Settings"})

	e.SetQuery("bill")
	assert.False(t, e.GroupVisible("Suggestions"))
	assert.True(t, e.GroupVisible("Settings"))
	assert.Equal(t, []string{"Settings"}, e.Snapshot().Groups())

	e.SetQuery("")
	assert.Equal(t, []string{"Suggestions", "Settings"}, e.Snapshot().Groups())
}

func TestHandleKey(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	fired := ""
	for _, text := range []string{"one", "two", "three"} {
		text := text
		e.Register(Item{Text: text, OnSelect: func() { fired = text }})
	}

	require.True(t, e.HandleKey("down"))
	require.True(t, e.HandleKey("ctrl+n"))
	require.Equal(t, "three", selectedText(t, e))
	require.True(t, e.HandleKey("up"))
	require.True(t, e.HandleKey("end"))
	require.True(t, e.HandleKey("home"))
	require.True(t, e.HandleKey("enter"))
	require.Equal(t, "one", fired)
	require.False(t, e.HandleKey("x"))
}

func TestUsageErrorsOnUnknownItems(t *testing.T) {
	t.Parallel()

	e := New(Options{})
	require.Panics(t, func() { e.Unregister(42) })
	require.Panics(t, func() { e.Select(42) })
	require.Panics(t, func() { e.Update(42, Item{}) })
}
