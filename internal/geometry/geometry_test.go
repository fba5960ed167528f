package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	trigger = Rect{Top: 100, Left: 200, Width: 80, Height: 20}
	content = Rect{Width: 40, Height: 30}
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		anchor Anchor
		want   Point
	}{
		{"bottom start", Anchor{Side: SideBottom, Align: AlignStart, Offset: 4}, Point{Top: 124, Left: 200}},
		{"bottom center", Anchor{Side: SideBottom, Align: AlignCenter, Offset: 4}, Point{Top: 124, Left: 220}},
		{"bottom end", Anchor{Side: SideBottom, Align: AlignEnd, Offset: 4}, Point{Top: 124, Left: 240}},
		{"top start", Anchor{Side: SideTop, Align: AlignStart, Offset: 4}, Point{Top: 66, Left: 200}},
		{"top end", Anchor{Side: SideTop, Align: AlignEnd, Offset: 0}, Point{Top: 70, Left: 240}},
		{"right start", Anchor{Side: SideRight, Align: AlignStart, Offset: 4}, Point{Top: 100, Left: 284}},
		{"right center", Anchor{Side: SideRight, Align: AlignCenter, Offset: 4}, Point{Top: 95, Left: 284}},
		{"right end", Anchor{Side: SideRight, Align: AlignEnd, Offset: 4}, Point{Top: 90, Left: 284}},
		{"left center", Anchor{Side: SideLeft, Align: AlignCenter, Offset: 8}, Point{Top: 95, Left: 152}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Resolve(trigger, content, tc.anchor))
		})
	}
}

func TestResolveOffsetMovesPrimaryAxisOnly(t *testing.T) {
	t.Parallel()

	for _, side := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
		for _, align := range []Align{AlignStart, AlignCenter, AlignEnd} {
			prev := Resolve(trigger, content, Anchor{Side: side, Align: align, Offset: 0})
			for offset := 1.0; offset <= 16; offset++ {
				next := Resolve(trigger, content, Anchor{Side: side, Align: align, Offset: offset})

				switch side {
				case SideTop:
					require.Less(t, next.Top, prev.Top, "%s/%s", side, align)
					require.Equal(t, prev.Left, next.Left)
				case SideBottom:
					require.Greater(t, next.Top, prev.Top, "%s/%s", side, align)
					require.Equal(t, prev.Left, next.Left)
				case SideLeft:
					require.Less(t, next.Left, prev.Left, "%s/%s", side, align)
					require.Equal(t, prev.Top, next.Top)
				case SideRight:
					require.Greater(t, next.Left, prev.Left, "%s/%s", side, align)
					require.Equal(t, prev.Top, next.Top)
				}
				prev = next
			}
		}
	}
}

func TestResolveAllowsOverflow(t *testing.T) {
	t.Parallel()

	atOrigin := Rect{Top: 0, Left: 0, Width: 10, Height: 2}
	p := Resolve(atOrigin, content, Anchor{Side: SideTop, Align: AlignEnd, Offset: 4})
	require.Equal(t, Point{Top: -34, Left: -30}, p)
}

func TestResolveUnknownSideFallsBackToBottom(t *testing.T) {
	t.Parallel()

	got := Resolve(trigger, content, Anchor{Side: Side(42), Align: AlignStart, Offset: 1})
	require.Equal(t, Point{Top: 121, Left: 200}, got)
}

func TestRectReady(t *testing.T) {
	t.Parallel()

	require.False(t, Rect{}.Ready())
	require.True(t, Rect{Width: 1}.Ready())
	require.True(t, Rect{Top: -3}.Ready())
}

func TestRectContains(t *testing.T) {
	t.Parallel()

	r := Rect{Top: 10, Left: 10, Width: 5, Height: 5}
	require.True(t, r.Contains(10, 10))
	require.True(t, r.Contains(14.9, 14.9))
	require.False(t, r.Contains(15, 12))
	require.False(t, r.Contains(9, 12))
}

func TestParseSideAndAlign(t *testing.T) {
	t.Parallel()

	side, err := ParseSide(" Right ")
	require.NoError(t, err)
	require.Equal(t, SideRight, side)

	_, err = ParseSide("north")
	require.Error(t, err)

	align, err := ParseAlign("end")
	require.NoError(t, err)
	require.Equal(t, AlignEnd, align)
	require.Equal(t, "end", align.String())

	_, err = ParseAlign("middle")
	require.Error(t, err)
	require.Equal(t, "Side(9)", Side(9).String())
}

func TestPointRect(t *testing.T) {
	t.Parallel()

	r := Point{Top: 3, Left: 4}.Rect(10, 2)
	require.Equal(t, Rect{Top: 3, Left: 4, Width: 10, Height: 2}, r)
	require.Equal(t, 5.0, r.Bottom())
	require.Equal(t, 14.0, r.Right())
}
