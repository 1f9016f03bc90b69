package cli

import (
	"testing"

	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/grid/gridtest"
	"github.com/stretchr/testify/assert"
)

func TestRenderGrid(t *testing.T) {
	g := gridtest.Build(
		"A.#",
		".%T",
	)
	ui := New(false)
	want := "+-------+\n" +
		"| A .## |\n" +
		"| .%% T |\n" +
		"+-------+"
	assert.Equal(t, want, ui.RenderGrid(g))

	got := ui.RenderGrid(g,
		Overlay{Pos: grid.Pos{X: 1, Y: 0}, Symbol: '*', Kind: OverlayPath},
		Overlay{Pos: grid.Pos{X: 0, Y: 1}, Symbol: 'H', Kind: OverlayHunter},
	)
	want = "+-------+\n" +
		"| A *## |\n" +
		"| H%% T |\n" +
		"+-------+"
	assert.Equal(t, want, got)
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, displayWidth("\x1b[1;31mabc\x1b[0m"))
	assert.Equal(t, 2, displayWidth("ab"))
}

func TestPathOverlays(t *testing.T) {
	overlays := PathOverlays([]grid.Pos{{X: 1, Y: 1}, {X: 2, Y: 1}})
	assert.Len(t, overlays, 2)
	assert.Equal(t, OverlayPath, overlays[1].Kind)
	assert.Equal(t, grid.Pos{X: 2, Y: 1}, overlays[1].Pos)
}
