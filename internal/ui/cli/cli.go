// Package cli implements a command-line printer for grids and matches.
package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/chaseGo/internal/generics"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// Center indents every line of block so that it is centered in the terminal.
// If the output is not a terminal, block is returned unchanged.
func Center(block string) string {
	terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return block
	}
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := strings.Repeat(" ", max(0, (terminalWidth-blockWidth)/2))
	for ii, line := range lines {
		if len(line) > 0 {
			lines[ii] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// OverlayKind selects the style of an Overlay.
type OverlayKind int

const (
	OverlayHunter OverlayKind = iota
	OverlayPrey
	OverlayPath
	OverlayLastSeen
)

// Overlay is a symbol drawn on top of a grid cell: agents, paths, etc.
type Overlay struct {
	Pos    grid.Pos
	Symbol rune
	Kind   OverlayKind
}

// UI prints grids, optionally with colors.
type UI struct {
	color bool

	styles map[grid.Cell]lipgloss.Style
	kinds  map[OverlayKind]lipgloss.Style
}

// New creates a UI. If color is false, plain text is printed.
func New(color bool) *UI {
	ui := &UI{color: color}
	if color {
		base := lipgloss.NewStyle().Bold(true)
		ui.styles = map[grid.Cell]lipgloss.Style{
			grid.Floor:      base.Foreground(lipgloss.Color("8")),
			grid.Wall:       base.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
			grid.Breakable:  base.Foreground(lipgloss.Color("3")).Background(lipgloss.Color("8")),
			grid.Agent:      base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")),
			grid.TargetMark: base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		}
		ui.kinds = map[OverlayKind]lipgloss.Style{
			OverlayHunter:   base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")),
			OverlayPrey:     base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
			OverlayPath:     base.Foreground(lipgloss.Color("11")),
			OverlayLastSeen: base.Foreground(lipgloss.Color("13")),
		}
	}
	return ui
}

// cellSymbols are 2 characters wide, so the grid looks about square in a terminal.
var cellSymbols = map[grid.Cell]string{
	grid.Floor:      " .",
	grid.Wall:       "##",
	grid.Breakable:  "%%",
	grid.Agent:      " A",
	grid.TargetMark: " T",
}

// RenderGrid returns the text rendering of g with the given overlays. Later overlays are
// drawn on top of earlier ones.
func (ui *UI) RenderGrid(g grid.Reader, overlays ...Overlay) string {
	byPos := make(map[grid.Pos]Overlay, len(overlays))
	for _, overlay := range overlays {
		byPos[overlay.Pos] = overlay
	}
	var sb strings.Builder
	border := "+" + strings.Repeat("-", 2*g.Width()+1) + "+"
	sb.WriteString(border + "\n")
	for y := range g.Height() {
		sb.WriteString("|")
		for x := range g.Width() {
			pos := grid.Pos{X: x, Y: y}
			if overlay, found := byPos[pos]; found {
				sb.WriteString(ui.renderOverlay(overlay))
				continue
			}
			c := g.At(pos)
			symbol, found := cellSymbols[c]
			if !found {
				symbol = fmt.Sprintf("%2d", c)
			}
			if style, found := ui.styles[c]; found {
				symbol = style.Render(symbol)
			}
			sb.WriteString(symbol)
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func (ui *UI) renderOverlay(overlay Overlay) string {
	symbol := " " + string(overlay.Symbol)
	if style, found := ui.kinds[overlay.Kind]; found {
		return style.Render(symbol)
	}
	return symbol
}

// PrintGrid prints the grid centered in the terminal.
func (ui *UI) PrintGrid(g grid.Reader, overlays ...Overlay) {
	fmt.Println(Center(ui.RenderGrid(g, overlays...)))
}

// PathOverlays returns overlays marking each of the positions with a '*' in the path style.
func PathOverlays(positions []grid.Pos) []Overlay {
	return generics.SliceMap(positions, func(pos grid.Pos) Overlay {
		return Overlay{Pos: pos, Symbol: '*', Kind: OverlayPath}
	})
}
