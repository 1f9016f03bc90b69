package grid

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// CellLetters used in the text form of a grid.
	CellLetters = map[Cell]byte{Floor: '.', Wall: '#', Breakable: '%', Agent: 'A', TargetMark: 'T'}

	letterToCell = map[byte]Cell{'.': Floor, '#': Wall, '%': Breakable, 'A': Agent, 'T': TargetMark}
)

// Parse a grid from its text form, one string per row. See CellLetters for the legend.
//
// If the layout has one 'A' cell it becomes Self, and if it has one 'T' cell it becomes Target.
// Having more than one of either is an error.
func Parse(layout []string) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, errors.New("empty grid layout")
	}
	g := New(len(layout[0]), len(layout))
	var numAgents, numTargets int
	for y, row := range layout {
		if len(row) != g.width {
			return nil, errors.Errorf("grid layout row %d has %d cells, expected %d", y, len(row), g.width)
		}
		for x := range len(row) {
			c, ok := letterToCell[row[x]]
			if !ok {
				return nil, errors.Errorf("unknown cell %q at (%d, %d) of grid layout", row[x], x, y)
			}
			pos := Pos{x, y}
			g.Set(pos, c)
			switch c {
			case Agent:
				numAgents++
				g.Self = pos
			case TargetMark:
				numTargets++
				g.Target = pos
			}
		}
	}
	if numAgents > 1 || numTargets > 1 {
		return nil, errors.Errorf("grid layout has %d agents and %d targets, at most one of each is accepted",
			numAgents, numTargets)
	}
	return g, nil
}

// String returns the text form of the grid, as accepted by Parse.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := range g.height {
		for x := range g.width {
			sb.WriteByte(CellLetters[g.At(Pos{x, y})])
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
