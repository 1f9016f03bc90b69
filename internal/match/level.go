package match

import (
	"bytes"
	"os"

	"github.com/janpfeifer/chaseGo/internal/generics"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultMaxTurns is used for levels that don't set max_turns.
const DefaultMaxTurns = 500

// Level describes the initial setup of a match. It is usually loaded from a YAML file, see LoadLevel.
type Level struct {
	Name string `yaml:"name"`

	// Layout of the terrain, in the text form accepted by grid.Parse. An 'A' cell is taken as the
	// position of the first hunter if no hunters are given, and a 'T' cell as the prey position if
	// prey is not given. Both are floor otherwise.
	Layout []string `yaml:"layout"`

	Hunters []Spawn `yaml:"hunters"`
	Prey    *Spawn  `yaml:"prey"`

	// Crumble lists the breakable walls that turn into floor, and when.
	Crumble []Crumble `yaml:"crumble"`

	MaxTurns int `yaml:"max_turns"`

	// Parsed from Layout, with markers removed.
	terrain *grid.Grid
}

// Spawn is the initial position of a hunter or the prey.
type Spawn struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`

	// Config of the agent, see agents.New. Ignored for the prey.
	Config string `yaml:"config"`
}

// Pos of the spawn.
func (s Spawn) Pos() grid.Pos {
	return grid.Pos{X: s.X, Y: s.Y}
}

// Crumble makes the breakable wall at (X, Y) turn into floor at the start of the given turn.
type Crumble struct {
	Turn int `yaml:"turn"`
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
}

// LoadLevel reads and parses a level file.
func LoadLevel(filePath string) (*Level, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level from %q", filePath)
	}
	level, err := ParseLevel(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "level file %q", filePath)
	}
	return level, nil
}

// ParseLevel parses and validates a level in YAML. Unknown fields are errors.
func ParseLevel(contents []byte) (*Level, error) {
	level := &Level{}
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)
	if err := dec.Decode(level); err != nil {
		return nil, errors.Wrap(err, "failed to parse level")
	}
	if err := level.init(); err != nil {
		return nil, err
	}
	return level, nil
}

// init parses the layout and checks the positions.
func (l *Level) init() error {
	g, err := grid.Parse(l.Layout)
	if err != nil {
		return errors.WithMessagef(err, "level %q", l.Name)
	}
	var hasAgent, hasTarget bool
	for y := range g.Height() {
		for x := range g.Width() {
			pos := grid.Pos{X: x, Y: y}
			switch g.At(pos) {
			case grid.Agent:
				hasAgent = true
				g.Set(pos, grid.Floor)
			case grid.TargetMark:
				hasTarget = true
				g.Set(pos, grid.Floor)
			}
		}
	}
	if len(l.Hunters) == 0 {
		if !hasAgent {
			return errors.Errorf("level %q has no hunters", l.Name)
		}
		l.Hunters = []Spawn{{X: g.Self.X, Y: g.Self.Y}}
	}
	if l.Prey == nil {
		if !hasTarget {
			return errors.Errorf("level %q has no prey", l.Name)
		}
		l.Prey = &Spawn{X: g.Target.X, Y: g.Target.Y}
	}
	g.Self, g.Target = grid.Pos{}, grid.Pos{}

	occupied := generics.MakeSet[grid.Pos](len(l.Hunters))
	for ii, spawn := range l.Hunters {
		if !g.Passable(spawn.Pos()) {
			return errors.Errorf("level %q: hunter #%d at %s is not on a passable cell", l.Name, ii, spawn.Pos())
		}
		if occupied.Has(spawn.Pos()) {
			return errors.Errorf("level %q: hunter #%d starts at %s, already taken by another hunter", l.Name, ii, spawn.Pos())
		}
		occupied.Insert(spawn.Pos())
	}
	if !g.Passable(l.Prey.Pos()) {
		return errors.Errorf("level %q: prey at %s is not on a passable cell", l.Name, l.Prey.Pos())
	}
	if occupied.Has(l.Prey.Pos()) {
		return errors.Errorf("level %q: prey starts on a hunter at %s", l.Name, l.Prey.Pos())
	}
	for _, c := range l.Crumble {
		pos := grid.Pos{X: c.X, Y: c.Y}
		if !g.InBounds(pos) || g.At(pos) != grid.Breakable {
			return errors.Errorf("level %q: crumble at %s is not a breakable wall", l.Name, pos)
		}
		if c.Turn < 1 {
			return errors.Errorf("level %q: crumble at %s has invalid turn %d", l.Name, pos, c.Turn)
		}
	}
	if l.MaxTurns == 0 {
		l.MaxTurns = DefaultMaxTurns
	} else if l.MaxTurns < 0 {
		return errors.Errorf("level %q: invalid max_turns=%d", l.Name, l.MaxTurns)
	}
	l.terrain = g
	return nil
}

// Terrain returns a copy of the level's initial terrain, without markers.
func (l *Level) Terrain() *grid.Grid {
	return l.terrain.Clone()
}
