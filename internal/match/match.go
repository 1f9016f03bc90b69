// Package match runs the simulation around the agents: it owns the true grid, moves the hunters
// according to their decisions, moves the prey and checks for capture.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/janpfeifer/chaseGo/internal/agents"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Entity is anything moving on the grid: a hunter or the prey.
type Entity struct {
	Pos    grid.Pos
	Facing grid.Move
}

// Hunter is an agent with its position on the true grid.
type Hunter struct {
	Entity
	Agent agents.Agent
}

// Match holds the state of one simulation.
type Match struct {
	id    uint64
	level *Level
	truth *grid.Grid

	hunters []*Hunter
	prey    Entity
	walker  *searchers.RandomWalk

	turn       int
	captured   bool
	capturedBy int

	onTurn func(m *Match)
}

// New creates a match for the given level.
//
// The hunters are created with the configuration of the level, unless config is given, in which
// case it is used for all of them. The id seeds the random walks, so matches with the same id,
// level and configuration are identical.
func New(id uint64, level *Level, config string) (*Match, error) {
	m := &Match{
		id:         id,
		level:      level,
		truth:      level.Terrain(),
		prey:       Entity{Pos: level.Prey.Pos(), Facing: grid.Stay},
		walker:     searchers.NewRandomWalk(id ^ 0xC0FFEE),
		capturedBy: -1,
	}
	for ii, spawn := range level.Hunters {
		hunterConfig := spawn.Config
		if config != "" {
			hunterConfig = config
		}
		agent, err := agents.New(id, ii, hunterConfig)
		if err != nil {
			return nil, errors.WithMessagef(err, "level %q, hunter #%d", level.Name, ii)
		}
		m.hunters = append(m.hunters, &Hunter{
			Entity: Entity{Pos: spawn.Pos(), Facing: grid.Stay},
			Agent:  agent,
		})
	}
	return m, nil
}

// WithOnTurn sets a function called after every turn. It returns itself.
func (m *Match) WithOnTurn(fn func(m *Match)) *Match {
	m.onTurn = fn
	return m
}

// Level of the match.
func (m *Match) Level() *Level { return m.level }

// Truth returns the true grid. It must not be changed.
func (m *Match) Truth() grid.Reader { return m.truth }

// Hunters of the match.
func (m *Match) Hunters() []*Hunter { return m.hunters }

// Prey returns the position and facing of the prey.
func (m *Match) Prey() Entity { return m.prey }

// Turn returns the number of turns played so far.
func (m *Match) Turn() int { return m.turn }

// Captured returns whether the prey was captured, and by which hunter.
func (m *Match) Captured() (captured bool, hunterIdx int) {
	return m.captured, m.capturedBy
}

// Done returns whether the match is over.
func (m *Match) Done() bool {
	return m.captured || m.turn >= m.level.MaxTurns
}

// Step plays one turn: breakable walls scheduled to crumble are removed, each hunter in order
// decides and makes its move, then the prey moves.
// It returns whether the match is over.
func (m *Match) Step() bool {
	if m.Done() {
		return true
	}
	m.turn++
	m.crumble()
	for ii, h := range m.hunters {
		m.moveHunter(ii, h)
		if h.Pos == m.prey.Pos {
			m.capture(ii)
			return true
		}
	}

	move := m.walker.Next(m.truth, m.prey.Pos, m.prey.Facing)
	if move != grid.Stay {
		m.prey.Pos = m.prey.Pos.Add(move)
		m.prey.Facing = move
	}
	for ii, h := range m.hunters {
		if h.Pos == m.prey.Pos {
			m.capture(ii)
			return true
		}
	}
	return m.Done()
}

func (m *Match) crumble() {
	for _, c := range m.level.Crumble {
		if c.Turn != m.turn {
			continue
		}
		pos := grid.Pos{X: c.X, Y: c.Y}
		if m.truth.At(pos) == grid.Breakable {
			m.truth.Set(pos, grid.Floor)
			klog.V(1).Infof("match %d, turn %d: wall at %s crumbled", m.id, m.turn, pos)
		}
	}
}

// moveHunter asks the hunter for its move and applies it, if valid.
//
// Moves into blocked cells are ignored. If the destination is taken by another hunter, the mover
// stays in place.
func (m *Match) moveHunter(idx int, h *Hunter) {
	move := h.Agent.DecideMove(agents.Observation{
		Truth:  m.truth,
		Self:   h.Pos,
		Facing: h.Facing,
		Target: m.prey.Pos,
	})
	if move == grid.Stay {
		return
	}
	if !move.IsUnit() {
		klog.Errorf("match %d, turn %d: %s returned invalid move %s, ignored", m.id, m.turn, h.Agent, move)
		return
	}
	to := h.Pos.Add(move)
	if !m.truth.Passable(to) {
		klog.V(2).Infof("match %d, turn %d: %s bumped into %s", m.id, m.turn, h.Agent, to)
		return
	}
	for otherIdx, other := range m.hunters {
		if otherIdx != idx && other.Pos == to {
			klog.V(2).Infof("match %d, turn %d: %s blocked by %s at %s", m.id, m.turn, h.Agent, other.Agent, to)
			return
		}
	}
	h.Pos = to
	h.Facing = move
}

func (m *Match) capture(hunterIdx int) {
	m.captured, m.capturedBy = true, hunterIdx
	klog.V(1).Infof("match %d, turn %d: prey captured by %s at %s", m.id, m.turn, m.hunters[hunterIdx].Agent, m.prey.Pos)
}

// Result of a match.
type Result struct {
	Level      string
	Turns      int
	Captured   bool
	CapturedBy int

	// Replans and Failures of the path searches, per hunter. Zero for agents that don't plan.
	Replans, Failures []int
}

// String implements fmt.Stringer.
func (r Result) String() string {
	var sb strings.Builder
	if r.Captured {
		_, _ = fmt.Fprintf(&sb, "%s: captured by hunter #%d in %d turns", r.Level, r.CapturedBy, r.Turns)
	} else {
		_, _ = fmt.Fprintf(&sb, "%s: prey escaped after %d turns", r.Level, r.Turns)
	}
	_, _ = fmt.Fprintf(&sb, " (replans=%v, failures=%v)", r.Replans, r.Failures)
	return sb.String()
}

// replanner is implemented by agents that count their path searches, like agents.Hunter.
type replanner interface {
	Replans() (replans, failures int)
}

// Result returns the current result of the match.
func (m *Match) Result() Result {
	r := Result{
		Level:      m.level.Name,
		Turns:      m.turn,
		Captured:   m.captured,
		CapturedBy: m.capturedBy,
		Replans:    make([]int, len(m.hunters)),
		Failures:   make([]int, len(m.hunters)),
	}
	for ii, h := range m.hunters {
		if rp, ok := h.Agent.(replanner); ok {
			r.Replans[ii], r.Failures[ii] = rp.Replans()
		}
	}
	return r
}

// Run plays the match until the prey is captured or the maximum number of turns is reached.
// It returns an error only if ctx is cancelled, along with the partial result.
func (m *Match) Run(ctx context.Context) (Result, error) {
	for !m.Done() {
		if err := ctx.Err(); err != nil {
			return m.Result(), errors.Wrapf(err, "match %d interrupted at turn %d", m.id, m.turn)
		}
		m.Step()
		if m.onTurn != nil {
			m.onTurn(m)
		}
	}
	return m.Result(), nil
}
