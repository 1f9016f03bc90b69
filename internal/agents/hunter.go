package agents

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/knowledge"
	"github.com/janpfeifer/chaseGo/internal/parameters"
	"github.com/janpfeifer/chaseGo/internal/searchers"
	"github.com/janpfeifer/chaseGo/internal/searchers/astar"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

func init() {
	RegisterModule("astar", &hunterModule{})
}

// Default configuration of a Hunter.
const (
	DefaultRadius      = 1
	DefaultSight       = 6
	DefaultChaseRadius = 4
	DefaultChaseTurns  = 3
	DefaultResetAfter  = 0
)

// Hunter pursues its target using the A* searcher over what it knows of the grid.
//
// While Unaware it random walks. Once it perceives the target it becomes Pursuing: it plans a
// path to where the target was last seen, and follows it one move per turn, replanning whenever
// it learns something new about the grid or runs out of moves. It becomes Unaware again when it
// arrives at the last seen position without perceiving the target, or when planning fails.
type Hunter struct {
	name   string
	finder searchers.Pathfinder
	walker *searchers.RandomWalk
	known  *knowledge.Known

	// radius of the neighbourhood refreshed every turn.
	radius int

	// sight is how far the target is seen, straight ahead.
	sight int

	// chaseRadius is the Manhattan distance at which a pursued target is still perceived, for
	// at most maxChaseTurns turns after it was last seen directly.
	chaseRadius, maxChaseTurns int

	resetAfter int

	regime     Regime
	lastSeen   grid.Pos
	path       searchers.Path
	chaseTurns int

	// expected is where the hunter should be next turn if its last move succeeded.
	expected grid.Pos

	replans, failures int
}

// Assert Hunter is an Agent.
var _ Agent = (*Hunter)(nil)

// NewHunter creates a Hunter that uses finder to plan its paths and walker while Unaware.
// Other options use the default values and can be changed with the With... methods.
func NewHunter(name string, finder searchers.Pathfinder, walker *searchers.RandomWalk) *Hunter {
	return &Hunter{
		name:          name,
		finder:        finder,
		walker:        walker,
		radius:        DefaultRadius,
		sight:         DefaultSight,
		chaseRadius:   DefaultChaseRadius,
		maxChaseTurns: DefaultChaseTurns,
		resetAfter:    DefaultResetAfter,
	}
}

// WithRadius sets the radius of the neighbourhood perceived every turn. It must be >= 1.
func (h *Hunter) WithRadius(radius int) *Hunter {
	h.radius = radius
	return h
}

// WithSight sets how many cells ahead, in the direction it is facing, the Hunter sees its target.
func (h *Hunter) WithSight(sight int) *Hunter {
	h.sight = sight
	return h
}

// WithChase sets the radius (Manhattan distance) within which a Pursuing hunter keeps track of
// its target without seeing it, and for how many turns.
func (h *Hunter) WithChase(chaseRadius, chaseTurns int) *Hunter {
	h.chaseRadius, h.maxChaseTurns = chaseRadius, chaseTurns
	return h
}

// WithResetAfter makes the Hunter forget its known grid after learning that many cells.
// 0 disables it.
func (h *Hunter) WithResetAfter(resetAfter int) *Hunter {
	h.resetAfter = resetAfter
	if h.known != nil {
		h.known.ResetAfter = resetAfter
	}
	return h
}

// String implements fmt.Stringer and Agent.
func (h *Hunter) String() string {
	return h.name
}

// Regime implements Agent.
func (h *Hunter) Regime() Regime {
	return h.regime
}

// LastSeen returns the position where the target was last perceived. Only meaningful while Pursuing.
func (h *Hunter) LastSeen() grid.Pos {
	return h.lastSeen
}

// Path returns the moves left in the current plan.
func (h *Hunter) Path() searchers.Path {
	return h.path
}

// Known returns the hunter's knowledge of the grid, or nil before its first move.
func (h *Hunter) Known() *knowledge.Known {
	return h.known
}

// Replans returns the number of path searches done so far, and Failures how many of them failed.
func (h *Hunter) Replans() (replans, failures int) {
	return h.replans, h.failures
}

// DecideMove implements Agent.
func (h *Hunter) DecideMove(obs Observation) grid.Move {
	if h.known == nil || h.known.Grid().Width() != obs.Truth.Width() || h.known.Grid().Height() != obs.Truth.Height() {
		h.known = knowledge.New(obs.Truth.Width(), obs.Truth.Height())
		h.known.ResetAfter = h.resetAfter
	}
	newInfo := h.known.Refresh(obs.Truth, obs.Self, h.radius)

	// A move not carried out (e.g. blocked by another hunter) invalidates the path.
	replan := newInfo || obs.Self != h.expected
	if h.perceive(obs) {
		if h.regime == Unaware || obs.Target != h.lastSeen {
			replan = true
		}
		if h.regime == Unaware {
			klog.V(1).Infof("%s: target perceived at %s from %s", h, obs.Target, obs.Self)
		}
		h.regime = Pursuing
		h.lastSeen = obs.Target
	} else if h.regime == Pursuing && obs.Self == h.lastSeen {
		klog.V(1).Infof("%s: arrived at %s, target lost", h, h.lastSeen)
		h.becomeUnaware()
	}

	if h.regime == Pursuing {
		if obs.Self == h.lastSeen {
			// Standing on the target.
			h.expected = obs.Self
			return grid.Stay
		}
		if m, ok := h.pursue(obs.Self, replan); ok {
			h.expected = obs.Self.Add(m)
			return m
		}
		h.becomeUnaware()
	}
	m := h.walker.Next(h.known.Grid(), obs.Self, obs.Facing)
	h.expected = obs.Self.Add(m)
	return m
}

// perceive returns whether the target can be perceived: in the 8-neighbourhood, or in the line
// of sight, or, if Pursuing, within the chase radius while there are chase turns left.
func (h *Hunter) perceive(obs Observation) bool {
	if obs.Self.Chebyshev(obs.Target) <= 1 || lineOfSight(obs.Truth, obs.Self, obs.Facing, obs.Target, h.sight) {
		h.chaseTurns = h.maxChaseTurns
		return true
	}
	if h.regime == Pursuing && h.chaseTurns > 0 && obs.Self.Distance(obs.Target) <= h.chaseRadius {
		h.chaseTurns--
		return true
	}
	return false
}

// lineOfSight returns whether target is within sight cells straight ahead of from, in the
// direction of facing, without walls in between.
func lineOfSight(truth grid.Reader, from grid.Pos, facing grid.Move, target grid.Pos, sight int) bool {
	if !facing.IsUnit() {
		return false
	}
	pos := from
	for range sight {
		pos = pos.Add(facing)
		if !grid.Contains(truth, pos) || truth.At(pos).Blocks() {
			return false
		}
		if pos == target {
			return true
		}
	}
	return false
}

// pursue returns the next move towards the last seen position, planning a new path if replan
// is set or the current one is exhausted. It returns false if no path could be found.
func (h *Hunter) pursue(self grid.Pos, replan bool) (grid.Move, bool) {
	if replan || h.path.Empty() {
		if !h.plan(self) {
			return grid.Stay, false
		}
	}
	m := h.path.Pop()
	if next := self.Add(m); !grid.Contains(h.known.Grid(), next) || h.known.Grid().At(next).Blocks() {
		// The path doesn't match what is known: the previous position is not what the plan assumed.
		if !h.plan(self) {
			return grid.Stay, false
		}
		m = h.path.Pop()
	}
	return m, true
}

// plan searches a path from self to the last seen position over the known grid.
//
// Any failure, including a panic in the search, is logged and reported as false: the
// simulation carries on with the hunter Unaware.
func (h *Hunter) plan(self grid.Pos) (ok bool) {
	h.replans++
	var (
		path  searchers.Path
		found bool
	)
	exception := exceptions.Try(func() {
		path, found = h.finder.FindPath(h.known.Snapshot(), self, h.lastSeen)
	})
	if exception != nil {
		h.failures++
		klog.Errorf("%s: path search from %s to %s failed: %v", h, self, h.lastSeen, exception)
		return false
	}
	if !found || path.Empty() {
		h.failures++
		klog.V(1).Infof("%s: no path from %s to %s", h, self, h.lastSeen)
		return false
	}
	h.path = path
	return true
}

func (h *Hunter) becomeUnaware() {
	h.regime = Unaware
	h.path.Clear()
	h.chaseTurns = 0
}

// hunterModule creates Hunters from configuration parameters.
type hunterModule struct{}

// NewAgent implements Module. Parameters:
//
//   - radius, sight, chase_radius, chase_turns, reset_after: see the Hunter.With... methods.
//   - max_expansions, check_heap: see astar.NewFromParams.
//   - forward_bias, reverse_penalty, temperature, seed: configure the random walk.
func (m *hunterModule) NewAgent(matchID uint64, agentIdx int, params parameters.Params) (Agent, error) {
	finder, err := astar.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	walker, err := randomWalkFromParams(matchID, agentIdx, params)
	if err != nil {
		return nil, err
	}
	h := NewHunter(fmt.Sprintf("Hunter-%d", agentIdx), finder, walker)
	if h.radius, err = parameters.PopParamOr(params, "radius", h.radius); err != nil {
		return nil, err
	}
	if h.radius < 1 {
		return nil, errors.Errorf("radius must be >= 1, got %d", h.radius)
	}
	if h.sight, err = parameters.PopParamOr(params, "sight", h.sight); err != nil {
		return nil, err
	}
	if h.chaseRadius, err = parameters.PopParamOr(params, "chase_radius", h.chaseRadius); err != nil {
		return nil, err
	}
	if h.maxChaseTurns, err = parameters.PopParamOr(params, "chase_turns", h.maxChaseTurns); err != nil {
		return nil, err
	}
	if h.resetAfter, err = parameters.PopParamOr(params, "reset_after", h.resetAfter); err != nil {
		return nil, err
	}
	if h.sight < 0 || h.chaseRadius < 0 || h.maxChaseTurns < 0 || h.resetAfter < 0 {
		return nil, errors.Errorf("negative values not accepted for sight=%d, chase_radius=%d, chase_turns=%d, reset_after=%d",
			h.sight, h.chaseRadius, h.maxChaseTurns, h.resetAfter)
	}
	return h, nil
}

// randomWalkFromParams pops the random walk parameters.
func randomWalkFromParams(matchID uint64, agentIdx int, params parameters.Params) (*searchers.RandomWalk, error) {
	seed, err := parameters.PopParamOr(params, "seed", seedFor(matchID, agentIdx))
	if err != nil {
		return nil, err
	}
	w := searchers.NewRandomWalk(seed)
	if w.ForwardBias, err = parameters.PopParamOr(params, "forward_bias", w.ForwardBias); err != nil {
		return nil, err
	}
	if w.ReversePenalty, err = parameters.PopParamOr(params, "reverse_penalty", w.ReversePenalty); err != nil {
		return nil, err
	}
	if w.Temperature, err = parameters.PopParamOr(params, "temperature", w.Temperature); err != nil {
		return nil, err
	}
	if w.Temperature <= 0 {
		return nil, errors.Errorf("temperature must be > 0, got %g", w.Temperature)
	}
	return w, nil
}
