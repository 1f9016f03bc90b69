package agents

import (
	"fmt"

	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/parameters"
	"github.com/janpfeifer/chaseGo/internal/searchers"
)

func init() {
	RegisterModule("wanderer", &wandererModule{})
}

// Wanderer is always Unaware: it random walks over the true grid regardless of the target.
// It is a baseline to compare hunters against.
type Wanderer struct {
	name   string
	walker *searchers.RandomWalk
}

// Assert Wanderer is an Agent.
var _ Agent = (*Wanderer)(nil)

// DecideMove implements Agent.
func (w *Wanderer) DecideMove(obs Observation) grid.Move {
	return w.walker.Next(obs.Truth, obs.Self, obs.Facing)
}

// Regime implements Agent.
func (w *Wanderer) Regime() Regime { return Unaware }

// String implements Agent.
func (w *Wanderer) String() string { return w.name }

type wandererModule struct{}

// NewAgent implements Module. It accepts the random walk parameters: forward_bias,
// reverse_penalty, temperature and seed.
func (m *wandererModule) NewAgent(matchID uint64, agentIdx int, params parameters.Params) (Agent, error) {
	walker, err := randomWalkFromParams(matchID, agentIdx, params)
	if err != nil {
		return nil, err
	}
	return &Wanderer{name: fmt.Sprintf("Wanderer-%d", agentIdx), walker: walker}, nil
}
