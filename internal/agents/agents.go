// Package agents implements the searching agents of a match, and a factory to create them from
// configuration strings. Agent implementations register themselves as modules.
package agents

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/chaseGo/internal/generics"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/parameters"
	"github.com/pkg/errors"
)

// Regime of knowledge of an agent about its target.
type Regime uint8

const (
	// Unaware agents haven't perceived their target: they walk around at random.
	Unaware Regime = iota

	// Pursuing agents have perceived their target, and they follow a path to where it was last seen.
	Pursuing
)

var regimeNames = [...]string{"Unaware", "Pursuing"}

// String implements fmt.Stringer.
func (r Regime) String() string {
	if int(r) < len(regimeNames) {
		return regimeNames[r]
	}
	return fmt.Sprintf("Regime(%d)", r)
}

// Observation is what an agent is given each turn by the simulation.
type Observation struct {
	// Truth is the true grid. Agents only read the cells they can perceive.
	Truth grid.Reader

	// Self is the true position of the agent, and Facing the direction of its last move.
	Self   grid.Pos
	Facing grid.Move

	// Target is the true position of the target. Agents only use it if they can perceive it.
	Target grid.Pos
}

// Agent is anything that can decide a move each turn.
type Agent interface {
	// DecideMove returns the next move of the agent: one of grid.Moves, or grid.Stay.
	DecideMove(obs Observation) grid.Move

	// Regime returns the current knowledge regime of the agent.
	Regime() Regime

	String() string
}

// Module creates agents. It must implement NewAgent called at the start of a match for each agent.
//
// matchID and agentIdx are used to derive the default random seed, so matches are reproducible.
type Module interface {
	NewAgent(matchID uint64, agentIdx int, params parameters.Params) (Agent, error)
}

var (
	// Registered modules.
	keywordToModules = make(map[string]Module)

	// DefaultConfig is used if no configuration was given.
	DefaultConfig = "astar"
)

// RegisterModule so it can be used by New.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = module
}

// New creates an agent given the configuration string.
//
// Args:
//
//	config: the module name, optionally followed by a colon (":") and a comma-separated list of
//		parameters with optional values, e.g. "astar:sight=6,chase_radius=4". If empty,
//		DefaultConfig is used.
//
// Parameters not used by the module are reported as errors.
func New(matchID uint64, agentIdx int, config string) (Agent, error) {
	if config == "" {
		config = DefaultConfig
	}
	moduleName, config, _ := strings.Cut(config, ":")
	module, ok := keywordToModules[moduleName]
	if !ok {
		var known []string
		for name := range generics.SortedKeys(keywordToModules) {
			known = append(known, name)
		}
		return nil, errors.Errorf("unknown agent module %q, registered modules are %q", moduleName, known)
	}
	params := parameters.NewFromConfigString(config)
	agent, err := module.NewAgent(matchID, agentIdx, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q", moduleName)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q", moduleName)
	}
	return agent, nil
}

// seedFor returns the default random seed for an agent.
func seedFor(matchID uint64, agentIdx int) uint64 {
	return matchID*0x9E3779B97F4A7C15 + uint64(agentIdx) + 1
}
