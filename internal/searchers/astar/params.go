package astar

import (
	"github.com/janpfeifer/chaseGo/internal/parameters"
)

// NewFromParams creates a Searcher configured by params, popping the keys it uses:
//
//   - max_expansions: see Searcher.WithMaxExpansions.
//   - check_heap: see Searcher.WithCheckHeap.
func NewFromParams(params parameters.Params) (*Searcher, error) {
	s := New()
	maxExpansions, err := parameters.PopParamOr(params, "max_expansions", 0)
	if err != nil {
		return nil, err
	}
	checkHeap, err := parameters.PopParamOr(params, "check_heap", false)
	if err != nil {
		return nil, err
	}
	return s.WithMaxExpansions(maxExpansions).WithCheckHeap(checkHeap), nil
}
