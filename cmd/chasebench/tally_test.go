package main

import (
	"testing"

	"github.com/janpfeifer/chaseGo/internal/match"
	"github.com/stretchr/testify/assert"
)

func TestTally(t *testing.T) {
	tally := newTally([2]string{"astar", "wanderer"}, []*match.Level{{}, {}}, 3)
	assert.Equal(t, 12, tally.total)
	tally.Record(0, match.Result{Turns: 10, Captured: true, Replans: []int{4}, Failures: []int{1}})
	tally.Record(0, match.Result{Turns: 30, Captured: true, Replans: []int{2}, Failures: []int{0}})
	tally.Record(1, match.Result{Turns: 100, Replans: []int{0}, Failures: []int{0}})
	assert.Contains(t, tally.Progress(), "Played 3 of 12 matches, captures 2 vs 0")
	summary := tally.String()
	assert.Contains(t, summary, `Config #1 "astar": captured 2 of 2 (100.0%), mean turns to capture 20.0, replans 6 (1 failed)`)
	assert.Contains(t, summary, `Config #2 "wanderer": captured 0 of 1 (0.0%)`)
}
