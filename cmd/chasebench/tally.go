package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/chaseGo/internal/match"
)

// Tally accumulates the results of the matches of each configuration. It is safe for concurrent use.
type Tally struct {
	mu         sync.Mutex
	start      time.Time
	configs    [2]string
	numMatches int
	total      int

	played, captured, capturedTurns [2]int
	replans, failures               [2]int
}

func newTally(configs [2]string, levelList []*match.Level, numMatches int) *Tally {
	return &Tally{
		start:      time.Now(),
		configs:    configs,
		numMatches: numMatches,
		total:      2 * numMatches * len(levelList),
	}
}

// Record the result of a match played with configuration configIdx.
func (t *Tally) Record(configIdx int, r match.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.played[configIdx]++
	if r.Captured {
		t.captured[configIdx]++
		t.capturedTurns[configIdx] += r.Turns
	}
	for ii := range r.Replans {
		t.replans[configIdx] += r.Replans[ii]
		t.failures[configIdx] += r.Failures[ii]
	}
}

// Progress returns a one-line status.
func (t *Tally) Progress() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("Played %d of %d matches, captures %d vs %d (%s)",
		t.played[0]+t.played[1], t.total, t.captured[0], t.captured[1], time.Since(t.start).Round(time.Second))
}

// String implements fmt.Stringer, with a summary of each configuration.
func (t *Tally) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sb strings.Builder
	for ii, config := range t.configs {
		_, _ = fmt.Fprintf(&sb, "Config #%d %q: ", ii+1, config)
		if t.played[ii] == 0 {
			sb.WriteString("no matches played\n")
			continue
		}
		meanTurns := 0.0
		if t.captured[ii] > 0 {
			meanTurns = float64(t.capturedTurns[ii]) / float64(t.captured[ii])
		}
		_, _ = fmt.Fprintf(&sb, "captured %d of %d (%.1f%%), mean turns to capture %.1f, replans %d (%d failed)\n",
			t.captured[ii], t.played[ii], 100*float64(t.captured[ii])/float64(t.played[ii]), meanTurns,
			t.replans[ii], t.failures[ii])
	}
	_, _ = fmt.Fprintf(&sb, "Elapsed: %s", time.Since(t.start).Round(time.Millisecond))
	return sb.String()
}
