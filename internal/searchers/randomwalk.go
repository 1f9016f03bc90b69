package searchers

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"k8s.io/klog/v2"
)

// RandomWalk picks moves at random among the passable neighbours, biased to keep the current
// facing and to avoid turning back.
//
// Each candidate move gets a score (ForwardBias if it keeps the facing, -ReversePenalty if
// it reverses it, 0 otherwise) and it is chosen with probability softmax(score/Temperature).
type RandomWalk struct {
	ForwardBias, ReversePenalty float32

	// Temperature > 0 scales the scores: larger values make the walk closer to uniform.
	Temperature float32

	rng *rand.Rand
}

// Default values for RandomWalk.
const (
	DefaultForwardBias    = float32(1.5)
	DefaultReversePenalty = float32(2)
	DefaultTemperature    = float32(1)
)

// NewRandomWalk creates a RandomWalk with default biases, using the given seed.
func NewRandomWalk(seed uint64) *RandomWalk {
	return &RandomWalk{
		ForwardBias:    DefaultForwardBias,
		ReversePenalty: DefaultReversePenalty,
		Temperature:    DefaultTemperature,
		rng:            rand.New(rand.NewPCG(seed, seed^0x5DEECE66D)),
	}
}

// Next returns the next move from pos, given the agent is currently facing the given direction.
// Only moves to cells that g reports as not blocking are considered.
//
// It returns grid.Stay if there is no passable neighbour.
func (w *RandomWalk) Next(g grid.Reader, pos grid.Pos, facing grid.Move) grid.Move {
	if w.Temperature <= 0 {
		exceptions.Panicf("RandomWalk.Temperature must be > 0, got %g", w.Temperature)
	}
	var (
		candidates    [len(grid.Moves)]grid.Move
		scores        [len(grid.Moves)]float32
		numCandidates int
	)
	for _, m := range grid.Moves {
		to := pos.Add(m)
		if !grid.Contains(g, to) || g.At(to).Blocks() {
			continue
		}
		var score float32
		switch m {
		case facing:
			score = w.ForwardBias
		case facing.Reverse():
			score = -w.ReversePenalty
		}
		candidates[numCandidates] = m
		scores[numCandidates] = score / w.Temperature
		numCandidates++
	}
	if numCandidates == 0 {
		return grid.Stay
	}
	probabilities := softmax(scores[:numCandidates])

	chance := w.rng.Float32()
	for ii, prob := range probabilities {
		if chance < prob {
			return candidates[ii]
		}
		chance -= prob
	}
	// Rounding errors may leave a sliver of chance unassigned: take the last candidate.
	if klog.V(3).Enabled() {
		klog.Infof("RandomWalk: remaining chance=%g, probabilities=%v", chance, probabilities)
	}
	return candidates[numCandidates-1]
}

func softmax(values []float32) (probs []float32) {
	probs = make([]float32, len(values))
	var sum float32

	// Subtracting maxValue from all values keeps the probability the same, but makes for more
	// numerically stable values.
	maxValue := values[0]
	for _, value := range values[1:] {
		maxValue = max(maxValue, value)
	}
	for ii, value := range values {
		probs[ii] = math32.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
