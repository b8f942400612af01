package mcts

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// BuildFn is any of BuildTree, BuildTreeCapped, BuildTreeUniform, or a
// closure over BuildTreeAdaptive (which needs extra sight-level
// parameters), used by BuildForest to fan a tree-policy out across workers.
type BuildFn[M Move] func(state State[M], opts *ComputeOptions, rng *rand.Rand) *Node[M]

// BuildForest runs opts.NumberOfThreads independent calls to build, each
// against its own clone of state and its own seeded RNG, and returns every
// resulting root. This is root parallelization: independent trees merged
// after the fact (see Vote), never a single tree mutated by multiple
// goroutines.
func BuildForest[M Move](state State[M], opts *ComputeOptions, build BuildFn[M]) ([]*Node[M], error) {
	roots := make([]*Node[M], opts.NumberOfThreads)

	var wg errgroup.Group
	wg.SetLimit(opts.NumberOfThreads)
	for t := 0; t < opts.NumberOfThreads; t++ {
		t := t
		wg.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed(t)))
			roots[t] = build(state.Clone(), opts, rng)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}

// workerSeed reproduces the reference per-worker seed formula
// (1012411*t + 12515), mixed with a true-random draw so repeated runs of
// the engine don't replay identical games.
func workerSeed(t int) int64 {
	base := int64(1012411*t + 12515)
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to the deterministic component rather than
		// propagating an error through every BuildForest caller.
		return base
	}
	return base ^ int64(binary.LittleEndian.Uint64(buf[:]))
}

// VoteResult is one candidate root move's merged statistics after Vote.
type VoteResult[M Move] struct {
	Move        M
	Wins        float64
	Visits      int
	LaplaceRate float64
}

// Vote merges independent root-parallel trees into a single move decision:
// for each distinct move played at any root, it sums (wins, visits) across
// workers and scores each with the Laplace-smoothed estimator
// (wins+1)/(visits+2), picking the highest score and breaking ties in favor
// of whichever move was scanned first (matching the reference
// implementation's std::map iteration order tie-break).
func Vote[M Move](roots []*Node[M], verbose bool) (M, bool) {
	order := make([]M, 0)
	wins := make(map[M]float64)
	visits := make(map[M]int)

	for _, root := range roots {
		for i := range root.Children {
			c := &root.Children[i]
			if _, seen := visits[c.Move]; !seen {
				order = append(order, c.Move)
			}
			wins[c.Move] += c.Wins
			visits[c.Move] += c.Visits
		}
	}

	var best M
	found := false
	bestScore := -1.0
	for _, m := range order {
		rate := (wins[m] + 1) / (float64(visits[m]) + 2)
		if verbose {
			klog.V(1).Infof("mcts: vote move=%v visits=%d wins=%.1f rate=%.4f", m, visits[m], wins[m], rate)
		}
		if rate > bestScore {
			bestScore = rate
			best = m
			found = true
		}
	}
	return best, found
}
