package mcts

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// TreePolicy selects which of the four tree-construction procedures a build
// call uses (C3).
type TreePolicy int

const (
	// UCT is the standard upper-confidence-bound tree policy.
	UCT TreePolicy = iota
	// CappedUCT behaves like UCT but refuses to expand past MaxLevel plies
	// from the root.
	CappedUCT
	// Uniform selects children uniformly at random instead of by UCB,
	// producing the unbiased statistics backward induction needs.
	Uniform
	// Adaptive behaves like UCT, but after the first ply prunes every
	// child inconsistent with the opponent's inferred sight-level move and
	// restarts the iteration from the (pruned) root.
	Adaptive
)

func (p TreePolicy) String() string {
	switch p {
	case UCT:
		return "UCT"
	case CappedUCT:
		return "CappedUCT"
	case Uniform:
		return "Uniform"
	case Adaptive:
		return "Adaptive"
	default:
		return "Unknown"
	}
}

// ComputeOptions configures a tree build (C3/C6 §6).
type ComputeOptions struct {
	// MaxIterations is the number of MCTS iterations (simulate+backprop
	// cycles) to run per worker tree. Negative disables the iteration
	// budget entirely (the build runs until MaxTime elapses instead).
	MaxIterations int
	// MaxTime is the wall-clock budget in seconds, checked at each
	// iteration boundary. Negative (the default) disables the time budget
	// entirely (the build runs until MaxIterations is exhausted instead).
	// At least one of MaxIterations, MaxTime must be non-negative.
	MaxTime float64
	// MaxLevel caps search depth from the root; only consulted by
	// CappedUCT. Zero means unlimited.
	MaxLevel int
	// NumberOfThreads is the number of independent root-parallel workers.
	NumberOfThreads int
	// ExplorationParam is the UCT constant C.
	ExplorationParam float64
	// Verbose enables per-iteration/per-vote diagnostic logging.
	Verbose bool
}

// DefaultComputeOptions mirrors the reference configuration: 100000
// iterations, no time budget, a single worker, UCT's canonical exploration
// constant sqrt(2).
func DefaultComputeOptions() *ComputeOptions {
	return &ComputeOptions{
		MaxIterations:    100000,
		MaxTime:          -1,
		MaxLevel:         0,
		NumberOfThreads:  1,
		ExplorationParam: math.Sqrt2,
		Verbose:          false,
	}
}

func (o *ComputeOptions) WithIterations(n int) *ComputeOptions {
	o.MaxIterations = n
	return o
}

func (o *ComputeOptions) WithMaxTime(seconds float64) *ComputeOptions {
	o.MaxTime = seconds
	return o
}

func (o *ComputeOptions) WithMaxLevel(level int) *ComputeOptions {
	o.MaxLevel = level
	return o
}

func (o *ComputeOptions) WithThreads(n int) *ComputeOptions {
	o.NumberOfThreads = max(1, n)
	return o
}

func (o *ComputeOptions) WithExplorationParam(c float64) *ComputeOptions {
	o.ExplorationParam = max(0, c)
	return o
}

func (o *ComputeOptions) WithVerbose(v bool) *ComputeOptions {
	o.Verbose = v
	return o
}

// Validate reports every malformed field at once, rather than stopping at
// the first one, so a caller building options programmatically sees the
// whole picture in a single error.
func (o *ComputeOptions) Validate() error {
	var errs *multierror.Error
	if o.MaxIterations < 0 && o.MaxTime < 0 {
		errs = multierror.Append(errs, errors.New("at least one of MaxIterations or MaxTime must be non-negative"))
	}
	if o.NumberOfThreads <= 0 {
		errs = multierror.Append(errs, errors.New("NumberOfThreads must be positive"))
	}
	if o.ExplorationParam < 0 {
		errs = multierror.Append(errs, errors.New("ExplorationParam must be non-negative"))
	}
	if o.MaxLevel < 0 {
		errs = multierror.Append(errs, errors.New("MaxLevel must be non-negative"))
	}
	return errs.ErrorOrNil()
}
