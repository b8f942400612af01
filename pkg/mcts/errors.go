package mcts

import "github.com/pkg/errors"

// ViolationError marks a broken internal contract (a node invariant, an
// illegal call sequence) rather than an ordinary recoverable failure. The
// reference implementation's "attest" macro aborts the process on these;
// Go's equivalent is a panic carrying a stack trace, which callers are
// never expected to recover from in normal operation.
type ViolationError struct {
	cause error
}

func (v *ViolationError) Error() string { return v.cause.Error() }
func (v *ViolationError) Unwrap() error { return v.cause }

// attest panics with a ViolationError if cond is false. Used for invariants
// that indicate a bug in the search, not a caller mistake.
func attest(cond bool, msg string) {
	if !cond {
		panic(&ViolationError{cause: errors.New(msg)})
	}
}

// Attest is attest, exported for packages outside pkg/mcts (pkg/engine) that
// need the same fatal contract-violation behavior the reference
// implementation's attest macro provides at its own call sites (an empty
// legal-move set at the root, an invalid player_to_move).
func Attest(cond bool, msg string) {
	attest(cond, msg)
}
