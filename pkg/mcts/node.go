package mcts

import (
	"fmt"
	"io"
	"strings"
)

// Node is a search-tree node. Children are stored by value (an arena of
// sibling nodes) rather than as a slice of pointers: destroying a node's
// Children slice is enough to let the whole subtree be reclaimed by the
// garbage collector, and a single contiguous allocation per sibling group
// keeps cache behaviour reasonable for the selection hot loop.
//
// A Node is built and read by exactly one goroutine: root-parallel workers
// each own an independent tree (see parallel.go), so none of these fields
// need atomic access, unlike a tree-parallel design sharing one tree across
// threads.
type Node[M Move] struct {
	Move         M
	Parent       *Node[M]
	Children     []Node[M]
	Untried      []M
	PlayerToMove int
	terminal     bool

	Wins   float64
	Visits int

	// ScoreFromBelow and BIDepth are the backward-induction evaluator's
	// memoized minimax value and forced-line depth for this node (C4).
	// Valid only after ScoreValid is set.
	ScoreFromBelow float64
	BIDepth        int
	ScoreValid     bool

	// SightCache holds this node's lazily computed sight array (a []M built
	// by computeSightArray), cached the first time an adaptive build prunes
	// at this node so repeated passes over the same node within one
	// BuildTreeAdaptive call don't recompute it. Nil until then.
	SightCache any
}

func newNode[M Move](parent *Node[M], move M, playerToMove int, untried []M, terminal bool) Node[M] {
	return Node[M]{
		Move:         move,
		Parent:       parent,
		Untried:      untried,
		PlayerToMove: playerToMove,
		terminal:     terminal,
	}
}

// Terminal reports whether this node has no legal moves (game over).
func (n *Node[M]) Terminal() bool {
	return n.terminal
}

// FullyExpanded reports whether every legal move from this node already has
// a child.
func (n *Node[M]) FullyExpanded() bool {
	return len(n.Untried) == 0
}

// WinRate is the raw (unsmoothed) empirical win rate wins/visits.
func (n *Node[M]) WinRate() float64 {
	if n.Visits == 0 {
		return 0
	}
	return n.Wins / float64(n.Visits)
}

// Depth returns the distance of this node from the root.
func (n *Node[M]) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

func (n *Node[M]) String() string {
	return fmt.Sprintf("Node{move=%v, visits=%d, wins=%.2f, children=%d}", n.Move, n.Visits, n.Wins, len(n.Children))
}

// DumpTree writes an indented, human-readable dump of the subtree rooted at
// n to w, one line per node, down to maxDepth plies. Diagnostic only, not
// part of the search itself.
func (n *Node[M]) DumpTree(w io.Writer, maxDepth int) {
	n.dumpTree(w, maxDepth, 0)
}

func (n *Node[M]) dumpTree(w io.Writer, maxDepth, indent int) {
	if indent > maxDepth {
		return
	}
	fmt.Fprintf(w, "%sM:%v W/V:%.1f/%d %%win:%.2f SFB:%.2f U:%d\n",
		strings.Repeat("  ", indent), n.Move, n.Wins, n.Visits, n.WinRate(), n.ScoreFromBelow, len(n.Untried))
	for i := range n.Children {
		n.Children[i].dumpTree(w, maxDepth, indent+1)
	}
}

// countNodes returns the number of nodes in the subtree rooted at n.
func countNodes[M Move](n *Node[M]) int {
	total := 1
	for i := range n.Children {
		total += countNodes(&n.Children[i])
	}
	return total
}
