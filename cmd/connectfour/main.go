// Command connectfour plays one game of Connect Four between a capped-UCT
// "opponent" (player 1) and the opponent-modeling adaptive engine (player
// 2), printing the board after each move. It is a worked example of the
// engine package, not part of the core library.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"k8s.io/klog/v2"

	"github.com/catazza/sightmcts/games/connectfour"
	"github.com/catazza/sightmcts/pkg/belief"
	"github.com/catazza/sightmcts/pkg/engine"
	"github.com/catazza/sightmcts/pkg/mcts"
)

func main() {
	klog.InitFlags(nil)
	rows := flag.Int("rows", connectfour.DefaultRows, "board rows")
	cols := flag.Int("cols", connectfour.DefaultCols, "board cols")
	iterations := flag.Int("iterations", 20000, "MCTS iterations per worker")
	threads := flag.Int("threads", 4, "root-parallel workers")
	maxLevel := flag.Int("max-level", 3, "depth cap for player 1's capped search")
	maxSight := flag.Int("max-sight", engine.MaxSightLevels, "number of sight levels tracked by belief")
	flag.Parse()
	defer klog.Flush()

	profile := termenv.ColorProfile()
	p := termenv.String()
	x := p.Foreground(profile.Color("1")).Bold()
	o := p.Foreground(profile.Color("4")).Bold()

	board := connectfour.New(*rows, *cols)
	opts := mcts.DefaultComputeOptions().
		WithIterations(*iterations).
		WithThreads(*threads).
		WithMaxLevel(*maxLevel)

	prior := belief.NewUniformBelief(*maxSight)
	link := belief.DefaultLinkMatrix()
	rng := rand.New(rand.NewSource(1))

	fmt.Println(render(board, x, o))

	for board.HasMoves() {
		if board.PlayerToMove() == 0 {
			sight := engine.SightArray[connectfour.Move](board, *maxSight, opts, rng, connectfour.NoMove)
			move, err := engine.ComputeMoveCapped[connectfour.Move](board, opts)
			fatalIf(err)
			board.Apply(move)

			updated, err := engine.UpdatePrior(prior, sight, move, link)
			fatalIf(err)
			prior = updated
			fmt.Printf("player 1 (capped) played column %d; belief=%v\n", move, prior.Values())
		} else {
			move, err := engine.ComputeAdaptiveMove[connectfour.Move](board, *maxSight, prior, opts, connectfour.NoMove)
			fatalIf(err)
			board.Apply(move)
			fmt.Printf("player 2 (adaptive) played column %d\n", move)
		}
		fmt.Println(render(board, x, o))
	}

	switch board.Winner() {
	case connectfour.Draw:
		fmt.Println("draw")
	default:
		fmt.Printf("player %d wins\n", board.Winner()+1)
	}
}

func render(b *connectfour.Board, x, o termenv.Style) string {
	var sb strings.Builder
	for row := b.Rows() - 1; row >= 0; row-- {
		for col := 0; col < b.Cols(); col++ {
			switch {
			case b.Occupied(0, col, row):
				sb.WriteString(x.Styled("X"))
			case b.Occupied(1, col, row):
				sb.WriteString(o.Styled("O"))
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func fatalIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
