package search

import (
	"sort"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
)

// buildRootMoves enumerates every legal move once per search call; the
// iterative-deepening loop re-searches this same slice at increasing
// depths rather than regenerating it, and reorders it by score after each
// completed iteration so the best move from the previous depth is tried
// first at the next.
func buildRootMoves(pos *position.Position) []RootMove {
	moves := movepick.GenerateLegal(pos)
	out := make([]RootMove, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		out[i] = RootMove{Move: moves.Get(i), Score: -Infinity}
	}
	return out
}

func sortRootMoves(moves []RootMove) {
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].Score > moves[j].Score })
}

// searchRoot runs one depth of the root node as principal-variation search
// over t.rootMoves: the first move is always searched with a full window,
// every later move gets a zero-window probe that is only re-searched with
// the full window if it beats alpha.
func (t *thread) searchRoot(depth, alpha, beta int) (int, board.Move, bool) {
	t.pvLen[0] = 0
	bestScore := -Infinity
	bestMove := board.NoMove

	for i := range t.rootMoves {
		if t.excludedRoot[t.rootMoves[i].Move] {
			continue
		}
		m := t.rootMoves[i].Move

		t.pos.MakeMove(m)
		t.stack[0].currentMove = m
		t.stack[0].movedPiece = t.pos.PieceAt(m.To())

		var score int
		var aborted bool
		if i == 0 {
			score, aborted = t.negamax(depth-1, 1, -beta, -alpha, true, false, board.NoMove)
			score = -score
		} else {
			score, aborted = t.negamax(depth-1, 1, -alpha-1, -alpha, false, true, board.NoMove)
			score = -score
			if !aborted && score > alpha && score < beta {
				score, aborted = t.negamax(depth-1, 1, -beta, -alpha, true, false, board.NoMove)
				score = -score
			}
		}
		t.pos.UnmakeMove(m)

		if aborted {
			return 0, board.NoMove, true
		}

		t.rootMoves[i].Score = score
		if score > alpha {
			var child []board.Move
			if n := t.pvLen[1]; n > 1 {
				child = t.pvMoves[1][1:n]
			}
			t.rootMoves[i].PV = append([]board.Move{m}, child...)
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				t.updatePV(0, m)
			}
		}
		if alpha >= beta {
			break
		}
	}

	sortRootMoves(t.rootMoves)
	return bestScore, bestMove, false
}
