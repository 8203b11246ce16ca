package search

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/eval"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
	"github.com/cetincan0/gochess/internal/tt"
)

// Pruning/reduction constants. Named after their role in the spec rather
// than tuned for playing strength — this is a faithful-shape engine, not a
// tournament-tuned one.
const (
	razorMarginPerDepth   = 180
	futilityMarginPerPly  = 80
	nullMoveBaseReduction = 3
	singularDepthMin      = 8
	singularMargin        = 2
	probCutDepthMin       = 4
	probCutMargin         = 100
	moveCountPruneDepth   = 8
	seePruneDepth         = 9
)

func pawnValue() int { return board.Value[board.Pawn] }

// augmentedHash folds an excluded move into the probe/store key for
// singular-extension verification searches, so an excluded-move search
// never collides with (or pollutes) the table entry for the same position
// searched without an exclusion.
func augmentedHash(hash uint64, excluded board.Move) uint64 {
	if excluded == board.NoMove {
		return hash
	}
	return hash ^ (uint64(excluded) << 16)
}

// moveCountPruneThreshold is the classical linear-in-depth-squared move
// count beyond which quiet moves stop being tried at all, scaled down when
// the side to move's static eval isn't improving.
func moveCountPruneThreshold(improving bool, depth int) int {
	base := 3 + depth*depth
	if !improving {
		base /= 2
	}
	return base
}

// negamax searches one subtree to depth, returning a side-to-move-relative
// score. It assumes -Mate <= alpha < beta <= Mate and depth >= 1 (depth < 1
// is delegated to quiescence). excluded is the move being withheld from
// consideration for this node's singular-extension verification search, or
// board.NoMove for an ordinary node.
func (t *thread) negamax(depth, ply int, alpha, beta int, pvNode bool, cutNode bool, excluded board.Move) (int, bool) {
	if depth < 1 {
		return t.quiescence(ply, 0, alpha, beta, t.pos.InCheck())
	}

	root := ply == 0

	if t.isMain {
		t.nodeCheckCounter++
		if t.nodeCheckCounter&1023 == 0 && t.checkTime() {
			t.shared.StopFlag.Store(true)
		}
	}
	if t.timedOut() {
		return 0, true
	}

	t.nodes++
	t.shared.Nodes.Add(1)
	t.pvLen[ply] = ply
	if ply > t.seldepth {
		t.seldepth = ply
	}

	if !root {
		if ply >= MaxPly {
			return eval.Evaluate(t.pos, t.pawns), false
		}
		if t.pos.IsDraw() || (ply > 0 && t.pos.IsRepetition(true)) {
			return 0, false
		}

		// Mate-distance pruning: no line from here can matter outside a
		// window already tighter than the fastest/slowest possible mate.
		alpha = maxI(alpha, -MateScore+ply)
		beta = minI(beta, MateScore-ply-1)
		if alpha >= beta {
			return alpha, false
		}
	}

	inCheck := t.pos.InCheck()
	t.stack[ply].inCheck = inCheck

	hash := t.pos.Hash()
	augHash := augmentedHash(hash, excluded)
	ttEntry, ttHit := t.shared.probeTT(augHash)
	var ttMove board.Move
	ttDepth := 0
	var ttScore int
	ttFlag := tt.Exact
	if ttHit {
		ttMove = ttEntry.Move
		ttDepth = ttEntry.Depth
		ttScore = tt.ScoreFromTT(ttEntry.Score, ply)
		ttFlag = ttEntry.Flag
		if !root && ttDepth >= depth {
			switch ttFlag {
			case tt.Exact:
				return ttScore, false
			case tt.Lower:
				if ttScore >= beta {
					return ttScore, false
				}
			case tt.Upper:
				if ttScore <= alpha {
					return ttScore, false
				}
			}
		}
	}

	var staticEval int
	switch {
	case inCheck:
		staticEval = -Infinity
	case ttHit:
		staticEval = ttEntry.Eval
	case t.prevMove(ply) == board.NullMove:
		// A null move leaves the board untouched, so the child's eval is the
		// parent's negated, shifted by two tempi.
		staticEval = 2*eval.TempoBonus - t.stack[ply-1].staticEval
	default:
		staticEval = eval.Evaluate(t.pos, t.pawns)
	}
	t.stack[ply].staticEval = staticEval

	improving := false
	if !inCheck {
		if ply >= 2 && !t.stack[ply-2].inCheck {
			improving = staticEval >= t.stack[ply-2].staticEval
		} else {
			improving = true
		}
	}

	us := t.pos.SideToMove
	nonPawnMaterial := position.NonPawnMaterial(t.pos, us)

	if !root && !pvNode && !inCheck && excluded == board.NoMove {
		// Razoring: hopelessly behind even after a quiescence search.
		if depth < 2 && staticEval+razorMarginPerDepth*depth <= alpha {
			score, aborted := t.quiescence(ply, 0, alpha, beta, false)
			if aborted {
				return 0, true
			}
			if score <= alpha {
				return score, false
			}
		}

		// Reverse futility pruning: the position is so good that even a
		// generous margin against a full-width search still clears beta.
		if depth < 7 && nonPawnMaterial > 0 && staticEval-futilityMarginPerPly*depth >= beta {
			return staticEval, false
		}

		// Null-move pruning: if passing still leaves us ahead, a real move
		// will too, almost always.
		if depth > 2 && staticEval >= beta && nonPawnMaterial > 0 &&
			t.prevMove(ply) != board.NullMove {
			r := nullMoveBaseReduction + depth/4
			if bonus := (staticEval - beta) / pawnValue(); bonus < 3 {
				r += bonus
			} else {
				r += 3
			}
			t.pos.MakeNullMove()
			t.stack[ply].currentMove = board.NullMove
			nmScore, aborted := t.negamax(depth-1-r, ply+1, -beta, -beta+1, false, !cutNode, board.NoMove)
			nmScore = -nmScore
			t.pos.UnmakeNullMove()
			if aborted {
				return 0, true
			}
			if nmScore >= beta {
				if nmScore >= MateScore-MaxPly {
					nmScore = beta
				}
				if depth >= 10 {
					verify, aborted := t.negamax(depth-r, ply, beta-1, beta, false, false, board.NullMove)
					if aborted {
						return 0, true
					}
					if verify >= beta {
						return nmScore, false
					}
				} else {
					return nmScore, false
				}
			}
		}

		// ProbCut: a shallow search shows some capture wins big even after
		// accounting for the bound we actually need.
		if depth > probCutDepthMin && absI(beta) < MateScore-MaxPly {
			rbeta := minI(beta+probCutMargin, Infinity-1)
			picker := movepick.NewPicker(t.pos, movepick.ModeQuiescence, ply, board.NoMove, t.continuation(ply), t.order)
			for {
				m, ok := picker.Next()
				if !ok {
					break
				}
				if movepick.SEE(t.pos, m) < rbeta-staticEval {
					continue
				}
				if !t.pos.IsLegal(m) {
					continue
				}
				t.pos.MakeMove(m)
				score, aborted := t.negamax(depth-4, ply+1, -rbeta, -rbeta+1, false, !cutNode, board.NoMove)
				score = -score
				t.pos.UnmakeMove(m)
				if aborted {
					return 0, true
				}
				if score >= rbeta {
					return score, false
				}
			}
		}
	}

	picker := movepick.NewPicker(t.pos, movepick.ModeNormal, ply, ttMove, t.continuation(ply), t.order)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := tt.Upper
	legalCount := 0
	var triedQuiets []board.Move

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if m == excluded {
			continue
		}
		if !t.pos.IsLegal(m) {
			continue
		}

		capture := movepick.IsCapture(t.pos, m)
		givesCheck := moveGivesCheck(t.pos, m)
		important := capture || m.IsPromotion() || givesCheck || m == ttMove || isAdvancedPawnPush(t.pos, m)

		if !root && !important && bestScore > -MateScore+MaxPly {
			if depth < moveCountPruneDepth && legalCount >= moveCountPruneThreshold(improving, depth) {
				continue
			}
			if depth < seePruneDepth && movepick.SEE(t.pos, m) < -10*depth*depth {
				continue
			}
			if !pvNode && movepick.SEE(t.pos, m) < -pawnValue()*depth {
				continue
			}
		}

		extension := 0
		if givesCheck && movepick.SEE(t.pos, m) >= 0 {
			extension = 1
		}
		if extension == 0 && m == ttMove && depth >= singularDepthMin && ply > 0 &&
			excluded == board.NoMove && ttHit && ttFlag == tt.Lower && ttDepth >= depth-2 {
			sBeta := ttScore - singularMargin*depth
			sDepth := (depth - 1) / 2
			score, aborted := t.negamax(sDepth, ply, sBeta-1, sBeta, false, cutNode, m)
			if aborted {
				return 0, true
			}
			if score < sBeta {
				extension = 1
			}
		}

		legalCount++
		t.pos.MakeMove(m)
		t.stack[ply].currentMove = m
		t.stack[ply].movedPiece = t.pos.PieceAt(m.To())

		var score int
		var aborted bool
		newDepth := depth - 1 + extension

		if depth >= 3 && legalCount > 1 && !capture && !m.IsPromotion() {
			r := lmrReduction(pvNode, improving, depth, legalCount, t.quietOrderingScore(m))
			if cutNode {
				r++
			}
			if m == t.order.Killer(ply, 0) || m == t.order.Killer(ply, 1) ||
				m == t.order.GetCounterMove(t.pos, t.prevMove(ply)) {
				r--
			}
			if r < 0 {
				r = 0
			}
			reducedDepth := maxI(newDepth-r, 1)
			score, aborted = t.negamax(reducedDepth, ply+1, -alpha-1, -alpha, false, true, board.NoMove)
			score = -score
			if !aborted && score > alpha && reducedDepth < newDepth {
				score, aborted = t.negamax(newDepth, ply+1, -alpha-1, -alpha, false, !cutNode, board.NoMove)
				score = -score
			}
		} else if !pvNode || legalCount > 1 {
			score, aborted = t.negamax(newDepth, ply+1, -alpha-1, -alpha, false, !cutNode, board.NoMove)
			score = -score
		}

		if !aborted && pvNode && (legalCount == 1 || score > alpha) {
			score, aborted = t.negamax(newDepth, ply+1, -beta, -alpha, true, false, board.NoMove)
			score = -score
		}

		t.pos.UnmakeMove(m)

		if aborted {
			return 0, true
		}

		if score > bestScore {
			bestScore = score
			bestMove = m

			if score > alpha {
				alpha = score
				flag = tt.Exact
				t.updatePV(ply, m)

				if score >= beta {
					if !capture && !m.IsPromotion() {
						t.order.UpdateKillers(m, ply)
						t.order.UpdateHistory(m, depth, true)
						t.order.UpdateCounterMove(t.pos, t.prevMove(ply), m)
						prevPiece, prevMove := t.prevPieceAndMove(ply)
						prevPiece2, prevMove2 := t.twoPriorPieceAndMove(ply)
						t.order.UpdateCountermoveHistory(prevMove, m, prevPiece, t.pos.PieceAt(m.From()), depth, true)
						t.order.UpdateFollowupHistory(prevMove2, m, prevPiece2, t.pos.PieceAt(m.From()), depth, true)
						for _, q := range triedQuiets {
							t.order.UpdateHistory(q, depth, false)
							t.order.UpdateCountermoveHistory(prevMove, q, prevPiece, t.pos.PieceAt(q.From()), depth, false)
							t.order.UpdateFollowupHistory(prevMove2, q, prevPiece2, t.pos.PieceAt(q.From()), depth, false)
						}
					} else {
						attacker := t.pos.PieceAt(m.From())
						victim := capturedType(t.pos, m)
						t.order.UpdateCaptureHistory(attacker, m.To(), victim, depth, true)
					}
					t.shared.TT.Store(augHash, m, tt.ScoreToTT(score, ply), staticEval, depth, tt.Lower)
					return score, false
				}
			}
		} else if capture {
			attacker := t.pos.PieceAt(m.From())
			victim := capturedType(t.pos, m)
			t.order.UpdateCaptureHistory(attacker, m.To(), victim, depth, false)
		}

		if !capture && !m.IsPromotion() {
			triedQuiets = append(triedQuiets, m)
		}
	}

	if legalCount == 0 {
		if excluded != board.NoMove {
			return alpha, false
		}
		if inCheck {
			return -MateScore + ply, false
		}
		return 0, false
	}

	t.shared.TT.Store(augHash, bestMove, tt.ScoreToTT(bestScore, ply), staticEval, depth, flag)
	return bestScore, false
}

func (t *thread) prevMove(ply int) board.Move {
	if ply == 0 {
		return board.NoMove
	}
	return t.stack[ply-1].currentMove
}

// prevPieceAndMove returns the move played into this node (at ply-1) and
// the piece that made it, used to index the countermove-history table.
func (t *thread) prevPieceAndMove(ply int) (board.Piece, board.Move) {
	if ply == 0 {
		return board.NoPiece, board.NoMove
	}
	prev := t.stack[ply-1].currentMove
	if prev == board.NoMove || prev == board.NullMove {
		return board.NoPiece, board.NoMove
	}
	return t.stack[ply-1].movedPiece, prev
}

// twoPriorPieceAndMove returns the move played into this node's grandparent
// (at ply-2) and the piece that made it, used to index the follow-up-history
// table — the side to move's own previous move, two plies back.
func (t *thread) twoPriorPieceAndMove(ply int) (board.Piece, board.Move) {
	if ply < 2 {
		return board.NoPiece, board.NoMove
	}
	prev := t.stack[ply-2].currentMove
	if prev == board.NoMove || prev == board.NullMove {
		return board.NoPiece, board.NoMove
	}
	return t.stack[ply-2].movedPiece, prev
}

// continuation builds the ordering context the move picker and
// history-update calls need: the piece/move played one and two plies ago.
func (t *thread) continuation(ply int) movepick.Continuation {
	prevPiece, prevMove := t.prevPieceAndMove(ply)
	prevPiece2, prevMove2 := t.twoPriorPieceAndMove(ply)
	return movepick.Continuation{
		PrevMove:   prevMove,
		PrevPiece:  prevPiece,
		PrevMove2:  prevMove2,
		PrevPiece2: prevPiece2,
	}
}

func (t *thread) quietOrderingScore(m board.Move) int {
	return t.order.HistoryScore(m.From(), m.To())
}

func moveGivesCheck(p *position.Position, m board.Move) bool {
	p.MakeMove(m)
	inCheck := p.InCheck()
	p.UnmakeMove(m)
	return inCheck
}

func isAdvancedPawnPush(p *position.Position, m board.Move) bool {
	piece := p.PieceAt(m.From())
	if piece.Type() != board.Pawn {
		return false
	}
	rel := m.To().RelativeRank(piece.Color())
	return rel >= 5
}

func capturedType(p *position.Position, m board.Move) board.PieceType {
	if m.IsEnPassant() {
		return board.Pawn
	}
	captured := p.PieceAt(m.To())
	if captured == board.NoPiece {
		return board.Pawn
	}
	return captured.Type()
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absI(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
