package movepick

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// MaxPly bounds the killer table; search never recurses deeper than this.
const MaxPly = 128

// Move ordering score bands, highest first.
const (
	ttMoveScore     = 10_000_000
	goodCaptureBase = 1_000_000
	killerScore1    = 900_000
	killerScore2    = 800_000
)

// mvvLva[victim][attacker]: higher score searched first, per the classical
// Most-Valuable-Victim/Least-Valuable-Attacker heuristic.
var mvvLva = [6][6]int{
	{15, 14, 14, 13, 12, 11},
	{25, 24, 24, 23, 22, 21},
	{35, 34, 34, 33, 32, 31},
	{45, 44, 44, 43, 42, 41},
	{55, 54, 54, 53, 52, 51},
	{0, 0, 0, 0, 0, 0},
}

// Orderer holds the mutable move-ordering state shared across a search:
// killer moves, history, counter-moves, and the capture/countermove history
// tables that refine plain history with more context.
type Orderer struct {
	killers            [MaxPly][2]board.Move
	history            [64][64]int
	counterMoves       [12][64]board.Move
	captureHistory     [12][64][6]int
	countermoveHistory [12][64][12][64]int
	followupHistory    [12][64][12][64]int
}

func NewOrderer() *Orderer { return &Orderer{} }

// Clear resets killers/counters for a new search and ages (halves) the
// history tables rather than zeroing them, so ordering knowledge decays
// gradually across moves of a game instead of being thrown away.
func (o *Orderer) Clear() {
	for i := range o.killers {
		o.killers[i][0] = board.NoMove
		o.killers[i][1] = board.NoMove
	}
	for i := range o.history {
		for j := range o.history[i] {
			o.history[i][j] /= 2
		}
	}
	for i := range o.counterMoves {
		for j := range o.counterMoves[i] {
			o.counterMoves[i][j] = board.NoMove
		}
	}
	for i := range o.captureHistory {
		for j := range o.captureHistory[i] {
			for k := range o.captureHistory[i][j] {
				o.captureHistory[i][j][k] /= 2
			}
		}
	}
	for i := range o.countermoveHistory {
		for j := range o.countermoveHistory[i] {
			for k := range o.countermoveHistory[i][j] {
				for l := range o.countermoveHistory[i][j][k] {
					o.countermoveHistory[i][j][k][l] /= 2
				}
			}
		}
	}
	for i := range o.followupHistory {
		for j := range o.followupHistory[i] {
			for k := range o.followupHistory[i][j] {
				for l := range o.followupHistory[i][j][k] {
					o.followupHistory[i][j][k][l] /= 2
				}
			}
		}
	}
}

// Continuation carries the piece/move context from the previous one and two
// plies, used to index the counter-move and follow-up history tables. A
// zero-value Continuation (NoMove/NoPiece throughout) means no continuation
// context is available (root, or the preceding ply was a null move).
type Continuation struct {
	PrevMove   board.Move
	PrevPiece  board.Piece
	PrevMove2  board.Move
	PrevPiece2 board.Piece
}

// ScoreMoves assigns an ordering score to each move in moves.
func (o *Orderer) ScoreMoves(p *position.Position, moves *board.MoveList, ply int, ttMove board.Move, cont Continuation) []int {
	scores := make([]int, moves.Len())
	counterMove := o.GetCounterMove(p, cont.PrevMove)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		scores[i] = o.score(p, m, ply, ttMove)

		if m == counterMove && scores[i] < killerScore2 {
			scores[i] = killerScore2 - 10_000
		}
		if !IsCapture(p, m) && !m.IsPromotion() && m != ttMove {
			movePiece := p.PieceAt(m.From())
			scores[i] += o.GetCountermoveHistoryScore(cont.PrevMove, cont.PrevPiece, movePiece, m.To()) / 2
			scores[i] += o.GetFollowupHistoryScore(cont.PrevMove2, cont.PrevPiece2, movePiece, m.To()) / 3
		}
	}
	return scores
}

func (o *Orderer) score(p *position.Position, m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return ttMoveScore
	}

	from, to := m.From(), m.To()

	if IsCapture(p, m) {
		attackerPiece := p.PieceAt(from)
		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			captured := p.PieceAt(to)
			if captured == board.NoPiece {
				return goodCaptureBase
			}
			victim = captured.Type()
		}
		attacker := attackerPiece.Type()
		if victim >= board.King || attacker > board.King {
			return goodCaptureBase
		}

		score := goodCaptureBase + mvvLva[victim][attacker]*1000
		score += o.GetCaptureHistoryScore(attackerPiece, to, victim) / 4
		if board.Value[attacker] < board.Value[victim] {
			score += 10_000
		}
		return score
	}

	if m.IsPromotion() {
		return goodCaptureBase - 1000 + int(m.Promotion())*100
	}
	if m == o.killers[ply][0] {
		return killerScore1
	}
	if m == o.killers[ply][1] {
		return killerScore2
	}
	return o.history[from][to]
}

// PickMove selects the best-scoring move at or after index and swaps it into
// place, giving the search a lazily-sorted move stream without paying for a
// full sort when a cutoff ends the node early.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// Killer returns the first (slot 0) or second (slot 1) killer move recorded
// for ply, or board.NoMove if none has been recorded yet.
func (o *Orderer) Killer(ply, slot int) board.Move {
	if ply < 0 || ply >= MaxPly {
		return board.NoMove
	}
	return o.killers[ply][slot]
}

// HistoryScore returns the current butterfly-history score for the
// from/to pair, used by search to scale late-move reductions.
func (o *Orderer) HistoryScore(from, to board.Square) int {
	return o.history[from][to]
}

func (o *Orderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

func (o *Orderer) UpdateHistory(m board.Move, depth int, isGood bool) {
	from, to := m.From(), m.To()
	bonus := depth * depth
	if isGood {
		o.history[from][to] += bonus
		if o.history[from][to] > 400_000 {
			for i := range o.history {
				for j := range o.history[i] {
					o.history[i][j] /= 2
				}
			}
		}
	} else {
		o.history[from][to] -= bonus
		if o.history[from][to] < -400_000 {
			o.history[from][to] = -400_000
		}
	}
}

func (o *Orderer) UpdateCounterMove(p *position.Position, prevMove, counterMove board.Move) {
	if prevMove == board.NoMove {
		return
	}
	piece := p.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return
	}
	o.counterMoves[piece][prevMove.To()] = counterMove
}

func (o *Orderer) GetCounterMove(p *position.Position, prevMove board.Move) board.Move {
	if prevMove == board.NoMove {
		return board.NoMove
	}
	piece := p.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return board.NoMove
	}
	return o.counterMoves[piece][prevMove.To()]
}

func (o *Orderer) UpdateCaptureHistory(attacker board.Piece, to board.Square, victim board.PieceType, depth int, isGood bool) {
	if attacker == board.NoPiece || victim >= board.King {
		return
	}
	bonus := depth * depth
	if isGood {
		o.captureHistory[attacker][to][victim] += bonus
		if o.captureHistory[attacker][to][victim] > 400_000 {
			o.scaleCaptureHistory()
		}
	} else {
		o.captureHistory[attacker][to][victim] -= bonus
		if o.captureHistory[attacker][to][victim] < -400_000 {
			o.captureHistory[attacker][to][victim] = -400_000
		}
	}
}

func (o *Orderer) scaleCaptureHistory() {
	for i := range o.captureHistory {
		for j := range o.captureHistory[i] {
			for k := range o.captureHistory[i][j] {
				o.captureHistory[i][j][k] /= 2
			}
		}
	}
}

func (o *Orderer) GetCaptureHistoryScore(attacker board.Piece, to board.Square, victim board.PieceType) int {
	if attacker == board.NoPiece || victim >= board.King {
		return 0
	}
	return o.captureHistory[attacker][to][victim]
}

func (o *Orderer) UpdateCountermoveHistory(prevMove, m board.Move, prevPiece, movePiece board.Piece, depth int, isGood bool) {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return
	}
	bonus := depth * depth
	prevTo, moveTo := prevMove.To(), m.To()
	if isGood {
		o.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] += bonus
		if o.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] > 400_000 {
			o.scaleCountermoveHistory()
		}
	} else {
		o.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] -= bonus
		if o.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] < -400_000 {
			o.countermoveHistory[prevPiece][prevTo][movePiece][moveTo] = -400_000
		}
	}
}

func (o *Orderer) scaleCountermoveHistory() {
	for i := range o.countermoveHistory {
		for j := range o.countermoveHistory[i] {
			for k := range o.countermoveHistory[i][j] {
				for l := range o.countermoveHistory[i][j][k] {
					o.countermoveHistory[i][j][k][l] /= 2
				}
			}
		}
	}
}

func (o *Orderer) GetCountermoveHistoryScore(prevMove board.Move, prevPiece, movePiece board.Piece, moveTo board.Square) int {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return o.countermoveHistory[prevPiece][prevMove.To()][movePiece][moveTo]
}

// UpdateFollowupHistory records a bonus/malus for the move that "follows up"
// on the move played two plies earlier (indexed by that move's piece/to
// square, not the immediately preceding one) — the standard complement to
// counter-move history that rewards replies to the side-to-move's own prior
// move rather than the opponent's.
func (o *Orderer) UpdateFollowupHistory(prevMove2, m board.Move, prevPiece2, movePiece board.Piece, depth int, isGood bool) {
	if prevMove2 == board.NoMove || prevPiece2 == board.NoPiece || movePiece == board.NoPiece {
		return
	}
	bonus := depth * depth
	prevTo, moveTo := prevMove2.To(), m.To()
	if isGood {
		o.followupHistory[prevPiece2][prevTo][movePiece][moveTo] += bonus
		if o.followupHistory[prevPiece2][prevTo][movePiece][moveTo] > 400_000 {
			o.scaleFollowupHistory()
		}
	} else {
		o.followupHistory[prevPiece2][prevTo][movePiece][moveTo] -= bonus
		if o.followupHistory[prevPiece2][prevTo][movePiece][moveTo] < -400_000 {
			o.followupHistory[prevPiece2][prevTo][movePiece][moveTo] = -400_000
		}
	}
}

func (o *Orderer) scaleFollowupHistory() {
	for i := range o.followupHistory {
		for j := range o.followupHistory[i] {
			for k := range o.followupHistory[i][j] {
				for l := range o.followupHistory[i][j][k] {
					o.followupHistory[i][j][k][l] /= 2
				}
			}
		}
	}
}

func (o *Orderer) GetFollowupHistoryScore(prevMove2 board.Move, prevPiece2, movePiece board.Piece, moveTo board.Square) int {
	if prevMove2 == board.NoMove || prevPiece2 == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return o.followupHistory[prevPiece2][prevMove2.To()][movePiece][moveTo]
}
