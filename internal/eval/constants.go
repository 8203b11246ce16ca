// Package eval implements the tapered static evaluator: material and
// piece-square tables combined with positional terms (mobility, king
// safety, pawn structure, threats, outposts, and piece coordination),
// each scored as a middlegame/endgame pair and blended by game phase.
package eval

import "github.com/cetincan0/gochess/internal/board"

// Passed-pawn bonuses by rank, from the pawn's own perspective (index 0 is
// the pawn's own back rank, so a pawn on its starting rank reads index 1).
var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

const (
	passedPawnConnectedBonus   = 20
	passedPawnProtectedBonus   = 15
	passedPawnFreePathBonus    = 30
	passedPawnUnstoppableBonus = 200
)

// kingDistanceBonus rewards a friendly king close to a passed pawn and
// penalizes (via the complementary index) an enemy king close to its
// promotion square — both indexed by a clamped Chebyshev distance.
var kingDistanceBonus = [8]int{0, 0, 10, 20, 30, 40, 50, 60}

var mobilityMgWeight = [6]int{0, 4, 5, 2, 1, 0}
var mobilityEgWeight = [6]int{0, 3, 4, 4, 2, 0}

var attackerWeight = [6]int{0, 20, 20, 40, 80, 0}

// safeCheckWeight is the king-danger contribution of a potential safe check
// by each enemy piece type.
var safeCheckWeight = [6]int{0, 30, 25, 45, 60, 0}

// King-danger accumulator weights; the final deduction is quadratic in the
// accumulated danger, divided by kingDangerQuadDiv.
const (
	kingDangerZoneAttack = 4
	kingDangerPinned     = 12
	kingDangerWeakSquare = 16
	kingDangerWeakZone   = 8
	kingDangerQuadDiv    = 1024
)

const (
	pawnShieldBonus      = 10
	pawnShieldMissing    = -15
	openFileNearKing     = -20
	semiOpenFileNearKing = -10
)

const (
	bishopPairMgBonus = 25
	bishopPairEgBonus = 50
)

const (
	rookOpenFileMg     = 20
	rookOpenFileEg     = 25
	rookSemiOpenFileMg = 10
	rookSemiOpenFileEg = 15
)

const (
	doubledPawnMgPenalty  = -15
	doubledPawnEgPenalty  = -20
	isolatedPawnMgPenalty = -20
	isolatedPawnEgPenalty = -25
	backwardPawnMgPenalty = -15
	backwardPawnEgPenalty = -10
)

const (
	knightOutpostMg          = 25
	knightOutpostEg          = 15
	knightOutpostProtectedMg = 15
	knightOutpostProtectedEg = 10
	bishopOutpostMg          = 15
	bishopOutpostEg          = 10
)

// TempoBonus is the flat score for having the move; search also uses it to
// guess a static eval for null-move children without a full evaluation.
const TempoBonus = 10

const (
	hangingPiecePenalty = -40
	threatByPawnBonus   = 25
	threatByMinorBonus  = 20
	loosePiecePenalty   = -10
)

var tropismWeight = [6]int{0, 3, 2, 2, 5, 0}

const (
	rookOn7thMg          = 30
	rookOn7thEg          = 40
	rookOn7thWithPawnsMg = 15
	rookOn7thWithPawnsEg = 20
	doubleRooksOn7thMg   = 50
	doubleRooksOn7thEg   = 60
	connectedRooksMg     = 10
	connectedRooksEg     = 15
	doubledRooksOnFileMg = 20
	doubledRooksOnFileEg = 25
)

const (
	spaceSquareBonus     = 2
	spaceBehindPawnBonus = 3
	spaceMinPieces       = 3
)

var whiteSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
	(board.Rank2 | board.Rank3 | board.Rank4)
var blackSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
	(board.Rank7 | board.Rank6 | board.Rank5)

const (
	badBishopPenaltyMg = -5
	badBishopPenaltyEg = -10

	trappedBishopPenaltyMg = -80
	trappedBishopPenaltyEg = -50

	trappedRookPenaltyMg = -50
	trappedRookPenaltyEg = -25
)

var lightSquares, darkSquares board.Bitboard

func init() {
	for sq := board.A1; sq <= board.H8; sq++ {
		if (int(sq.File())+int(sq.Rank()))%2 == 1 {
			lightSquares |= board.SquareBB(sq)
		} else {
			darkSquares |= board.SquareBB(sq)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
