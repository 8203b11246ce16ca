package position

import (
	"fmt"
	"strings"

	"github.com/cetincan0/gochess/internal/board"
)

// maxPly bounds the Info stack: one entry per ply of search plus the game
// history leading into it. A fixed array keeps make/undo alloc-free.
const maxPly = 1024

const (
	kingSide  = 0
	queenSide = 1
)

// Info is one frame of irreversible state, pushed by MakeMove and popped by
// UnmakeMove. It is stored in Position.stack as a flat array indexed by
// Position.top rather than as a linked list, so undo never touches the
// allocator and a Position can be copied or reset without walking pointers.
type Info struct {
	CastlingRights  CastlingRights
	EnPassant       board.Square
	HalfMoveClock   int
	CapturedPiece   board.Piece
	Hash            uint64
	PawnHash        uint64
	NonPawnMaterial [2]int
	Checkers        board.Bitboard
	Pinned          [2]board.Bitboard
}

// Position is a complete, mutable chess position plus enough history to
// undo moves and detect repetition/50-move draws.
type Position struct {
	Pieces      [2][6]board.Bitboard
	Occupied    [2]board.Bitboard
	AllOccupied board.Bitboard

	// mailbox gives O(1) PieceAt instead of scanning 6 bitboards per query.
	mailbox [64]board.Piece

	SideToMove     board.Color
	KingSquare     [2]board.Square
	FullMoveNumber int

	// InitialRookSquare[c][kingSide|queenSide] records each rook's home
	// square. Standard games set these to A/H-file rooks; Chess960 (and
	// Shredder-FEN) positions set them to whatever file the setup used,
	// which is what lets castling and CastleMask stay correct either way.
	InitialRookSquare [2][2]board.Square
	CastleMask        [64]CastlingRights

	stack [maxPly]Info
	top   int
}

// Current returns the Info frame describing the position as it stands now.
func (p *Position) Current() *Info { return &p.stack[p.top] }

func (p *Position) Hash() uint64            { return p.stack[p.top].Hash }
func (p *Position) PawnHash() uint64        { return p.stack[p.top].PawnHash }
func (p *Position) EnPassant() board.Square { return p.stack[p.top].EnPassant }
func (p *Position) CastlingRights() CastlingRights {
	return p.stack[p.top].CastlingRights
}
func (p *Position) HalfMoveClock() int       { return p.stack[p.top].HalfMoveClock }
func (p *Position) Checkers() board.Bitboard { return p.stack[p.top].Checkers }
func (p *Position) Ply() int                 { return p.top }
func (p *Position) InCheck() bool            { return p.stack[p.top].Checkers != 0 }

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("position: start FEN must parse: " + err.Error())
	}
	return pos
}

// Copy returns a deep, independent copy of the position (the stack array is
// value-copied along with everything else).
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// PieceAt returns the piece on sq, or board.NoPiece if empty.
func (p *Position) PieceAt(sq board.Square) board.Piece { return p.mailbox[sq] }

func (p *Position) IsEmpty(sq board.Square) bool {
	return p.AllOccupied&board.SquareBB(sq) == 0
}

func (p *Position) setPiece(piece board.Piece, sq board.Square) {
	c, pt := piece.Color(), piece.Type()
	bb := board.SquareBB(sq)

	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.mailbox[sq] = piece

	if pt == board.King {
		p.KingSquare[c] = sq
	}
}

func (p *Position) removePiece(sq board.Square) board.Piece {
	piece := p.mailbox[sq]
	if piece == board.NoPiece {
		return board.NoPiece
	}
	c, pt := piece.Color(), piece.Type()
	bb := board.SquareBB(sq)

	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.mailbox[sq] = board.NoPiece

	return piece
}

func (p *Position) movePieceSquares(from, to board.Square) {
	piece := p.mailbox[from]
	c, pt := piece.Color(), piece.Type()
	moveBB := board.SquareBB(from) | board.SquareBB(to)

	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB
	p.mailbox[from] = board.NoPiece
	p.mailbox[to] = piece

	if pt == board.King {
		p.KingSquare[c] = to
	}
}

func (p *Position) pieces() *[2][6]board.Bitboard { return &p.Pieces }

// AttackersTo returns every piece of either color attacking sq.
func (p *Position) AttackersTo(sq board.Square) board.Bitboard {
	return board.AttackersTo(p.pieces(), sq, p.AllOccupied)
}

// IsSquareAttacked reports whether byColor attacks sq in the current position.
func (p *Position) IsSquareAttacked(sq board.Square, byColor board.Color) bool {
	return board.AttackersByColor(p.pieces(), sq, byColor, p.AllOccupied) != 0
}

// UpdateCheckers recomputes the Checkers bitboard for the side to move.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	them := us.Other()
	p.stack[p.top].Checkers = board.AttackersByColor(p.pieces(), p.KingSquare[us], them, p.AllOccupied)
}

// ComputePinned returns pieces of color us that are pinned to its king,
// found via Stockfish-style x-ray sniping through the single blocker.
func (p *Position) ComputePinned(us board.Color) board.Bitboard {
	them := us.Other()
	ksq := p.KingSquare[us]
	var pinned board.Bitboard

	snipers := board.RookAttacks(ksq, 0) & (p.Pieces[them][board.Rook] | p.Pieces[them][board.Queen])
	snipers |= board.BishopAttacks(ksq, 0) & (p.Pieces[them][board.Bishop] | p.Pieces[them][board.Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := board.Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

// refreshPinned recomputes and caches both sides' pinned pieces into the
// current Info frame. ParseFEN and MakeMove call it after every position
// change; MakeNullMove copies the previous frame's pins instead.
func (p *Position) refreshPinned() {
	p.stack[p.top].Pinned[board.White] = p.ComputePinned(board.White)
	p.stack[p.top].Pinned[board.Black] = p.ComputePinned(board.Black)
}

func (p *Position) Pinned(c board.Color) board.Bitboard { return p.stack[p.top].Pinned[c] }

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.mailbox[board.NewSquare(file, rank)]
			sb.WriteString(piece.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights())
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant())
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock())
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}

// Validate runs the cheap sanity checks worth paying for on every FEN load:
// exactly one king per side, and no pawns on the back ranks.
func (p *Position) Validate() error {
	if p.Pieces[board.White][board.King].PopCount() != 1 {
		return fmt.Errorf("position: white must have exactly one king")
	}
	if p.Pieces[board.Black][board.King].PopCount() != 1 {
		return fmt.Errorf("position: black must have exactly one king")
	}
	if (p.Pieces[board.White][board.Pawn]|p.Pieces[board.Black][board.Pawn])&(board.Rank1|board.Rank8) != 0 {
		return fmt.Errorf("position: pawns cannot be on rank 1 or 8")
	}
	return nil
}

func (p *Position) HasLegalMoves(genLegal func(*Position) *board.MoveList) bool {
	return genLegal(p).Len() > 0
}

// HasNonPawnMaterial reports whether color c has any piece other
// than pawns, used to skip null-move pruning in zugzwang-prone endgames.
func (p *Position) HasNonPawnMaterial(c board.Color) bool {
	return p.Pieces[c][board.Knight]|p.Pieces[c][board.Bishop]|
		p.Pieces[c][board.Rook]|p.Pieces[c][board.Queen] != 0
}

// IsInsufficientMaterial reports a theoretically drawn material balance.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[board.White][board.Pawn]|p.Pieces[board.Black][board.Pawn] != 0 ||
		p.Pieces[board.White][board.Rook]|p.Pieces[board.Black][board.Rook] != 0 ||
		p.Pieces[board.White][board.Queen]|p.Pieces[board.Black][board.Queen] != 0 {
		return false
	}
	wMinor := p.Pieces[board.White][board.Knight].PopCount() + p.Pieces[board.White][board.Bishop].PopCount()
	bMinor := p.Pieces[board.Black][board.Knight].PopCount() + p.Pieces[board.Black][board.Bishop].PopCount()
	if wMinor+bMinor == 0 {
		return true
	}
	if wMinor <= 1 && bMinor == 0 {
		return true
	}
	if bMinor <= 1 && wMinor == 0 {
		return true
	}
	return false
}

// IsRepetition reports whether the current hash has occurred before within
// the irreversible window (since the last pawn move or capture),
// walking the Info stack rather than keeping a separate history map.
func (p *Position) IsRepetition(twofold bool) bool {
	h := p.Hash()
	clock := p.HalfMoveClock()
	count := 0
	limit := p.top - clock
	if limit < 0 {
		limit = 0
	}
	for i := p.top - 2; i >= limit; i -= 2 {
		if p.stack[i].Hash == h {
			count++
			if twofold || count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsDraw reports the fast, non-mate-dependent draw conditions: 50-move rule,
// repetition, and insufficient material. Stalemate is checked by the caller
// (it needs legal move generation, which would make this package depend on
// movepick).
func (p *Position) IsDraw() bool {
	if p.HalfMoveClock() >= 100 {
		return true
	}
	if p.IsRepetition(false) {
		return true
	}
	return p.IsInsufficientMaterial()
}
