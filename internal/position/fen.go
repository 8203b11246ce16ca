package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cetincan0/gochess/internal/board"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN (or Shredder-FEN / X-FEN for Chess960) string into a
// fresh Position. Castling rights given as file letters (e.g. "HAha") are
// read as the Chess960 rook-file convention; KQkq is read as standard chess,
// which always anchors rooks to the a- and h-files.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("position: invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	p := &Position{FullMoveNumber: 1}
	for sq := range p.mailbox {
		p.mailbox[sq] = board.NoPiece
	}
	p.KingSquare[board.White] = board.NoSquare
	p.KingSquare[board.Black] = board.NoSquare
	p.stack[0].EnPassant = board.NoSquare

	if err := parsePiecePlacement(p, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		p.SideToMove = board.White
	case "b":
		p.SideToMove = board.Black
	default:
		return nil, fmt.Errorf("position: invalid side to move: %s", parts[1])
	}

	if err := parseCastling(p, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("position: invalid en passant square: %s", parts[3])
		}
		p.stack[0].EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("position: invalid half-move clock: %s", parts[4])
		}
		p.stack[0].HalfMoveClock = hmc
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err == nil {
			p.FullMoveNumber = fmn
		}
	}

	p.CastleMask = buildCastleMask(p.KingSquare, p.InitialRookSquare)
	p.stack[0].Hash = p.computeHash()
	p.stack[0].PawnHash = p.computePawnHash()
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Knight; pt <= board.Queen; pt++ {
			p.stack[0].NonPawnMaterial[c] += p.Pieces[c][pt].PopCount() * board.Value[pt]
		}
	}
	p.UpdateCheckers()
	p.refreshPinned()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parsePiecePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: invalid piece placement: need 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("position: too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := board.PieceFromChar(byte(c))
			if piece == board.NoPiece {
				return fmt.Errorf("position: invalid piece character: %c", c)
			}
			p.setPiece(piece, board.NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("position: invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}
	return nil
}

func parseCastling(p *Position, field string) error {
	if field == "-" {
		return nil
	}

	shredder := strings.ContainsAny(field, "ABCDEFGHabcdefgh") &&
		!strings.ContainsAny(field, "KQkq")

	var rights CastlingRights
	for _, c := range field {
		switch {
		case !shredder && c == 'K':
			rights |= WhiteKingSide
			p.InitialRookSquare[board.White][kingSide] = board.H1
		case !shredder && c == 'Q':
			rights |= WhiteQueenSide
			p.InitialRookSquare[board.White][queenSide] = board.A1
		case !shredder && c == 'k':
			rights |= BlackKingSide
			p.InitialRookSquare[board.Black][kingSide] = board.H8
		case !shredder && c == 'q':
			rights |= BlackQueenSide
			p.InitialRookSquare[board.Black][queenSide] = board.A8
		case shredder:
			rank, color := 0, board.White
			file := int(c - 'A')
			if c >= 'a' {
				file = int(c - 'a')
				rank, color = 7, board.Black
			}
			sq := board.NewSquare(file, rank)
			king, queenside := rightsForColor(color)
			if file < p.KingSquare[color].File() {
				rights |= queenside
				p.InitialRookSquare[color][queenSide] = sq
			} else {
				rights |= king
				p.InitialRookSquare[color][kingSide] = sq
			}
		default:
			return fmt.Errorf("position: invalid castling character: %c", c)
		}
	}
	p.stack[0].CastlingRights = rights
	return nil
}

// ToFEN returns the FEN representation of the current position.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.mailbox[board.NewSquare(file, rank)]
			if piece == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights().String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant().String())

	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock(), p.FullMoveNumber)
	return sb.String()
}

// computeHash recomputes the full Zobrist hash of the current position from
// scratch. ParseFEN uses it to seed the hash; MakeMove/UnmakeMove maintain it
// incrementally afterwards.
func (p *Position) computeHash() uint64 {
	var h uint64
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= board.ZobristPieceKey[c][pt][sq]
			}
		}
	}
	if p.SideToMove == board.Black {
		h ^= board.ZobristSTM
	}
	h ^= board.ZobristCastleKey[p.stack[p.top].CastlingRights]
	if ep := p.stack[p.top].EnPassant; ep != board.NoSquare {
		h ^= board.ZobristEPKey[ep.File()]
	}
	return h
}

func (p *Position) computePawnHash() uint64 {
	var h uint64
	for c := board.White; c <= board.Black; c++ {
		bb := p.Pieces[c][board.Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			h ^= board.ZobristPieceKey[c][board.Pawn][sq]
		}
	}
	return h
}
