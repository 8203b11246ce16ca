// Package book implements an optional opening-book pre-search step: a
// Polyglot-format book probed before Search is invoked, plus a persistent
// result cache for the tablebase package. spec.md §1 places opening books
// as a Non-goal of the *search* component; this package is wired only into
// the UCI layer ahead of Search, per SPEC_FULL.md §4, so Search itself
// never imports it.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
)

// Entry is one Polyglot book record for a given position.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an in-memory Polyglot opening book, grounded on hailam's
// internal/book/book.go almost unchanged — loading and weighted-random
// selection are a faithful reimplementation against this engine's Move
// and Position types.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book (Probe always misses).
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// LoadPolyglot reads a Polyglot .bin book from disk.
func LoadPolyglot(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPolyglotReader(f)
}

// LoadPolyglotReader reads Polyglot entries from r: 8 bytes big-endian
// position key, 2 bytes move, 2 bytes weight, 4 bytes learn data (ignored).
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	b := New()
	var raw [16]byte

	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		if m := decodePolyglotMove(moveData); m != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
		}
	}
	return b, nil
}

// decodePolyglotMove converts Polyglot's king-captures-rook castling
// encoding into this engine's king-moves-two-squares convention.
func decodePolyglotMove(data uint16) board.Move {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	if promo > 0 {
		promoTypes := [...]board.PieceType{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		return board.NewPromotion(from, to, promoTypes[promo])
	}
	return board.NewMove(from, to)
}

// Probe returns a weighted-random book move for pos, or false if the book
// has no entries for pos.Hash(). That is this engine's own Zobrist hash,
// not the standard Polyglot key, so entries only match positions whose
// keys were written with this engine's hash.
func (b *Book) Probe(pos *position.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}
	entries, ok := b.entries[pos.Hash()]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return verifyAndConvert(pos, entries[0].Move), true
	}

	r := rand.Uint32() % total
	var cumulative uint32
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return verifyAndConvert(pos, e.Move), true
		}
	}
	return verifyAndConvert(pos, entries[0].Move), true
}

// verifyAndConvert finds the legal move matching move's from/to/promotion
// so castling/en-passant flags come from the generator, not the book file.
func verifyAndConvert(pos *position.Position, move board.Move) board.Move {
	legal := movepick.GenerateLegal(pos)
	from, to := move.From(), move.To()
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != from || lm.To() != to {
			continue
		}
		if move.IsPromotion() && lm.IsPromotion() {
			if move.Promotion() == lm.Promotion() {
				return lm
			}
		} else if !move.IsPromotion() && !lm.IsPromotion() {
			return lm
		}
	}
	return board.NoMove
}

// Size returns the number of distinct book positions loaded.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
