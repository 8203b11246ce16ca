package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func TestDecodePolyglotMove(t *testing.T) {
	// e2e4: from file=4 rank=1, to file=4 rank=3
	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))
	m := decodePolyglotMove(e2e4)
	require.Equal(t, board.E2, m.From())
	require.Equal(t, board.E4, m.To())

	// d7d5: from file=3 rank=6, to file=3 rank=4
	d7d5 := uint16(3 | (4 << 3) | (3 << 6) | (6 << 9))
	m = decodePolyglotMove(d7d5)
	require.Equal(t, board.D7, m.From())
	require.Equal(t, board.D5, m.To())
}

func TestDecodePolyglotMoveCastling(t *testing.T) {
	// Polyglot encodes white kingside castling as e1h1 (king captures rook).
	e1h1 := uint16(7 | (0 << 3) | (4 << 6) | (0 << 9))
	m := decodePolyglotMove(e1h1)
	require.Equal(t, board.E1, m.From())
	require.Equal(t, board.G1, m.To())
}

func TestBookLoadAndProbe(t *testing.T) {
	pos := position.NewPosition()
	key := pos.Hash()

	e2e4Encoded := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, key))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, e2e4Encoded))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint16(100)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(0)))

	b, err := LoadPolyglotReader(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, b.Size())

	move, found := b.Probe(pos)
	require.True(t, found)
	require.Equal(t, board.E2, move.From())
	require.Equal(t, board.E4, move.To())
}

func TestBookMiss(t *testing.T) {
	b := New()
	pos := position.NewPosition()

	move, found := b.Probe(pos)
	require.False(t, found)
	require.Equal(t, board.NoMove, move)
}

func TestBookProbeNilReceiver(t *testing.T) {
	var b *Book
	move, found := b.Probe(position.NewPosition())
	require.False(t, found)
	require.Equal(t, board.NoMove, move)
	require.Equal(t, 0, b.Size())
}
