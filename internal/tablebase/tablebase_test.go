package tablebase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func TestNoopProber(t *testing.T) {
	p := NoopProber{}
	require.False(t, p.Available())
	require.Equal(t, 0, p.MaxPieces())

	pos := position.NewPosition()
	require.False(t, p.Probe(pos).Found)
	require.False(t, p.ProbeRoot(pos).Found)
}

func TestCountPieces(t *testing.T) {
	pos := position.NewPosition()
	require.Equal(t, 32, CountPieces(pos))
}

func TestToScore(t *testing.T) {
	require.Positive(t, ToScore(WDLWin, 0))
	require.Positive(t, ToScore(WDLCursedWin, 0))
	require.Zero(t, ToScore(WDLDraw, 0))
	require.Negative(t, ToScore(WDLBlessedLoss, 0))
	require.Negative(t, ToScore(WDLLoss, 0))

	// Closer mates/losses score more extreme than further ones.
	require.Greater(t, ToScore(WDLWin, 1), ToScore(WDLWin, 10))
	require.Less(t, ToScore(WDLLoss, 1), ToScore(WDLLoss, 10))
}

func TestCategoryToWDL(t *testing.T) {
	require.Equal(t, WDLWin, categoryToWDL("win"))
	require.Equal(t, WDLCursedWin, categoryToWDL("maybe-win"))
	require.Equal(t, WDLDraw, categoryToWDL("draw"))
	require.Equal(t, WDLDraw, categoryToWDL("cursed-win"))
	require.Equal(t, WDLDraw, categoryToWDL("blessed-loss"))
	require.Equal(t, WDLLoss, categoryToWDL("loss"))
	require.Equal(t, WDLDraw, categoryToWDL("unknown-category"))
}

func TestParseUCIMoveRejectsIllegal(t *testing.T) {
	pos := position.NewPosition()
	require.Equal(t, board.NoMove, parseUCIMove(pos, "e2e5"))
}

func TestParseUCIMoveAcceptsLegal(t *testing.T) {
	pos := position.NewPosition()
	m := parseUCIMove(pos, "e2e4")
	require.NotEqual(t, board.NoMove, m)
}
