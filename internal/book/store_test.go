package book

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cetincan0/gochess/internal/tablebase"
)

func TestStoreGetPutRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	_, found := store.Get("missing")
	require.False(t, found)

	want := tablebase.ProbeResult{Found: true, WDL: tablebase.WDLWin}
	store.Put("startpos", want)

	got, found := store.Get("startpos")
	require.True(t, found)
	require.Equal(t, want, got)
}
