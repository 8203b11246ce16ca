package tablebase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
)

// LichessProber queries the public Lichess tablebase API over HTTP,
// grounded directly on hailam's internal/tablebase/lichess.go. Network
// access and rate limits make this unsuitable as the sole tablebase
// source in a tournament engine, but it fits the spec's framing of
// tablebase probing as an opaque external oracle.
type LichessProber struct {
	client    *http.Client
	maxPieces int
	cache     Cache
}

// Cache is the minimal persistence surface a LichessProber needs; Badger
// backs the concrete implementation in internal/book so a repeated probe
// of the same position doesn't re-hit the network mid-search.
type Cache interface {
	Get(key string) (ProbeResult, bool)
	Put(key string, result ProbeResult)
}

// NewLichessProber builds a prober with an optional result cache (nil
// disables caching).
func NewLichessProber(cache Cache) *LichessProber {
	return &LichessProber{
		client:    &http.Client{Timeout: 5 * time.Second},
		maxPieces: 7,
		cache:     cache,
	}
}

type lichessResponse struct {
	Category string `json:"category"`
	DTZ      int    `json:"dtz"`
	Moves    []struct {
		UCI      string `json:"uci"`
		Category string `json:"category"`
		DTZ      int    `json:"dtz"`
	} `json:"moves"`
}

func (lp *LichessProber) fetch(pos *position.Position) (lichessResponse, bool) {
	fen := strings.ReplaceAll(pos.ToFEN(), " ", "_")
	url := fmt.Sprintf("https://tablebase.lichess.ovh/standard?fen=%s", fen)

	resp, err := lp.client.Get(url)
	if err != nil {
		return lichessResponse{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return lichessResponse{}, false
	}

	var out lichessResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return lichessResponse{}, false
	}
	return out, true
}

func (lp *LichessProber) Probe(pos *position.Position) ProbeResult {
	if CountPieces(pos) > lp.maxPieces {
		return ProbeResult{Found: false}
	}
	key := fmt.Sprintf("%016x", pos.Hash())
	if lp.cache != nil {
		if cached, ok := lp.cache.Get(key); ok {
			return cached
		}
	}

	resp, ok := lp.fetch(pos)
	if !ok {
		return ProbeResult{Found: false}
	}
	result := ProbeResult{Found: true, WDL: categoryToWDL(resp.Category), DTZ: resp.DTZ}
	if lp.cache != nil {
		lp.cache.Put(key, result)
	}
	return result
}

func (lp *LichessProber) ProbeRoot(pos *position.Position) RootResult {
	if CountPieces(pos) > lp.maxPieces {
		return RootResult{Found: false}
	}

	resp, ok := lp.fetch(pos)
	if !ok || len(resp.Moves) == 0 {
		return RootResult{Found: false}
	}

	best := resp.Moves[0]
	move := parseUCIMove(pos, best.UCI)
	if move == board.NoMove {
		return RootResult{Found: false}
	}
	return RootResult{Found: true, Move: move, WDL: categoryToWDL(best.Category), DTZ: best.DTZ}
}

func (lp *LichessProber) MaxPieces() int  { return lp.maxPieces }
func (lp *LichessProber) Available() bool { return true }

func categoryToWDL(category string) WDL {
	switch category {
	case "win":
		return WDLWin
	case "maybe-win":
		return WDLCursedWin
	case "draw", "maybe-draw", "cursed-win", "blessed-loss":
		return WDLDraw
	case "loss":
		return WDLLoss
	default:
		return WDLDraw
	}
}

func parseUCIMove(pos *position.Position, uci string) board.Move {
	m, err := board.ParseMove(uci, pos.PieceAt, pos.EnPassant())
	if err != nil {
		return board.NoMove
	}
	legal := movepick.GenerateLegal(pos)
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == m {
			return m
		}
	}
	return board.NoMove
}
