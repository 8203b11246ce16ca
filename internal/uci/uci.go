// Package uci implements the engine's text front-end: the stdin/stdout
// line protocol spec.md §1 treats as an external collaborator. It owns
// the root Position, translates "go" options into search.Limits, and
// prints "info"/"bestmove" lines — nothing else in the module writes to
// stdout, so the protocol stream is never corrupted by a stray log line.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/book"
	"github.com/cetincan0/gochess/internal/metrics"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
	"github.com/cetincan0/gochess/internal/search"
	"github.com/cetincan0/gochess/internal/tablebase"
)

// UCI drives one engine instance through the protocol's command set.
// Grounded on hailam's internal/uci/uci.go for the overall Run/handle*
// split; diverges wherever the teacher's single-threaded engine.Engine
// API doesn't match this module's search.Engine (Threads/SetOption
// semantics, tablebase/book as optional pre-search steps).
type UCI struct {
	engine *search.Engine
	pos    *position.Position
	log    *zap.SugaredLogger

	moveOverhead time.Duration
	syzygyPath   string
	book         *book.Book
	tb           tablebase.Prober
	metrics      *metrics.Collector

	searching     bool
	searchDone    chan struct{}
	stopRequested atomic.Bool
	lastNodes     uint64
}

// New creates a protocol handler around an already-constructed engine.
func New(eng *search.Engine, log *zap.SugaredLogger) *UCI {
	return &UCI{
		engine: eng,
		pos:    position.NewPosition(),
		log:    log,
		tb:     tablebase.NoopProber{},
	}
}

// SetBook installs (or clears, with nil) the opening book probed ahead of
// Search in handleGo. Search itself never depends on book, keeping
// spec.md's opening-book Non-goal intact for the core search module.
func (u *UCI) SetBook(b *book.Book) { u.book = b }

// SetTablebase installs the tablebase prober consulted at root in
// handleGo; a NoopProber (the default) always falls through to search.
func (u *UCI) SetTablebase(tb tablebase.Prober) {
	if tb == nil {
		tb = tablebase.NoopProber{}
	}
	u.tb = tb
}

// SetMetrics installs a Prometheus collector whose gauges are refreshed
// from every "info" line's numbers; nil disables the update (the
// default), matching the "metrics is pure ambient instrumentation"
// contract in SPEC_FULL.md §3.
func (u *UCI) SetMetrics(c *metrics.Collector) { u.metrics = c }

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "ponderhit":
			u.engine.SetPonder(false)
		case "quit":
			u.handleStop()
			return
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Println(u.pos.String())
		case "perft":
			u.handlePerft(args)
		case "bench":
			u.handleBench(args)
		}
		// Malformed/unrecognized input is silently ignored, per spec.md §7.
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name gochess")
	fmt.Println("id author gochess contributors")
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("option name Threads type spin default 1 min 1 max 256")
	fmt.Println("option name MoveOverhead type spin default 10 min 0 max 5000")
	fmt.Println("option name SyzygyPath type string default <empty>")
	fmt.Println("option name OwnBook type check default false")
	fmt.Println("option name Ponder type check default false")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.engine.NewGame()
	u.pos = position.NewPosition()
}

// handlePosition supports "position startpos [moves ...]" and
// "position fen <fen> [moves ...]"; an invalid FEN leaves the position
// unchanged, and an illegal move in the move list is skipped while the
// remaining moves are still applied, per spec.md §7.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.pos = position.NewPosition()
		moveStart = indexOf(args, "moves") + 1
	case "fen":
		end := len(args)
		if i := indexOf(args[1:], "moves"); i >= 0 {
			end = i + 1
		}
		fen := strings.Join(args[1:end], " ")
		p, err := position.ParseFEN(fen)
		if err != nil {
			if u.log != nil {
				u.log.Warnw("invalid FEN in position command", "fen", fen, "error", err)
			}
			return
		}
		u.pos = p
		moveStart = end
		if i := indexOf(args, "moves"); i >= 0 {
			moveStart = i + 1
		}
	default:
		return
	}

	if moveStart <= 0 || moveStart >= len(args) {
		return
	}
	for _, mv := range args[moveStart:] {
		m, err := board.ParseMove(mv, u.pos.PieceAt, u.pos.EnPassant())
		if err != nil || !isLegalMove(u.pos, m) {
			if u.log != nil {
				u.log.Warnw("illegal move in position command", "move", mv)
			}
			continue
		}
		u.pos.MakeMove(m)
	}
}

// isLegalMove verifies a GUI-supplied move by membership in the generated
// legal move set. Position.IsLegal alone is not enough here: it assumes its
// input is pseudo-legal, which holds for generated moves but not for
// arbitrary protocol input.
func isLegalMove(p *position.Position, m board.Move) bool {
	return movepick.GenerateLegal(p).Contains(m)
}

func indexOf(fields []string, target string) int {
	for i, f := range fields {
		if f == target {
			return i
		}
	}
	return -1
}

func (u *UCI) handleGo(args []string) {
	limits := u.parseGoLimits(args)

	if u.book != nil {
		if m, ok := u.book.Probe(u.pos); ok {
			fmt.Printf("bestmove %s\n", m.String())
			return
		}
	}
	if u.tb.Available() && tablebase.CountPieces(u.pos) <= u.tb.MaxPieces() {
		if rr := u.tb.ProbeRoot(u.pos); rr.Found && rr.Move != board.NoMove {
			fmt.Printf("bestmove %s\n", rr.Move.String())
			return
		}
	}

	u.searching = true
	u.stopRequested.Store(false)
	u.searchDone = make(chan struct{})
	u.lastNodes = 0

	pos := u.pos.Copy()
	go func() {
		defer close(u.searchDone)
		move, _ := u.engine.Think(pos, limits, u.sendInfo)
		u.searching = false
		if move == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Printf("bestmove %s\n", move.String())
	}()
}

func (u *UCI) parseGoLimits(args []string) search.Limits {
	var l search.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				l.Depth, _ = strconv.Atoi(args[i])
			}
		case "nodes":
			i++
			if i < len(args) {
				n, _ := strconv.ParseUint(args[i], 10, 64)
				l.Nodes = n
			}
		case "movetime":
			i++
			if i < len(args) {
				l.MoveTime, _ = strconv.Atoi(args[i])
			}
		case "wtime":
			i++
			if i < len(args) {
				l.WTime, _ = strconv.Atoi(args[i])
			}
		case "btime":
			i++
			if i < len(args) {
				l.BTime, _ = strconv.Atoi(args[i])
			}
		case "winc":
			i++
			if i < len(args) {
				l.WInc, _ = strconv.Atoi(args[i])
			}
		case "binc":
			i++
			if i < len(args) {
				l.BInc, _ = strconv.Atoi(args[i])
			}
		case "movestogo":
			i++
			if i < len(args) {
				l.MovesToGo, _ = strconv.Atoi(args[i])
			}
		case "infinite":
			l.Infinite = true
		case "ponder":
			l.Ponder = true
			u.engine.SetPonder(true)
		}
	}
	return l
}

func (u *UCI) sendInfo(r search.Report) {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d seldepth %d multipv 1", r.Depth, r.SelDepth)
	if r.Mate {
		fmt.Fprintf(&b, " score mate %d", r.MateIn)
	} else {
		fmt.Fprintf(&b, " score cp %d", r.Score)
	}
	if r.Lower {
		b.WriteString(" lowerbound")
	} else if r.Upper {
		b.WriteString(" upperbound")
	}
	fmt.Fprintf(&b, " hashfull %d nodes %d nps %d time %d tbhits %d",
		r.HashFull, r.Nodes, r.NPS, r.TimeMS, r.TBHits)
	if len(r.PV) > 0 {
		b.WriteString(" pv")
		for _, m := range r.PV {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
	}
	fmt.Println(b.String())

	if u.metrics != nil {
		// Nodes is a monotonic Counter; r.Nodes is the cumulative count for
		// this search, so only the delta since the last report is added.
		if r.Nodes > u.lastNodes {
			u.metrics.Nodes.Add(float64(r.Nodes - u.lastNodes))
		}
		u.lastNodes = r.Nodes
		u.metrics.NPS.Set(float64(r.NPS))
		u.metrics.HashFull.Set(float64(r.HashFull))
		u.metrics.TTHitRate.Set(r.TTHitRate)
		u.metrics.SearchDepth.Set(float64(r.Depth))
	}
}

func (u *UCI) handleStop() {
	if u.searching {
		u.stopRequested.Store(true)
		u.engine.Stop()
		<-u.searchDone
	}
}

func (u *UCI) handleSetOption(args []string) {
	name, value := parseNameValue(args)
	switch strings.ToLower(name) {
	case "hash":
		if u.searching {
			fmt.Println("info string Hash cannot change while a search is running")
			return
		}
		mb, err := strconv.Atoi(value)
		if err != nil || mb <= 0 || mb&(mb-1) != 0 {
			fmt.Printf("info string Hash must be a power-of-two MB value, got %q\n", value)
			return
		}
		u.engine.Shared.TT.Resize(mb)
	case "threads":
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			u.engine.Threads = n
		}
	case "moveoverhead":
		ms, err := strconv.Atoi(value)
		if err == nil && ms >= 0 {
			u.engine.MoveOverhead = time.Duration(ms) * time.Millisecond
		}
	case "syzygypath":
		u.syzygyPath = value
	case "ponder":
		// Acknowledged; actual ponder toggling happens via the "go ponder"
		// token and "ponderhit", matching spec.md §6's option table.
	}
}

func parseNameValue(args []string) (name, value string) {
	readingName, readingValue := false, false
	for _, a := range args {
		switch a {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += a
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += a
			}
		}
	}
	return name, value
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}
	start := time.Now()
	nodes := movepick.Perft(u.pos, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
