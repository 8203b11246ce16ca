package movepick

import "github.com/cetincan0/gochess/internal/position"

// Perft counts leaf nodes reachable from pos in exactly depth plies,
// grounded on hailam's internal/engine/engine.go Perft method — used both
// as a move-generator correctness check (spec.md §8) and by the UCI
// "perft" debug command.
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := GenerateLegal(p)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}
