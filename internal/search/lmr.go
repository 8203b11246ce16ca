package search

import "math"

// lmrTable[depth][moveCount] is the base late-move reduction, precomputed
// with the classical logarithmic formula (the same shape Stockfish and most
// of its derivatives use): reductions grow with both how deep the search
// already is and how far down the ordered move list we are.
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int(0.5 + 0.8*math.Log(float64(d))*math.Log(float64(m)))
		}
	}
}

func lmrReduction(pvNode, improving bool, depth, moveCount int, quietHistory int) int {
	if depth >= 64 {
		depth = 63
	}
	if moveCount >= 64 {
		moveCount = 63
	}
	r := lmrTable[depth][moveCount]
	if pvNode && r > 0 {
		r--
	}
	if !pvNode && !improving {
		r++
	}
	r -= quietHistory / 12288
	if r < 0 {
		r = 0
	}
	return r
}
