// Package tt implements the shared, lock-free transposition table: a flat
// array of three-entry buckets probed and stored without any
// synchronization, relying on a 16-bit hash-verification stamp plus the
// caller's move-legality check to make torn reads benign.
package tt

import (
	"sync/atomic"

	"github.com/cetincan0/gochess/internal/board"
)

// Flag is the kind of bound a stored score represents.
type Flag uint8

const (
	Exact Flag = iota
	Lower      // fail-high: score is a lower bound
	Upper      // fail-low: score is an upper bound
)

// MaxPly bounds search recursion depth and is used to normalize mate scores
// stored in the table so they are independent of the ply they were found at.
const MaxPly = 128

// Infinity / Mate bound the score range the search and TT operate on.
const (
	Infinity = 32000
	Mate     = 31000
)

// entry is one slot of a bucket, packed to keep three of them under 32
// bytes: hash16 (verification stamp), move, score, eval hint, depth,
// generation, and bound flag.
type entry struct {
	hash16 uint16
	move   board.Move
	score  int16
	eval   int16
	genBnd uint8 // generation (6 bits) | flag (2 bits)
	depth  int8
}

func (e *entry) generation() uint8 { return e.genBnd >> 2 }
func (e *entry) flag() Flag        { return Flag(e.genBnd & 0x3) }
func packGenBnd(gen uint8, f Flag) uint8 {
	return (gen << 2) | uint8(f)
}

// depthOffset shifts every stored depth up before it hits the entry's int8
// field, so a zero-value entry.depth (the natural state of a freshly
// allocated, never-written bucket) is distinguishable from a genuinely
// stored quiescence depth of 0 or -1. Without the offset, Probe's
// empty-slot test ("depth == 0 means never written") would silently
// swallow every quiescence-depth store, since quiescence always stores at
// depth 0 or -1 per spec.
const depthOffset = 4

func (e *entry) isEmpty() bool    { return e.depth == 0 }
func (e *entry) storedDepth() int { return int(e.depth) - depthOffset }

// bucketSize is the fixed three-way associativity the spec requires.
const bucketSize = 3

type bucket struct {
	entries [bucketSize]entry
}

// Table is the shared transposition table. All methods are safe to call
// concurrently from multiple search threads without external locking: the
// replacement and store logic tolerates torn reads/writes of a single
// entry, which downstream callers must additionally guard with a
// pseudo-legality and legality check on any returned move.
type Table struct {
	buckets []bucket
	mask    uint64
	gen     uint32 // atomic; incremented once per NewSearch, wraps mod 64
}

// bytesPerBucket approximates the in-memory footprint of one bucket for
// sizing purposes: one entry is 2(hash)+2(move)+2(score)+2(eval)+1(genBnd)+1(depth),
// rounded to the bucket's 32-byte pad (3 entries + padding).
const bytesPerBucket = 32

// New allocates a table sized to sizeMB megabytes, rounded down to a power
// of two bucket count so indexing is a mask instead of a modulo.
func New(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	numBuckets := uint64(sizeMB) * 1024 * 1024 / bytesPerBucket
	numBuckets = roundDownPow2(numBuckets)
	if numBuckets == 0 {
		numBuckets = 1
	}
	return &Table{
		buckets: make([]bucket, numBuckets),
		mask:    numBuckets - 1,
	}
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Resize reallocates the table. Callers must ensure no search is in flight
// (the UCI layer enforces this by rejecting "Hash" option changes while
// thinking).
func (t *Table) Resize(sizeMB int) {
	*t = *New(sizeMB)
}

// NewSearch bumps the generation counter (mod 64) so that stores from the
// search about to begin are preferred as replacement victims over anything
// written by a previous search.
func (t *Table) NewSearch() {
	atomic.AddUint32(&t.gen, 1)
}

func (t *Table) generation() uint8 { return uint8(atomic.LoadUint32(&t.gen) % 64) }

// Clear zeroes every entry and resets the generation counter. Used by the
// UCI "ucinewgame" command.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket{}
	}
	atomic.StoreUint32(&t.gen, 0)
}

// Entry is the decoded, caller-facing view of a probe hit.
type Entry struct {
	Move  board.Move
	Score int
	Eval  int
	Depth int
	Flag  Flag
}

// Probe looks up hash and returns the matching entry, if any. A matching
// 16-bit verification stamp is treated as a hit even under concurrent
// writers: a torn write can produce a false-positive hash match, but the
// move it yields is still subject to the caller's legality filter, and an
// occasional wrong score merely costs some search efficiency, never
// correctness.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	b := &t.buckets[hash&t.mask]
	key16 := uint16(hash >> 48)

	for i := range b.entries {
		e := &b.entries[i]
		if e.hash16 == key16 && !e.isEmpty() {
			return Entry{
				Move:  e.move,
				Score: int(e.score),
				Eval:  int(e.eval),
				Depth: e.storedDepth(),
				Flag:  e.flag(),
			}, true
		}
	}
	return Entry{}, false
}

// Store writes a search result into the table, choosing among the bucket's
// three slots: an exact-match slot is updated in place; otherwise the
// least valuable entry — by depth minus sixteen times its generation
// distance from the current search — is evicted. The move field is only
// overwritten when a non-empty move is supplied or the hash changed, and
// depth/score/flag are only overwritten when the new depth is not
// substantially shallower than what's stored, so that a shallow re-probe
// of an exact-match slot can't clobber a deeper earlier result.
func (t *Table) Store(hash uint64, move board.Move, score, eval, depth int, flag Flag) {
	b := &t.buckets[hash&t.mask]
	key16 := uint16(hash >> 48)
	gen := t.generation()

	var victim *entry
	victimScore := 1 << 30

	for i := range b.entries {
		e := &b.entries[i]
		if e.isEmpty() || e.hash16 == key16 {
			victim = e
			break
		}
		distance := genDistance(gen, e.generation())
		replScore := e.storedDepth() - 16*distance
		if replScore < victimScore {
			victimScore = replScore
			victim = e
		}
	}

	if victim == nil {
		victim = &b.entries[0]
	}

	hashChanged := victim.hash16 != key16
	if move != board.NoMove || hashChanged {
		victim.move = move
	}
	if hashChanged || depth-victim.storedDepth() >= -3 {
		victim.hash16 = key16
		victim.score = int16(score)
		victim.eval = int16(eval)
		victim.depth = int8(depth + depthOffset)
		victim.genBnd = packGenBnd(gen, flag)
	}
}

func genDistance(cur, entryGen uint8) int {
	d := int(cur) - int(entryGen)
	if d < 0 {
		d += 64
	}
	return d
}

// HashFull returns the permille of the table in use by the current
// generation's entries, sampled over every slot of the first 1000 buckets —
// cheap and accurate enough for the UCI "hashfull" info field.
func (t *Table) HashFull() int {
	sample := 1000
	if uint64(sample) > uint64(len(t.buckets)) {
		sample = len(t.buckets)
	}
	if sample == 0 {
		return 0
	}
	used := 0
	gen := t.generation()
	for i := 0; i < sample; i++ {
		for j := range t.buckets[i].entries {
			e := &t.buckets[i].entries[j]
			if !e.isEmpty() && e.generation() == gen {
				used++
			}
		}
	}
	return used * 1000 / (sample * bucketSize)
}

// Buckets reports the number of buckets (three entries each) allocated.
func (t *Table) Buckets() int { return len(t.buckets) }

// ScoreToTT normalizes a mate score for storage: mate distances are
// recorded as distance-from-the-node-they-were-found-at rather than
// distance-from-root, so a score read back at a different ply can be
// re-based onto that ply by ScoreFromTT.
func ScoreToTT(score, ply int) int {
	if score >= Mate-MaxPly {
		return score + ply
	}
	if score <= -Mate+MaxPly {
		return score - ply
	}
	return score
}

// ScoreFromTT reverses ScoreToTT.
func ScoreFromTT(score, ply int) int {
	if score >= Mate-MaxPly {
		return score - ply
	}
	if score <= -Mate+MaxPly {
		return score + ply
	}
	return score
}
