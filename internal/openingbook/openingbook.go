//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package openingbook loads a static, sorted opening book and answers
// book_move queries against it: binary search on the position's Zobrist
// lock, a mirrored-position fallback when the lock is not found as-is,
// and weighted sampling among whatever legal entries remain.
package openingbook

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/frankkopp/xqengine/internal/logging"
	"github.com/frankkopp/xqengine/internal/movegen"
	"github.com/frankkopp/xqengine/internal/position"
	"github.com/frankkopp/xqengine/internal/util"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// Entry is one book line: the low 32 bits of a position's Zobrist lock,
// the move played from it, and a sampling weight (typically a game or
// occurrence count from whatever corpus built the book).
type Entry struct {
	LockLow32 uint32
	Move      Move
	Weight    uint32
}

// Book is a read-only, sorted-by-lock opening book. The zero value is
// empty and ready to use; load entries with Load.
type Book struct {
	log     *logging.Logger
	entries []Entry
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{log: myLogging.GetLog()}
}

// NumberOfEntries reports how many entries are currently loaded.
func (b *Book) NumberOfEntries() int {
	return len(b.entries)
}

// Reset discards all loaded entries.
func (b *Book) Reset() {
	b.entries = nil
}

// Load reads path, a plain-text book file with one entry per line:
//
//	<lock32 in hex> <fromFile> <fromRank> <toFile> <toRank> <weight>
//
// Blank lines and lines starting with '#' are ignored. A malformed line
// is logged at Warning and skipped rather than aborting the whole load -
// one bad line in a large generated book should not make the book
// unusable. Load replaces any previously loaded entries only once the
// whole file has been read successfully; a read failure leaves the
// Book's prior contents untouched.
//
// path is resolved with util.ResolveFile before opening: absolute as
// given, otherwise relative to the working directory, the executable,
// or the user's home directory in that order, so a configured BookPath
// survives being launched from outside the engine's install directory.
func (b *Book) Load(path string) error {
	resolved, err := util.ResolveFile(path)
	if err != nil {
		return fmt.Errorf("openingbook: %w", err)
	}
	path = resolved

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("openingbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			b.log.Warningf("openingbook: %s:%d: %v", path, lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("openingbook: reading %s: %w", path, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].LockLow32 < entries[j].LockLow32 })
	b.entries = entries
	b.log.Infof("openingbook: loaded %d entries from %s", len(entries), path)
	return nil
}

func parseLine(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return Entry{}, fmt.Errorf("want 6 fields, got %d", len(fields))
	}
	lock, err := strconv.ParseUint(fields[0], 16, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("bad lock %q: %w", fields[0], err)
	}
	ff, err1 := strconv.Atoi(fields[1])
	fr, err2 := strconv.Atoi(fields[2])
	tf, err3 := strconv.Atoi(fields[3])
	tr, err4 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Entry{}, fmt.Errorf("bad move coordinates in %q", line)
	}
	weight, err := strconv.ParseUint(fields[5], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("bad weight %q: %w", fields[5], err)
	}
	mv := MakeMove(MakeSquare(uint8(ff), uint8(fr)), MakeSquare(uint8(tf), uint8(tr)))
	return Entry{LockLow32: uint32(lock), Move: mv, Weight: uint32(weight)}, nil
}

// Move answers a book_move query for pos: binary search for pos's own
// Zobrist lock first, then - if nothing matched - for the mirrored
// position's lock, mirroring any hit back onto the real board. Among
// whatever entries share the winning lock and name a currently legal
// move, one is sampled proportionally to its weight using rng. Returns
// NoMove when the book has nothing playable here.
func (b *Book) Move(pos *position.Position, rng *rand.Rand) Move {
	if mv := b.pick(uint32(pos.ZobristLock()), movegen.GetLegalMoves(pos), rng); mv != NoMove {
		return mv
	}
	mirrored := pos.Mirror()
	mv := b.pick(uint32(mirrored.ZobristLock()), movegen.GetLegalMoves(mirrored), rng)
	if mv == NoMove {
		return NoMove
	}
	return mv.Mirror()
}

func (b *Book) pick(lock32 uint32, legal []Move, rng *rand.Rand) Move {
	n := len(b.entries)
	idx := sort.Search(n, func(i int) bool { return b.entries[i].LockLow32 >= lock32 })
	if idx >= n || b.entries[idx].LockLow32 != lock32 {
		return NoMove
	}
	lo, hi := idx, idx
	for lo > 0 && b.entries[lo-1].LockLow32 == lock32 {
		lo--
	}
	for hi+1 < n && b.entries[hi+1].LockLow32 == lock32 {
		hi++
	}

	var candidates []Entry
	var total uint64
	for _, e := range b.entries[lo : hi+1] {
		if !containsMove(legal, e.Move) {
			continue
		}
		candidates = append(candidates, e)
		total += uint64(e.Weight)
	}
	if len(candidates) == 0 || total == 0 {
		return NoMove
	}

	roll := uint64(rng.Int63n(int64(total)))
	var cumulative uint64
	for _, c := range candidates {
		cumulative += uint64(c.Weight)
		if roll < cumulative {
			return c.Move
		}
	}
	return candidates[len(candidates)-1].Move
}

func containsMove(moves []Move, mv Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}
