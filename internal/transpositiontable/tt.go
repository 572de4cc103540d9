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

// Package transpositiontable implements a fixed-size transposition table
// (cache) for the search: depth-preferred replacement, distance-adjusted
// mate/ban scores, and full Zobrist lock verification. The slot index is
// the low bits of that same lock; the Zobrist key is not used here.
//
// TtTable is not safe for concurrent use and must not be resized or
// cleared while a search is reading it.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/frankkopp/xqengine/internal/logging"
	"github.com/frankkopp/xqengine/internal/util"
	. "github.com/frankkopp/xqengine/pkg/types"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB is the largest table size Resize will honor.
const MaxSizeInMB = 65_536

// MB is the byte count of one megabyte, used to convert the caller's
// size-in-MB request into a slice length.
const MB = 1024 * 1024

// NoInformation is the sentinel Probe returns when it has nothing
// usable for the given window/depth - a value far outside any real
// evaluation or mate score.
const NoInformation = -MateValue

const (
	MateValue = 10000
)

// TtTable is the transposition table. Create with NewTtTable.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	Stats              TtStats
}

// TtStats holds statistical data on tt usage.
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of megabytes as
// a memory ceiling; the actual entry count is rounded down to a power of
// two so indexing is a bit mask instead of a modulo.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table. All entries are cleared.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	entrySize := uint64(unsafe.Sizeof(TtEntry{}))
	if tt.sizeInByte < entrySize {
		tt.maxNumberOfEntries = 0
	} else {
		tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/entrySize))))
	}
	tt.hashKeyMask = tt.maxNumberOfEntries - 1
	tt.sizeInByte = tt.maxNumberOfEntries * entrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, entrySize, sizeInMByte))
	tt.log.Debug(util.MemStat())
}

func (tt *TtTable) index(lock uint64) uint64 {
	return lock & tt.hashKeyMask
}

// Probe looks up key (the full 64-bit Zobrist lock) and returns a usable
// score plus the stored move (NoMove if there was none or no entry
// matched). It returns NoInformation when the entry is absent, its lock
// doesn't match (an index collision), its depth is shallower than
// requested (unless the stored score is a mate score, which is depth-
// independent), or the bound type can't establish a cutoff against
// [alpha, beta).
//
// A stored draw-value score with a zero move is treated as carrying no
// information at all; a nonzero move attached to a draw score is still
// useful ordering information.
func (tt *TtTable) Probe(lock uint64, alpha, beta int32, depth int, distance int) (score int32, hashMove Move) {
	if tt.maxNumberOfEntries == 0 {
		tt.Stats.numberOfProbes++
		tt.Stats.numberOfMisses++
		return NoInformation, NoMove
	}

	tt.Stats.numberOfProbes++
	e := &tt.data[tt.index(lock)]
	if e.empty() || e.Lock != lock {
		tt.Stats.numberOfMisses++
		return NoInformation, NoMove
	}
	tt.Stats.numberOfHits++
	hashMove = e.Move

	adjusted := unadjustMateScore(e.Score, distance)
	if adjusted == DrawValue(distance) && e.Move == NoMove {
		return NoInformation, hashMove
	}

	if int(e.Depth) < depth && !isMateScore(adjusted) {
		return NoInformation, hashMove
	}

	switch e.Flag {
	case AlphaType:
		if adjusted <= alpha {
			return adjusted, hashMove
		}
	case BetaType:
		if adjusted >= beta {
			return adjusted, hashMove
		}
	case ExactType:
		return adjusted, hashMove
	}
	return NoInformation, hashMove
}

// Record stores a search result. If the slot already holds an entry
// searched to a strictly greater depth with a nonzero move, the
// existing entry is preserved (depth-preferred replacement) -
// otherwise the new result overwrites it.
func (tt *TtTable) Record(lock uint64, flag ValueType, score int32, depth int, move Move, distance int) {
	if tt.maxNumberOfEntries == 0 {
		return
	}

	e := &tt.data[tt.index(lock)]
	tt.Stats.numberOfPuts++

	if e.empty() {
		tt.numberOfEntries++
	} else if e.Lock != lock {
		tt.Stats.numberOfCollisions++
		if int(e.Depth) > depth && e.Move != NoMove {
			return
		}
		tt.Stats.numberOfOverwrites++
	} else {
		tt.Stats.numberOfUpdates++
		if int(e.Depth) > depth && e.Move != NoMove {
			return
		}
	}

	adjusted := score
	if isMateScore(score) {
		adjusted = adjustMateScore(score, distance)
	} else if score == DrawValue(distance) && move == NoMove {
		return
	}

	e.Lock = lock
	e.Score = adjusted
	e.Depth = int8(depth)
	e.Flag = flag
	if move != NoMove {
		e.Move = move
	}
}

// Clear clears all entries of the tt.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is, in permille.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// Len returns the number of non-empty entries in the tt.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// ///////////////////////////////////////////////////////////
// Distance-relative score adjustment
// ///////////////////////////////////////////////////////////

const (
	banValue  = 9900
	drawValue = 20
)

// isMateScore reports whether v falls in the mate/ban band, where the
// distance from root has been folded in and must be unfolded before the
// value is comparable across different search depths. The 2048 margin is
// well above LimitDepth so every mate/ban score at any reachable distance
// from root still falls inside the band, however much of it the caller's
// distance has already eaten into the raw -10000/9900 values.
func isMateScore(v int32) bool {
	return v >= banValue-2048 || v <= -(banValue - 2048)
}

// adjustMateScore folds distance into a mate-band score before storing
// it, so the same mate found at different distances from the TT probe
// point is stored as the same value.
func adjustMateScore(v int32, distance int) int32 {
	if v > 0 {
		return v + int32(distance)
	}
	return v - int32(distance)
}

// unadjustMateScore reverses adjustMateScore on load.
func unadjustMateScore(v int32, distance int) int32 {
	if !isMateScore(v) {
		return v
	}
	if v > 0 {
		return v - int32(distance)
	}
	return v + int32(distance)
}

// DrawValue returns the distance-relative draw score: the sign
// alternates with distance parity so the engine doesn't treat every
// draw as equally desirable regardless of who is to move.
func DrawValue(distance int) int32 {
	if distance%2 == 0 {
		return -drawValue
	}
	return drawValue
}
