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

// Package history holds the two move-ordering tables the search consults
// between recursion levels: a history table of moves that have caused
// cutoffs in the past, and a pair of killer moves per ply.
package history

import (
	"fmt"
	"strings"

	. "github.com/frankkopp/xqengine/pkg/types"
)

// tableSize is the history table's fixed entry count: a move's index is
// piece-type (3 bits, 0-6) shifted left 8 and added to the destination
// square (fits a byte), so the largest possible index is well under 4096.
const tableSize = 4096

// maxPly bounds the killer table's per-ply slots. LIMIT_DEPTH plus
// quiescence depth never exceeds this in practice.
const maxPly = 128

// History holds the move-ordering tables for one search. It is owned by
// exactly one Search instance and reset at the start of every
// search_main call.
type History struct {
	table   [tableSize]int64
	killers [maxPly][2]Move
}

// NewHistory returns a zeroed History.
func NewHistory() *History {
	return &History{}
}

// Clear resets both tables to their zero value. Called once per
// search_main, not between iterative-deepening iterations, so history
// learned at shallower depths keeps informing move ordering at deeper
// ones within the same search.
func (h *History) Clear() {
	for i := range h.table {
		h.table[i] = 0
	}
	for i := range h.killers {
		h.killers[i] = [2]Move{NoMove, NoMove}
	}
}

// Index computes the history-table slot for mv, given the piece that sat
// on its source square: type_of(piece) << 8 + dst. pc must be the piece
// that occupied mv.From() before the move was made.
func Index(pc Piece, mv Move) int {
	return int(pc.TypeOf())<<8 + int(mv.To())
}

// Value returns the current history-table score for the slot mv would
// index to, given the moving piece pc.
func (h *History) Value(pc Piece, mv Move) int64 {
	return h.table[Index(pc, mv)]
}

// Add records a cutoff or PV move at the given search depth: the slot's
// score grows by depth squared, so cutoffs found deep in the tree (more
// expensive to find, more likely to matter) dominate shallow ones.
func (h *History) Add(pc Piece, mv Move, depth int) {
	if depth <= 0 {
		return
	}
	h.table[Index(pc, mv)] += int64(depth) * int64(depth)
}

// Killers returns the two killer moves stored for ply.
func (h *History) Killers(ply int) (Move, Move) {
	k := &h.killers[ply]
	return k[0], k[1]
}

// StoreKiller records mv as a killer at ply, unless it is already the
// first slot: the first slot shifts into the second and mv takes the
// first, so the most recent cutoff move is always tried first.
func (h *History) StoreKiller(ply int, mv Move) {
	k := &h.killers[ply]
	if k[0] == mv {
		return
	}
	k[1] = k[0]
	k[0] = mv
}

// String renders the nonzero history entries, for debug logging.
func (h *History) String() string {
	var b strings.Builder
	b.WriteString("History: {")
	first := true
	for i, v := range h.table {
		if v == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%d=%d", i, v)
	}
	b.WriteString("}")
	return b.String()
}
