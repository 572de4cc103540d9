/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package movegen

import (
	. "github.com/frankkopp/xqengine/pkg/types"
)

// shellGaps is Knuth's three-smooth gap sequence, fixed rather than
// computed so ordering among equally-scored moves stays reproducible
// across runs.
var shellGaps = [...]int{1, 4, 13, 40, 121, 364, 1093}

// scoredMove pairs a move with the ordering score it was generated with
// (history-table value or MVV-LVA), so the move picker can sort once and
// then walk moves and scores in lockstep.
type scoredMove struct {
	move  Move
	score int32
}

// shellSortDescending sorts ms in place by score, highest first. It is a
// shell sort using shellGaps with an insertion-sort pass at each gap;
// stable ordering among equal scores is not required or provided.
func shellSortDescending(ms []scoredMove) {
	n := len(ms)
	for gi := len(shellGaps) - 1; gi >= 0; gi-- {
		gap := shellGaps[gi]
		if gap >= n {
			continue
		}
		for i := gap; i < n; i++ {
			tmp := ms[i]
			j := i
			for j >= gap && ms[j-gap].score < tmp.score {
				ms[j] = ms[j-gap]
				j -= gap
			}
			ms[j] = tmp
		}
	}
}
