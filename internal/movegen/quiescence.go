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
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// CheckEvasions returns every legal move when the side to move is in
// check, sorted by history-table score - used by quiescence search,
// which must resolve checks rather than stand pat.
func CheckEvasions(pos *position.Position, hist func(Piece, Move) int64) []Move {
	legal := GetLegalMoves(pos)
	scored := make([]scoredMove, len(legal))
	for i, mv := range legal {
		scored[i] = scoredMove{move: mv, score: int32(hist(pos.Piece(mv.From()), mv))}
	}
	shellSortDescending(scored)
	moves := make([]Move, len(scored))
	for i, sm := range scored {
		moves[i] = sm.move
	}
	return moves
}

// QuiescenceCaptures returns captures worth searching in quiescence,
// sorted descending by MVV-LVA score, using a two-tier filter: a
// score below 10 is not a real capture and is
// dropped outright; a score below 20 landing back in the mover's own
// half is a shallow recapture unlikely to change the evaluation and is
// also dropped; everything scoring 20 or higher is kept regardless of
// where it lands. Self-check filtering is left to the caller's trial
// Position.DoMove, the same contract as MovePicker.Next.
func QuiescenceCaptures(pos *position.Position) []Move {
	all := Generate(pos)
	side := pos.SideToMove()

	scored := make([]scoredMove, 0, len(all))
	for _, mv := range all {
		if pos.Piece(mv.To()) == PieceNone {
			continue
		}
		score := ScoreCapture(pos, mv)
		if score < 10 {
			continue
		}
		if score < 20 && position.HomeHalf(mv.To(), side) {
			continue
		}
		scored = append(scored, scoredMove{move: mv, score: score})
	}
	shellSortDescending(scored)

	moves := make([]Move, len(scored))
	for i, sm := range scored {
		moves[i] = sm.move
	}
	return moves
}
