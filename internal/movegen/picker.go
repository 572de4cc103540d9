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
	"github.com/frankkopp/xqengine/internal/history"
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

type pickerPhase int

const (
	phaseHash pickerPhase = iota
	phaseKiller1
	phaseKiller2
	phaseGenMoves
	phaseRest
	phaseDone
)

// MovePicker stages the moves at one search node in the order most
// likely to produce an early beta cutoff: the transposition-table move,
// then the two killers for this ply, then every remaining move sorted
// by history-table score.
//
// Next already plays each move it yields via Position.DoMove - the
// caller's only obligation is to call Position.UndoMove once it is done
// with the returned move, regardless of which phase produced it.
type MovePicker struct {
	pos  *position.Position
	hist *history.History
	ply  int

	hashMove         Move
	killer1, killer2 Move
	inCheck          bool
	singleReply      bool

	phase  pickerPhase
	scored []scoredMove
	idx    int
}

// NewMovePicker builds a picker for the current position at the given
// ply (used to index the killer table) with hashMove as the
// transposition-table move (NoMove if there is none).
//
// When the side to move is already in check, the picker skips the
// hash/killer phases entirely and goes straight to emitting every legal
// move sorted by history: hash/killer moves are not meaningfully
// orderable ahead of an escape from check.
func NewMovePicker(pos *position.Position, hist *history.History, ply int, hashMove Move) *MovePicker {
	mp := &MovePicker{pos: pos, hist: hist, ply: ply, hashMove: hashMove}
	mp.inCheck = pos.InCheck()
	if mp.inCheck {
		mp.phase = phaseGenMoves
	} else {
		mp.killer1, mp.killer2 = hist.Killers(ply)
		mp.phase = phaseHash
	}
	return mp
}

// SingleReply reports whether the position had exactly one legal move
// while in check - the search uses this to force a one-ply extension on
// otherwise-forced replies. Meaningless (always false) when the
// position was not in check, since that case is handled by the search's
// own "gives check" extension test instead.
func (mp *MovePicker) SingleReply() bool {
	return mp.singleReply
}

// Next returns the next staged move, already played on the underlying
// Position, and true. It returns (NoMove, false) once every phase is
// exhausted. The caller must call Position.UndoMove exactly once for
// every true result before calling Next again.
func (mp *MovePicker) Next() (Move, bool) {
	for {
		switch mp.phase {
		case phaseHash:
			mp.phase = phaseKiller1
			if mp.hashMove != NoMove && mp.pos.LegalMove(mp.hashMove) && mp.pos.DoMove(mp.hashMove) {
				return mp.hashMove, true
			}
		case phaseKiller1:
			mp.phase = phaseKiller2
			if mp.killer1 != NoMove && mp.killer1 != mp.hashMove &&
				mp.pos.LegalMove(mp.killer1) && mp.pos.DoMove(mp.killer1) {
				return mp.killer1, true
			}
		case phaseKiller2:
			mp.phase = phaseGenMoves
			if mp.killer2 != NoMove && mp.killer2 != mp.hashMove &&
				mp.pos.LegalMove(mp.killer2) && mp.pos.DoMove(mp.killer2) {
				return mp.killer2, true
			}
		case phaseGenMoves:
			mp.generate()
			mp.phase = phaseRest
		case phaseRest:
			for mp.idx < len(mp.scored) {
				mv := mp.scored[mp.idx].move
				mp.idx++
				if !mp.inCheck && (mv == mp.hashMove || mv == mp.killer1 || mv == mp.killer2) {
					continue
				}
				if mp.pos.DoMove(mv) {
					return mv, true
				}
			}
			mp.phase = phaseDone
		case phaseDone:
			return NoMove, false
		}
	}
}

// generate fills mp.scored, sorted descending by history-table score.
// When in check it uses the fully self-check-filtered legal move list
// directly (and records whether it held exactly one move); otherwise it
// scores the pseudo-legal list and leaves the self-check filtering to
// the phaseRest loop's trial Position.DoMove.
func (mp *MovePicker) generate() {
	var moves []Move
	if mp.inCheck {
		moves = GetLegalMoves(mp.pos)
		mp.singleReply = len(moves) == 1
	} else {
		moves = Generate(mp.pos)
	}

	mp.scored = make([]scoredMove, len(moves))
	for i, mv := range moves {
		pc := mp.pos.Piece(mv.From())
		mp.scored[i] = scoredMove{move: mv, score: int32(mp.hist.Value(pc, mv))}
	}
	shellSortDescending(mp.scored)
}
