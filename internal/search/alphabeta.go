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

package search

import (
	"github.com/frankkopp/xqengine/internal/movegen"
	"github.com/frankkopp/xqengine/internal/position"
	"github.com/frankkopp/xqengine/internal/transpositiontable"
	"github.com/frankkopp/xqengine/internal/util"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// searchMain is the iterative-deepening driver: search_root runs at
// depth 1, 2, 3, ... until depthLimit, until a mate score is found, or
// until the deadline passes between iterations. It returns the best move
// recorded at the last fully completed iteration - a partial, cut-off
// iteration never overwrites it.
func (s *Search) searchMain(depthLimit int) Move {
	legal := movegen.GetLegalMoves(s.pos)
	if len(legal) == 0 {
		return NoMove
	}
	if len(legal) == 1 {
		s.stats.BestMove = legal[0]
		return legal[0]
	}

	best := NoMove
	for depth := 1; depth <= depthLimit; depth++ {
		if s.timeUp() {
			break
		}
		s.stats.CurrentDepth = depth
		s.stats.CurrentBestMove = NoMove

		value := s.searchRoot(-position.MateValue, position.MateValue, depth)
		if s.stopFlag.Load() {
			break
		}

		if s.stats.CurrentBestMove != NoMove {
			best = s.stats.CurrentBestMove
		}
		s.stats.BestMove = best
		s.stats.BestValue = value

		if util.Abs32(value) >= position.WinValue {
			break
		}
	}

	return best
}

// searchRoot runs one iterative-deepening iteration at depth: the move
// picker's first move is searched with the full window, every later
// move with the zero-width window (alpha, alpha+1), re-searched with the
// full window on a fail-high strictly inside (alpha, beta) - exactly the
// interior recipe in searchFull, reproduced here because only the root
// records CurrentBestMove/CurrentBestValue for searchMain to read back.
func (s *Search) searchRoot(alpha, beta int32, depth int) int32 {
	pos := s.pos

	var hashMove Move
	if s.params.useTTMove {
		_, hashMove = s.tt.Probe(pos.ZobristLock(), alpha, beta, depth, pos.Distance())
	}

	picker := movegen.NewMovePicker(pos, s.hist, pos.Distance(), hashMove)
	bestScore := -position.MateValue
	bestMove := NoMove
	moveCount := 0

	for {
		mv, ok := picker.Next()
		if !ok {
			break
		}
		moveCount++

		newDepth := depth - 1
		if pos.InCheck() || picker.SingleReply() {
			newDepth = depth
		}

		var value int32
		if moveCount == 1 {
			value = -s.searchFull(-beta, -alpha, newDepth, false)
		} else {
			value = -s.searchFull(-alpha-1, -alpha, newDepth, false)
			if value > alpha && value < beta {
				value = -s.searchFull(-beta, -alpha, newDepth, false)
			}
		}
		pos.UndoMove()

		if s.stopFlag.Load() {
			return bestScore
		}

		if value > bestScore {
			bestScore = value
			bestMove = mv
		}
		if value > alpha {
			alpha = value
			s.stats.CurrentBestMove = mv
			s.stats.CurrentBestValue = value
		}
		if alpha >= beta {
			break
		}
	}

	if moveCount == 0 {
		return pos.MateScore()
	}

	flag := AlphaType
	if bestScore >= beta {
		flag = BetaType
	} else if s.stats.CurrentBestMove != NoMove {
		flag = ExactType
	}
	if s.params.useTT {
		s.tt.Record(pos.ZobristLock(), flag, bestScore, depth, bestMove, pos.Distance())
	}
	if bestMove != NoMove && flag != AlphaType {
		s.setBestMove(bestMove, depth)
	}
	return bestScore
}

// searchFull implements the interior search_full node recipe, steps
// numbered to match the specification:
//
//  1. depth<=0 hands off to quiescence.
//  2. mate-distance pruning against beta.
//  3. repetition detection.
//  4. transposition table probe.
//  5. LIMIT_DEPTH ceiling falls back to a static evaluation.
//  6. null-move pruning, verified by NullSafe or a reduced re-search.
//  7. move picker iteration with check/single-reply extension, first
//     move full window, later moves zero-width re-searched on fail-high.
//  8. best_score/best_move/flag bookkeeping.
//  9. no legal move at all scores as mate_value.
//  10. TT record plus history/killer update on a non-fail-low result.
func (s *Search) searchFull(alpha, beta int32, depth int, disallowNull bool) int32 {
	pos := s.pos

	// 1.
	if depth <= 0 {
		if s.params.useQuiescence {
			return s.searchQuiesc(alpha, beta)
		}
		return pos.Evaluate()
	}

	s.stats.Nodes++
	if s.stats.Nodes&s.nodeCheckMask == 0 && s.timeUp() {
		s.stopFlag.Store(true)
	}
	if s.stopFlag.Load() {
		return alpha
	}

	// 2.
	if vl := pos.MateScore(); vl >= beta {
		return vl
	}

	// 3.
	if r := pos.RepStatus(1); r > 0 {
		return pos.RepValue(r)
	}

	// 4.
	var hashMove Move
	if s.params.useTT {
		vl, hm := s.tt.Probe(pos.ZobristLock(), alpha, beta, depth, pos.Distance())
		hashMove = hm
		if s.params.useTTValue && vl > transpositiontable.NoInformation {
			return vl
		}
	}
	if !s.params.useTTMove {
		hashMove = NoMove
	}

	// 5.
	if pos.Distance() >= position.LimitDepth {
		return pos.Evaluate()
	}

	// 6.
	if s.params.useNullMove && !disallowNull && !pos.InCheck() &&
		pos.NullOkay() && depth > s.params.nullMoveMinDepth {
		pos.DoNullMove()
		nullValue := -s.searchFull(-beta, -beta+1, depth-position.NullDepth-1, true)
		pos.UndoNullMove()

		if s.stopFlag.Load() {
			return alpha
		}
		if nullValue >= beta {
			if pos.NullSafe() {
				return nullValue
			}
			if verify := s.searchFull(beta-1, beta, depth-position.NullDepth, true); verify >= beta {
				return nullValue
			}
		}
	}

	// 7./8.
	picker := movegen.NewMovePicker(pos, s.hist, pos.Distance(), hashMove)
	bestScore := -position.MateValue
	bestMove := NoMove
	flag := AlphaType
	moveCount := 0

	for {
		mv, ok := picker.Next()
		if !ok {
			break
		}
		moveCount++

		newDepth := depth - 1
		if pos.InCheck() || picker.SingleReply() {
			newDepth = depth
		}

		var value int32
		if moveCount == 1 {
			value = -s.searchFull(-beta, -alpha, newDepth, false)
		} else {
			value = -s.searchFull(-alpha-1, -alpha, newDepth, false)
			if value > alpha && value < beta {
				value = -s.searchFull(-beta, -alpha, newDepth, false)
			}
		}
		pos.UndoMove()

		if s.stopFlag.Load() {
			return bestScore
		}

		if value > bestScore {
			bestScore = value
			bestMove = mv
		}
		if value > alpha {
			alpha = value
			flag = ExactType
		}
		if alpha >= beta {
			flag = BetaType
			break
		}
	}

	// 9.
	if moveCount == 0 {
		return pos.MateScore()
	}

	// 10.
	if s.params.useTT {
		s.tt.Record(pos.ZobristLock(), flag, bestScore, depth, bestMove, pos.Distance())
	}
	if bestMove != NoMove && flag != AlphaType {
		s.setBestMove(bestMove, depth)
	}

	return bestScore
}

// setBestMove records mv as having caused a cutoff or raised alpha at
// depth: the history table grows by depth^2 at mv's history index, and
// mv becomes the first killer for the current ply.
func (s *Search) setBestMove(mv Move, depth int) {
	pos := s.pos
	if s.params.useHistory {
		pc := pos.Piece(mv.From())
		if pc != PieceNone {
			s.hist.Add(pc, mv, depth)
		}
	}
	if s.params.useKiller {
		s.hist.StoreKiller(pos.Distance(), mv)
	}
}

// searchQuiesc implements the quiescence recipe: forced check evasions
// when in check (no stand-pat is possible while in check), otherwise a
// stand-pat cutoff test followed by capture-only search restricted to
// moves with an MVV-LVA score of at least 10, discarding shallow
// recaptures landing in the mover's own half.
func (s *Search) searchQuiesc(alpha, beta int32) int32 {
	pos := s.pos

	s.stats.Nodes++
	if s.stats.Nodes&s.nodeCheckMask == 0 && s.timeUp() {
		s.stopFlag.Store(true)
	}
	if s.stopFlag.Load() {
		return alpha
	}

	// 1.
	if vl := pos.MateScore(); vl >= beta {
		return vl
	}

	// 2.
	if r := pos.RepStatus(1); r > 0 {
		return pos.RepValue(r)
	}

	// 3.
	if pos.Distance() >= position.LimitDepth {
		return pos.Evaluate()
	}

	inCheck := pos.InCheck()
	best := -position.MateValue
	var candidates []Move

	if inCheck {
		// 4.
		candidates = movegen.CheckEvasions(pos, s.hist.Value)
	} else {
		// 5.
		vl := pos.Evaluate()
		if vl >= beta {
			return vl
		}
		if vl > alpha {
			alpha = vl
		}
		best = vl
		candidates = movegen.QuiescenceCaptures(pos)
	}

	moved := false
	for _, mv := range candidates {
		if !pos.DoMove(mv) {
			continue
		}
		moved = true

		// 6.
		value := -s.searchQuiesc(-beta, -alpha)
		pos.UndoMove()

		if s.stopFlag.Load() {
			return best
		}

		if value > best {
			best = value
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			return value
		}
	}

	// 7.
	if inCheck && !moved {
		return pos.MateScore()
	}
	return best
}
