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

// Package search implements iterative-deepening principal variation
// search over internal/position, backed by internal/transpositiontable
// and internal/history for move ordering and caching.
package search

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/xqengine/internal/history"
	myLogging "github.com/frankkopp/xqengine/internal/logging"
	"github.com/frankkopp/xqengine/internal/position"
	"github.com/frankkopp/xqengine/internal/transpositiontable"
	"github.com/frankkopp/xqengine/internal/util"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// Search owns one transposition table, reused across StartSearch calls
// within the same game, and one history/killer table, which StartSearch
// clears at the start of every search; the Position itself is not shared - StartSearch clones
// the caller's Position, leaving the caller's copy untouched.
type Search struct {
	log       *logging.Logger
	searchLog *logging.Logger

	tt   *transpositiontable.TtTable
	hist *history.History

	// sem guards against a second StartSearch call overlapping the first.
	// Nothing in this engine drives concurrent searches today; the rail
	// makes an overlapping call wait for the first instead of corrupting
	// the stacks.
	sem *semaphore.Weighted

	pos    *position.Position
	params searchParams
	stats  Statistics

	// stopFlag is atomic because Stop is the one Search method a caller
	// may invoke from another goroutine while StartSearch is running.
	stopFlag *util.Bool
	deadline time.Time

	// nodeCheckMask bounds how often the deadline clock is sampled inside
	// recursion: every nodeCheckMask+1 nodes.
	nodeCheckMask uint64
}

// NewSearch creates a Search with a transposition table sized ttSizeMb
// megabytes.
func NewSearch(ttSizeMb int) *Search {
	return &Search{
		log:           myLogging.GetLog(),
		searchLog:     myLogging.GetSearchLog(),
		tt:            transpositiontable.NewTtTable(ttSizeMb),
		hist:          history.NewHistory(),
		sem:           semaphore.NewWeighted(1),
		stopFlag:      util.NewBool(false),
		nodeCheckMask: 4095,
	}
}

// Stats returns the statistics of the most recently completed (or
// currently running) search.
func (s *Search) Stats() Statistics {
	return s.stats
}

// Tt returns the Search's transposition table, for diagnostics (e.g. the
// UCCI loop's "d" debug command) and tests.
func (s *Search) Tt() *transpositiontable.TtTable {
	return s.tt
}

// StartSearch searches a clone of pos under limits and returns the best
// move found, or NoMove if pos has no legal move at all. A concurrent
// second call blocks until the first returns.
func (s *Search) StartSearch(pos *position.Position, limits Limits) Move {
	if err := s.sem.Acquire(context.Background(), 1); err != nil {
		s.log.Errorf("search could not acquire semaphore: %v", err)
		return NoMove
	}
	defer s.sem.Release(1)

	s.pos = pos.Clone()
	s.params = newSearchParams()
	s.hist.Clear()
	s.stats = Statistics{StartTime: time.Now()}
	s.stopFlag.Store(false)
	s.deadline = computeDeadline(s.stats.StartTime, limits, s.pos.SideToMove())

	depthLimit := limits.Depth
	if depthLimit <= 0 || depthLimit > position.LimitDepth {
		depthLimit = position.LimitDepth
	}

	best := s.searchMain(depthLimit)
	s.stats.LastSearchTime = time.Since(s.stats.StartTime)
	s.searchLog.Info(s.stats.String())
	return best
}

// Search is the engine's simplest external entry point: search a clone of
// pos for at most timeMs milliseconds or maxDepth plies, whichever comes
// first, and return the best move found (NoMove if pos has no legal
// move). It is StartSearch with a MoveTime/Depth Limits built for it -
// the richer Limits-based API exists for the UCCI command loop's fuller
// per-side clock/increment bookkeeping.
func (s *Search) Search(pos *position.Position, timeMs int, maxDepth int) Move {
	limits := Limits{Depth: maxDepth}
	if timeMs > 0 {
		limits.MoveTime = time.Duration(timeMs) * time.Millisecond
		limits.TimeControl = true
	} else {
		limits.Infinite = true
	}
	return s.StartSearch(pos, limits)
}

// computeDeadline derives a wall-clock deadline from limits: MoveTime
// wins outright if set; otherwise, under time control, a simple fraction
// of the side to move's remaining clock plus its increment; otherwise
// (Infinite, or no time control at all) the zero Time, meaning no
// deadline - searchMain then runs to depthLimit or until told to Stop.
func computeDeadline(start time.Time, limits Limits, side Side) time.Time {
	if limits.MoveTime > 0 {
		return start.Add(limits.MoveTime)
	}
	if !limits.TimeControl || limits.Infinite {
		return time.Time{}
	}

	remaining, inc := limits.RedTime, limits.RedInc
	if side == Black {
		remaining, inc = limits.BlackTime, limits.BlackInc
	}
	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	budget := remaining/time.Duration(movesToGo) + inc
	if budget <= 0 {
		return time.Time{}
	}
	return start.Add(budget)
}

// Stop requests that the running search return the best move found so
// far at the next opportunity - checked between iterative-deepening
// iterations and every nodeCheckMask+1 nodes inside recursion.
func (s *Search) Stop() {
	s.stopFlag.Store(true)
}

func (s *Search) timeUp() bool {
	if s.deadline.IsZero() {
		return false
	}
	return time.Now().After(s.deadline)
}
