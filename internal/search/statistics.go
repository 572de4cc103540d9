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

package search

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/frankkopp/xqengine/pkg/types"
)

var out = message.NewPrinter(language.German)

// Statistics holds the counters and the best line found while
// StartSearch runs one search, reported to the search log and to the
// UCCI command loop's "info" output.
type Statistics struct {
	StartTime time.Time
	Nodes     uint64

	CurrentDepth     int
	CurrentBestMove  Move
	CurrentBestValue int32

	BestMove  Move
	BestValue int32

	LastSearchTime time.Duration
}

// Nps returns nodes searched per second of wall-clock time elapsed so
// far since StartSearch began.
func (s *Statistics) Nps() uint64 {
	elapsed := time.Since(s.StartTime)
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / elapsed.Seconds())
}

// String renders a one-line locale-formatted search report.
func (s *Statistics) String() string {
	return out.Sprintf("depth=%d nodes=%d nps=%d bestmove=%s value=%d time=%s",
		s.CurrentDepth, s.Nodes, s.Nps(), s.BestMove.StringUci(), s.BestValue, s.LastSearchTime)
}
