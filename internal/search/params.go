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

import "github.com/frankkopp/xqengine/internal/config"

// This file holds data structures supporting the search with parameters
// too specific to searchFull's own flow to inline there - currently just
// the config-driven feature toggles.

// searchParams snapshots the config-driven search toggles once at the
// start of StartSearch, so a config reload mid-search (e.g. triggered by
// the command loop) never changes behavior partway through a call.
type searchParams struct {
	useQuiescence bool

	useKiller  bool
	useHistory bool

	useTT      bool
	useTTMove  bool
	useTTValue bool

	useNullMove      bool
	nullMoveMinDepth int
}

// newSearchParams reads the current config.Settings.Search values.
func newSearchParams() searchParams {
	sc := config.Settings.Search
	return searchParams{
		useQuiescence:    sc.UseQuiescence,
		useKiller:        sc.UseKiller,
		useHistory:       sc.UseHistory,
		useTT:            sc.UseTT,
		useTTMove:        sc.UseTTMove,
		useTTValue:       sc.UseTTValue,
		useNullMove:      sc.UseNullMove,
		nullMoveMinDepth: sc.NullMoveMinDepth,
	}
}
