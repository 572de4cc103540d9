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

package types

// ValueType tags what relation a transposition table entry's score bears
// to the true minimax value: an exact score, or a bound produced by a
// cutoff during alpha-beta.
type ValueType uint8

const (
	// NoValueType marks an empty/unset transposition table entry.
	NoValueType ValueType = iota
	// AlphaType is an upper bound: the true value is <= the stored score.
	AlphaType
	// BetaType is a lower bound: the true value is >= the stored score
	// (a beta cutoff occurred, produced by a fail-high move).
	BetaType
	// ExactType is the true minimax value (a PV node).
	ExactType
)

// String renders the bound kind for diagnostics.
func (vt ValueType) String() string {
	switch vt {
	case AlphaType:
		return "ALPHA"
	case BetaType:
		return "BETA"
	case ExactType:
		return "EXACT"
	default:
		return "NONE"
	}
}
