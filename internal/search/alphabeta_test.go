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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/xqengine/internal/movegen"
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// newTestPosition returns an empty board with Red to move, the same
// starting point every test in this file adds its own pieces onto.
func newTestPosition() *position.Position {
	return position.NewPosition()
}

// legalMoves wraps movegen.GetLegalMoves so the test file does not need to
// import movegen under its own name everywhere it just wants a move count.
func legalMoves(p *position.Position) []Move {
	return movegen.GetLegalMoves(p)
}

func TestSearchFindsMateInOne(t *testing.T) {
	p := newTestPosition()
	// Two red rooks against a bare black king in the palace center back
	// rank: one rook already covers the king's left file and the (7,4)
	// advance square from (6,4); swinging the second rook onto rank 3
	// checks and covers the remaining escape square (8,3) - the only
	// mate in one.
	p.AddPiece(MakeSquare(7, 3), MakePiece(Black, King), false)
	p.AddPiece(MakeSquare(6, 4), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(11, 5), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(6, 12), MakePiece(Red, King), false)

	s := NewSearch(4)
	best := s.StartSearch(p, Limits{Depth: 4})
	assert.NotEqual(t, NoMove, best)
	assert.Equal(t, MakeSquare(11, 5), best.From())
	assert.Equal(t, MakeSquare(11, 3), best.To())
	assert.Greater(t, s.Stats().BestValue, position.WinValue)
}

func TestSearchReturnsOnlyLegalMoveWithoutSearching(t *testing.T) {
	p := newTestPosition()
	// Red king in check from the rook down its own file; stepping back up
	// the file stays in check, and the left palace square is forbidden by
	// the flying-king rule against the black king on that file. Exactly
	// one legal move remains: sidestep right.
	p.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	p.AddPiece(MakeSquare(7, 9), MakePiece(Black, Rook), false)
	p.AddPiece(MakeSquare(6, 3), MakePiece(Black, King), false)
	p.RefreshInCheck()

	s := NewSearch(1)
	best := s.StartSearch(p, Limits{Depth: 1})
	assert.Equal(t, MakeSquare(7, 12), best.From())
	assert.Equal(t, MakeSquare(8, 12), best.To())
}

func TestSearchReturnsNoMoveInStalemate(t *testing.T) {
	p := newTestPosition()
	// Black to move with a bare cornered king: both palace squares it
	// could step to are covered by red rooks, but nothing attacks the
	// king itself. No legal move and no check: Xiangqi scores this as a
	// loss for Black, not a draw.
	p.AddPiece(MakeSquare(6, 3), MakePiece(Black, King), false)
	p.AddPiece(MakeSquare(7, 9), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(10, 4), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	p.ChangeSide()
	p.RefreshInCheck()

	legal := legalMoves(p)
	assert.Empty(t, legal, "test setup must leave Black with no legal move")
	assert.False(t, p.InCheck(), "test setup must not be check - this is stalemate, not mate")

	s := NewSearch(1)
	best := s.StartSearch(p, Limits{Depth: 1})
	assert.Equal(t, NoMove, best)
}
