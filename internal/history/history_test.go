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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/xqengine/pkg/types"
)

func TestIndexFitsTableSize(t *testing.T) {
	mv := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))
	for pt := King; pt < PieceTypeLength; pt++ {
		pc := MakePiece(Red, pt)
		idx := Index(pc, mv)
		assert.True(t, idx >= 0 && idx < tableSize)
	}
}

func TestAddAccumulatesDepthSquared(t *testing.T) {
	h := NewHistory()
	pc := MakePiece(Red, Rook)
	mv := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))

	h.Add(pc, mv, 3)
	assert.EqualValues(t, 9, h.Value(pc, mv))

	h.Add(pc, mv, 4)
	assert.EqualValues(t, 9+16, h.Value(pc, mv))
}

func TestAddIgnoresNonPositiveDepth(t *testing.T) {
	h := NewHistory()
	pc := MakePiece(Red, Cannon)
	mv := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))

	h.Add(pc, mv, 0)
	h.Add(pc, mv, -1)
	assert.Zero(t, h.Value(pc, mv))
}

func TestStoreKillerShiftsFirstSlot(t *testing.T) {
	h := NewHistory()
	mv1 := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))
	mv2 := MakeMove(MakeSquare(4, 9), MakeSquare(4, 6))

	h.StoreKiller(3, mv1)
	first, second := h.Killers(3)
	assert.Equal(t, mv1, first)
	assert.Equal(t, NoMove, second)

	h.StoreKiller(3, mv2)
	first, second = h.Killers(3)
	assert.Equal(t, mv2, first)
	assert.Equal(t, mv1, second)
}

func TestStoreKillerNoOpWhenAlreadyFirst(t *testing.T) {
	h := NewHistory()
	mv1 := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))
	mv2 := MakeMove(MakeSquare(4, 9), MakeSquare(4, 6))

	h.StoreKiller(3, mv1)
	h.StoreKiller(3, mv2)
	h.StoreKiller(3, mv2)

	first, second := h.Killers(3)
	assert.Equal(t, mv2, first)
	assert.Equal(t, mv1, second)
}

func TestClearResetsBothTables(t *testing.T) {
	h := NewHistory()
	pc := MakePiece(Black, Knight)
	mv := MakeMove(MakeSquare(7, 9), MakeSquare(7, 5))
	h.Add(pc, mv, 5)
	h.StoreKiller(2, mv)

	h.Clear()

	assert.Zero(t, h.Value(pc, mv))
	first, second := h.Killers(2)
	assert.Equal(t, NoMove, first)
	assert.Equal(t, NoMove, second)
}
