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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/xqengine/internal/history"
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

func TestMovePickerYieldsHashMoveFirst(t *testing.T) {
	p := position.NewPosition()
	p.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	p.AddPiece(MakeSquare(7, 9), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(7, 3), MakePiece(Black, King), false)

	// The hash move keeps the rook on the shared file: sliding it off the
	// file would expose the flying-king attack and fail the trial DoMove.
	hashMove := MakeMove(MakeSquare(7, 9), MakeSquare(7, 6))
	mp := NewMovePicker(p, history.NewHistory(), 0, hashMove)

	mv, ok := mp.Next()
	assert.True(t, ok)
	assert.Equal(t, hashMove, mv)
	p.UndoMove()
}

func TestMovePickerNeverRepeatsHashOrKillerInRest(t *testing.T) {
	p := position.NewPosition()
	p.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	p.AddPiece(MakeSquare(7, 9), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(7, 3), MakePiece(Black, King), false)

	hashMove := MakeMove(MakeSquare(7, 9), MakeSquare(4, 9))
	h := history.NewHistory()
	h.StoreKiller(0, MakeMove(MakeSquare(7, 9), MakeSquare(5, 9)))
	mp := NewMovePicker(p, h, 0, hashMove)

	seen := map[Move]int{}
	for {
		mv, ok := mp.Next()
		if !ok {
			break
		}
		seen[mv]++
		p.UndoMove()
	}
	for mv, count := range seen {
		assert.Equal(t, 1, count, "move %s should be yielded exactly once", mv)
	}
}

func TestMovePickerInCheckSetsSingleReply(t *testing.T) {
	// One red rook checks the black king along its file, a second covers
	// one of the two sideways escape squares: exactly one legal reply.
	p := position.NewPosition()
	p.AddPiece(MakeSquare(7, 3), MakePiece(Black, King), false)
	p.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	p.AddPiece(MakeSquare(7, 9), MakePiece(Red, Rook), false)
	p.AddPiece(MakeSquare(6, 9), MakePiece(Red, Rook), false)
	p.ChangeSide()
	p.RefreshInCheck()

	assert.True(t, p.InCheck())
	mp := NewMovePicker(p, history.NewHistory(), 0, NoMove)

	count := 0
	for {
		mv, ok := mp.Next()
		if !ok {
			break
		}
		assert.Equal(t, MakeMove(MakeSquare(7, 3), MakeSquare(8, 3)), mv)
		count++
		p.UndoMove()
	}
	assert.Equal(t, 1, count)
	assert.True(t, mp.SingleReply())
}
