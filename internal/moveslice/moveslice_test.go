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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/xqengine/pkg/types"
)

var (
	mv1 = MakeMove(MakeSquare(7, 9), MakeSquare(7, 6))
	mv2 = MakeMove(MakeSquare(4, 10), MakeSquare(4, 9))
	mv3 = MakeMove(MakeSquare(3, 9), MakeSquare(3, 8))
)

func TestNew(t *testing.T) {
	ms := NewMoveSlice(48)
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, 48, ms.Cap())
}

func TestPushBackPopBack(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(mv1)
	ms.PushBack(mv2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, mv1, ms.Front())
	assert.Equal(t, mv2, ms.Back())

	assert.Equal(t, mv2, ms.PopBack())
	assert.Equal(t, 1, ms.Len())
}

func TestAtAndSet(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(mv1)
	ms.PushBack(mv2)
	assert.Equal(t, mv2, ms.At(1))

	ms.Set(1, mv3)
	assert.Equal(t, mv3, ms.At(1))
}

func TestFilter(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(mv1)
	ms.PushBack(mv2)
	ms.PushBack(mv3)

	ms.Filter(func(i int) bool { return ms.At(i) != mv2 })
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, mv1, ms.At(0))
	assert.Equal(t, mv3, ms.At(1))
}

func TestCloneAndEquals(t *testing.T) {
	ms := NewMoveSlice(4)
	ms.PushBack(mv1)
	ms.PushBack(mv2)

	clone := ms.Clone()
	assert.True(t, ms.Equals(clone))

	clone.Set(0, mv3)
	assert.False(t, ms.Equals(clone))
}

func TestClearKeepsCapacity(t *testing.T) {
	ms := NewMoveSlice(8)
	ms.PushBack(mv1)
	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, 8, ms.Cap())
}

func TestStringUci(t *testing.T) {
	ms := NewMoveSlice(2)
	ms.PushBack(mv1)
	ms.PushBack(mv2)
	assert.Equal(t, mv1.StringUci()+" "+mv2.StringUci(), ms.StringUci())
}
