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

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/xqengine/pkg/types"
)

func TestResizeStartsEmpty(t *testing.T) {
	tt := NewTtTable(1)
	assert.Zero(t, tt.Len())
	assert.Zero(t, tt.Hashfull())
}

func TestRecordThenProbeExact(t *testing.T) {
	tt := NewTtTable(1)
	mv := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))

	tt.Record(0x1234, ExactType, 55, 4, mv, 0)
	score, hashMove := tt.Probe(0x1234, -1000, 1000, 4, 0)
	assert.Equal(t, int32(55), score)
	assert.Equal(t, mv, hashMove)
	assert.EqualValues(t, 1, tt.Len())
}

func TestProbeMissReturnsNoInformation(t *testing.T) {
	tt := NewTtTable(1)
	score, hashMove := tt.Probe(0xdead, -1000, 1000, 4, 0)
	assert.EqualValues(t, NoInformation, score)
	assert.Equal(t, NoMove, hashMove)
}

func TestProbeRejectsShallowerEntry(t *testing.T) {
	tt := NewTtTable(1)
	mv := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))
	tt.Record(0x1234, ExactType, 55, 2, mv, 0)

	score, _ := tt.Probe(0x1234, -1000, 1000, 6, 0)
	assert.EqualValues(t, NoInformation, score, "an entry searched to less depth than requested must not answer the probe")
}

func TestProbeAlphaAndBetaBoundsOnlyCutoffWhenOutsideWindow(t *testing.T) {
	tt := NewTtTable(1)
	mv := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))

	tt.Record(0x1111, AlphaType, 10, 4, mv, 0)
	score, _ := tt.Probe(0x1111, 20, 1000, 4, 0)
	assert.Equal(t, int32(10), score, "an alpha (upper) bound at or below the probe's alpha is usable")

	tt.Record(0x2222, BetaType, 30, 4, mv, 0)
	score, _ = tt.Probe(0x2222, -1000, 20, 4, 0)
	assert.Equal(t, int32(30), score, "a beta (lower) bound at or above the probe's beta is usable")

	tt.Record(0x3333, AlphaType, 10, 4, mv, 0)
	score, _ = tt.Probe(0x3333, 5, 1000, 4, 0)
	assert.EqualValues(t, NoInformation, score, "an alpha bound above the probe's own alpha proves nothing")
}

func TestRecordPreservesDeeperEntryOnIndexCollision(t *testing.T) {
	tt := NewTtTable(1)
	mask := tt.hashKeyMask
	lockA := uint64(0x10) &^ mask // both locks agree on the masked bits...
	lockB := lockA | (mask + 1)   // ...but differ above them.

	deepMove := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))
	tt.Record(lockA, ExactType, 100, 10, deepMove, 0)

	shallowMove := MakeMove(MakeSquare(3, 12), MakeSquare(3, 11))
	tt.Record(lockB, ExactType, 5, 2, shallowMove, 0)

	score, hashMove := tt.Probe(lockA, -1000, 1000, 10, 0)
	assert.Equal(t, int32(100), score, "a shallower collision must not evict a deeper entry")
	assert.Equal(t, deepMove, hashMove)
}

func TestMateScoreSurvivesDistanceAdjustment(t *testing.T) {
	tt := NewTtTable(1)
	mv := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))

	const matedAtDistance3 = -MateValue + 3
	tt.Record(0x5555, ExactType, matedAtDistance3, 4, mv, 3)

	score, _ := tt.Probe(0x5555, -1000, 1000, 4, 3)
	assert.Equal(t, int32(matedAtDistance3), score, "probing at the same distance it was stored must round-trip exactly")
}

func TestClearEmptiesTable(t *testing.T) {
	tt := NewTtTable(1)
	mv := MakeMove(MakeSquare(4, 12), MakeSquare(4, 11))
	tt.Record(0x1234, ExactType, 55, 4, mv, 0)
	assert.NotZero(t, tt.Len())

	tt.Clear()
	assert.Zero(t, tt.Len())
	score, _ := tt.Probe(0x1234, -1000, 1000, 4, 0)
	assert.EqualValues(t, NoInformation, score)
}
