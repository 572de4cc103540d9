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

package openingbook

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/xqengine/internal/fen"
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

func TestLoadRejectsMissingFile(t *testing.T) {
	b := NewBook()
	err := b.Load(filepath.Join(t.TempDir(), "does-not-exist.book"))
	assert.Error(t, err)
	assert.Zero(t, b.NumberOfEntries())
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	path := writeBookFile(t, "# a comment\n\n0000002a 7 12 7 11 5\n")
	b := NewBook()
	assert.NoError(t, b.Load(path))
	assert.Equal(t, 1, b.NumberOfEntries())
}

func TestLoadSkipsMalformedLineButKeepsGoodOnes(t *testing.T) {
	path := writeBookFile(t, "garbage line\n0000002a 7 12 7 11 5\n")
	b := NewBook()
	assert.NoError(t, b.Load(path))
	assert.Equal(t, 1, b.NumberOfEntries())
}

func TestResetClearsEntries(t *testing.T) {
	path := writeBookFile(t, "0000002a 7 12 7 11 5\n")
	b := NewBook()
	assert.NoError(t, b.Load(path))
	b.Reset()
	assert.Zero(t, b.NumberOfEntries())
}

// TestMoveFindsExactLockMatch builds a one-entry book keyed on the start
// position's own lock and checks the book returns exactly that move.
func TestMoveFindsExactLockMatch(t *testing.T) {
	pos, err := fen.Parse(fen.StartFen)
	assert.NoError(t, err)

	lock := uint32(pos.ZobristLock())
	from := MakeSquare(4, 10) // red cannon's home square
	to := MakeSquare(4, 9)    // one quiet step forward
	line := fmt.Sprintf("%08x %d %d %d %d 1\n", lock, from.File(), from.Rank(), to.File(), to.Rank())
	path := writeBookFile(t, line)

	b := NewBook()
	assert.NoError(t, b.Load(path))

	mv := b.Move(pos, rand.New(rand.NewSource(1)))
	assert.Equal(t, MakeMove(from, to), mv)
}

// TestMoveFiltersIllegalEntries checks that a book hit naming a move the
// current position cannot legally play is discarded rather than returned.
func TestMoveFiltersIllegalEntries(t *testing.T) {
	pos, err := fen.Parse(fen.StartFen)
	assert.NoError(t, err)

	lock := uint32(pos.ZobristLock())
	// A from==to "move" is never legal for any piece.
	line := fmt.Sprintf("%08x 3 3 3 3 1\n", lock)
	path := writeBookFile(t, line)

	b := NewBook()
	assert.NoError(t, b.Load(path))

	mv := b.Move(pos, rand.New(rand.NewSource(1)))
	assert.Equal(t, NoMove, mv)
}

// TestMoveFallsBackToMirroredPosition books only the mirrored position's
// lock (the position itself is deliberately asymmetric so its own lock
// differs from its mirror's); Move must still find the entry and mirror
// the move back onto the real board.
func TestMoveFallsBackToMirroredPosition(t *testing.T) {
	pos := position.NewPosition()
	pos.AddPiece(MakeSquare(7, 12), MakePiece(Red, King), false)
	pos.AddPiece(MakeSquare(4, 9), MakePiece(Red, Rook), false)
	pos.AddPiece(MakeSquare(6, 3), MakePiece(Black, King), false)

	mirrored := pos.Mirror()
	assert.NotEqual(t, pos.ZobristLock(), mirrored.ZobristLock(), "fixture must be left-right asymmetric")

	from := MakeSquare(10, 9)
	to := MakeSquare(10, 8)
	lock := uint32(mirrored.ZobristLock())
	line := fmt.Sprintf("%08x %d %d %d %d 1\n", lock, from.File(), from.Rank(), to.File(), to.Rank())
	path := writeBookFile(t, line)

	b := NewBook()
	assert.NoError(t, b.Load(path))

	mv := b.Move(pos, rand.New(rand.NewSource(1)))
	assert.Equal(t, MakeMove(from, to).Mirror(), mv)
}

// TestMoveReturnsNoMoveWhenLockIsAbsent checks an unbooked position falls
// through to NoMove instead of panicking or returning garbage.
func TestMoveReturnsNoMoveWhenLockIsAbsent(t *testing.T) {
	pos, err := fen.Parse(fen.StartFen)
	assert.NoError(t, err)

	path := writeBookFile(t, "00000001 7 12 7 11 1\n")
	b := NewBook()
	assert.NoError(t, b.Load(path))

	mv := b.Move(pos, rand.New(rand.NewSource(1)))
	assert.Equal(t, NoMove, mv)
}

// TestMoveWeightedSamplingRespectsZeroProbabilityEntries uses a heavily
// skewed two-entry book and checks the zero-weight entry is never drawn.
func TestMoveWeightedSamplingRespectsZeroProbabilityEntries(t *testing.T) {
	pos, err := fen.Parse(fen.StartFen)
	assert.NoError(t, err)

	lock := uint32(pos.ZobristLock())
	heavy := MakeMove(MakeSquare(4, 10), MakeSquare(4, 9))
	light := MakeMove(MakeSquare(7, 9), MakeSquare(7, 8))
	content := fmt.Sprintf("%08x %d %d %d %d 100\n%08x %d %d %d %d 0\n",
		lock, heavy.From().File(), heavy.From().Rank(), heavy.To().File(), heavy.To().Rank(),
		lock, light.From().File(), light.From().Rank(), light.To().File(), light.To().Rank())
	path := writeBookFile(t, content)

	b := NewBook()
	assert.NoError(t, b.Load(path))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		mv := b.Move(pos, rng)
		assert.Equal(t, heavy, mv)
	}
}

func writeBookFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.book")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
