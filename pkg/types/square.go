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

import "fmt"

// Square is a single square of the board packed into one byte as
// "yyyy xxxx": the high nibble is the rank, the low nibble is the file.
// Squares outside the playable board are representable (e.g. Square(0))
// so that delta arithmetic (adding a piece's step offset to a Square) never
// needs to branch - callers check OnBoard/InPalace after the add.
//
// Valid ranks occupy 3..12 (ten ranks), valid files 3..11 (nine files),
// giving the playable board a 3-square border on every side inside the
// 16x16 byte space this encoding spans.
type Square uint8

const (
	// FileLeft and FileRight are the playable file bounds.
	FileLeft  = 3
	FileRight = 11
	// RankTop and RankBottom are the playable rank bounds. Rank "top" is
	// Black's back rank, "bottom" is Red's.
	RankTop    = 3
	RankBottom = 12

	// SqNone is the sentinel "no square" value; it is also File/Rank 0,
	// which the on-board table always marks invalid.
	SqNone Square = 0
)

// MakeSquare builds a Square from a file and rank, both in the packed
// byte range (not pre-validated against the board bounds).
func MakeSquare(file, rank uint8) Square {
	return Square(file + (rank << 4))
}

// File returns the low-nibble file component.
func (sq Square) File() uint8 {
	return uint8(sq) & 0x0f
}

// Rank returns the high-nibble rank component.
func (sq Square) Rank() uint8 {
	return uint8(sq) >> 4
}

// Flip mirrors a square across the river (rank flip) and the central
// file (file flip) simultaneously - i.e. point-reflection through the
// board center. This is the "254 - sq" identity used to share one
// piece-square table between both sides.
func (sq Square) Flip() Square {
	return Square(254 - uint8(sq))
}

// MirrorFile mirrors a square left-right only (same rank, file flipped),
// used by Position.Mirror and the opening book's mirrored lookup.
func (sq Square) MirrorFile() Square {
	return MakeSquare(14-sq.File(), sq.Rank())
}

// String renders a square as "(file,rank)" in the raw packed coordinates
// (file 3..11, rank 3..12); this is a diagnostic form only. UCCI
// coordinates are produced by Move.StringUci and internal/ucci.
func (sq Square) String() string {
	return fmt.Sprintf("(%d,%d)", sq.File(), sq.Rank())
}
