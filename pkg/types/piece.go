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

// PieceType is the piece kind, independent of side.
type PieceType uint8

// The seven Xiangqi piece types.
const (
	King PieceType = iota
	Advisor
	Bishop
	Knight
	Rook
	Cannon
	Pawn
	PieceTypeLength
)

// String returns the uppercase (Red) FEN letter for a piece type.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "K"
	case Advisor:
		return "A"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Rook:
		return "R"
	case Cannon:
		return "C"
	case Pawn:
		return "P"
	default:
		return "?"
	}
}

// Piece is a single board byte: 0 for empty, or a side tag plus a
// PieceType. The side tag is bit pattern 0b0000_1000 for Red (the first
// side) and 0b0001_0000 for Black (the second side), so "does this piece
// belong to side S" is a single bitwise AND against SideTag(S), and
// "is this piece exactly the opponent's P" is a single equality test.
type Piece uint8

// PieceNone is the empty-square value.
const PieceNone Piece = 0

const (
	redSideTag   uint8 = 0b0000_1000
	blackSideTag uint8 = 0b0001_0000
)

// SideTag returns the side marker added to a PieceType to build a Piece.
func SideTag(sd Side) uint8 {
	if sd == Red {
		return redSideTag
	}
	return blackSideTag
}

// OppSideTag returns the opponent's side marker.
func OppSideTag(sd Side) uint8 {
	return SideTag(sd.Flip())
}

// MakePiece builds a Piece from a side and a piece type.
func MakePiece(sd Side, pt PieceType) Piece {
	return Piece(SideTag(sd)) + Piece(pt)
}

// SideOf returns the side owning p. p must not be PieceNone.
func (p Piece) SideOf() Side {
	if uint8(p)&blackSideTag != 0 {
		return Black
	}
	return Red
}

// TypeOf returns the piece type of p, stripping the side tag.
func (p Piece) TypeOf() PieceType {
	if uint8(p)&blackSideTag != 0 {
		return PieceType(uint8(p) - blackSideTag)
	}
	return PieceType(uint8(p) - redSideTag)
}

// BelongsTo reports whether p is a non-empty piece owned by sd - the
// single bitwise-AND test the encoding was designed for.
func (p Piece) BelongsTo(sd Side) bool {
	return uint8(p)&SideTag(sd) != 0
}

// String renders the piece as its FEN letter (uppercase for Red,
// lowercase for Black), or "." for an empty square.
func (p Piece) String() string {
	if p == PieceNone {
		return "."
	}
	s := p.TypeOf().String()
	if p.SideOf() == Black {
		return fmt.Sprintf("%c", s[0]+('a'-'A'))
	}
	return s
}
