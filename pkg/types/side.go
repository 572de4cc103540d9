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

// Side represents which player is to move. There are exactly two sides
// in Xiangqi: Red (the first side, moves first from the bottom of the
// board) and Black (the second side).
type Side uint8

// Constants for each side.
const (
	Red        Side = 0
	Black      Side = 1
	SideLength int  = 2
)

// Flip returns the opposite side.
func (sd Side) Flip() Side {
	return sd ^ 1
}

// IsValid reports whether sd is a valid side value.
func (sd Side) IsValid() bool {
	return sd <= 1
}

// String returns "w" for Red (the first side, moves first) or "b" for
// Black, matching the FEN side-to-move field.
func (sd Side) String() string {
	switch sd {
	case Red:
		return "w"
	case Black:
		return "b"
	default:
		panic(fmt.Sprintf("invalid side %d", sd))
	}
}
