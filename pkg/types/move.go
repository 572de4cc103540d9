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

// Move is a 16-bit value carrying the source square in the low byte and
// the destination square in the high byte. NoMove (zero) is the sentinel
// "no move" value, which is why Square(0) (SqNone) is never a valid
// source or destination of a real move.
type Move uint16

// NoMove is the sentinel "no move" value.
const NoMove Move = 0

// MakeMove packs a source and destination square into a Move.
func MakeMove(src, dst Square) Move {
	return Move(src) | Move(dst)<<8
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & 0xff)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 8)
}

// Mirror returns the left-right mirror of m (both endpoints mirrored),
// used to translate an opening book hit found under a mirrored position
// back into a move on the actual board.
func (m Move) Mirror() Move {
	return MakeMove(m.From().MirrorFile(), m.To().MirrorFile())
}

// String renders the move as the engine's internal "(fr,rk)-(fr,rk)" form.
// UCCI move text (file a..i, rank 0..9 counted from Red's side) is
// produced by StringUci.
func (m Move) String() string {
	if m == NoMove {
		return "NoMove"
	}
	return fmt.Sprintf("%s-%s", m.From(), m.To())
}

// StringUci renders the move as four-character UCCI text: file 'a'..'i'
// then rank '0'..'9' counted from Red's bottom rank, for the source and
// then the destination square (e.g. "i7i9").
func (m Move) StringUci() string {
	if m == NoMove {
		return "0000"
	}
	from, to := m.From(), m.To()
	return fmt.Sprintf("%c%d%c%d",
		'a'+from.File()-FileLeft, RankBottom-from.Rank(),
		'a'+to.File()-FileLeft, RankBottom-to.Rank())
}
