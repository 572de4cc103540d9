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

// Package fen parses and renders the board-plus-side-to-move
// serialization used by the UCCI "position fen ..." command and by
// cmd/xqengine's -fen flag: ranks separated by '/', run-lengths of empty
// squares, piece letters K(ing) A(dvisor) B(ishop) N(knight) R(ook)
// C(annon) P(awn) - exactly the letters pkg/types.PieceType.String
// already returns - and a trailing side-to-move letter. Any further
// fields a caller appends are accepted on input and simply dropped;
// String never emits any.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// StartFen is the standard Xiangqi starting position.
const StartFen = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

// pieceLetters maps a lower-cased FEN piece letter to its type. 'e' is a
// synonym for 'b' (Bishop/Elephant) and 'h' a synonym for 'n' (kNight/Horse),
// the two alternate letter sets Xiangqi FEN readers commonly accept.
var pieceLetters = map[byte]PieceType{
	'k': King, 'a': Advisor, 'b': Bishop, 'e': Bishop, 'n': Knight, 'h': Knight, 'r': Rook, 'c': Cannon, 'p': Pawn,
}

// Parse builds a Position from a FEN string: the board field is
// mandatory, the side-to-move field defaults to "w" (Red) when absent,
// and any further fields are accepted but ignored - Xiangqi has no
// castling or en passant, and Position keeps no move clock: it detects
// repetitions (Position.RepStatus) from its own move history instead.
func Parse(s string) (*position.Position, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("fen: empty input")
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 10 {
		return nil, fmt.Errorf("fen: expected 10 ranks, got %d", len(ranks))
	}

	p := position.NewPosition()
	for i, rankStr := range ranks {
		rank := uint8(RankTop + i)
		file := uint8(FileLeft)
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '9' {
				n, _ := strconv.Atoi(string(c))
				file += uint8(n)
				continue
			}
			lower := c
			if lower >= 'A' && lower <= 'Z' {
				lower += 'a' - 'A'
			}
			pt, ok := pieceLetters[lower]
			if !ok {
				return nil, fmt.Errorf("fen: unrecognized piece letter %q", string(c))
			}
			if file > FileRight {
				return nil, fmt.Errorf("fen: rank %d overruns the board", i+1)
			}
			side := Red
			if c >= 'a' && c <= 'z' {
				side = Black
			}
			p.AddPiece(MakeSquare(file, rank), MakePiece(side, pt), false)
			file++
		}
		if file != FileRight+1 {
			return nil, fmt.Errorf("fen: rank %d has %d files, want 9", i+1, file-FileLeft)
		}
	}

	if len(fields) > 1 && fields[1] == "b" {
		p.ChangeSide()
	}
	p.RefreshInCheck()

	return p, nil
}

// String renders p back into FEN form: board field, a space, and the
// side-to-move letter. Trailing fields are never emitted - Parse never
// reads them back out of its own output.
func String(p *position.Position) string {
	var b strings.Builder
	for rank := uint8(RankTop); rank <= RankBottom; rank++ {
		empty := 0
		for file := uint8(FileLeft); file <= FileRight; file++ {
			pc := p.Piece(MakeSquare(file, rank))
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(pc.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank != RankBottom {
			b.WriteByte('/')
		}
	}
	b.WriteByte(' ')
	b.WriteString(p.SideToMove().String())
	return b.String()
}
