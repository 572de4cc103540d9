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

package position

import (
	. "github.com/frankkopp/xqengine/pkg/types"
)

// Geometry and scoring tables, precomputed once at package init and never
// written again. onBoardTable/inPalaceTable/legalSpanTable/knightPinTable
// are built programmatically from the same deltas movegen.Generate walks, so
// there is exactly one source of truth for "what is a king/advisor step".
// pieceValueTable is transcribed data (piece-square tables) and has no
// shorter derivation.
var (
	onBoardTable    [256]bool
	inPalaceTable   [256]bool
	legalSpanTable  [512]uint8
	knightPinTable  [512]int8
)

// kingDelta, advisorDelta are the one-step offsets for king/advisor moves
// and, reused, for probing a rook/cannon's sliding directions and a
// knight's blocking "leg" square.
var kingDelta = [4]int16{-16, -1, 1, 16}
var advisorDelta = [4]int16{-17, -15, 15, 17}

// knightDelta holds, for each leg direction in kingDelta, the two
// destination squares a knight can reach over that leg.
var knightDelta = [4][2]int16{{-33, -31}, {-18, 14}, {-14, 18}, {31, 33}}

// knightCheckDelta holds, for each diagonal leg direction in advisorDelta,
// the two squares an opposing knight gives check from over that leg - the
// same geometry as knightDelta but anchored at the king instead of the
// knight.
var knightCheckDelta = [4][2]int16{{-33, -18}, {-31, -14}, {14, 31}, {18, 33}}

// mvvValue is indexed by PieceType (King..Pawn) for MVV-LVA capture scoring.
var mvvValue = [8]int32{50, 10, 10, 30, 40, 30, 20, 0}

func init() {
	for file := uint8(0); file < 16; file++ {
		for rank := uint8(0); rank < 16; rank++ {
			sq := MakeSquare(file, rank)
			onBoardTable[sq] = file >= FileLeft && file <= FileRight && rank >= RankTop && rank <= RankBottom
			inPalaceTable[sq] = file >= 6 && file <= 8 && (rank >= 3 && rank <= 5 || rank >= 10 && rank <= 12)
		}
	}

	for i := range legalSpanTable {
		delta := int16(i) - 256
		for _, d := range kingDelta {
			if d == delta {
				legalSpanTable[i] = 1
			}
		}
		for _, d := range advisorDelta {
			if d == delta {
				legalSpanTable[i] = 2
			}
		}
		for _, d := range advisorDelta {
			if 2*d == delta {
				legalSpanTable[i] = 3
			}
		}
	}

	for i := range knightPinTable {
		delta := int16(i) - 256
		for leg, dsts := range knightDelta {
			for _, d := range dsts {
				if d == delta {
					knightPinTable[i] = int8(kingDelta[leg])
				}
			}
		}
	}
}

// onBoard reports whether sq lies within the playable 9x10 board.
func onBoard(sq Square) bool {
	return onBoardTable[sq]
}

// inPalace reports whether sq lies within either side's 3x3 palace.
func inPalace(sq Square) bool {
	return inPalaceTable[sq]
}

// kingSpan reports whether src->dst is a one-square king/rook-like step.
func kingSpan(src, dst Square) bool {
	return legalSpanTable[int16(dst)-int16(src)+256] == 1
}

// advisorSpan reports whether src->dst is a one-square diagonal step.
func advisorSpan(src, dst Square) bool {
	return legalSpanTable[int16(dst)-int16(src)+256] == 2
}

// bishopSpan reports whether src->dst is a two-square diagonal step.
func bishopSpan(src, dst Square) bool {
	return legalSpanTable[int16(dst)-int16(src)+256] == 3
}

// bishopPin returns the diagonal midpoint between src and dst, which must
// be empty for the bishop move to be legal.
func bishopPin(src, dst Square) Square {
	return Square((uint16(src) + uint16(dst)) >> 1)
}

// knightPin returns the square that must be empty (the knight's "leg")
// for src->dst to be a legal knight move, or src itself if dst is not
// reachable by any knight leg from src.
func knightPin(src, dst Square) Square {
	delta := int16(dst) - int16(src)
	return Square(int16(src) + int16(knightPinTable[delta+256]))
}

// squareForward returns the one-step-forward square for side sd: toward
// decreasing rank for Red (side 0), increasing rank for Black (side 1).
func squareForward(sq Square, sd Side) Square {
	return Square(uint8(sq) - 16 + (uint8(sd) << 5))
}

// homeHalf reports whether sq is on sd's own side of the river.
func homeHalf(sq Square, sd Side) bool {
	return (uint8(sq) & 0x80) != (uint8(sd) << 7)
}

// awayHalf reports whether sq is across the river from sd.
func awayHalf(sq Square, sd Side) bool {
	return (uint8(sq) & 0x80) == (uint8(sd) << 7)
}

// sameHalf reports whether src and dst are on the same side of the river.
func sameHalf(src, dst Square) bool {
	return (uint8(src)^uint8(dst))&0x80 == 0
}

// sameRank reports whether src and dst share a rank.
func sameRank(src, dst Square) bool {
	return (uint8(src)^uint8(dst))&0xf0 == 0
}

// sameFile reports whether src and dst share a file.
func sameFile(src, dst Square) bool {
	return (uint8(src)^uint8(dst))&0x0f == 0
}

// pieceValueTable holds per-square piece-square-table values for the
// first side, indexed [pieceType][square]; King/Advisor/Bishop share a
// single table the way the geometry they're confined to (the palace and
// the home half) is shared. Black's score for the same piece type on
// square sq is looked up at sq.Flip() against the very same table.
var pieceValueTable = [5][256]int32{
	{ // King, Advisor, Bishop
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 9, 9, 9, 11, 13, 11, 9, 9, 9, 0, 0, 0, 0,
		0, 0, 0, 19, 24, 34, 42, 44, 42, 34, 24, 19, 0, 0, 0, 0,
		0, 0, 0, 19, 24, 32, 37, 37, 37, 32, 24, 19, 0, 0, 0, 0,
		0, 0, 0, 19, 23, 27, 29, 30, 29, 27, 23, 19, 0, 0, 0, 0,
		0, 0, 0, 14, 18, 20, 27, 29, 27, 20, 18, 14, 0, 0, 0, 0,
		0, 0, 0, 7, 0, 13, 0, 16, 0, 13, 0, 7, 0, 0, 0, 0,
		0, 0, 0, 7, 0, 7, 0, 15, 0, 7, 0, 7, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 2, 2, 2, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 11, 15, 11, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // Knight
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 20, 0, 0, 0, 20, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 18, 0, 0, 20, 23, 20, 0, 0, 18, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 23, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 20, 20, 0, 20, 20, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // Rook
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 90, 90, 90, 96, 90, 96, 90, 90, 90, 0, 0, 0, 0,
		0, 0, 0, 90, 96, 103, 97, 94, 97, 103, 96, 90, 0, 0, 0, 0,
		0, 0, 0, 92, 98, 99, 103, 99, 103, 99, 98, 92, 0, 0, 0, 0,
		0, 0, 0, 93, 108, 100, 107, 100, 107, 100, 108, 93, 0, 0, 0, 0,
		0, 0, 0, 90, 100, 99, 103, 104, 103, 99, 100, 90, 0, 0, 0, 0,
		0, 0, 0, 90, 98, 101, 102, 103, 102, 101, 98, 90, 0, 0, 0, 0,
		0, 0, 0, 92, 94, 98, 95, 98, 95, 98, 94, 92, 0, 0, 0, 0,
		0, 0, 0, 93, 92, 94, 95, 92, 95, 94, 92, 93, 0, 0, 0, 0,
		0, 0, 0, 85, 90, 92, 93, 78, 93, 92, 90, 85, 0, 0, 0, 0,
		0, 0, 0, 88, 85, 90, 88, 90, 88, 90, 85, 88, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // Cannon
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 206, 208, 207, 213, 214, 213, 207, 208, 206, 0, 0, 0, 0,
		0, 0, 0, 206, 212, 209, 216, 233, 216, 209, 212, 206, 0, 0, 0, 0,
		0, 0, 0, 206, 208, 207, 214, 216, 214, 207, 208, 206, 0, 0, 0, 0,
		0, 0, 0, 206, 213, 213, 216, 216, 216, 213, 213, 206, 0, 0, 0, 0,
		0, 0, 0, 208, 211, 211, 214, 215, 214, 211, 211, 208, 0, 0, 0, 0,
		0, 0, 0, 208, 212, 212, 214, 215, 214, 212, 212, 208, 0, 0, 0, 0,
		0, 0, 0, 204, 209, 204, 212, 214, 212, 204, 209, 204, 0, 0, 0, 0,
		0, 0, 0, 198, 208, 204, 212, 212, 212, 204, 208, 198, 0, 0, 0, 0,
		0, 0, 0, 200, 208, 206, 212, 200, 212, 206, 208, 200, 0, 0, 0, 0,
		0, 0, 0, 194, 206, 204, 212, 200, 212, 204, 206, 194, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // Pawn
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 100, 100, 96, 91, 90, 91, 96, 100, 100, 0, 0, 0, 0,
		0, 0, 0, 98, 98, 96, 92, 89, 92, 96, 98, 98, 0, 0, 0, 0,
		0, 0, 0, 97, 97, 96, 91, 92, 91, 96, 97, 97, 0, 0, 0, 0,
		0, 0, 0, 96, 99, 99, 98, 100, 98, 99, 99, 96, 0, 0, 0, 0,
		0, 0, 0, 96, 96, 96, 96, 100, 96, 96, 96, 96, 0, 0, 0, 0,
		0, 0, 0, 95, 96, 99, 96, 100, 96, 99, 96, 95, 0, 0, 0, 0,
		0, 0, 0, 96, 96, 96, 96, 96, 96, 96, 96, 96, 0, 0, 0, 0,
		0, 0, 0, 97, 96, 100, 99, 101, 99, 100, 96, 97, 0, 0, 0, 0,
		0, 0, 0, 96, 97, 98, 98, 98, 98, 98, 97, 96, 0, 0, 0, 0,
		0, 0, 0, 96, 96, 97, 99, 99, 99, 97, 96, 96, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
}

// pstIndex maps a PieceType to its row in pieceValueTable (King, Advisor,
// Bishop all share row 0).
func pstIndex(pt PieceType) int {
	switch pt {
	case King, Advisor, Bishop:
		return 0
	case Knight:
		return 1
	case Rook:
		return 2
	case Cannon:
		return 3
	default: // Pawn
		return 4
	}
}

// pieceSquareValue returns the PST contribution of a piece type for its
// own side at sq (callers flip sq for the second side before calling).
func pieceSquareValue(pt PieceType, sq Square) int32 {
	return pieceValueTable[pstIndex(pt)][sq]
}

// Exported geometry, for internal/movegen's Generate/GetLegalMoves -
// move generation lives in its own package per the search-side concerns it
// shares a package with (the staged move picker, shell sort), so it walks
// these same tables through exported names rather than duplicating them.

// KingDelta, AdvisorDelta, KnightDelta, KnightCheckDelta re-export the
// package's geometry deltas for callers outside internal/position.
var (
	KingDelta        = kingDelta
	AdvisorDelta     = advisorDelta
	KnightDelta      = knightDelta
	KnightCheckDelta = knightCheckDelta
)

// OnBoard reports whether sq lies within the playable 9x10 board.
func OnBoard(sq Square) bool { return onBoard(sq) }

// InPalace reports whether sq lies within either side's 3x3 palace.
func InPalace(sq Square) bool { return inPalace(sq) }

// HomeHalf reports whether sq is on sd's own side of the river.
func HomeHalf(sq Square, sd Side) bool { return homeHalf(sq, sd) }

// AwayHalf reports whether sq is across the river from sd.
func AwayHalf(sq Square, sd Side) bool { return awayHalf(sq, sd) }

// SquareForward returns the one-step-forward square for side sd.
func SquareForward(sq Square, sd Side) Square { return squareForward(sq, sd) }
