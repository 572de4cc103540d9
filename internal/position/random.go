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

// rc4 is an RC4-like keystream generator used only to produce the
// engine's fixed Zobrist random tables. It is not used for anything
// security sensitive - it exists purely so the table generation is
// reproducible byte-for-byte across implementations (the generation
// order below must never change or saved opening-book entries become
// unreadable).
type rc4 struct {
	x, y uint8
	s    [256]uint8
}

// newRc4 seeds a keystream from key, following the standard RC4
// key-scheduling algorithm.
func newRc4(key []uint8) *rc4 {
	g := &rc4{}
	for i := 0; i < 256; i++ {
		g.s[i] = uint8(i)
	}
	var j uint8
	for i := 0; i < 256; i++ {
		j += g.s[i] + key[i%len(key)]
		g.s[i], g.s[j] = g.s[j], g.s[i]
	}
	return g
}

// nextByte returns the next keystream byte.
func (g *rc4) nextByte() uint8 {
	g.x++
	g.y += g.s[g.x]
	g.s[g.x], g.s[g.y] = g.s[g.y], g.s[g.x]
	t := g.s[g.x] + g.s[g.y]
	return g.s[t]
}

// nextLong concatenates four keystream bytes little-endian into a
// 64-bit value (the upper 32 bits are always zero - this matches the
// reference generator's 32-bit-at-a-time output exactly).
func (g *rc4) nextLong() uint64 {
	n0 := uint64(g.nextByte())
	n1 := uint64(g.nextByte())
	n2 := uint64(g.nextByte())
	n3 := uint64(g.nextByte())
	return n0 | n1<<8 | n2<<16 | n3<<24
}

// zobristPieceKey/zobristPieceLock are indexed [pieceTableIndex][square],
// where pieceTableIndex 0..6 is Red's King..Pawn and 7..13 is Black's
// King..Pawn (see AddPiece's zobristIdx). zobristSideKey/
// zobristSideLock XOR in the side-to-move.
var (
	zobristPieceKey  [14][256]uint64
	zobristPieceLock [14][256]uint64
	zobristSideKey   uint64
	zobristSideLock  uint64
)

// initZobrist fills the Zobrist tables from four independent RC4 streams,
// each freshly seeded with key byte 0. The discard pattern (two throwaway
// nextLong calls before the key table, one throwaway call before every
// lock table entry) reproduces the reference generator exactly; changing
// it would silently invalidate every previously stored opening-book entry.
func initZobrist() {
	keyGen := newRc4([]uint8{0})
	keyGen.nextLong()
	keyGen.nextLong()
	for t := 0; t < 14; t++ {
		for sq := 0; sq < 256; sq++ {
			zobristPieceKey[t][sq] = keyGen.nextLong()
		}
	}

	lockGen := newRc4([]uint8{0})
	lockGen.nextLong()
	lockGen.nextLong()
	for t := 0; t < 14; t++ {
		for sq := 0; sq < 256; sq++ {
			lockGen.nextLong()
			zobristPieceLock[t][sq] = lockGen.nextLong()
		}
	}

	sideKeyGen := newRc4([]uint8{0})
	zobristSideKey = sideKeyGen.nextLong()

	sideLockGen := newRc4([]uint8{0})
	sideLockGen.nextLong()
	zobristSideLock = sideLockGen.nextLong()
}
