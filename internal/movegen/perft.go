/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package movegen

import (
	"time"

	"github.com/frankkopp/xqengine/internal/fen"
	"github.com/frankkopp/xqengine/internal/position"
)

// Perft counts the move-generation tree below a position, used to verify
// Generate/GetLegalMoves against known node counts from independent
// sources (there being no en passant, castling or promotion in Xiangqi,
// this only needs to track nodes, captures, checks and checkmates).
type Perft struct {
	Nodes       uint64
	Captures    uint64
	Checks      uint64
	CheckMates  uint64
	LastRunTime time.Duration
}

// StartPerft parses fenStr, walks every legal move to depth and fills in
// the counters, replacing whatever they held before.
func (p *Perft) StartPerft(fenStr string, depth int) error {
	pos, err := fen.Parse(fenStr)
	if err != nil {
		return err
	}

	*p = Perft{}
	start := time.Now()
	p.perft(pos, depth)
	p.LastRunTime = time.Since(start)
	return nil
}

func (p *Perft) perft(pos *position.Position, depth int) {
	legal := GetLegalMoves(pos)

	if depth == 1 {
		for _, mv := range legal {
			if pos.Piece(mv.To()) != 0 {
				p.Captures++
			}
			p.Nodes++
			pos.DoMove(mv)
			if pos.InCheck() {
				p.Checks++
				if len(GetLegalMoves(pos)) == 0 {
					p.CheckMates++
				}
			}
			pos.UndoMove()
		}
		return
	}

	for _, mv := range legal {
		pos.DoMove(mv)
		p.perft(pos, depth-1)
		pos.UndoMove()
	}
}
