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

// Package movegen generates pseudo-legal and legal moves for a position and,
// in picker.go, stages them for the search in the order most likely to
// produce an early beta cutoff.
package movegen

import (
	"github.com/frankkopp/xqengine/internal/position"
	. "github.com/frankkopp/xqengine/pkg/types"
)

// Generate returns every pseudo-legal move for the side to move: it does not
// test whether a move leaves the mover's own king in check. Capturing and
// non-capturing moves for each piece type are walked the way
// Position.LegalMove validates a single move, just exhaustively instead of
// for one destination.
func Generate(pos *position.Position) []Move {
	moves := make([]Move, 0, 48)
	side := pos.SideToMove()
	oppTag := OppSideTag(side)

	for sq := 0; sq < 256; sq++ {
		src := Square(sq)
		pcSrc := pos.Piece(src)
		if !pcSrc.BelongsTo(side) {
			continue
		}

		switch pcSrc.TypeOf() {
		case King:
			for _, d := range position.KingDelta {
				dst := Square(int16(src) + d)
				if position.InPalace(dst) && !pos.Piece(dst).BelongsTo(side) {
					moves = append(moves, MakeMove(src, dst))
				}
			}
		case Advisor:
			for _, d := range position.AdvisorDelta {
				dst := Square(int16(src) + d)
				if position.InPalace(dst) && !pos.Piece(dst).BelongsTo(side) {
					moves = append(moves, MakeMove(src, dst))
				}
			}
		case Bishop:
			for _, d := range position.AdvisorDelta {
				leg := Square(int16(src) + d)
				if position.OnBoard(leg) && pos.Piece(leg) == PieceNone {
					dst := Square(int16(src) + 2*d)
					if position.OnBoard(dst) && position.HomeHalf(dst, side) && !pos.Piece(dst).BelongsTo(side) {
						moves = append(moves, MakeMove(src, dst))
					}
				}
			}
		case Knight:
			for i, leg := range position.KingDelta {
				pin := Square(int16(src) + leg)
				if position.OnBoard(pin) && pos.Piece(pin) == PieceNone {
					for _, d := range position.KnightDelta[i] {
						dst := Square(int16(src) + d)
						if position.OnBoard(dst) && !pos.Piece(dst).BelongsTo(side) {
							moves = append(moves, MakeMove(src, dst))
						}
					}
				}
			}
		case Rook:
			for _, d := range position.KingDelta {
				dst := Square(int16(src) + d)
				for position.OnBoard(dst) {
					target := pos.Piece(dst)
					if target == PieceNone {
						moves = append(moves, MakeMove(src, dst))
					} else {
						if uint8(target)&oppTag != 0 {
							moves = append(moves, MakeMove(src, dst))
						}
						break
					}
					dst = Square(int16(dst) + d)
				}
			}
		case Cannon:
			for _, d := range position.KingDelta {
				dst := Square(int16(src) + d)
				blocked := false
				for position.OnBoard(dst) {
					if pos.Piece(dst) != PieceNone {
						blocked = true
						break
					}
					moves = append(moves, MakeMove(src, dst))
					dst = Square(int16(dst) + d)
				}
				if !blocked {
					continue
				}
				dst = Square(int16(dst) + d)
				for position.OnBoard(dst) {
					target := pos.Piece(dst)
					if target != PieceNone {
						if uint8(target)&oppTag != 0 {
							moves = append(moves, MakeMove(src, dst))
						}
						break
					}
					dst = Square(int16(dst) + d)
				}
			}
		case Pawn:
			fwd := position.SquareForward(src, side)
			if position.OnBoard(fwd) && !pos.Piece(fwd).BelongsTo(side) {
				moves = append(moves, MakeMove(src, fwd))
			}
			if position.AwayHalf(src, side) {
				for _, d := range [2]int16{-1, 1} {
					dst := Square(int16(src) + d)
					if position.OnBoard(dst) && !pos.Piece(dst).BelongsTo(side) {
						moves = append(moves, MakeMove(src, dst))
					}
				}
			}
		}
	}

	return moves
}

// GenerateCaptures returns the subset of Generate's moves that capture an
// enemy piece, for quiescence search - a quiet move can never resolve a
// hanging capture, so quiescence never needs to look at it.
func GenerateCaptures(pos *position.Position) []Move {
	all := Generate(pos)
	captures := make([]Move, 0, len(all))
	for _, mv := range all {
		if pos.Piece(mv.To()) != PieceNone {
			captures = append(captures, mv)
		}
	}
	return captures
}

// GetLegalMoves returns every legal move: each pseudo-legal move is played
// and immediately undone through Position.DoMove/UndoMove, which already
// carries the self-check test.
func GetLegalMoves(pos *position.Position) []Move {
	pseudo := Generate(pos)
	legal := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if pos.DoMove(mv) {
			pos.UndoMove()
			legal = append(legal, mv)
		}
	}
	return legal
}

// ScoreCapture returns the MVV-LVA score of mv: the victim's full MVV
// value minus a small attacker-dependent LVA (one tenth of the
// attacker's own MVV value), so the victim dominates the ordering and
// the attacker only breaks ties toward the cheaper piece. mv must be a
// capturing move.
func ScoreCapture(pos *position.Position, mv Move) int32 {
	victim := pos.Piece(mv.To()).TypeOf()
	attacker := pos.Piece(mv.From()).TypeOf()
	return position.MvvValue(victim) - position.MvvValue(attacker)/10
}
