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
	"strings"

	"github.com/frankkopp/xqengine/assert"
	. "github.com/frankkopp/xqengine/pkg/types"
)

var initialized = false

func init() {
	if !initialized {
		initZobrist()
		initialized = true
	}
}

// Scoring constants shared by Position and the search package. Values are
// distance-relative: Position.MateScore()/BanScore() subtract the ply
// distance from the root so a shorter mate always outscores a longer one.
const (
	// MateValue is the score of being mated at distance 0 from the root.
	MateValue int32 = 10000
	// BanValue is the score of losing by a banned repetition (perpetual
	// check, see RepValue) at distance 0.
	BanValue int32 = 9900
	// WinValue is the smallest score search treats as a forced win.
	WinValue int32 = 9800
	// NullSafeMargin and NullOkayMargin gate null-move pruning on material:
	// a side with too little material left can have zugzwang positions
	// where "passing" is actually the best move, so null-move search is
	// skipped below these margins.
	NullSafeMargin int32 = 400
	NullOkayMargin int32 = 200
	// DrawValue is the small asymmetric contempt applied to draws so the
	// side to move neither seeks nor shuns repetition by default.
	DrawValue int32 = 20
	// AdvancedValue is a flat tempo bonus added for the side to move.
	AdvancedValue int32 = 3
	// LimitDepth is the maximum ply depth iterative deepening will reach.
	LimitDepth = 64
	// NullDepth is the depth reduction applied to the null-move search.
	NullDepth = 2
)

// maxPositionPlies bounds the initial capacity reserved for the history
// stacks - comfortably above LIMIT_DEPTH plus quiescence plus a full game's
// worth of moves, so DoMove/UndoMove during search never reallocates.
const maxPositionPlies = 2048

// Position is a single mutable Xiangqi board together with the history
// needed to undo moves and detect repetition. It is not safe for concurrent
// use; search workers each own a Clone.
type Position struct {
	sideToMove Side
	squares    [256]Piece

	zobristKey  uint64
	zobristLock uint64

	material [2]int32

	// distance is the ply count since the position search started from
	// (the root), not since the start of the game. moves/capturedPieces/
	// keys/inCheckStack are parallel stacks holding one entry per ply plus
	// one initial entry for the position itself: at distance D they hold
	// D+1 entries, and the final entry always reflects the current
	// position (moves[len-1]/capturedPieces[len-1] are NoMove/PieceNone
	// for the initial entry and for a null move).
	distance       int
	moves          []Move
	capturedPieces []Piece
	keys           []uint64
	inCheckStack   []bool
}

// NewPosition returns an empty board with Red to move.
func NewPosition() *Position {
	p := &Position{
		sideToMove:     Red,
		moves:          make([]Move, 1, maxPositionPlies),
		capturedPieces: make([]Piece, 1, maxPositionPlies),
		keys:           make([]uint64, 1, maxPositionPlies),
		inCheckStack:   make([]bool, 1, maxPositionPlies),
	}
	p.inCheckStack[0] = p.inCheckOracle()
	return p
}

// Clone returns an independent deep copy.
func (p *Position) Clone() *Position {
	np := &Position{
		sideToMove:  p.sideToMove,
		squares:     p.squares,
		zobristKey:  p.zobristKey,
		zobristLock: p.zobristLock,
		material:    p.material,
		distance:    p.distance,
	}
	np.moves = append(make([]Move, 0, maxPositionPlies), p.moves...)
	np.capturedPieces = append(make([]Piece, 0, maxPositionPlies), p.capturedPieces...)
	np.keys = append(make([]uint64, 0, maxPositionPlies), p.keys...)
	np.inCheckStack = append(make([]bool, 0, maxPositionPlies), p.inCheckStack...)
	return np
}

// SideToMove returns the side to move.
func (p *Position) SideToMove() Side {
	return p.sideToMove
}

// Piece returns the piece occupying sq, or PieceNone.
func (p *Position) Piece(sq Square) Piece {
	return p.squares[sq]
}

// ZobristKey returns the incrementally maintained hash key.
func (p *Position) ZobristKey() uint64 {
	return p.zobristKey
}

// ZobristLock returns the independent verification hash, used by the
// transposition table to detect key collisions.
func (p *Position) ZobristLock() uint64 {
	return p.zobristLock
}

// Distance returns the ply count since the position the search started
// iterating from.
func (p *Position) Distance() int {
	return p.distance
}

// AddPiece places pc on sq (isRemove false) or clears a piece that used to
// be pc on sq (isRemove true), updating the board, the incremental
// material/PST score and the Zobrist key/lock together so they can never
// drift apart. pc must not be PieceNone.
func (p *Position) AddPiece(sq Square, pc Piece, isRemove bool) {
	if isRemove {
		p.squares[sq] = PieceNone
	} else {
		p.squares[sq] = pc
	}

	pt := pc.TypeOf()
	var zobristIdx int
	var val int32
	if pc.BelongsTo(Red) {
		zobristIdx = int(pt)
		val = pieceSquareValue(pt, sq)
	} else {
		zobristIdx = int(pt) + 7
		val = pieceSquareValue(pt, sq.Flip())
	}
	if isRemove {
		p.material[pc.SideOf()] -= val
	} else {
		p.material[pc.SideOf()] += val
	}
	p.zobristKey ^= zobristPieceKey[zobristIdx][sq]
	p.zobristLock ^= zobristPieceLock[zobristIdx][sq]
}

// ChangeSide flips the side to move and folds it into the Zobrist hash.
func (p *Position) ChangeSide() {
	p.sideToMove = p.sideToMove.Flip()
	p.zobristKey ^= zobristSideKey
	p.zobristLock ^= zobristSideLock
}

// movePiece relocates the piece on mv's source square to its destination,
// removing any captured piece first, and records mv/the capture on the
// history stacks. It does not change side to move or test legality - DoMove
// composes it with an in-check probe and an undo on self-check.
func (p *Position) movePiece(mv Move) {
	src, dst := mv.From(), mv.To()
	captured := p.squares[dst]
	p.capturedPieces = append(p.capturedPieces, captured)
	if captured != PieceNone {
		p.AddPiece(dst, captured, true)
	}
	moving := p.squares[src]
	p.AddPiece(src, moving, true)
	p.AddPiece(dst, moving, false)
	p.moves = append(p.moves, mv)
}

// undoMovePiece reverses the most recent movePiece without popping the
// history stacks - DoMove uses this to back out of a move that turned out
// to be illegal (leaves its own king in check) before the stacks are ever
// extended for real.
func (p *Position) undoMovePiece() {
	mv := p.moves[len(p.moves)-1]
	src, dst := mv.From(), mv.To()
	moved := p.squares[dst]
	p.AddPiece(dst, moved, true)
	p.AddPiece(src, moved, false)
	captured := p.capturedPieces[len(p.capturedPieces)-1]
	if captured != PieceNone {
		p.AddPiece(dst, captured, false)
	}
}

// DoMove makes mv and reports whether it was legal. An illegal mv (one that
// leaves the moving side's own king in check, including flying-king
// exposure) is fully unwound before returning false, so the position is
// unchanged on a false return and the caller need not call UndoMove.
func (p *Position) DoMove(mv Move) bool {
	if assert.DEBUG {
		assert.Assert(p.squares[mv.From()].BelongsTo(p.sideToMove), "Position.DoMove: %s does not move a piece of the side to move", mv)
	}

	key, lock, mat, side := p.zobristKey, p.zobristLock, p.material, p.sideToMove

	p.movePiece(mv)
	if p.inCheckOracle() {
		p.undoMovePiece()
		p.moves = p.moves[:len(p.moves)-1]
		p.capturedPieces = p.capturedPieces[:len(p.capturedPieces)-1]
		p.zobristKey, p.zobristLock, p.material, p.sideToMove = key, lock, mat, side
		return false
	}

	p.keys = append(p.keys, key)
	p.ChangeSide()
	p.inCheckStack = append(p.inCheckStack, p.inCheckOracle())
	p.distance++
	return true
}

// UndoMove reverses the most recently made move (DoMove or DoNullMove).
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.distance > 0, "Position.UndoMove: nothing to undo at distance 0")
	}

	p.distance--
	p.inCheckStack = p.inCheckStack[:len(p.inCheckStack)-1]
	p.ChangeSide()
	p.keys = p.keys[:len(p.keys)-1]

	mv := p.moves[len(p.moves)-1]
	p.moves = p.moves[:len(p.moves)-1]
	captured := p.capturedPieces[len(p.capturedPieces)-1]
	p.capturedPieces = p.capturedPieces[:len(p.capturedPieces)-1]

	if mv == NoMove {
		return
	}
	src, dst := mv.From(), mv.To()
	moved := p.squares[dst]
	p.AddPiece(dst, moved, true)
	p.AddPiece(src, moved, false)
	if captured != PieceNone {
		p.AddPiece(dst, captured, false)
	}
}

// DoNullMove passes the move without moving a piece, used by null-move
// pruning to test "is the position so good the opponent gets a free move
// and still can't catch up".
func (p *Position) DoNullMove() {
	p.moves = append(p.moves, NoMove)
	p.capturedPieces = append(p.capturedPieces, PieceNone)
	p.keys = append(p.keys, p.zobristKey)
	p.ChangeSide()
	p.inCheckStack = append(p.inCheckStack, false)
	p.distance++
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	p.distance--
	p.inCheckStack = p.inCheckStack[:len(p.inCheckStack)-1]
	p.ChangeSide()
	p.keys = p.keys[:len(p.keys)-1]
	p.capturedPieces = p.capturedPieces[:len(p.capturedPieces)-1]
	p.moves = p.moves[:len(p.moves)-1]
}

// inCheckOracle recomputes, from scratch, whether the side to move's king
// is attacked. DoMove uses it to reject self-check moves; it never reads
// inCheckStack (the cached value InCheck returns is only valid once a move
// has actually been committed).
func (p *Position) inCheckOracle() bool {
	selfTag := SideTag(p.sideToMove)
	oppTag := OppSideTag(p.sideToMove)

	var kingSq Square
	found := false
	for sq := 0; sq < 256; sq++ {
		if uint8(p.squares[sq]) == selfTag+uint8(King) {
			kingSq = Square(sq)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Pawn attacks: one square forward, or one square to either side once
	// across the river.
	front := squareForward(kingSq, p.sideToMove)
	if onBoard(front) && uint8(p.squares[front]) == oppTag+uint8(Pawn) {
		return true
	}
	for _, d := range [2]int16{-1, 1} {
		side := Square(int16(kingSq) + d)
		if onBoard(side) && uint8(p.squares[side]) == oppTag+uint8(Pawn) {
			return true
		}
	}

	// Knight attacks: an opposing knight whose leg square (relative to the
	// king) is empty.
	for i := 0; i < 4; i++ {
		leg := Square(int16(kingSq) + advisorDelta[i])
		if onBoard(leg) && p.squares[leg] == PieceNone {
			for _, d := range knightCheckDelta[i] {
				atk := Square(int16(kingSq) + d)
				if onBoard(atk) && uint8(p.squares[atk]) == oppTag+uint8(Knight) {
					return true
				}
			}
		}
	}

	// Rook/king (flying-king) and cannon attacks along each of the four
	// orthogonal rays from the king.
	for _, d := range kingDelta {
		cur := Square(int16(kingSq) + d)
		for onBoard(cur) {
			pc := p.squares[cur]
			if pc != PieceNone {
				if uint8(pc) == oppTag+uint8(Rook) || uint8(pc) == oppTag+uint8(King) {
					return true
				}
				break
			}
			cur = Square(int16(cur) + d)
		}

		cur = Square(int16(kingSq) + d)
		screens := 0
		for onBoard(cur) {
			pc := p.squares[cur]
			if pc != PieceNone {
				screens++
			}
			if screens == 2 {
				if uint8(pc) == oppTag+uint8(Cannon) {
					return true
				}
				break
			}
			cur = Square(int16(cur) + d)
		}
	}

	return false
}

// InCheck reports whether the side to move's king is currently attacked,
// reading the cached value left by the move that reached this position.
func (p *Position) InCheck() bool {
	return p.inCheckStack[len(p.inCheckStack)-1]
}

// RefreshInCheck recomputes and caches whether the side to move is in
// check. DoMove/UndoMove keep the cache current incrementally; a caller
// that instead builds a Position by placing pieces directly with
// AddPiece (internal/fen.Parse, test scaffolding) must call this once
// after setup, since AddPiece has no way to know when placement is done.
func (p *Position) RefreshInCheck() {
	p.inCheckStack[len(p.inCheckStack)-1] = p.inCheckOracle()
}

// LegalMove reports whether mv is a legal move in the current position:
// geometrically sound for the moving piece, not blocked, not capturing a
// friendly piece, and (left to the caller, via DoMove) not self-check. It
// is used to validate a transposition-table or opening-book move cheaply
// without generating the full move list.
func (p *Position) LegalMove(mv Move) bool {
	src, dst := mv.From(), mv.To()
	pcSrc := p.squares[src]
	if !pcSrc.BelongsTo(p.sideToMove) {
		return false
	}
	pcDst := p.squares[dst]
	if pcDst.BelongsTo(p.sideToMove) {
		return false
	}

	switch pcSrc.TypeOf() {
	case King:
		return inPalace(dst) && kingSpan(src, dst)
	case Advisor:
		return inPalace(dst) && advisorSpan(src, dst)
	case Bishop:
		return sameHalf(src, dst) && bishopSpan(src, dst) && p.squares[bishopPin(src, dst)] == PieceNone
	case Knight:
		pin := knightPin(src, dst)
		return pin != src && p.squares[pin] == PieceNone
	case Rook:
		delta, ok := rayDelta(src, dst)
		if !ok {
			return false
		}
		cur := Square(int16(src) + delta)
		for onBoard(cur) && cur != dst && p.squares[cur] == PieceNone {
			cur = Square(int16(cur) + delta)
		}
		return cur == dst
	case Cannon:
		delta, ok := rayDelta(src, dst)
		if !ok {
			return false
		}
		cur := Square(int16(src) + delta)
		screens := 0
		for onBoard(cur) && cur != dst {
			if p.squares[cur] != PieceNone {
				screens++
			}
			cur = Square(int16(cur) + delta)
		}
		if pcDst == PieceNone {
			return screens == 0
		}
		return screens == 1
	case Pawn:
		if awayHalf(src, p.sideToMove) && (dst == Square(int16(src)-1) || dst == Square(int16(src)+1)) {
			return true
		}
		return dst == squareForward(src, p.sideToMove)
	default:
		return false
	}
}

// rayDelta returns the one-step offset from src toward dst along a shared
// rank or file, or ok=false if src and dst share neither.
func rayDelta(src, dst Square) (delta int16, ok bool) {
	switch {
	case sameRank(src, dst):
		if dst < src {
			return -1, true
		}
		return 1, true
	case sameFile(src, dst):
		if dst < src {
			return -16, true
		}
		return 16, true
	default:
		return 0, false
	}
}

// IsMate reports whether the side to move has no legal move and is in
// check - a position with no legal moves but no check is stalemate, which
// Xiangqi scores as a loss for the stalemated side rather than a draw, so
// callers treat "no legal moves" as decisive regardless of IsMate's result.
// legalMoves is the caller's GetLegalMoves() result (internal/movegen owns
// move generation, so Position cannot compute it itself without an import
// cycle).
func (p *Position) IsMate(legalMoves []Move) bool {
	return len(legalMoves) == 0 && p.inCheckOracle()
}

// MateScore returns the score of being mated at the current distance from
// the root: a mate found deeper costs less than one found shallower, so
// search always prefers the faster mate.
func (p *Position) MateScore() int32 {
	return int32(p.distance) - MateValue
}

// BanScore returns the score of reaching a banned (illegal) position at
// the current distance.
func (p *Position) BanScore() int32 {
	return int32(p.distance) - BanValue
}

// DrawScore returns the contempt-adjusted draw score, alternating sign by
// parity of distance so the value is symmetric from either side's
// perspective once negated back through the search tree.
func (p *Position) DrawScore() int32 {
	if p.distance&1 == 0 {
		return -DrawValue
	}
	return DrawValue
}

// RepStatus walks the move history backward looking for a position with
// the same Zobrist key recurring for the recur-th time (recur is normally
// 3, for the standard three-fold rule, or 1 to find the most recent
// occurrence). It stops at the first irreversible move (a capture) or the
// root, since repetition cannot reach further back than that. The returned
// status is 0 for "no repetition found", or 1 plus bit 2 if the side to
// move perpetually checked across the repeated segment, plus bit 4 if the
// opponent did.
func (p *Position) RepStatus(recur int) int {
	selfSide := false
	perpCheck := true
	oppPerpCheck := true

	index := len(p.moves) - 1
	for index >= 0 && p.moves[index] != NoMove && p.capturedPieces[index] == PieceNone {
		if selfSide {
			perpCheck = perpCheck && p.inCheckStack[index]
			if p.keys[index] == p.zobristKey {
				recur--
				if recur == 0 {
					status := 1
					if perpCheck {
						status += 2
					}
					if oppPerpCheck {
						status += 4
					}
					return status
				}
			}
		} else {
			oppPerpCheck = oppPerpCheck && p.inCheckStack[index]
		}
		selfSide = !selfSide
		index--
	}
	return 0
}

// RepValue converts a RepStatus result into a score: perpetual check by the
// side to move is scored as a loss for them (being the one repeating
// checks without claiming a win is illegal in Xiangqi), perpetual check by
// the opponent as a win, and a repetition with neither perpetually
// checking as a plain draw.
func (p *Position) RepValue(status int) int32 {
	var vl int32
	if status&2 != 0 {
		vl += p.BanScore()
	}
	if status&4 != 0 {
		vl -= p.BanScore()
	}
	if vl == 0 {
		return p.DrawScore()
	}
	return vl
}

// Evaluate returns the static material+PST evaluation from the side to
// move's perspective, plus a flat tempo bonus. The result is nudged away
// from exactly DrawScore() so a non-search leaf score is never mistaken by
// callers for an actual repetition score.
func (p *Position) Evaluate() int32 {
	var vl int32
	if p.sideToMove == Red {
		vl = p.material[Red] - p.material[Black]
	} else {
		vl = p.material[Black] - p.material[Red]
	}
	vl += AdvancedValue
	if vl == p.DrawScore() {
		vl--
	}
	return vl
}

// NullOkay reports whether the side to move holds enough material for
// null-move pruning to be considered at all.
func (p *Position) NullOkay() bool {
	return p.material[p.sideToMove] > NullOkayMargin
}

// NullSafe reports whether the side to move holds enough material that a
// null-move search result can be trusted without verification.
func (p *Position) NullSafe() bool {
	return p.material[p.sideToMove] > NullSafeMargin
}

// Mirror returns a new Position with every piece reflected left-right
// (same rank, file mirrored) and the same side to move - used by the
// opening book to look a position up under the canonical orientation when
// the actual position is a mirror image of a stored one.
func (p *Position) Mirror() *Position {
	mp := NewPosition()
	for sq := 0; sq < 256; sq++ {
		pc := p.squares[sq]
		if pc != PieceNone {
			mp.AddPiece(Square(sq).MirrorFile(), pc, false)
		}
	}
	if p.sideToMove == Black {
		mp.ChangeSide()
	}
	mp.RefreshInCheck()
	return mp
}

// HistoryIndex maps mv to its slot in a 4096-entry history heuristic table:
// the moving piece's type (0..6, side stripped) in the high byte and the
// destination square in the low byte.
func (p *Position) HistoryIndex(mv Move) int {
	pt := p.squares[mv.From()].TypeOf()
	return (int(pt) << 8) + int(mv.To())
}

// MvvValue returns the MVV-LVA base value for pt, used by quiescence search
// and the move picker to rank captures by the value of the piece being
// taken.
func MvvValue(pt PieceType) int32 {
	return mvvValue[pt]
}

// String renders the board as a 10-rank ASCII diagram for logging, Red's
// pieces uppercase and Black's lowercase, a "." for empty playable squares.
func (p *Position) String() string {
	var b strings.Builder
	for rank := uint8(RankTop); rank <= RankBottom; rank++ {
		for file := uint8(FileLeft); file <= FileRight; file++ {
			b.WriteString(p.squares[MakeSquare(file, rank)].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
