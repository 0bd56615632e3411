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

// Package state implements the immutable GameState chain: each state is
// built from a parent and the move that was played, carries write-once
// lazily computed caches for legal moves and castling rights, and tracks
// the repetition and no-progress counters used by the draw test.
package state

import (
	"sync"

	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/board"
	"github.com/frankkopp/FrankyGo/logging"
	. "github.com/frankkopp/FrankyGo/types"
)

var log = logging.Get("state")

// GameState is one node of the immutable history chain. Prev references the
// parent; the chain is the sole source of repetition and history features.
type GameState struct {
	board    board.Board
	sideToMove Color
	lastMove Move
	white    CastlingRights
	black    CastlingRights
	prev     *GameState

	repetitionCount int
	totalMoveCount  int
	noProgressCount int

	legalOnce  sync.Once
	legalMoves []Move

	whiteCastleOnce sync.Once
	whiteKingSide   bool
	whiteQueenSide  bool

	blackCastleOnce sync.Once
	blackKingSide   bool
	blackQueenSide  bool
}

// FromBoard builds a root GameState from an arbitrary board, with no
// castling rights and no history - useful for tests and puzzle positions
// that do not need a reachable game line.
func FromBoard(b board.Board, sideToMove Color) *GameState {
	return &GameState{
		board:           b,
		sideToMove:      sideToMove,
		lastMove:        MoveNone,
		repetitionCount: 1,
		white:           CastlingRights{KingMoved: true, KingRookMoved: true, QueenRookMoved: true},
		black:           CastlingRights{KingMoved: true, KingRookMoved: true, QueenRookMoved: true},
	}
}

// NewInitial returns the GameState for the standard starting position.
func NewInitial() *GameState {
	return &GameState{
		board:      board.InitialBoard(),
		sideToMove: White,
		lastMove:   MoveNone,
		repetitionCount: 1,
	}
}

// Board returns the position this state holds.
func (g *GameState) Board() board.Board { return g.board }

// SideToMove returns the color to move from this state.
func (g *GameState) SideToMove() Color { return g.sideToMove }

// LastMove returns the move that produced this state, or MoveNone for the
// initial state.
func (g *GameState) LastMove() Move { return g.lastMove }

// Prev returns the parent state, or nil for the initial state.
func (g *GameState) Prev() *GameState { return g.prev }

// RepetitionCount returns how many states in the chain, including this one,
// share this board.
func (g *GameState) RepetitionCount() int { return g.repetitionCount }

// TotalMoveCount returns the number of half-moves played to reach this state.
func (g *GameState) TotalMoveCount() int { return g.totalMoveCount }

// NoProgressCount returns the half-moves since the last capture or pawn push.
func (g *GameState) NoProgressCount() int { return g.noProgressCount }

// Apply produces the child state reached by playing m from g. No legality
// check is performed - callers must only pass moves from g.LegalMoves().
func (g *GameState) Apply(m Move) *GameState {
	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Apply: invalid move")
	}
	mover := g.sideToMove
	movedPiece := g.board.PieceAt(m.From())
	captured := g.board.PieceAt(m.To())
	isEnPassant := movedPiece.TypeOf() == Pawn && m.From().FileOf() != m.To().FileOf() && captured.IsEmpty()

	child := &GameState{
		board:      g.board.Apply(m),
		sideToMove: mover.Flip(),
		lastMove:   m,
		white:      g.white,
		black:      g.black,
		prev:       g,
		totalMoveCount: g.totalMoveCount + 1,
	}

	if mover == White {
		child.white = g.white.updateFrom(White, m.From())
	} else {
		child.black = g.black.updateFrom(Black, m.From())
	}

	if !captured.IsEmpty() || isEnPassant || movedPiece.TypeOf() == Pawn {
		child.noProgressCount = 0
	} else {
		child.noProgressCount = g.noProgressCount + 1
	}

	child.repetitionCount = 1
	for anc := g; anc != nil; anc = anc.prev {
		if anc.board.Equals(child.board) {
			child.repetitionCount++
		}
	}

	return child
}

// HistoryEntry is one archived position in a snapshot reconstructed by
// FromSnapshot: the board at that point and how many times it had already
// recurred in the original chain.
type HistoryEntry struct {
	Board           board.Board
	RepetitionCount int
}

// FromSnapshot rebuilds a GameState chain from a persisted experience
// record: history holds up to the feature encoder's history depth, newest
// entry first. The castling flags are the already-resolved (king-side,
// queen-side) availability recorded at save time rather than raw
// moved-piece flags, so CanCastle returns them directly without
// recomputing against the reconstructed board.
//
// The result has no last_move, so it cannot produce an en-passant capture
// and LegalMoves should not be trusted on it - FromSnapshot exists only to
// drive encoder.Encode for training, never to continue a game.
func FromSnapshot(history []HistoryEntry, sideToMove Color, totalMoveCount, noProgressCount int, whiteKingSide, whiteQueenSide, blackKingSide, blackQueenSide bool) *GameState {
	var prev *GameState
	for i := len(history) - 1; i >= 1; i-- {
		prev = &GameState{
			board:           history[i].Board,
			lastMove:        MoveNone,
			prev:            prev,
			repetitionCount: history[i].RepetitionCount,
		}
	}

	head := &GameState{
		board:           history[0].Board,
		sideToMove:      sideToMove,
		lastMove:        MoveNone,
		prev:            prev,
		repetitionCount: history[0].RepetitionCount,
		totalMoveCount:  totalMoveCount,
		noProgressCount: noProgressCount,
	}
	head.whiteCastleOnce.Do(func() {})
	head.whiteKingSide, head.whiteQueenSide = whiteKingSide, whiteQueenSide
	head.blackCastleOnce.Do(func() {})
	head.blackKingSide, head.blackQueenSide = blackKingSide, blackQueenSide
	return head
}

// IsInCheck reports whether side_to_move's king is currently attacked.
func (g *GameState) IsInCheck() bool {
	return g.board.IsInCheck(g.sideToMove)
}

// IsDraw reports threefold repetition, the 50-move rule, insufficient
// material (only kings left), or stalemate.
func (g *GameState) IsDraw() bool {
	if g.repetitionCount >= 3 {
		return true
	}
	if g.noProgressCount >= 50 {
		return true
	}
	if g.board.OnlyKings() {
		return true
	}
	return !g.IsInCheck() && len(g.LegalMoves()) == 0
}

// IsCheckmate reports that side_to_move has no legal move while in check.
func (g *GameState) IsCheckmate() bool {
	return g.IsInCheck() && len(g.LegalMoves()) == 0
}
