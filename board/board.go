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

// Package board implements the square-indexed piece array board model:
// per-piece pseudo-legal move generation and pure move application. It is
// deliberately bitboard-free for piece placement (spec.md §3); Bitboard
// from package types is only used here for attacked-square masks, which are
// a derived, throwaway value rather than the board's storage.
package board

import (
	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/logging"
	. "github.com/frankkopp/FrankyGo/types"
)

var log = logging.Get("board")

// Board is a 64-square snapshot mapping square to piece. Equality is by
// piece placement only - two Boards with the same pieces on the same
// squares are equal regardless of how they were constructed.
type Board struct {
	squares [64]Piece
}

// Empty returns a Board with no pieces on it.
func Empty() Board {
	return Board{}
}

// PieceAt returns the piece occupying sq, or PieceNone if sq is empty.
func (b Board) PieceAt(sq Square) Piece {
	if assert.DEBUG {
		assert.Assert(sq.IsValid(), "PieceAt: invalid square")
	}
	return b.squares[sq]
}

// WithPiece returns a copy of b with p placed on sq (pure - does not modify b).
func (b Board) WithPiece(sq Square, p Piece) Board {
	nb := b
	nb.squares[sq] = p
	return nb
}

// Equals reports whether two boards hold the same piece on every square.
func (b Board) Equals(other Board) bool {
	return b.squares == other.squares
}

// OnlyKings reports whether the only pieces left on the board are the two kings.
func (b Board) OnlyKings() bool {
	for _, p := range b.squares {
		if p != PieceNone && p.TypeOf() != King {
			return false
		}
	}
	return true
}

// KingSquare returns the square holding c's king, or SqNone if c has no king
// on the board (the assert on that case only fires when assert.DEBUG is set).
func (b Board) KingSquare(c Color) Square {
	for sq := SqA1; sq < SqNone; sq++ {
		p := b.squares[sq]
		if p.TypeOf() == King && p.ColorOf() == c {
			return sq
		}
	}
	if assert.DEBUG {
		assert.Assert(false, "KingSquare: no king for side on board")
	}
	return SqNone
}

// IsInCheck reports whether c's king is currently attacked by the opponent.
func (b Board) IsInCheck(c Color) bool {
	kingSq := b.KingSquare(c)
	return b.AttackedMask(c.Flip()).Has(kingSq)
}

// InitialBoard returns the standard chess starting position.
func InitialBoard() Board {
	b := Empty()
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := FileA; f <= FileH; f++ {
		b.squares[SquareOf(f, Rank1)] = MakePiece(White, backRank[f])
		b.squares[SquareOf(f, Rank2)] = MakePiece(White, Pawn)
		b.squares[SquareOf(f, Rank7)] = MakePiece(Black, Pawn)
		b.squares[SquareOf(f, Rank8)] = MakePiece(Black, backRank[f])
	}
	return b
}
