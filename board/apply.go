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

package board

import (
	"github.com/frankkopp/FrankyGo/assert"
	. "github.com/frankkopp/FrankyGo/types"
)

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Apply returns the board after m is played. It is pure - b itself is left
// untouched. Castling and en-passant are recognized from the from/to squares
// alone (see the Move doc comment); there is no separate move-type bit.
func (b Board) Apply(m Move) Board {
	from, to := m.From(), m.To()
	p := b.PieceAt(from)
	if assert.DEBUG {
		assert.Assert(!p.IsEmpty(), "Apply: no piece on from square")
	}
	side := p.ColorOf()
	nb := b

	switch {
	case p.TypeOf() == King && abs(int(to.FileOf())-int(from.FileOf())) == 2:
		nb = nb.castle(side, from, to)
	case p.TypeOf() == Pawn && from.FileOf() != to.FileOf() && b.PieceAt(to).IsEmpty():
		capturedSq := SquareOf(to.FileOf(), from.RankOf())
		nb.squares[capturedSq] = PieceNone
	}

	placed := p
	if m.IsPromotion() {
		placed = MakePiece(side, m.Promotion())
	}
	nb.squares[from] = PieceNone
	nb.squares[to] = placed
	return nb
}

// castle moves the rook that belongs to a two-square king move. from/to are
// the king's squares; the rook jump is derived from them.
func (b Board) castle(side Color, kingFrom, kingTo Square) Board {
	nb := b
	rank := kingFrom.RankOf()
	if kingTo.FileOf() == FileG {
		rookFrom := SquareOf(FileH, rank)
		rookTo := SquareOf(FileF, rank)
		nb.squares[rookFrom] = PieceNone
		nb.squares[rookTo] = MakePiece(side, Rook)
	} else {
		rookFrom := SquareOf(FileA, rank)
		rookTo := SquareOf(FileD, rank)
		nb.squares[rookFrom] = PieceNone
		nb.squares[rookTo] = MakePiece(side, Rook)
	}
	return nb
}
