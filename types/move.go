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

package types

import "strings"

// Move is a 16 bit encoding of (from, to, promotion).
//  BITMAP 16-bit
//  |unused|-promo-|-----to------|----from-----|
//  |  15  | 14-12 |    11-6     |     5-0     |
// Castling is a king move of two files; en-passant is a diagonal pawn move
// to an empty square. Neither needs its own bit - board.Apply recognizes
// both from the from/to squares alone, per spec.md §4.1.
type Move uint16

const (
	fromMask  Move = 0x3F
	toShift        = 6
	toMask    Move = 0x3F << toShift
	promShift      = 12
	promMask  Move = 0x7 << promShift
)

// MoveNone is the zero value / sentinel invalid move.
const MoveNone Move = 0

// NewMove encodes a move from its from/to squares and an optional promotion
// piece type (PtNone for a non-promoting move).
func NewMove(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<toShift | Move(promo)<<promShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Promotion returns the promotion piece type, or PtNone for a non-promoting move.
func (m Move) Promotion() PieceType {
	return PieceType((m & promMask) >> promShift)
}

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion() != PtNone
}

// IsValid reports whether m is anything other than the MoveNone sentinel.
func (m Move) IsValid() bool {
	return m != MoveNone
}

var promotionLetters = map[PieceType]string{
	Queen:  "q",
	Knight: "n",
	Bishop: "b",
	Rook:   "r",
}

// String renders the move as "<from><to>[promo]", e.g. "e2e4" or "c7d8q",
// per spec.md §6's move string format.
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo, ok := promotionLetters[m.Promotion()]; ok {
		s += promo
	}
	return s
}

// StringUci is an alias of String kept for parity with the teacher's move
// container API, which formats whole move lists via StringUci.
func (m Move) StringUci() string {
	return m.String()
}

var promotionFromLetter = map[byte]PieceType{
	'q': Queen,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
}

// ParseMove parses the "<from><to>[promo]" format described in spec.md §6.
// Returns MoveNone if the string cannot be parsed.
func ParseMove(s string) Move {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 4 && len(s) != 5 {
		return MoveNone
	}
	from := MakeSquare(s[0:2])
	to := MakeSquare(s[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	promo := PtNone
	if len(s) == 5 {
		pt, ok := promotionFromLetter[s[4]]
		if !ok {
			return MoveNone
		}
		promo = pt
	}
	return NewMove(from, to, promo)
}
