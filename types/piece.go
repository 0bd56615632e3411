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

// Piece is a tagged value: a PieceType and a Color packed into one byte,
// encodable in 4 bits. PieceNone represents an empty square.
type Piece int8

//noinspection GoUnusedConst
const (
	PieceNone Piece = 0
)

// MakePiece builds a Piece from a color and a piece type. MakePiece with
// PtNone always yields PieceNone regardless of color.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	return Piece(int(c)<<3 + int(pt))
}

// TypeOf returns the piece kind, ignoring color.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ColorOf returns the side the piece belongs to. Undefined for PieceNone.
func (p Piece) ColorOf() Color {
	return Color((p >> 3) & 1)
}

// IsEmpty reports whether the square holding this piece is empty.
func (p Piece) IsEmpty() bool {
	return p == PieceNone
}

// String renders the piece as a FEN-style letter, upper case for White,
// lower case for Black, "-" for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "-"
	}
	c := p.TypeOf().Char()
	if p.ColorOf() == Black {
		return string(rune(c[0]) + ('a' - 'A'))
	}
	return c
}
