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

// Package types holds the small value types shared by the board, state,
// encoder and mcts packages: squares, colors, piece kinds, directions and
// moves. The board itself is deliberately array based (see package board);
// Bitboard here only carries 64-bit square masks (castling-rights checks,
// attacked squares, occupancy), never the board's piece placement.
package types

// Bitboard is a 64-bit mask, one bit per square, used for the precomputed
// castling attack-check and move-check masks (spec.md §4.2) and for the
// derived attacked-square and occupancy masks those checks are tested
// against. It is not used to represent piece placement.
type Bitboard uint64

// Bb returns the single-bit Bitboard for this square.
func (sq Square) Bb() Bitboard {
	if !sq.IsValid() {
		return 0
	}
	return Bitboard(1) << uint(sq)
}

// Has reports whether sq's bit is set in b.
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// Intersects reports whether b and other share any set bit.
func (b Bitboard) Intersects(other Bitboard) bool {
	return b&other != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	count := 0
	for b != 0 {
		b &= b - 1
		count++
	}
	return count
}

// squaresOf returns every square set in b, low bit first.
func (b Bitboard) squaresOf() []Square {
	var squares []Square
	for sq := SqA1; sq < SqNone; sq++ {
		if b.Has(sq) {
			squares = append(squares, sq)
		}
	}
	return squares
}
