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
	. "github.com/frankkopp/FrankyGo/types"
)

var queenDirections = [8]Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}
var bishopDirections = [4]Direction{Northeast, Northwest, Southeast, Southwest}
var rookDirections = [4]Direction{North, South, East, West}

// knightDeltas is the eight (file, rank) offsets of a knight jump.
var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func squareDelta(sq Square, df, dr int) Square {
	f := int(sq.FileOf()) + df
	r := int(sq.RankOf()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return SqNone
	}
	return SquareOf(File(f), Rank(r))
}

// slidingAttacks walks from sq along each direction in dirs until it runs off
// the board or hits an occupied square, which is included (it is attacked,
// whether or not it can legally be captured).
func (b Board) slidingAttacks(sq Square, dirs []Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for cur := sq.To(d); cur != SqNone; cur = cur.To(d) {
			attacks |= cur.Bb()
			if !b.PieceAt(cur).IsEmpty() {
				break
			}
		}
	}
	return attacks
}

func knightAttacks(sq Square) Bitboard {
	var attacks Bitboard
	for _, delta := range knightDeltas {
		if to := squareDelta(sq, delta[0], delta[1]); to != SqNone {
			attacks |= to.Bb()
		}
	}
	return attacks
}

func kingAttacks(sq Square) Bitboard {
	var attacks Bitboard
	for _, d := range queenDirections {
		if to := sq.To(d); to != SqNone {
			attacks |= to.Bb()
		}
	}
	return attacks
}

func pawnAttacks(c Color, sq Square) Bitboard {
	var attacks Bitboard
	if c == White {
		if to := sq.To(Northeast); to != SqNone {
			attacks |= to.Bb()
		}
		if to := sq.To(Northwest); to != SqNone {
			attacks |= to.Bb()
		}
	} else {
		if to := sq.To(Southeast); to != SqNone {
			attacks |= to.Bb()
		}
		if to := sq.To(Southwest); to != SqNone {
			attacks |= to.Bb()
		}
	}
	return attacks
}

// AttackedMask returns every square attacked or defended by side's pieces,
// used by IsInCheck and by state's castling-through-check test.
func (b Board) AttackedMask(side Color) Bitboard {
	var mask Bitboard
	for sq := SqA1; sq < SqNone; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.ColorOf() != side {
			continue
		}
		switch p.TypeOf() {
		case Pawn:
			mask |= pawnAttacks(side, sq)
		case Knight:
			mask |= knightAttacks(sq)
		case King:
			mask |= kingAttacks(sq)
		case Bishop:
			mask |= b.slidingAttacks(sq, bishopDirections[:])
		case Rook:
			mask |= b.slidingAttacks(sq, rookDirections[:])
		case Queen:
			mask |= b.slidingAttacks(sq, queenDirections[:])
		}
	}
	return mask
}
