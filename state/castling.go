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

package state

import (
	. "github.com/frankkopp/FrankyGo/types"
)

// CastlingRights tracks which pieces have ever moved. Monotone: once true,
// never cleared within a game line.
type CastlingRights struct {
	KingMoved      bool
	KingRookMoved  bool
	QueenRookMoved bool
}

// updateFrom sets the rights flags that the piece leaving from implies,
// regardless of what piece it actually was - a rook leaving a1 disables
// queen-side castling even if a different piece is on a1 by the time this
// is checked historically, which can never happen since the flag is sticky.
func (r CastlingRights) updateFrom(side Color, from Square) CastlingRights {
	homeRank := Rank1
	if side == Black {
		homeRank = Rank8
	}
	if from.RankOf() != homeRank {
		return r
	}
	switch from.FileOf() {
	case FileE:
		r.KingMoved = true
	case FileA:
		r.QueenRookMoved = true
	case FileH:
		r.KingRookMoved = true
	}
	return r
}

// castling bitmask layout per side: attack-check includes the king's start,
// pass-through and landing squares; move-check is the squares between king
// and rook that must be empty. Both are precomputed once, per spec.md §4.2.
var (
	kingSideAttackCheck  [2]Bitboard
	queenSideAttackCheck [2]Bitboard
	kingSideMoveCheck    [2]Bitboard
	queenSideMoveCheck   [2]Bitboard
)

func init() {
	for _, c := range [2]Color{White, Black} {
		rank := Rank1
		if c == Black {
			rank = Rank8
		}
		kingSideAttackCheck[c] = SquareOf(FileE, rank).Bb() | SquareOf(FileF, rank).Bb() | SquareOf(FileG, rank).Bb()
		queenSideAttackCheck[c] = SquareOf(FileE, rank).Bb() | SquareOf(FileD, rank).Bb() | SquareOf(FileC, rank).Bb()
		kingSideMoveCheck[c] = SquareOf(FileF, rank).Bb() | SquareOf(FileG, rank).Bb()
		queenSideMoveCheck[c] = SquareOf(FileB, rank).Bb() | SquareOf(FileC, rank).Bb() | SquareOf(FileD, rank).Bb()
	}
}
