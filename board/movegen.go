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

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves generates every move side's pieces can physically make:
// pawn pushes, captures and promotions, knight/bishop/rook/queen/king moves.
// It does not know about castling rights or the en-passant target square -
// those live in package state and are added on top of this set.
func (b Board) PseudoLegalMoves(side Color) []Move {
	var moves []Move
	for sq := SqA1; sq < SqNone; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.ColorOf() != side {
			continue
		}
		switch p.TypeOf() {
		case Pawn:
			b.genPawnMoves(side, sq, &moves)
		case Knight:
			b.genStepMoves(side, sq, knightAttacks(sq), &moves)
		case King:
			b.genStepMoves(side, sq, kingAttacks(sq), &moves)
		case Bishop:
			b.genSliderMoves(side, sq, bishopDirections[:], &moves)
		case Rook:
			b.genSliderMoves(side, sq, rookDirections[:], &moves)
		case Queen:
			b.genSliderMoves(side, sq, queenDirections[:], &moves)
		}
	}
	return moves
}

func (b Board) genStepMoves(side Color, from Square, targets Bitboard, moves *[]Move) {
	for to := SqA1; to < SqNone; to++ {
		if !targets.Has(to) {
			continue
		}
		occ := b.PieceAt(to)
		if occ.IsEmpty() || occ.ColorOf() != side {
			*moves = append(*moves, NewMove(from, to, PtNone))
		}
	}
}

func (b Board) genSliderMoves(side Color, from Square, dirs []Direction, moves *[]Move) {
	for _, d := range dirs {
		for to := from.To(d); to != SqNone; to = to.To(d) {
			occ := b.PieceAt(to)
			if occ.IsEmpty() {
				*moves = append(*moves, NewMove(from, to, PtNone))
				continue
			}
			if occ.ColorOf() != side {
				*moves = append(*moves, NewMove(from, to, PtNone))
			}
			break
		}
	}
}

func (b Board) genPawnMoves(side Color, from Square, moves *[]Move) {
	forward := North
	startRank := Rank2
	lastRank := Rank8
	if side == Black {
		forward = South
		startRank = Rank7
		lastRank = Rank1
	}

	addMove := func(to Square, promo bool) {
		if !promo {
			*moves = append(*moves, NewMove(from, to, PtNone))
			return
		}
		for _, pt := range promotionTypes {
			*moves = append(*moves, NewMove(from, to, pt))
		}
	}

	// single push
	if one := from.To(forward); one != SqNone && b.PieceAt(one).IsEmpty() {
		addMove(one, one.RankOf() == lastRank)
		// double push from the starting rank, only if the single step is clear
		if from.RankOf() == startRank {
			if two := one.To(forward); two != SqNone && b.PieceAt(two).IsEmpty() {
				addMove(two, false)
			}
		}
	}

	// diagonal captures
	for _, d := range pawnCaptureDirections(side) {
		to := from.To(d)
		if to == SqNone {
			continue
		}
		occ := b.PieceAt(to)
		if !occ.IsEmpty() && occ.ColorOf() != side {
			addMove(to, to.RankOf() == lastRank)
		}
	}
}

func pawnCaptureDirections(side Color) [2]Direction {
	if side == White {
		return [2]Direction{Northeast, Northwest}
	}
	return [2]Direction{Southeast, Southwest}
}
