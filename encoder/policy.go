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

package encoder

import (
	"github.com/frankkopp/FrankyGo/assert"
	. "github.com/frankkopp/FrankyGo/types"
)

// PolicyLength is the size of the flat policy vector: 73 planes * 8 * 8.
const PolicyLength = 73 * 8 * 8

const (
	planeQueenN  = 0 * 7
	planeQueenNE = 1 * 7
	planeQueenE  = 2 * 7
	planeQueenSE = 3 * 7
	planeQueenS  = 4 * 7
	planeQueenSW = 5 * 7
	planeQueenW  = 6 * 7
	planeQueenNW = 7 * 7

	planeKnightBase       = 56
	planeUnderpromoteBase = 64
)

// knightDeltas mirrors board.knightDeltas's order - plane index i corresponds
// to the i-th (file, rank) offset here.
var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var underpromotionPieces = [3]PieceType{Knight, Bishop, Rook}

// MovePolicyIndex maps a legal move to its slot in the length-4672 policy
// vector: index = plane*64 + from_square. Queen promotions share the
// ordinary queen-move plane for the forward square; see spec.md §4.3.
func MovePolicyIndex(m Move) int {
	from, to := m.From(), m.To()
	df := int(to.FileOf()) - int(from.FileOf())
	dr := int(to.RankOf()) - int(from.RankOf())

	if m.IsPromotion() && m.Promotion() != Queen {
		group := 0
		for i, pt := range underpromotionPieces {
			if pt == m.Promotion() {
				group = i
			}
		}
		// df in {-1, 0, 1}: capture-left, straight, capture-right.
		plane := planeUnderpromoteBase + group*3 + (df + 1)
		return plane*64 + int(from)
	}

	switch {
	case df == 0 && dr != 0:
		dist := abs(dr) - 1
		if dr > 0 {
			return (planeQueenN + dist) * 64 + int(from)
		}
		return (planeQueenS + dist) * 64 + int(from)
	case dr == 0 && df != 0:
		dist := abs(df) - 1
		if df > 0 {
			return (planeQueenE + dist) * 64 + int(from)
		}
		return (planeQueenW + dist) * 64 + int(from)
	case abs(df) == abs(dr) && df != 0:
		dist := abs(df) - 1
		switch {
		case df > 0 && dr > 0:
			return (planeQueenNE + dist) * 64 + int(from)
		case df > 0 && dr < 0:
			return (planeQueenSE + dist) * 64 + int(from)
		case df < 0 && dr > 0:
			return (planeQueenNW + dist) * 64 + int(from)
		default:
			return (planeQueenSW + dist) * 64 + int(from)
		}
	default:
		for i, delta := range knightDeltas {
			if delta[0] == df && delta[1] == dr {
				return (planeKnightBase + i) * 64 + int(from)
			}
		}
	}

	if assert.DEBUG {
		assert.Assert(false, "MovePolicyIndex: move does not match any plane")
	}
	return -1
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// DecodeMove is the inverse of MovePolicyIndex: idx in [0, PolicyLength)
// maps back to the move that produced it. promoteToQueen must be true iff
// the move being decoded was a queen promotion - the queen-promotion and
// plain-forward-move cases share a plane (see spec.md §4.3), so the one bit
// the plane index cannot carry is supplied by the caller, the way a board
// position supplies it in practice: a pawn reaching the back rank on a
// plain-move plane is a queen promotion, anything else on that plane is not.
func DecodeMove(idx int, promoteToQueen bool) Move {
	plane := idx / 64
	from := Square(idx % 64)

	if plane >= planeUnderpromoteBase {
		rel := plane - planeUnderpromoteBase
		group := rel / 3
		df := rel%3 - 1
		dr := 1
		if from.RankOf() == Rank2 {
			dr = -1
		}
		to := SquareOf(from.FileOf()+File(df), from.RankOf()+Rank(dr))
		return NewMove(from, to, underpromotionPieces[group])
	}

	group := plane / 7
	dist := plane%7 + 1

	var df, dr int
	switch group {
	case planeQueenN / 7:
		df, dr = 0, dist
	case planeQueenNE / 7:
		df, dr = dist, dist
	case planeQueenE / 7:
		df, dr = dist, 0
	case planeQueenSE / 7:
		df, dr = dist, -dist
	case planeQueenS / 7:
		df, dr = 0, -dist
	case planeQueenSW / 7:
		df, dr = -dist, -dist
	case planeQueenW / 7:
		df, dr = -dist, 0
	case planeQueenNW / 7:
		df, dr = -dist, dist
	default:
		i := plane - planeKnightBase
		df, dr = knightDeltas[i][0], knightDeltas[i][1]
	}

	to := SquareOf(from.FileOf()+File(df), from.RankOf()+Rank(dr))
	promo := PtNone
	if promoteToQueen {
		promo = Queen
	}
	return NewMove(from, to, promo)
}

// PolicyVectorFromVisits builds the length-4672 training target from a set
// of moves and their MCTS visit counts, normalized to a probability
// distribution.
func PolicyVectorFromVisits(moves []Move, visits []int) [PolicyLength]float32 {
	var vec [PolicyLength]float32
	total := 0
	for _, v := range visits {
		total += v
	}
	if total == 0 {
		return vec
	}
	for i, m := range moves {
		vec[MovePolicyIndex(m)] = float32(visits[i]) / float32(total)
	}
	return vec
}
