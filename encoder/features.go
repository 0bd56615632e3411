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

// Package encoder turns a state.GameState into the (119,8,8) feature tensor
// the network consumes, and provides the move <-> policy-index bijection
// used to read and write the 4672-wide policy vector.
package encoder

import (
	"github.com/frankkopp/FrankyGo/nn"
	"github.com/frankkopp/FrankyGo/state"
	. "github.com/frankkopp/FrankyGo/types"
)

const (
	planesPerHistory = 14
	maxHistory       = 8
	// FeatureChannels is the total channel count: 8 history slabs of 14
	// planes each, plus 7 auxiliary planes.
	FeatureChannels = planesPerHistory*maxHistory + 7
)

// setPieces fills the 12 piece planes of history slab nth: planes 0..5 for
// mover's pieces, 6..11 for the opponent's, regardless of whose turn it
// actually was at that historical state - orientation is always relative to
// the side to move in the root state being encoded.
func setPieces(b boardLike, mover Color, nth int, t nn.Tensor) {
	for sq := SqA1; sq < SqNone; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		base := 0
		if p.ColorOf() != mover {
			base = 6
		}
		var offset int
		switch p.TypeOf() {
		case Pawn:
			offset = 0
		case Knight:
			offset = 1
		case Bishop:
			offset = 2
		case Rook:
			offset = 3
		case Queen:
			offset = 4
		case King:
			offset = 5
		}
		t.Set(nth*planesPerHistory+base+offset, int(sq), 1)
	}
}

// boardLike is the subset of board.Board the encoder needs; state.GameState
// exposes it through Board().
type boardLike interface {
	PieceAt(sq Square) Piece
}

func setRepetitions(repCount, nth int, t nn.Tensor) {
	if repCount >= 2 {
		fillPlane(t, nth*planesPerHistory+12, 1)
	}
	if repCount >= 3 {
		fillPlane(t, nth*planesPerHistory+13, 1)
	}
}

func fillPlane(t nn.Tensor, channel int, v float32) {
	for sq := 0; sq < 64; sq++ {
		t.Set(channel, sq, v)
	}
}

const (
	auxSideToMove     = planesPerHistory*maxHistory + 0
	auxTotalMoveCount = planesPerHistory*maxHistory + 1
	auxMoverKingSide  = planesPerHistory*maxHistory + 2
	auxMoverQueenSide = planesPerHistory*maxHistory + 3
	auxOppKingSide    = planesPerHistory*maxHistory + 4
	auxOppQueenSide   = planesPerHistory*maxHistory + 5
	auxNoProgress     = planesPerHistory*maxHistory + 6
)

// Encode builds the (119,8,8) feature tensor for g, walking up to 7
// predecessors via Prev for the history slabs. Piece orientation is always
// mover-first: g's side to move populates planes 0..5 of every slab.
func Encode(g *state.GameState) nn.Tensor {
	t := nn.NewTensor(FeatureChannels)
	mover := g.SideToMove()

	cur := g
	for nth := 0; nth < maxHistory && cur != nil; nth++ {
		b := cur.Board()
		setPieces(b, mover, nth, t)
		setRepetitions(cur.RepetitionCount(), nth, t)
		cur = cur.Prev()
	}

	if mover == Black {
		fillPlane(t, auxSideToMove, 1)
	}
	fillPlane(t, auxTotalMoveCount, float32(g.TotalMoveCount()))
	fillPlane(t, auxNoProgress, float32(g.NoProgressCount()))

	moverKingSide, moverQueenSide := g.CanCastle(mover)
	oppKingSide, oppQueenSide := g.CanCastle(mover.Flip())
	if moverKingSide {
		fillPlane(t, auxMoverKingSide, 1)
	}
	if moverQueenSide {
		fillPlane(t, auxMoverQueenSide, 1)
	}
	if oppKingSide {
		fillPlane(t, auxOppKingSide, 1)
	}
	if oppQueenSide {
		fillPlane(t, auxOppQueenSide, 1)
	}

	return t
}
