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
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/config"
	. "github.com/frankkopp/FrankyGo/types"
)

// make tests run in the project's root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestInitialBoardPieceCounts(t *testing.T) {
	b := InitialBoard()
	pawns, others := 0, 0
	for sq := SqA1; sq < SqNone; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		if p.TypeOf() == Pawn {
			pawns++
		} else {
			others++
		}
	}
	assert.Equal(t, 16, pawns)
	assert.Equal(t, 16, others)
	assert.Equal(t, MakePiece(White, Rook), b.PieceAt(SqA1))
	assert.Equal(t, MakePiece(Black, King), b.PieceAt(SqE8))
}

func TestWithPieceIsPure(t *testing.T) {
	b := Empty()
	nb := b.WithPiece(SqE4, MakePiece(White, Queen))
	assert.True(t, b.PieceAt(SqE4).IsEmpty())
	assert.Equal(t, MakePiece(White, Queen), nb.PieceAt(SqE4))
}

func TestKingSquareAndCheck(t *testing.T) {
	b := Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqE8, MakePiece(Black, King))
	assert.Equal(t, SqE1, b.KingSquare(White))
	assert.False(t, b.IsInCheck(White))

	b = b.WithPiece(SqE7, MakePiece(Black, Rook))
	assert.True(t, b.IsInCheck(White))
}

func TestPawnPseudoLegalMovesIncludesDoublePush(t *testing.T) {
	b := InitialBoard()
	moves := b.PseudoLegalMoves(White)
	found := false
	for _, m := range moves {
		if m.From() == SqE2 && m.To() == SqE4 {
			found = true
		}
	}
	assert.True(t, found, "expected e2e4 among white's pseudo-legal moves")
}

func TestSliderStopsAtFirstBlocker(t *testing.T) {
	b := Empty()
	b = b.WithPiece(SqA1, MakePiece(White, Rook))
	b = b.WithPiece(SqA4, MakePiece(Black, Pawn))
	moves := b.PseudoLegalMoves(White)
	destinations := map[Square]bool{}
	for _, m := range moves {
		destinations[m.To()] = true
	}
	assert.True(t, destinations[SqA2])
	assert.True(t, destinations[SqA3])
	assert.True(t, destinations[SqA4], "rook should be able to capture the blocker")
	assert.False(t, destinations[SqA5], "rook should not see past the blocker")
}

func TestApplyCastlingMovesBothPieces(t *testing.T) {
	b := Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqH1, MakePiece(White, Rook))
	nb := b.Apply(NewMove(SqE1, SqG1, PtNone))
	assert.Equal(t, MakePiece(White, King), nb.PieceAt(SqG1))
	assert.Equal(t, MakePiece(White, Rook), nb.PieceAt(SqF1))
	assert.True(t, nb.PieceAt(SqE1).IsEmpty())
	assert.True(t, nb.PieceAt(SqH1).IsEmpty())
}

func TestApplyEnPassantRemovesCapturedPawn(t *testing.T) {
	b := Empty()
	b = b.WithPiece(SqE5, MakePiece(White, Pawn))
	b = b.WithPiece(SqD5, MakePiece(Black, Pawn))
	nb := b.Apply(NewMove(SqE5, SqD6, PtNone))
	assert.Equal(t, MakePiece(White, Pawn), nb.PieceAt(SqD6))
	assert.True(t, nb.PieceAt(SqD5).IsEmpty(), "captured pawn should be removed")
}

func TestApplyPromotion(t *testing.T) {
	b := Empty()
	b = b.WithPiece(SqA7, MakePiece(White, Pawn))
	nb := b.Apply(NewMove(SqA7, SqA8, Queen))
	assert.Equal(t, MakePiece(White, Queen), nb.PieceAt(SqA8))
}
