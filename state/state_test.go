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
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/board"
	"github.com/frankkopp/FrankyGo/config"
	. "github.com/frankkopp/FrankyGo/types"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestInitialStateHasTwentyLegalMoves(t *testing.T) {
	g := NewInitial()
	assert.Len(t, g.LegalMoves(), 20)
	assert.Equal(t, 1, g.RepetitionCount())
	assert.Equal(t, 0, g.NoProgressCount())
}

func TestApplyAdvancesSideToMoveAndCounters(t *testing.T) {
	g := NewInitial()
	child := g.Apply(NewMove(SqE2, SqE4, PtNone))
	assert.Equal(t, Black, child.SideToMove())
	assert.Equal(t, 1, child.TotalMoveCount())
	assert.Equal(t, 0, child.NoProgressCount(), "pawn push resets no-progress")
}

func TestCastlingDeniedThroughCheck(t *testing.T) {
	b := board.Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqH1, MakePiece(White, Rook))
	b = b.WithPiece(SqE8, MakePiece(Black, King))
	b = b.WithPiece(SqF8, MakePiece(Black, Rook)) // attacks f1, blocking O-O

	g := &GameState{board: b, sideToMove: White}
	kingSide, _ := g.CanCastle(White)
	assert.False(t, kingSide, "castling through an attacked square must be denied")
}

func TestCastlingAllowedWhenClear(t *testing.T) {
	b := board.Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqH1, MakePiece(White, Rook))
	b = b.WithPiece(SqE8, MakePiece(Black, King))

	g := &GameState{board: b, sideToMove: White}
	kingSide, queenSide := g.CanCastle(White)
	assert.True(t, kingSide)
	assert.False(t, queenSide, "no rook on a1")
}

func TestEnPassantCaptureIsOffered(t *testing.T) {
	b := board.Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqE8, MakePiece(Black, King))
	b = b.WithPiece(SqE2, MakePiece(White, Pawn))
	b = b.WithPiece(SqD4, MakePiece(Black, Pawn))

	g := &GameState{board: b, sideToMove: White}
	afterPush := g.Apply(NewMove(SqE2, SqE4, PtNone))

	found := false
	for _, m := range afterPush.LegalMoves() {
		if m.From() == SqD4 && m.To() == SqE3 {
			found = true
		}
	}
	assert.True(t, found, "black pawn should be able to take e2e4 en passant")
}

func TestThreefoldRepetitionIsDraw(t *testing.T) {
	g := NewInitial()
	g = g.Apply(NewMove(SqG1, SqF3, PtNone))
	g = g.Apply(NewMove(SqG8, SqF6, PtNone))
	g = g.Apply(NewMove(SqF3, SqG1, PtNone))
	g = g.Apply(NewMove(SqF6, SqG8, PtNone))
	g = g.Apply(NewMove(SqG1, SqF3, PtNone))
	g = g.Apply(NewMove(SqG8, SqF6, PtNone))
	g = g.Apply(NewMove(SqF3, SqG1, PtNone))
	g = g.Apply(NewMove(SqF6, SqG8, PtNone))
	assert.Equal(t, 3, g.RepetitionCount())
	assert.True(t, g.IsDraw())
}

func TestOnlyKingsIsDraw(t *testing.T) {
	b := board.Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqE8, MakePiece(Black, King))
	g := &GameState{board: b, sideToMove: White, repetitionCount: 1}
	assert.True(t, g.IsDraw())
}
