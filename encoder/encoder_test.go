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
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/state"
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

// TestMovePolicyIndexIsBijectiveOnLegalMoves verifies that every legal move
// from a sampled set of positions maps to a distinct policy slot.
func TestMovePolicyIndexIsBijectiveOnLegalMoves(t *testing.T) {
	positions := []*state.GameState{state.NewInitial()}
	g := state.NewInitial()
	for _, mv := range []Move{
		NewMove(SqE2, SqE4, PtNone),
		NewMove(SqE7, SqE5, PtNone),
		NewMove(SqG1, SqF3, PtNone),
		NewMove(SqB8, SqC6, PtNone),
	} {
		g = g.Apply(mv)
		positions = append(positions, g)
	}

	for _, pos := range positions {
		seen := map[int]Move{}
		for _, m := range pos.LegalMoves() {
			idx := MovePolicyIndex(m)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, PolicyLength)
			if other, ok := seen[idx]; ok {
				t.Fatalf("policy index collision: %s and %s both map to %d", m, other, idx)
			}
			seen[idx] = m
		}
	}
}

// TestDecodeMoveRoundTripsMovePolicyIndex verifies decode_move(encode_move(m)) == m
// for every legal move from a sampled set of positions, including promotions.
func TestDecodeMoveRoundTripsMovePolicyIndex(t *testing.T) {
	positions := []*state.GameState{state.NewInitial()}
	g := state.NewInitial()
	for _, mv := range []Move{
		NewMove(SqE2, SqE4, PtNone),
		NewMove(SqE7, SqE5, PtNone),
		NewMove(SqG1, SqF3, PtNone),
		NewMove(SqB8, SqC6, PtNone),
	} {
		g = g.Apply(mv)
		positions = append(positions, g)
	}

	for _, pos := range positions {
		for _, m := range pos.LegalMoves() {
			idx := MovePolicyIndex(m)
			promotesToQueen := m.IsPromotion() && m.Promotion() == Queen
			assert.Equal(t, m, DecodeMove(idx, promotesToQueen), "round trip for %s at index %d", m, idx)
		}
	}

	queenPromo := NewMove(SqA7, SqA8, Queen)
	assert.Equal(t, queenPromo, DecodeMove(MovePolicyIndex(queenPromo), true))

	knightPromo := NewMove(SqA7, SqA8, Knight)
	assert.Equal(t, knightPromo, DecodeMove(MovePolicyIndex(knightPromo), false))

	bishopCapturePromo := NewMove(SqB7, SqA8, Bishop)
	assert.Equal(t, bishopCapturePromo, DecodeMove(MovePolicyIndex(bishopCapturePromo), false))
}

func TestMovePolicyIndexPromotionPlanes(t *testing.T) {
	queenIdx := MovePolicyIndex(NewMove(SqA7, SqA8, Queen))
	knightIdx := MovePolicyIndex(NewMove(SqA7, SqA8, Knight))
	assert.NotEqual(t, queenIdx, knightIdx, "queen promotion shares the plain forward plane, not an underpromotion plane")
}

func TestEncodeShapeAndSideToMovePlane(t *testing.T) {
	g := state.NewInitial()
	tensor := Encode(g)
	assert.Equal(t, FeatureChannels, tensor.Channels)
	assert.Equal(t, FeatureChannels*64, len(tensor.Data))
	assert.Equal(t, float32(0), tensor.At(auxSideToMove, 0), "white to move clears the side-to-move plane")

	black := g.Apply(NewMove(SqE2, SqE4, PtNone))
	blackTensor := Encode(black)
	assert.Equal(t, float32(1), blackTensor.At(auxSideToMove, 0))
}

func TestEncodeMoverFirstOrientation(t *testing.T) {
	g := state.NewInitial()
	afterWhiteMove := g.Apply(NewMove(SqE2, SqE4, PtNone))
	tensor := Encode(afterWhiteMove)
	// black to move: black's own pawns occupy planes 0..5, not 6..11.
	hasBlackPawnInMoverPlanes := false
	for sq := 0; sq < 64; sq++ {
		if tensor.At(0, sq) == 1 {
			hasBlackPawnInMoverPlanes = true
		}
	}
	assert.True(t, hasBlackPawnInMoverPlanes)
}
