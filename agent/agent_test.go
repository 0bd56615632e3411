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

package agent

import (
	"os"
	"path"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/nn"
	"github.com/frankkopp/FrankyGo/state"
	"github.com/frankkopp/FrankyGo/types"
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

// flatNet treats every position as dead even, so games run out the move
// cap rather than converging on a forced mate - useful for exercising the
// full self-play loop without depending on search quality.
type flatNet struct{}

func (flatNet) Value(batch []nn.Tensor) []float32 {
	out := make([]float32, len(batch))
	return out
}

func (flatNet) Policy(batch []nn.Tensor) [][]float32 {
	out := make([][]float32, len(batch))
	for i := range out {
		out[i] = make([]float32, encoder.PolicyLength)
	}
	return out
}

func TestPlayGameStopsAtMoveCapAndLeavesDrawResult(t *testing.T) {
	orig := config.Settings.SelfPlay.MaxGameMovesUntilDraw
	origIterations := config.Settings.MCTS.NumMctsIterations
	config.Settings.SelfPlay.MaxGameMovesUntilDraw = 4
	config.Settings.MCTS.NumMctsIterations = 8
	defer func() {
		config.Settings.SelfPlay.MaxGameMovesUntilDraw = orig
		config.Settings.MCTS.NumMctsIterations = origIterations
	}()

	e := evaluator.New(flatNet{}, 1)
	exps := PlayGame(e, 0, nil)

	assert.Len(t, exps, 4)
	for _, exp := range exps {
		assert.Equal(t, float32(0), exp.Result)
	}
}

// recordingTelemetry is a minimal MoveRecorder spy.
type recordingTelemetry struct {
	mu    sync.Mutex
	calls []int
}

func (r *recordingTelemetry) RecordMove(workerID, totalMove int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, totalMove)
}

func TestPlayGameReportsMoveProgressToTelemetry(t *testing.T) {
	orig := config.Settings.SelfPlay.MaxGameMovesUntilDraw
	origIterations := config.Settings.MCTS.NumMctsIterations
	config.Settings.SelfPlay.MaxGameMovesUntilDraw = 3
	config.Settings.MCTS.NumMctsIterations = 8
	defer func() {
		config.Settings.SelfPlay.MaxGameMovesUntilDraw = orig
		config.Settings.MCTS.NumMctsIterations = origIterations
	}()

	e := evaluator.New(flatNet{}, 1)
	rec := &recordingTelemetry{}
	PlayGame(e, 0, rec)

	assert.Equal(t, []int{1, 2, 3}, rec.calls)
}

func experienceAt(g *state.GameState) experience.Experience {
	var policy [encoder.PolicyLength]float32
	return experience.New(g, policy)
}

func TestLabelAssignsWinnerAndLoser(t *testing.T) {
	white := state.NewInitial()
	black := white.Apply(types.NewMove(types.SqE2, types.SqE4, types.PtNone))
	exps := []experience.Experience{experienceAt(white), experienceAt(black)}

	Label(exps, types.White)

	assert.Equal(t, float32(-1), exps[0].Result)
	assert.Equal(t, float32(1), exps[1].Result)
}
