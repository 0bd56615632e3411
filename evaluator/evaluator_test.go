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

package evaluator

import (
	"os"
	"path"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/board"
	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/nn"
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

// constantNet returns the same value for every position it is asked about
// and records the largest batch size it was ever called with.
type constantNet struct {
	mu          sync.Mutex
	value       float32
	maxBatch    int
	calls       int
}

func (n *constantNet) Value(batch []nn.Tensor) []float32 {
	n.mu.Lock()
	n.calls++
	if len(batch) > n.maxBatch {
		n.maxBatch = len(batch)
	}
	n.mu.Unlock()
	out := make([]float32, len(batch))
	for i := range out {
		out[i] = n.value
	}
	return out
}

func (n *constantNet) Policy(batch []nn.Tensor) [][]float32 {
	out := make([][]float32, len(batch))
	for i := range out {
		out[i] = make([]float32, encodePolicyLength)
	}
	return out
}

const encodePolicyLength = 4672

func TestEvaluateShortCircuitsDraw(t *testing.T) {
	net := &constantNet{value: 0.5}
	e := New(net, 1)

	b := emptyTwoKingsState()
	assert.Equal(t, float32(0), e.Evaluate(b))
	assert.Equal(t, 0, net.calls, "draw must not touch the network")
}

func TestEvaluateCallsNetworkForOngoingGame(t *testing.T) {
	net := &constantNet{value: 0.25}
	e := New(net, 1)
	g := state.NewInitial()
	assert.Equal(t, float32(0.25), e.Evaluate(g))
	assert.Equal(t, 1, net.calls)
}

func TestEvaluateBatchSkipsTerminalStates(t *testing.T) {
	net := &constantNet{value: 0.1}
	e := New(net, 1)

	draw := emptyTwoKingsState()
	ongoing := state.NewInitial()

	scores := e.EvaluateBatch([]*state.GameState{draw, ongoing})
	assert.Equal(t, float32(0), scores[0])
	assert.Equal(t, float32(0.1), scores[1])
	assert.Equal(t, 1, net.maxBatch, "only the ongoing state should reach the network")
}

func TestEvaluateAsyncRoundTrips(t *testing.T) {
	net := &constantNet{value: 0.7}
	e := New(net, 2)
	e.Start()
	defer e.Shutdown()

	var wg sync.WaitGroup
	results := make([]float32, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			results[workerID] = e.EvaluateAsync(state.NewInitial(), workerID)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, float32(0.7), r)
	}
}

// TestShutdownWakesPendingWorkerSlot verifies that a worker blocked on
// EvaluateAsync does not hang forever when Shutdown runs before any
// inference worker ever drains its queue entry.
func TestShutdownWakesPendingWorkerSlot(t *testing.T) {
	net := &constantNet{value: 0.9}
	e := New(net, 0) // no inference workers started, nothing will ever drain the queue

	done := make(chan float32, 1)
	go func() {
		done <- e.EvaluateAsync(state.NewInitial(), 0)
	}()

	time.Sleep(10 * time.Millisecond) // let the goroutine enqueue and block on its slot
	e.Shutdown()

	select {
	case v := <-done:
		assert.Equal(t, float32(0), v)
	case <-time.After(time.Second):
		t.Fatal("EvaluateAsync did not wake up after Shutdown")
	}
}

func emptyTwoKingsState() *state.GameState {
	b := board.Empty()
	b = b.WithPiece(SqE1, MakePiece(White, King))
	b = b.WithPiece(SqE8, MakePiece(Black, King))
	return state.FromBoard(b, White)
}
