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

package mcts

import (
	"context"
	"os"
	"path"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/nn"
	"github.com/frankkopp/FrankyGo/state"
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

// materialNet scores every position with the same small constant value and
// counts how many Value calls it receives.
type materialNet struct {
	mu    sync.Mutex
	calls int
}

func (n *materialNet) Value(batch []nn.Tensor) []float32 {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
	out := make([]float32, len(batch))
	for i := range out {
		out[i] = 0.01
	}
	return out
}

func (n *materialNet) Policy(batch []nn.Tensor) [][]float32 {
	out := make([][]float32, len(batch))
	for i := range out {
		out[i] = make([]float32, encoder.PolicyLength)
	}
	return out
}

func TestRunExpandsRootAndPicksLegalMove(t *testing.T) {
	net := &materialNet{}
	e := evaluator.New(net, 1)
	g := state.NewInitial()

	s := New(g, e, 0)
	s.Run(50)

	move := s.BestMove(true)
	found := false
	for _, m := range g.LegalMoves() {
		if m == move {
			found = true
		}
	}
	assert.True(t, found, "best move must be one of the root's legal moves")
	assert.Equal(t, 50, s.RootVisits())
}

func TestPolicyVectorSumsToOne(t *testing.T) {
	net := &materialNet{}
	e := evaluator.New(net, 1)
	g := state.NewInitial()

	s := New(g, e, 0)
	s.Run(30)

	vec := s.PolicyVector()
	var total float32
	for _, v := range vec {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-4)
}

func TestRunBatchLeafParallelReachesIterationCount(t *testing.T) {
	net := &materialNet{}
	e := evaluator.New(net, 2)
	e.Start()
	defer e.Shutdown()
	config.Settings.Evaluator.UseAsyncInference = true
	defer func() { config.Settings.Evaluator.UseAsyncInference = false }()

	g := state.NewInitial()
	s := New(g, e, 0)
	s.RunBatch(32, 8)

	assert.Equal(t, 32, s.RootVisits())
}

// TestRunPanicsOnConcurrentCall verifies the run-guard rejects a second
// Run/RunBatch invocation while one is already in progress on the same
// Search.
func TestRunPanicsOnConcurrentCall(t *testing.T) {
	net := &materialNet{}
	e := evaluator.New(net, 1)
	g := state.NewInitial()
	s := New(g, e, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	started := make(chan struct{})
	go func() {
		defer wg.Done()
		s.running.Acquire(context.Background(), 1)
		close(started)
		time.Sleep(20 * time.Millisecond)
		s.running.Release(1)
	}()

	<-started
	assert.Panics(t, func() { s.Run(1) })
	wg.Wait()
}

// TestSeededSearchIsDeterministic verifies that two Searches built with the
// same WithSeed produce identical policy vectors - the fixed-seed
// reproducibility property every run's Dirichlet noise and child-order
// shuffle must satisfy.
func TestSeededSearchIsDeterministic(t *testing.T) {
	g := state.NewInitial()

	run := func() [encoder.PolicyLength]float32 {
		net := &materialNet{}
		e := evaluator.New(net, 1)
		s := New(g, e, 0, WithSeed(42))
		s.Run(40)
		return s.PolicyVector()
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestDeterministicBestMovePicksMostVisited(t *testing.T) {
	net := &materialNet{}
	e := evaluator.New(net, 1)
	g := state.NewInitial()

	s := New(g, e, 0)
	s.Run(100)

	var best *Node
	for _, c := range s.root.children {
		if best == nil || c.Visits() > best.Visits() {
			best = c
		}
	}
	assert.Equal(t, best.move, s.BestMove(true))
}
