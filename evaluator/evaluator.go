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

// Package evaluator turns GameStates into scalar values by running them
// through an nn.Network, amortizing the cost of a forward pass across
// concurrent self-play and arena workers. It offers synchronous single and
// batch evaluation plus an asynchronous mode backed by a dedicated
// inference worker pool.
package evaluator

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/nn"
	"github.com/frankkopp/FrankyGo/state"
)

// maxInFlightCalls bounds the weight EvaluateAsync/EvaluateAsyncBatch callers
// can hold at once; Shutdown acquires the whole thing to both wait for
// in-flight calls to finish and block new ones from starting.
const maxInFlightCalls = 1 << 30

var log = logging.Get("evaluator")

// InferenceRecorder observes one call per batch an Evaluator's inference
// worker goroutines run, naming which of the workerCount loop instances ran
// it (not the calling self-play worker's ID) and how many states it covered.
type InferenceRecorder interface {
	RecordInference(workerIndex, batchSize int)
}

// Evaluator amortizes network inference across workers. The zero value is
// not usable - construct with New.
type Evaluator struct {
	net      nn.Network
	recorder InferenceRecorder // set via SetRecorder before Start; nil is fine

	shutdownGuard *semaphore.Weighted // held weight-1 while a call is enqueueing; Shutdown acquires it whole and never releases

	queueMu sync.Mutex
	queueCv *sync.Cond
	queue   []queuedBatch
	done    bool

	slotsMu sync.Mutex
	slots   map[int]*workerSlot

	workerCount int
	workersWg   sync.WaitGroup
}

type queuedBatch struct {
	tensors  []nn.Tensor
	workerID int
}

type workerSlot struct {
	mu          sync.Mutex
	cv          *sync.Cond
	resultReady bool
	result      []float32
	aborted     bool // set by Shutdown for a waiter whose batch never got evaluated
}

// New creates an Evaluator backed by net, with workerCount dedicated
// inference goroutines. Call Start to begin draining the async queue.
func New(net nn.Network, workerCount int) *Evaluator {
	e := &Evaluator{
		net:           net,
		slots:         map[int]*workerSlot{},
		workerCount:   workerCount,
		shutdownGuard: semaphore.NewWeighted(maxInFlightCalls),
	}
	e.queueCv = sync.NewCond(&e.queueMu)
	return e
}

// SetRecorder installs r to observe every inference batch this Evaluator's
// workers run. Must be called before Start; not safe to change afterwards.
func (e *Evaluator) SetRecorder(r InferenceRecorder) {
	e.recorder = r
}

// Start launches the inference worker goroutines. Safe to call once.
func (e *Evaluator) Start() {
	for i := 0; i < e.workerCount; i++ {
		e.workersWg.Add(1)
		go e.inferenceLoop(i)
	}
}

// Shutdown signals every inference worker to drain the queue once more and
// exit, then wakes any worker slot still blocked waiting for a result - a
// batch enqueued after the final drain would otherwise wait forever - with
// an aborted sentinel, matching Evaluator::~Evaluator in the reference
// implementation. It first acquires shutdownGuard's full weight (held only
// briefly by each EvaluateAsync*/EvaluateAsyncBatch call while it enqueues,
// released before the call blocks on its result) and never releases it, so
// every EvaluateAsync* call still in its enqueueing window finishes first
// and no new call can enqueue once shutdown has begun.
func (e *Evaluator) Shutdown() {
	if err := e.shutdownGuard.Acquire(context.Background(), maxInFlightCalls); err != nil {
		panic(err) // context.Background() never cancels or deadlines
	}

	e.queueMu.Lock()
	e.done = true
	e.queueMu.Unlock()
	e.queueCv.Broadcast()
	e.workersWg.Wait()

	e.slotsMu.Lock()
	defer e.slotsMu.Unlock()
	for _, slot := range e.slots {
		slot.mu.Lock()
		slot.aborted = true
		slot.resultReady = true
		slot.mu.Unlock()
		slot.cv.Signal()
	}
}

func (e *Evaluator) slotFor(workerID int) *workerSlot {
	e.slotsMu.Lock()
	defer e.slotsMu.Unlock()
	s, ok := e.slots[workerID]
	if !ok {
		s = &workerSlot{}
		s.cv = sync.NewCond(&s.mu)
		e.slots[workerID] = s
	}
	return s
}

// terminalValue returns the short-circuit value for a state the network is
// never consulted for: 0 for a draw, -1 for a checkmate. ok is false when
// the state must actually be evaluated.
func terminalValue(g *state.GameState) (v float32, ok bool) {
	if g.IsDraw() {
		return 0, true
	}
	if len(g.LegalMoves()) == 0 {
		return -1, true
	}
	return 0, false
}

// Evaluate is the synchronous single-state mode: draws and checkmates are
// short-circuited without touching the network.
func (e *Evaluator) Evaluate(g *state.GameState) float32 {
	if v, ok := terminalValue(g); ok {
		return v
	}
	t := encoder.Encode(g)
	values := e.net.Value([]nn.Tensor{t})
	if assert.DEBUG {
		assert.Assert(len(values) == 1, "Evaluate: network returned wrong batch size")
	}
	return values[0]
}

// EvaluateBatch is the synchronous batch mode: only non-terminal states are
// stacked and sent through the network in one call.
func (e *Evaluator) EvaluateBatch(states []*state.GameState) []float32 {
	if len(states) == 0 {
		return nil
	}
	scores := make([]float32, len(states))
	isSet := make([]bool, len(states))
	var tensors []nn.Tensor
	for i, g := range states {
		if v, ok := terminalValue(g); ok {
			scores[i] = v
			isSet[i] = true
			continue
		}
		tensors = append(tensors, encoder.Encode(g))
	}
	if len(tensors) == 0 {
		return scores
	}

	values := e.net.Value(tensors)
	vi := 0
	for i := range scores {
		if isSet[i] {
			continue
		}
		scores[i] = values[vi]
		vi++
	}
	return scores
}
