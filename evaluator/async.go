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
	"github.com/frankkopp/FrankyGo/assert"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/nn"
	"github.com/frankkopp/FrankyGo/state"
)

// EvaluateAsync enqueues g for the next draining batch and blocks until the
// inference worker has placed a result in workerID's slot.
func (e *Evaluator) EvaluateAsync(g *state.GameState, workerID int) float32 {
	return e.EvaluateAsyncBatch([]*state.GameState{g}, workerID)[0]
}

// EvaluateAsyncBatch enqueues every non-terminal state in states as one
// queue entry and blocks until the inference worker has filled workerID's
// result slot for this entry.
func (e *Evaluator) EvaluateAsyncBatch(states []*state.GameState, workerID int) []float32 {
	if len(states) == 0 {
		return nil
	}
	scores := make([]float32, len(states))
	if !e.shutdownGuard.TryAcquire(1) {
		log.Warningf("worker %d: evaluator is shutting down, returning zero values", workerID)
		return scores
	}
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
		e.shutdownGuard.Release(1)
		return scores
	}

	slot := e.slotFor(workerID)
	slot.mu.Lock()
	slot.resultReady = false
	slot.mu.Unlock()

	e.queueMu.Lock()
	e.queue = append(e.queue, queuedBatch{tensors: tensors, workerID: workerID})
	e.queueMu.Unlock()
	e.queueCv.Signal()

	// Released once the batch is safely enqueued - Shutdown only needs to
	// wait out this brief window, not the (possibly long) wait for a result.
	e.shutdownGuard.Release(1)

	slot.mu.Lock()
	for !slot.resultReady {
		slot.cv.Wait()
	}
	result := slot.result
	aborted := slot.aborted
	slot.mu.Unlock()

	if aborted {
		log.Warningf("worker %d: evaluator shut down with a batch still in flight, returning zero values", workerID)
		return scores
	}

	if assert.DEBUG {
		assert.Assert(len(result) == len(tensors), "EvaluateAsyncBatch: worker slot size mismatch")
	}

	ri := 0
	for i := range scores {
		if isSet[i] {
			continue
		}
		scores[i] = result[ri]
		ri++
	}
	return scores
}

// inferenceLoop is the dedicated worker protocol: wait for the queue to be
// non-empty (or shutdown), drain it atomically, run one forward pass over
// the concatenation, and hand each contributor's slice back to its slot.
// workerIndex identifies this goroutine among the workerCount started by
// Start, for InferenceRecorder reporting.
func (e *Evaluator) inferenceLoop(workerIndex int) {
	defer e.workersWg.Done()
	for {
		e.queueMu.Lock()
		for len(e.queue) == 0 && !e.done {
			e.queueCv.Wait()
		}
		batch := e.queue
		e.queue = nil
		shuttingDown := e.done
		e.queueMu.Unlock()

		if len(batch) == 0 {
			if shuttingDown {
				return
			}
			continue
		}

		var tensors []nn.Tensor
		sizes := make([]int, len(batch))
		for i, qb := range batch {
			tensors = append(tensors, qb.tensors...)
			sizes[i] = len(qb.tensors)
		}

		values := e.net.Value(tensors)
		if assert.DEBUG {
			assert.Assert(len(values) == len(tensors), "inferenceLoop: network returned wrong batch size")
		}
		if e.recorder != nil {
			e.recorder.RecordInference(workerIndex, len(tensors))
		}

		idx := 0
		for i, qb := range batch {
			result := append([]float32(nil), values[idx:idx+sizes[i]]...)
			idx += sizes[i]

			slot := e.slotFor(qb.workerID)
			slot.mu.Lock()
			slot.result = result
			slot.resultReady = true
			slot.mu.Unlock()
			slot.cv.Signal()
		}

		if shuttingDown {
			return
		}
	}
}
