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

package orchestrator

import "sync"

// TrainWorkerInfo tracks one self-play goroutine's progress through its
// current game and its lifetime game count.
type TrainWorkerInfo struct {
	CurrentGameTotalMove int
	TotalGamePlayed      int
}

// InferenceWorkerInfo tracks one inference worker's lifetime batch activity.
type InferenceWorkerInfo struct {
	TotalNumInference       uint64
	TotalInferenceBatchSize uint64
}

// Telemetry holds one TrainWorkerInfo per self-play worker and one
// InferenceWorkerInfo per evaluator worker, indexed by worker ID and guarded
// by a single mutex since workers report in far less often than they search.
type Telemetry struct {
	mu sync.Mutex

	trainWorkers     []TrainWorkerInfo
	inferenceWorkers []InferenceWorkerInfo
}

// NewTelemetry allocates tracking slots for numTrainWorkers self-play
// goroutines and numInferenceWorkers evaluator workers.
func NewTelemetry(numTrainWorkers, numInferenceWorkers int) *Telemetry {
	return &Telemetry{
		trainWorkers:     make([]TrainWorkerInfo, numTrainWorkers),
		inferenceWorkers: make([]InferenceWorkerInfo, numInferenceWorkers),
	}
}

// RecordMove updates workerID's in-progress move count.
func (t *Telemetry) RecordMove(workerID, totalMove int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trainWorkers[workerID].CurrentGameTotalMove = totalMove
}

// RecordGameFinished increments workerID's lifetime game count and resets
// its in-progress move count for the next game.
func (t *Telemetry) RecordGameFinished(workerID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trainWorkers[workerID].TotalGamePlayed++
	t.trainWorkers[workerID].CurrentGameTotalMove = 0
}

// RecordInference accounts one inference call of batchSize states against
// workerID's lifetime totals.
func (t *Telemetry) RecordInference(workerID, batchSize int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inferenceWorkers[workerID].TotalNumInference++
	t.inferenceWorkers[workerID].TotalInferenceBatchSize += uint64(batchSize)
}

// TrainWorker returns a snapshot of workerID's train telemetry.
func (t *Telemetry) TrainWorker(workerID int) TrainWorkerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trainWorkers[workerID]
}

// InferenceWorker returns a snapshot of workerID's inference telemetry.
func (t *Telemetry) InferenceWorker(workerID int) InferenceWorkerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inferenceWorkers[workerID]
}

// TotalGamesPlayed sums TotalGamePlayed across every train worker.
func (t *Telemetry) TotalGamesPlayed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, w := range t.trainWorkers {
		total += w.TotalGamePlayed
	}
	return total
}
