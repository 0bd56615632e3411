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

package config

// trainConfiguration holds the training-step tuning knobs. The core does not
// implement the optimizer itself (see orchestrator.Trainer) but
// still carries the recognized options so a trainer plugged in behind the
// interface can read them from the same config file.
type trainConfiguration struct {
	NumEpochs     int
	TrainBatchSize int
	LearningRate  float64
	WeightDecay   float64
}

func setupTrain() {
	if Settings.Train.NumEpochs == 0 {
		Settings.Train.NumEpochs = 1
	}
	if Settings.Train.TrainBatchSize == 0 {
		Settings.Train.TrainBatchSize = 256
	}
	if Settings.Train.LearningRate == 0 {
		Settings.Train.LearningRate = 0.001
	}
	if Settings.Train.WeightDecay == 0 {
		Settings.Train.WeightDecay = 1e-4
	}
}
