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

// mctsConfiguration holds the tree-search tuning knobs read from config.toml.
type mctsConfiguration struct {
	NumMctsIterations        int
	DirichletAlpha           float64
	DirichletEpsilon         float64
	DoBatchMcts              bool
	MctsBatchLeafSize        int
	MctsVirtualLoss          int
	MctsInferenceBatchSize   int
	PrecomputeBatchParentMinVisits int
}

func setupMCTS() {
	if Settings.MCTS.NumMctsIterations == 0 {
		Settings.MCTS.NumMctsIterations = 800
	}
	if Settings.MCTS.DirichletAlpha == 0 {
		Settings.MCTS.DirichletAlpha = 0.3
	}
	if Settings.MCTS.DirichletEpsilon == 0 {
		Settings.MCTS.DirichletEpsilon = 0.25
	}
	if Settings.MCTS.MctsBatchLeafSize == 0 {
		Settings.MCTS.MctsBatchLeafSize = 8
	}
	if Settings.MCTS.MctsVirtualLoss == 0 {
		Settings.MCTS.MctsVirtualLoss = -1
	}
	if Settings.MCTS.MctsInferenceBatchSize == 0 {
		Settings.MCTS.MctsInferenceBatchSize = 16
	}
	if Settings.MCTS.PrecomputeBatchParentMinVisits == 0 {
		Settings.MCTS.PrecomputeBatchParentMinVisits = 2
	}
}
