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

// Package experience defines one training example - a state snapshot, its
// visit-count policy target and the eventual game result - and a packed
// binary record format for writing and reading whole experience files.
package experience

import (
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/state"
)

// Experience is one training example: the position a move was chosen from,
// the visit-count distribution that move was sampled against, and the
// eventual game result from the mover's perspective at that position.
// Result is 0 until the owning game finishes, at which point Label fills
// it in for every experience the game produced.
type Experience struct {
	State        *state.GameState
	PolicyTarget [encoder.PolicyLength]float32
	Result       float32
}

// New builds an Experience with a zero result, ready for Label once the
// game that produced it has finished.
func New(g *state.GameState, policy [encoder.PolicyLength]float32) Experience {
	return Experience{State: g, PolicyTarget: policy}
}
