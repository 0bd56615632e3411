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

// Package nn defines the boundary between the self-play core and an
// external neural network backend. The core never trains or evaluates a
// network directly - it only calls the Network interface below, supplied
// by whatever backend (libtorch, onnxruntime, a remote service...) the
// caller wires in.
package nn

// Tensor is a dense (channels, 8, 8) feature or policy plane stack, flat
// row-major: index(c, sq) = c*64 + int(sq).
type Tensor struct {
	Channels int
	Data     []float32
}

// NewTensor allocates a zeroed tensor with the given number of 8x8 channels.
func NewTensor(channels int) Tensor {
	return Tensor{Channels: channels, Data: make([]float32, channels*64)}
}

// At returns the value of channel c at the flattened board index sq (0..63).
func (t Tensor) At(c, sq int) float32 {
	return t.Data[c*64+sq]
}

// Set writes the value of channel c at the flattened board index sq.
func (t Tensor) Set(c, sq int, v float32) {
	t.Data[c*64+sq] = v
}

// Network is the provider-side interface: value and policy heads over
// batches of (119,8,8) feature tensors. The core only calls these two
// pure functions - training, checkpointing and device placement are the
// backend's concern.
type Network interface {
	// Value returns one scalar in [-1,1] per input position.
	Value(batch []Tensor) []float32
	// Policy returns one length-4672 logit/probability vector per input
	// position. The core reads these only for training; at MCTS expansion
	// time it falls back to a uniform prior (see package mcts).
	Policy(batch []Tensor) [][]float32
}
