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

// Package refnet is a small pure-Go nn.Network backend: one hidden linear
// layer feeding a tanh value head and a softmax policy head, built on
// gonum's mat package. The real network a production binary trains against
// is an external concern (spec §6 treats nn.Network as a black box -
// libtorch, onnxruntime, a remote service); refnet exists so cmd/selfplay
// can run the full self-play/arena/train loop end to end without linking
// one of those backends.
package refnet

import (
	"encoding/gob"
	"math"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/nn"
)

var log = logging.Get("refnet")

// inputSize is the flattened length of an encoder.Encode tensor.
const inputSize = encoder.FeatureChannels * 64

// Net is a single-hidden-layer network over the feature encoding: a shared
// ReLU hidden layer, a one-unit tanh value head and a PolicyLength-unit
// softmax policy head.
type Net struct {
	hidden int

	w1 *mat.Dense // hidden x inputSize
	b1 *mat.VecDense

	wValue *mat.Dense // 1 x hidden
	bValue float64

	wPolicy *mat.Dense // PolicyLength x hidden
	bPolicy *mat.VecDense
}

// NewRandom builds a Net with hidden units and small random weights, the
// equivalent of a freshly constructed, not-yet-trained torch::nn::Module.
func NewRandom(hidden int, rng *rand.Rand) *Net {
	n := &Net{hidden: hidden}
	n.w1 = randDense(hidden, inputSize, rng)
	n.b1 = randVec(hidden, rng)
	n.wValue = randDense(1, hidden, rng)
	n.bValue = smallRand(rng)
	n.wPolicy = randDense(encoder.PolicyLength, hidden, rng)
	n.bPolicy = randVec(encoder.PolicyLength, rng)
	return n
}

func smallRand(rng *rand.Rand) float64 {
	return (rng.Float64()*2 - 1) * 0.01
}

func randDense(rows, cols int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = smallRand(rng)
	}
	return mat.NewDense(rows, cols, data)
}

func randVec(n int, rng *rand.Rand) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = smallRand(rng)
	}
	return mat.NewVecDense(n, data)
}

func (n *Net) hiddenLayer(t nn.Tensor) *mat.VecDense {
	x := make([]float64, inputSize)
	for i, v := range t.Data {
		x[i] = float64(v)
	}
	xv := mat.NewVecDense(inputSize, x)

	h := mat.NewVecDense(n.hidden, nil)
	h.MulVec(n.w1, xv)
	h.AddVec(h, n.b1)
	for i := 0; i < n.hidden; i++ {
		if h.AtVec(i) < 0 {
			h.SetVec(i, 0)
		}
	}
	return h
}

// Value implements nn.Network.
func (n *Net) Value(batch []nn.Tensor) []float32 {
	out := make([]float32, len(batch))
	for i, t := range batch {
		h := n.hiddenLayer(t)
		raw := mat.Dot(n.wValue.RowView(0), h) + n.bValue
		out[i] = float32(math.Tanh(raw))
	}
	return out
}

// Policy implements nn.Network.
func (n *Net) Policy(batch []nn.Tensor) [][]float32 {
	out := make([][]float32, len(batch))
	for i, t := range batch {
		h := n.hiddenLayer(t)
		logits := mat.NewVecDense(encoder.PolicyLength, nil)
		logits.MulVec(n.wPolicy, h)
		logits.AddVec(logits, n.bPolicy)
		out[i] = softmax(logits)
	}
	return out
}

func softmax(logits *mat.VecDense) []float32 {
	n := logits.Len()
	maxVal := logits.AtVec(0)
	for i := 1; i < n; i++ {
		if v := logits.AtVec(i); v > maxVal {
			maxVal = v
		}
	}
	exps := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		e := math.Exp(logits.AtVec(i) - maxVal)
		exps[i] = e
		sum += e
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(exps[i] / sum)
	}
	return out
}

// Step satisfies orchestrator.Trainer. The optimizer and loss that would
// turn exps into a gradient update are outside this module's scope - a
// production Trainer wraps a real backend here instead.
func (n *Net) Step(exps []experience.Experience) {
	log.Infof("refnet.Step: %d experiences received, no-op (optimizer not implemented)", len(exps))
}

// snapshot is the gob-encoded form of a Net's weights.
type snapshot struct {
	Hidden  int
	W1      []float64
	B1      []float64
	WValue  []float64
	BValue  float64
	WPolicy []float64
	BPolicy []float64
}

// Save writes n's weights to path.
func (n *Net) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s := snapshot{
		Hidden:  n.hidden,
		W1:      n.w1.RawMatrix().Data,
		B1:      n.b1.RawVector().Data,
		WValue:  n.wValue.RawMatrix().Data,
		BValue:  n.bValue,
		WPolicy: n.wPolicy.RawMatrix().Data,
		BPolicy: n.bPolicy.RawVector().Data,
	}
	return gob.NewEncoder(f).Encode(s)
}

// Load replaces n's weights with those stored at path.
func (n *Net) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var s snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return err
	}
	n.hidden = s.Hidden
	n.w1 = mat.NewDense(s.Hidden, inputSize, s.W1)
	n.b1 = mat.NewVecDense(s.Hidden, s.B1)
	n.wValue = mat.NewDense(1, s.Hidden, s.WValue)
	n.bValue = s.BValue
	n.wPolicy = mat.NewDense(encoder.PolicyLength, s.Hidden, s.WPolicy)
	n.bPolicy = mat.NewVecDense(encoder.PolicyLength, s.BPolicy)
	return nil
}
