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

package refnet

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/nn"
)

func randomTensor(rng *rand.Rand) nn.Tensor {
	t := nn.NewTensor(encoder.FeatureChannels)
	for i := range t.Data {
		t.Data[i] = float32(rng.Float64()*2 - 1)
	}
	return t
}

func TestValueIsBoundedByTanh(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net := NewRandom(8, rng)
	batch := []nn.Tensor{randomTensor(rng), randomTensor(rng), randomTensor(rng)}

	values := net.Value(batch)
	require.Len(t, values, len(batch))
	for _, v := range values {
		assert.LessOrEqual(t, math.Abs(float64(v)), 1.0)
	}
}

func TestPolicyIsAProbabilityDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	net := NewRandom(8, rng)
	batch := []nn.Tensor{randomTensor(rng), randomTensor(rng)}

	policies := net.Policy(batch)
	require.Len(t, policies, len(batch))
	for _, p := range policies {
		require.Len(t, p, encoder.PolicyLength)
		var sum float32
		for _, v := range p {
			assert.GreaterOrEqual(t, v, float32(0))
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-3)
	}
}

func TestSaveLoadRoundTripPreservesOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	net := NewRandom(4, rng)
	batch := []nn.Tensor{randomTensor(rng)}

	wantValue := net.Value(batch)
	wantPolicy := net.Policy(batch)

	path := filepath.Join(t.TempDir(), "net.bin")
	require.NoError(t, net.Save(path))

	loaded := &Net{}
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, wantValue, loaded.Value(batch))
	assert.Equal(t, wantPolicy, loaded.Policy(batch))
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	net := &Net{}
	err := net.Load(filepath.Join(os.TempDir(), "does-not-exist-refnet.bin"))
	assert.Error(t, err)
}

func TestStepIsANoOpThatDoesNotPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	net := NewRandom(4, rng)
	assert.NotPanics(t, func() {
		net.Step(nil)
	})
}
