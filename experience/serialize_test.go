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

package experience

import (
	"bytes"
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/state"
	"github.com/frankkopp/FrankyGo/types"
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

func sampleExperience() Experience {
	g := state.NewInitial()
	g = g.Apply(types.NewMove(types.SqE2, types.SqE4, types.PtNone))
	var policy [encoder.PolicyLength]float32
	policy[encoder.MovePolicyIndex(types.NewMove(types.SqE7, types.SqE5, types.PtNone))] = 1
	return Experience{State: g, PolicyTarget: policy, Result: 1}
}

func TestWriteReadRoundTrip(t *testing.T) {
	exp := sampleExperience()

	var buf bytes.Buffer
	Write(&buf, exp)
	assert.Equal(t, RecordSize, buf.Len())

	got := Read(buf.Bytes())
	assert.Equal(t, exp.State.SideToMove(), got.State.SideToMove())
	assert.Equal(t, exp.State.TotalMoveCount(), got.State.TotalMoveCount())
	assert.Equal(t, exp.State.NoProgressCount(), got.State.NoProgressCount())
	assert.Equal(t, exp.State.Board(), got.State.Board())
	assert.Equal(t, exp.PolicyTarget, got.PolicyTarget)
	assert.Equal(t, exp.Result, got.Result)

	wantKing, wantQueen := exp.State.CanCastle(types.White)
	gotKing, gotQueen := got.State.CanCastle(types.White)
	assert.Equal(t, wantKing, gotKing)
	assert.Equal(t, wantQueen, gotQueen)
}

func TestReadAllRejectsCorruptSize(t *testing.T) {
	var buf bytes.Buffer
	WriteAll(&buf, []Experience{sampleExperience(), sampleExperience()})

	truncated := buf.Bytes()[:buf.Len()-1]
	_, err := ReadAll(truncated)
	assert.Error(t, err)
	var corrupt ErrCorrupt
	assert.ErrorAs(t, err, &corrupt)
}

func TestReadAllRoundTripsMultipleRecords(t *testing.T) {
	exps := []Experience{sampleExperience(), sampleExperience()}

	var buf bytes.Buffer
	WriteAll(&buf, exps)

	got, err := ReadAll(buf.Bytes())
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	for i := range got {
		assert.Equal(t, exps[i].Result, got[i].Result)
	}
}

func TestSaverAppendsAndLoadFileReads(t *testing.T) {
	dir := t.TempDir()
	p := path.Join(dir, "games.bin")

	s := NewSaver(p)
	assert.NoError(t, s.Save([]Experience{sampleExperience()}))
	assert.NoError(t, s.Save([]Experience{sampleExperience()}))

	got, err := LoadFile(p)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
