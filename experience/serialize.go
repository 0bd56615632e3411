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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/frankkopp/FrankyGo/board"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/state"
	"github.com/frankkopp/FrankyGo/types"
)

// historySlots is the number of (board, repetition_count) pairs every
// record reserves, matching the feature encoder's history depth - that is
// the only thing a reconstructed state needs to supply. Records always
// reserve all historySlots pairs, padding with empty boards past the real
// chain depth, so every record is the same byte length regardless of how
// deep the game was when it was captured.
const historySlots = 8

const (
	boardBytes     = 64
	repCountBytes  = 1
	historyBytes   = boardBytes + repCountBytes
	headerBytes    = 1 + historySlots*historyBytes + 1 + 2 + 2 + 4
	policyBytes    = encoder.PolicyLength * 4
	resultBytes    = 4
	// RecordSize is the fixed length, in bytes, of one serialized Experience.
	RecordSize = headerBytes + policyBytes + resultBytes
)

// ErrCorrupt is returned by ReadAll when a file's length is not a multiple
// of RecordSize. Per the persistence contract, a corrupt file is rejected
// wholesale rather than partially loaded.
type ErrCorrupt struct {
	Size int
}

func (e ErrCorrupt) Error() string {
	return fmt.Sprintf("experience: file size %d is not a multiple of record size %d", e.Size, RecordSize)
}

// Write appends exp's packed binary record to buf.
func Write(buf *bytes.Buffer, exp Experience) {
	history := collectHistory(exp.State)
	buf.WriteByte(byte(len(history)))
	for i := 0; i < historySlots; i++ {
		if i < len(history) {
			writeBoard(buf, history[i].Board)
			buf.WriteByte(byte(history[i].RepetitionCount))
		} else {
			writeBoard(buf, board.Empty())
			buf.WriteByte(0)
		}
	}

	sideToMove := byte(0)
	if exp.State.SideToMove() == types.Black {
		sideToMove = 1
	}
	buf.WriteByte(sideToMove)
	writeUint16(buf, exp.State.TotalMoveCount())
	writeUint16(buf, exp.State.NoProgressCount())

	whiteKingSide, whiteQueenSide := exp.State.CanCastle(types.White)
	blackKingSide, blackQueenSide := exp.State.CanCastle(types.Black)
	buf.WriteByte(boolByte(whiteKingSide))
	buf.WriteByte(boolByte(whiteQueenSide))
	buf.WriteByte(boolByte(blackKingSide))
	buf.WriteByte(boolByte(blackQueenSide))

	for _, p := range exp.PolicyTarget {
		writeFloat32(buf, p)
	}
	writeFloat32(buf, exp.Result)
}

// collectHistory walks g and its ancestors, newest first, capping at
// historySlots entries - the same walk and the same cap encoder.Encode
// uses to build the feature tensor's history slabs.
func collectHistory(g *state.GameState) []state.HistoryEntry {
	entries := make([]state.HistoryEntry, 0, historySlots)
	cur := g
	for i := 0; i < historySlots && cur != nil; i++ {
		entries = append(entries, state.HistoryEntry{Board: cur.Board(), RepetitionCount: cur.RepetitionCount()})
		cur = cur.Prev()
	}
	return entries
}

func writeBoard(buf *bytes.Buffer, b board.Board) {
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		buf.WriteByte(byte(b.PieceAt(sq)))
	}
}

func writeUint16(buf *bytes.Buffer, v int) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	buf.Write(tmp[:])
}

func writeFloat32(buf *bytes.Buffer, v float32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	buf.Write(tmp[:])
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Read decodes one record from raw, which must hold exactly RecordSize
// bytes, and reconstructs a playable-for-encoding GameState via
// state.FromSnapshot.
func Read(raw []byte) Experience {
	r := bytes.NewReader(raw)

	numHistory, _ := r.ReadByte()
	history := make([]state.HistoryEntry, 0, numHistory)
	for i := 0; i < historySlots; i++ {
		b := readBoard(r)
		repByte, _ := r.ReadByte()
		if i < int(numHistory) {
			history = append(history, state.HistoryEntry{Board: b, RepetitionCount: int(repByte)})
		}
	}

	sideByte, _ := r.ReadByte()
	sideToMove := types.White
	if sideByte == 1 {
		sideToMove = types.Black
	}
	totalMoveCount := int(readUint16(r))
	noProgressCount := int(readUint16(r))

	whiteKingSide := readBool(r)
	whiteQueenSide := readBool(r)
	blackKingSide := readBool(r)
	blackQueenSide := readBool(r)

	g := state.FromSnapshot(history, sideToMove, totalMoveCount, noProgressCount,
		whiteKingSide, whiteQueenSide, blackKingSide, blackQueenSide)

	var policy [encoder.PolicyLength]float32
	for i := range policy {
		policy[i] = readFloat32(r)
	}
	result := readFloat32(r)

	return Experience{State: g, PolicyTarget: policy, Result: result}
}

func readBoard(r *bytes.Reader) board.Board {
	b := board.Empty()
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		raw, _ := r.ReadByte()
		if raw != 0 {
			b = b.WithPiece(sq, types.Piece(int8(raw)))
		}
	}
	return b
}

func readUint16(r *bytes.Reader) uint16 {
	var tmp [2]byte
	_, _ = r.Read(tmp[:])
	return binary.LittleEndian.Uint16(tmp[:])
}

func readFloat32(r *bytes.Reader) float32 {
	var tmp [4]byte
	_, _ = r.Read(tmp[:])
	return math.Float32frombits(binary.LittleEndian.Uint32(tmp[:]))
}

func readBool(r *bytes.Reader) bool {
	v, _ := r.ReadByte()
	return v != 0
}

// ReadAll decodes every record in raw. A length that is not a multiple of
// RecordSize means the file is corrupt and is rejected wholesale - no
// partial result is returned.
func ReadAll(raw []byte) ([]Experience, error) {
	if len(raw)%RecordSize != 0 {
		return nil, ErrCorrupt{Size: len(raw)}
	}
	n := len(raw) / RecordSize
	out := make([]Experience, n)
	for i := 0; i < n; i++ {
		out[i] = Read(raw[i*RecordSize : (i+1)*RecordSize])
	}
	return out, nil
}

// WriteAll appends every experience's record to buf in order.
func WriteAll(buf *bytes.Buffer, exps []Experience) {
	for _, exp := range exps {
		Write(buf, exp)
	}
}
