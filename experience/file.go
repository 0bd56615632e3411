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
	"sync"

	"github.com/frankkopp/FrankyGo/logging"
)

var log = logging.Get("experience")

// Saver appends experience records to one file, guarded by a mutex so many
// self-play workers can flush their games to it concurrently - grounded on
// the reference implementation's single-mutex, single-file saver.
type Saver struct {
	mu   sync.Mutex
	path string
}

// NewSaver returns a Saver for path. It does not touch the file; each Save
// opens path for appending, creating it if it does not exist yet.
func NewSaver(path string) *Saver {
	return &Saver{path: path}
}

// Save appends every experience in exps as one packed record each.
func (s *Saver) Save(exps []Experience) error {
	var buf bytes.Buffer
	WriteAll(&buf, exps)

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(buf.Bytes())
	return err
}

// LoadFile reads every record from the file at path. A size mismatch is
// treated as corruption and returned as an error rather than loading the
// records it could parse.
func LoadFile(path string) ([]Experience, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	exps, err := ReadAll(raw)
	if err != nil {
		log.Errorf("rejecting experience file %s: %v", path, err)
		return nil, err
	}
	return exps, nil
}
