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

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMax(t *testing.T) {
	assert.Equal(t, -3, Max(-5, -3))
	assert.Equal(t, 1, Max(1, 1))
}

func TestResolveFileFindsAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.bin")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	resolved, err := ResolveFile(path)
	assert.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestResolveFileReturnsErrorWhenMissing(t *testing.T) {
	_, err := ResolveFile(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
}

func TestResolveCreateFolderCreatesMissingFolder(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.Chdir(dir))

	resolved, err := ResolveCreateFolder("experience")
	assert.NoError(t, err)
	info, statErr := os.Stat(resolved)
	assert.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestResolveCreateFolderReturnsExistingFolder(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.Chdir(dir))
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "experience"), 0755))

	resolved, err := ResolveCreateFolder("experience")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "experience"), resolved)
}
