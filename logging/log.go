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

// Package logging is a helper for the "github.com/op/go-logging" package
// to reduce the lines of code within each go file to one line. Each
// component of the self-play core (board, state, mcts, evaluator, agent,
// orchestrator, experience, util, refnet) gets its own named logger through
// Get, sharing one format string and one level, set from config.LogLevel.
// config itself, which this package imports, has no logger.
package logging

import (
	"log"
	"os"
	"sync"

	"github.com/op/go-logging"

	"github.com/frankkopp/FrankyGo/config"
)

var standardFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-10.10s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
)

var (
	mu      sync.Mutex
	loggers = map[string]*logging.Logger{}
)

// Get returns (creating if necessary) the named component logger,
// preconfigured with a stdout backend at config.LogLevel.
func Get(component string) *logging.Logger {
	mu.Lock()
	defer mu.Unlock()

	l, ok := loggers[component]
	if !ok {
		l = logging.MustGetLogger(component)
		loggers[component] = l
	}

	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	l.SetBackend(leveled)
	return l
}

// GetTestLog returns the dedicated test-run logger, leveled from
// config.TestLogLevel instead of config.LogLevel.
func GetTestLog() *logging.Logger {
	mu.Lock()
	defer mu.Unlock()

	l, ok := loggers["test"]
	if !ok {
		l = logging.MustGetLogger("test")
		loggers["test"] = l
	}

	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.TestLogLevel), "")
	l.SetBackend(leveled)
	return l
}
