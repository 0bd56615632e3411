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

// Package orchestrator drives the outer training loop around one epoch: a
// fleet of self-play workers generating experience, an arena comparing a
// freshly trained network against the current best, and the worker
// telemetry both report through.
package orchestrator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/FrankyGo/agent"
	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/logging"
)

var log = logging.Get("orchestrator")
var out = message.NewPrinter(language.German)

// workerPanic wraps a recovered goroutine panic so it survives the errgroup
// join and can be re-raised there instead of being swallowed as a plain
// error.
type workerPanic struct {
	workerID int
	value    interface{}
}

func (p workerPanic) Error() string {
	return fmt.Sprintf("self-play worker %d panicked: %v", p.workerID, p.value)
}

// GenerateExperience runs config.Settings.SelfPlay.NumSelfPlayGames self-play
// games across config.Settings.SelfPlay.NumThreads workers, each claiming
// games from a shared counter until the target is reached, and returns every
// experience every game produced. A worker that panics does not take down
// its siblings; the panic is captured and re-raised here once every worker
// has returned.
func GenerateExperience(eval *evaluator.Evaluator, telemetry *Telemetry) []experience.Experience {
	numGames := int64(config.Settings.SelfPlay.NumSelfPlayGames)
	numWorkers := config.Settings.SelfPlay.NumThreads

	var nextGame int64
	var mu sync.Mutex
	var all []experience.Experience

	var moveRecorder agent.MoveRecorder
	if telemetry != nil {
		moveRecorder = telemetry
	}

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		workerID := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = workerPanic{workerID: workerID, value: r}
				}
			}()

			for atomic.AddInt64(&nextGame, 1) <= numGames {
				exps := agent.PlayGame(eval, workerID, moveRecorder)

				mu.Lock()
				all = append(all, exps...)
				mu.Unlock()

				if telemetry != nil {
					telemetry.RecordGameFinished(workerID)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}

	log.Info(out.Sprintf("self-play fleet finished: %d games, %d experiences", numGames, len(all)))
	return all
}
