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

// Package agent drives one self-play game: build an MCTS search at every
// position, sample a move from its visit counts, record an Experience, and
// once the game ends label every recorded experience by the outcome.
package agent

import (
	"time"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/mcts"
	"github.com/frankkopp/FrankyGo/state"
	"github.com/frankkopp/FrankyGo/types"
	"github.com/frankkopp/FrankyGo/util"
)

var log = logging.Get("agent")

// MoveRecorder observes a self-play game's progress one ply at a time, keyed
// by workerID, so a caller can report an in-progress game's length before it
// finishes.
type MoveRecorder interface {
	RecordMove(workerID, totalMove int)
}

// PlayGame runs one self-play game to completion and returns its labeled
// experiences, one per position a move was sampled from. workerID
// identifies this goroutine's slot in eval when asynchronous inference is
// in use. telemetry may be nil.
func PlayGame(eval *evaluator.Evaluator, workerID int, telemetry MoveRecorder) []experience.Experience {
	maxMoves := config.Settings.SelfPlay.MaxGameMovesUntilDraw
	current := state.NewInitial()
	start := time.Now()

	var exps []experience.Experience
	numMove := 0
	for numMove < maxMoves {
		if len(current.LegalMoves()) == 0 {
			break
		}
		if current.IsDraw() {
			break
		}

		search := mcts.New(current, eval, workerID)
		runSearch(search)

		move := search.BestMove(false)
		exps = append(exps, experience.New(current, search.PolicyVector()))

		current = current.Apply(move)
		numMove++
		if telemetry != nil {
			telemetry.RecordMove(workerID, numMove)
		}
	}

	elapsed := time.Since(start)
	log.Debugf("worker %d: game finished in %s, %d plies, %.3fs/move", workerID, elapsed, numMove, elapsed.Seconds()/float64(util.Max(numMove, 1)))

	if numMove == maxMoves || current.IsDraw() {
		return exps
	}

	loser := current.SideToMove()
	Label(exps, loser)
	return exps
}

// Label assigns the eventual game result to every experience: -1 for the
// loser's positions, +1 for every other position. Experiences from a drawn
// or move-capped game are left at the zero PlayGame already gave them.
func Label(exps []experience.Experience, loser types.Color) {
	for i := range exps {
		if exps[i].State.SideToMove() == loser {
			exps[i].Result = -1
		} else {
			exps[i].Result = 1
		}
	}
}

func runSearch(search *mcts.Search) {
	iterations := config.Settings.MCTS.NumMctsIterations
	if config.Settings.MCTS.DoBatchMcts {
		search.RunBatch(iterations, config.Settings.MCTS.MctsBatchLeafSize)
		return
	}
	search.Run(iterations)
}

