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

package orchestrator

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/mcts"
	"github.com/frankkopp/FrankyGo/state"
	"github.com/frankkopp/FrankyGo/types"
)

// arenaResult is the outcome of one arena game from the challenger's side.
type arenaResult int

const (
	arenaDraw arenaResult = iota
	arenaChallengerWin
	arenaChampionWin
)

// playArenaGame runs one deterministic game between challenger and champion
// and reports the result from the challenger's side. challengerIsWhite picks
// which network moves first. Both sides search with root noise disabled and
// pick the most-visited move; the only randomness left is the search's
// time-seeded child-order shuffle plus whatever the network introduces.
func playArenaGame(challenger, champion *evaluator.Evaluator, challengerIsWhite bool) arenaResult {
	maxMoves := config.Settings.SelfPlay.MaxGameMovesUntilDraw
	current := state.NewInitial()

	numMove := 0
	for numMove < maxMoves {
		if len(current.LegalMoves()) == 0 {
			break
		}
		if current.IsDraw() {
			break
		}

		whiteToMove := current.SideToMove() == types.White
		eval := champion
		if whiteToMove == challengerIsWhite {
			eval = challenger
		}

		search := mcts.New(current, eval, 0, mcts.WithoutRootNoise())
		runArenaSearch(search)
		move := search.BestMove(true)

		current = current.Apply(move)
		numMove++
	}

	if numMove == maxMoves || current.IsDraw() {
		return arenaDraw
	}

	loser := current.SideToMove()
	loserIsChallenger := (loser == types.White) == challengerIsWhite
	if loserIsChallenger {
		return arenaChampionWin
	}
	return arenaChallengerWin
}

func runArenaSearch(search *mcts.Search) {
	iterations := config.Settings.MCTS.NumMctsIterations
	if config.Settings.MCTS.DoBatchMcts {
		search.RunBatch(iterations, config.Settings.MCTS.MctsBatchLeafSize)
		return
	}
	search.Run(iterations)
}

// IsTrainedBetter plays config.Settings.Arena.TotalGamesForArena games
// between challenger and champion, the challenger taking White for the
// first half and Black for the second so neither side is favored by the
// first-move advantage, and reports whether the challenger's score (win=2,
// draw=1, loss=0) met config.Settings.Arena.ArenaTargetScore of the
// maximum possible score.
func IsTrainedBetter(challenger, champion *evaluator.Evaluator) bool {
	totalGames := int64(config.Settings.Arena.TotalGamesForArena)
	numWorkers := config.Settings.SelfPlay.NumThreads

	var nextGame int64
	var mu sync.Mutex
	var score int

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		workerID := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = workerPanic{workerID: workerID, value: r}
				}
			}()

			for {
				idx := atomic.AddInt64(&nextGame, 1) - 1
				if idx >= totalGames {
					return nil
				}
				challengerIsWhite := idx < totalGames/2

				result := playArenaGame(challenger, champion, challengerIsWhite)

				mu.Lock()
				switch result {
				case arenaChallengerWin:
					score += 2
				case arenaDraw:
					score++
				}
				mu.Unlock()
			}
		})
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}

	maxScore := float64(2 * totalGames)
	fraction := float64(score) / maxScore
	log.Info(out.Sprintf("arena finished: challenger score %d/%d (%.3f), target %.3f",
		score, int(maxScore), fraction, config.Settings.Arena.ArenaTargetScore))
	return fraction >= config.Settings.Arena.ArenaTargetScore
}
