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
	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/nn"
)

// Trainer is the boundary between the core and whatever backend owns the
// optimizer and loss: the core shuffles and hands over experience, the
// backend decides how to turn it into gradient updates. Checkpointing is
// part of the same boundary, since only the backend knows its own on-disk
// format.
type Trainer interface {
	nn.Network

	// Step consumes one epoch's worth of experience. The backend is
	// expected to shuffle, batch by config.Settings.Train.TrainBatchSize,
	// and update its own weights in place; the core does not inspect the
	// result.
	Step(exps []experience.Experience)

	// Save and Load move the backend's weights to and from path, used to
	// snapshot the current best network before each epoch's challenger is
	// trained from it.
	Save(path string) error
	Load(path string) error
}

// CheckpointPath is the file DoTrain uses to hand the current best
// network's weights to each epoch's challenger before training it further.
const CheckpointPath = "CurrentBest.pt"

// DoTrain runs config.Settings.Train.NumEpochs epochs: snapshot currentBest
// to CheckpointPath and load it into challenger, generate fresh self-play
// experience with challenger's evaluator, train challenger on it, then
// promote challenger over currentBest in place if the arena says it is
// strong enough. currentBest and challenger must wrap independent backend
// instances of the same network architecture.
func DoTrain(currentBest, challenger Trainer, currentBestEval, challengerEval *evaluator.Evaluator, telemetry *Telemetry) error {
	for epoch := 0; epoch < config.Settings.Train.NumEpochs; epoch++ {
		if err := currentBest.Save(CheckpointPath); err != nil {
			return err
		}
		if err := challenger.Load(CheckpointPath); err != nil {
			return err
		}

		exps := GenerateExperience(challengerEval, telemetry)
		challenger.Step(exps)

		if IsTrainedBetter(challengerEval, currentBestEval) {
			log.Infof("epoch %d: challenger promoted over current best", epoch)
			if err := challenger.Save(CheckpointPath); err != nil {
				return err
			}
			if err := currentBest.Load(CheckpointPath); err != nil {
				return err
			}
		} else {
			log.Infof("epoch %d: challenger did not beat current best, discarded", epoch)
		}
	}
	return nil
}
