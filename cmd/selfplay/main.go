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

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/experience"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/orchestrator"
	"github.com/frankkopp/FrankyGo/refnet"
	"github.com/frankkopp/FrankyGo/util"
)

var out = message.NewPrinter(language.German)

const appVersion = "0.1.0"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	profileMode := flag.String("profile", "none", "enable profiling: cpu|mem|trace|none")
	experienceDir := flag.String("experiencedir", "experience", "folder experience records are appended to, created if missing")
	checkpoint := flag.String("checkpoint", orchestrator.CheckpointPath, "network checkpoint file")
	hidden := flag.Int("hidden", 256, "hidden layer size for the refnet bootstrap backend")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath(".")).Stop()
	case "none":
	default:
		fmt.Fprintf(os.Stderr, "unknown -profile mode %q\n", *profileMode)
		os.Exit(1)
	}

	config.Setup()
	log := logging.Get("selfplay")

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: selfplay [-flags] selfplay|train|arena")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	net := refnet.NewRandom(*hidden, rng)
	if loaded, err := util.ResolveFile(*checkpoint); err == nil {
		if err := net.Load(loaded); err != nil {
			log.Warningf("could not load checkpoint %s: %v", loaded, err)
		} else {
			log.Infof("loaded checkpoint from %s", loaded)
		}
	}

	eval := evaluator.New(net, config.Settings.Evaluator.EvaluatorWorkerCount)

	switch flag.Arg(0) {
	case "selfplay":
		runSelfPlay(eval, *experienceDir)
	case "train":
		runTrain(net, eval, *checkpoint, *hidden, rng)
	case "arena":
		runArena(eval, *hidden, rng)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q (want selfplay|train|arena)\n", flag.Arg(0))
		os.Exit(1)
	}
}

// newTelemetry allocates tracking slots sized for one self-play fleet and
// its evaluator's inference workers.
func newTelemetry() *orchestrator.Telemetry {
	return orchestrator.NewTelemetry(config.Settings.SelfPlay.NumThreads, config.Settings.Evaluator.EvaluatorWorkerCount)
}

// startEval wires telemetry into eval's inference-batch reporting and, if
// asynchronous inference is enabled, launches its worker goroutines. The
// returned func must be deferred to shut them back down; it is a no-op in
// synchronous mode.
func startEval(eval *evaluator.Evaluator, telemetry *orchestrator.Telemetry) func() {
	eval.SetRecorder(telemetry)
	if !config.Settings.Evaluator.UseAsyncInference {
		return func() {}
	}
	eval.Start()
	return eval.Shutdown
}

func runSelfPlay(eval *evaluator.Evaluator, experienceDir string) {
	dir, err := util.ResolveCreateFolder(experienceDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not resolve experience directory: %v\n", err)
		os.Exit(1)
	}

	telemetry := newTelemetry()
	defer startEval(eval, telemetry)()

	exps := orchestrator.GenerateExperience(eval, telemetry)

	path := filepath.Join(dir, fmt.Sprintf("experience-%d.bin", time.Now().Unix()))
	saver := experience.NewSaver(path)
	if err := saver.Save(exps); err != nil {
		fmt.Fprintf(os.Stderr, "could not save experience: %v\n", err)
		os.Exit(1)
	}
	out.Printf("wrote %d experiences to %s\n", len(exps), path)
}

func runTrain(currentBestNet *refnet.Net, currentBestEval *evaluator.Evaluator, checkpoint string, hidden int, rng *rand.Rand) {
	defer startEval(currentBestEval, newTelemetry())()

	challengerNet := refnet.NewRandom(hidden, rng)
	challengerEval := evaluator.New(challengerNet, config.Settings.Evaluator.EvaluatorWorkerCount)
	challengerTelemetry := newTelemetry()
	defer startEval(challengerEval, challengerTelemetry)()

	if err := orchestrator.DoTrain(currentBestNet, challengerNet, currentBestEval, challengerEval, challengerTelemetry); err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}
	if err := currentBestNet.Save(checkpoint); err != nil {
		fmt.Fprintf(os.Stderr, "could not save checkpoint: %v\n", err)
		os.Exit(1)
	}
	out.Printf("training finished, current best saved to %s\n", checkpoint)
}

func runArena(currentBestEval *evaluator.Evaluator, hidden int, rng *rand.Rand) {
	defer startEval(currentBestEval, newTelemetry())()

	challengerNet := refnet.NewRandom(hidden, rng)
	challengerEval := evaluator.New(challengerNet, config.Settings.Evaluator.EvaluatorWorkerCount)
	defer startEval(challengerEval, newTelemetry())()

	if orchestrator.IsTrainedBetter(challengerEval, currentBestEval) {
		out.Println("challenger passed the arena threshold")
	} else {
		out.Println("challenger did not pass the arena threshold")
	}
}

func printVersionInfo() {
	out.Printf("FrankyGo self-play core %s\n", appVersion)
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	out.Printf("  Number of Goroutines: %d\n", runtime.NumGoroutine())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}

