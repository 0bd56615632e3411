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

package mcts

import (
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/FrankyGo/config"
	"github.com/frankkopp/FrankyGo/encoder"
	"github.com/frankkopp/FrankyGo/evaluator"
	"github.com/frankkopp/FrankyGo/logging"
	"github.com/frankkopp/FrankyGo/state"
	. "github.com/frankkopp/FrankyGo/types"
)

var log = logging.Get("mcts")

// Search runs repeated select/expand/evaluate/backup passes over one root
// position and reports the resulting visit-weighted policy and best move.
// A Search is single-use: build a new one per move via New.
type Search struct {
	root *Node
	eval *evaluator.Evaluator
	rnd  *rand.Rand

	dirichletAlpha      float64
	dirichletEpsilon    float64
	virtualLossValue    float64 // config.Settings.MCTS.MctsVirtualLoss, a negative per-visit value
	precomputeMinVisits int
	useAsync            bool
	workerID            int

	running *semaphore.Weighted // guards against Run/RunBatch called concurrently on the same instance
}

// Option adjusts a Search away from its config.Settings-derived defaults.
type Option func(*Search)

// WithoutRootNoise disables Dirichlet root noise, for arena games where both
// sides must pick moves by tree strength alone rather than exploration.
func WithoutRootNoise() Option {
	return func(s *Search) { s.dirichletEpsilon = 0 }
}

// WithSeed replaces a Search's default time-seeded RNG source with one seeded
// from seed, so the Dirichlet noise draw, the child-order shuffle and
// BestMove's visit-proportional sampling - every use of randomness in a
// search - are reproducible across runs.
func WithSeed(seed int64) Option {
	return func(s *Search) { s.rnd = rand.New(rand.NewSource(seed)) }
}

// New creates a Search rooted at g. workerID identifies the calling
// goroutine's slot when the evaluator runs in asynchronous mode; it is
// ignored for synchronous evaluation. The root is expanded (and its
// children warm-started through the precompute batch) here, so every
// Run/RunBatch iteration descends into one of the root's children.
func New(g *state.GameState, eval *evaluator.Evaluator, workerID int, opts ...Option) *Search {
	s := &Search{
		root:                newNode(g, nil, MoveNone, 1),
		eval:                eval,
		rnd:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		dirichletAlpha:      config.Settings.MCTS.DirichletAlpha,
		dirichletEpsilon:    config.Settings.MCTS.DirichletEpsilon,
		virtualLossValue:    float64(config.Settings.MCTS.MctsVirtualLoss),
		precomputeMinVisits: config.Settings.MCTS.PrecomputeBatchParentMinVisits,
		useAsync:            config.Settings.Evaluator.UseAsyncInference,
		workerID:            workerID,
		running:             semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.expand(s.root)
	s.maybePrecompute(s.root)
	return s
}

// Run performs iterations single-leaf passes: select, expand, evaluate,
// backup, one leaf at a time. Panics if called while another Run/RunBatch
// on the same Search is already in progress.
func (s *Search) Run(iterations int) {
	if !s.running.TryAcquire(1) {
		panic("mcts: Run/RunBatch called concurrently on the same Search")
	}
	defer s.running.Release(1)
	for i := 0; i < iterations; i++ {
		s.runOne()
	}
}

func (s *Search) runOne() {
	leaf := s.selectLeaf()
	s.expand(leaf)
	s.maybePrecompute(leaf)
	value := s.evaluateNode(leaf)
	s.backup(leaf, value, false)
}

// RunBatch performs iterations leaf-parallel passes of leafBatchSize leaves
// each: select leafBatchSize leaves (marking each with virtual loss as it
// is chosen, so later selections in the same batch avoid it), expand them,
// evaluate the whole batch in one call, then back all of them up. Panics if
// called while another Run/RunBatch on the same Search is already in
// progress.
func (s *Search) RunBatch(iterations, leafBatchSize int) {
	if !s.running.TryAcquire(1) {
		panic("mcts: Run/RunBatch called concurrently on the same Search")
	}
	defer s.running.Release(1)
	done := 0
	for done < iterations {
		n := leafBatchSize
		if done+n > iterations {
			n = iterations - done
		}
		s.batchIteration(n)
		done += n
	}
}

func (s *Search) batchIteration(n int) {
	leaves := make([]*Node, n)
	for i := 0; i < n; i++ {
		leaf := s.selectLeaf()
		for p := leaf; p != nil; p = p.parent {
			p.addVirtualLoss()
		}
		leaves[i] = leaf
	}
	for _, leaf := range leaves {
		s.expand(leaf)
		s.maybePrecompute(leaf)
	}

	games := make([]*state.GameState, n)
	for i, leaf := range leaves {
		games[i] = leaf.game
	}
	values := s.evaluateBatch(games)

	for i, leaf := range leaves {
		s.backup(leaf, values[i], true)
	}
}

// selectLeaf walks from the root picking, at each step, the first child with
// no completed and no in-flight visit if one exists, else the child
// maximizing Q(s,a) + U(s,a).
func (s *Search) selectLeaf() *Node {
	n := s.root
	for {
		n.mu.Lock()
		kids := n.children
		n.mu.Unlock()
		if len(kids) == 0 {
			return n
		}
		n = s.bestChild(n, kids)
	}
}

func (s *Search) bestChild(parent *Node, kids []*Node) *Node {
	parentVisits := parent.Visits()
	var best *Node
	bestScore := math.Inf(-1)
	for _, c := range kids {
		c.mu.Lock()
		unvisited := c.visits+c.pendingVisits == 0
		c.mu.Unlock()
		if unvisited {
			return c
		}
		score := c.puct(parentVisits) + c.qPessimistic(s.virtualLossValue)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// expand generates n's children from its legal moves with a uniform prior,
// blended with Dirichlet root noise when n is the root. It does not
// evaluate n or its children - that happens in evaluateNode/evaluateBatch.
func (s *Search) expand(n *Node) {
	n.mu.Lock()
	if n.expanded {
		n.mu.Unlock()
		return
	}
	n.expanded = true
	n.mu.Unlock()

	moves := n.game.LegalMoves()
	if len(moves) == 0 {
		return
	}

	priors := make([]float64, len(moves))
	uniform := 1 / float64(len(moves))
	for i := range priors {
		priors[i] = uniform
	}
	if n == s.root && s.dirichletEpsilon > 0 {
		noise := dirichletNoise(len(moves), s.dirichletAlpha, s.rnd)
		for i := range priors {
			priors[i] = (1-s.dirichletEpsilon)*priors[i] + s.dirichletEpsilon*noise[i]
		}
	}

	children := make([]*Node, len(moves))
	for i, mv := range moves {
		children[i] = newNode(n.game.Apply(mv), n, mv, priors[i])
	}
	s.rnd.Shuffle(len(children), func(i, j int) {
		children[i], children[j] = children[j], children[i]
	})

	n.mu.Lock()
	n.children = children
	n.mu.Unlock()
}

// maybePrecompute warm-starts n's freshly expanded children with a single
// batched network call so their first real visit does not pay for a
// one-element inference, once n has accumulated enough of its own visits
// (or is the root) to make the warm-up worthwhile.
func (s *Search) maybePrecompute(n *Node) {
	n.mu.Lock()
	kids := n.children
	parentVisits := n.visits
	n.mu.Unlock()
	if len(kids) == 0 {
		return
	}
	if n != s.root && parentVisits < s.precomputeMinVisits {
		return
	}

	games := make([]*state.GameState, len(kids))
	for i, c := range kids {
		games[i] = c.game
	}
	values := s.evaluateBatch(games)
	for i, c := range kids {
		c.mu.Lock()
		if !c.computed {
			c.ownValue = values[i]
			c.computed = true
		}
		c.mu.Unlock()
	}
}

func (s *Search) evaluateNode(n *Node) float64 {
	n.mu.Lock()
	if n.computed {
		v := n.ownValue
		n.mu.Unlock()
		return v
	}
	n.mu.Unlock()

	v := s.evaluateOne(n.game)

	n.mu.Lock()
	n.ownValue = v
	n.computed = true
	n.mu.Unlock()
	return v
}

func (s *Search) evaluateOne(g *state.GameState) float64 {
	if s.useAsync {
		return float64(s.eval.EvaluateAsync(g, s.workerID))
	}
	return float64(s.eval.Evaluate(g))
}

func (s *Search) evaluateBatch(games []*state.GameState) []float64 {
	var raw []float32
	if s.useAsync {
		raw = s.eval.EvaluateAsyncBatch(games, s.workerID)
	} else {
		raw = s.eval.EvaluateBatch(games)
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}

// backup propagates value up from leaf, negating the sign at each step
// since the side to move alternates, clearing one pending virtual-loss
// visit per node along the path if this visit had added one.
func (s *Search) backup(leaf *Node, value float64, hadVirtualLoss bool) {
	q := -value
	for n := leaf; n != nil; n = n.parent {
		n.backup(q, hadVirtualLoss)
		q = -q
	}
}

// BestMove picks root's move. Deterministic picks the most-visited child,
// ties broken by Q; otherwise it samples proportional to visit counts, as
// self-play exploration requires.
func (s *Search) BestMove(deterministic bool) Move {
	kids := s.root.children
	if len(kids) == 0 {
		return MoveNone
	}
	if deterministic {
		best := kids[0]
		for _, c := range kids[1:] {
			if c.Visits() > best.Visits() || (c.Visits() == best.Visits() && c.Q() > best.Q()) {
				best = c
			}
		}
		return best.move
	}

	total := 0
	for _, c := range kids {
		total += c.Visits()
	}
	if total == 0 {
		return kids[s.rnd.Intn(len(kids))].move
	}
	r := s.rnd.Intn(total)
	acc := 0
	for _, c := range kids {
		acc += c.Visits()
		if r < acc {
			return c.move
		}
	}
	return kids[len(kids)-1].move
}

// PolicyVector returns the visit-count training target for the root
// position, per spec.md §4.5.
func (s *Search) PolicyVector() [encoder.PolicyLength]float32 {
	kids := s.root.children
	moves := make([]Move, len(kids))
	visits := make([]int, len(kids))
	for i, c := range kids {
		moves[i] = c.move
		visits[i] = c.Visits()
	}
	return encoder.PolicyVectorFromVisits(moves, visits)
}

// RootVisits returns the total number of completed iterations through the
// root's children.
func (s *Search) RootVisits() int {
	total := 0
	for _, c := range s.root.children {
		total += c.Visits()
	}
	return total
}
