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

// Package mcts implements PUCT tree search over a state.GameState chain,
// backed by a batched evaluator.Evaluator. Nodes are held in a single
// arena per search and released together when the search returns its
// result - there is no per-node free.
package mcts

import (
	"math"
	"sync"

	"github.com/frankkopp/FrankyGo/state"
	. "github.com/frankkopp/FrankyGo/types"
)

// Node is one position in the search tree. A Node's own statistics (visits,
// valueSum, pendingVisits) describe the edge from its parent, matching the
// teacher's convention that PUCT(child) is scored against the parent's
// total visit count.
//
// expanded and computed track two independent lifecycle steps: expanded is
// set once children exist to select among; computed is set once this
// node's own network value has been obtained, whether through the normal
// evaluate step or the precompute warm-up.
type Node struct {
	mu sync.Mutex

	game   *state.GameState
	move   Move // the move that produced this node from its parent
	parent *Node
	prior  float64

	children []*Node
	expanded bool

	computed bool
	ownValue float64

	visits        int
	valueSum      float64
	pendingVisits int // in-flight visits each carrying one virtualLossValue
}

// newNode allocates a child of parent reached by playing move with the
// given prior probability. parent is nil only for the root.
func newNode(g *state.GameState, parent *Node, move Move, prior float64) *Node {
	return &Node{game: g, parent: parent, move: move, prior: prior}
}

// Q is this edge's mean value from the parent's perspective. It adds no
// virtual-loss value; in-flight visits, if any, only enlarge the divisor.
func (n *Node) Q() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.qLocked(0)
}

// qLocked folds virtualLossValue (config.Settings.MCTS.MctsVirtualLoss, a
// negative number per spec.md §6) into the mean once per pending visit.
func (n *Node) qLocked(virtualLossValue float64) float64 {
	v := n.visits + n.pendingVisits
	if v == 0 {
		return 0
	}
	return (n.valueSum + float64(n.pendingVisits)*virtualLossValue) / float64(v)
}

// puct is U(s,a) = prior * sqrt(parentVisits) / (1 + visits), matching
// MCTSNode::PUCT in the reference implementation - it carries no c_puct
// coefficient. visits here counts in-flight (virtual-loss) visits too.
func (n *Node) puct(parentVisits int) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := float64(n.visits + n.pendingVisits)
	return n.prior * math.Sqrt(float64(parentVisits)) / (1 + v)
}

// addVirtualLoss marks a node as lying on the path of an in-flight batch
// visit, so sibling selections in the same batch see it as worse.
func (n *Node) addVirtualLoss() {
	n.mu.Lock()
	n.pendingVisits++
	n.mu.Unlock()
}

// backup records a value observed from this node's own perspective and, if
// this visit was carrying virtual loss, clears one pending visit.
func (n *Node) backup(value float64, hadVirtualLoss bool) {
	n.mu.Lock()
	n.visits++
	n.valueSum += value
	if hadVirtualLoss {
		n.pendingVisits--
	}
	n.mu.Unlock()
}

// qPessimistic is Q folding in virtualLossValue for every pending visit,
// used during selection so concurrent leaf-parallel picks spread out.
func (n *Node) qPessimistic(virtualLossValue float64) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.qLocked(virtualLossValue)
}

// Visits returns the number of completed backups through this edge.
func (n *Node) Visits() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visits
}

// Move returns the move that produced this node.
func (n *Node) Move() Move { return n.move }
