package matrixgame

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/timpalpant/go-cfr"
)

// GameNode implements cfr.GameTreeNode for a two-player matrix game.
// The row player (player 0) moves first, then the column player (player 1)
// moves without observing the row player's action.
type GameNode struct {
	payoffs [][]float64
	// depth is the number of actions taken so far:
	// 0 for the root, 1 after the row player acts, 2 at terminal nodes.
	depth int
	// rowAction and colAction are the actions taken to reach this node.
	rowAction int
	colAction int

	children []GameNode
	parent   *GameNode
}

// Verify that we implement the interface.
var _ cfr.GameTreeNode = &GameNode{}

// NewGame creates the root node of the game with the given payoff
// matrix for the row player. The game is zero-sum.
func NewGame(payoffs [][]float64) *GameNode {
	return &GameNode{payoffs: payoffs}
}

// Type implements cfr.GameTreeNode.
func (gn *GameNode) Type() cfr.NodeType {
	if gn.depth >= 2 {
		return cfr.TerminalNodeType
	}

	return cfr.PlayerNodeType
}

// Player implements cfr.GameTreeNode.
// At terminal nodes it is the last player to act.
func (gn *GameNode) Player() int {
	if gn.depth == 0 {
		return 0
	}

	return 1
}

// InfoSet implements cfr.GameTreeNode. Neither player observes
// anything, so each player has a single information set.
func (gn *GameNode) InfoSet(player int) cfr.InfoSet {
	return &InfoSet{Player: player}
}

// Utility implements cfr.GameTreeNode.
func (gn *GameNode) Utility(player int) float64 {
	if gn.Type() != cfr.TerminalNodeType {
		panic("cannot get the utility of a non-terminal node")
	}

	u := gn.payoffs[gn.rowAction][gn.colAction]
	if player == 1 {
		return -u
	}

	return u
}

// NumChildren implements cfr.GameTreeNode.
func (gn *GameNode) NumChildren() int {
	switch gn.depth {
	case 0:
		return len(gn.payoffs)
	case 1:
		return len(gn.payoffs[0])
	default:
		return 0
	}
}

// GetChild implements cfr.GameTreeNode.
func (gn *GameNode) GetChild(i int) cfr.GameTreeNode {
	if gn.children == nil {
		gn.buildChildren()
	}

	return &gn.children[i]
}

func (gn *GameNode) buildChildren() {
	n := gn.NumChildren()
	gn.children = make([]GameNode, n)
	for i := range gn.children {
		child := &gn.children[i]
		child.payoffs = gn.payoffs
		child.depth = gn.depth + 1
		child.rowAction = gn.rowAction
		child.colAction = gn.colAction
		child.parent = gn
		if gn.depth == 0 {
			child.rowAction = i
		} else {
			child.colAction = i
		}
	}
}

// Parent implements cfr.GameTreeNode.
func (gn *GameNode) Parent() cfr.GameTreeNode {
	if gn.parent == nil {
		return nil
	}

	return gn.parent
}

// GetChildProbability implements cfr.GameTreeNode.
func (gn *GameNode) GetChildProbability(i int) float64 {
	panic("matrix games have no chance nodes")
}

// SampleChild implements cfr.GameTreeNode.
func (gn *GameNode) SampleChild() (cfr.GameTreeNode, float64) {
	panic("matrix games have no chance nodes")
}

// Close implements cfr.GameTreeNode.
func (gn *GameNode) Close() {
	gn.children = nil
}

// String implements fmt.Stringer.
func (gn *GameNode) String() string {
	switch gn.depth {
	case 0:
		return "row player to act"
	case 1:
		return "column player to act"
	default:
		return fmt.Sprintf("row played %d, column played %d", gn.rowAction, gn.colAction)
	}
}

// InfoSet is the (empty) history observed by a player in a matrix game.
type InfoSet struct {
	Player int
}

// Key implements cfr.InfoSet.
func (is *InfoSet) Key() string {
	return fmt.Sprintf("player%d", is.Player)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (is *InfoSet) MarshalBinary() ([]byte, error) {
	return []byte{uint8(is.Player)}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (is *InfoSet) UnmarshalBinary(buf []byte) error {
	if len(buf) != 1 {
		return fmt.Errorf("invalid info set encoding: %d bytes", len(buf))
	}

	is.Player = int(buf[0])
	return nil
}

// CFR approximates a Nash equilibrium of the zero-sum game with the given
// payoff matrix by running nIter iterations of vanilla counterfactual regret
// minimization. It returns the average strategy of each player.
func CFR(payoffs [][]float64, nIter int) ([]float32, []float32) {
	if len(payoffs) == 0 || len(payoffs[0]) == 0 || nIter <= 0 {
		return nil, nil
	}

	root := NewGame(payoffs)
	policy := cfr.NewPolicyTable(cfr.DiscountParams{})
	vanillaCFR := cfr.New(policy)
	logEvery := max(nIter/10, 1)
	for i := 1; i <= nIter; i++ {
		expectedValue := vanillaCFR.Run(root)
		if i%logEvery == 0 {
			glog.V(1).Infof("[iter %d] expected value: %v", i, expectedValue)
		}
	}

	p0 := policy.GetPolicy(root).GetAverageStrategy()
	p1 := policy.GetPolicy(root.GetChild(0)).GetAverageStrategy()
	return append([]float32(nil), p0...), append([]float32(nil), p1...)
}
