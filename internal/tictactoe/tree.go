package tictactoe

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type NodeID int

const RootID NodeID = 0

// Node is one visited position of a traced search. The root has no move and
// is its own parent.
type Node struct {
	ID       NodeID      `json:"id"`
	Parent   NodeID      `json:"parent"`
	Move     entity.Move `json:"move"`
	Mark     entity.Mark `json:"mark,omitempty"`
	Ply      int         `json:"ply"`
	Score    int         `json:"score"`
	Terminal bool        `json:"terminal,omitempty"`
	Pruned   bool        `json:"pruned,omitempty"`
	Children []NodeID    `json:"children,omitempty"`
}

func (that Node) IsRoot() bool {
	return that.ID == RootID
}

// Tree is an arena of search nodes addressed by id.
type Tree struct {
	nodes []Node
}

func newTree() *Tree {
	return &Tree{
		nodes: []Node{{ID: RootID, Parent: RootID}},
	}
}

func (that *Tree) add(parent NodeID, move entity.Move, mark entity.Mark, ply int) NodeID {
	id := NodeID(len(that.nodes))
	that.nodes = append(that.nodes, Node{
		ID:     id,
		Parent: parent,
		Move:   move,
		Mark:   mark,
		Ply:    ply,
	})
	that.nodes[parent].Children = append(that.nodes[parent].Children, id)

	return id
}

func (that *Tree) resolve(id NodeID, score int, terminal, pruned bool) {
	node := &that.nodes[id]
	node.Score = score
	node.Terminal = terminal
	node.Pruned = pruned
}

func (that *Tree) Len() int {
	return len(that.nodes)
}

func (that *Tree) Root() Node {
	return that.nodes[RootID]
}

func (that *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(that.nodes) {
		return Node{}, false
	}

	return that.nodes[id], true
}

func (that *Tree) Children(id NodeID) []Node {
	node, ok := that.Node(id)
	if !ok {
		return nil
	}

	return lo.Map(node.Children, func(child NodeID, _ int) Node {
		return that.nodes[child]
	})
}

// Walk visits nodes depth-first in search order. Returning false from fn
// skips the subtree of that node.
func (that *Tree) Walk(fn func(Node) bool) {
	stack := []NodeID{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := that.nodes[id]
		if !fn(node) {
			continue
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// Path returns the moves leading from the root to id.
func (that *Tree) Path(id NodeID) []entity.Move {
	var moves []entity.Move
	for id != RootID {
		node := that.nodes[id]
		moves = append(moves, node.Move)
		id = node.Parent
	}

	return lo.Reverse(moves)
}

// PrincipalVariation follows, from the root, the first child whose score
// equals its parent's. With pruning on, scores below the first matching
// child are bounds, so the line is the one the search actually proved.
func (that *Tree) PrincipalVariation() []entity.Move {
	var moves []entity.Move

	node := that.Root()
	for len(node.Children) > 0 {
		next, ok := lo.Find(that.Children(node.ID), func(child Node) bool {
			return child.Score == node.Score
		})
		if !ok {
			break
		}

		moves = append(moves, next.Move)
		node = next
	}

	return moves
}
