package graph

import "fmt"

// Cell is a named container grouping nodes that logically form one
// sub-network (e.g. one RNN layer). It is a naming and grouping
// convenience, not a graph node itself: it exposes no Forward/Backward of
// its own.
type Cell struct {
	id    ID
	name  string
	nodes []Node
}

// NewCell creates an empty, named cell.
func NewCell(name string) (*Cell, error) {
	return NewCellWithID(NewID(), name)
}

// NewCellWithID creates an empty, named cell with an explicit identifier,
// used when restoring a persisted snapshot.
func NewCellWithID(id ID, name string) (*Cell, error) {
	if name == "" {
		return nil, fmt.Errorf("new cell: %w", ErrEmptyName)
	}

	return &Cell{id: id, name: name}, nil
}

// ID returns the cell's stable identifier.
func (c *Cell) ID() ID { return c.id }

// Name returns the cell's name.
func (c *Cell) Name() string { return c.name }

// Nodes returns the nodes owned by this cell, in addition order.
func (c *Cell) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)

	return out
}

// AddNode adds a node to the cell and sets the node's back-reference.
func (c *Cell) AddNode(n Node) {
	n.setCell(c)
	c.nodes = append(c.nodes, n)
}

// InputEdges returns the derived view of the cell's input edges: input
// edges of its nodes whose input node is absent, or belongs to a different
// cell.
func (c *Cell) InputEdges() []*Edge {
	var out []*Edge

	for _, n := range c.nodes {
		for _, e := range n.InputEdges() {
			if owner := e.InputNode(); owner == nil || owner.Cell() != c {
				out = append(out, e)
			}
		}
	}

	return out
}

// OutputEdges returns the derived view of the cell's output edges: output
// edges of its nodes whose output node is absent, or belongs to a different
// cell.
func (c *Cell) OutputEdges() []*Edge {
	var out []*Edge

	for _, n := range c.nodes {
		for _, e := range n.OutputEdges() {
			if owner := e.OutputNode(); owner == nil || owner.Cell() != c {
				out = append(out, e)
			}
		}
	}

	return out
}
