package graph

import (
	"fmt"

	"github.com/zerfoo/cortex/activation"
)

// ActivationNode sums its input edges elementwise into a trigger vector,
// applies an elementwise activation function, and pushes the result to its
// single output edge. It has one or more input edges, all of the same
// size, and exactly one output edge of that size.
type ActivationNode struct {
	id   ID
	cell *Cell

	inputEdges  []*Edge
	outputEdges []*Edge
	size        int
	fn          activation.Activation
}

// NewActivationNode creates an ActivationNode wrapping fn, with a single
// output edge of the given size and no input edges yet (attach with
// AddInput).
func NewActivationNode(size int, fn activation.Activation) (*ActivationNode, error) {
	return NewActivationNodeWithID(NewID(), size, fn)
}

// NewActivationNodeWithID creates an ActivationNode with an explicit
// identifier, used when restoring a persisted snapshot.
func NewActivationNodeWithID(id ID, size int, fn activation.Activation) (*ActivationNode, error) {
	if size <= 0 {
		return nil, fmt.Errorf("new activation node: size %d must be positive", size)
	}

	if fn == nil {
		return nil, fmt.Errorf("new activation node: activation function is required")
	}

	n := &ActivationNode{id: id, size: size, fn: fn}

	outEdge, err := NewEdge(size)
	if err != nil {
		return nil, err
	}

	n.AttachOutput(outEdge)

	return n, nil
}

// AddInput wires an additional input edge of the node's size, setting the
// edge's output-node back-reference.
func (n *ActivationNode) AddInput(e *Edge) error {
	if e.Size() != n.size {
		return fmt.Errorf("activation node %s: input edge size %d, want %d", n.id, e.Size(), n.size)
	}

	e.SetOutputNode(n)
	n.inputEdges = append(n.inputEdges, e)

	return nil
}

// AttachOutput wires e as this node's output edge, setting e's input-node
// back-reference.
func (n *ActivationNode) AttachOutput(e *Edge) {
	e.SetInputNode(n)
	n.outputEdges = []*Edge{e}
}

// ID returns the node's stable identifier.
func (n *ActivationNode) ID() ID { return n.id }

// OpType returns "Activation".
func (n *ActivationNode) OpType() string { return "Activation" }

// Cell returns the owning cell.
func (n *ActivationNode) Cell() *Cell { return n.cell }

func (n *ActivationNode) setCell(c *Cell) { n.cell = c }

// InputEdges returns the node's input edges.
func (n *ActivationNode) InputEdges() []*Edge { return n.inputEdges }

// OutputEdges returns the node's single output edge.
func (n *ActivationNode) OutputEdges() []*Edge { return n.outputEdges }

// Function returns the node's activation function.
func (n *ActivationNode) Function() activation.Activation { return n.fn }

// Size returns the fixed vector length this node operates on.
func (n *ActivationNode) Size() int { return n.size }

// Forward sums the forward values of all input edges elementwise into a
// trigger vector, applies the activation function, and pushes the result.
func (n *ActivationNode) Forward() error {
	if len(n.inputEdges) == 0 || len(n.outputEdges) != 1 {
		return fmt.Errorf("activation node %s: %w", n.id, ErrInvalidInputCount)
	}

	vs := make([][]float64, len(n.inputEdges))
	for i, e := range n.inputEdges {
		vs[i] = e.ForwardValues()
	}

	triggers := sumVectors(vs...)
	output := n.fn.Activations(triggers)

	return n.outputEdges[0].PushForward(output)
}

// Backward reads the output delta and this node's last forward output,
// computes the elementwise product with the activation derivative, and
// pushes the resulting delta to every input edge: each input produced an
// additive contribution to the trigger, so each receives the same gradient.
func (n *ActivationNode) Backward() error {
	if len(n.inputEdges) == 0 || len(n.outputEdges) != 1 {
		return fmt.Errorf("activation node %s: %w", n.id, ErrInvalidInputCount)
	}

	deltaOut := n.outputEdges[0].BackwardDeltas()
	output := n.outputEdges[0].ForwardValues()
	d := n.fn.Derivatives(output)

	deltaIn := make([]float64, n.size)
	for i := range deltaIn {
		deltaIn[i] = deltaOut[i] * d[i]
	}

	for _, e := range n.inputEdges {
		if err := e.PushBackward(deltaIn); err != nil {
			return err
		}
	}

	return nil
}

var _ Node = (*ActivationNode)(nil)
