package graph

import "fmt"

// Edge is a typed conduit between two nodes carrying fixed-size float64
// vectors. It owns two independent stacks: a forward queue of values and a
// backward queue of deltas. Reading the head of an empty queue returns a
// zero vector rather than failing, so recurrent back-edges are safe on the
// first forward step and the two directions stay symmetric.
//
// Both queues are implemented as slices used as a stack: Push appends,
// Values/Deltas peek the last element, and Unfold truncates it off. This is
// the idiomatic Go substitute for the source's unbounded linked list — O(1)
// amortized push and pop at the same end, which is all the access pattern
// here requires.
type Edge struct {
	id     ID
	size   int
	input  Node // node that writes forward values / reads backward deltas; nil iff network input
	output Node // node that reads forward values / writes backward deltas; nil iff network output

	forward  [][]float64
	backward [][]float64
}

// NewEdge creates an edge of the given size with a fresh identifier. The
// input and output nodes are wired separately via SetInputNode and
// SetOutputNode (or a node's Attach/Add methods), since at
// construction time one or both endpoints are often not yet known (a
// network-input edge has no input node; a network-output edge has no
// output node).
func NewEdge(size int) (*Edge, error) {
	return NewEdgeWithID(NewID(), size)
}

// NewEdgeWithID creates an edge with an explicit identifier, used when
// restoring a persisted snapshot.
func NewEdgeWithID(id ID, size int) (*Edge, error) {
	if size <= 0 {
		return nil, fmt.Errorf("edge size %d: %w", size, ErrZeroSize)
	}

	return &Edge{id: id, size: size}, nil
}

// ID returns the edge's stable identifier.
func (e *Edge) ID() ID { return e.id }

// Size returns the fixed vector length carried by this edge.
func (e *Edge) Size() int { return e.size }

// InputNode returns the node that writes forward values to this edge, or
// nil if this is a network-input edge.
func (e *Edge) InputNode() Node { return e.input }

// OutputNode returns the node that reads forward values from this edge, or
// nil if this is a network-output edge.
func (e *Edge) OutputNode() Node { return e.output }

// SetInputNode wires the edge's input endpoint.
func (e *Edge) SetInputNode(n Node) { e.input = n }

// SetOutputNode wires the edge's output endpoint.
func (e *Edge) SetOutputNode(n Node) { e.output = n }

// IsInput reports whether this edge is a network input (no input node).
func (e *Edge) IsInput() bool { return e.input == nil }

// IsOutput reports whether this edge is a network output (no output node).
func (e *Edge) IsOutput() bool { return e.output == nil }

// IsTransfer reports whether this edge connects two nodes internal to the network.
func (e *Edge) IsTransfer() bool { return e.input != nil && e.output != nil }

// PushForward pushes a value vector onto the forward queue. v must have
// length equal to Size(); this is a programming error otherwise.
func (e *Edge) PushForward(v []float64) error {
	if len(v) != e.size {
		return fmt.Errorf("push forward on edge %s: got length %d, want %d: %w", e.id, len(v), e.size, ErrSizeMismatch)
	}

	cp := make([]float64, e.size)
	copy(cp, v)
	e.forward = append(e.forward, cp)

	return nil
}

// PushBackward pushes a delta vector onto the backward queue. d must have
// length equal to Size(); this is a programming error otherwise.
func (e *Edge) PushBackward(d []float64) error {
	if len(d) != e.size {
		return fmt.Errorf("push backward on edge %s: got length %d, want %d: %w", e.id, len(d), e.size, ErrSizeMismatch)
	}

	cp := make([]float64, e.size)
	copy(cp, d)
	e.backward = append(e.backward, cp)

	return nil
}

// ForwardValues returns the head of the forward queue (the most recently
// pushed value), or a zero vector of length Size() if the queue is empty.
// Non-destructive.
func (e *Edge) ForwardValues() []float64 {
	return headOrZero(e.forward, e.size)
}

// BackwardDeltas returns the head of the backward queue (the most recently
// pushed delta), or a zero vector of length Size() if the queue is empty.
// Non-destructive.
func (e *Edge) BackwardDeltas() []float64 {
	return headOrZero(e.backward, e.size)
}

// Unfold removes the head of both queues if present, advancing the
// truncated temporal window by one step. Idempotent on empty queues.
func (e *Edge) Unfold() {
	if n := len(e.forward); n > 0 {
		e.forward = e.forward[:n-1]
	}

	if n := len(e.backward); n > 0 {
		e.backward = e.backward[:n-1]
	}
}

// ForwardQueueLen returns the current depth of the forward queue. Exposed
// for the queue-conservation property and for tests.
func (e *Edge) ForwardQueueLen() int { return len(e.forward) }

// BackwardQueueLen returns the current depth of the backward queue.
func (e *Edge) BackwardQueueLen() int { return len(e.backward) }

func headOrZero(q [][]float64, size int) []float64 {
	if n := len(q); n > 0 {
		out := make([]float64, size)
		copy(out, q[n-1])

		return out
	}

	return make([]float64, size)
}
