// Package graph provides the computation-graph primitives shared by every
// network: the stable-identity Edge and Node types, the Cell container, and
// the three concrete node kinds (Weights, Bias, Activation).
package graph

// Node is a processing unit with ordered input and output edges and a
// back-reference to its owning cell. Forward reads input edges and writes
// output edges; Backward is the mirror, reading output deltas and writing
// input deltas while updating any trainable state.
//
// The three concrete kinds (*WeightsNode, *BiasNode, *ActivationNode)
// satisfy this interface; dispatch happens through the interface itself,
// the idiomatic Go substitute for the source's tagged-union switch.
type Node interface {
	// ID returns the node's stable identifier.
	ID() ID
	// OpType names the node kind for persistence and diagnostics, e.g. "Weights", "Bias", "Activation".
	OpType() string
	// Cell returns the cell that owns this node.
	Cell() *Cell
	// InputEdges returns the node's input edges, in order.
	InputEdges() []*Edge
	// OutputEdges returns the node's output edges, in order.
	OutputEdges() []*Edge
	// Forward computes this node's contribution for the current time step.
	Forward() error
	// Backward propagates deltas and updates any trainable state.
	Backward() error

	setCell(*Cell)
}

// sumVectors returns the elementwise sum of one or more equal-length vectors.
func sumVectors(vs ...[]float64) []float64 {
	if len(vs) == 0 {
		return nil
	}

	out := make([]float64, len(vs[0]))
	for _, v := range vs {
		for i, x := range v {
			out[i] += x
		}
	}

	return out
}
