package graph

import (
	"fmt"
	"math/rand"
)

// WeightsNode computes a weighted sum y[out] = Σ_in x[in]·W[in][out] on
// forward, and performs an SGD-with-momentum-and-decay update on backward.
// It has exactly one input edge of size In and exactly one output edge of
// size Out.
type WeightsNode struct {
	id   ID
	cell *Cell

	inputEdges  []*Edge
	outputEdges []*Edge

	in, out int
	w       [][]float64 // in x out
	g       [][]float64 // in x out, momentum buffer

	eta, alpha, lambda float64
}

// WeightsOptions configures a WeightsNode's hyperparameters and, optionally,
// its initial weights and momentum buffer (used when restoring a snapshot).
type WeightsOptions struct {
	Eta, Alpha, Lambda float64
	Weights            [][]float64 // in x out, nil means sample standard normal
	Gradients          [][]float64 // in x out, nil means zero
	Rand               *rand.Rand  // nil means use a source seeded from the node's ID
}

// NewWeightsNode creates a WeightsNode with a fresh identifier.
func NewWeightsNode(in, out int, opts WeightsOptions) (*WeightsNode, error) {
	return NewWeightsNodeWithID(NewID(), in, out, opts)
}

// NewWeightsNodeWithID creates a WeightsNode with an explicit identifier,
// used when restoring a persisted snapshot.
func NewWeightsNodeWithID(id ID, in, out int, opts WeightsOptions) (*WeightsNode, error) {
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("new weights node: in=%d out=%d must be positive", in, out)
	}

	w := opts.Weights
	if w == nil {
		r := opts.Rand
		if r == nil {
			r = rand.New(rand.NewSource(int64(seedFromID(id))))
		}

		w = make([][]float64, in)
		for i := range w {
			w[i] = make([]float64, out)
			for j := range w[i] {
				// #nosec G404 -- math/rand is acceptable for weight initialization, not security-sensitive.
				w[i][j] = r.NormFloat64()
			}
		}
	}

	g := opts.Gradients
	if g == nil {
		g = make([][]float64, in)
		for i := range g {
			g[i] = make([]float64, out)
		}
	}

	n := &WeightsNode{
		id:     id,
		in:     in,
		out:    out,
		w:      w,
		g:      g,
		eta:    opts.Eta,
		alpha:  opts.Alpha,
		lambda: opts.Lambda,
	}

	inEdge, err := NewEdge(in)
	if err != nil {
		return nil, err
	}

	outEdge, err := NewEdge(out)
	if err != nil {
		return nil, err
	}

	n.AttachInput(inEdge)
	n.AttachOutput(outEdge)

	return n, nil
}

// seedFromID derives a deterministic seed from a node's identifier so that
// weight initialization is reproducible given the same identifier, without
// relying on a global random source.
func seedFromID(id ID) uint64 {
	var s uint64
	for i, b := range id {
		s ^= uint64(b) << uint(8*(i%8))
	}

	if s == 0 {
		s = 1
	}

	return s
}

// AttachInput wires e as this node's input edge, setting e's output-node
// back-reference. A WeightsNode accepts exactly one input edge; calling
// this twice replaces the previous wiring.
func (n *WeightsNode) AttachInput(e *Edge) {
	e.SetOutputNode(n)
	n.inputEdges = []*Edge{e}
}

// AttachOutput wires e as this node's output edge, setting e's input-node
// back-reference. A WeightsNode accepts exactly one output edge; calling
// this twice replaces the previous wiring.
func (n *WeightsNode) AttachOutput(e *Edge) {
	e.SetInputNode(n)
	n.outputEdges = []*Edge{e}
}

// ID returns the node's stable identifier.
func (n *WeightsNode) ID() ID { return n.id }

// OpType returns "Weights".
func (n *WeightsNode) OpType() string { return "Weights" }

// Cell returns the owning cell.
func (n *WeightsNode) Cell() *Cell { return n.cell }

func (n *WeightsNode) setCell(c *Cell) { n.cell = c }

// InputEdges returns the node's single input edge.
func (n *WeightsNode) InputEdges() []*Edge { return n.inputEdges }

// OutputEdges returns the node's single output edge.
func (n *WeightsNode) OutputEdges() []*Edge { return n.outputEdges }

// InputSize returns In.
func (n *WeightsNode) InputSize() int { return n.in }

// OutputSize returns Out.
func (n *WeightsNode) OutputSize() int { return n.out }

// Eta, Alpha, Lambda expose the node's hyperparameters.
func (n *WeightsNode) Eta() float64    { return n.eta }
func (n *WeightsNode) Alpha() float64  { return n.alpha }
func (n *WeightsNode) Lambda() float64 { return n.lambda }

// Weights returns the current weight matrix (in x out). The returned slices
// alias internal state; callers that mutate it (e.g. to override a weight
// for a test) do so intentionally.
func (n *WeightsNode) Weights() [][]float64 { return n.w }

// Gradients returns the current momentum buffer (in x out).
func (n *WeightsNode) Gradients() [][]float64 { return n.g }

// SetWeight overrides a single weight, e.g. to fix known weights in a test.
func (n *WeightsNode) SetWeight(in, out int, v float64) {
	n.w[in][out] = v
}

// Forward computes y[out] = Σ_in x[in]·W[in][out] and pushes y to the output edge.
func (n *WeightsNode) Forward() error {
	if len(n.inputEdges) != 1 || len(n.outputEdges) != 1 {
		return fmt.Errorf("weights node %s: %w", n.id, ErrInvalidInputCount)
	}

	x := n.inputEdges[0].ForwardValues()
	y := make([]float64, n.out)

	for i := 0; i < n.in; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}

		row := n.w[i]
		for j := 0; j < n.out; j++ {
			y[j] += xi * row[j]
		}
	}

	return n.outputEdges[0].PushForward(y)
}

// Backward computes the SGD-with-momentum-and-decay weight update and
// pushes the accumulated upstream delta to the input edge.
//
// For each (in,out):
//  1. g_new = (1-α)·η·δ_out[out]·x[in] + α·G[in][out]
//  2. δ_in[in] += W[in][out]·δ_out[out]   (using the pre-update weight)
//  3. G[in][out] <- g_new
//  4. W[in][out] <- (W[in][out] + g_new) · (1 - η·λ)
//
// Step 2 must read W before step 4 writes it; this implementation
// accumulates δ_in before updating W in the same iteration, preserving that
// order.
func (n *WeightsNode) Backward() error {
	if len(n.inputEdges) != 1 || len(n.outputEdges) != 1 {
		return fmt.Errorf("weights node %s: %w", n.id, ErrInvalidInputCount)
	}

	x := n.inputEdges[0].ForwardValues()
	deltaOut := n.outputEdges[0].BackwardDeltas()
	deltaIn := make([]float64, n.in)

	for i := 0; i < n.in; i++ {
		wRow := n.w[i]
		gRow := n.g[i]

		for j := 0; j < n.out; j++ {
			gNew := (1-n.alpha)*n.eta*deltaOut[j]*x[i] + n.alpha*gRow[j]

			deltaIn[i] += wRow[j] * deltaOut[j]

			gRow[j] = gNew
			wRow[j] = (wRow[j] + gNew) * (1 - n.eta*n.lambda)
		}
	}

	return n.inputEdges[0].PushBackward(deltaIn)
}

var _ Node = (*WeightsNode)(nil)
