// Package network assembles cells into a trainable computation graph: it
// derives the network's input/output edges and forward execution schedule
// purely from wiring, then drives forward, backward, and unfold passes
// across that schedule.
package network

import (
	"fmt"

	"github.com/zerfoo/cortex/graph"
)

// Network owns a set of cells and, once Initialize is called, the derived
// execution schedule over their nodes.
type Network struct {
	cells []*graph.Cell

	initialized bool
	inputEdges  []*graph.Edge
	outputEdges []*graph.Edge
	layers      [][]graph.Node
	edges       []*graph.Edge // master set, for unfold bookkeeping
}

// New creates an empty, uninitialized network.
func New() *Network {
	return &Network{}
}

// AddCell adds a cell to the network. Cells are added individually; external
// wiring between cells (an edge whose input node is in one cell and output
// node in another) is the caller's responsibility, performed before
// Initialize.
func (n *Network) AddCell(c *graph.Cell) {
	n.cells = append(n.cells, c)
}

// Cells returns the network's cells, in addition order.
func (n *Network) Cells() []*graph.Cell {
	out := make([]*graph.Cell, len(n.cells))
	copy(out, n.cells)

	return out
}

// Initialize computes the network's input and output edges and derives the
// forward execution schedule. It must be called once before the first
// Forward or Backward call, and again after any rewiring (e.g. after
// restoring a persisted snapshot).
func (n *Network) Initialize() error {
	allNodes := n.allNodes()

	n.inputEdges = nil
	n.outputEdges = nil

	seenIn := make(map[graph.ID]bool)
	seenOut := make(map[graph.ID]bool)

	for _, node := range allNodes {
		for _, e := range node.InputEdges() {
			if e.IsInput() && !seenIn[e.ID()] {
				seenIn[e.ID()] = true
				n.inputEdges = append(n.inputEdges, e)
			}
		}

		for _, e := range node.OutputEdges() {
			if e.IsOutput() && !seenOut[e.ID()] {
				seenOut[e.ID()] = true
				n.outputEdges = append(n.outputEdges, e)
			}
		}
	}

	n.layers = layerSchedule(n.inputEdges, allNodes)

	edgeSeen := make(map[graph.ID]bool)

	n.edges = nil
	for _, layer := range n.layers {
		for _, node := range layer {
			for _, e := range node.InputEdges() {
				if !edgeSeen[e.ID()] {
					edgeSeen[e.ID()] = true
					n.edges = append(n.edges, e)
				}
			}

			for _, e := range node.OutputEdges() {
				if !edgeSeen[e.ID()] {
					edgeSeen[e.ID()] = true
					n.edges = append(n.edges, e)
				}
			}
		}
	}

	n.initialized = true

	return nil
}

// layerSchedule derives the forward execution order as a list of layers: the
// frontier starts at the network input edges, and each round collects every
// not-yet-visited output node reachable from the current frontier, then
// advances the frontier to those nodes' output edges. A node is visited at
// most once, so a recurrent back-edge whose destination was already visited
// does not re-enqueue it: its contribution arrives via the back-edge's queue
// head on the next forward call.
//
// A node with zero input edges (a BiasNode) is never reachable by following
// edges from the network inputs — nothing pushes a value onto a nonexistent
// input edge to reveal it. Such nodes fire unconditionally on every forward
// pass, so they are seeded directly into the first layer alongside whatever
// the input frontier reaches there.
func layerSchedule(inputEdges []*graph.Edge, allNodes []graph.Node) [][]graph.Node {
	visited := make(map[graph.ID]bool)

	var seeded []graph.Node

	for _, node := range allNodes {
		if len(node.InputEdges()) == 0 {
			seeded = append(seeded, node)
		}
	}

	frontier := make([]*graph.Edge, len(inputEdges))
	copy(frontier, inputEdges)

	var layers [][]graph.Node

	for first := true; len(frontier) > 0 || first; first = false {
		var layer []graph.Node

		layerSeen := make(map[graph.ID]bool)

		if first {
			for _, node := range seeded {
				if visited[node.ID()] || layerSeen[node.ID()] {
					continue
				}

				layerSeen[node.ID()] = true

				layer = append(layer, node)
			}
		}

		for _, e := range frontier {
			node := e.OutputNode()
			if node == nil || visited[node.ID()] || layerSeen[node.ID()] {
				continue
			}

			layerSeen[node.ID()] = true

			layer = append(layer, node)
		}

		if len(layer) == 0 {
			break
		}

		for _, node := range layer {
			visited[node.ID()] = true
		}

		layers = append(layers, layer)

		var nextFrontier []*graph.Edge
		for _, node := range layer {
			nextFrontier = append(nextFrontier, node.OutputEdges()...)
		}

		frontier = nextFrontier
	}

	return layers
}

func (n *Network) allNodes() []graph.Node {
	var out []graph.Node
	for _, c := range n.cells {
		out = append(out, c.Nodes()...)
	}

	return out
}

// InputEdges returns the network's derived input edges, in cell and node
// addition order.
func (n *Network) InputEdges() []*graph.Edge { return n.inputEdges }

// OutputEdges returns the network's derived output edges, in cell and node
// addition order.
func (n *Network) OutputEdges() []*graph.Edge { return n.outputEdges }

// Forward pushes inputs[i] onto input edge i, then runs every node's Forward
// in schedule order, layer by layer. The order of nodes within a layer does
// not affect the result: no node reads another's output produced within the
// same layer.
func (n *Network) Forward(inputs [][]float64) error {
	if !n.initialized {
		return fmt.Errorf("network: forward called before initialize")
	}

	if len(inputs) != len(n.inputEdges) {
		return fmt.Errorf("network: got %d inputs, want %d", len(inputs), len(n.inputEdges))
	}

	for i, v := range inputs {
		if err := n.inputEdges[i].PushForward(v); err != nil {
			return fmt.Errorf("network: input %d: %w", i, err)
		}
	}

	for _, layer := range n.layers {
		for _, node := range layer {
			if err := node.Forward(); err != nil {
				return fmt.Errorf("network: forward node %s (%s): %w", node.ID(), node.OpType(), err)
			}
		}
	}

	return nil
}

// Backward pushes outputDeltas[i] onto output edge i, walks layers in
// reverse calling each node's Backward, then unfolds every edge in the
// master set, advancing the truncated temporal window by one step.
func (n *Network) Backward(outputDeltas [][]float64) error {
	if !n.initialized {
		return fmt.Errorf("network: backward called before initialize")
	}

	if len(outputDeltas) != len(n.outputEdges) {
		return fmt.Errorf("network: got %d output deltas, want %d", len(outputDeltas), len(n.outputEdges))
	}

	for i, d := range outputDeltas {
		if err := n.outputEdges[i].PushBackward(d); err != nil {
			return fmt.Errorf("network: output delta %d: %w", i, err)
		}
	}

	for i := len(n.layers) - 1; i >= 0; i-- {
		for _, node := range n.layers[i] {
			if err := node.Backward(); err != nil {
				return fmt.Errorf("network: backward node %s (%s): %w", node.ID(), node.OpType(), err)
			}
		}
	}

	for _, e := range n.edges {
		e.Unfold()
	}

	return nil
}

// OutputValues returns, for each network output edge, its current forward
// queue head. Called after Forward to read the network's prediction.
func (n *Network) OutputValues() [][]float64 {
	out := make([][]float64, len(n.outputEdges))
	for i, e := range n.outputEdges {
		out[i] = e.ForwardValues()
	}

	return out
}
