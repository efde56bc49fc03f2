// Package persist encodes and restores a structural snapshot of a network:
// every cell, node, and edge, with enough detail to reconstruct an
// identical graph and re-run initialization. It deliberately persists to a
// plain JSON document rather than a binary or protobuf schema, since the
// format is a textual structural dump, not an interchange wire format.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/zerfoo/cortex/activation"
	"github.com/zerfoo/cortex/graph"
	"github.com/zerfoo/cortex/network"
)

// Kind tags identify a node's concrete type in a snapshot, mirroring the
// node's OpType().
const (
	KindWeights    = "Weights"
	KindBias       = "Bias"
	KindActivation = "Activation"
)

// Document is the root of a persisted structural snapshot.
type Document struct {
	Cells []CellDoc `json:"cells"`
	Edges []EdgeDoc `json:"edges"`
}

// CellDoc is a persisted cell: its identity, name, and nodes.
type CellDoc struct {
	UUID  string    `json:"uuid"`
	Name  string    `json:"name"`
	Nodes []NodeDoc `json:"nodes"`
}

// NodeDoc is a persisted node. Name carries the node-kind tag (Weights,
// Bias, Activation); the remaining fields are populated according to kind.
type NodeDoc struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`

	InputSize  int `json:"input-size,omitempty"`
	OutputSize int `json:"output-size,omitempty"`

	Eta     float64     `json:"eta,omitempty"`
	Alpha   float64     `json:"alpha,omitempty"`
	Lambda  float64     `json:"lambda,omitempty"`
	Weights [][]float64 `json:"weights,omitempty"`

	OutputValues []float64 `json:"output-values,omitempty"`

	Activation string `json:"activation,omitempty"`
}

// EdgeDoc is a persisted edge: its identity, fixed size, and the UUIDs of
// its input (writer) and output (reader) nodes, each absent when the edge
// is a network input or network output respectively.
type EdgeDoc struct {
	UUID       string `json:"uuid"`
	Size       int    `json:"size"`
	InputNode  string `json:"input-node,omitempty"`
	OutputNode string `json:"output-node,omitempty"`
}

// Marshal encodes net's current structure (cells, nodes, and edges) as a
// Document, then as JSON. It captures topology and trainable state only;
// edge queues (in-flight forward/backward values) are not part of the
// snapshot.
func Marshal(net *network.Network) ([]byte, error) {
	doc := Document{}

	edgeSeen := make(map[graph.ID]bool)

	for _, c := range net.Cells() {
		cellDoc := CellDoc{UUID: c.ID().String(), Name: c.Name()}

		for _, n := range c.Nodes() {
			nodeDoc, err := encodeNode(n)
			if err != nil {
				return nil, fmt.Errorf("persist: marshal cell %s: %w", c.Name(), err)
			}

			cellDoc.Nodes = append(cellDoc.Nodes, nodeDoc)

			for _, e := range append(append([]*graph.Edge{}, n.InputEdges()...), n.OutputEdges()...) {
				if edgeSeen[e.ID()] {
					continue
				}

				edgeSeen[e.ID()] = true
				doc.Edges = append(doc.Edges, encodeEdge(e))
			}
		}

		doc.Cells = append(doc.Cells, cellDoc)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("persist: marshal: %w", err)
	}

	return data, nil
}

func encodeNode(n graph.Node) (NodeDoc, error) {
	doc := NodeDoc{UUID: n.ID().String(), Name: n.OpType()}

	switch concrete := n.(type) {
	case *graph.WeightsNode:
		doc.InputSize = concrete.InputSize()
		doc.OutputSize = concrete.OutputSize()
		doc.Eta = concrete.Eta()
		doc.Alpha = concrete.Alpha()
		doc.Lambda = concrete.Lambda()
		doc.Weights = concrete.Weights()
	case *graph.BiasNode:
		doc.OutputValues = concrete.Values()
	case *graph.ActivationNode:
		doc.Activation = concrete.Function().Name()
		doc.OutputSize = concrete.Size()
	default:
		return NodeDoc{}, fmt.Errorf("persist: unsupported node kind %q", n.OpType())
	}

	return doc, nil
}

func encodeEdge(e *graph.Edge) EdgeDoc {
	doc := EdgeDoc{UUID: e.ID().String(), Size: e.Size()}

	if in := e.InputNode(); in != nil {
		doc.InputNode = in.ID().String()
	}

	if out := e.OutputNode(); out != nil {
		doc.OutputNode = out.ID().String()
	}

	return doc
}

// Restore decodes a JSON snapshot as produced by Marshal and reconstructs
// the network from it (see RestoreDocument), reconnecting nodes and edges
// by UUID, and re-runs Initialize before returning.
func Restore(data []byte) (*network.Network, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: restore: %w", err)
	}

	return RestoreDocument(doc)
}

// RestoreDocument reconstructs a network from an already-decoded Document.
func RestoreDocument(doc Document) (*network.Network, error) {
	net := network.New()
	nodesByID := make(map[string]graph.Node)

	for _, cellDoc := range doc.Cells {
		id, err := graph.ParseID(cellDoc.UUID)
		if err != nil {
			return nil, fmt.Errorf("persist: restore cell %s: %w", cellDoc.Name, err)
		}

		c, err := graph.NewCellWithID(id, cellDoc.Name)
		if err != nil {
			return nil, fmt.Errorf("persist: restore cell %s: %w", cellDoc.Name, err)
		}

		for _, nodeDoc := range cellDoc.Nodes {
			n, err := decodeNode(nodeDoc)
			if err != nil {
				return nil, fmt.Errorf("persist: restore cell %s: %w", cellDoc.Name, err)
			}

			c.AddNode(n)
			nodesByID[nodeDoc.UUID] = n
		}

		net.AddCell(c)
	}

	for _, edgeDoc := range doc.Edges {
		if err := restoreEdge(edgeDoc, nodesByID); err != nil {
			return nil, fmt.Errorf("persist: restore edge %s: %w", edgeDoc.UUID, err)
		}
	}

	if err := net.Initialize(); err != nil {
		return nil, fmt.Errorf("persist: restore: %w", err)
	}

	return net, nil
}

func decodeNode(doc NodeDoc) (graph.Node, error) {
	id, err := graph.ParseID(doc.UUID)
	if err != nil {
		return nil, err
	}

	switch doc.Name {
	case KindWeights:
		return graph.NewWeightsNodeWithID(id, doc.InputSize, doc.OutputSize, graph.WeightsOptions{
			Eta:     doc.Eta,
			Alpha:   doc.Alpha,
			Lambda:  doc.Lambda,
			Weights: doc.Weights,
		})
	case KindBias:
		return graph.NewBiasNodeFromValuesWithID(id, doc.OutputValues)
	case KindActivation:
		fn, err := activation.ByName(doc.Activation)
		if err != nil {
			return nil, err
		}

		return graph.NewActivationNodeWithID(id, doc.OutputSize, fn)
	default:
		return nil, fmt.Errorf("persist: unknown node kind %q", doc.Name)
	}
}

func restoreEdge(doc EdgeDoc, nodesByID map[string]graph.Node) error {
	id, err := graph.ParseID(doc.UUID)
	if err != nil {
		return err
	}

	e, err := graph.NewEdgeWithID(id, doc.Size)
	if err != nil {
		return err
	}

	if doc.InputNode != "" {
		writer, ok := nodesByID[doc.InputNode]
		if !ok {
			return fmt.Errorf("writer node %s not found", doc.InputNode)
		}

		if err := attachAsOutput(writer, e); err != nil {
			return err
		}
	}

	if doc.OutputNode != "" {
		reader, ok := nodesByID[doc.OutputNode]
		if !ok {
			return fmt.Errorf("reader node %s not found", doc.OutputNode)
		}

		if err := attachAsInput(reader, e); err != nil {
			return err
		}
	}

	return nil
}

// attachAsOutput wires e as n's output edge (n writes to it).
func attachAsOutput(n graph.Node, e *graph.Edge) error {
	switch concrete := n.(type) {
	case *graph.WeightsNode:
		concrete.AttachOutput(e)
	case *graph.BiasNode:
		concrete.AddOutput(e)
	case *graph.ActivationNode:
		concrete.AttachOutput(e)
	default:
		return fmt.Errorf("persist: node kind %q cannot write an edge", n.OpType())
	}

	return nil
}

// attachAsInput wires e as n's input edge (n reads from it).
func attachAsInput(n graph.Node, e *graph.Edge) error {
	switch concrete := n.(type) {
	case *graph.WeightsNode:
		concrete.AttachInput(e)
	case *graph.ActivationNode:
		return concrete.AddInput(e)
	default:
		return fmt.Errorf("persist: node kind %q cannot read an edge", n.OpType())
	}

	return nil
}

