// Command netdemo is a thin, non-authoritative usage demonstration: it
// builds a small XOR network, trains it for a fixed number of epochs while
// logging progress, reports error metrics, then, if -snapshot is given,
// writes the trained network's JSON snapshot to that path. It mirrors cmd/zerfoo-train's role as an
// orchestration wrapper around library packages, not a supported CLI
// surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zerfoo/cortex/activation"
	"github.com/zerfoo/cortex/cell"
	"github.com/zerfoo/cortex/graph"
	"github.com/zerfoo/cortex/metrics"
	"github.com/zerfoo/cortex/network"
	"github.com/zerfoo/cortex/pattern"
	"github.com/zerfoo/cortex/persist"
	"github.com/zerfoo/cortex/training"
)

func main() {
	epochs := flag.Int("epochs", 2000, "number of training epochs")
	eta := flag.Float64("eta", 0.5, "learning rate")
	snapshotPath := flag.String("snapshot", "", "optional path to write the trained network's JSON snapshot")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if err := run(*epochs, *eta, *snapshotPath, logger); err != nil {
		logger.Fatalf("netdemo: %v", err)
	}
}

func run(epochs int, eta float64, snapshotPath string, logger *log.Logger) error {
	net, err := buildXORNetwork(eta)
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}

	source := xorSource()

	tr := training.NewTrainer(net, source, training.TrainerConfig{
		Epochs: epochs,
		Logger: logger,
	})

	if err := tr.Execute(); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	logger.Printf("final task state: %s", tr.State())

	m := metrics.New("xor", []int{1}, metrics.ToleranceMatcher{Tolerance: 0.1})

	source.Reset()

	for source.HasNext() {
		p, err := source.Next()
		if err != nil {
			return fmt.Errorf("read evaluation pattern: %w", err)
		}

		if err := net.Forward(p.Inputs); err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		if err := m.Compute(p.ExpectedOutputs, net.OutputValues()); err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}
	}

	logger.Printf("matches=%d/%d errorAvg=%.4f errorStd=%.4f", m.Matches(), m.Calls(), m.ErrorAvg(), m.ErrorStd())

	if snapshotPath == "" {
		return nil
	}

	data, err := persist.Marshal(net)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", snapshotPath, err)
	}

	logger.Printf("snapshot written to %s", snapshotPath)

	return nil
}

// buildXORNetwork builds a 2-input, one-hidden-layer-of-4, one-output
// network: a biased TANH hidden cell chained into a biased Sigmoid output
// cell, no recurrence.
func buildXORNetwork(eta float64) (*network.Network, error) {
	hp := cell.Hyperparameters{Eta: eta}

	hidden, err := cell.RNN(2, 4, activation.TANH, hp, cell.WithBias())
	if err != nil {
		return nil, err
	}

	output, err := cell.RNN(4, 1, activation.Sigmoid, hp, cell.WithBias())
	if err != nil {
		return nil, err
	}

	var outputWeights *graph.WeightsNode

	for _, n := range output.Nodes() {
		if w, ok := n.(*graph.WeightsNode); ok {
			outputWeights = w
		}
	}

	if outputWeights == nil {
		return nil, fmt.Errorf("output cell has no weights node")
	}

	outputWeights.AttachInput(hidden.OutputEdges()[0])

	net := network.New()
	net.AddCell(hidden)
	net.AddCell(output)

	return net, nil
}

func xorSource() *pattern.SliceSource {
	return pattern.NewSliceSource([]pattern.Pattern{
		{Inputs: [][]float64{{0, 0}}, ExpectedOutputs: [][]float64{{0}}},
		{Inputs: [][]float64{{0, 1}}, ExpectedOutputs: [][]float64{{1}}},
		{Inputs: [][]float64{{1, 0}}, ExpectedOutputs: [][]float64{{1}}},
		{Inputs: [][]float64{{1, 1}}, ExpectedOutputs: [][]float64{{0}}},
	}).WithShuffle(1, 2)
}
