package training

import (
	"fmt"
	"io"
	"log"

	"github.com/zerfoo/cortex/network"
	"github.com/zerfoo/cortex/pattern"
)

// TrainerConfig configures a Trainer's Execute run.
type TrainerConfig struct {
	// Epochs is the number of full passes over the pattern source. Zero is
	// valid and performs initialization plus terminal progress only.
	Epochs int
	// CancelCheckInterval is how many patterns elapse between cancellation
	// polls within an epoch. Non-positive defaults to 1 (check after every
	// pattern), the finest granularity and the one the concrete scenarios
	// assume.
	CancelCheckInterval int
	// Logger receives one line per epoch and a completion summary, in the
	// style of cmd/zerfoo-train. Nil defaults to a discard logger.
	Logger *log.Logger
}

// Option configures a Trainer beyond TrainerConfig, mirroring the
// WithXxx(...) Option pattern used for cell and layer construction.
type Option func(*Trainer)

// WithProgressListener attaches a ProgressListener to receive lifecycle and
// per-pattern progress notifications during Execute.
func WithProgressListener(l ProgressListener) Option {
	return func(t *Trainer) { t.listener = l }
}

// Trainer drives a Network through TrainerConfig.Epochs epochs over a
// pattern.Source, computing per-output-edge deltas as expected-minus-actual
// and pushing them backward each pattern. Trainer embeds *Task, so it
// implements the task lifecycle directly: callers poll State and may call
// RequestCancel from another goroutine while Execute runs.
type Trainer struct {
	*Task

	net      *network.Network
	source   pattern.Source
	config   TrainerConfig
	listener ProgressListener
	logger   *log.Logger
}

// NewTrainer creates a Trainer bound to net and source, configured by
// config, in the READY state.
func NewTrainer(net *network.Network, source pattern.Source, config TrainerConfig, opts ...Option) *Trainer {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	t := &Trainer{
		Task:     NewTask(),
		net:      net,
		source:   source,
		config:   config,
		listener: NopProgressListener{},
		logger:   logger,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Execute runs the training loop described by this package's doc comment.
// It validates configuration, initializes the network, then for each epoch
// resets the source and drives forward/backward over every pattern,
// polling for cancellation between patterns (every CancelCheckInterval
// patterns) and between epochs. It returns a non-nil error only for
// configuration or programming failures; cancellation is reported through
// Task.State, not an error.
func (t *Trainer) Execute() error {
	if t.net == nil {
		return t.fail(fmt.Errorf("%w", ErrNoNetwork))
	}

	if t.source == nil {
		return t.fail(fmt.Errorf("%w", ErrNoSource))
	}

	if t.config.Epochs < 0 {
		return t.fail(fmt.Errorf("%w: got %d", ErrInvalidEpochs, t.config.Epochs))
	}

	t.transition(StateRunning)
	t.listener.State(StateRunning)
	t.listener.Start()

	if err := t.net.Initialize(); err != nil {
		return t.fail(fmt.Errorf("training: initialize: %w", err))
	}

	interval := t.config.CancelCheckInterval
	if interval <= 0 {
		interval = 1
	}

	updates := 0

epochs:
	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		if t.CancelRequested() {
			t.transition(StateCancelled)
			t.listener.State(StateCancelled)

			break epochs
		}

		t.source.Reset()
		t.listener.Reset(0)

		index := 0

		for t.source.HasNext() {
			p, err := t.source.Next()
			if err != nil {
				return t.fail(fmt.Errorf("training: epoch %d pattern %d: %w", epoch, index, err))
			}

			if err := t.net.Forward(p.Inputs); err != nil {
				return t.fail(fmt.Errorf("training: epoch %d pattern %d: forward: %w", epoch, index, err))
			}

			actual := t.net.OutputValues()

			deltas := make([][]float64, len(actual))
			for i := range actual {
				deltas[i] = make([]float64, len(actual[i]))
				for j := range actual[i] {
					deltas[i][j] = p.ExpectedOutputs[i][j] - actual[i][j]
				}
			}

			if err := t.net.Backward(deltas); err != nil {
				return t.fail(fmt.Errorf("training: epoch %d pattern %d: backward: %w", epoch, index, err))
			}

			updates++
			index++

			t.listener.Progress(0, 1, t.source.Size())
			t.listener.Message(0, fmt.Sprintf("epoch %d pattern %d", epoch, index))

			if updates%interval == 0 && t.CancelRequested() {
				t.transition(StateCancelled)
				t.listener.State(StateCancelled)

				break epochs
			}
		}

		t.logger.Printf("epoch %d/%d complete (%d pattern updates so far)", epoch+1, t.config.Epochs, updates)
	}

	if t.State() == StateRunning {
		t.transition(StateSucceeded)
		t.listener.State(StateSucceeded)
	}

	t.listener.Progress(0, 0, 0)
	t.listener.End()

	t.logger.Printf("training finished: state=%s updates=%d", t.State(), updates)

	return nil
}

func (t *Trainer) fail(err error) error {
	t.transition(StateFailed)
	t.listener.State(StateFailed)
	t.listener.End()

	return err
}
