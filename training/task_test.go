package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStartsReady(t *testing.T) {
	task := NewTask()
	assert.Equal(t, StateReady, task.State())
	assert.False(t, task.CancelRequested())
}

func TestTaskResetReturnsToReadyAndClearsCancellation(t *testing.T) {
	task := NewTask()
	task.transition(StateFailed)
	task.RequestCancel()

	task.Reset()

	assert.Equal(t, StateReady, task.State())
	assert.False(t, task.CancelRequested())
}

func TestTaskRequestCancelIsObservable(t *testing.T) {
	task := NewTask()
	task.RequestCancel()

	assert.True(t, task.CancelRequested())
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateReady:     "READY",
		StateRunning:   "RUNNING",
		StateSucceeded: "SUCCEEDED",
		StateCancelled: "CANCELLED",
		StateFailed:    "FAILED",
	}

	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}
