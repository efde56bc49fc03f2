package training

import "errors"

// ErrNoNetwork is returned by Execute when the trainer has no network set.
var ErrNoNetwork = errors.New("training: no network configured")

// ErrNoSource is returned by Execute when the trainer has no pattern source set.
var ErrNoSource = errors.New("training: no pattern source configured")

// ErrInvalidEpochs is returned by Execute when Epochs is negative. Zero is a
// valid, if trivial, epoch count.
var ErrInvalidEpochs = errors.New("training: epochs must be non-negative")
