package graph

import "errors"

// ErrInvalidInputCount is returned when a node is given the wrong number of edges.
var ErrInvalidInputCount = errors.New("graph: invalid number of edges")

// ErrSizeMismatch is returned when a pushed vector's length does not match an edge's size.
var ErrSizeMismatch = errors.New("graph: vector length does not match edge size")

// ErrZeroSize is returned when an edge is constructed with a non-positive size.
var ErrZeroSize = errors.New("graph: edge size must be positive")

// ErrEmptyName is returned when a cell is constructed with an empty name.
var ErrEmptyName = errors.New("graph: name cannot be empty")
