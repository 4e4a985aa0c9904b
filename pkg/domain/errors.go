package domain

import "errors"

// Boundary rejections. Each one maps to a status string (see StatusFor).
var (
	// ErrInvalidInput is returned when count or distance cannot be decoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCountNotPositive is returned when the requested count is zero or negative.
	ErrCountNotPositive = errors.New("count must be > 0")

	// ErrNoStage is returned when the host has no open stage.
	ErrNoStage = errors.New("no stage is open")

	// ErrEmptySelection is returned when nothing is selected.
	ErrEmptySelection = errors.New("empty selection")
)

// Stage errors.
var (
	// ErrInvalidPath is returned for malformed prim paths.
	ErrInvalidPath = errors.New("invalid prim path")

	// ErrPrimNotFound is returned when a path does not resolve to a valid prim.
	ErrPrimNotFound = errors.New("prim not found")

	// ErrPrimExists is returned when creating a prim on an occupied path.
	ErrPrimExists = errors.New("prim already exists")

	// ErrOpExists is returned when adding an xform op that the prim already has.
	ErrOpExists = errors.New("xform op already exists")
)

// ErrStageNotFound is returned when a stage ID cannot be found in a store.
var ErrStageNotFound = errors.New("stage not found")

// ErrInvalidStageID is returned for stage IDs that cannot be used as store keys.
var ErrInvalidStageID = errors.New("invalid stage id")
