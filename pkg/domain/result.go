package domain

import (
	"errors"
	"fmt"
)

// Status strings reported back to the host.
const (
	StatusInvalidInput     = "Invalid input"
	StatusCountNotPositive = "Count must be > 0"
	StatusNoStage          = "No stage is open"
	StatusNoSelection      = "Please select an Xform or Mesh"
)

// StatusDone formats the completion status.
func StatusDone(created int) string {
	return fmt.Sprintf("Done: Duplicated %d", created)
}

// StatusFor maps a boundary rejection to its status string.
func StatusFor(err error) string {
	switch {
	case errors.Is(err, ErrCountNotPositive):
		return StatusCountNotPositive
	case errors.Is(err, ErrNoStage):
		return StatusNoStage
	case errors.Is(err, ErrEmptySelection):
		return StatusNoSelection
	default:
		return StatusInvalidInput
	}
}

// Result is what one trigger hands back to the host.
type Result struct {
	// Created counts duplicates across all selections and indices.
	Created int `json:"created"`
	// Status is the human-readable outcome.
	Status string `json:"status"`
	// Err is set when the trigger was rejected before touching the stage.
	Err error `json:"-"`
	// Attempts lists every per-copy outcome in execution order.
	Attempts []Attempt `json:"attempts,omitempty"`
	// Skipped lists selected sources that did not resolve to a valid prim.
	Skipped []Path `json:"skipped,omitempty"`
}

// Rejected builds the result of a boundary rejection.
func Rejected(err error) Result {
	return Result{
		Status: StatusFor(err),
		Err:    err,
	}
}

// Targets returns the paths of the duplicates that were created.
func (r Result) Targets() []Path {
	out := make([]Path, 0, r.Created)
	for _, a := range r.Attempts {
		if a.Counted() {
			out = append(out, a.Target)
		}
	}
	return out
}
