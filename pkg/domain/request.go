package domain

import (
	"fmt"
	"math"
)

// Request is the validated input of one duplicate trigger.
// It is built once at the host boundary and never changes afterwards.
type Request struct {
	// Count is the number of copies made per selected prim.
	Count int `json:"count"`
	// Distance is the step between consecutive copies; zero and negative are fine.
	Distance float64 `json:"distance"`
	// Axis is the translation component that receives the offset.
	Axis Axis `json:"axis"`
	// UseInstances makes instanceable references instead of deep copies.
	UseInstances bool `json:"use_instances"`
}

// Validate checks the request before any stage mutation.
func (r Request) Validate() error {
	if r.Count <= 0 {
		return ErrCountNotPositive
	}
	if math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) {
		return fmt.Errorf("%w: distance must be finite", ErrInvalidInput)
	}
	if !r.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidInput, int(r.Axis))
	}
	return nil
}

// Offset returns the displacement applied to the copy with the given 1-based index.
func (r Request) Offset(index int) float64 {
	return float64(index) * r.Distance
}
