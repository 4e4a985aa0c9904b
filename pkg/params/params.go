// Package params turns loosely typed host input into a domain.Request.
//
// Hosts hand over whatever their widgets, flags or JSON bodies produce. Numbers
// may arrive as strings, floats as ints, booleans as "true". Decoding is weak so
// those all work; only values that cannot be read as numbers are rejected.
package params

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/stagedup/pkg/domain"
)

// Input keys.
const (
	KeyCount        = "count"
	KeyDistance     = "distance"
	KeyAxis         = "axis"
	KeyUseInstances = "use_instances"
)

// Defaults used when a key is absent.
const (
	DefaultCount    = 10
	DefaultDistance = 300.0
)

// Defaults returns the request a host shows before the user touches anything.
func Defaults() domain.Request {
	return domain.Request{
		Count:    DefaultCount,
		Distance: DefaultDistance,
		Axis:     domain.DefaultAxis,
	}
}

// Decode builds a request from raw. The returned request is not validated:
// a count of zero is reported later as its own status.
//
// Negative counts are clamped to zero. An unknown axis falls back to Z and an
// unreadable instance flag to false. Unreadable count or distance values
// return domain.ErrInvalidInput.
func Decode(raw map[string]any) (domain.Request, error) {
	req := Defaults()

	if v, ok := raw[KeyCount]; ok {
		count := req.Count
		if err := mapstructure.WeakDecode(v, &count); err != nil {
			return domain.Request{}, fmt.Errorf("%w: count %v", domain.ErrInvalidInput, v)
		}
		req.Count = max(count, 0)
	}

	if v, ok := raw[KeyDistance]; ok {
		distance := req.Distance
		if err := mapstructure.WeakDecode(v, &distance); err != nil {
			return domain.Request{}, fmt.Errorf("%w: distance %v", domain.ErrInvalidInput, v)
		}
		if math.IsNaN(distance) || math.IsInf(distance, 0) {
			return domain.Request{}, fmt.Errorf("%w: distance must be finite", domain.ErrInvalidInput)
		}
		req.Distance = distance
	}

	if v, ok := raw[KeyAxis]; ok {
		req.Axis = decodeAxis(v)
	}

	if v, ok := raw[KeyUseInstances]; ok {
		var flag bool
		if err := mapstructure.WeakDecode(v, &flag); err == nil {
			req.UseInstances = flag
		}
	}

	return req, nil
}

func decodeAxis(v any) domain.Axis {
	switch a := v.(type) {
	case domain.Axis:
		if a.Valid() {
			return a
		}
		return domain.DefaultAxis
	case string:
		axis, _ := domain.ParseAxis(a)
		return axis
	}

	var n int
	if err := mapstructure.WeakDecode(v, &n); err != nil {
		return domain.DefaultAxis
	}
	if axis := domain.Axis(n); axis.Valid() {
		return axis
	}
	return domain.DefaultAxis
}
