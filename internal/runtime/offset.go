package runtime

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// translateOp returns the first translate op of the composed stack, adding one if absent.
func translateOp(prim ports.Prim) (ports.XformOp, error) {
	for _, op := range prim.OrderedXformOps() {
		if op.OpType() == domain.OpTranslate {
			return op, nil
		}
	}
	return prim.AddTranslateOp()
}

// applyOffset moves prim by delta along axis and returns the value written.
// An unauthored translate counts as the zero vector.
func applyOffset(prim ports.Prim, axis domain.Axis, delta float64) (domain.Vec3, error) {
	op, err := translateOp(prim)
	if err != nil {
		return domain.Vec3{}, fmt.Errorf("failed to get translate op: %w", err)
	}

	current, ok := op.Get()
	if !ok {
		current = domain.Vec3{}
	}

	next := OffsetAlong(current, axis, delta)
	if err := op.Set(next); err != nil {
		return domain.Vec3{}, fmt.Errorf("failed to set translate: %w", err)
	}
	return next, nil
}

// OffsetAlong adds delta to the component of v selected by axis.
// The other two components are returned untouched, even when delta is infinite.
func OffsetAlong(v domain.Vec3, axis domain.Axis, delta float64) domain.Vec3 {
	moved := r3.Add(toR3(v), along(axis, delta))
	return domain.Vec3{X: moved.X, Y: moved.Y, Z: moved.Z}
}

// along builds the displacement directly; scaling a unit vector would turn
// its zero components into NaN for an infinite delta.
func along(axis domain.Axis, delta float64) r3.Vec {
	switch axis {
	case domain.AxisX:
		return r3.Vec{X: delta}
	case domain.AxisY:
		return r3.Vec{Y: delta}
	default:
		return r3.Vec{Z: delta}
	}
}

func toR3(v domain.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
