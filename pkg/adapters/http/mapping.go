package http

import (
	"fmt"

	"github.com/aretw0/stagedup/pkg/domain"
)

// mapStageToDomain converts a PUT body into a snapshot stored under id.
// A missing up_axis keeps the Z-up default.
func mapStageToDomain(id string, body Stage) (*domain.StageSnapshot, error) {
	snap := domain.NewSnapshot(id)
	if body.UpAxis != nil {
		axis, err := domain.ParseAxis(string(*body.UpAxis))
		if err != nil {
			return nil, fmt.Errorf("invalid up_axis: %w", err)
		}
		snap.UpAxis = axis
	}
	if body.Prims == nil {
		return snap, nil
	}

	for _, p := range *body.Prims {
		spec := domain.PrimSpec{
			Path:         domain.Path(p.Path),
			Type:         domain.PrimType(deref(p.Type)),
			Instanceable: deref(p.Instanceable),
		}
		if p.References != nil {
			for _, ref := range *p.References {
				spec.References = append(spec.References, domain.Path(ref))
			}
		}
		if p.XformOps != nil {
			for _, op := range *p.XformOps {
				opSpec := domain.XformOpSpec{Name: op.Name, Type: domain.OpType(op.Type)}
				if op.Value != nil {
					v := domain.Vec3{X: deref(op.Value.X), Y: deref(op.Value.Y), Z: deref(op.Value.Z)}
					opSpec.Value = &v
				}
				spec.XformOps = append(spec.XformOps, opSpec)
			}
		}
		snap.Prims = append(snap.Prims, spec)
	}
	return snap, nil
}

// duplicateParams passes the loosely typed request fields on for coercion.
// Absent fields are left out so their defaults apply.
func duplicateParams(body DuplicateRequest) map[string]any {
	raw := make(map[string]any)
	for key, v := range map[string]*any{
		"count":    body.Count,
		"distance": body.Distance,
		"axis":     body.Axis,
	} {
		if v != nil && *v != nil {
			raw[key] = *v
		}
	}
	if body.UseInstances != nil {
		raw["use_instances"] = *body.UseInstances
	}
	return raw
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
