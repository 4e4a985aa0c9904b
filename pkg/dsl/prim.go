package dsl

import "github.com/aretw0/stagedup/pkg/domain"

// PrimBuilder provides a fluent API for configuring a prim.
type PrimBuilder struct {
	spec    domain.PrimSpec
	builder *Builder
}

// Type sets the prim schema type.
func (p *PrimBuilder) Type(t domain.PrimType) *PrimBuilder {
	p.spec.Type = t
	return p
}

// Translate authors the translate op, adding it if needed.
func (p *PrimBuilder) Translate(x, y, z float64) *PrimBuilder {
	v := domain.Vec3{X: x, Y: y, Z: z}
	for i, op := range p.spec.XformOps {
		if op.Type == domain.OpTranslate {
			p.spec.XformOps[i].Value = &v
			return p
		}
	}
	p.spec.XformOps = append(p.spec.XformOps, domain.XformOpSpec{
		Name:  domain.OpTranslate.OpName(),
		Type:  domain.OpTranslate,
		Value: &v,
	})
	return p
}

// Op appends an arbitrary op, e.g. a rotate or scale that sits before the translate.
func (p *PrimBuilder) Op(t domain.OpType, value domain.Vec3) *PrimBuilder {
	v := value
	p.spec.XformOps = append(p.spec.XformOps, domain.XformOpSpec{
		Name:  t.OpName(),
		Type:  t,
		Value: &v,
	})
	return p
}

// References adds internal references to other prims of the scene.
func (p *PrimBuilder) References(paths ...string) *PrimBuilder {
	for _, raw := range paths {
		p.spec.References = append(p.spec.References, domain.Path(raw))
	}
	return p
}

// Instanceable marks the prim instanceable.
func (p *PrimBuilder) Instanceable() *PrimBuilder {
	p.spec.Instanceable = true
	return p
}

// Add continues with another prim of the same scene.
func (p *PrimBuilder) Add(path string) *PrimBuilder {
	return p.builder.Add(path)
}

// Build returns the underlying domain.PrimSpec.
func (p *PrimBuilder) Build() domain.PrimSpec {
	return p.spec.Clone()
}
