package dsl

import (
	"fmt"

	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
)

// Builder manages the scene construction.
type Builder struct {
	id     string
	upAxis domain.Axis
	order  []domain.Path
	prims  map[domain.Path]*PrimBuilder
	errs   []error
}

// New creates a new scene builder for a stage with the given id.
func New(id string) *Builder {
	return &Builder{
		id:     id,
		upAxis: domain.AxisZ,
		prims:  make(map[domain.Path]*PrimBuilder),
	}
}

// UpAxis sets the stage up axis.
func (b *Builder) UpAxis(axis domain.Axis) *Builder {
	b.upAxis = axis
	return b
}

// Add creates a new prim in the scene.
// If the prim already exists, it returns the existing builder.
func (b *Builder) Add(path string) *PrimBuilder {
	p, err := domain.ParsePath(path)
	if err != nil {
		b.errs = append(b.errs, err)
		p = domain.Path(path)
	}
	if pb, ok := b.prims[p]; ok {
		return pb
	}
	pb := &PrimBuilder{
		spec:    domain.PrimSpec{Path: p},
		builder: b,
	}
	b.prims[p] = pb
	b.order = append(b.order, p)
	return pb
}

// Xform is shorthand for Add(path).Type(domain.PrimTypeXform).
func (b *Builder) Xform(path string) *PrimBuilder {
	return b.Add(path).Type(domain.PrimTypeXform)
}

// Mesh is shorthand for Add(path).Type(domain.PrimTypeMesh).
func (b *Builder) Mesh(path string) *PrimBuilder {
	return b.Add(path).Type(domain.PrimTypeMesh)
}

// Snapshot returns the scene as plain data, parents before children.
func (b *Builder) Snapshot() (*domain.StageSnapshot, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid scene: %w", b.errs[0])
	}
	snap := domain.NewSnapshot(b.id)
	snap.UpAxis = b.upAxis
	for _, p := range b.order {
		snap.Prims = append(snap.Prims, b.prims[p].spec.Clone())
	}
	snap.Normalize()
	return snap, nil
}

// Build compiles the scene into a memory stage.
func (b *Builder) Build() (*memory.Stage, error) {
	snap, err := b.Snapshot()
	if err != nil {
		return nil, err
	}
	stage, err := memory.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory stage: %w", err)
	}
	return stage, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *memory.Stage {
	stage, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stage
}
