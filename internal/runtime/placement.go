package runtime

import (
	"fmt"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// creationStrategy creates one duplicate of source at target.
type creationStrategy interface {
	Name() string
	Create(stage ports.Stage, source ports.Prim, target domain.Path) error
}

// deepCopy duplicates the whole subtree with the stage's native copy.
// The result is independent and has its own editable transform stack.
type deepCopy struct{}

func (deepCopy) Name() string { return "copy" }

func (deepCopy) Create(stage ports.Stage, source ports.Prim, target domain.Path) error {
	if err := stage.CopyPrim(source.Path(), target); err != nil {
		return fmt.Errorf("copy %s to %s: %w", source.Path(), target, err)
	}
	return nil
}

// instancedReference defines an Xform that references the source and is marked
// instanceable, so the backend may share the source's resources.
type instancedReference struct{}

func (instancedReference) Name() string { return "instance" }

func (instancedReference) Create(stage ports.Stage, source ports.Prim, target domain.Path) error {
	prim, err := stage.DefinePrim(target, domain.PrimTypeXform)
	if err != nil {
		return fmt.Errorf("define %s: %w", target, err)
	}
	if err := prim.AddInternalReference(source.Path()); err != nil {
		return fmt.Errorf("reference %s from %s: %w", source.Path(), target, err)
	}
	if err := prim.SetInstanceable(true); err != nil {
		return fmt.Errorf("mark %s instanceable: %w", target, err)
	}
	return nil
}

// Placer creates duplicates and offsets them.
type Placer struct {
	copy     creationStrategy
	instance creationStrategy
}

// NewPlacer creates a placer with the deep-copy and instanced-reference strategies.
func NewPlacer() *Placer {
	return &Placer{
		copy:     deepCopy{},
		instance: instancedReference{},
	}
}

func (p *Placer) strategy(useInstances bool) creationStrategy {
	if useInstances {
		return p.instance
	}
	return p.copy
}

// Place runs one attempt: create the duplicate at target, re-fetch it, then move it by
// index*distance along the request axis. A creation failure ends the attempt
// uncounted. A transform failure is recorded, but the attempt still counts
// because the duplicate exists.
func (p *Placer) Place(stage ports.Stage, source ports.Prim, target domain.Path, req domain.Request, index int) domain.Attempt {
	strategy := p.strategy(req.UseInstances)
	attempt := domain.Attempt{
		Source:   source.Path(),
		Target:   target,
		Index:    index,
		Strategy: strategy.Name(),
	}

	var dup ports.Prim
	err := guard(func() error {
		if err := strategy.Create(stage, source, target); err != nil {
			return err
		}
		var ok bool
		dup, ok = stage.PrimAt(target)
		if !ok || dup == nil || !dup.IsValid() {
			return fmt.Errorf("%w: %s after creation", domain.ErrPrimNotFound, target)
		}
		return nil
	})
	if err != nil {
		attempt.Creation = domain.CreationFailed
		attempt.Error = err.Error()
		return attempt
	}
	attempt.Creation = domain.Created

	var offset domain.Vec3
	err = guard(func() error {
		var err error
		offset, err = applyOffset(dup, req.Axis, req.Offset(index))
		return err
	})
	if err != nil {
		attempt.Transform = domain.TransformFailed
		attempt.Error = err.Error()
		return attempt
	}
	attempt.Transform = domain.TransformApplied
	attempt.Offset = offset
	return attempt
}

// guard turns a panic raised by a stage implementation into an error, so one bad
// step never escapes the per-copy boundary.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return fn()
}
