package ports

import (
	"github.com/aretw0/stagedup/pkg/domain"
)

// Stage is the scene graph handle supplied by the host.
// The duplicator only reads and mutates the graph through this interface.
type Stage interface {
	// PrimAt returns the prim at path. The boolean is false when nothing valid lives there.
	PrimAt(path domain.Path) (Prim, bool)

	// CopyPrim deep-copies the subtree rooted at from onto to.
	// It fails if from is missing or to is occupied.
	CopyPrim(from, to domain.Path) error

	// DefinePrim creates a new prim of the given type at path.
	DefinePrim(path domain.Path, typeName domain.PrimType) (Prim, error)
}

// Opener is implemented by stage adapters that can be held as a typed nil.
// IsOpen reports false for such a value, which is then treated as no stage.
type Opener interface {
	IsOpen() bool
}

// IsOpen reports whether stage can be used: it is non-nil and, when it
// implements Opener, reports itself open.
func IsOpen(stage Stage) bool {
	if stage == nil {
		return false
	}
	if o, ok := stage.(Opener); ok {
		return o.IsOpen()
	}
	return true
}

// Traversable is implemented by stages that can enumerate their prims.
type Traversable interface {
	// Traverse returns every prim path, parents first. The pseudo-root is not included.
	Traverse() []domain.Path
}

// Prim is a node of the stage.
type Prim interface {
	Path() domain.Path
	Name() string
	TypeName() domain.PrimType

	// IsValid reports whether the prim still exists on its stage.
	IsValid() bool

	// AddInternalReference makes the prim reference another prim of the same stage.
	AddInternalReference(target domain.Path) error
	References() []domain.Path

	SetInstanceable(instanceable bool) error
	IsInstanceable() bool

	// OrderedXformOps returns the composed transform operation stack.
	OrderedXformOps() []XformOp

	// AddTranslateOp appends a translate op with no authored value.
	AddTranslateOp() (XformOp, error)
}

// XformOp is one entry of a prim's transform operation stack.
type XformOp interface {
	Name() string
	OpType() domain.OpType

	// Get returns the current value. The boolean is false if nothing was authored.
	Get() (domain.Vec3, bool)

	// Set authors a value on the owning prim.
	Set(value domain.Vec3) error
}

// SnapshotStage is a stage that can be converted to plain data.
type SnapshotStage interface {
	Stage
	Snapshot() *domain.StageSnapshot
}
