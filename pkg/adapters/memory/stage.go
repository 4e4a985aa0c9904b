package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Stage implements ports.Stage with an in-memory prim tree.
// Safe for concurrent use. Note that a resolve-then-create sequence performed by
// a caller is still not atomic; callers that share a stage must serialise runs.
type Stage struct {
	mu     sync.RWMutex
	id     string
	upAxis domain.Axis
	prims  map[domain.Path]*primData
}

type primData struct {
	path         domain.Path
	typeName     domain.PrimType
	instanceable bool
	refs         []domain.Path
	ops          []opData
	children     []string
}

type opData struct {
	name  string
	typ   domain.OpType
	value *domain.Vec3
}

var (
	_ ports.SnapshotStage = (*Stage)(nil)
	_ ports.Traversable   = (*Stage)(nil)
	_ ports.Opener        = (*Stage)(nil)
)

// NewStage creates an empty, Z-up stage holding only the pseudo-root.
func NewStage(id string) *Stage {
	return &Stage{
		id:     id,
		upAxis: domain.AxisZ,
		prims: map[domain.Path]*primData{
			domain.RootPath: {path: domain.RootPath},
		},
	}
}

// FromSnapshot materialises a snapshot. Parents are created before children
// regardless of their order in the snapshot.
func FromSnapshot(snap *domain.StageSnapshot) (*Stage, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	ordered := snap.Clone()
	ordered.Normalize()

	s := NewStage(snap.ID)
	if ordered.UpAxis.Valid() {
		s.upAxis = ordered.UpAxis
	}
	for _, spec := range ordered.Prims {
		if err := s.insertSpec(spec); err != nil {
			return nil, fmt.Errorf("failed to load prim %s: %w", spec.Path, err)
		}
	}
	return s, nil
}

func (s *Stage) insertSpec(spec domain.PrimSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.defineLocked(spec.Path, spec.Type)
	if err != nil {
		return err
	}
	data.instanceable = spec.Instanceable
	data.refs = append([]domain.Path(nil), spec.References...)
	for _, op := range spec.XformOps {
		name := op.Name
		if name == "" {
			name = op.Type.OpName()
		}
		od := opData{name: name, typ: op.Type}
		if op.Value != nil {
			v := *op.Value
			od.value = &v
		}
		data.ops = append(data.ops, od)
	}
	return nil
}

// IsOpen reports whether s is a usable stage. A nil *Stage is not.
func (s *Stage) IsOpen() bool {
	return s != nil
}

// ID returns the stage identifier.
func (s *Stage) ID() string {
	return s.id
}

// UpAxis returns the stage up axis.
func (s *Stage) UpAxis() domain.Axis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.upAxis
}

// PrimAt returns a handle to the prim at path. The pseudo-root is always valid.
func (s *Stage) PrimAt(path domain.Path) (ports.Prim, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.prims[path]; !ok {
		return nil, false
	}
	return &Prim{stage: s, path: path}, true
}

// CopyPrim deep-copies the subtree rooted at from onto to.
func (s *Stage) CopyPrim(from, to domain.Path) error {
	if _, err := domain.ParsePath(string(to)); err != nil || to.IsRoot() {
		return fmt.Errorf("%w: copy destination %q", domain.ErrInvalidPath, to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if from.IsRoot() {
		return fmt.Errorf("%w: cannot copy the pseudo-root", domain.ErrInvalidPath)
	}
	if _, ok := s.prims[from]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrPrimNotFound, from)
	}
	if _, ok := s.prims[to]; ok {
		return fmt.Errorf("%w: %s", domain.ErrPrimExists, to)
	}
	parent, ok := s.prims[to.Parent()]
	if !ok {
		return fmt.Errorf("%w: parent of %s", domain.ErrPrimNotFound, to)
	}
	if to.HasPrefix(from) {
		return fmt.Errorf("%w: cannot copy %s into itself", domain.ErrInvalidPath, from)
	}

	for _, p := range s.subtreeLocked(from) {
		src := s.prims[p]
		dst := src.clone()
		dst.path = p.ReplacePrefix(from, to)
		s.prims[dst.path] = dst
	}
	parent.children = append(parent.children, to.Name())
	return nil
}

// DefinePrim creates a new prim of the given type at path.
func (s *Stage) DefinePrim(path domain.Path, typeName domain.PrimType) (ports.Prim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.defineLocked(path, typeName); err != nil {
		return nil, err
	}
	return &Prim{stage: s, path: path}, nil
}

func (s *Stage) defineLocked(path domain.Path, typeName domain.PrimType) (*primData, error) {
	if _, err := domain.ParsePath(string(path)); err != nil || path.IsRoot() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPath, path)
	}
	if _, ok := s.prims[path]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPrimExists, path)
	}
	parent, ok := s.prims[path.Parent()]
	if !ok {
		return nil, fmt.Errorf("%w: parent of %s", domain.ErrPrimNotFound, path)
	}

	data := &primData{path: path, typeName: typeName}
	s.prims[path] = data
	parent.children = append(parent.children, path.Name())
	return data, nil
}

// Traverse returns every prim path in pre-order, excluding the pseudo-root.
func (s *Stage) Traverse() []domain.Path {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.subtreeLocked(domain.RootPath)
	return all[1:]
}

// Snapshot converts the stage to plain data. Only local opinions are stored;
// referenced values are recomposed on load.
func (s *Stage) Snapshot() *domain.StageSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.NewSnapshot(s.id)
	snap.UpAxis = s.upAxis
	for _, p := range s.subtreeLocked(domain.RootPath)[1:] {
		snap.Prims = append(snap.Prims, s.prims[p].spec())
	}
	return snap
}

// Len returns the number of prims, excluding the pseudo-root.
func (s *Stage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prims) - 1
}

func (s *Stage) subtreeLocked(root domain.Path) []domain.Path {
	var out []domain.Path
	var walk func(p domain.Path)
	walk = func(p domain.Path) {
		data, ok := s.prims[p]
		if !ok {
			return
		}
		out = append(out, p)
		for _, name := range data.children {
			walk(p.Child(name))
		}
	}
	walk(root)
	return out
}

func (d *primData) clone() *primData {
	out := &primData{
		path:         d.path,
		typeName:     d.typeName,
		instanceable: d.instanceable,
		refs:         append([]domain.Path(nil), d.refs...),
		children:     append([]string(nil), d.children...),
		ops:          make([]opData, len(d.ops)),
	}
	for i, op := range d.ops {
		out.ops[i] = op
		if op.value != nil {
			v := *op.value
			out.ops[i].value = &v
		}
	}
	return out
}

func (d *primData) spec() domain.PrimSpec {
	spec := domain.PrimSpec{
		Path:         d.path,
		Type:         d.typeName,
		Instanceable: d.instanceable,
	}
	if len(d.refs) > 0 {
		spec.References = append([]domain.Path(nil), d.refs...)
	}
	for _, op := range d.ops {
		opSpec := domain.XformOpSpec{Name: op.name, Type: op.typ}
		if op.value != nil {
			v := *op.value
			opSpec.Value = &v
		}
		spec.XformOps = append(spec.XformOps, opSpec)
	}
	return spec
}

func (d *primData) localOp(name string) (int, bool) {
	for i, op := range d.ops {
		if op.name == name {
			return i, true
		}
	}
	return -1, false
}
