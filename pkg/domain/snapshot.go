package domain

import (
	"sort"
)

// XformOpSpec is the serialised form of one transform operation.
// A nil Value means the op exists but has never been authored.
type XformOpSpec struct {
	Name  string `json:"name" yaml:"name"`
	Type  OpType `json:"type" yaml:"type"`
	Value *Vec3  `json:"value,omitempty" yaml:"value,omitempty"`
}

// PrimSpec is the serialised form of one prim.
type PrimSpec struct {
	Path         Path          `json:"path" yaml:"path"`
	Type         PrimType      `json:"type,omitempty" yaml:"type,omitempty"`
	Instanceable bool          `json:"instanceable,omitempty" yaml:"instanceable,omitempty"`
	References   []Path        `json:"references,omitempty" yaml:"references,omitempty"`
	XformOps     []XformOpSpec `json:"xform_ops,omitempty" yaml:"xform_ops,omitempty"`
}

// StageSnapshot is a serialisable copy of a whole stage.
// Prims are listed parents first.
type StageSnapshot struct {
	ID     string     `json:"id" yaml:"id"`
	UpAxis Axis       `json:"up_axis" yaml:"up_axis"`
	Prims  []PrimSpec `json:"prims" yaml:"prims"`

	// Sealed carries an opaque encrypted copy of the stage. When set, Prims is empty.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// NewSnapshot creates an empty, Z-up snapshot.
func NewSnapshot(id string) *StageSnapshot {
	return &StageSnapshot{
		ID:     id,
		UpAxis: AxisZ,
		Prims:  []PrimSpec{},
	}
}

// Find returns the spec at path, if present.
func (s *StageSnapshot) Find(path Path) (PrimSpec, bool) {
	for _, p := range s.Prims {
		if p.Path == path {
			return p, true
		}
	}
	return PrimSpec{}, false
}

// Paths returns the prim paths in stored order.
func (s *StageSnapshot) Paths() []Path {
	paths := make([]Path, 0, len(s.Prims))
	for _, p := range s.Prims {
		paths = append(paths, p.Path)
	}
	return paths
}

// Normalize orders prims so that every parent precedes its children.
// Siblings keep their relative order.
func (s *StageSnapshot) Normalize() {
	sort.SliceStable(s.Prims, func(i, j int) bool {
		return s.Prims[i].Path.Depth() < s.Prims[j].Path.Depth()
	})
}

// Clone returns a deep copy.
func (s *StageSnapshot) Clone() *StageSnapshot {
	if s == nil {
		return nil
	}
	out := &StageSnapshot{
		ID:     s.ID,
		UpAxis: s.UpAxis,
		Prims:  make([]PrimSpec, len(s.Prims)),
		Sealed: s.Sealed,
	}
	for i, p := range s.Prims {
		out.Prims[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (p PrimSpec) Clone() PrimSpec {
	out := p
	if p.References != nil {
		out.References = append([]Path(nil), p.References...)
	}
	if p.XformOps != nil {
		out.XformOps = make([]XformOpSpec, len(p.XformOps))
		for i, op := range p.XformOps {
			out.XformOps[i] = op
			if op.Value != nil {
				v := *op.Value
				out.XformOps[i].Value = &v
			}
		}
	}
	return out
}

// Translate returns the authored translate value of the prim, if any.
func (p PrimSpec) Translate() (Vec3, bool) {
	for _, op := range p.XformOps {
		if op.Type == OpTranslate && op.Value != nil {
			return *op.Value, true
		}
	}
	return Vec3{}, false
}
