package memory

import (
	"fmt"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Prim is a handle to a prim of a memory Stage. It holds no data itself:
// every call looks the prim up again, so a removed prim reports IsValid() == false.
type Prim struct {
	stage *Stage
	path  domain.Path
}

var _ ports.Prim = (*Prim)(nil)

// Path returns the prim path.
func (p *Prim) Path() domain.Path { return p.path }

// Name returns the last path segment.
func (p *Prim) Name() string { return p.path.Name() }

// TypeName returns the prim schema type.
func (p *Prim) TypeName() domain.PrimType {
	p.stage.mu.RLock()
	defer p.stage.mu.RUnlock()

	if data, ok := p.stage.prims[p.path]; ok {
		return data.typeName
	}
	return domain.PrimTypeNone
}

// IsValid reports whether the prim still exists.
func (p *Prim) IsValid() bool {
	if p == nil || p.stage == nil {
		return false
	}
	p.stage.mu.RLock()
	defer p.stage.mu.RUnlock()

	_, ok := p.stage.prims[p.path]
	return ok
}

// AddInternalReference appends a reference to another prim of the same stage.
func (p *Prim) AddInternalReference(target domain.Path) error {
	p.stage.mu.Lock()
	defer p.stage.mu.Unlock()

	data, err := p.dataLocked()
	if err != nil {
		return err
	}
	if _, ok := p.stage.prims[target]; !ok || target.IsRoot() {
		return fmt.Errorf("%w: reference target %s", domain.ErrPrimNotFound, target)
	}
	if target.HasPrefix(p.path) {
		return fmt.Errorf("%w: %s cannot reference itself or a descendant", domain.ErrInvalidPath, p.path)
	}
	data.refs = append(data.refs, target)
	return nil
}

// References returns the internal references in authoring order.
func (p *Prim) References() []domain.Path {
	p.stage.mu.RLock()
	defer p.stage.mu.RUnlock()

	data, ok := p.stage.prims[p.path]
	if !ok {
		return nil
	}
	return append([]domain.Path(nil), data.refs...)
}

// SetInstanceable sets the instanceable flag.
func (p *Prim) SetInstanceable(instanceable bool) error {
	p.stage.mu.Lock()
	defer p.stage.mu.Unlock()

	data, err := p.dataLocked()
	if err != nil {
		return err
	}
	data.instanceable = instanceable
	return nil
}

// IsInstanceable reports the instanceable flag.
func (p *Prim) IsInstanceable() bool {
	p.stage.mu.RLock()
	defer p.stage.mu.RUnlock()

	data, ok := p.stage.prims[p.path]
	return ok && data.instanceable
}

// OrderedXformOps returns the composed op stack: ops brought in by references
// first, then the prim's own ops that the references do not already define.
func (p *Prim) OrderedXformOps() []ports.XformOp {
	p.stage.mu.RLock()
	defer p.stage.mu.RUnlock()

	var out []ports.XformOp
	seen := make(map[string]bool)
	p.stage.collectOpsLocked(p.path, map[domain.Path]bool{}, func(name string, typ domain.OpType) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, &XformOp{stage: p.stage, path: p.path, name: name, typ: typ})
	})
	return out
}

// AddTranslateOp appends an unauthored translate op.
func (p *Prim) AddTranslateOp() (ports.XformOp, error) {
	p.stage.mu.Lock()
	defer p.stage.mu.Unlock()

	data, err := p.dataLocked()
	if err != nil {
		return nil, err
	}
	for _, op := range data.ops {
		if op.typ == domain.OpTranslate {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrOpExists, op.name, p.path)
		}
	}
	name := domain.OpTranslate.OpName()
	data.ops = append(data.ops, opData{name: name, typ: domain.OpTranslate})
	return &XformOp{stage: p.stage, path: p.path, name: name, typ: domain.OpTranslate}, nil
}

func (p *Prim) dataLocked() (*primData, error) {
	data, ok := p.stage.prims[p.path]
	if !ok || p.path.IsRoot() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPrimNotFound, p.path)
	}
	return data, nil
}

// collectOpsLocked walks references depth-first, then local ops.
func (s *Stage) collectOpsLocked(path domain.Path, visiting map[domain.Path]bool, emit func(string, domain.OpType)) {
	data, ok := s.prims[path]
	if !ok || visiting[path] {
		return
	}
	visiting[path] = true
	defer delete(visiting, path)

	for _, ref := range data.refs {
		s.collectOpsLocked(ref, visiting, emit)
	}
	for _, op := range data.ops {
		emit(op.name, op.typ)
	}
}

// resolveValueLocked returns the strongest authored value for the op name:
// the prim's own opinion wins over referenced ones.
func (s *Stage) resolveValueLocked(path domain.Path, name string, visiting map[domain.Path]bool) (domain.Vec3, bool) {
	data, ok := s.prims[path]
	if !ok || visiting[path] {
		return domain.Vec3{}, false
	}
	visiting[path] = true
	defer delete(visiting, path)

	if i, ok := data.localOp(name); ok && data.ops[i].value != nil {
		return *data.ops[i].value, true
	}
	for _, ref := range data.refs {
		if v, ok := s.resolveValueLocked(ref, name, visiting); ok {
			return v, true
		}
	}
	return domain.Vec3{}, false
}

// XformOp is a handle to one op on a memory Stage prim.
type XformOp struct {
	stage *Stage
	path  domain.Path
	name  string
	typ   domain.OpType
}

var _ ports.XformOp = (*XformOp)(nil)

// Name returns the op attribute name, e.g. "xformOp:translate".
func (o *XformOp) Name() string { return o.name }

// OpType returns the op kind.
func (o *XformOp) OpType() domain.OpType { return o.typ }

// Get returns the composed value of the op.
func (o *XformOp) Get() (domain.Vec3, bool) {
	o.stage.mu.RLock()
	defer o.stage.mu.RUnlock()

	return o.stage.resolveValueLocked(o.path, o.name, map[domain.Path]bool{})
}

// Set authors value as a local opinion of the owning prim.
func (o *XformOp) Set(value domain.Vec3) error {
	o.stage.mu.Lock()
	defer o.stage.mu.Unlock()

	data, ok := o.stage.prims[o.path]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPrimNotFound, o.path)
	}
	v := value
	if i, ok := data.localOp(o.name); ok {
		data.ops[i].value = &v
		return nil
	}
	data.ops = append(data.ops, opData{name: o.name, typ: o.typ, value: &v})
	return nil
}
