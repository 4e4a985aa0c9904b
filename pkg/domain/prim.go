package domain

// PrimType is the schema type name of a prim.
type PrimType string

const (
	PrimTypeNone  PrimType = ""
	PrimTypeXform PrimType = "Xform"
	PrimTypeMesh  PrimType = "Mesh"
	PrimTypeScope PrimType = "Scope"
)

// IsDuplicable reports whether prims of this type are the expected sources
// of a duplicate (Xform or Mesh). Other types are still duplicated.
func (t PrimType) IsDuplicable() bool {
	return t == PrimTypeXform || t == PrimTypeMesh
}

// OpType identifies the kind of a transform operation.
type OpType string

const (
	OpTranslate OpType = "translate"
	OpRotateXYZ OpType = "rotateXYZ"
	OpScale     OpType = "scale"
)

// OpName returns the attribute name an op of type t gets by default.
func (t OpType) OpName() string {
	return "xformOp:" + string(t)
}
