package tests

import (
	"testing"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// StageFactory returns a fresh stage holding /World (Xform) and
// /World/Box (Mesh, translate (1, 2, 3)) with a child /World/Box/Lid.
type StageFactory func(t *testing.T) ports.Stage

// StageContractTest is a reusable test suite that verifies if an adapter complies with ports.Stage.
func StageContractTest(t *testing.T, newStage StageFactory) {
	t.Helper()

	t.Run("PrimAt_Success", func(t *testing.T) {
		stage := newStage(t)
		prim, ok := stage.PrimAt("/World/Box")
		if !ok || !prim.IsValid() {
			t.Fatal("expected /World/Box to be valid")
		}
		if prim.Name() != "Box" {
			t.Errorf("name mismatch: got %q", prim.Name())
		}
		if prim.Path() != "/World/Box" {
			t.Errorf("path mismatch: got %q", prim.Path())
		}
		if prim.TypeName() != domain.PrimTypeMesh {
			t.Errorf("type mismatch: got %q", prim.TypeName())
		}
	})

	t.Run("PrimAt_NotFound", func(t *testing.T) {
		stage := newStage(t)
		if _, ok := stage.PrimAt("/World/Nope"); ok {
			t.Error("expected missing prim to report false")
		}
	})

	t.Run("CopyPrim_DeepCopy", func(t *testing.T) {
		stage := newStage(t)
		if err := stage.CopyPrim("/World/Box", "/World/Box_copy"); err != nil {
			t.Fatalf("copy failed: %v", err)
		}
		dup, ok := stage.PrimAt("/World/Box_copy")
		if !ok {
			t.Fatal("copy not found")
		}
		if dup.TypeName() != domain.PrimTypeMesh {
			t.Errorf("copy lost its type: %q", dup.TypeName())
		}
		if _, ok := stage.PrimAt("/World/Box_copy/Lid"); !ok {
			t.Error("copy must include descendants")
		}

		op := findTranslate(t, dup)
		v, ok := op.Get()
		if !ok || v != (domain.Vec3{X: 1, Y: 2, Z: 3}) {
			t.Fatalf("copy translate mismatch: %v %v", v, ok)
		}
		if err := op.Set(domain.Vec3{X: 99}); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		src, _ := stage.PrimAt("/World/Box")
		sv, _ := findTranslate(t, src).Get()
		if sv != (domain.Vec3{X: 1, Y: 2, Z: 3}) {
			t.Errorf("editing the copy changed the source: %v", sv)
		}
	})

	t.Run("CopyPrim_Rejects", func(t *testing.T) {
		stage := newStage(t)
		if err := stage.CopyPrim("/World/Box", "/World"); err == nil {
			t.Error("expected error copying onto an occupied path")
		}
		if err := stage.CopyPrim("/World/Ghost", "/World/Ghost2"); err == nil {
			t.Error("expected error copying a missing prim")
		}
		if err := stage.CopyPrim("/World/Box", "/Missing/Box"); err == nil {
			t.Error("expected error copying under a missing parent")
		}
	})

	t.Run("DefinePrim_Reference_Instanceable", func(t *testing.T) {
		stage := newStage(t)
		inst, err := stage.DefinePrim("/World/Box_inst", domain.PrimTypeXform)
		if err != nil {
			t.Fatalf("define failed: %v", err)
		}
		if err := inst.AddInternalReference("/World/Box"); err != nil {
			t.Fatalf("reference failed: %v", err)
		}
		if err := inst.SetInstanceable(true); err != nil {
			t.Fatalf("instanceable failed: %v", err)
		}

		fetched, ok := stage.PrimAt("/World/Box_inst")
		if !ok {
			t.Fatal("defined prim not found")
		}
		if !fetched.IsInstanceable() {
			t.Error("expected instanceable")
		}
		refs := fetched.References()
		if len(refs) != 1 || refs[0] != "/World/Box" {
			t.Errorf("unexpected references %v", refs)
		}

		op := findTranslate(t, fetched)
		v, ok := op.Get()
		if !ok || v != (domain.Vec3{X: 1, Y: 2, Z: 3}) {
			t.Errorf("referenced translate not composed: %v %v", v, ok)
		}
		if err := op.Set(domain.Vec3{X: 10, Y: 2, Z: 3}); err != nil {
			t.Fatal(err)
		}
		src, _ := stage.PrimAt("/World/Box")
		if sv, _ := findTranslate(t, src).Get(); sv.X != 1 {
			t.Errorf("local opinion leaked into the referenced prim: %v", sv)
		}

		if _, err := stage.DefinePrim("/World/Box_inst", domain.PrimTypeXform); err == nil {
			t.Error("expected error defining on an occupied path")
		}
	})

	t.Run("AddTranslateOp", func(t *testing.T) {
		stage := newStage(t)
		prim, err := stage.DefinePrim("/World/Empty", domain.PrimTypeXform)
		if err != nil {
			t.Fatal(err)
		}
		if len(prim.OrderedXformOps()) != 0 {
			t.Fatal("fresh prim must have no ops")
		}
		op, err := prim.AddTranslateOp()
		if err != nil {
			t.Fatal(err)
		}
		if op.OpType() != domain.OpTranslate {
			t.Errorf("unexpected op type %q", op.OpType())
		}
		if _, ok := op.Get(); ok {
			t.Error("fresh op must have no authored value")
		}
		if err := op.Set(domain.Vec3{Z: 5}); err != nil {
			t.Fatal(err)
		}
		if v, ok := findTranslate(t, prim).Get(); !ok || v.Z != 5 {
			t.Errorf("value not stored: %v", v)
		}
		if _, err := prim.AddTranslateOp(); err == nil {
			t.Error("expected error adding a second translate op")
		}
	})
}

func findTranslate(t *testing.T, prim ports.Prim) ports.XformOp {
	t.Helper()
	for _, op := range prim.OrderedXformOps() {
		if op.OpType() == domain.OpTranslate {
			return op
		}
	}
	t.Fatalf("no translate op on %s", prim.Path())
	return nil
}
