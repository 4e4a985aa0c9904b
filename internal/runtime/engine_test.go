package runtime_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/internal/runtime"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

func boxStage(t *testing.T) *memory.Stage {
	t.Helper()
	translate := domain.Vec3{X: 10, Y: 20, Z: 30}
	stage, err := memory.FromSnapshot(&domain.StageSnapshot{
		ID:     "scene",
		UpAxis: domain.AxisZ,
		Prims: []domain.PrimSpec{
			{Path: "/World", Type: domain.PrimTypeXform},
			{
				Path: "/World/Box",
				Type: domain.PrimTypeMesh,
				XformOps: []domain.XformOpSpec{
					{Type: domain.OpTranslate, Value: &translate},
				},
			},
			{Path: "/World/Box/Lid", Type: domain.PrimTypeMesh},
			{Path: "/World/Sphere", Type: domain.PrimTypeMesh},
		},
	})
	require.NoError(t, err)
	return stage
}

func translateOf(t *testing.T, stage ports.Stage, path domain.Path) domain.Vec3 {
	t.Helper()
	prim, ok := stage.PrimAt(path)
	require.True(t, ok, "prim %s should exist", path)
	for _, op := range prim.OrderedXformOps() {
		if op.OpType() == domain.OpTranslate {
			v, ok := op.Get()
			require.True(t, ok)
			return v
		}
	}
	t.Fatalf("prim %s has no translate op", path)
	return domain.Vec3{}
}

func TestEngine_DeepCopyAlongX(t *testing.T) {
	stage := boxStage(t)
	engine := runtime.NewEngine()

	res := engine.Run(context.Background(), stage, []domain.Path{"/World/Box"}, domain.Request{
		Count:    3,
		Distance: 100,
		Axis:     domain.AxisX,
	})

	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, "Done: Duplicated 3", res.Status)
	assert.Equal(t, []domain.Path{"/World/Box_x01", "/World/Box_x02", "/World/Box_x03"}, res.Targets())

	for i, target := range res.Targets() {
		want := domain.Vec3{X: 10 + float64(i+1)*100, Y: 20, Z: 30}
		assert.Equal(t, want, translateOf(t, stage, target))

		lid, ok := stage.PrimAt(target.Child("Lid"))
		assert.True(t, ok, "deep copy should bring children along")
		assert.Equal(t, domain.PrimTypeMesh, lid.TypeName())
	}

	assert.Equal(t, domain.Vec3{X: 10, Y: 20, Z: 30}, translateOf(t, stage, "/World/Box"), "source untouched")
}

func TestEngine_InstancedReferences(t *testing.T) {
	stage := boxStage(t)
	engine := runtime.NewEngine()

	res := engine.Run(context.Background(), stage, []domain.Path{"/World/Box"}, domain.Request{
		Count:        3,
		Distance:     100,
		Axis:         domain.AxisX,
		UseInstances: true,
	})

	assert.Equal(t, 3, res.Created)
	for i, target := range res.Targets() {
		prim, ok := stage.PrimAt(target)
		require.True(t, ok)
		assert.Equal(t, domain.PrimTypeXform, prim.TypeName())
		assert.True(t, prim.IsInstanceable())
		assert.Equal(t, []domain.Path{"/World/Box"}, prim.References())
		assert.Equal(t, "instance", res.Attempts[i].Strategy)

		want := domain.Vec3{X: 10 + float64(i+1)*100, Y: 20, Z: 30}
		assert.Equal(t, want, translateOf(t, stage, target))

		_, hasChild := stage.PrimAt(target.Child("Lid"))
		assert.False(t, hasChild, "instances hold no children of their own")
	}
}

func TestEngine_CollisionSuffix(t *testing.T) {
	stage := boxStage(t)
	_, err := stage.DefinePrim("/World/Box_x01", domain.PrimTypeXform)
	require.NoError(t, err)

	res := runtime.NewEngine().Run(context.Background(), stage, []domain.Path{"/World/Box"}, domain.Request{
		Count: 1, Distance: 100, Axis: domain.AxisX,
	})

	assert.Equal(t, []domain.Path{"/World/Box_x01_1"}, res.Targets())
}

func TestEngine_SecondRunNeverOverwrites(t *testing.T) {
	stage := boxStage(t)
	engine := runtime.NewEngine()
	req := domain.Request{Count: 2, Distance: 50, Axis: domain.AxisY}

	first := engine.Run(context.Background(), stage, []domain.Path{"/World/Box"}, req)
	second := engine.Run(context.Background(), stage, []domain.Path{"/World/Box"}, req)

	assert.Equal(t, []domain.Path{"/World/Box_y01", "/World/Box_y02"}, first.Targets())
	assert.Equal(t, []domain.Path{"/World/Box_y01_1", "/World/Box_y02_1"}, second.Targets())
	assert.Equal(t, domain.Vec3{X: 10, Y: 70, Z: 30}, translateOf(t, stage, "/World/Box_y01"))
}

func TestEngine_MultipleSourcesAndSkips(t *testing.T) {
	stage := boxStage(t)

	res := runtime.NewEngine().Run(context.Background(), stage,
		[]domain.Path{"/World/Box", "/World/Missing", "/World/Sphere"},
		domain.Request{Count: 2, Distance: 1, Axis: domain.AxisZ},
	)

	assert.Equal(t, 4, res.Created)
	assert.Equal(t, "Done: Duplicated 4", res.Status)
	assert.Equal(t, []domain.Path{"/World/Missing"}, res.Skipped)
	assert.Equal(t, domain.Vec3{Z: 2}, translateOf(t, stage, "/World/Sphere_z02"), "unauthored translate starts at zero")
}

func TestEngine_AllSourcesInvalid(t *testing.T) {
	res := runtime.NewEngine().Run(context.Background(), boxStage(t),
		[]domain.Path{"/Nope"}, domain.Request{Count: 3, Axis: domain.AxisZ})

	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, "Done: Duplicated 0", res.Status)
}

func TestEngine_Rejections(t *testing.T) {
	engine := runtime.NewEngine()
	ctx := context.Background()
	sel := []domain.Path{"/World/Box"}

	res := engine.Run(ctx, boxStage(t), sel, domain.Request{Count: 0, Axis: domain.AxisZ})
	assert.ErrorIs(t, res.Err, domain.ErrCountNotPositive)
	assert.Equal(t, domain.StatusCountNotPositive, res.Status)

	res = engine.Run(ctx, nil, sel, domain.Request{Count: 1, Axis: domain.AxisZ})
	assert.ErrorIs(t, res.Err, domain.ErrNoStage)
	assert.Equal(t, domain.StatusNoStage, res.Status)

	res = engine.Run(ctx, boxStage(t), nil, domain.Request{Count: 1, Axis: domain.AxisZ})
	assert.ErrorIs(t, res.Err, domain.ErrEmptySelection)
	assert.Equal(t, domain.StatusNoSelection, res.Status)
}

func TestEngine_Hooks(t *testing.T) {
	var starts, attempts, finishes int
	var finished *domain.RunEvent
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) { starts++ },
		OnAttempt:  func(_ context.Context, e *domain.AttemptEvent) { attempts++ },
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			finishes++
			finished = e
		},
	}))

	engine.Run(context.Background(), boxStage(t), []domain.Path{"/World/Box"}, domain.Request{Count: 3, Axis: domain.AxisZ})

	assert.Equal(t, 1, starts)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, finishes)
	require.NotNil(t, finished)
	assert.Equal(t, 3, finished.Created)
	assert.Equal(t, "scene", finished.StageID)
}

// failingStage lets individual stage calls be scripted to fail.
type failingStage struct {
	mock.Mock
	*memory.Stage
}

func (s *failingStage) CopyPrim(from, to domain.Path) error {
	args := s.Called(from, to)
	if err := args.Error(0); err != nil {
		return err
	}
	return s.Stage.CopyPrim(from, to)
}

func TestEngine_CreationFailureNotCounted(t *testing.T) {
	stage := &failingStage{Stage: boxStage(t)}
	stage.On("CopyPrim", domain.Path("/World/Box"), domain.Path("/World/Box_z01")).Return(nil)
	stage.On("CopyPrim", domain.Path("/World/Box"), domain.Path("/World/Box_z02")).Return(errors.New("layer is locked"))
	stage.On("CopyPrim", domain.Path("/World/Box"), domain.Path("/World/Box_z03")).Return(nil)

	res := runtime.NewEngine().Run(context.Background(), stage, []domain.Path{"/World/Box"},
		domain.Request{Count: 3, Distance: 1, Axis: domain.AxisZ})

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, "Done: Duplicated 2", res.Status)
	require.Len(t, res.Attempts, 3)
	assert.Equal(t, domain.CreationFailed, res.Attempts[1].Creation)
	assert.Equal(t, domain.TransformNone, res.Attempts[1].Transform)
	assert.Contains(t, res.Attempts[1].Error, "layer is locked")
	stage.AssertExpectations(t)
}

// panickyStage panics instead of copying.
type panickyStage struct {
	*memory.Stage
}

func (s panickyStage) CopyPrim(from, to domain.Path) error {
	panic("backend exploded")
}

func TestEngine_PanicIsContained(t *testing.T) {
	res := runtime.NewEngine().Run(context.Background(), panickyStage{boxStage(t)},
		[]domain.Path{"/World/Box"}, domain.Request{Count: 2, Axis: domain.AxisZ})

	assert.Equal(t, 0, res.Created)
	require.Len(t, res.Attempts, 2)
	assert.Contains(t, res.Attempts[0].Error, "backend exploded")
}

// ghostStage reports success on copy but never creates anything.
type ghostStage struct {
	*memory.Stage
}

func (ghostStage) CopyPrim(from, to domain.Path) error { return nil }

func TestEngine_RefetchFailureNotCounted(t *testing.T) {
	res := runtime.NewEngine().Run(context.Background(), ghostStage{boxStage(t)},
		[]domain.Path{"/World/Box"}, domain.Request{Count: 1, Axis: domain.AxisZ})

	assert.Equal(t, 0, res.Created)
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, domain.CreationFailed, res.Attempts[0].Creation)
}

// lockedOpsStage hands out prims whose translate op cannot be written.
type lockedOpsStage struct {
	*memory.Stage
}

func (s lockedOpsStage) PrimAt(path domain.Path) (ports.Prim, bool) {
	prim, ok := s.Stage.PrimAt(path)
	if !ok || path == "/World/Box" {
		return prim, ok
	}
	return lockedPrim{prim}, true
}

type lockedPrim struct {
	ports.Prim
}

func (lockedPrim) OrderedXformOps() []ports.XformOp { return nil }

func (lockedPrim) AddTranslateOp() (ports.XformOp, error) {
	return nil, errors.New("transform stack is read-only")
}

func TestEngine_TransformFailureStillCounted(t *testing.T) {
	stage := lockedOpsStage{boxStage(t)}

	res := runtime.NewEngine().Run(context.Background(), stage, []domain.Path{"/World/Box"},
		domain.Request{Count: 2, Distance: 5, Axis: domain.AxisX})

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, "Done: Duplicated 2", res.Status)
	for _, a := range res.Attempts {
		assert.Equal(t, domain.Created, a.Creation)
		assert.Equal(t, domain.TransformFailed, a.Transform)
		assert.Contains(t, a.Error, "read-only")
	}
}

func TestEngine_HugeDistanceKeepsOtherAxes(t *testing.T) {
	stage := boxStage(t)

	res := runtime.NewEngine().Run(context.Background(), stage, []domain.Path{"/World/Box"},
		domain.Request{Count: 2, Distance: 1e308, Axis: domain.AxisX})

	require.Equal(t, 2, res.Created)
	second := res.Attempts[1]
	assert.Equal(t, domain.TransformApplied, second.Transform)
	assert.True(t, math.IsInf(second.Offset.X, 1))
	assert.Equal(t, 20.0, second.Offset.Y)
	assert.Equal(t, 30.0, second.Offset.Z)

	stored := translateOf(t, stage, "/World/Box_x02")
	assert.Equal(t, 20.0, stored.Y)
	assert.Equal(t, 30.0, stored.Z)
}

// lookupPanicStage panics on PrimAt for the paths panicOn selects.
type lookupPanicStage struct {
	*memory.Stage
	panicOn func(domain.Path) bool
}

func (s lookupPanicStage) PrimAt(path domain.Path) (ports.Prim, bool) {
	if s.panicOn(path) {
		panic("lookup failed for " + string(path))
	}
	return s.Stage.PrimAt(path)
}

func TestEngine_LookupPanicsAreContained(t *testing.T) {
	ctx := context.Background()
	req := domain.Request{Count: 2, Distance: 1, Axis: domain.AxisZ}

	t.Run("NameProbe", func(t *testing.T) {
		stage := lookupPanicStage{Stage: boxStage(t), panicOn: func(p domain.Path) bool {
			return p == "/World/Box_z01"
		}}

		res := runtime.NewEngine().Run(ctx, stage, []domain.Path{"/World/Box", "/World/Sphere"}, req)

		assert.Equal(t, 3, res.Created)
		require.Len(t, res.Attempts, 4)
		assert.Equal(t, domain.Path("/World/Box_z01"), res.Attempts[0].Target)
		assert.Equal(t, domain.CreationFailed, res.Attempts[0].Creation)
		assert.Contains(t, res.Attempts[0].Error, "lookup failed")
		assert.Equal(t, domain.Created, res.Attempts[1].Creation)
	})

	t.Run("Refetch", func(t *testing.T) {
		base := boxStage(t)
		stage := lookupPanicStage{Stage: base, panicOn: func(p domain.Path) bool {
			if p == "/World" || p == "/World/Box" {
				return false
			}
			_, exists := base.PrimAt(p)
			return exists
		}}

		res := runtime.NewEngine().Run(ctx, stage, []domain.Path{"/World/Box"}, req)

		assert.Equal(t, 0, res.Created)
		assert.Equal(t, "Done: Duplicated 0", res.Status)
		require.Len(t, res.Attempts, 2)
		for _, a := range res.Attempts {
			assert.Equal(t, domain.CreationFailed, a.Creation)
			assert.Contains(t, a.Error, "stage panicked")
		}
	})

	t.Run("Source", func(t *testing.T) {
		stage := lookupPanicStage{Stage: boxStage(t), panicOn: func(p domain.Path) bool {
			return p == "/World/Sphere"
		}}

		res := runtime.NewEngine().Run(ctx, stage, []domain.Path{"/World/Sphere", "/World/Box"},
			domain.Request{Count: 1, Axis: domain.AxisZ})

		assert.Equal(t, []domain.Path{"/World/Sphere"}, res.Skipped)
		assert.Equal(t, 1, res.Created)
	})
}

func TestEngine_TypedNilStage(t *testing.T) {
	var stage *memory.Stage

	res := runtime.NewEngine().Run(context.Background(), stage, []domain.Path{"/World/Box"},
		domain.Request{Count: 1, Axis: domain.AxisZ})

	assert.ErrorIs(t, res.Err, domain.ErrNoStage)
	assert.Equal(t, "No stage is open", res.Status)
}
