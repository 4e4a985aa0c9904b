package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/internal/presentation/tui"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/dsl"
)

func TestStageReport(t *testing.T) {
	b := dsl.New("city")
	b.Xform("/World")
	b.Mesh("/World/Box").Translate(1, 2, 3)
	b.Xform("/World/Box_x01").References("/World/Box").Instanceable()
	snap, err := b.Snapshot()
	require.NoError(t, err)

	md := tui.StageReport(snap)
	assert.Contains(t, md, "# Stage `city`")
	assert.Contains(t, md, "Up axis **Z**, 3 prims.")
	assert.Contains(t, md, "| `/World/Box` | Mesh | (1, 2, 3) | - |")
	assert.Contains(t, md, "| `/World/Box_x01` | Xform (instance) | - | `/World/Box` |")
}

func TestStageReport_Empty(t *testing.T) {
	md := tui.StageReport(domain.NewSnapshot("empty"))
	assert.NotContains(t, md, "| Path |")
}

func TestRunReport(t *testing.T) {
	res := domain.Result{
		Created: 1,
		Status:  domain.StatusDone(1),
		Attempts: []domain.Attempt{{
			Source: "/World/Box", Target: "/World/Box_x01", Strategy: "copy",
			Creation: domain.Created, Transform: domain.TransformApplied,
			Offset: domain.Vec3{X: 100},
		}},
		Skipped: []domain.Path{"/World/Gone"},
	}

	md := tui.RunReport(res)
	assert.True(t, strings.HasPrefix(md, "## Done: Duplicated 1"))
	assert.Contains(t, md, "| `/World/Box` | `/World/Box_x01` | copy | created, transform_applied | (100, 0, 0) |")
	assert.Contains(t, md, "- `/World/Gone`")
}

func TestStatusLine(t *testing.T) {
	// The Ascii profile strips colour, leaving the plain status.
	res := domain.Rejected(domain.ErrEmptySelection)
	assert.Equal(t, domain.StatusNoSelection, tui.StatusLine(res, termenv.Ascii))

	coloured := tui.StatusLine(domain.Result{Created: 2, Status: domain.StatusDone(2)}, termenv.TrueColor)
	assert.Contains(t, coloured, "Done: Duplicated 2")
	assert.NotEqual(t, "Done: Duplicated 2", coloured)
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Greater(t, strings.Count(buf.String(), "\n"), 6)
}
