package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/stagedup/pkg/domain"
)

// StageReport renders a snapshot as a Markdown document: a header with the
// stage metadata and one table row per prim.
func StageReport(snap *domain.StageSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Stage `%s`\n\n", snap.ID)
	fmt.Fprintf(&sb, "Up axis **%s**, %d prims.\n\n", snap.UpAxis, len(snap.Prims))
	if len(snap.Prims) == 0 {
		return sb.String()
	}

	sb.WriteString("| Path | Type | Translate | References |\n")
	sb.WriteString("|------|------|-----------|------------|\n")
	for _, p := range snap.Prims {
		typ := string(p.Type)
		if typ == "" {
			typ = "-"
		}
		if p.Instanceable {
			typ += " (instance)"
		}
		translate := "-"
		if v, ok := p.Translate(); ok {
			translate = formatVec(v)
		}
		refs := "-"
		if len(p.References) > 0 {
			parts := make([]string, len(p.References))
			for i, r := range p.References {
				parts[i] = "`" + string(r) + "`"
			}
			refs = strings.Join(parts, ", ")
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n", p.Path, typ, translate, refs)
	}
	return sb.String()
}

// RunReport renders the outcome of one trigger as Markdown.
func RunReport(res domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", res.Status)

	if len(res.Attempts) > 0 {
		sb.WriteString("| Source | Target | Strategy | Outcome | Offset |\n")
		sb.WriteString("|--------|--------|----------|---------|--------|\n")
		for _, a := range res.Attempts {
			outcome := string(a.Creation)
			if a.Transform != domain.TransformNone {
				outcome += ", " + string(a.Transform)
			}
			fmt.Fprintf(&sb, "| `%s` | `%s` | %s | %s | %s |\n", a.Source, a.Target, a.Strategy, outcome, formatVec(a.Offset))
		}
		sb.WriteString("\n")
	}

	if len(res.Skipped) > 0 {
		sb.WriteString("Skipped:\n\n")
		for _, p := range res.Skipped {
			fmt.Fprintf(&sb, "- `%s`\n", p)
		}
	}
	return sb.String()
}

func formatVec(v domain.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
