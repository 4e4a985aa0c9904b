package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stagedup/pkg/domain"
)

// Overlay contains run data to highlight on the graph.
type Overlay struct {
	Sources []domain.Path
	Created []domain.Path
}

// GenerateMermaid produces a Mermaid flowchart of the prim hierarchy.
// It applies semantic styling:
// - Mesh: ((Circle))
// - Scope: [/Parallelogram/]
// - Default: [Rectangle]
// Parent links are solid, references dotted. Instanceable prims are annotated.
func GenerateMermaid(snap *domain.StageSnapshot, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if snap == nil {
		return sb.String()
	}

	for _, prim := range snap.Prims {
		safeID := sanitizeMermaidID(prim.Path)

		opener, closer := "[", "]"
		switch prim.Type {
		case domain.PrimTypeMesh:
			opener, closer = "((", "))"
		case domain.PrimTypeScope:
			opener, closer = "[/", "/]"
		}

		label := prim.Path.Name()
		if prim.Instanceable {
			label += " <br/> instance"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		if parent := prim.Path.Parent(); !parent.IsRoot() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(parent), safeID))
		}
		for _, ref := range prim.References {
			sb.WriteString(fmt.Sprintf("    %s -. ref .-> %s\n", safeID, sanitizeMermaidID(ref)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast regardless of theme.
		sb.WriteString("    classDef source fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef created fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		writeClass(&sb, overlay.Sources, "source")
		writeClass(&sb, overlay.Created, "created")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, paths []domain.Path, class string) {
	seen := make(map[string]bool)
	for _, p := range paths {
		id := sanitizeMermaidID(p)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
	}
}

// sanitizeMermaidID turns /World/Box into World_Box. Prim names are
// identifiers, so the result only needs the separators replaced.
func sanitizeMermaidID(p domain.Path) string {
	s := strings.TrimPrefix(string(p), "/")
	return strings.ReplaceAll(s, "/", "__")
}
