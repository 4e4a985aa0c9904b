package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/stagedup/pkg/domain"
)

// ValidateStage checks a snapshot for problems that would make it fail to
// load or make duplicates misbehave: duplicate or malformed paths, missing
// parents, broken references, reference cycles and repeated translate ops.
func ValidateStage(snap *domain.StageSnapshot) error {
	if snap == nil {
		return fmt.Errorf("stage is nil")
	}

	var errors []string
	prims := make(map[domain.Path]domain.PrimSpec, len(snap.Prims))

	for _, p := range snap.Prims {
		if _, err := domain.ParsePath(string(p.Path)); err != nil || p.Path.IsRoot() {
			errors = append(errors, fmt.Sprintf("Invalid prim path: '%s'", p.Path))
			continue
		}
		if _, dup := prims[p.Path]; dup {
			errors = append(errors, fmt.Sprintf("Prim defined twice: '%s'", p.Path))
			continue
		}
		prims[p.Path] = p
	}

	for _, p := range snap.Prims {
		if parent := p.Path.Parent(); !parent.IsRoot() {
			if _, ok := prims[parent]; !ok {
				errors = append(errors, fmt.Sprintf("Missing parent '%s' of '%s'", parent, p.Path))
			}
		}

		translates := 0
		for _, op := range p.XformOps {
			if op.Type == domain.OpTranslate {
				translates++
			}
		}
		if translates > 1 {
			errors = append(errors, fmt.Sprintf("Prim '%s' has %d translate ops", p.Path, translates))
		}

		for _, ref := range p.References {
			if _, ok := prims[ref]; !ok {
				errors = append(errors, fmt.Sprintf("Broken reference: '%s' -> '%s'", p.Path, ref))
			} else if ref.HasPrefix(p.Path) {
				errors = append(errors, fmt.Sprintf("Prim '%s' references itself or a descendant '%s'", p.Path, ref))
			}
		}
	}

	for _, cycle := range findCycles(prims) {
		errors = append(errors, fmt.Sprintf("Reference cycle: %s", cycle))
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// findCycles runs a colouring DFS over the reference graph and reports each
// cycle once. Prims are visited in path order so the output is stable.
func findCycles(prims map[domain.Path]domain.PrimSpec) []string {
	const (
		white = iota
		grey
		black
	)
	colour := make(map[domain.Path]int, len(prims))
	var cycles []string
	var stack []domain.Path

	var visit func(p domain.Path)
	visit = func(p domain.Path) {
		colour[p] = grey
		stack = append(stack, p)
		for _, ref := range prims[p].References {
			if _, ok := prims[ref]; !ok {
				continue
			}
			switch colour[ref] {
			case white:
				visit(ref)
			case grey:
				cycles = append(cycles, formatCycle(stack, ref))
			}
		}
		stack = stack[:len(stack)-1]
		colour[p] = black
	}

	ordered := make([]domain.Path, 0, len(prims))
	for p := range prims {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	for _, p := range ordered {
		if colour[p] == white {
			visit(p)
		}
	}
	return cycles
}

func formatCycle(stack []domain.Path, start domain.Path) string {
	i := len(stack) - 1
	for i > 0 && stack[i] != start {
		i--
	}
	parts := make([]string, 0, len(stack)-i+1)
	for _, p := range stack[i:] {
		parts = append(parts, string(p))
	}
	parts = append(parts, string(start))
	return strings.Join(parts, " -> ")
}
