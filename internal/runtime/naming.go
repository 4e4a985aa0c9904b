package runtime

import (
	"fmt"

	"github.com/aretw0/stagedup/pkg/domain"
)

// OccupiedFunc reports whether a candidate path is already taken on the stage.
type OccupiedFunc func(domain.Path) bool

// CandidateName builds the name of copy number index: "{base}_{axis}{index:02d}",
// followed by "_{suffix}" when suffix is positive.
func CandidateName(base string, axis domain.Axis, index, suffix int) string {
	name := fmt.Sprintf("%s_%s%02d", base, axis.Letter(), index)
	if suffix > 0 {
		name = fmt.Sprintf("%s_%d", name, suffix)
	}
	return name
}

// ResolveTarget returns a path under parent that is free at the time of the check.
// Collisions are resolved by appending _1, _2, ... with no upper bound; the loop
// ends because a stage holds finitely many prims.
func ResolveTarget(parent domain.Path, base string, axis domain.Axis, index int, occupied OccupiedFunc) domain.Path {
	target := parent.Child(CandidateName(base, axis, index, 0))
	for suffix := 1; occupied(target); suffix++ {
		target = parent.Child(CandidateName(base, axis, index, suffix))
	}
	return target
}
