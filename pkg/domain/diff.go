package domain

import (
	"reflect"
)

// StageDiff represents the changes between two snapshots of the same stage.
// It is designed to be serialized to JSON for partial updates on the client.
type StageDiff struct {
	// StageID is always present to identify the target.
	StageID string `json:"stage_id"`

	// Added holds prims present only in the new snapshot, in new-snapshot order.
	Added []PrimSpec `json:"added,omitempty"`

	// Removed holds paths present only in the old snapshot.
	Removed []Path `json:"removed,omitempty"`

	// Changed holds prims whose spec differs, in their new form.
	Changed []PrimSpec `json:"changed,omitempty"`
}

// Empty reports whether the diff carries no change.
func (d *StageDiff) Empty() bool {
	return d == nil || (len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0)
}

// DiffSnapshots calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, every prim of newSnap is reported as added (initial load).
// It returns nil when nothing changed.
func DiffSnapshots(oldSnap, newSnap *StageSnapshot) *StageDiff {
	if newSnap == nil {
		return nil
	}

	diff := &StageDiff{StageID: newSnap.ID}

	before := make(map[Path]PrimSpec)
	if oldSnap != nil {
		for _, p := range oldSnap.Prims {
			before[p.Path] = p
		}
	}

	seen := make(map[Path]bool, len(newSnap.Prims))
	for _, p := range newSnap.Prims {
		seen[p.Path] = true
		prev, ok := before[p.Path]
		if !ok {
			diff.Added = append(diff.Added, p)
			continue
		}
		if !reflect.DeepEqual(normalizeSpec(prev), normalizeSpec(p)) {
			diff.Changed = append(diff.Changed, p)
		}
	}

	if oldSnap != nil {
		for _, p := range oldSnap.Prims {
			if !seen[p.Path] {
				diff.Removed = append(diff.Removed, p.Path)
			}
		}
	}

	if diff.Empty() {
		return nil
	}
	return diff
}

// normalizeSpec treats nil and empty slices alike so that a round trip through
// a store does not show up as a change.
func normalizeSpec(p PrimSpec) PrimSpec {
	if len(p.References) == 0 {
		p.References = nil
	}
	if len(p.XformOps) == 0 {
		p.XformOps = nil
	}
	return p
}
