package domain

// CreationOutcome tags the result of creating one duplicate.
type CreationOutcome string

const (
	Created        CreationOutcome = "created"
	CreationFailed CreationOutcome = "creation_failed"
)

// TransformOutcome tags the result of offsetting one duplicate.
type TransformOutcome string

const (
	// TransformNone means the transform step never ran (creation failed).
	TransformNone    TransformOutcome = ""
	TransformApplied TransformOutcome = "transform_applied"
	TransformFailed  TransformOutcome = "transform_failed"
)

// Attempt records one pass through the per-copy state machine:
// PathResolved -> Created|CreationFailed -> TransformApplied|TransformFailed.
type Attempt struct {
	Source    Path             `json:"source"`
	Target    Path             `json:"target"`
	Index     int              `json:"index"`
	Strategy  string           `json:"strategy"`
	Creation  CreationOutcome  `json:"creation"`
	Transform TransformOutcome `json:"transform,omitempty"`
	Offset    Vec3             `json:"offset"`
	Error     string           `json:"error,omitempty"`
}

// Counted reports whether the attempt contributes to the success counter.
// A duplicate whose transform failed is still counted: the prim exists.
func (a Attempt) Counted() bool {
	return a.Creation == Created
}
