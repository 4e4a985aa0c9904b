package domain

import (
	"fmt"
	"regexp"
)

var stageIDPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateStageID checks that id is safe to use as a file name or store key.
func ValidateStageID(id string) error {
	if len(id) > 128 || !stageIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidStageID, id)
	}
	return nil
}
