package dedupe

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCollisionsRemain is returned when the post-merge re-scan still finds
// classrooms whose names collide. It gates index installation: installing
// the unique index over a colliding dataset would either fail or freeze the
// corruption in place, so the run aborts instead.
var ErrCollisionsRemain = errors.New("classroom name collisions remain after merge")

// verifyAndInstall re-scans all classrooms for normalized-name collisions
// and, only if none remain, installs (or confirms) the case-insensitive
// unique index on the name field.
func (e *Engine) verifyAndInstall(ctx context.Context) (IndexState, error) {
	classrooms, err := e.classrooms.List(ctx)
	if err != nil {
		return "", fmt.Errorf("re-scan classrooms: %w", err)
	}

	if remaining := duplicateGroups(classrooms); len(remaining) > 0 {
		names := make([]string, len(remaining))
		for i, g := range remaining {
			names[i] = g.normalizedName
		}
		return "", fmt.Errorf("%w: %s", ErrCollisionsRemain, strings.Join(names, ", "))
	}

	state, err := e.classrooms.EnsureCaseInsensitiveNameIndex(ctx)
	if err != nil {
		return "", fmt.Errorf("install case-insensitive name index: %w", err)
	}
	return state, nil
}
