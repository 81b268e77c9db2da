package dedupe

import (
	"sort"

	"github.com/classlog/classlog-backend/internal/model"
)

// candidate is a group member annotated with its reference counts.
type candidate struct {
	model.Classroom
	Refs RefCounts
}

// selectCanonical picks the group member to keep. Descending priority:
// higher total reference count (keeps the most-used record so the least
// data has to move), then more subjects defined, then earlier creation
// time. The object id is the final tie-break so repeated runs converge on
// the same keeper regardless of input order.
func selectCanonical(members []candidate) (candidate, []candidate) {
	sorted := make([]candidate, len(members))
	copy(sorted, members)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Refs.Total != b.Refs.Total {
			return a.Refs.Total > b.Refs.Total
		}
		if len(a.Subjects) != len(b.Subjects) {
			return len(a.Subjects) > len(b.Subjects)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.Hex() < b.ID.Hex()
	})

	return sorted[0], sorted[1:]
}
