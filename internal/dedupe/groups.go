package dedupe

import (
	"sort"

	"github.com/classlog/classlog-backend/internal/model"
)

type group struct {
	normalizedName string
	members        []model.Classroom
}

// duplicateGroups buckets classrooms by model.NormalizeName and keeps the
// buckets with more than one member. Discovery and post-merge verification
// both go through here, so they cannot disagree on what counts as a
// collision. Groups come back sorted by normalized name for a deterministic
// processing order.
func duplicateGroups(classrooms []model.Classroom) []group {
	buckets := make(map[string][]model.Classroom)
	for _, c := range classrooms {
		key := model.NormalizeName(c.Name)
		buckets[key] = append(buckets[key], c)
	}

	var groups []group
	for key, members := range buckets {
		if len(members) > 1 {
			groups = append(groups, group{normalizedName: key, members: members})
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].normalizedName < groups[j].normalizedName
	})
	return groups
}
