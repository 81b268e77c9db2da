package dedupe

import "github.com/classlog/classlog-backend/internal/model"

// mergeSubjects unions the duplicate's subject list into the canonical one.
// Identity is (normalized name, normalized code); a subject already present
// on the canonical side is never duplicated, and canonical entries always
// win over duplicate-side entries with the same key.
func mergeSubjects(canonical, duplicate []model.Subject) []model.Subject {
	seen := make(map[string]struct{}, len(canonical))
	for _, s := range canonical {
		seen[s.MergeKey()] = struct{}{}
	}

	merged := canonical
	for _, s := range duplicate {
		if _, ok := seen[s.MergeKey()]; ok {
			continue
		}
		seen[s.MergeKey()] = struct{}{}
		merged = append(merged, s)
	}
	return merged
}
