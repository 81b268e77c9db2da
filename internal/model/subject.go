package model

// Subject is one taught subject within a classroom.
type Subject struct {
	Name            string `json:"name" bson:"name"`
	Code            string `json:"code,omitempty" bson:"code,omitempty"`
	ExpectedClasses int    `json:"expectedClasses,omitempty" bson:"expectedClasses,omitempty"`
}

// MergeKey identifies a subject across duplicate classrooms. Two subjects
// with the same normalized name and code are the same subject.
func (s Subject) MergeKey() string {
	return NormalizeName(s.Name) + "\x00" + NormalizeName(s.Code)
}
