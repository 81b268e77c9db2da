package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom represents one class section. Its name is meant to be unique
// ignoring case; the dedupe engine repairs datasets where that does not hold.
type Classroom struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	PinHash  string             `json:"-" bson:"pinHash"`
	Subjects []Subject          `json:"subjects" bson:"subjects"`
	// RollNumbers is the current shape; TotalStudents is the legacy shape
	// kept by older documents that only stored a head count.
	RollNumbers   []string  `json:"rollNumbers,omitempty" bson:"rollNumbers,omitempty"`
	TotalStudents int       `json:"totalStudents,omitempty" bson:"totalStudents,omitempty"`
	BlockedRolls  []string  `json:"blockedRolls,omitempty" bson:"blockedRolls,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// NormalizeName is the single source of truth for the case-insensitive
// classroom name key. Discovery, verification and the unique index must all
// agree on it: trim plus case-fold here, accent/width insensitivity via the
// strength-2 collation on the index itself.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
