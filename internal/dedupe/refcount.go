package dedupe

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// countReferences counts the dependent records of one classroom across the
// three subordinate collections. Read-only; runs once per group member
// before the canonical pick.
func (e *Engine) countReferences(ctx context.Context, id primitive.ObjectID) (RefCounts, error) {
	attendance, err := e.attendances.CountByClassroom(ctx, id)
	if err != nil {
		return RefCounts{}, fmt.Errorf("count attendance for classroom %s: %w", id.Hex(), err)
	}
	reports, err := e.reports.CountByClassroom(ctx, id)
	if err != nil {
		return RefCounts{}, fmt.Errorf("count reports for classroom %s: %w", id.Hex(), err)
	}
	announcements, err := e.announcements.CountByClassroom(ctx, id)
	if err != nil {
		return RefCounts{}, fmt.Errorf("count announcements for classroom %s: %w", id.Hex(), err)
	}

	return RefCounts{
		Attendance:    attendance,
		Reports:       reports,
		Announcements: announcements,
		Total:         attendance + reports + announcements,
	}, nil
}
