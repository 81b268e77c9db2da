package dedupe

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/classlog/classlog-backend/internal/model"
)

// IndexState records what the name-index installation step did.
type IndexState string

const (
	// IndexExisted means the case-insensitive unique index was already in place.
	IndexExisted IndexState = "existed"
	// IndexCreated means the index was created fresh.
	IndexCreated IndexState = "created"
	// IndexRecreated means a prior case-sensitive index was dropped first.
	IndexRecreated IndexState = "recreated"
	// IndexSkipped means a dry run never reached the index step.
	IndexSkipped IndexState = "skipped"
)

// ClassroomStore is the classroom-collection boundary the engine depends on.
type ClassroomStore interface {
	List(ctx context.Context) ([]model.Classroom, error)
	// UpdateMerged writes the post-merge name, subject list and legacy
	// student count onto the canonical classroom.
	UpdateMerged(ctx context.Context, id primitive.ObjectID, name string, subjects []model.Subject, totalStudents int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// EnsureCaseInsensitiveNameIndex installs (or confirms) the unique
	// collated index on the name field, dropping a stale case-sensitive
	// predecessor if one exists.
	EnsureCaseInsensitiveNameIndex(ctx context.Context) (IndexState, error)
}

// AttendanceStore is the attendance-collection boundary.
type AttendanceStore interface {
	CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error)
	ListByClassroom(ctx context.Context, classroomID primitive.ObjectID) ([]model.Attendance, error)
	// FindByClassroomDate returns (nil, nil) when no document exists for
	// that classroom and date.
	FindByClassroomDate(ctx context.Context, classroomID primitive.ObjectID, date string) (*model.Attendance, error)
	// Retarget rewrites one document's classroom reference in place.
	Retarget(ctx context.Context, id, toClassroomID primitive.ObjectID) error
	ReplacePeriods(ctx context.Context, id primitive.ObjectID, periods []model.Period, updatedAt time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReportStore is the report-collection boundary.
type ReportStore interface {
	CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error)
	// RetargetClassroom bulk-rewrites the classroom reference on every
	// matching document and returns how many were updated.
	RetargetClassroom(ctx context.Context, from, to primitive.ObjectID) (int64, error)
}

// AnnouncementStore is the announcement-collection boundary.
type AnnouncementStore interface {
	CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error)
	RetargetClassroom(ctx context.Context, from, to primitive.ObjectID) (int64, error)
}
