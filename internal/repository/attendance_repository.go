package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classlog/classlog-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *mongo.Database, opTimeout time.Duration) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(AttendancesCollection), opTimeout: opTimeout}
}

// CountByClassroom counts attendance documents referencing a classroom.
func (r *AttendanceRepository) CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"classroomId": classroomID})
}

// ListByClassroom retrieves all attendance documents for a classroom.
func (r *AttendanceRepository) ListByClassroom(ctx context.Context, classroomID primitive.ObjectID) ([]model.Attendance, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"classroomId": classroomID})
	if err != nil {
		return nil, err
	}
	var docs []model.Attendance
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByClassroomDate returns the attendance document for one classroom and
// calendar date, or (nil, nil) when none exists.
func (r *AttendanceRepository) FindByClassroomDate(ctx context.Context, classroomID primitive.ObjectID, date string) (*model.Attendance, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	var doc model.Attendance
	err := r.coll.FindOne(ctx, bson.M{"classroomId": classroomID, "date": date}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Retarget rewrites one document's classroom reference in place, keeping
// its identity and timestamps.
func (r *AttendanceRepository) Retarget(ctx context.Context, id, toClassroomID primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"classroomId": toClassroomID}})
	return err
}

// ReplacePeriods overwrites a document's period list and update timestamp
// with the conflict winner's data.
func (r *AttendanceRepository) ReplacePeriods(ctx context.Context, id primitive.ObjectID, periods []model.Period, updatedAt time.Time) error {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"periods": periods, "updatedAt": updatedAt}})
	return err
}

// Delete removes an attendance document by its ID.
func (r *AttendanceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
