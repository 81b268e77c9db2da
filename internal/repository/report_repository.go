package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportRepository handles report data access.
type ReportRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *mongo.Database, opTimeout time.Duration) *ReportRepository {
	return &ReportRepository{coll: db.Collection(ReportsCollection), opTimeout: opTimeout}
}

// CountByClassroom counts reports referencing a classroom.
func (r *ReportRepository) CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"classroomId": classroomID})
}

// RetargetClassroom bulk-rewrites the classroom reference on every report
// pointing at from, returning the number of documents updated.
func (r *ReportRepository) RetargetClassroom(ctx context.Context, from, to primitive.ObjectID) (int64, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"classroomId": from},
		bson.M{"$set": bson.M{"classroomId": to}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
