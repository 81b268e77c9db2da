package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(db *mongo.Database, opTimeout time.Duration) *AnnouncementRepository {
	return &AnnouncementRepository{coll: db.Collection(AnnouncementsCollection), opTimeout: opTimeout}
}

// CountByClassroom counts announcements referencing a classroom.
func (r *AnnouncementRepository) CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"classroomId": classroomID})
}

// RetargetClassroom bulk-rewrites the classroom reference on every
// announcement pointing at from, returning the number of documents updated.
func (r *AnnouncementRepository) RetargetClassroom(ctx context.Context, from, to primitive.ObjectID) (int64, error) {
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
