package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classlog/classlog-backend/internal/dedupe"
	"github.com/classlog/classlog-backend/internal/model"
)

// CaseInsensitiveNameIndex is the unique index on classroom names with
// strength-2 collation (ignores case, accents and width).
const CaseInsensitiveNameIndex = "name_ci_unique"

// ClassroomRepository handles classroom data access.
type ClassroomRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(db *mongo.Database, opTimeout time.Duration) *ClassroomRepository {
	return &ClassroomRepository{coll: db.Collection(ClassroomsCollection), opTimeout: opTimeout}
}

// List retrieves all classrooms.
func (r *ClassroomRepository) List(ctx context.Context) ([]model.Classroom, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var classrooms []model.Classroom
	if err := cursor.All(ctx, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

// UpdateMerged writes the post-merge name, subject list and legacy student
// count onto the canonical classroom.
func (r *ClassroomRepository) UpdateMerged(ctx context.Context, id primitive.ObjectID, name string, subjects []model.Subject, totalStudents int) error {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	set := bson.M{"name": name, "subjects": subjects}
	if totalStudents > 0 {
		set["totalStudents"] = totalStudents
	}
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a classroom document by its ID.
func (r *ClassroomRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureCaseInsensitiveNameIndex installs the collated unique index on the
// name field. A pre-existing collated index is confirmed as-is; a stale
// case-sensitive name index is dropped first and the state reported as
// recreated.
func (r *ClassroomRepository) EnsureCaseInsensitiveNameIndex(ctx context.Context) (dedupe.IndexState, error) {
	ctx, cancel := opCtx(ctx, r.opTimeout)
	defer cancel()

	cursor, err := r.coll.Indexes().List(ctx)
	if err != nil {
		return "", fmt.Errorf("list indexes: %w", err)
	}
	var specs []nameIndexSpec
	if err := cursor.All(ctx, &specs); err != nil {
		return "", fmt.Errorf("decode indexes: %w", err)
	}

	for _, idx := range specs {
		if classifyNameIndex(idx) == nameIndexSatisfies {
			return dedupe.IndexExisted, nil
		}
	}

	state := dedupe.IndexCreated
	for _, idx := range specs {
		// Any other index on name would fight the collated unique one:
		// a case-sensitive unique predecessor, or a collated index that
		// is non-unique or case-sensitive.
		if classifyNameIndex(idx) != nameIndexStale {
			continue
		}
		if _, err := r.coll.Indexes().DropOne(ctx, idx.Name); err != nil {
			return "", fmt.Errorf("drop index %s: %w", idx.Name, err)
		}
		state = dedupe.IndexRecreated
	}

	_, err = r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName(CaseInsensitiveNameIndex).
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return "", fmt.Errorf("create index %s: %w", CaseInsensitiveNameIndex, err)
	}
	return state, nil
}

// nameIndexSpec is the slice of an index listing the installer cares about.
type nameIndexSpec struct {
	Name      string `bson:"name"`
	Key       bson.D `bson:"key"`
	Unique    bool   `bson:"unique"`
	Collation *struct {
		Strength int32 `bson:"strength"`
	} `bson:"collation"`
}

type nameIndexClass int

const (
	// nameIndexUnrelated: not a single-field index on name; leave it alone.
	nameIndexUnrelated nameIndexClass = iota
	// nameIndexSatisfies: already the case-insensitive uniqueness constraint.
	nameIndexSatisfies
	// nameIndexStale: an index on name that does not enforce the constraint
	// and must be dropped before the collated unique index is created.
	nameIndexStale
)

// classifyNameIndex decides what the installer does with one existing index.
// Only a unique index with a strength-1 or strength-2 collation actually
// enforces case-insensitive uniqueness; a non-unique collated index (the
// usual case-insensitive sort helper) or a unique index with the default
// strength-3 collation must not be mistaken for it.
func classifyNameIndex(idx nameIndexSpec) nameIndexClass {
	if len(idx.Key) != 1 || idx.Key[0].Key != "name" {
		return nameIndexUnrelated
	}
	if idx.Unique && idx.Collation != nil && idx.Collation.Strength >= 1 && idx.Collation.Strength <= 2 {
		return nameIndexSatisfies
	}
	if idx.Name == "" {
		// Cannot drop an unnamed index; the create call will surface the clash.
		return nameIndexUnrelated
	}
	return nameIndexStale
}
