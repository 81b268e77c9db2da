package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a user-filed report attached to a classroom. The dedupe engine
// only ever rewrites its classroom reference; the payload is opaque to it.
type Report struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassroomID primitive.ObjectID `json:"classroomId" bson:"classroomId"`
	Title       string             `json:"title" bson:"title"`
	Body        string             `json:"body" bson:"body"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
