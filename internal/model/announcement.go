package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a message posted to a classroom. Like Report, only its
// classroom reference matters to the dedupe engine.
type Announcement struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassroomID primitive.ObjectID `json:"classroomId" bson:"classroomId"`
	Message     string             `json:"message" bson:"message"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
