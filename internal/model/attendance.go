package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance holds one classroom's attendance for one calendar day.
// The storage layer enforces uniqueness on (classroomId, date).
type Attendance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassroomID primitive.ObjectID `json:"classroomId" bson:"classroomId"`
	// Date is the calendar day in YYYY-MM-DD form.
	Date      string    `json:"date" bson:"date"`
	Periods   []Period  `json:"periods" bson:"periods"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Period is one timetable slot within a day's attendance.
type Period struct {
	Number      int      `json:"number" bson:"number"`
	Subject     string   `json:"subject" bson:"subject"`
	AbsentRolls []string `json:"absentRolls" bson:"absentRolls"`
}
