// Package repository provides the MongoDB-backed implementations of the
// per-entity stores consumed by the dedupe engine.
package repository

import (
	"context"
	"time"
)

// Collection names, shared with the rest of the backend.
const (
	ClassroomsCollection    = "classrooms"
	AttendancesCollection   = "attendances"
	ReportsCollection       = "reports"
	AnnouncementsCollection = "announcements"
)

// opCtx bounds a single storage operation with a conservative timeout so
// the batch run fails fast instead of hanging on a stuck call.
func opCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
