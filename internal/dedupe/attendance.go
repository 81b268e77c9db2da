package dedupe

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mergeAttendance drains every attendance document owned by the duplicate
// classroom. Documents whose date is free on the canonical side are
// retargeted in place, which keeps their identity and timestamps. When the
// canonical classroom already has a document for the same date, the side
// with the later update timestamp wins and the duplicate document is
// deleted either way; equal timestamps keep the canonical side.
//
// Every branch is idempotent: a retargeted document no longer matches the
// duplicate on a re-run, and recomputing a conflict winner is stable. The
// duplicate classroom owns zero attendance documents when this returns nil.
func (e *Engine) mergeAttendance(ctx context.Context, dup, canonical primitive.ObjectID, stats *AttendanceStats) error {
	docs, err := e.attendances.ListByClassroom(ctx, dup)
	if err != nil {
		return fmt.Errorf("list attendance for classroom %s: %w", dup.Hex(), err)
	}

	for _, doc := range docs {
		existing, err := e.attendances.FindByClassroomDate(ctx, canonical, doc.Date)
		if err != nil {
			return fmt.Errorf("find canonical attendance for %s: %w", doc.Date, err)
		}

		if existing == nil {
			if err := e.attendances.Retarget(ctx, doc.ID, canonical); err != nil {
				return fmt.Errorf("retarget attendance %s: %w", doc.ID.Hex(), err)
			}
			stats.Retargeted++
			e.log.Debug().
				Str("date", doc.Date).
				Str("attendance_id", doc.ID.Hex()).
				Msg("attendance retargeted")
			continue
		}

		if doc.UpdatedAt.After(existing.UpdatedAt) {
			if err := e.attendances.ReplacePeriods(ctx, existing.ID, doc.Periods, doc.UpdatedAt); err != nil {
				return fmt.Errorf("resolve attendance conflict for %s: %w", doc.Date, err)
			}
			stats.ConflictResolved++
			e.log.Debug().
				Str("date", doc.Date).
				Str("winner", doc.ID.Hex()).
				Msg("attendance conflict resolved to duplicate side")
		} else {
			stats.Discarded++
			e.log.Debug().
				Str("date", doc.Date).
				Str("discarded", doc.ID.Hex()).
				Msg("attendance conflict kept canonical side")
		}

		if err := e.attendances.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete merged attendance %s: %w", doc.ID.Hex(), err)
		}
	}

	return nil
}
