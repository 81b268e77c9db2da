// Package dedupe merges classroom records whose names collide under
// case-insensitive comparison, migrates their attendance, report and
// announcement references onto one canonical record, and installs the
// case-insensitive unique name index once the dataset is clean.
//
// The engine is a forward-only repair: there is no rollback, but every
// sub-step is idempotent, so aborted runs are safe to repeat and converge
// on the same result.
package dedupe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine drives the deduplication run over the four entity stores.
type Engine struct {
	classrooms    ClassroomStore
	attendances   AttendanceStore
	reports       ReportStore
	announcements AnnouncementStore
	log           zerolog.Logger
}

// New creates an Engine over the given stores.
func New(classrooms ClassroomStore, attendances AttendanceStore, reports ReportStore, announcements AnnouncementStore, log zerolog.Logger) *Engine {
	return &Engine{
		classrooms:    classrooms,
		attendances:   attendances,
		reports:       reports,
		announcements: announcements,
		log:           log,
	}
}

// Run executes the whole repair: discover duplicate-name groups, merge each
// group onto its canonical classroom, then verify the dataset and install
// the unique index. The first error aborts the run; already-merged groups
// stay merged and a re-run picks up where things stopped.
//
// With dryRun set, Run only discovers, scores and selects; the audit trail
// shows what would be merged and nothing is written.
func (e *Engine) Run(ctx context.Context, dryRun bool) (*Summary, error) {
	sum := &Summary{
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
		Groups:    []GroupAudit{},
	}

	classrooms, err := e.classrooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}

	groups := duplicateGroups(classrooms)
	sum.GroupsFound = len(groups)
	e.log.Info().
		Str("run_id", sum.RunID).
		Int("classrooms", len(classrooms)).
		Int("duplicate_groups", len(groups)).
		Bool("dry_run", dryRun).
		Msg("duplicate discovery complete")

	for _, g := range groups {
		if err := e.mergeGroup(ctx, g, dryRun, sum); err != nil {
			return nil, err
		}
	}

	if dryRun {
		sum.IndexState = IndexSkipped
		sum.FinishedAt = time.Now().UTC()
		return sum, nil
	}

	state, err := e.verifyAndInstall(ctx)
	if err != nil {
		return nil, err
	}
	sum.IndexState = state
	sum.FinishedAt = time.Now().UTC()

	e.log.Info().
		Str("run_id", sum.RunID).
		Int("classrooms_deleted", sum.ClassroomsDeleted).
		Str("index_state", string(state)).
		Msg("dedupe run complete")
	return sum, nil
}

// mergeGroup consumes one duplicate-name group: score every member, pick
// the canonical record, merge each duplicate into it, then write the folded
// subject list and trimmed name back onto the keeper.
func (e *Engine) mergeGroup(ctx context.Context, g group, dryRun bool, sum *Summary) error {
	candidates := make([]candidate, 0, len(g.members))
	for _, m := range g.members {
		refs, err := e.countReferences(ctx, m.ID)
		if err != nil {
			return err
		}
		candidates = append(candidates, candidate{Classroom: m, Refs: refs})
	}

	canonical, duplicates := selectCanonical(candidates)
	e.log.Info().
		Str("group", g.normalizedName).
		Str("canonical_id", canonical.ID.Hex()).
		Str("canonical_name", canonical.Name).
		Int("duplicates", len(duplicates)).
		Msg("canonical classroom selected")

	mergedSubjects := canonical.Subjects
	totalStudents := canonical.TotalStudents

	for _, dup := range duplicates {
		if !dryRun {
			if err := e.mergeAttendance(ctx, dup.ID, canonical.ID, &sum.Attendance); err != nil {
				return err
			}

			moved, err := e.reports.RetargetClassroom(ctx, dup.ID, canonical.ID)
			if err != nil {
				return fmt.Errorf("retarget reports from %s: %w", dup.ID.Hex(), err)
			}
			sum.ReportsMoved += moved

			moved, err = e.announcements.RetargetClassroom(ctx, dup.ID, canonical.ID)
			if err != nil {
				return fmt.Errorf("retarget announcements from %s: %w", dup.ID.Hex(), err)
			}
			sum.AnnouncementsMoved += moved

			mergedSubjects = mergeSubjects(mergedSubjects, dup.Subjects)
			if dup.TotalStudents > totalStudents {
				totalStudents = dup.TotalStudents
			}

			if err := e.classrooms.Delete(ctx, dup.ID); err != nil {
				return fmt.Errorf("delete duplicate classroom %s: %w", dup.ID.Hex(), err)
			}
			sum.ClassroomsDeleted++
		}

		sum.Groups = append(sum.Groups, GroupAudit{
			NormalizedName:       g.normalizedName,
			KeptID:               canonical.ID.Hex(),
			RemovedID:            dup.ID.Hex(),
			KeptName:             canonical.Name,
			RemovedName:          dup.Name,
			ReferenceCountsMoved: dup.Refs,
		})
	}

	if !dryRun {
		name := strings.TrimSpace(canonical.Name)
		if err := e.classrooms.UpdateMerged(ctx, canonical.ID, name, mergedSubjects, totalStudents); err != nil {
			return fmt.Errorf("update canonical classroom %s: %w", canonical.ID.Hex(), err)
		}
	}
	return nil
}
