package dedupe

import "time"

// RefCounts is the per-collection dependent-record count for one classroom,
// computed at scoring time. It ranks canonical candidates and is echoed in
// the audit trail as the volume of references moved off a duplicate.
type RefCounts struct {
	Attendance    int64 `json:"attendance"`
	Reports       int64 `json:"reports"`
	Announcements int64 `json:"announcements"`
	Total         int64 `json:"total"`
}

// AttendanceStats breaks down how duplicate-side attendance documents were
// consumed: retargeted in place, conflict-resolved in the duplicate's favor,
// or discarded because the canonical side was newer.
type AttendanceStats struct {
	Retargeted       int `json:"retargeted"`
	ConflictResolved int `json:"conflictResolved"`
	Discarded        int `json:"discarded"`
}

// GroupAudit records one duplicate classroom merged away.
type GroupAudit struct {
	NormalizedName       string    `json:"normalizedName"`
	KeptID               string    `json:"keptId"`
	RemovedID            string    `json:"removedId"`
	KeptName             string    `json:"keptName"`
	RemovedName          string    `json:"removedName"`
	ReferenceCountsMoved RefCounts `json:"referenceCountsMoved"`
}

// Summary is the completion report for one engine run. It is threaded
// through the orchestrator and printed as JSON on stdout; nothing about a
// run is kept in package-level state.
type Summary struct {
	RunID              string          `json:"runId"`
	DryRun             bool            `json:"dryRun"`
	StartedAt          time.Time       `json:"startedAt"`
	FinishedAt         time.Time       `json:"finishedAt"`
	GroupsFound        int             `json:"duplicateGroupsFound"`
	ClassroomsDeleted  int             `json:"duplicateClassroomsDeleted"`
	Attendance         AttendanceStats `json:"attendanceMoved"`
	ReportsMoved       int64           `json:"reportsMoved"`
	AnnouncementsMoved int64           `json:"announcementsMoved"`
	IndexState         IndexState      `json:"indexState"`
	Groups             []GroupAudit    `json:"groups"`
}
