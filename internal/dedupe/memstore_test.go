package dedupe

// In-memory stores standing in for the MongoDB repositories so the engine
// can be exercised without a running database.

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/classlog/classlog-backend/internal/model"
)

func oid(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

type memClassroomStore struct {
	classrooms  map[primitive.ObjectID]model.Classroom
	indexState  IndexState
	ensureCalls int
	// listHook runs before each List call; tests use it to simulate
	// concurrent writes between merge and verification.
	listHook  func(s *memClassroomStore, call int)
	listCalls int
}

func newMemClassroomStore(classrooms ...model.Classroom) *memClassroomStore {
	s := &memClassroomStore{
		classrooms: make(map[primitive.ObjectID]model.Classroom),
		indexState: IndexCreated,
	}
	for _, c := range classrooms {
		s.classrooms[c.ID] = c
	}
	return s
}

func (s *memClassroomStore) List(ctx context.Context) ([]model.Classroom, error) {
	s.listCalls++
	if s.listHook != nil {
		s.listHook(s, s.listCalls)
	}
	out := make([]model.Classroom, 0, len(s.classrooms))
	for _, c := range s.classrooms {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *memClassroomStore) UpdateMerged(ctx context.Context, id primitive.ObjectID, name string, subjects []model.Subject, totalStudents int) error {
	c := s.classrooms[id]
	c.Name = name
	c.Subjects = subjects
	if totalStudents > 0 {
		c.TotalStudents = totalStudents
	}
	s.classrooms[id] = c
	return nil
}

func (s *memClassroomStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.classrooms, id)
	return nil
}

func (s *memClassroomStore) EnsureCaseInsensitiveNameIndex(ctx context.Context) (IndexState, error) {
	s.ensureCalls++
	return s.indexState, nil
}

type memAttendanceStore struct {
	docs map[primitive.ObjectID]model.Attendance
}

func newMemAttendanceStore(docs ...model.Attendance) *memAttendanceStore {
	s := &memAttendanceStore{docs: make(map[primitive.ObjectID]model.Attendance)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *memAttendanceStore) CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error) {
	var n int64
	for _, d := range s.docs {
		if d.ClassroomID == classroomID {
			n++
		}
	}
	return n, nil
}

func (s *memAttendanceStore) ListByClassroom(ctx context.Context, classroomID primitive.ObjectID) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, d := range s.docs {
		if d.ClassroomID == classroomID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *memAttendanceStore) FindByClassroomDate(ctx context.Context, classroomID primitive.ObjectID, date string) (*model.Attendance, error) {
	for _, d := range s.docs {
		if d.ClassroomID == classroomID && d.Date == date {
			doc := d
			return &doc, nil
		}
	}
	return nil, nil
}

func (s *memAttendanceStore) Retarget(ctx context.Context, id, toClassroomID primitive.ObjectID) error {
	d := s.docs[id]
	d.ClassroomID = toClassroomID
	s.docs[id] = d
	return nil
}

func (s *memAttendanceStore) ReplacePeriods(ctx context.Context, id primitive.ObjectID, periods []model.Period, updatedAt time.Time) error {
	d := s.docs[id]
	d.Periods = periods
	d.UpdatedAt = updatedAt
	s.docs[id] = d
	return nil
}

func (s *memAttendanceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.docs, id)
	return nil
}

// memRefStore models reports or announcements as bare per-classroom counts,
// which is all the engine ever reads or moves.
type memRefStore struct {
	byClassroom map[primitive.ObjectID]int64
}

func newMemRefStore(counts map[primitive.ObjectID]int64) *memRefStore {
	if counts == nil {
		counts = make(map[primitive.ObjectID]int64)
	}
	return &memRefStore{byClassroom: counts}
}

func (s *memRefStore) CountByClassroom(ctx context.Context, classroomID primitive.ObjectID) (int64, error) {
	return s.byClassroom[classroomID], nil
}

func (s *memRefStore) RetargetClassroom(ctx context.Context, from, to primitive.ObjectID) (int64, error) {
	n := s.byClassroom[from]
	if n > 0 {
		s.byClassroom[to] += n
		delete(s.byClassroom, from)
	}
	return n, nil
}

func (s *memRefStore) total() int64 {
	var n int64
	for _, c := range s.byClassroom {
		n += c
	}
	return n
}

type testStores struct {
	classrooms    *memClassroomStore
	attendances   *memAttendanceStore
	reports       *memRefStore
	announcements *memRefStore
}

func newTestEngine(s testStores) *Engine {
	if s.classrooms == nil {
		s.classrooms = newMemClassroomStore()
	}
	if s.attendances == nil {
		s.attendances = newMemAttendanceStore()
	}
	if s.reports == nil {
		s.reports = newMemRefStore(nil)
	}
	if s.announcements == nil {
		s.announcements = newMemRefStore(nil)
	}
	return New(s.classrooms, s.attendances, s.reports, s.announcements, zerolog.Nop())
}
