package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/kevin-luna/cursito-api/internal/models"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
	"github.com/kevin-luna/cursito-api/pkg/export"
)

const (
	workerAna  = "0b6f6c3e-1d2a-4f4e-9a51-2f7c1e0d9a11"
	workerLuis = "5c0d7a2b-8e3f-4b61-a9d4-7e2f3c1b0a22"
	courseID   = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c33"
	missingID  = "11111111-2222-4333-8444-555555555555"
)

var fixedNow = time.Date(2025, 6, 30, 17, 45, 0, 0, time.UTC)

type workerStub struct {
	workers map[string]models.Worker
	calls   int
}

func (s *workerStub) FindByID(ctx context.Context, id string) (*models.Worker, error) {
	s.calls++
	w, ok := s.workers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &w, nil
}

type courseStub struct {
	courses map[string]models.Course
	taught  map[string][]models.Course
	calls   int
}

func (s *courseStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	s.calls++
	c, ok := s.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (s *courseStub) ListByInstructor(ctx context.Context, workerID string) ([]models.Course, error) {
	return append([]models.Course{}, s.taught[workerID]...), nil
}

type enrollmentStub struct {
	enrollments map[string]models.Enrollment
	rosters     map[string][]models.EnrolledWorker
}

func (s *enrollmentStub) FindByWorkerAndCourse(ctx context.Context, workerID, courseID string) (*models.Enrollment, error) {
	e, ok := s.enrollments[workerID+"|"+courseID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (s *enrollmentStub) ListByCourse(ctx context.Context, courseID string) ([]models.EnrolledWorker, error) {
	return append([]models.EnrolledWorker{}, s.rosters[courseID]...), nil
}

type answerStub struct {
	answers map[string][]models.Answer
	err     error
}

func (s *answerStub) ListByWorkerCourseSurvey(ctx context.Context, workerID, courseID, surveyID string) ([]models.Answer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Answer{}, s.answers[workerID+"|"+courseID+"|"+surveyID]...), nil
}

type fixture struct {
	workers     *workerStub
	courses     *courseStub
	enrollments *enrollmentStub
	answers     *answerStub
}

func newFixture() *fixture {
	surname := "López"
	dept := "Ciencias Básicas"
	grade := 95.5
	enrolled := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	course := models.Course{
		ID:         courseID,
		Name:       "Docencia digital",
		Target:     "Docentes de licenciatura",
		StartDate:  time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "13:00",
		CourseType: models.CourseTypeWorkshop,
		Modality:   models.ModalityInPerson,
		Profile:    models.ProfileTeacherUpdate,
		Goal:       "Diseñar actividades en línea",
	}
	return &fixture{
		workers: &workerStub{workers: map[string]models.Worker{
			workerAna:  {ID: workerAna, Name: "Ana", FathersSurname: "Pérez", MothersSurname: &surname, RFC: "PELA800101AB1", CURP: "PELA800101MDFRPN01", Sex: models.SexFemale, Email: "ana@example.edu", DepartmentName: &dept},
			workerLuis: {ID: workerLuis, Name: "Luis", FathersSurname: "Ramos", RFC: "RALU800101AB1", Sex: models.SexMale, Email: "luis@example.edu"},
		}},
		courses: &courseStub{
			courses: map[string]models.Course{courseID: course},
			taught:  map[string][]models.Course{workerAna: {course}},
		},
		enrollments: &enrollmentStub{
			enrollments: map[string]models.Enrollment{
				workerAna + "|" + courseID:  {ID: "e-1", WorkerID: workerAna, CourseID: courseID, FinalGrade: &grade, EnrolledAt: &enrolled},
				workerLuis + "|" + courseID: {ID: "e-2", WorkerID: workerLuis, CourseID: courseID},
			},
			rosters: map[string][]models.EnrolledWorker{courseID: {
				{EnrollmentID: "e-1", WorkerID: workerAna, Name: "Ana", FathersSurname: "Pérez", MothersSurname: &surname, RFC: "PELA800101AB1", Sex: models.SexFemale, FinalGrade: &grade},
				{EnrollmentID: "e-2", WorkerID: workerLuis, Name: "Luis", FathersSurname: "Ramos", RFC: "RALU800101AB1", Sex: models.SexMale},
			}},
		},
		answers: &answerStub{answers: map[string][]models.Answer{}},
	}
}

func (f *fixture) sources() ReportSources {
	return ReportSources{Workers: f.workers, Courses: f.courses, Enrollments: f.enrollments, Answers: f.answers}
}

func plainStyle() export.Style {
	s := export.DefaultStyle()
	s.Compress = false
	return s
}

func testConfig() ReportServiceConfig {
	return ReportServiceConfig{Style: plainStyle(), Clock: func() time.Time { return fixedNow }}
}

type memoryCache struct {
	entries map[string]interface{}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *models.Worker:
		*d = *(v.(*models.Worker))
	case *models.Course:
		*d = *(v.(*models.Course))
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	n := len(m.entries)
	m.entries = map[string]interface{}{}
	return n, nil
}
