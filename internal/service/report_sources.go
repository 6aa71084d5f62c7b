package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kevin-luna/cursito-api/internal/models"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
)

// WorkerReader fetches workers.
type WorkerReader interface {
	FindByID(ctx context.Context, id string) (*models.Worker, error)
}

// CourseReader fetches courses.
type CourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListByInstructor(ctx context.Context, workerID string) ([]models.Course, error)
}

// EnrollmentReader fetches enrollments and course rosters.
type EnrollmentReader interface {
	FindByWorkerAndCourse(ctx context.Context, workerID, courseID string) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.EnrolledWorker, error)
}

// AnswerReader fetches raw survey answers.
type AnswerReader interface {
	ListByWorkerCourseSurvey(ctx context.Context, workerID, courseID, surveyID string) ([]models.Answer, error)
}

// ReportSources groups the data fetchers report assembly reads from.
type ReportSources struct {
	Workers     WorkerReader
	Courses     CourseReader
	Enrollments EnrollmentReader
	Answers     AnswerReader
}

// SnapshotCachePattern matches every key written by the snapshot cache.
const SnapshotCachePattern = "report:snapshot:*"

func workerCacheKey(id string) string { return "report:snapshot:worker:" + id }
func courseCacheKey(id string) string { return "report:snapshot:course:" + id }

// WithSnapshotCache wraps the worker and course readers with a read-through cache.
// Rosters, enrollments and answers always hit the database.
func WithSnapshotCache(src ReportSources, cache *CacheService, ttl time.Duration) ReportSources {
	if !cache.Enabled() {
		return src
	}
	src.Workers = &cachedWorkers{inner: src.Workers, cache: cache, ttl: ttl}
	src.Courses = &cachedCourses{inner: src.Courses, cache: cache, ttl: ttl}
	return src
}

type cachedWorkers struct {
	inner WorkerReader
	cache *CacheService
	ttl   time.Duration
}

func (c *cachedWorkers) FindByID(ctx context.Context, id string) (*models.Worker, error) {
	key := workerCacheKey(id)
	var cached models.Worker
	if hit, _ := c.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}
	worker, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, worker, c.ttl)
	return worker, nil
}

type cachedCourses struct {
	inner CourseReader
	cache *CacheService
	ttl   time.Duration
}

func (c *cachedCourses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	key := courseCacheKey(id)
	var cached models.Course
	if hit, _ := c.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}
	course, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, course, c.ttl)
	return course, nil
}

func (c *cachedCourses) ListByInstructor(ctx context.Context, workerID string) ([]models.Course, error) {
	return c.inner.ListByInstructor(ctx, workerID)
}

// fetchError maps a data layer error onto the API error kinds.
func fetchError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+what)
}
