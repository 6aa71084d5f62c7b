package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kevin-luna/cursito-api/internal/models"
)

// courseColumns renders time-of-day columns as text so they scan into strings.
const courseColumns = `c.id, c.period_id, c.name, c.target, c.start_date, c.end_date, to_char(c.start_time, 'HH24:MI') AS start_time, to_char(c.end_time, 'HH24:MI') AS end_time, c.course_type, c.modality, c.course_profile, c.goal, c.details`

// CourseRepository reads training courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID fetches a single course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListByInstructor returns the courses a worker teaches, earliest first.
func (r *CourseRepository) ListByInstructor(ctx context.Context, workerID string) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c JOIN instructors i ON i.course_id = c.id WHERE i.worker_id = $1 ORDER BY c.start_date, c.name`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, workerID); err != nil {
		return nil, fmt.Errorf("list courses for instructor: %w", err)
	}
	return courses, nil
}
