package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kevin-luna/cursito-api/internal/models"
)

// EnrollmentRepository reads course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByWorkerAndCourse fetches the enrollment linking a worker to a course.
func (r *EnrollmentRepository) FindByWorkerAndCourse(ctx context.Context, workerID, courseID string) (*models.Enrollment, error) {
	const query = `SELECT id, worker_id, course_id, final_grade, created_at FROM enrollings WHERE worker_id = $1 AND course_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, workerID, courseID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByCourse returns the course roster ordered by surnames then name.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.EnrolledWorker, error) {
	const query = `SELECT e.id AS enrollment_id, w.id AS worker_id, w.name, w.fathers_surname, w.mother_surname, w.rfc, w.sex, e.final_grade FROM enrollings e JOIN workers w ON w.id = e.worker_id WHERE e.course_id = $1 ORDER BY w.fathers_surname, w.mother_surname NULLS FIRST, w.name`
	roster := []models.EnrolledWorker{}
	if err := r.db.SelectContext(ctx, &roster, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrollments for course: %w", err)
	}
	return roster, nil
}
