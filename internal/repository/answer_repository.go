package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kevin-luna/cursito-api/internal/models"
)

// AnswerRepository reads raw survey answers.
type AnswerRepository struct {
	db *sqlx.DB
}

// NewAnswerRepository constructs the repository.
func NewAnswerRepository(db *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// ListByWorkerCourseSurvey returns every answer a worker gave for one survey of one course,
// oldest first. The question number comes from questions.question_order.
func (r *AnswerRepository) ListByWorkerCourseSurvey(ctx context.Context, workerID, courseID, surveyID string) ([]models.Answer, error) {
	const query = `SELECT a.id, a.worker_id, a.course_id, a.question_id, q.question_order, a.value, a.created_at FROM answers a JOIN questions q ON q.id = a.question_id WHERE a.worker_id = $1 AND a.course_id = $2 AND q.survey_id = $3 ORDER BY a.created_at, a.id`
	answers := []models.Answer{}
	if err := r.db.SelectContext(ctx, &answers, query, workerID, courseID, surveyID); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}
