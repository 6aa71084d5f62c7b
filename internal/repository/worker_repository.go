package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/kevin-luna/cursito-api/internal/models"
)

// WorkerRepository reads staff members.
type WorkerRepository struct {
	db *sqlx.DB
}

// NewWorkerRepository constructs the repository.
func NewWorkerRepository(db *sqlx.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// FindByID fetches a worker together with the name of its department.
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*models.Worker, error) {
	const query = `SELECT w.id, w.department_id, d.name AS department_name, w.rfc, w.curp, w.sex, w.telephone, w.email, w.name, w.fathers_surname, w.mother_surname, w.position FROM workers w LEFT JOIN departments d ON d.id = w.department_id WHERE w.id = $1`
	var worker models.Worker
	if err := r.db.GetContext(ctx, &worker, query, id); err != nil {
		return nil, err
	}
	return &worker, nil
}
