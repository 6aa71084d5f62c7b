package dto

import (
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/survey"
)

// ReportRequest identifies one document to compile. Which identifiers are required depends on Kind.
type ReportRequest struct {
	Kind     models.ReportKind   `json:"kind" validate:"required"`
	WorkerID string              `json:"workerId,omitempty" validate:"omitempty,uuid"`
	CourseID string              `json:"courseId,omitempty" validate:"omitempty,uuid"`
	Format   models.ReportFormat `json:"format,omitempty" validate:"omitempty,oneof=pdf csv"`
}

// CatalogResponse exposes a survey definition to clients.
type CatalogResponse struct {
	Kind     models.SurveyKind `json:"kind"`
	SurveyID string            `json:"surveyId"`
	Title    string            `json:"title"`
	Version  int               `json:"version"`
	Scale    []string          `json:"scale"`
	Sections []survey.Section  `json:"sections"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status string `json:"status"`
}
