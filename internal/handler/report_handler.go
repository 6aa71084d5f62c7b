package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/service"
	"github.com/kevin-luna/cursito-api/pkg/response"
)

type reportBuilder interface {
	Build(ctx context.Context, req dto.ReportRequest) (*service.ReportFile, error)
	Catalog(kind models.SurveyKind) (*dto.CatalogResponse, error)
}

// ReportHandler exposes the report download endpoints.
type ReportHandler struct {
	reports reportBuilder
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportBuilder) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// AttendanceList godoc
// @Summary Course attendance list
// @Tags Reports
// @Produce application/pdf
// @Produce text/csv
// @Param courseId path string true "Course ID"
// @Param format query string false "pdf (default) or csv"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/attendance/{courseId} [get]
func (h *ReportHandler) AttendanceList(c *gin.Context) {
	h.serve(c, dto.ReportRequest{
		Kind:     models.ReportAttendance,
		CourseID: c.Param("courseId"),
		Format:   models.ReportFormat(strings.ToLower(c.Query("format"))),
	})
}

// EnrollmentCertificate godoc
// @Summary Enrollment certificate of a worker in a course
// @Tags Reports
// @Produce application/pdf
// @Param workerId path string true "Worker ID"
// @Param courseId path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/enrollment/{workerId}/{courseId} [get]
func (h *ReportHandler) EnrollmentCertificate(c *gin.Context) {
	h.serve(c, dto.ReportRequest{
		Kind:     models.ReportEnrollmentCertificate,
		WorkerID: c.Param("workerId"),
		CourseID: c.Param("courseId"),
	})
}

// InstructorCourses godoc
// @Summary Courses taught by an instructor
// @Tags Reports
// @Produce application/pdf
// @Param workerId path string true "Worker ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/instructor-courses/{workerId} [get]
func (h *ReportHandler) InstructorCourses(c *gin.Context) {
	h.serve(c, dto.ReportRequest{
		Kind:     models.ReportInstructorCourses,
		WorkerID: c.Param("workerId"),
	})
}

// FollowUpSurvey godoc
// @Summary Follow-up survey answered by a worker
// @Tags Reports
// @Produce application/pdf
// @Param workerId path string true "Worker ID"
// @Param courseId path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/survey/{workerId}/{courseId}/followup [get]
func (h *ReportHandler) FollowUpSurvey(c *gin.Context) {
	h.serve(c, dto.ReportRequest{
		Kind:     models.ReportFollowUpSurvey,
		WorkerID: c.Param("workerId"),
		CourseID: c.Param("courseId"),
	})
}

// OpinionSurvey godoc
// @Summary Opinion survey answered by a worker
// @Tags Reports
// @Produce application/pdf
// @Param workerId path string true "Worker ID"
// @Param courseId path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/survey/{workerId}/{courseId}/opinion [get]
func (h *ReportHandler) OpinionSurvey(c *gin.Context) {
	h.serve(c, dto.ReportRequest{
		Kind:     models.ReportOpinionSurvey,
		WorkerID: c.Param("workerId"),
		CourseID: c.Param("courseId"),
	})
}

// Catalog godoc
// @Summary Survey question catalog
// @Tags Reports
// @Produce json
// @Param survey path string true "followup or opinion"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/catalog/{survey} [get]
func (h *ReportHandler) Catalog(c *gin.Context) {
	catalog, err := h.reports.Catalog(models.SurveyKind(strings.ToLower(c.Param("survey"))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalog)
}

func (h *ReportHandler) serve(c *gin.Context, req dto.ReportRequest) {
	file, err := h.reports.Build(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
