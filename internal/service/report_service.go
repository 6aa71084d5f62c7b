package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/survey"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
	"github.com/kevin-luna/cursito-api/pkg/export"
)

// ReportFile is a finished document.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportServiceConfig tunes document output.
type ReportServiceConfig struct {
	Style export.Style
	// Clock stamps documents. Defaults to time.Now.
	Clock func() time.Time
}

type assembler func(ctx context.Context, req dto.ReportRequest) (*ReportFile, error)

// reportRoute describes what a report kind needs and how it is built.
type reportRoute struct {
	needsWorker bool
	needsCourse bool
	allowsCSV   bool
	build       assembler
}

// ReportService compiles read-only documents from course records.
type ReportService struct {
	sources   ReportSources
	catalogs  *survey.Registry
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	style     export.Style
	now       func() time.Time
	csv       *export.CSVExporter
	routes    map[models.ReportKind]reportRoute
}

// NewReportService wires the dispatcher. Every models.ReportKind gets a route here.
func NewReportService(sources ReportSources, catalogs *survey.Registry, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if catalogs == nil {
		catalogs = survey.MustLoadRegistry()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Style.PageSize == "" {
		cfg.Style = export.DefaultStyle()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	s := &ReportService{
		sources:   sources,
		catalogs:  catalogs,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		style:     cfg.Style,
		now:       cfg.Clock,
		csv:       export.NewCSVExporter(),
	}
	s.routes = map[models.ReportKind]reportRoute{
		models.ReportAttendance:            {needsCourse: true, allowsCSV: true, build: s.buildAttendance},
		models.ReportEnrollmentCertificate: {needsWorker: true, needsCourse: true, build: s.buildEnrollmentCertificate},
		models.ReportInstructorCourses:     {needsWorker: true, build: s.buildInstructorCourses},
		models.ReportFollowUpSurvey:        {needsWorker: true, needsCourse: true, build: s.surveyAssembler(models.SurveyFollowUp)},
		models.ReportOpinionSurvey:         {needsWorker: true, needsCourse: true, build: s.surveyAssembler(models.SurveyOpinion)},
	}
	return s
}

// Build validates the request, dispatches it to the assembler of its kind and returns the document.
// NotFound and Validation errors pass through unchanged; assembly failures become RENDER_ERROR.
func (s *ReportService) Build(ctx context.Context, req dto.ReportRequest) (*ReportFile, error) {
	if req.Format == "" {
		req.Format = models.ReportFormatPDF
	}
	start := time.Now()
	route, err := s.route(req)
	if err != nil {
		s.metrics.ObserveReportBuild(metricKind(req.Kind, s.routes), OutcomeValidation, 0)
		return nil, err
	}

	file, err := route.build(ctx, req)
	elapsed := time.Since(start)
	fields := []zap.Field{
		zap.String("kind", string(req.Kind)),
		zap.String("format", string(req.Format)),
		zap.String("worker_id", req.WorkerID),
		zap.String("course_id", req.CourseID),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		err = classifyBuildError(err)
		s.metrics.ObserveReportBuild(req.Kind, buildOutcome(err), elapsed)
		s.logger.Warn("report build failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	s.metrics.ObserveReportBuild(req.Kind, OutcomeSuccess, elapsed)
	s.logger.Info("report built", append(fields, zap.Int("bytes", len(file.Content)))...)
	return file, nil
}

// AttendanceList builds the attendance list of a course in the given format.
func (s *ReportService) AttendanceList(ctx context.Context, courseID string, format models.ReportFormat) (*ReportFile, error) {
	return s.Build(ctx, dto.ReportRequest{Kind: models.ReportAttendance, CourseID: courseID, Format: format})
}

// EnrollmentCertificate builds the enrollment certificate of a worker in a course.
func (s *ReportService) EnrollmentCertificate(ctx context.Context, workerID, courseID string) (*ReportFile, error) {
	return s.Build(ctx, dto.ReportRequest{Kind: models.ReportEnrollmentCertificate, WorkerID: workerID, CourseID: courseID})
}

// InstructorCourses builds the list of courses a worker teaches.
func (s *ReportService) InstructorCourses(ctx context.Context, workerID string) (*ReportFile, error) {
	return s.Build(ctx, dto.ReportRequest{Kind: models.ReportInstructorCourses, WorkerID: workerID})
}

// FollowUpSurvey builds the follow-up survey answered by a worker for a course.
func (s *ReportService) FollowUpSurvey(ctx context.Context, workerID, courseID string) (*ReportFile, error) {
	return s.Build(ctx, dto.ReportRequest{Kind: models.ReportFollowUpSurvey, WorkerID: workerID, CourseID: courseID})
}

// OpinionSurvey builds the opinion survey answered by a worker for a course.
func (s *ReportService) OpinionSurvey(ctx context.Context, workerID, courseID string) (*ReportFile, error) {
	return s.Build(ctx, dto.ReportRequest{Kind: models.ReportOpinionSurvey, WorkerID: workerID, CourseID: courseID})
}

// Catalog returns the definition of a survey.
func (s *ReportService) Catalog(kind models.SurveyKind) (*dto.CatalogResponse, error) {
	c, err := s.catalogs.Catalog(kind)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("survey %q not found", kind))
	}
	id, _ := kind.SurveyID()
	return &dto.CatalogResponse{
		Kind:     c.Kind,
		SurveyID: id,
		Title:    c.Title,
		Version:  c.Version,
		Scale:    c.Scale,
		Sections: c.Sections,
	}, nil
}

// Requirements reports which subject ids a report kind needs. ok is false for unknown kinds.
func (s *ReportService) Requirements(kind models.ReportKind) (worker, course, ok bool) {
	route, ok := s.routes[kind]
	return route.needsWorker, route.needsCourse, ok
}

func (s *ReportService) route(req dto.ReportRequest) (reportRoute, error) {
	route, ok := s.routes[req.Kind]
	if !ok {
		return reportRoute{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report kind %q", req.Kind))
	}
	if err := s.validator.Struct(req); err != nil {
		return reportRoute{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, describeValidation(err))
	}
	if route.needsWorker && req.WorkerID == "" {
		return reportRoute{}, appErrors.Clone(appErrors.ErrValidation, "workerId is required")
	}
	if route.needsCourse && req.CourseID == "" {
		return reportRoute{}, appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}
	if req.Format == models.ReportFormatCSV && !route.allowsCSV {
		return reportRoute{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("report %q is only available as pdf", req.Kind))
	}
	return route, nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "uuid":
			return fmt.Sprintf("%s must be a valid UUID", fe.Field())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return appErrors.ErrValidation.Message
}

// classifyBuildError keeps typed errors and turns anything else into a render failure.
func classifyBuildError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, appErrors.ErrRender.Message)
}

func buildOutcome(err error) string {
	switch {
	case appErrors.Is(err, appErrors.ErrNotFound):
		return OutcomeNotFound
	case appErrors.Is(err, appErrors.ErrValidation):
		return OutcomeValidation
	default:
		return OutcomeFailure
	}
}

// metricKind keeps unknown kinds from creating new label values.
func metricKind(kind models.ReportKind, routes map[models.ReportKind]reportRoute) models.ReportKind {
	if _, ok := routes[kind]; ok {
		return kind
	}
	return "unknown"
}
