package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/survey"
	"github.com/kevin-luna/cursito-api/pkg/export"
)

const (
	notAvailable  = "N/A"
	gradePending  = "Pendiente"
	noCourses     = "No se encontraron cursos impartidos por este instructor."
	fieldHeader   = "Campo"
	valueHeader   = "Información"
	sectionSpacer = 6.0
)

var kvHeader = []string{fieldHeader, valueHeader}

func (s *ReportService) buildAttendance(ctx context.Context, req dto.ReportRequest) (*ReportFile, error) {
	course, err := s.sources.Courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, fetchError(err, "course")
	}
	roster, err := s.sources.Enrollments.ListByCourse(ctx, req.CourseID)
	if err != nil {
		return nil, fetchError(err, "enrollments")
	}

	table := attendanceTable(roster)
	if req.Format == models.ReportFormatCSV {
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("attendance_list_%s.csv", course.ID),
			ContentType: models.ReportFormatCSV.ContentType(),
			Content:     content,
		}, nil
	}

	doc := export.NewDocument(s.style, "Lista de Asistencia", s.now())
	doc.InfoLine("Curso", course.Name)
	doc.InfoLine("Tipo", course.CourseType.Label())
	doc.InfoLine("Modalidad", course.Modality.Label())
	doc.InfoLine("Perfil", course.Profile.Label())
	if period := course.Period(); period != "" {
		doc.InfoLine("Periodo", period)
	}
	if schedule := course.Schedule(); schedule != "" {
		doc.InfoLine("Horario", schedule)
	}
	doc.Spacer(sectionSpacer)
	if err := doc.Table(table); err != nil {
		return nil, err
	}
	doc.Spacer(sectionSpacer)
	doc.Note(fmt.Sprintf("Total de participantes: %d", len(roster)))
	return s.pdfFile(doc, fmt.Sprintf("attendance_list_%s.pdf", course.ID))
}

// attendanceTable lays out one row per enrolled worker, numbered from 1.
func attendanceTable(roster []models.EnrolledWorker) export.Table {
	table := export.Table{
		Headers: []string{"No.", "Nombre Completo", "RFC", "Sexo", "Calificación"},
		Widths:  []float64{0.5, 3, 1.5, 0.8, 1},
		Align:   []string{"C", "L", "C", "C", "C"},
		Rows:    make([][]string, 0, len(roster)),
	}
	for i, e := range roster {
		w := e.Worker()
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			w.FullName(),
			orNA(w.RFC),
			orNA(w.SexInitial()),
			formatGrade(e.FinalGrade, notAvailable),
		})
	}
	return table
}

func (s *ReportService) buildEnrollmentCertificate(ctx context.Context, req dto.ReportRequest) (*ReportFile, error) {
	worker, err := s.sources.Workers.FindByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fetchError(err, "worker")
	}
	course, err := s.sources.Courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, fetchError(err, "course")
	}
	enrollment, err := s.sources.Enrollments.FindByWorkerAndCourse(ctx, req.WorkerID, req.CourseID)
	if err != nil {
		return nil, fetchError(err, "enrollment")
	}

	doc := export.NewDocument(s.style, "Cédula de Inscripción", s.now())
	doc.Subtitle("Datos del Trabajador")
	if err := doc.KeyValueTable(kvHeader, workerRows(worker)); err != nil {
		return nil, err
	}
	doc.Spacer(sectionSpacer)
	doc.Subtitle("Datos del Curso")
	if err := doc.KeyValueTable(kvHeader, courseRows(course, false)); err != nil {
		return nil, err
	}
	doc.Spacer(sectionSpacer)
	doc.Subtitle("Datos de Inscripción")
	if err := doc.KeyValueTable(nil, enrollmentRows(enrollment)); err != nil {
		return nil, err
	}
	return s.pdfFile(doc, fmt.Sprintf("enrollment_certificate_%s_%s.pdf", worker.ID, course.ID))
}

func workerRows(w *models.Worker) []export.KeyValue {
	return []export.KeyValue{
		{Key: "Nombre Completo", Value: w.FullName()},
		{Key: "RFC", Value: orNA(w.RFC)},
		{Key: "CURP", Value: orNA(w.CURP)},
		{Key: "Email", Value: orNA(w.Email)},
		{Key: "Teléfono", Value: orNA(deref(w.Telephone))},
		{Key: "Sexo", Value: orNA(w.SexLabel())},
		{Key: "Departamento", Value: orNA(deref(w.DepartmentName))},
		{Key: "Rol", Value: orNA(w.PositionLabel())},
	}
}

func courseRows(c *models.Course, withDetails bool) []export.KeyValue {
	rows := []export.KeyValue{
		{Key: "Nombre del Curso", Value: c.Name},
		{Key: "Objetivo", Value: orNA(c.Target)},
		{Key: "Tipo", Value: orNA(c.CourseType.Label())},
		{Key: "Modalidad", Value: orNA(c.Modality.Label())},
		{Key: "Perfil", Value: orNA(c.Profile.Label())},
		{Key: "Fecha Inicio", Value: orNA(models.FormatDate(c.StartDate))},
		{Key: "Fecha Fin", Value: orNA(models.FormatDate(c.EndDate))},
		{Key: "Horario", Value: orNA(c.Schedule())},
		{Key: "Meta", Value: orNA(c.Goal)},
	}
	if withDetails {
		rows = append(rows, export.KeyValue{Key: "Detalles", Value: orNA(deref(c.Details))})
	}
	return rows
}

func enrollmentRows(e *models.Enrollment) []export.KeyValue {
	enrolled := notAvailable
	if e.EnrolledAt != nil {
		enrolled = models.FormatDate(*e.EnrolledAt)
	}
	return []export.KeyValue{
		{Key: "Fecha de Inscripción", Value: enrolled},
		{Key: "Calificación Final", Value: formatGrade(e.FinalGrade, gradePending)},
	}
}

func (s *ReportService) buildInstructorCourses(ctx context.Context, req dto.ReportRequest) (*ReportFile, error) {
	worker, err := s.sources.Workers.FindByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fetchError(err, "worker")
	}
	courses, err := s.sources.Courses.ListByInstructor(ctx, req.WorkerID)
	if err != nil {
		return nil, fetchError(err, "instructor courses")
	}

	doc := export.NewDocument(s.style, "Lista de Cursos Impartidos", s.now())
	doc.InfoLine("Instructor", worker.FullName())
	doc.InfoLine("RFC", orNA(worker.RFC))
	doc.InfoLine("Departamento", orNA(deref(worker.DepartmentName)))
	doc.Spacer(sectionSpacer)

	if len(courses) == 0 {
		doc.Note(noCourses)
	}
	for i := range courses {
		course := &courses[i]
		doc.Subtitle(fmt.Sprintf("Curso %d: %s", i+1, course.Name))
		if err := doc.KeyValueTable(kvHeader, courseRows(course, true)); err != nil {
			return nil, err
		}
		doc.Spacer(sectionSpacer)
	}
	doc.Note(fmt.Sprintf("Total de cursos: %d", len(courses)))
	return s.pdfFile(doc, fmt.Sprintf("instructor_courses_%s.pdf", worker.ID))
}

func (s *ReportService) surveyAssembler(kind models.SurveyKind) assembler {
	return func(ctx context.Context, req dto.ReportRequest) (*ReportFile, error) {
		return s.buildSurvey(ctx, kind, req)
	}
}

// buildSurvey renders every catalog question, answered or not. A worker who never took the
// survey still gets a complete, unmarked document.
func (s *ReportService) buildSurvey(ctx context.Context, kind models.SurveyKind, req dto.ReportRequest) (*ReportFile, error) {
	catalog, err := s.catalogs.Catalog(kind)
	if err != nil {
		return nil, err
	}
	surveyID, _ := kind.SurveyID()

	worker, err := s.sources.Workers.FindByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fetchError(err, "worker")
	}
	course, err := s.sources.Courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, fetchError(err, "course")
	}
	if _, err := s.sources.Enrollments.FindByWorkerAndCourse(ctx, req.WorkerID, req.CourseID); err != nil {
		return nil, fetchError(err, "enrollment")
	}
	answers, err := s.sources.Answers.ListByWorkerCourseSurvey(ctx, req.WorkerID, req.CourseID, surveyID)
	if err != nil {
		return nil, fetchError(err, "answers")
	}

	blocks, err := survey.RenderSections(catalog, survey.Resolve(catalog, answers))
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	doc := export.NewDocument(s.style, catalog.Title, generatedAt)
	doc.InfoLine("Trabajador", worker.FullName())
	doc.InfoLine("Curso", course.Name)
	doc.InfoLine("Fecha de generación", s.style.Timestamp(generatedAt))
	doc.Spacer(sectionSpacer)
	if err := doc.Blocks(blocks); err != nil {
		return nil, err
	}
	return s.pdfFile(doc, fmt.Sprintf("%s_survey_%s_%s.pdf", kind, worker.ID, course.ID))
}

func (s *ReportService) pdfFile(doc *export.Document, filename string) (*ReportFile, error) {
	content, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	return &ReportFile{Filename: filename, ContentType: models.ReportFormatPDF.ContentType(), Content: content}, nil
}

func formatGrade(grade *float64, missing string) string {
	if grade == nil {
		return missing
	}
	return strconv.FormatFloat(*grade, 'f', 2, 64)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
