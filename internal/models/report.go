package models

// ReportKind enumerates the documents the report compiler can build.
type ReportKind string

const (
	ReportAttendance            ReportKind = "attendance"
	ReportEnrollmentCertificate ReportKind = "enrollment-certificate"
	ReportInstructorCourses     ReportKind = "instructor-courses"
	ReportFollowUpSurvey        ReportKind = "followup-survey"
	ReportOpinionSurvey         ReportKind = "opinion-survey"
)

// ReportKinds lists every report kind.
func ReportKinds() []ReportKind {
	return []ReportKind{
		ReportAttendance,
		ReportEnrollmentCertificate,
		ReportInstructorCourses,
		ReportFollowUpSurvey,
		ReportOpinionSurvey,
	}
}

// ReportFormat is the output encoding of a report.
type ReportFormat string

const (
	ReportFormatPDF ReportFormat = "pdf"
	ReportFormatCSV ReportFormat = "csv"
)

// ContentType returns the MIME type for the format.
func (f ReportFormat) ContentType() string {
	if f == ReportFormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/pdf"
}
