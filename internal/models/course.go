package models

import "time"

// CourseType codes stored in courses.course_type.
type CourseType int16

const (
	CourseTypeDiploma  CourseType = 0
	CourseTypeWorkshop CourseType = 1
)

// Label returns the display name.
func (t CourseType) Label() string {
	switch t {
	case CourseTypeDiploma:
		return "Diplomado"
	case CourseTypeWorkshop:
		return "Taller"
	default:
		return ""
	}
}

// Modality codes stored in courses.modality.
type Modality int16

const (
	ModalityVirtual  Modality = 0
	ModalityInPerson Modality = 1
)

// Label returns the display name.
func (m Modality) Label() string {
	switch m {
	case ModalityVirtual:
		return "Virtual"
	case ModalityInPerson:
		return "Presencial"
	default:
		return ""
	}
}

// CourseProfile codes stored in courses.course_profile.
type CourseProfile int16

const (
	ProfileTraining      CourseProfile = 0
	ProfileTeacherUpdate CourseProfile = 1
)

// Label returns the display name.
func (p CourseProfile) Label() string {
	switch p {
	case ProfileTraining:
		return "Formación"
	case ProfileTeacherUpdate:
		return "Actualización Docente"
	default:
		return ""
	}
}

// Course is a read snapshot of a training course.
type Course struct {
	ID         string        `db:"id" json:"id"`
	PeriodID   string        `db:"period_id" json:"period_id"`
	Name       string        `db:"name" json:"name"`
	Target     string        `db:"target" json:"target"`
	StartDate  time.Time     `db:"start_date" json:"start_date"`
	EndDate    time.Time     `db:"end_date" json:"end_date"`
	StartTime  string        `db:"start_time" json:"start_time"`
	EndTime    string        `db:"end_time" json:"end_time"`
	CourseType CourseType    `db:"course_type" json:"course_type"`
	Modality   Modality      `db:"modality" json:"modality"`
	Profile    CourseProfile `db:"course_profile" json:"course_profile"`
	Goal       string        `db:"goal" json:"goal"`
	Details    *string       `db:"details" json:"details,omitempty"`
}

const dateLayout = "2006-01-02"

// Period formats the date range, empty when either bound is missing.
func (c Course) Period() string {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return ""
	}
	return c.StartDate.Format(dateLayout) + " - " + c.EndDate.Format(dateLayout)
}

// Schedule formats the daily time range, empty when either bound is missing.
func (c Course) Schedule() string {
	if c.StartTime == "" || c.EndTime == "" {
		return ""
	}
	return clock(c.StartTime) + " - " + clock(c.EndTime)
}

// FormatDate renders a date the way every report does.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// clock trims PostgreSQL time values ("08:00:00") to hours and minutes.
func clock(raw string) string {
	if len(raw) >= 5 {
		return raw[:5]
	}
	return raw
}
