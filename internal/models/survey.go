package models

import "time"

// SurveyKind selects one of the two hardwired surveys.
type SurveyKind string

const (
	SurveyFollowUp SurveyKind = "followup"
	SurveyOpinion  SurveyKind = "opinion"
)

// Fixed surveys.id values seeded by the data layer.
const (
	FollowUpSurveyID = "3d1fa6a2-6d4a-42fa-a474-68c83156f541"
	OpinionSurveyID  = "c2a77b75-8552-4fe0-ab49-231803244ace"
)

// SurveyKinds lists every known survey kind.
func SurveyKinds() []SurveyKind {
	return []SurveyKind{SurveyFollowUp, SurveyOpinion}
}

// SurveyID returns the stored identifier for the kind.
func (k SurveyKind) SurveyID() (string, bool) {
	switch k {
	case SurveyFollowUp:
		return FollowUpSurveyID, true
	case SurveyOpinion:
		return OpinionSurveyID, true
	default:
		return "", false
	}
}

// Answer is one raw answer row for a (worker, course, question) triple.
type Answer struct {
	ID             string    `db:"id" json:"id"`
	WorkerID       string    `db:"worker_id" json:"worker_id"`
	CourseID       string    `db:"course_id" json:"course_id"`
	QuestionID     string    `db:"question_id" json:"question_id"`
	QuestionNumber int       `db:"question_order" json:"question_order"`
	Value          string    `db:"value" json:"value"`
	RecordedAt     time.Time `db:"created_at" json:"recorded_at"`
}
