package models

import "time"

// Enrollment links one worker to one course.
type Enrollment struct {
	ID         string     `db:"id" json:"id"`
	WorkerID   string     `db:"worker_id" json:"worker_id"`
	CourseID   string     `db:"course_id" json:"course_id"`
	FinalGrade *float64   `db:"final_grade" json:"final_grade,omitempty"`
	EnrolledAt *time.Time `db:"created_at" json:"enrolled_at,omitempty"`
}

// EnrolledWorker is a roster row: the enrollment plus the worker fields the attendance list prints.
type EnrolledWorker struct {
	EnrollmentID   string   `db:"enrollment_id" json:"enrollment_id"`
	WorkerID       string   `db:"worker_id" json:"worker_id"`
	Name           string   `db:"name" json:"name"`
	FathersSurname string   `db:"fathers_surname" json:"fathers_surname"`
	MothersSurname *string  `db:"mother_surname" json:"mother_surname,omitempty"`
	RFC            string   `db:"rfc" json:"rfc"`
	Sex            int16    `db:"sex" json:"sex"`
	FinalGrade     *float64 `db:"final_grade" json:"final_grade,omitempty"`
}

// Worker projects the roster row onto the worker fields it carries.
func (e EnrolledWorker) Worker() Worker {
	return Worker{
		ID:             e.WorkerID,
		Name:           e.Name,
		FathersSurname: e.FathersSurname,
		MothersSurname: e.MothersSurname,
		RFC:            e.RFC,
		Sex:            e.Sex,
	}
}
