package models

import "strings"

// Sex codes stored in workers.sex.
const (
	SexFemale int16 = 0
	SexMale   int16 = 1
)

// Position codes stored in workers.position.
const (
	PositionTeacher        int16 = 0
	PositionDepartmentHead int16 = 1
)

// Worker is a read snapshot of a staff member.
type Worker struct {
	ID             string  `db:"id" json:"id"`
	DepartmentID   string  `db:"department_id" json:"department_id"`
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
	RFC            string  `db:"rfc" json:"rfc"`
	CURP           string  `db:"curp" json:"curp"`
	Sex            int16   `db:"sex" json:"sex"`
	Telephone      *string `db:"telephone" json:"telephone,omitempty"`
	Email          string  `db:"email" json:"email"`
	Name           string  `db:"name" json:"name"`
	FathersSurname string  `db:"fathers_surname" json:"fathers_surname"`
	MothersSurname *string `db:"mother_surname" json:"mother_surname,omitempty"`
	Position       int16   `db:"position" json:"position"`
}

// FullName joins the given name and both surnames, skipping empty parts.
func (w Worker) FullName() string {
	return JoinName(w.Name, w.FathersSurname, deref(w.MothersSurname))
}

// SexLabel returns the long form used on certificates.
func (w Worker) SexLabel() string {
	switch w.Sex {
	case SexFemale:
		return "Femenino"
	case SexMale:
		return "Masculino"
	default:
		return ""
	}
}

// SexInitial returns the one-letter form used in roster tables.
func (w Worker) SexInitial() string {
	switch w.Sex {
	case SexFemale:
		return "F"
	case SexMale:
		return "M"
	default:
		return ""
	}
}

// PositionLabel describes the worker's role.
func (w Worker) PositionLabel() string {
	switch w.Position {
	case PositionTeacher:
		return "Docente"
	case PositionDepartmentHead:
		return "Jefe de Departamento"
	default:
		return ""
	}
}

// JoinName builds a display name from its parts.
func JoinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
