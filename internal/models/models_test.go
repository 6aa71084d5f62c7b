package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerFullNameSkipsMissingSurname(t *testing.T) {
	second := "López"
	require.Equal(t, "Ana Pérez López", Worker{Name: "Ana", FathersSurname: "Pérez", MothersSurname: &second}.FullName())
	require.Equal(t, "Luis Gómez", Worker{Name: "Luis ", FathersSurname: "Gómez"}.FullName())
}

func TestWorkerLabels(t *testing.T) {
	w := Worker{Sex: SexMale, Position: PositionDepartmentHead}
	require.Equal(t, "Masculino", w.SexLabel())
	require.Equal(t, "M", w.SexInitial())
	require.Equal(t, "Jefe de Departamento", w.PositionLabel())
	require.Empty(t, Worker{Sex: 7, Position: 9}.SexInitial())
}

func TestCourseFormatting(t *testing.T) {
	c := Course{
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00:00",
		EndTime:   "13:30",
	}
	require.Equal(t, "2025-06-02 - 2025-06-06", c.Period())
	require.Equal(t, "09:00 - 13:30", c.Schedule())
	require.Empty(t, Course{}.Period())
	require.Empty(t, Course{StartTime: "09:00"}.Schedule())
	require.Equal(t, "Taller", CourseTypeWorkshop.Label())
	require.Equal(t, "Virtual", ModalityVirtual.Label())
	require.Equal(t, "Actualización Docente", ProfileTeacherUpdate.Label())
}

func TestSurveyKindIDs(t *testing.T) {
	for _, kind := range SurveyKinds() {
		id, ok := kind.SurveyID()
		require.True(t, ok)
		require.NotEmpty(t, id)
	}
	_, ok := SurveyKind("exit").SurveyID()
	require.False(t, ok)
}
