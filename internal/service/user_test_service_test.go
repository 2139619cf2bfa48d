package service

import (
	"context"
	"testing"

	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTestService_ListTestsByRole(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	open := seedQuiz(t, db, true, nil)
	seedQuiz(t, db, false, nil)
	classSix := seedQuiz(t, db, true, intPtr(6))
	svc := NewUserTestService(repository.NewTestRepository(db))

	ids := func(items []dto.TestSummaryDTO) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	student, err := svc.ListTests(ctx, dto.Caller{UserID: "s1", Role: dto.RoleStudent, Class: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, []string{open.ID}, ids(student))
	assert.Equal(t, 4, student[0].QuestionCount)
	assert.Equal(t, 4, student[0].TotalMarks)

	sixth, err := svc.ListTests(ctx, dto.Caller{UserID: "s2", Role: dto.RoleStudent, Class: intPtr(6)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{open.ID, classSix.ID}, ids(sixth))

	teacher, err := svc.ListTests(ctx, dto.Caller{UserID: "teacher-1", Role: dto.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, teacher, 3)

	other, err := svc.ListTests(ctx, dto.Caller{UserID: "teacher-2", Role: dto.RoleTeacher})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUserTestService_GetTestDetails(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	open := seedQuiz(t, db, true, nil)
	inactive := seedQuiz(t, db, false, nil)
	classSix := seedQuiz(t, db, true, intPtr(6))
	svc := NewUserTestService(repository.NewTestRepository(db))

	studentCaller := dto.Caller{UserID: "s1", Role: dto.RoleStudent, Class: intPtr(5)}

	got, err := svc.GetTestDetails(ctx, studentCaller, open.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 4)
	for _, q := range got.Questions {
		assert.Nil(t, q.CorrectOptionIndex)
		assert.Nil(t, q.ExpectedAnswer)
	}

	_, err = svc.GetTestDetails(ctx, studentCaller, inactive.ID)
	assert.ErrorIs(t, err, ErrTestInactive)

	_, err = svc.GetTestDetails(ctx, studentCaller, classSix.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	staff, err := svc.GetTestDetails(ctx, dto.Caller{UserID: "teacher-1", Role: dto.RoleTeacher}, inactive.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris", *staff.Questions[3].ExpectedAnswer)
}
