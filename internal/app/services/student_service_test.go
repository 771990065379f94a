package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

func TestStudentService_CreateAndGet(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, zerolog.Nop())
	ctx := context.Background()

	s, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{Name: " Sam ", StudentID: "STU100"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", s.Name)

	got, err := svc.GetStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = svc.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Other", StudentID: "STU100"})
	assert.ErrorIs(t, err, apperrors.ErrStudentIDTaken)

	_, err = svc.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "", StudentID: "STU101"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentService_ListClampsLimit(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := NewStudentService(repo, zerolog.Nop())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "S", StudentID: fmt.Sprintf("ID%d", i)})
		require.NoError(t, err)
	}

	_, err := svc.ListStudents(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, dto.MaxStudentLimit, repo.limit)

	_, err = svc.ListStudents(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultStudentLimit, repo.limit)
	assert.Equal(t, 1, repo.offset)

	_, err = svc.ListStudents(ctx, -1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
