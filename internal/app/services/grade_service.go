package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// GradeService handles grades
type GradeService struct {
	gradeRepo   repositories.IGradeRepository
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	gradeRepo repositories.IGradeRepository,
	studentRepo repositories.IStudentRepository,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// AddGrade attaches a grade to the student with the given primary key
func (s *GradeService) AddGrade(ctx context.Context, studentID int64, req *dto.CreateGradeRequest) (*models.Grade, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" || req.Score == nil {
		return nil, apperrors.NewValidationError("subject and score are required")
	}

	grade := &models.Grade{
		Subject:   subject,
		Score:     *req.Score,
		StudentID: studentID,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("gradeID", grade.ID).Int64("studentID", studentID).Msg("Grade added")
	return grade, nil
}

// ListGrades returns the grades of a student, or ErrStudentNotFound
func (s *GradeService) ListGrades(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.gradeRepo.ListByStudent(ctx, studentID)
}
