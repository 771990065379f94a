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

// StudentService handles student records
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateStudent stores a new student
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:      strings.TrimSpace(req.Name),
		StudentID: strings.TrimSpace(req.StudentID),
	}
	if student.Name == "" || student.StudentID == "" {
		return nil, apperrors.NewValidationError("name and student_id are required")
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", student.ID).Str("studentID", student.StudentID).Msg("Student created")
	return student, nil
}

// GetStudent returns a student by primary key
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents returns a page of students. A non-positive limit selects the
// default and limits above the maximum are capped.
func (s *StudentService) ListStudents(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	if skip < 0 {
		return nil, apperrors.NewValidationError("skip must not be negative")
	}
	if limit <= 0 {
		limit = dto.DefaultStudentLimit
	}
	if limit > dto.MaxStudentLimit {
		limit = dto.MaxStudentLimit
	}
	return s.studentRepo.List(ctx, skip, limit)
}
