package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/gradebook/internal/app/models"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/auth"
)

// Default development account
const (
	TestUsername = "testuser"
	TestEmail    = "test@example.com"
	TestPassword = "testpass123"
)

type studentSeed struct {
	Name      string
	StudentID string
}

var defaultStudents = []studentSeed{
	{Name: "John Doe", StudentID: "STU001"},
	{Name: "Jane Smith", StudentID: "STU002"},
	{Name: "Bob Johnson", StudentID: "STU003"},
}

var defaultGrades = []appModels.Grade{
	{Subject: "Math", Score: 95.5},
	{Subject: "Science", Score: 88.0},
	{Subject: "History", Score: 92.0},
}

// CreateDefaultData creates the test user and the sample students with their
// grades. Existing rows are left untouched, so it is safe to run on every
// start. Grades are only added to students created by this call.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, hasher *auth.PasswordHasher, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (users/students/grades)...")
	var finalErr error

	if err := createTestUser(ctx, repos.UserRepository, hasher); err != nil {
		lgr.Error().Err(err).Msg("Error creating test user")
		finalErr = errors.Join(finalErr, err)
	}

	for _, s := range defaultStudents {
		student := &appModels.Student{Name: s.Name, StudentID: s.StudentID}
		err := repos.StudentRepository.Create(ctx, student)
		if errors.Is(err, apperrors.ErrStudentIDTaken) {
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("studentID", s.StudentID).Msg("Error creating default student")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, g := range defaultGrades {
			grade := &appModels.Grade{Subject: g.Subject, Score: g.Score, StudentID: student.ID}
			if err := repos.GradeRepository.Create(ctx, grade); err != nil {
				lgr.Error().Err(err).Str("studentID", s.StudentID).Str("subject", g.Subject).Msg("Error creating default grade")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Str("studentID", s.StudentID).Str("name", s.Name).Msg("Created default student with grades")
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed")
	}
	return finalErr
}

func createTestUser(ctx context.Context, users *appRepos.UserRepository, hasher *auth.PasswordHasher) error {
	exists, err := users.UsernameExists(ctx, TestUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := hasher.Hash(TestPassword)
	if err != nil {
		return fmt.Errorf("hashing test user password: %w", err)
	}

	err = users.Create(ctx, &appModels.User{
		Username:       TestUsername,
		Email:          TestEmail,
		HashedPassword: hashed,
		IsActive:       true,
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		return nil
	}
	return err
}
