package repositories

import (
	"context"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, offset, limit int) ([]*models.Student, error)
}

// IGradeRepository defines the interface for grade-related database operations
type IGradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	GradeRepository   *GradeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database db.Database) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(database),
		StudentRepository: NewStudentRepository(database),
		GradeRepository:   NewGradeRepository(database),
	}
}
