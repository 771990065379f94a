package services

import (
	"context"
	"sync"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[u.Username]; ok {
		return apperrors.ErrUsernameTaken
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	stored := *u
	r.users[u.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

type fakeStudentRepo struct {
	students []*models.Student
	offset   int
	limit    int
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) error {
	for _, existing := range r.students {
		if existing.StudentID == s.StudentID {
			return apperrors.ErrStudentIDTaken
		}
	}
	s.ID = int64(len(r.students) + 1)
	r.students = append(r.students, s)
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range r.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) List(_ context.Context, offset, limit int) ([]*models.Student, error) {
	r.offset, r.limit = offset, limit
	if offset >= len(r.students) {
		return []*models.Student{}, nil
	}
	end := offset + limit
	if end > len(r.students) {
		end = len(r.students)
	}
	return r.students[offset:end], nil
}

type fakeGradeRepo struct {
	students *fakeStudentRepo
	grades   []*models.Grade
}

func (r *fakeGradeRepo) Create(ctx context.Context, g *models.Grade) error {
	if _, err := r.students.GetByID(ctx, g.StudentID); err != nil {
		return err
	}
	g.ID = int64(len(r.grades) + 1)
	r.grades = append(r.grades, g)
	return nil
}

func (r *fakeGradeRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Grade, error) {
	out := []*models.Grade{}
	for _, g := range r.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}
