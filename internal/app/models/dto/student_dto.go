package dto

import "github.com/yigit/gradebook/internal/app/models"

// Student list paging defaults
const (
	DefaultStudentLimit = 100
	MaxStudentLimit     = 100
)

// CreateStudentRequest represents a new student record
type CreateStudentRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	StudentID string `json:"student_id" binding:"required,max=50"`
}

// StudentResponse represents a student record
type StudentResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"John Doe"`
	StudentID string `json:"student_id" example:"STU001"`
}

// NewStudentResponse converts a student model
func NewStudentResponse(student *models.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		StudentID: student.StudentID,
	}
}

// NewStudentListResponse converts a slice of students. Never returns nil so
// an empty page serializes as [].
func NewStudentListResponse(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
