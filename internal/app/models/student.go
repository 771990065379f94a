package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"John Doe"`
	StudentID string `json:"student_id" db:"student_id" example:"STU001"` // External student code, unique
}
