package models

// Grade defines the grade model based on the 'grades' table
type Grade struct {
	ID        int64   `json:"id" db:"id" example:"1"`
	Subject   string  `json:"subject" db:"subject" example:"Math"`
	Score     float64 `json:"score" db:"score" example:"95.5"`
	StudentID int64   `json:"student_id" db:"student_id" example:"1"` // References students.id
}
