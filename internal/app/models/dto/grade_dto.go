package dto

import "github.com/yigit/gradebook/internal/app/models"

// CreateGradeRequest represents a grade to attach to a student. Score is a
// pointer so that an explicit 0 passes the required check.
type CreateGradeRequest struct {
	Subject string   `json:"subject" binding:"required,max=100"`
	Score   *float64 `json:"score" binding:"required"`
}

// GradeResponse represents a grade
type GradeResponse struct {
	ID        int64   `json:"id" example:"1"`
	Subject   string  `json:"subject" example:"Math"`
	Score     float64 `json:"score" example:"95.5"`
	StudentID int64   `json:"student_id" example:"1"`
}

// NewGradeResponse converts a grade model
func NewGradeResponse(grade *models.Grade) GradeResponse {
	return GradeResponse{
		ID:        grade.ID,
		Subject:   grade.Subject,
		Score:     grade.Score,
		StudentID: grade.StudentID,
	}
}

// NewGradeListResponse converts a slice of grades
func NewGradeListResponse(grades []*models.Grade) []GradeResponse {
	out := make([]GradeResponse, 0, len(grades))
	for _, g := range grades {
		out = append(out, NewGradeResponse(g))
	}
	return out
}
