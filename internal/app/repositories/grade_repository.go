package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/dberrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// GradeRepository handles grade persistence
type GradeRepository struct {
	DB db.Database
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(database db.Database) *GradeRepository {
	return &GradeRepository{
		DB: database,
		sb: db.StatementBuilder(database.Dialect()),
	}
}

// Create inserts a grade for an existing student. The existence check and
// the insert share a transaction; the foreign key catches a student removed
// in between.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.DB.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		if _, err := getStudentByID(ctx, q, selectStudentQuery(r.sb), grade.StudentID); err != nil {
			return err
		}

		sql, args, err := r.sb.Insert("grades").
			Columns("subject", "score", "student_id").
			Values(grade.Subject, grade.Score, grade.StudentID).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create grade SQL")
			return err
		}

		if err := q.QueryRow(ctx, sql, args...).Scan(&grade.ID); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			logger.Error().Err(err).Int64("student_id", grade.StudentID).Msg("Error executing create grade query")
			return apperrors.Unavailable(err)
		}
		return nil
	})
}

// ListByStudent returns the grades of a student in insertion order
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select("id", "subject", "score", "student_id").
		From("grades").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list grades SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list grades query")
		return nil, apperrors.Unavailable(err)
	}
	defer rows.Close()

	grades := make([]*models.Grade, 0)
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.Subject, &g.Score, &g.StudentID); err != nil {
			return nil, apperrors.Unavailable(err)
		}
		grades = append(grades, &g)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through grade rows")
		return nil, apperrors.Unavailable(err)
	}

	return grades, nil
}
