package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/dberrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// StudentRepository handles student persistence
type StudentRepository struct {
	DB db.Database
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database db.Database) *StudentRepository {
	return &StudentRepository{
		DB: database,
		sb: db.StatementBuilder(database.Dialect()),
	}
}

func selectStudentQuery(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select("id", "name", "student_id").From("students")
}

func scanStudent(row db.Row) (*models.Student, error) {
	var s models.Student
	if err := row.Scan(&s.ID, &s.Name, &s.StudentID); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student and sets its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "student_id").
		Values(student.Name, student.StudentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		if dberrors.IsDuplicateOn(err, "students", "student_id") {
			return apperrors.ErrStudentIDTaken
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return apperrors.Unavailable(err)
	}

	return nil
}

// GetByID retrieves a student by primary key
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return getStudentByID(ctx, r.DB, selectStudentQuery(r.sb), id)
}

// getStudentByID runs on either the pool or an open transaction
func getStudentByID(ctx context.Context, q db.Querier, query squirrel.SelectBuilder, id int64) (*models.Student, error) {
	sql, args, err := query.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	student, err := scanStudent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("student_id", id).Msg("Error executing get student query")
		return nil, apperrors.Unavailable(err)
	}
	return student, nil
}

// List returns a page of students ordered by id
func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]*models.Student, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid page offset=%d limit=%d", offset, limit)
	}

	sql, args, err := selectStudentQuery(r.sb).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, apperrors.Unavailable(err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, apperrors.Unavailable(err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through student rows")
		return nil, apperrors.Unavailable(err)
	}

	return students, nil
}
