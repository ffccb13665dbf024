package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgramRepository handles database operations for degree programs
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("programs").
		Columns("department_id", "name", "code", "duration_years", "total_credits", "created_at", "updated_at").
		Values(program.DepartmentID, program.Name, program.Code, program.DurationYears, program.TotalCredits, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create program query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&program.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "programs_code_key") {
			return apperrors.ErrProgramAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating program: %w", err)
	}

	program.CreatedAt = now
	program.UpdatedAt = now
	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select("id", "department_id", "name", "code", "duration_years", "total_credits", "created_at", "updated_at").
		From("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	var p models.Program
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.DepartmentID, &p.Name, &p.Code, &p.DurationYears, &p.TotalCredits, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &p, nil
}

// List retrieves programs, optionally filtered by department
func (r *ProgramRepository) List(ctx context.Context, departmentID *int64, offset uint64, limit int) ([]models.Program, int64, error) {
	where := squirrel.And{}
	if departmentID != nil {
		where = append(where, squirrel.Eq{"department_id": *departmentID})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").From("programs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}
	if total == 0 {
		return []models.Program{}, 0, nil
	}

	sql, args, err := r.sb.Select("id", "department_id", "name", "code", "duration_years", "total_credits", "created_at", "updated_at").
		From("programs").
		Where(where).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Name, &p.Code, &p.DurationYears, &p.TotalCredits, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return programs, total, nil
}

// Update updates an existing program. Code is immutable because it is
// embedded in issued application numbers.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		Set("name", program.Name).
		Set("duration_years", program.DurationYears).
		Set("total_credits", program.TotalCredits).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": program.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// Delete deletes a program by ID
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("program has associated data and cannot be deleted")
		}
		return fmt.Errorf("error deleting program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}
