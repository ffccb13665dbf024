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

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code", "description", "head_user_id", "created_at", "updated_at").
		Values(department.Name, department.Code, department.Description, department.HeadUserID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	department.CreatedAt = now
	department.UpdatedAt = now
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "description", "head_user_id", "created_at", "updated_at").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	var d models.Department
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.HeadUserID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &d, nil
}

// List retrieves departments with pagination
func (r *DepartmentRepository) List(ctx context.Context, offset uint64, limit int) ([]models.Department, int64, error) {
	var total int64
	countSql, countArgs, err := r.sb.Select("COUNT(*)").From("departments").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count departments query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}
	if total == 0 {
		return []models.Department{}, 0, nil
	}

	sql, args, err := r.sb.Select("id", "name", "code", "description", "head_user_id", "created_at", "updated_at").
		From("departments").
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.HeadUserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

// ExistsByNameOrCode checks if a department exists by name or code,
// excluding a given id (pass 0 on create)
func (r *DepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Update("departments").
		Set("name", department.Name).
		Set("code", department.Code).
		Set("description", department.Description).
		Set("head_user_id", department.HeadUserID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete deletes a department by ID. Departments still referenced by
// programs, courses or students are protected by foreign keys.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("department has associated data and cannot be deleted")
		}
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Count returns the total number of departments
func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting departments: %w", err)
	}
	return count, nil
}
