package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var facultyColumns = []string{
	"f.id", "f.user_id", "f.faculty_id", "f.department_id",
	"f.designation", "f.qualification", "f.joining_date",
	"f.created_at", "f.updated_at",
}

// FacultyRepository handles faculty profile database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanFaculty(row pgx.Row) (*models.FacultyProfile, error) {
	var f models.FacultyProfile
	err := row.Scan(
		&f.ID, &f.UserID, &f.FacultyID, &f.DepartmentID,
		&f.Designation, &f.Qualification, &f.JoiningDate,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new faculty profile within the given transaction
func (r *FacultyRepository) Create(ctx context.Context, tx pgx.Tx, profile *models.FacultyProfile) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("faculty_profiles").
		Columns("user_id", "faculty_id", "department_id", "designation",
			"qualification", "joining_date", "created_at", "updated_at").
		Values(profile.UserID, profile.FacultyID, profile.DepartmentID, profile.Designation,
			profile.Qualification, profile.JoiningDate, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_profiles_faculty_id_key") {
			return apperrors.ErrFacultyIDAlreadyExists
		}
		return fmt.Errorf("error creating faculty profile: %w", err)
	}

	profile.CreatedAt = now
	profile.UpdatedAt = now
	return nil
}

// GetByID retrieves a faculty profile by record ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.FacultyProfile, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty_profiles f").
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	profile, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty profile: %w", err)
	}
	return profile, nil
}

// GetByUserID retrieves a faculty profile by owning user
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty_profiles f").
		Where(squirrel.Eq{"f.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty by user query: %w", err)
	}

	profile, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty profile by user: %w", err)
	}
	return profile, nil
}

// List retrieves faculty profiles with user names, filtered and paginated
func (r *FacultyRepository) List(ctx context.Context, departmentID *int64, search string, offset uint64, limit int) ([]models.FacultyProfile, int64, error) {
	where := squirrel.And{}
	if departmentID != nil {
		where = append(where, squirrel.Eq{"f.department_id": *departmentID})
	}
	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"f.faculty_id": pattern},
			squirrel.Expr("u.first_name || ' ' || u.last_name ILIKE ?", pattern),
			squirrel.ILike{"u.email": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("faculty_profiles f").
		Join("users u ON f.user_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count faculty query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count faculty profiles: %w", err)
	}
	if total == 0 {
		return []models.FacultyProfile{}, 0, nil
	}

	cols := append([]string{}, facultyColumns...)
	cols = append(cols, "u.email", "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("faculty_profiles f").
		Join("users u ON f.user_id = u.id").
		Where(where).
		OrderBy("f.faculty_id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query faculty profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.FacultyProfile
	for rows.Next() {
		var f models.FacultyProfile
		var email, firstName, lastName string
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.FacultyID, &f.DepartmentID,
			&f.Designation, &f.Qualification, &f.JoiningDate,
			&f.CreatedAt, &f.UpdatedAt,
			&email, &firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan faculty row: %w", err)
		}
		f.User = &models.User{ID: f.UserID, Email: email, FirstName: firstName, LastName: lastName}
		profiles = append(profiles, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// Update applies the editable faculty profile fields
func (r *FacultyRepository) Update(ctx context.Context, profile *models.FacultyProfile) error {
	sql, args, err := r.sb.Update("faculty_profiles").
		Set("department_id", profile.DepartmentID).
		Set("designation", profile.Designation).
		Set("qualification", profile.Qualification).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating faculty profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// NextFacultySequence returns the next per-department faculty number sequence
func (r *FacultyRepository) NextFacultySequence(ctx context.Context, departmentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM faculty_profiles WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting faculty sequence: %w", err)
	}
	return count + 1, nil
}

// Count returns the total number of faculty profiles
func (r *FacultyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM faculty_profiles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting faculty profiles: %w", err)
	}
	return count, nil
}
