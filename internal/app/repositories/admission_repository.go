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

var admissionColumns = []string{
	"a.id", "a.application_number", "a.program_id", "a.first_name", "a.last_name",
	"a.email", "a.phone", "a.date_of_birth", "a.address", "a.previous_school",
	"a.previous_gpa", "a.status", "a.remarks", "a.applied_at", "a.updated_at",
}

// AdmissionRepository handles admission application database operations
type AdmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdmissionRepository creates a new AdmissionRepository
func NewAdmissionRepository(db *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAdmission(row pgx.Row) (*models.Admission, error) {
	var a models.Admission
	err := row.Scan(
		&a.ID, &a.ApplicationNumber, &a.ProgramID, &a.FirstName, &a.LastName,
		&a.Email, &a.Phone, &a.DateOfBirth, &a.Address, &a.PreviousSchool,
		&a.PreviousGPA, &a.Status, &a.Remarks, &a.AppliedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new application with its first status history entry,
// all within the given transaction
func (r *AdmissionRepository) Create(ctx context.Context, tx pgx.Tx, admission *models.Admission) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("admissions").
		Columns("application_number", "program_id", "first_name", "last_name",
			"email", "phone", "date_of_birth", "address", "previous_school",
			"previous_gpa", "status", "remarks", "applied_at", "updated_at").
		Values(admission.ApplicationNumber, admission.ProgramID, admission.FirstName,
			admission.LastName, strings.ToLower(admission.Email), admission.Phone,
			admission.DateOfBirth, admission.Address, admission.PreviousSchool,
			admission.PreviousGPA, models.AdmissionPending, nil, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admission query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&admission.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("an application with this number already exists")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating admission: %w", err)
	}

	admission.Status = models.AdmissionPending
	admission.AppliedAt = now
	admission.UpdatedAt = now

	return r.AppendStatusEvent(ctx, tx, &models.AdmissionStatusEvent{
		AdmissionID: admission.ID,
		Status:      models.AdmissionPending,
		ChangedAt:   now,
	})
}

// GetByID retrieves an application by ID
func (r *AdmissionRepository) GetByID(ctx context.Context, id int64) (*models.Admission, error) {
	sql, args, err := r.sb.Select(admissionColumns...).
		From("admissions a").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admission query: %w", err)
	}

	admission, err := scanAdmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving admission: %w", err)
	}
	return admission, nil
}

// GetByApplicationNumber retrieves an application by its public number
func (r *AdmissionRepository) GetByApplicationNumber(ctx context.Context, number string) (*models.Admission, error) {
	sql, args, err := r.sb.Select(admissionColumns...).
		From("admissions a").
		Where(squirrel.Eq{"a.application_number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admission by number query: %w", err)
	}

	admission, err := scanAdmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving admission by number: %w", err)
	}
	return admission, nil
}

// AdmissionFilters narrows an application listing
type AdmissionFilters struct {
	ProgramID *int64
	Status    *models.AdmissionStatus
	Search    string
}

// List retrieves applications filtered and paginated
func (r *AdmissionRepository) List(ctx context.Context, filters AdmissionFilters, offset uint64, limit int) ([]models.Admission, int64, error) {
	where := squirrel.And{}
	if filters.ProgramID != nil {
		where = append(where, squirrel.Eq{"a.program_id": *filters.ProgramID})
	}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"a.status": *filters.Status})
	}
	if filters.Search != "" {
		pattern := "%" + strings.TrimSpace(filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"a.application_number": pattern},
			squirrel.Expr("a.first_name || ' ' || a.last_name ILIKE ?", pattern),
			squirrel.ILike{"a.email": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("admissions a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count admissions query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count admissions: %w", err)
	}
	if total == 0 {
		return []models.Admission{}, 0, nil
	}

	sql, args, err := r.sb.Select(admissionColumns...).
		From("admissions a").
		Where(where).
		OrderBy("a.applied_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list admissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query admissions: %w", err)
	}
	defer rows.Close()

	var admissions []models.Admission
	for rows.Next() {
		var a models.Admission
		if err := rows.Scan(
			&a.ID, &a.ApplicationNumber, &a.ProgramID, &a.FirstName, &a.LastName,
			&a.Email, &a.Phone, &a.DateOfBirth, &a.Address, &a.PreviousSchool,
			&a.PreviousGPA, &a.Status, &a.Remarks, &a.AppliedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan admission row: %w", err)
		}
		admissions = append(admissions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return admissions, total, nil
}

// NextSequenceForYear returns the next application sequence for a program
// and calendar year
func (r *AdmissionRepository) NextSequenceForYear(ctx context.Context, programID int64, year int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM admissions
		WHERE program_id = $1 AND EXTRACT(YEAR FROM applied_at) = $2
	`, programID, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting admission sequence: %w", err)
	}
	return count + 1, nil
}

// UpdateStatus moves the application to a new status and appends the
// history event in the same transaction
func (r *AdmissionRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, admissionID int64, status models.AdmissionStatus, remarks *string, changedBy int64) error {
	sql, args, err := r.sb.Update("admissions").
		Set("status", status).
		Set("remarks", remarks).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": admissionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update admission status query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating admission status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionNotFound
	}

	return r.AppendStatusEvent(ctx, tx, &models.AdmissionStatusEvent{
		AdmissionID: admissionID,
		Status:      status,
		Remarks:     remarks,
		ChangedBy:   &changedBy,
		ChangedAt:   time.Now(),
	})
}

// AppendStatusEvent writes one append-only history entry
func (r *AdmissionRepository) AppendStatusEvent(ctx context.Context, tx pgx.Tx, event *models.AdmissionStatusEvent) error {
	sql, args, err := r.sb.Insert("admission_status_events").
		Columns("admission_id", "status", "remarks", "changed_by", "changed_at").
		Values(event.AdmissionID, event.Status, event.Remarks, event.ChangedBy, event.ChangedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status event query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&event.ID); err != nil {
		return fmt.Errorf("error appending status event: %w", err)
	}
	return nil
}

// ListStatusEvents retrieves an application's status history oldest first
func (r *AdmissionRepository) ListStatusEvents(ctx context.Context, admissionID int64) ([]models.AdmissionStatusEvent, error) {
	sql, args, err := r.sb.Select("id", "admission_id", "status", "remarks", "changed_by", "changed_at").
		From("admission_status_events").
		Where(squirrel.Eq{"admission_id": admissionID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build status events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query status events: %w", err)
	}
	defer rows.Close()

	var events []models.AdmissionStatusEvent
	for rows.Next() {
		var e models.AdmissionStatusEvent
		if err := rows.Scan(&e.ID, &e.AdmissionID, &e.Status, &e.Remarks, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// AddDocument attaches an uploaded file to an application
func (r *AdmissionRepository) AddDocument(ctx context.Context, doc *models.AdmissionDocument) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("admission_documents").
		Columns("admission_id", "doc_type", "file_name", "file_path", "file_size", "mime_type", "is_verified", "uploaded_at").
		Values(doc.AdmissionID, doc.DocType, doc.FileName, doc.FilePath, doc.FileSize, doc.MimeType, false, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add document query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAdmissionNotFound
		}
		return fmt.Errorf("error adding admission document: %w", err)
	}

	doc.UploadedAt = now
	return nil
}

// GetDocumentByID retrieves a document by ID
func (r *AdmissionRepository) GetDocumentByID(ctx context.Context, id int64) (*models.AdmissionDocument, error) {
	sql, args, err := r.sb.Select("id", "admission_id", "doc_type", "file_name", "file_path", "file_size", "mime_type", "is_verified", "verified_by", "uploaded_at").
		From("admission_documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	var d models.AdmissionDocument
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.AdmissionID, &d.DocType, &d.FileName, &d.FilePath, &d.FileSize, &d.MimeType, &d.IsVerified, &d.VerifiedBy, &d.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionDocumentNotFound
		}
		return nil, fmt.Errorf("error retrieving admission document: %w", err)
	}
	return &d, nil
}

// ListDocuments retrieves all documents attached to an application
func (r *AdmissionRepository) ListDocuments(ctx context.Context, admissionID int64) ([]models.AdmissionDocument, error) {
	sql, args, err := r.sb.Select("id", "admission_id", "doc_type", "file_name", "file_path", "file_size", "mime_type", "is_verified", "verified_by", "uploaded_at").
		From("admission_documents").
		Where(squirrel.Eq{"admission_id": admissionID}).
		OrderBy("uploaded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query admission documents: %w", err)
	}
	defer rows.Close()

	var docs []models.AdmissionDocument
	for rows.Next() {
		var d models.AdmissionDocument
		if err := rows.Scan(&d.ID, &d.AdmissionID, &d.DocType, &d.FileName, &d.FilePath, &d.FileSize, &d.MimeType, &d.IsVerified, &d.VerifiedBy, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// VerifyDocument marks a document as checked by an administrator
func (r *AdmissionRepository) VerifyDocument(ctx context.Context, id, verifiedBy int64) error {
	sql, args, err := r.sb.Update("admission_documents").
		Set("is_verified", true).
		Set("verified_by", verifiedBy).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build verify document query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error verifying admission document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionDocumentNotFound
	}
	return nil
}

// DeleteDocument removes a document record
func (r *AdmissionRepository) DeleteDocument(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("admission_documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete document query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting admission document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionDocumentNotFound
	}
	return nil
}
