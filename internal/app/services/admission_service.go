package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/email"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// AdmissionService handles the application lifecycle from submission to
// decision. Applications are submitted publicly; review is staff-only.
type AdmissionService struct {
	db            *db.PostgresDB
	admissionRepo *repositories.AdmissionRepository
	programRepo   *repositories.ProgramRepository
	fileStorage   filestorage.FileStorage
	emailService  email.EmailService
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(database *db.PostgresDB, admissionRepo *repositories.AdmissionRepository, programRepo *repositories.ProgramRepository, fileStorage filestorage.FileStorage, emailService email.EmailService) *AdmissionService {
	return &AdmissionService{
		db:            database,
		admissionRepo: admissionRepo,
		programRepo:   programRepo,
		fileStorage:   fileStorage,
		emailService:  emailService,
	}
}

// terminal statuses accept no further transitions
func isTerminalStatus(status models.AdmissionStatus) bool {
	return status == models.AdmissionApproved || status == models.AdmissionRejected
}

// Apply submits a new application. The application number is the
// two-digit year, the program code and a four-digit per-year sequence.
func (s *AdmissionService) Apply(ctx context.Context, req *dto.CreateAdmissionRequest) (*models.Admission, error) {
	if time.Since(req.DateOfBirth) < 10*365*24*time.Hour {
		return nil, fmt.Errorf("%w: applicant date of birth is implausible", apperrors.ErrValidationFailed)
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := s.admissionRepo.NextSequenceForYear(ctx, program.ID, year)
	if err != nil {
		return nil, err
	}

	admission := &models.Admission{
		ApplicationNumber: fmt.Sprintf("%02d%s%04d", year%100, program.Code, seq),
		ProgramID:         req.ProgramID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		DateOfBirth:       req.DateOfBirth,
		Address:           req.Address,
		PreviousSchool:    req.PreviousSchool,
		PreviousGPA:       req.PreviousGPA,
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.admissionRepo.Create(ctx, tx, admission)
	})
	if err != nil {
		return nil, err
	}

	name := admission.FirstName + " " + admission.LastName
	if err := s.emailService.SendAdmissionStatusEmail(admission.Email, name, admission.ApplicationNumber, string(admission.Status)); err != nil {
		logger.Warn().Err(err).Str("applicationNumber", admission.ApplicationNumber).Msg("Failed to send application receipt email")
	}

	return admission, nil
}

// GetByID retrieves an application with documents and status history
func (s *AdmissionService) GetByID(ctx context.Context, id int64) (*models.Admission, error) {
	admission, err := s.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admission.Documents, err = s.admissionRepo.ListDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	admission.StatusHistory, err = s.admissionRepo.ListStatusEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	return admission, nil
}

// GetByApplicationNumber retrieves an application by its public number.
// Used by applicants to check their status without an account.
func (s *AdmissionService) GetByApplicationNumber(ctx context.Context, number string) (*models.Admission, error) {
	admission, err := s.admissionRepo.GetByApplicationNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	admission.StatusHistory, err = s.admissionRepo.ListStatusEvents(ctx, admission.ID)
	if err != nil {
		return nil, err
	}
	return admission, nil
}

// List retrieves applications filtered and paginated
func (s *AdmissionService) List(ctx context.Context, filters repositories.AdmissionFilters, offset uint64, limit int) ([]models.Admission, int64, error) {
	return s.admissionRepo.List(ctx, filters, offset, limit)
}

// UpdateStatus moves an application through review. Approved and
// rejected applications are final.
func (s *AdmissionService) UpdateStatus(ctx context.Context, admissionID int64, req *dto.UpdateAdmissionStatusRequest, changedBy int64) (*models.Admission, error) {
	if !models.ValidAdmissionStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidStatusTransition, req.Status)
	}

	admission, err := s.admissionRepo.GetByID(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	if isTerminalStatus(admission.Status) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("application is already %s and cannot change", admission.Status))
	}
	if admission.Status == req.Status {
		return nil, apperrors.NewConflictError("application is already in this status")
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.admissionRepo.UpdateStatus(ctx, tx, admissionID, req.Status, req.Remarks, changedBy)
	})
	if err != nil {
		return nil, err
	}

	admission.Status = req.Status
	admission.Remarks = req.Remarks

	name := admission.FirstName + " " + admission.LastName
	if err := s.emailService.SendAdmissionStatusEmail(admission.Email, name, admission.ApplicationNumber, string(req.Status)); err != nil {
		logger.Warn().Err(err).Str("applicationNumber", admission.ApplicationNumber).Msg("Failed to send status update email")
	}

	return admission, nil
}

// UploadDocument stores a file and attaches it to an application
func (s *AdmissionService) UploadDocument(ctx context.Context, admissionID int64, docType string, fileHeader *multipart.FileHeader) (*models.AdmissionDocument, error) {
	admission, err := s.admissionRepo.GetByID(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	if isTerminalStatus(admission.Status) {
		return nil, apperrors.NewConflictError("documents cannot be added to a decided application")
	}

	path, err := s.fileStorage.SaveFileWithPath(fileHeader, "admissions")
	if err != nil {
		return nil, fmt.Errorf("error storing document: %w", err)
	}

	doc := &models.AdmissionDocument{
		AdmissionID: admissionID,
		DocType:     docType,
		FileName:    fileHeader.Filename,
		FilePath:    path,
		FileSize:    fileHeader.Size,
		MimeType:    fileHeader.Header.Get("Content-Type"),
	}
	if err := s.admissionRepo.AddDocument(ctx, doc); err != nil {
		if derr := s.fileStorage.DeleteFile(path); derr != nil {
			logger.Warn().Err(derr).Str("path", path).Msg("Failed to remove orphaned document file")
		}
		return nil, err
	}
	return doc, nil
}

// GetDocument retrieves a document record
func (s *AdmissionService) GetDocument(ctx context.Context, documentID int64) (*models.AdmissionDocument, error) {
	return s.admissionRepo.GetDocumentByID(ctx, documentID)
}

// DeleteDocument removes a document and its stored file
// VerifyDocument marks an uploaded document as checked by the reviewer
func (s *AdmissionService) VerifyDocument(ctx context.Context, admissionID, documentID, verifiedBy int64) (*models.AdmissionDocument, error) {
	doc, err := s.admissionRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.AdmissionID != admissionID {
		return nil, apperrors.ErrAdmissionDocumentNotFound
	}
	if err := s.admissionRepo.VerifyDocument(ctx, documentID, verifiedBy); err != nil {
		return nil, err
	}
	return s.admissionRepo.GetDocumentByID(ctx, documentID)
}

func (s *AdmissionService) DeleteDocument(ctx context.Context, documentID int64) error {
	doc, err := s.admissionRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.admissionRepo.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.fileStorage.DeleteFile(doc.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", doc.FilePath).Msg("Failed to remove document file")
	}
	return nil
}
