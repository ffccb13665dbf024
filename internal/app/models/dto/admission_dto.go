package dto

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
)

// CreateAdmissionRequest represents a new application. Submitted without
// authentication by prospective students.
type CreateAdmissionRequest struct {
	ProgramID      int64     `json:"programId" binding:"required,min=1"`
	FirstName      string    `json:"firstName" binding:"required,min=2,max=100"`
	LastName       string    `json:"lastName" binding:"required,min=2,max=100"`
	Email          string    `json:"email" binding:"required,email"`
	Phone          string    `json:"phone" binding:"required,min=5,max=20"`
	DateOfBirth    time.Time `json:"dateOfBirth" binding:"required"`
	Address        *string   `json:"address,omitempty"`
	PreviousSchool *string   `json:"previousSchool,omitempty"`
	PreviousGPA    *float64  `json:"previousGpa,omitempty" binding:"omitempty,min=0,max=4"`
}

// UpdateAdmissionStatusRequest moves an application to a new status
type UpdateAdmissionStatusRequest struct {
	Status  models.AdmissionStatus `json:"status" binding:"required,oneof=PENDING UNDER_REVIEW APPROVED REJECTED WAITLISTED"`
	Remarks *string                `json:"remarks,omitempty"`
}

// AdmissionResponse represents one application
type AdmissionResponse struct {
	ID                int64                          `json:"id"`
	ApplicationNumber string                         `json:"applicationNumber"`
	ProgramID         int64                          `json:"programId"`
	ProgramName       string                         `json:"programName,omitempty"`
	FirstName         string                         `json:"firstName"`
	LastName          string                         `json:"lastName"`
	Email             string                         `json:"email"`
	Phone             string                         `json:"phone"`
	DateOfBirth       time.Time                      `json:"dateOfBirth"`
	Address           *string                        `json:"address,omitempty"`
	PreviousSchool    *string                        `json:"previousSchool,omitempty"`
	PreviousGPA       *float64                       `json:"previousGpa,omitempty"`
	Status            string                         `json:"status"`
	Remarks           *string                        `json:"remarks,omitempty"`
	AppliedAt         time.Time                      `json:"appliedAt"`
	Documents         []AdmissionDocumentResponse    `json:"documents,omitempty"`
	StatusHistory     []AdmissionStatusEventResponse `json:"statusHistory,omitempty"`
}

// AdmissionDocumentResponse represents an uploaded document
type AdmissionDocumentResponse struct {
	ID         int64     `json:"id"`
	DocType    string    `json:"docType"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	IsVerified bool      `json:"isVerified"`
	VerifiedBy *int64    `json:"verifiedBy,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AdmissionStatusEventResponse represents one status history entry
type AdmissionStatusEventResponse struct {
	Status    string    `json:"status"`
	Remarks   *string   `json:"remarks,omitempty"`
	ChangedBy *int64    `json:"changedBy,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

// AdmissionListResponse represents a paginated list of applications
type AdmissionListResponse struct {
	Admissions []AdmissionResponse `json:"admissions"`
	Pagination PaginationInfo      `json:"pagination"`
}
