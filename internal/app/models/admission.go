package models

import "time"

// AdmissionStatus is the review state of an application
type AdmissionStatus string

const (
	AdmissionPending     AdmissionStatus = "PENDING"
	AdmissionUnderReview AdmissionStatus = "UNDER_REVIEW"
	AdmissionApproved    AdmissionStatus = "APPROVED"
	AdmissionRejected    AdmissionStatus = "REJECTED"
	AdmissionWaitlisted  AdmissionStatus = "WAITLISTED"
)

// ValidAdmissionStatus reports whether the value is a known status
func ValidAdmissionStatus(s AdmissionStatus) bool {
	switch s {
	case AdmissionPending, AdmissionUnderReview, AdmissionApproved, AdmissionRejected, AdmissionWaitlisted:
		return true
	}
	return false
}

// Admission represents one application to a program. ApplicationNumber is
// generated as YY + program code + a 4-digit per-year sequence and never
// changes after creation.
type Admission struct {
	ID                int64           `json:"id" db:"id"`
	ApplicationNumber string          `json:"applicationNumber" db:"application_number"`
	ProgramID         int64           `json:"programId" db:"program_id"`
	FirstName         string          `json:"firstName" db:"first_name"`
	LastName          string          `json:"lastName" db:"last_name"`
	Email             string          `json:"email" db:"email"`
	Phone             string          `json:"phone" db:"phone"`
	DateOfBirth       time.Time       `json:"dateOfBirth" db:"date_of_birth"`
	Address           *string         `json:"address,omitempty" db:"address"`
	PreviousSchool    *string         `json:"previousSchool,omitempty" db:"previous_school"`
	PreviousGPA       *float64        `json:"previousGpa,omitempty" db:"previous_gpa"`
	Status            AdmissionStatus `json:"status" db:"status"`
	Remarks           *string         `json:"remarks,omitempty" db:"remarks"`
	AppliedAt         time.Time       `json:"appliedAt" db:"applied_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`

	Program       *Program               `json:"program,omitempty"`
	Documents     []AdmissionDocument    `json:"documents,omitempty"`
	StatusHistory []AdmissionStatusEvent `json:"statusHistory,omitempty"`
}

// AdmissionDocument is an uploaded file attached to an application
type AdmissionDocument struct {
	ID          int64     `json:"id" db:"id"`
	AdmissionID int64     `json:"admissionId" db:"admission_id"`
	DocType     string    `json:"docType" db:"doc_type"`
	FileName    string    `json:"fileName" db:"file_name"`
	FilePath    string    `json:"filePath" db:"file_path"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	MimeType    string    `json:"mimeType" db:"mime_type"`
	IsVerified  bool      `json:"isVerified" db:"is_verified"`
	VerifiedBy  *int64    `json:"verifiedBy,omitempty" db:"verified_by"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// AdmissionStatusEvent is one append-only entry in an application's status
// history
type AdmissionStatusEvent struct {
	ID          int64           `json:"id" db:"id"`
	AdmissionID int64           `json:"admissionId" db:"admission_id"`
	Status      AdmissionStatus `json:"status" db:"status"`
	Remarks     *string         `json:"remarks,omitempty" db:"remarks"`
	ChangedBy   *int64          `json:"changedBy,omitempty" db:"changed_by"`
	ChangedAt   time.Time       `json:"changedAt" db:"changed_at"`
}
