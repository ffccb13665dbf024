package services

import (
	"errors"
	"testing"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func TestCounterDeltas(t *testing.T) {
	tests := []struct {
		status       models.AttendanceStatus
		wantAttended int
		wantMissed   int
	}{
		{models.AttendancePresent, 1, 0},
		{models.AttendanceLate, 1, 0},
		{models.AttendanceAbsent, 0, 1},
		{models.AttendanceExcused, 0, 0},
	}

	for _, tt := range tests {
		attended, missed := counterDeltas(tt.status)
		if attended != tt.wantAttended || missed != tt.wantMissed {
			t.Errorf("counterDeltas(%s) = (%d, %d), want (%d, %d)",
				tt.status, attended, missed, tt.wantAttended, tt.wantMissed)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []models.AdmissionStatus{models.AdmissionApproved, models.AdmissionRejected}
	for _, status := range terminal {
		if !isTerminalStatus(status) {
			t.Errorf("%s should be terminal", status)
		}
	}

	open := []models.AdmissionStatus{models.AdmissionPending, models.AdmissionUnderReview, models.AdmissionWaitlisted}
	for _, status := range open {
		if isTerminalStatus(status) {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestIsValidCode(t *testing.T) {
	valid := []string{"CS", "CSE101", "BBA", "ME2024"}
	for _, code := range valid {
		if !isValidCode(code) {
			t.Errorf("isValidCode(%q) = false, want true", code)
		}
	}

	invalid := []string{"", "cs", "CS-101", "CS 101", "CSÉ"}
	for _, code := range invalid {
		if isValidCode(code) {
			t.Errorf("isValidCode(%q) = true, want false", code)
		}
	}
}

func TestValidateExamMarks(t *testing.T) {
	passing := func(v float64) *float64 { return &v }

	if err := validateExamMarks(100, passing(40)); err != nil {
		t.Errorf("valid marks rejected: %v", err)
	}
	if err := validateExamMarks(100, nil); err != nil {
		t.Errorf("nil passing marks rejected: %v", err)
	}
	if err := validateExamMarks(0, nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("zero total should fail validation, got %v", err)
	}
	if err := validateExamMarks(100, passing(150)); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("passing above total should fail validation, got %v", err)
	}
	if err := validateExamMarks(100, passing(0)); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("zero passing marks should fail validation, got %v", err)
	}
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := error(&ConflictError{Conflicts: []dto.ConflictDetail{{Reason: "room 101 is occupied"}}})

	if !errors.Is(err, apperrors.ErrScheduleConflict) {
		t.Error("ConflictError should match ErrScheduleConflict")
	}

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatal("errors.As should recover the ConflictError")
	}
	if len(conflictErr.Conflicts) != 1 {
		t.Errorf("expected 1 conflict detail, got %d", len(conflictErr.Conflicts))
	}
}
