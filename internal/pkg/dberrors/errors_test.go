package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_enrollments_student_course"}

	if !IsDuplicateConstraintError(dup, "uq_enrollments_student_course") {
		t.Error("should match the violated constraint")
	}
	if IsDuplicateConstraintError(dup, "users_email_key") {
		t.Error("should not match a different constraint")
	}

	// repositories wrap before bubbling up
	wrapped := fmt.Errorf("error creating enrollment: %w", dup)
	if !IsDuplicateConstraintError(wrapped, "uq_enrollments_student_course") {
		t.Error("should match through wrapping")
	}

	if IsDuplicateConstraintError(errors.New("broken pipe"), "uq_enrollments_student_course") {
		t.Error("non-postgres error should not match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}) {
		t.Error("23505 should be a unique violation regardless of constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "exams_created_by_fkey"}
	if !IsForeignKeyViolation(fmt.Errorf("error deleting user: %w", fk)) {
		t.Error("23503 should be a foreign key violation")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not a foreign key violation")
	}
}
