package auth

import (
	"errors"
	"testing"

	"github.com/campushub/campushub/internal/app/models"
)

func TestAuthorizeRoleTable(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		action  Action
		ownerID int64
		wantErr error
	}{
		{"admin manages users", Actor{1, models.RoleAdmin}, ActionManageUsers, 0, nil},
		{"superadmin manages users", Actor{1, models.RoleSuperadmin}, ActionManageUsers, 0, nil},
		{"faculty cannot manage users", Actor{1, models.RoleFaculty}, ActionManageUsers, 0, ErrPermissionDenied},
		{"student cannot manage users", Actor{1, models.RoleStudent}, ActionManageUsers, 0, ErrPermissionDenied},
		{"faculty manages exams", Actor{1, models.RoleFaculty}, ActionManageExams, 0, nil},
		{"student cannot record results", Actor{1, models.RoleStudent}, ActionRecordResults, 0, ErrPermissionDenied},
		{"faculty records attendance", Actor{1, models.RoleFaculty}, ActionRecordAttendance, 0, nil},
		{"faculty cannot manage timetable", Actor{1, models.RoleFaculty}, ActionManageTimetable, 0, ErrPermissionDenied},
		{"faculty cannot review admissions", Actor{1, models.RoleFaculty}, ActionReviewAdmissions, 0, ErrPermissionDenied},
		{"faculty cannot view org-wide analytics", Actor{1, models.RoleFaculty}, ActionViewAnalytics, 0, ErrPermissionDenied},
		{"admin views analytics", Actor{1, models.RoleAdmin}, ActionViewAnalytics, 0, nil},
		{"unknown action rejected", Actor{1, models.RoleSuperadmin}, Action("bogus"), 0, ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.ownerID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeOwnerOverride(t *testing.T) {
	creator := Actor{UserID: 42, Role: models.RoleFaculty}
	other := Actor{UserID: 7, Role: models.RoleFaculty}
	admin := Actor{UserID: 1, Role: models.RoleAdmin}

	if err := Authorize(creator, ActionModifyAnnouncement, 42); err != nil {
		t.Errorf("creator should modify own announcement, got %v", err)
	}
	if err := Authorize(other, ActionModifyAnnouncement, 42); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("non-creator faculty should be denied, got %v", err)
	}
	if err := Authorize(admin, ActionModifyAnnouncement, 42); err != nil {
		t.Errorf("admin should modify any announcement, got %v", err)
	}

	// owner override never applies without an owner
	if err := Authorize(creator, ActionModifyAnnouncement, 0); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("ownerless check should deny faculty, got %v", err)
	}

	// same table row governs forum posts
	student := Actor{UserID: 9, Role: models.RoleStudent}
	if err := Authorize(student, ActionModifyForumPost, 9); err != nil {
		t.Errorf("author should edit own post, got %v", err)
	}
	if err := Authorize(student, ActionModifyForumPost, 10); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("non-author student should be denied, got %v", err)
	}
}

func TestAuthorizeEnrollmentManagement(t *testing.T) {
	// a student may change only their own enrollments; staff may change anyone's
	owner := Actor{UserID: 20, Role: models.RoleStudent}
	if err := Authorize(owner, ActionManageEnrollments, 20); err != nil {
		t.Errorf("student should enroll themselves, got %v", err)
	}
	if err := Authorize(owner, ActionManageEnrollments, 21); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("student should not touch another student's enrollment, got %v", err)
	}
	if err := Authorize(Actor{UserID: 2, Role: models.RoleFaculty}, ActionManageEnrollments, 20); err != nil {
		t.Errorf("faculty should manage any enrollment, got %v", err)
	}
	if err := Authorize(Actor{UserID: 1, Role: models.RoleAdmin}, ActionManageEnrollments, 20); err != nil {
		t.Errorf("admin should manage any enrollment, got %v", err)
	}
}

func TestCanAccessStudentRecord(t *testing.T) {
	if !CanAccessStudentRecord(Actor{UserID: 5, Role: models.RoleStudent}, 5) {
		t.Error("student should read own record")
	}
	if CanAccessStudentRecord(Actor{UserID: 5, Role: models.RoleStudent}, 6) {
		t.Error("student should not read another student's record")
	}
	if !CanAccessStudentRecord(Actor{UserID: 2, Role: models.RoleFaculty}, 6) {
		t.Error("faculty should read student records")
	}
	if !CanAccessStudentRecord(Actor{UserID: 1, Role: models.RoleAdmin}, 6) {
		t.Error("admin should read student records")
	}
}
