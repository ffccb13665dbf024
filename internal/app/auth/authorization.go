package auth

import (
	"errors"

	"github.com/campushub/campushub/internal/app/models"
)

// Errors returned by authorization decisions
var (
	ErrPermissionDenied = errors.New("you don't have permission for this action")
	ErrUnknownAction    = errors.New("unknown action")
)

// Action names one guarded operation. The full decision lives in the
// policy table below rather than in per-handler role checks.
type Action string

const (
	ActionManageUsers        Action = "users:manage"
	ActionManageDepartments  Action = "departments:manage"
	ActionManagePrograms     Action = "programs:manage"
	ActionManageStudents     Action = "students:manage"
	ActionManageFaculty      Action = "faculty:manage"
	ActionManageCourses      Action = "courses:manage"
	ActionManageEnrollments  Action = "enrollments:manage"
	ActionManageExams        Action = "exams:manage"
	ActionRecordResults      Action = "exam-results:record"
	ActionRecordAttendance   Action = "attendance:record"
	ActionManageTimetable    Action = "timetable:manage"
	ActionReviewAdmissions   Action = "admissions:review"
	ActionCreateAnnouncement Action = "announcements:create"
	ActionModifyAnnouncement Action = "announcements:modify"
	ActionModerateForum      Action = "forum:moderate"
	ActionModifyForumPost    Action = "forum-posts:modify"
	ActionViewAnalytics      Action = "analytics:view"
	ActionExportData         Action = "exports:run"
)

// policy is one row of the access table. When OwnerOverride is set, a
// non-privileged actor passes if they own the resource.
type policy struct {
	Roles         []models.RoleType
	OwnerOverride bool
}

var administrative = []models.RoleType{models.RoleAdmin, models.RoleSuperadmin}

var facultyAndUp = []models.RoleType{models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin}

var policies = map[Action]policy{
	ActionManageUsers:        {Roles: administrative},
	ActionManageDepartments:  {Roles: administrative},
	ActionManagePrograms:     {Roles: administrative},
	ActionManageStudents:     {Roles: administrative},
	ActionManageFaculty:      {Roles: administrative},
	ActionManageCourses:      {Roles: administrative},
	ActionManageEnrollments:  {Roles: facultyAndUp, OwnerOverride: true},
	ActionManageExams:        {Roles: facultyAndUp},
	ActionRecordResults:      {Roles: facultyAndUp},
	ActionRecordAttendance:   {Roles: facultyAndUp},
	ActionManageTimetable:    {Roles: administrative},
	ActionReviewAdmissions:   {Roles: administrative},
	ActionCreateAnnouncement: {Roles: facultyAndUp},
	ActionModifyAnnouncement: {Roles: administrative, OwnerOverride: true},
	ActionModerateForum:      {Roles: administrative},
	ActionModifyForumPost:    {Roles: administrative, OwnerOverride: true},
	ActionViewAnalytics:      {Roles: administrative},
	ActionExportData:         {Roles: administrative},
}

// Actor is the authenticated principal making a request
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// Authorize decides whether the actor may perform the action. For actions
// with an owner override, ownerID is the user who created the resource;
// pass 0 when ownership does not apply.
func Authorize(actor Actor, action Action, ownerID int64) error {
	p, ok := policies[action]
	if !ok {
		return ErrUnknownAction
	}

	for _, role := range p.Roles {
		if actor.Role == role {
			return nil
		}
	}

	if p.OwnerOverride && ownerID != 0 && actor.UserID == ownerID {
		return nil
	}

	return ErrPermissionDenied
}

// CanAccessStudentRecord reports whether the actor may read a student's
// own data. Students see only themselves; faculty and administrators see
// everyone.
func CanAccessStudentRecord(actor Actor, studentUserID int64) bool {
	if actor.Role.IsAdministrative() || actor.Role == models.RoleFaculty {
		return true
	}
	return actor.UserID == studentUserID
}
