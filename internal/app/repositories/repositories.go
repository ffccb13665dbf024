package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	VerificationTokenRepository  *VerificationTokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	DepartmentRepository         *DepartmentRepository
	ProgramRepository            *ProgramRepository
	StudentRepository            *StudentRepository
	FacultyRepository            *FacultyRepository
	CourseRepository             *CourseRepository
	ExamRepository               *ExamRepository
	AttendanceRepository         *AttendanceRepository
	TimetableRepository          *TimetableRepository
	AdmissionRepository          *AdmissionRepository
	AnnouncementRepository       *AnnouncementRepository
	ForumRepository              *ForumRepository
	AnalyticsRepository          *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		VerificationTokenRepository:  NewVerificationTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		DepartmentRepository:         NewDepartmentRepository(db),
		ProgramRepository:            NewProgramRepository(db),
		StudentRepository:            NewStudentRepository(db),
		FacultyRepository:            NewFacultyRepository(db),
		CourseRepository:             NewCourseRepository(db),
		ExamRepository:               NewExamRepository(db),
		AttendanceRepository:         NewAttendanceRepository(db),
		TimetableRepository:          NewTimetableRepository(db),
		AdmissionRepository:          NewAdmissionRepository(db),
		AnnouncementRepository:       NewAnnouncementRepository(db),
		ForumRepository:              NewForumRepository(db),
		AnalyticsRepository:          NewAnalyticsRepository(db),
	}
}
