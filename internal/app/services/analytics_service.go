package services

import (
	"context"
	"time"

	"github.com/campushub/campushub/internal/app/academic"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// AnalyticsService aggregates reporting queries and assembles the
// per-role dashboards.
type AnalyticsService struct {
	analyticsRepo    *repositories.AnalyticsRepository
	studentRepo      *repositories.StudentRepository
	facultyRepo      *repositories.FacultyRepository
	courseRepo       *repositories.CourseRepository
	departmentRepo   *repositories.DepartmentRepository
	examRepo         *repositories.ExamRepository
	timetableRepo    *repositories.TimetableRepository
	announcementRepo *repositories.AnnouncementRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(repos *repositories.Repositories) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo:    repos.AnalyticsRepository,
		studentRepo:      repos.StudentRepository,
		facultyRepo:      repos.FacultyRepository,
		courseRepo:       repos.CourseRepository,
		departmentRepo:   repos.DepartmentRepository,
		examRepo:         repos.ExamRepository,
		timetableRepo:    repos.TimetableRepository,
		announcementRepo: repos.AnnouncementRepository,
	}
}

// StudentAnalytics summarizes the student population
func (s *AnalyticsService) StudentAnalytics(ctx context.Context) (*models.StudentAnalytics, error) {
	return s.analyticsRepo.StudentAnalytics(ctx)
}

// ExamAnalytics summarizes results for one exam
func (s *AnalyticsService) ExamAnalytics(ctx context.Context, examID int64) (*models.ExamAnalytics, error) {
	if _, err := s.examRepo.GetExamByID(ctx, examID); err != nil {
		return nil, err
	}
	return s.analyticsRepo.ExamAnalytics(ctx, examID)
}

// AttendanceAnalytics summarizes attendance, campus-wide or for one course
func (s *AnalyticsService) AttendanceAnalytics(ctx context.Context, courseID *int64) (*models.AttendanceAnalytics, error) {
	if courseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *courseID); err != nil {
			return nil, err
		}
	}
	return s.analyticsRepo.AttendanceAnalytics(ctx, courseID)
}

// AdmissionAnalytics summarizes applications
func (s *AnalyticsService) AdmissionAnalytics(ctx context.Context) (*models.AdmissionAnalytics, error) {
	return s.analyticsRepo.AdmissionAnalytics(ctx)
}

// AdminDashboard assembles the campus-wide overview
func (s *AnalyticsService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	dashboard := &models.AdminDashboard{}

	var err error
	if dashboard.TotalStudents, err = s.studentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dashboard.TotalFaculty, err = s.facultyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dashboard.TotalCourses, err = s.courseRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dashboard.TotalDepartments, err = s.departmentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dashboard.PendingAdmissions, err = s.analyticsRepo.CountAdmissionsByStatus(ctx, models.AdmissionPending); err != nil {
		return nil, err
	}

	announcements, _, err := s.announcementRepo.List(ctx, repositories.AnnouncementFilters{PublishedOnly: true}, 0, 5)
	if err != nil {
		return nil, err
	}
	dashboard.RecentAnnouncements = announcements

	// The breakdowns are secondary to the headline counts, so a failure
	// here degrades the dashboard instead of failing it.
	if dashboard.Admissions, err = s.analyticsRepo.AdmissionAnalytics(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to load admission breakdown for dashboard")
		dashboard.Admissions = nil
	}
	if dashboard.Attendance, err = s.analyticsRepo.AttendanceAnalytics(ctx, nil); err != nil {
		logger.Warn().Err(err).Msg("Failed to load attendance breakdown for dashboard")
		dashboard.Attendance = nil
	}

	return dashboard, nil
}

// FacultyDashboard assembles the overview for one teaching staff member
func (s *AnalyticsService) FacultyDashboard(ctx context.Context, facultyUserID int64) (*models.FacultyDashboard, error) {
	courses, _, err := s.courseRepo.List(ctx, repositories.CourseFilters{FacultyUserID: &facultyUserID}, 0, 100)
	if err != nil {
		return nil, err
	}

	dashboard := &models.FacultyDashboard{Courses: courses}

	if dashboard.TotalStudents, err = s.analyticsRepo.CountDistinctStudentsForFaculty(ctx, facultyUserID); err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	if dashboard.UpcomingExams, err = s.analyticsRepo.UpcomingExamsForCourses(ctx, courseIDs, 5); err != nil {
		return nil, err
	}

	dashboard.TodaySlots, err = s.todaySlotsForFaculty(ctx, facultyUserID)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// StudentDashboard assembles the overview for one student
func (s *AnalyticsService) StudentDashboard(ctx context.Context, studentUserID int64) (*models.StudentDashboard, error) {
	student, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.studentRepo.ListEnrollments(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.StudentDashboard{
		Enrollments:    enrollments,
		CGPA:           student.CGPA,
		AttendanceRate: academic.AttendancePercentage(student.ClassesAttended, student.ClassesMissed),
	}

	courseIDs := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Status == models.EnrollmentEnrolled {
			courseIDs = append(courseIDs, e.CourseID)
		}
	}
	if dashboard.UpcomingExams, err = s.analyticsRepo.UpcomingExamsForCourses(ctx, courseIDs, 5); err != nil {
		return nil, err
	}

	semester, year := currentTerm()
	if dashboard.TodaySlots, err = s.todaySlots(ctx, func() ([]models.TimetableSlot, error) {
		return s.timetableRepo.ListForStudent(ctx, student.ID, semester, year)
	}); err != nil {
		return nil, err
	}

	results, err := s.examRepo.ListResultsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if len(results) > 5 {
		results = results[:5]
	}
	dashboard.RecentResults = results

	return dashboard, nil
}

func (s *AnalyticsService) todaySlotsForFaculty(ctx context.Context, facultyUserID int64) ([]models.TimetableSlot, error) {
	semester, year := currentTerm()
	today := models.DayOfWeek(academic.WeekdayOf(time.Now()))
	return s.timetableRepo.List(ctx, repositories.TimetableFilters{
		FacultyUserID: &facultyUserID,
		DayOfWeek:     &today,
		Semester:      &semester,
		AcademicYear:  &year,
	})
}

func (s *AnalyticsService) todaySlots(ctx context.Context, list func() ([]models.TimetableSlot, error)) ([]models.TimetableSlot, error) {
	slots, err := list()
	if err != nil {
		return nil, err
	}
	today := models.DayOfWeek(academic.WeekdayOf(time.Now()))
	filtered := slots[:0]
	for _, slot := range slots {
		if slot.DayOfWeek == today {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}

func currentTerm() (models.Semester, int) {
	term, year := academic.TermFor(time.Now())
	return models.Semester(term), year
}
