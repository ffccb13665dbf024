package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/middleware"
)

// Controllers bundles everything SetupRouter mounts
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Department   *controllers.DepartmentController
	Student      *controllers.StudentController
	Faculty      *controllers.FacultyController
	Course       *controllers.CourseController
	Exam         *controllers.ExamController
	Attendance   *controllers.AttendanceController
	Timetable    *controllers.TimetableController
	Admission    *controllers.AdmissionController
	Announcement *controllers.AnnouncementController
	Forum        *controllers.ForumController
	Analytics    *controllers.AnalyticsController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.GET("/verify-email", c.Auth.VerifyEmail)
		auth.POST("/resend-verification", c.Auth.ResendVerification)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Prospective students apply without an account and track their
	// application by number. The status check sits on its own prefix so
	// the static path cannot collide with the :id wildcard under
	// /admissions in gin's route tree.
	v1.POST("/admissions/apply", c.Admission.Apply)
	v1.GET("/admission-status/:number", c.Admission.CheckStatus)

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "ok"}, "ok"))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Account routes stay reachable before email verification so users can
	// see their own profile and log out
	account := authenticated.Group("/auth")
	{
		account.POST("/logout", c.Auth.Logout)
		account.GET("/me", c.Auth.Me)
		account.PUT("/me", c.Auth.UpdateMe)
		account.PUT("/password", c.Auth.ChangePassword)
	}

	verified := authenticated.Group("")
	verified.Use(authMiddleware.EmailVerificationRequired())

	// User administration
	users := verified.Group("/users")
	users.Use(authMiddleware.AdministrativeOnly())
	{
		users.GET("", c.User.ListUsers)
		users.POST("", c.User.CreateUser)
		users.GET("/:id", c.User.GetUser)
		users.DELETE("/:id", c.User.DeleteUser)
		users.PUT("/:id/role", c.User.SetUserRole)
		users.PUT("/:id/status", c.User.SetUserStatus)
	}

	// Departments and programs: readable by everyone, writable by admins
	departments := verified.Group("/departments")
	{
		departments.GET("", c.Department.ListDepartments)
		departments.GET("/:id", c.Department.GetDepartment)

		departmentsAdmin := departments.Group("")
		departmentsAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			departmentsAdmin.POST("", c.Department.CreateDepartment)
			departmentsAdmin.PUT("/:id", c.Department.UpdateDepartment)
			departmentsAdmin.DELETE("/:id", c.Department.DeleteDepartment)
		}
	}

	programs := verified.Group("/programs")
	{
		programs.GET("", c.Department.ListPrograms)
		programs.GET("/:id", c.Department.GetProgram)

		programsAdmin := programs.Group("")
		programsAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			programsAdmin.POST("", c.Department.CreateProgram)
			programsAdmin.PUT("/:id", c.Department.UpdateProgram)
			programsAdmin.DELETE("/:id", c.Department.DeleteProgram)
		}
	}

	// Students and enrollments. The self lookup lives outside the
	// /students group so the static path cannot collide with the :id
	// wildcard in gin's route tree.
	verified.GET("/me/student-record", c.Student.GetOwnRecord)

	students := verified.Group("/students")
	{
		students.GET("/:id", c.Student.GetStudent)
		students.GET("/:id/enrollments", c.Student.ListEnrollments)
		students.GET("/:id/results", c.Exam.ListStudentResults)
		students.GET("/:id/attendance-summary", c.Attendance.StudentSummary)
		students.GET("/:id/timetable", c.Timetable.StudentTimetable)
		students.POST("/:id/enrollments", c.Student.Enroll)
		students.DELETE("/:id/enrollments/:courseId", c.Student.Drop)

		studentsStaff := students.Group("")
		studentsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
		{
			studentsStaff.GET("", c.Student.ListStudents)
			studentsStaff.PUT("/:id/enrollments/:courseId/complete", c.Student.CompleteEnrollment)
		}

		studentsAdmin := students.Group("")
		studentsAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			studentsAdmin.PUT("/:id", c.Student.UpdateStudent)
		}
	}

	// Faculty profiles
	faculty := verified.Group("/faculty")
	{
		faculty.GET("", c.Faculty.ListFaculty)
		faculty.GET("/:id", c.Faculty.GetFaculty)
		faculty.GET("/:id/courses", c.Faculty.ListAssignedCourses)

		facultyAdmin := faculty.Group("")
		facultyAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			facultyAdmin.PUT("/:id", c.Faculty.UpdateFaculty)
		}
	}
	verified.GET("/faculty-users/:userId/timetable", c.Timetable.FacultyTimetable)

	// Course catalog
	courses := verified.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.GET("/:id", c.Course.GetCourse)
		courses.GET("/:id/syllabus", c.Course.GetSyllabus)

		coursesStaff := courses.Group("")
		coursesStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
		{
			coursesStaff.GET("/:id/roster", c.Course.ListRoster)
			coursesStaff.PUT("/:id/syllabus", c.Course.UpdateSyllabus)
		}

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			coursesAdmin.POST("", c.Course.CreateCourse)
			coursesAdmin.PUT("/:id", c.Course.UpdateCourse)
			coursesAdmin.DELETE("/:id", c.Course.DeleteCourse)
		}
	}

	// Exams and results
	exams := verified.Group("/exams")
	{
		exams.GET("", c.Exam.ListExams)
		exams.GET("/:id", c.Exam.GetExam)
		exams.GET("/:id/results", c.Exam.ListResults)

		examsStaff := exams.Group("")
		examsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
		{
			examsStaff.POST("", c.Exam.CreateExam)
			examsStaff.PUT("/:id", c.Exam.UpdateExam)
			examsStaff.DELETE("/:id", c.Exam.DeleteExam)
			examsStaff.POST("/:id/results", c.Exam.RecordResult)
		}
	}

	examResults := verified.Group("/exam-results")
	examResults.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
	{
		examResults.PUT("/:resultId", c.Exam.UpdateResult)
		examResults.DELETE("/:resultId", c.Exam.DeleteResult)
	}

	// Attendance
	attendance := verified.Group("/attendance")
	{
		attendance.GET("", c.Attendance.ListAttendance)
		attendance.GET("/:id", c.Attendance.GetAttendance)

		attendanceStaff := attendance.Group("")
		attendanceStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
		{
			attendanceStaff.POST("", c.Attendance.Record)
			attendanceStaff.POST("/bulk", c.Attendance.RecordBulk)
			attendanceStaff.PUT("/:id", c.Attendance.UpdateAttendance)
			attendanceStaff.DELETE("/:id", c.Attendance.DeleteAttendance)
		}
	}

	// Timetable
	timetable := verified.Group("/timetable")
	{
		timetable.GET("", c.Timetable.ListSlots)
		timetable.GET("/:id", c.Timetable.GetSlot)

		timetableAdmin := timetable.Group("")
		timetableAdmin.Use(authMiddleware.AdministrativeOnly())
		{
			timetableAdmin.POST("", c.Timetable.CreateSlot)
			timetableAdmin.PUT("/:id", c.Timetable.UpdateSlot)
			timetableAdmin.DELETE("/:id", c.Timetable.DeleteSlot)
		}
	}

	// Admission pipeline, staff side
	admissions := verified.Group("/admissions")
	admissions.Use(authMiddleware.AdministrativeOnly())
	{
		admissions.GET("", c.Admission.ListAdmissions)
		admissions.GET("/:id", c.Admission.GetAdmission)
		admissions.PUT("/:id/status", c.Admission.UpdateStatus)
		admissions.POST("/:id/documents", c.Admission.UploadDocument)
		admissions.PUT("/:id/documents/:docId/verify", c.Admission.VerifyDocument)
		admissions.DELETE("/:id/documents/:docId", c.Admission.DeleteDocument)
	}

	// Announcements
	announcements := verified.Group("/announcements")
	{
		announcements.GET("", c.Announcement.ListAnnouncements)
		announcements.GET("/:id", c.Announcement.GetAnnouncement)

		announcementsStaff := announcements.Group("")
		announcementsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin))
		{
			announcementsStaff.POST("", c.Announcement.CreateAnnouncement)
			announcementsStaff.PUT("/:id", c.Announcement.UpdateAnnouncement)
			announcementsStaff.DELETE("/:id", c.Announcement.DeleteAnnouncement)
		}
	}

	// Discussion forum, open to every verified user. Ownership and
	// moderation rules are enforced in the service layer.
	forum := verified.Group("/forum")
	{
		forum.GET("/topics", c.Forum.ListTopics)
		forum.POST("/topics", c.Forum.CreateTopic)
		forum.GET("/topics/:id", c.Forum.GetTopic)
		forum.PUT("/topics/:id", c.Forum.UpdateTopic)
		forum.DELETE("/topics/:id", c.Forum.DeleteTopic)
		forum.PUT("/topics/:id/moderate", c.Forum.ModerateTopic)
		forum.GET("/topics/:id/replies", c.Forum.ListReplies)
		forum.POST("/topics/:id/replies", c.Forum.CreateReply)
		forum.PUT("/replies/:replyId", c.Forum.UpdateReply)
		forum.DELETE("/replies/:replyId", c.Forum.DeleteReply)
	}

	// Analytics and exports. The org-wide aggregates are admin-only;
	// faculty get their scoped numbers from /dashboard/faculty.
	analytics := verified.Group("/analytics")
	analytics.Use(authMiddleware.AdministrativeOnly())
	{
		analytics.GET("/students", c.Analytics.StudentAnalytics)
		analytics.GET("/exams/:id", c.Analytics.ExamAnalytics)
		analytics.GET("/attendance", c.Analytics.AttendanceAnalytics)
		analytics.GET("/admissions", c.Analytics.AdmissionAnalytics)
	}

	export := verified.Group("/export")
	export.Use(authMiddleware.AdministrativeOnly())
	{
		export.GET("/:resource", c.Analytics.Export)
	}

	// Role-specific dashboards
	dashboard := verified.Group("/dashboard")
	{
		dashboard.GET("/admin", authMiddleware.AdministrativeOnly(), c.Analytics.AdminDashboard)
		dashboard.GET("/faculty", authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin, models.RoleSuperadmin), c.Analytics.FacultyDashboard)
		dashboard.GET("/student", authMiddleware.RoleRequired(models.RoleStudent), c.Analytics.StudentDashboard)
	}
}
