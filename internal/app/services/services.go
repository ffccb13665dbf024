package services

// Services defined in this package:
// - AuthService: registration, login, tokens, email verification, passwords
// - UserService: profile and account administration
// - DepartmentService: departments and degree programs
// - StudentService: student records, enrollment and CGPA
// - FacultyService: faculty profiles and course assignments
// - CourseService: course catalog, capacity and syllabus
// - ExamService: exams and graded results
// - AttendanceService: attendance records and counters
// - TimetableService: weekly slots with conflict detection
// - AdmissionService: applications, documents and status review
// - AnnouncementService: campus announcements
// - ForumService: discussion topics and replies
// - AnalyticsService: reporting queries and dashboards
// - ExportService: CSV and XLSX downloads
