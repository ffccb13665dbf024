package models

// CountBucket is a generic label/count pair produced by GROUP BY queries
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// AverageBucket carries a label with an averaged value and sample count
type AverageBucket struct {
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// StudentAnalytics summarizes the student population
type StudentAnalytics struct {
	Total        int64         `json:"total"`
	ByStatus     []CountBucket `json:"byStatus"`
	ByDepartment []CountBucket `json:"byDepartment"`
	ByProgram    []CountBucket `json:"byProgram"`
	ByYear       []CountBucket `json:"byYear"`
}

// ExamAnalytics summarizes results for one exam or course
type ExamAnalytics struct {
	TotalResults     int64         `json:"totalResults"`
	AverageMarks     float64       `json:"averageMarks"`
	HighestMarks     float64       `json:"highestMarks"`
	LowestMarks      float64       `json:"lowestMarks"`
	PassCount        int64         `json:"passCount"`
	FailCount        int64         `json:"failCount"`
	PassRate         float64       `json:"passRate"`
	GradeBuckets     []CountBucket `json:"gradeDistribution"`
	PerformanceBands []CountBucket `json:"performanceBands"`
}

// AttendanceAnalytics summarizes attendance for a course or the whole campus
type AttendanceAnalytics struct {
	TotalRecords   int64         `json:"totalRecords"`
	ByStatus       []CountBucket `json:"byStatus"`
	AttendanceRate float64       `json:"attendanceRate"`
	ByDayOfWeek    []CountBucket `json:"byDayOfWeek"`
	ByMonth        []CountBucket `json:"byMonth"`
}

// AdmissionAnalytics summarizes applications
type AdmissionAnalytics struct {
	Total     int64         `json:"total"`
	ByStatus  []CountBucket `json:"byStatus"`
	ByProgram []CountBucket `json:"byProgram"`
	ByMonth   []CountBucket `json:"byMonth"`
}

// AdminDashboard is the campus-wide overview for administrators
type AdminDashboard struct {
	TotalStudents       int64                `json:"totalStudents"`
	TotalFaculty        int64                `json:"totalFaculty"`
	TotalCourses        int64                `json:"totalCourses"`
	TotalDepartments    int64                `json:"totalDepartments"`
	PendingAdmissions   int64                `json:"pendingAdmissions"`
	RecentAnnouncements []Announcement       `json:"recentAnnouncements"`
	Admissions          *AdmissionAnalytics  `json:"admissions,omitempty"`
	Attendance          *AttendanceAnalytics `json:"attendance,omitempty"`
}

// FacultyDashboard is the overview for a teaching staff member
type FacultyDashboard struct {
	Courses       []Course        `json:"courses"`
	TotalStudents int64           `json:"totalStudents"`
	UpcomingExams []Exam          `json:"upcomingExams"`
	TodaySlots    []TimetableSlot `json:"todaySlots"`
}

// StudentDashboard is the overview for a student
type StudentDashboard struct {
	Enrollments    []Enrollment    `json:"enrollments"`
	CGPA           float64         `json:"cgpa"`
	AttendanceRate float64         `json:"attendanceRate"`
	UpcomingExams  []Exam          `json:"upcomingExams"`
	TodaySlots     []TimetableSlot `json:"todaySlots"`
	RecentResults  []ExamResult    `json:"recentResults"`
}
