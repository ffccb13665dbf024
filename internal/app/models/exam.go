package models

import "time"

// ExamType classifies an exam
type ExamType string

const (
	ExamMidterm    ExamType = "MIDTERM"
	ExamFinal      ExamType = "FINAL"
	ExamQuiz       ExamType = "QUIZ"
	ExamAssignment ExamType = "ASSIGNMENT"
	ExamPractical  ExamType = "PRACTICAL"
)

// ExamStatus is the lifecycle state of an exam
type ExamStatus string

const (
	ExamScheduled ExamStatus = "SCHEDULED"
	ExamOngoing   ExamStatus = "ONGOING"
	ExamCompleted ExamStatus = "COMPLETED"
	ExamCancelled ExamStatus = "CANCELLED"
)

// Exam represents a scheduled assessment for a course. PassingMarks is
// optional; when unset, passing is decided by the computed grade alone.
type Exam struct {
	ID              int64      `json:"id" db:"id"`
	CourseID        int64      `json:"courseId" db:"course_id"`
	Title           string     `json:"title" db:"title"`
	ExamType        ExamType   `json:"examType" db:"exam_type"`
	ExamDate        time.Time  `json:"examDate" db:"exam_date"`
	DurationMinutes int        `json:"durationMinutes" db:"duration_minutes"`
	TotalMarks      float64    `json:"totalMarks" db:"total_marks"`
	PassingMarks    *float64   `json:"passingMarks,omitempty" db:"passing_marks"`
	Room            *string    `json:"room,omitempty" db:"room"`
	Status          ExamStatus `json:"status" db:"status"`
	CreatedBy       int64      `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`

	Course *Course `json:"course,omitempty"`
}

// ExamResult records a student's marks for an exam, together with the
// derived percentage, letter grade, grade points and pass flag. One result
// per (exam, student).
type ExamResult struct {
	ID            int64     `json:"id" db:"id"`
	ExamID        int64     `json:"examId" db:"exam_id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	MarksObtained float64   `json:"marksObtained" db:"marks_obtained"`
	Percentage    float64   `json:"percentage" db:"percentage"`
	Grade         string    `json:"grade" db:"grade"`
	GradePoints   float64   `json:"gradePoints" db:"grade_points"`
	IsPassed      bool      `json:"isPassed" db:"is_passed"`
	Remarks       *string   `json:"remarks,omitempty" db:"remarks"`
	EnteredBy     int64     `json:"enteredBy" db:"entered_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Exam    *Exam    `json:"exam,omitempty"`
	Student *Student `json:"student,omitempty"`
}
