// Package academic holds the pure grading and scheduling rules shared by
// the exam, attendance and timetable services.
package academic

import "math"

// GradeBand maps a minimum percentage to a letter grade and grade points
type GradeBand struct {
	MinPercentage float64
	Letter        string
	Points        float64
}

// gradeBands is ordered from highest threshold down; the first band whose
// threshold the percentage meets wins. Anything below 40 is an F.
var gradeBands = []GradeBand{
	{90, "A+", 4.0},
	{85, "A", 4.0},
	{80, "A-", 3.7},
	{75, "B+", 3.3},
	{70, "B", 3.0},
	{65, "B-", 2.7},
	{60, "C+", 2.3},
	{55, "C", 2.0},
	{50, "C-", 1.7},
	{45, "D+", 1.3},
	{40, "D", 1.0},
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage converts marks out of a total into a rounded percentage.
// A non-positive total yields 0.
func Percentage(marks, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(marks / total * 100)
}

// GradeFor returns the letter grade and grade points for a percentage
func GradeFor(percentage float64) (string, float64) {
	for _, band := range gradeBands {
		if percentage >= band.MinPercentage {
			return band.Letter, band.Points
		}
	}
	return "F", 0.0
}

// GradedResult is the full set of derived values for one exam score
type GradedResult struct {
	Percentage  float64
	Grade       string
	GradePoints float64
	IsPassed    bool
}

// GradeResult derives percentage, letter grade, grade points and the pass
// flag from raw marks. When passingMarks is set, passing is marks against
// that threshold; otherwise any grade other than F passes.
func GradeResult(marks, totalMarks float64, passingMarks *float64) GradedResult {
	pct := Percentage(marks, totalMarks)
	letter, points := GradeFor(pct)

	var passed bool
	if passingMarks != nil {
		passed = marks >= *passingMarks
	} else {
		passed = letter != "F"
	}

	return GradedResult{
		Percentage:  pct,
		Grade:       letter,
		GradePoints: points,
		IsPassed:    passed,
	}
}

// AttendancePercentage computes present out of (present + absent), rounded
// to two decimals. Zero recorded classes yields 0.
func AttendancePercentage(attended, missed int) float64 {
	total := attended + missed
	if total == 0 {
		return 0
	}
	return Round2(float64(attended) / float64(total) * 100)
}

// CGPA is the arithmetic mean of grade points across completed enrollments,
// rounded to two decimals. No completed enrollments yields 0.
func CGPA(gradePoints []float64) float64 {
	if len(gradePoints) == 0 {
		return 0
	}
	var sum float64
	for _, p := range gradePoints {
		sum += p
	}
	return Round2(sum / float64(len(gradePoints)))
}
