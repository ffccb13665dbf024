package academic

import "testing"

func TestGradeFor(t *testing.T) {
	cases := []struct {
		percentage float64
		wantGrade  string
		wantPoints float64
	}{
		{100, "A+", 4.0},
		{90, "A+", 4.0},
		{89.99, "A", 4.0},
		{85, "A", 4.0},
		{84.99, "A-", 3.7},
		{80, "A-", 3.7},
		{75, "B+", 3.3},
		{70, "B", 3.0},
		{65, "B-", 2.7},
		{60, "C+", 2.3},
		{55, "C", 2.0},
		{50, "C-", 1.7},
		{45, "D+", 1.3},
		{40, "D", 1.0},
		{39.99, "F", 0.0},
		{0, "F", 0.0},
	}

	for _, c := range cases {
		grade, points := GradeFor(c.percentage)
		if grade != c.wantGrade {
			t.Errorf("GradeFor(%.2f) grade = %s, want %s", c.percentage, grade, c.wantGrade)
		}
		if points != c.wantPoints {
			t.Errorf("GradeFor(%.2f) points = %.1f, want %.1f", c.percentage, points, c.wantPoints)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(82, 100); got != 82.00 {
		t.Errorf("Percentage(82, 100) = %.2f, want 82.00", got)
	}
	if got := Percentage(1, 3); got != 33.33 {
		t.Errorf("Percentage(1, 3) = %.2f, want 33.33", got)
	}
	if got := Percentage(50, 0); got != 0 {
		t.Errorf("Percentage with zero total = %.2f, want 0", got)
	}
}

func TestGradeResult(t *testing.T) {
	res := GradeResult(82, 100, nil)
	if res.Percentage != 82.00 {
		t.Errorf("percentage = %.2f, want 82.00", res.Percentage)
	}
	if res.Grade != "A-" {
		t.Errorf("grade = %s, want A-", res.Grade)
	}
	if res.GradePoints != 3.7 {
		t.Errorf("gradePoints = %.1f, want 3.7", res.GradePoints)
	}
	if !res.IsPassed {
		t.Error("expected result to be passing")
	}
}

func TestGradeResultPassingMarks(t *testing.T) {
	passing := 50.0

	// Above the explicit threshold passes even though the grade computation
	// is unchanged.
	res := GradeResult(55, 100, &passing)
	if !res.IsPassed {
		t.Error("55/100 with passing marks 50 should pass")
	}

	// Below the explicit threshold fails even with a non-F grade.
	res = GradeResult(45, 100, &passing)
	if res.Grade != "D+" {
		t.Errorf("grade = %s, want D+", res.Grade)
	}
	if res.IsPassed {
		t.Error("45/100 with passing marks 50 should fail")
	}
}

func TestGradeResultNoPassingMarks(t *testing.T) {
	// Without an explicit threshold, anything above F passes.
	res := GradeResult(40, 100, nil)
	if res.Grade != "D" || !res.IsPassed {
		t.Errorf("40/100 = %s passed=%v, want D passed=true", res.Grade, res.IsPassed)
	}

	res = GradeResult(39, 100, nil)
	if res.Grade != "F" || res.IsPassed {
		t.Errorf("39/100 = %s passed=%v, want F passed=false", res.Grade, res.IsPassed)
	}
}

func TestAttendancePercentage(t *testing.T) {
	if got := AttendancePercentage(18, 2); got != 90.00 {
		t.Errorf("AttendancePercentage(18, 2) = %.2f, want 90.00", got)
	}
	if got := AttendancePercentage(0, 0); got != 0 {
		t.Errorf("AttendancePercentage(0, 0) = %.2f, want 0", got)
	}
	if got := AttendancePercentage(1, 2); got != 33.33 {
		t.Errorf("AttendancePercentage(1, 2) = %.2f, want 33.33", got)
	}
}

func TestCGPA(t *testing.T) {
	if got := CGPA(nil); got != 0 {
		t.Errorf("CGPA(nil) = %.2f, want 0", got)
	}
	if got := CGPA([]float64{4.0, 3.7, 3.0}); got != 3.57 {
		t.Errorf("CGPA = %.2f, want 3.57", got)
	}
	if got := CGPA([]float64{2.0}); got != 2.00 {
		t.Errorf("CGPA single = %.2f, want 2.00", got)
	}
}
