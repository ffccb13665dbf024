package validation

import "testing"

func TestEmailPattern(t *testing.T) {
	valid := []string{"student@campushub.edu", "jane.doe+tag@example.co", "a_b%c@mail.org"}
	for _, email := range valid {
		if !CompiledPatterns.Email.MatchString(email) {
			t.Errorf("email %q should match", email)
		}
	}

	invalid := []string{"", "no-at-sign", "UPPER@CASE.COM", "x@y", "user@domain.toolong"}
	for _, email := range invalid {
		if CompiledPatterns.Email.MatchString(email) {
			t.Errorf("email %q should not match", email)
		}
	}
}

func TestIdentifierPatterns(t *testing.T) {
	if !CompiledPatterns.StudentID.MatchString("STU20260001") {
		t.Error("STU20260001 should be a valid student identifier")
	}
	if CompiledPatterns.StudentID.MatchString("stu2026") {
		t.Error("lowercase prefix should be rejected")
	}
	if !CompiledPatterns.FacultyID.MatchString("FAC1042") {
		t.Error("FAC1042 should be a valid faculty identifier")
	}
}

func TestSlotTimePattern(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if !CompiledPatterns.SlotTime.MatchString(v) {
			t.Errorf("slot time %q should match", v)
		}
	}

	invalid := []string{"24:00", "9:30", "12:60", "12:5", "noon"}
	for _, v := range invalid {
		if CompiledPatterns.SlotTime.MatchString(v) {
			t.Errorf("slot time %q should not match", v)
		}
	}
}
