package academic

import "testing"

func TestParseSlotTime(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseSlotTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseSlotTime(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSlotTime(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSlotTime(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNewIntervalRejectsInverted(t *testing.T) {
	if _, err := NewInterval("10:00", "09:00"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := NewInterval("10:00", "10:00"); err == nil {
		t.Error("expected error for zero-length range")
	}
}

func TestOverlaps(t *testing.T) {
	mk := func(start, end string) Interval {
		iv, err := NewInterval(start, end)
		if err != nil {
			t.Fatalf("NewInterval(%s, %s): %v", start, end, err)
		}
		return iv
	}

	cases := []struct {
		a, b Interval
		want bool
	}{
		// Touching endpoints do not conflict
		{mk("09:00", "10:00"), mk("10:00", "11:00"), false},
		{mk("10:00", "11:00"), mk("09:00", "10:00"), false},
		// Partial overlap
		{mk("09:00", "10:30"), mk("10:00", "11:00"), true},
		// Containment
		{mk("09:00", "12:00"), mk("10:00", "11:00"), true},
		// Identical
		{mk("09:00", "10:00"), mk("09:00", "10:00"), true},
		// Disjoint
		{mk("08:00", "09:00"), mk("13:00", "14:00"), false},
	}

	for i, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("case %d: Overlaps = %v, want %v", i, got, c.want)
		}
		// Overlap is symmetric
		if got := c.b.Overlaps(c.a); got != c.want {
			t.Errorf("case %d: reverse Overlaps = %v, want %v", i, got, c.want)
		}
	}
}
