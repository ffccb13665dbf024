package repositories

import (
	"fmt"
	"strings"
	"testing"
)

// The day_of_week column holds the enum as text, so a bare ASC sort
// would put FRIDAY before MONDAY. Listings must come back in week
// order.
func TestWeekdayOrderMondayFirst(t *testing.T) {
	days := []string{
		"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY",
		"FRIDAY", "SATURDAY", "SUNDAY",
	}
	for i, day := range days {
		want := fmt.Sprintf("WHEN '%s' THEN %d", day, i+1)
		if !strings.Contains(weekdayOrder, want) {
			t.Errorf("weekdayOrder missing %q", want)
		}
	}
}
