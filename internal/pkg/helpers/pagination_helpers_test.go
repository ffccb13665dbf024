package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative page falls back to first", -5, 10, 0, 10},
		{"zero size falls back to default", 2, 0, 10, 10},
		{"oversized page size capped to default", 1, 500, 0, 10},
	}

	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		if offset != tt.wantOffset || limit != tt.wantLimit {
			t.Errorf("%s: CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				tt.name, tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(95, 2, 10)
	if info.TotalPages != 10 {
		t.Errorf("TotalPages = %d, want 10", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", info.CurrentPage)
	}
	if info.TotalItems != 95 {
		t.Errorf("TotalItems = %d, want 95", info.TotalItems)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Errorf("empty first page TotalPages = %d, want 1", empty.TotalPages)
	}

	clamped := NewPaginationInfo(10, 9, 10)
	if clamped.CurrentPage != 1 {
		t.Errorf("CurrentPage past the end = %d, want 1", clamped.CurrentPage)
	}
}
