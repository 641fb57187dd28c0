package scheduling

import (
	"testing"
	"time"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// rng builds a range on testDay, e.g. rng(9, 0, 10, 30) = 09:00-10:30.
func rng(startHour, startMin, endHour, endMin int) TimeRange {
	return TimeRange{
		Start: testDay.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   testDay.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestNewTimeRange(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:  "valid range",
			start: now,
			end:   now.Add(time.Hour),
		},
		{
			name:    "end before start",
			start:   now,
			end:     now.Add(-time.Hour),
			wantErr: ErrInvalidRange,
		},
		{
			name:    "zero-length range",
			start:   now,
			end:     now,
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeRange(tt.start, tt.end)
			if err != tt.wantErr {
				t.Errorf("NewTimeRange() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "disjoint ranges",
			a:    rng(8, 0, 9, 0),
			b:    rng(10, 0, 11, 0),
			want: false,
		},
		{
			name: "touching endpoints do not overlap",
			a:    rng(8, 0, 9, 0),
			b:    rng(9, 0, 10, 0),
			want: false,
		},
		{
			name: "partial overlap",
			a:    rng(9, 0, 10, 30),
			b:    rng(10, 0, 11, 0),
			want: true,
		},
		{
			name: "contained range",
			a:    rng(9, 0, 12, 0),
			b:    rng(10, 0, 11, 0),
			want: true,
		},
		{
			name: "identical ranges",
			a:    rng(9, 0, 10, 0),
			b:    rng(9, 0, 10, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reversed Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHours(t *testing.T) {
	r := rng(9, 0, 10, 30)
	if got := r.Hours(); got != 1.5 {
		t.Errorf("Hours() = %v, want 1.5", got)
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{
			name: "same day",
			t:    time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "next day",
			t:    time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "previous day just before midnight",
			t:    time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.t, testDay); got != tt.want {
				t.Errorf("SameDay(%v, %v) = %v, want %v", tt.t, testDay, got, tt.want)
			}
		})
	}
}
