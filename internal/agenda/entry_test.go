package agenda

import (
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/testutil"
)

func TestEntry_Overlaps(t *testing.T) {
	e := Entry{Start: time.Date(2024, time.February, 9, 14, 0, 0, 0, time.Local), Days: 3}

	tests := []struct {
		name     string
		from, to calendar.Date
		want     bool
	}{
		{"before", testutil.Date(2024, time.February, 1), testutil.Date(2024, time.February, 8), false},
		{"touches start", testutil.Date(2024, time.February, 1), testutil.Date(2024, time.February, 9), true},
		{"inside", testutil.Date(2024, time.February, 10), testutil.Date(2024, time.February, 10), true},
		{"touches end", testutil.Date(2024, time.February, 11), testutil.Date(2024, time.February, 20), true},
		{"after", testutil.Date(2024, time.February, 12), testutil.Date(2024, time.February, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Overlaps(tt.from, tt.to); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEntry_TagAndLabel(t *testing.T) {
	timed := Entry{Title: "Review", Start: time.Date(2024, time.February, 9, 14, 5, 0, 0, time.Local)}
	if _, ok := timed.Tag().(time.Time); !ok {
		t.Errorf("timed entry tag = %T, want time.Time", timed.Tag())
	}
	if timed.Label() != "14:05 Review" {
		t.Errorf("Label() = %q", timed.Label())
	}

	allDay := Entry{Title: "Offsite", Start: testutil.Date(2024, time.February, 19).Time(time.Local), AllDay: true}
	if tag, ok := allDay.Tag().(calendar.Date); !ok || tag != testutil.Date(2024, time.February, 19) {
		t.Errorf("all-day tag = %v", allDay.Tag())
	}
	if allDay.Label() != "Offsite" {
		t.Errorf("Label() = %q", allDay.Label())
	}
	if allDay.Span() != 1 {
		t.Errorf("Span() of zero days = %d, want 1", allDay.Span())
	}
}

func TestEntry_MoveToKeepsTimeOfDay(t *testing.T) {
	e := Entry{Start: time.Date(2024, time.February, 9, 14, 30, 0, 0, time.Local), Days: 1}
	moved := e.moveTo(testutil.Date(2024, time.March, 4), 3)

	if moved.StartDate() != testutil.Date(2024, time.March, 4) || moved.Days != 3 {
		t.Errorf("moved = %v for %d days", moved.StartDate(), moved.Days)
	}
	if moved.Start.Hour() != 14 || moved.Start.Minute() != 30 {
		t.Errorf("time of day lost: %v", moved.Start)
	}
	if e.StartDate() != testutil.Date(2024, time.February, 9) {
		t.Error("moveTo modified the receiver")
	}
}
