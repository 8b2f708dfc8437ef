package calendar

import (
	"testing"
	"time"
)

var sundayFirst = System{Rule: FirstDay, FirstDayOfWeek: time.Sunday}

func TestNewMonthView_February2024SundayStart(t *testing.T) {
	v := NewMonthView(NewDate(2024, time.February, 14), sundayFirst)

	if got := v.Anchor(); got != NewDate(2024, time.February, 1) {
		t.Errorf("Anchor() = %v, want 2024-02-01", got)
	}
	if got := v.FirstDate(); got != NewDate(2024, time.January, 28) {
		t.Errorf("FirstDate() = %v, want 2024-01-28", got)
	}
	if got := v.LastDate(); got != NewDate(2024, time.March, 2) {
		t.Errorf("LastDate() = %v, want 2024-03-02", got)
	}
	if got := v.WeekCount(); got != 5 {
		t.Errorf("WeekCount() = %d, want 5", got)
	}
	if !v.IsOverflowing() {
		t.Error("expected view to overflow into March")
	}
	if got := v.EffectiveWeekCount(); got != 4 {
		t.Errorf("EffectiveWeekCount() = %d, want 4", got)
	}
	if got := v.Title(); got != "February 2024" {
		t.Errorf("Title() = %q", got)
	}
}

func TestNewMonthView_NotOverflowing(t *testing.T) {
	tests := []struct {
		name      string
		month     Date
		sys       System
		wantWeeks int
	}{
		{"march 2024 monday start", NewDate(2024, time.March, 1), ISO, 5},
		{"february 2015 sunday start", NewDate(2015, time.February, 1), sundayFirst, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewMonthView(tt.month, tt.sys)
			if v.IsOverflowing() {
				t.Errorf("IsOverflowing() = true, last date %v", v.LastDate())
			}
			if v.WeekCount() != tt.wantWeeks {
				t.Errorf("WeekCount() = %d, want %d", v.WeekCount(), tt.wantWeeks)
			}
			if v.EffectiveWeekCount() != v.WeekCount() {
				t.Errorf("EffectiveWeekCount() = %d, want %d", v.EffectiveWeekCount(), v.WeekCount())
			}
		})
	}
}

func TestMonthView_Properties(t *testing.T) {
	for _, first := range []time.Weekday{time.Sunday, time.Monday, time.Wednesday} {
		sys := System{Rule: FirstFourDayWeek, FirstDayOfWeek: first}
		anchor := NewDate(2020, time.January, 1)
		for m := 0; m < 72; m++ {
			v := NewMonthView(anchor.AddMonths(m), sys)
			dates := v.Dates()

			if len(dates)%DaysPerWeek != 0 || len(dates) != v.WeekCount()*DaysPerWeek {
				t.Fatalf("%v: %d dates for %d weeks", v.Anchor(), len(dates), v.WeekCount())
			}
			if dates[0].Weekday() != first {
				t.Fatalf("%v: first date %v is a %v", v.Anchor(), dates[0], dates[0].Weekday())
			}
			if dates[len(dates)-1].AddDays(1).Weekday() != first {
				t.Fatalf("%v: last date %v not followed by %v", v.Anchor(), dates[len(dates)-1], first)
			}
			for d := v.Anchor(); d.SameMonth(v.Anchor()); d = d.AddDays(1) {
				if !v.Contains(d) {
					t.Fatalf("%v: missing %v", v.Anchor(), d)
				}
			}

			round := v.Next().Previous()
			if round.Anchor() != v.Anchor() || round.FirstDate() != v.FirstDate() || round.LastDate() != v.LastDate() {
				t.Fatalf("%v: Next().Previous() = %v..%v", v.Anchor(), round.FirstDate(), round.LastDate())
			}

			if v.IsOverflowing() {
				last := v.Week(v.WeekCount() - 1)
				if v.Next().Week(0).First() != last.First() {
					t.Fatalf("%v: overflow week %v is not the next view's first week", v.Anchor(), last.First())
				}
			}
		}
	}
}

func TestMonthView_Weeks(t *testing.T) {
	v := NewMonthView(NewDate(2024, time.February, 1), sundayFirst)

	var firsts []Date
	for i, w := range v.Weeks() {
		if w != v.Week(i) {
			t.Errorf("Weeks() index %d disagrees with Week(%d)", i, i)
		}
		firsts = append(firsts, w.First())
	}
	if len(firsts) != v.WeekCount() {
		t.Fatalf("Weeks() yielded %d weeks, want %d", len(firsts), v.WeekCount())
	}

	// A second range starts over.
	count := 0
	for range v.Weeks() {
		count++
	}
	if count != v.WeekCount() {
		t.Errorf("second range yielded %d weeks, want %d", count, v.WeekCount())
	}

	// Early break is honored.
	count = 0
	for range v.Weeks() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("break after first week yielded %d", count)
	}
}

func TestMonthView_WeekIndexOf(t *testing.T) {
	v := NewMonthView(NewDate(2024, time.February, 1), sundayFirst)

	tests := []struct {
		d    Date
		want int
	}{
		{NewDate(2024, time.January, 28), 0},
		{NewDate(2024, time.February, 3), 0},
		{NewDate(2024, time.February, 4), 1},
		{NewDate(2024, time.March, 2), 4},
		{NewDate(2024, time.March, 3), -1},
		{NewDate(2024, time.January, 27), -1},
	}
	for _, tt := range tests {
		if got := v.WeekIndexOf(tt.d); got != tt.want {
			t.Errorf("WeekIndexOf(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}

	if !v.InMonth(NewDate(2024, time.February, 29)) || v.InMonth(NewDate(2024, time.March, 1)) {
		t.Error("InMonth disagrees with anchor month")
	}
}

func TestWeekView(t *testing.T) {
	w := NewWeekView(NewDate(2024, time.December, 30), ISO)

	if w.Number() != 1 {
		t.Errorf("Number() = %d, want 1", w.Number())
	}
	if w.Last() != NewDate(2025, time.January, 5) {
		t.Errorf("Last() = %v, want 2025-01-05", w.Last())
	}
	if !w.Contains(NewDate(2025, time.January, 1)) || w.Contains(NewDate(2025, time.January, 6)) {
		t.Error("Contains disagrees with week bounds")
	}
	if w.Date(3) != NewDate(2025, time.January, 2) {
		t.Errorf("Date(3) = %v", w.Date(3))
	}
}

func TestNewDayItem(t *testing.T) {
	it := NewDayItem(NewDate(2024, time.March, 2), ISO)
	if it.DayOfWeek != time.Saturday || !it.IsWeekend() {
		t.Errorf("DayOfWeek = %v, want Saturday", it.DayOfWeek)
	}
	if it.WeekOfYear != 9 {
		t.Errorf("WeekOfYear = %d, want 9", it.WeekOfYear)
	}
	if it.HasAnnotation() {
		t.Error("new item should have no annotation")
	}
}
