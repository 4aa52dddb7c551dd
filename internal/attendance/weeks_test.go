package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func punchAt(employeeID, date string, inHour, inMin, outHour, outMin int) Punch {
	d, _ := time.ParseInLocation(dateLayout, date, time.Local)
	in := time.Date(d.Year(), d.Month(), d.Day(), inHour, inMin, 0, 0, time.Local)
	out := time.Date(d.Year(), d.Month(), d.Day(), outHour, outMin, 0, 0, time.Local)
	p := Punch{
		AttendanceID: employeeID + "_" + date,
		EmployeeID:   employeeID,
		Date:         date,
		TimeIn:       FormatClock(in),
		TimeOut:      FormatClock(out),
		TimeInAt:     &in,
		TimeOutAt:    &out,
	}
	p.Recompute()
	return p
}

func TestWeekStartOf(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)

	assert.Equal(t, monday, WeekStartOf(time.Date(2025, 1, 6, 9, 30, 0, 0, time.Local)))
	assert.Equal(t, monday, WeekStartOf(time.Date(2025, 1, 8, 23, 0, 0, 0, time.Local)))
	// Minggu jatuh ke Senin minggu yang sama, bukan minggu berikutnya
	assert.Equal(t, monday, WeekStartOf(time.Date(2025, 1, 12, 7, 0, 0, 0, time.Local)))
}

func TestWeekLabel(t *testing.T) {
	sameMonth := Week{Start: time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)}
	assert.Equal(t, "Jan 6 - 12, 2025", sameMonth.Label())

	crossMonth := Week{Start: time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)}
	assert.Equal(t, "Jun 30 - Jul 06, 2025", crossMonth.Label())
}

func TestBuildWeeksOrdering(t *testing.T) {
	older := punchAt("e1", "2025-01-06", 8, 0, 17, 0)
	newer := punchAt("e1", "2025-01-13", 8, 0, 17, 0)
	midweek := punchAt("e2", "2025-01-08", 9, 0, 17, 0)

	weeks := BuildWeeks([]Punch{older, midweek, newer})

	assert.Len(t, weeks, 2)
	assert.Equal(t, "2025-01-13", weeks[0].StartISO())
	assert.Equal(t, "2025-01-06", weeks[1].StartISO())

	// Dalam satu minggu punch terbaru duluan
	assert.Equal(t, "e2", weeks[1].Punches[0].EmployeeID)
	assert.Equal(t, "e1", weeks[1].Punches[1].EmployeeID)
}

func TestClampWeekIndex(t *testing.T) {
	weeks := make([]Week, 3)
	assert.Equal(t, 0, ClampWeekIndex(weeks, -5))
	assert.Equal(t, 2, ClampWeekIndex(weeks, 99))
	assert.Equal(t, 1, ClampWeekIndex(weeks, 1))
}

func TestHoursForEmployee(t *testing.T) {
	week := BuildWeeks([]Punch{
		punchAt("e1", "2025-01-06", 8, 0, 17, 0), // 480 net
		punchAt("e1", "2025-01-07", 6, 0, 20, 0), // 780 net, 480 payable
		punchAt("e2", "2025-01-07", 8, 0, 17, 0),
	})[0]

	got := HoursForEmployee(week, "e1")

	assert.Equal(t, 16.0, got.Hours)
	assert.Equal(t, 21.0, got.RawHours)
	assert.Equal(t, 2, got.Days)
}

func TestHoursForEmployeeSkipsIncompletePunch(t *testing.T) {
	open := punchAt("e1", "2025-01-06", 8, 0, 17, 0)
	open.TimeOut = ""
	open.TimeOutAt = nil

	week := BuildWeeks([]Punch{open})[0]
	got := HoursForEmployee(week, "e1")

	assert.Equal(t, 0.0, got.Hours)
	assert.Equal(t, 0, got.Days)
}

func TestLateForEmployeeAggregatesMinutes(t *testing.T) {
	week := BuildWeeks([]Punch{
		punchAt("e1", "2025-01-06", 8, 13, 17, 0),
		punchAt("e1", "2025-01-07", 8, 13, 17, 0),
		punchAt("e1", "2025-01-08", 8, 11, 17, 0),
		punchAt("e2", "2025-01-08", 9, 0, 17, 0),
	})[0]

	got := LateForEmployee(week, "e1")

	assert.Equal(t, 0, got.LateHours)
	assert.Equal(t, 37, got.LateMinutes)
	assert.Equal(t, 37, got.TotalLateMinutes)
}

func TestTotalLatesForWeek(t *testing.T) {
	week := BuildWeeks([]Punch{
		punchAt("e1", "2025-01-06", 8, 30, 17, 0),
		punchAt("e1", "2025-01-07", 9, 0, 17, 0),
		punchAt("e2", "2025-01-07", 8, 5, 17, 0),
		punchAt("e3", "2025-01-08", 8, 20, 17, 0),
	})[0]

	got := TotalLatesForWeek(week)

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 2, got.UniqueEmployees)
	assert.Equal(t, 30+60+20, got.TotalMinutes)
}

func TestAllTimeAbsents(t *testing.T) {
	punches := []Punch{
		punchAt("e1", "2025-01-06", 8, 0, 17, 0),
		punchAt("e1", "2025-01-07", 8, 0, 17, 0),
		punchAt("e2", "2025-01-06", 8, 0, 17, 0),
	}
	weeks := BuildWeeks(punches)

	// e3 hanya ada di registry, tidak pernah punch
	got := AllTimeAbsents(weeks, []string{"e1", "e3"})

	assert.Equal(t, 3, got.Employees)
	// e1 absen 4, e2 absen 5, e3 absen 6
	assert.Equal(t, 15, got.Count)
}

func TestPresenceForEmployee(t *testing.T) {
	week := BuildWeeks([]Punch{
		punchAt("e1", "2025-01-06", 8, 0, 17, 0),
		punchAt("e1", "2025-01-07", 8, 30, 17, 0),
		punchAt("e1", "2025-01-08", 9, 0, 17, 0),
	})[0]

	present, late := PresenceForEmployee(week, "e1")
	assert.Equal(t, 3, present)
	assert.Equal(t, 2, late)
}
