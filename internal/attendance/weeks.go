package attendance

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ExpectedDaysPerWeek adalah asumsi hari kerja Senin-Sabtu.
const ExpectedDaysPerWeek = 6

// Week is a derived grouping of punches sharing a Monday-start week.
// Rebuilt from scratch on every read; never persisted.
type Week struct {
	Start   time.Time
	Punches []Punch
}

// WeekStartOf floors an instant to the Monday of its week, midnight
// local.
func WeekStartOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		diff = 6
	}
	return day.AddDate(0, 0, -diff)
}

func (w Week) StartISO() string {
	return w.Start.Format(dateLayout)
}

// Label renders "Jan 6 - 12, 2025", spelling out the second month when
// the week crosses one.
func (w Week) Label() string {
	end := w.Start.AddDate(0, 0, 6)
	if w.Start.Month() == end.Month() {
		return fmt.Sprintf("%s %d - %d, %d", w.Start.Format("Jan"), w.Start.Day(), end.Day(), w.Start.Year())
	}
	return fmt.Sprintf("%s %d - %s %02d, %d", w.Start.Format("Jan"), w.Start.Day(), end.Format("Jan"), end.Day(), w.Start.Year())
}

// BuildWeeks groups punches into Monday-start weeks, newest week first.
// Punches within a week are ordered newest first by their effective
// instant.
func BuildWeeks(punches []Punch) []Week {
	grouped := make(map[time.Time][]Punch)
	for _, p := range punches {
		start := WeekStartOf(p.EffectiveTime())
		grouped[start] = append(grouped[start], p)
	}

	weeks := make([]Week, 0, len(grouped))
	for start, items := range grouped {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EffectiveTime().After(items[j].EffectiveTime())
		})
		weeks = append(weeks, Week{Start: start, Punches: items})
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Start.After(weeks[j].Start)
	})
	return weeks
}

// ClampWeekIndex keeps a requested index inside the available range.
func ClampWeekIndex(weeks []Week, idx int) int {
	if idx < 0 {
		idx = 0
	}
	if idx > len(weeks)-1 {
		idx = len(weeks) - 1
	}
	return idx
}

type HoursSummary struct {
	Hours    float64 `json:"hours"`
	RawHours float64 `json:"raw_hours"`
	Days     int     `json:"days"`
}

// HoursForEmployee reduces one employee's punches in a week into capped
// payable hours, uncapped net hours (2dp each) and distinct days.
// Punches missing either instant contribute nothing.
func HoursForEmployee(w Week, employeeID string) HoursSummary {
	var payableMin, netMin int
	dates := make(map[string]struct{})

	for _, p := range w.Punches {
		if p.EmployeeID != employeeID {
			continue
		}
		in, okIn := p.InAt()
		out, okOut := p.OutAt()
		if !okIn || !okOut {
			continue
		}
		net := NetMinutesBetween(in, out)
		netMin += net
		payableMin += PayableMinutes(net)
		if p.Date != "" {
			dates[p.Date] = struct{}{}
		} else {
			dates[in.Format(dateLayout)] = struct{}{}
		}
	}

	return HoursSummary{
		Hours:    math.Round(float64(payableMin)/60*100) / 100,
		RawHours: math.Round(float64(netMin)/60*100) / 100,
		Days:     len(dates),
	}
}

type LateSummary struct {
	LateHours        int `json:"late_hours"`
	LateMinutes      int `json:"late_minutes"`
	TotalLateMinutes int `json:"total_late_minutes"`
}

// LateForEmployee sums per-punch lateness across the week for one
// employee and splits the total into hours plus remainder minutes. The
// monetary deduction is derived by the payroll module.
func LateForEmployee(w Week, employeeID string) LateSummary {
	total := 0
	for _, p := range w.Punches {
		if p.EmployeeID != employeeID {
			continue
		}
		if in, ok := p.InAt(); ok {
			total += LateMinutesFor(in)
		}
	}
	return LateSummary{
		LateHours:        total / 60,
		LateMinutes:      total % 60,
		TotalLateMinutes: total,
	}
}

type LateTotals struct {
	Count           int `json:"count"`
	UniqueEmployees int `json:"unique_employees"`
	TotalMinutes    int `json:"total_minutes"`
}

// TotalLatesForWeek counts late punch instances across all employees in
// one week.
func TotalLatesForWeek(w Week) LateTotals {
	return lateTotals(w.Punches)
}

// AllTimeLates counts late instances across the whole punch history.
func AllTimeLates(punches []Punch) LateTotals {
	return lateTotals(punches)
}

func lateTotals(punches []Punch) LateTotals {
	var totals LateTotals
	seen := make(map[string]struct{})
	for _, p := range punches {
		in, ok := p.InAt()
		if !ok {
			continue
		}
		late := LateMinutesFor(in)
		if late <= 0 {
			continue
		}
		totals.Count++
		totals.TotalMinutes += late
		if p.EmployeeID != "" {
			seen[p.EmployeeID] = struct{}{}
		}
	}
	totals.UniqueEmployees = len(seen)
	return totals
}

type AbsentTotals struct {
	Count     int `json:"count"`
	Employees int `json:"employees"`
}

// AllTimeAbsents assumes ExpectedDaysPerWeek working days per employee
// per week; every employee known to the registry or the punch history
// counts against every week.
func AllTimeAbsents(weeks []Week, registryIDs []string) AbsentTotals {
	ids := make(map[string]struct{})
	for _, id := range registryIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	for _, w := range weeks {
		for _, p := range w.Punches {
			if p.EmployeeID != "" {
				ids[p.EmployeeID] = struct{}{}
			}
		}
	}

	total := 0
	for _, w := range weeks {
		presentByEmp := make(map[string]map[string]struct{})
		for _, p := range w.Punches {
			if p.EmployeeID == "" {
				continue
			}
			dayKey := p.Date
			if dayKey == "" {
				if in, ok := p.InAt(); ok {
					dayKey = in.Format(dateLayout)
				} else if out, ok := p.OutAt(); ok {
					dayKey = out.Format(dateLayout)
				}
			}
			if dayKey == "" {
				continue
			}
			if presentByEmp[p.EmployeeID] == nil {
				presentByEmp[p.EmployeeID] = make(map[string]struct{})
			}
			presentByEmp[p.EmployeeID][dayKey] = struct{}{}
		}
		for id := range ids {
			absent := ExpectedDaysPerWeek - len(presentByEmp[id])
			if absent > 0 {
				total += absent
			}
		}
	}
	return AbsentTotals{Count: total, Employees: len(ids)}
}

// PresenceForEmployee returns distinct present days and late days for
// one employee in a week; inputs to the performance classifier.
func PresenceForEmployee(w Week, employeeID string) (presentDays, lateDays int) {
	seenDates := make(map[string]struct{})
	lateDates := make(map[string]struct{})

	for _, p := range w.Punches {
		if p.EmployeeID != employeeID {
			continue
		}
		dayKey := p.Date
		if dayKey == "" {
			if in, ok := p.InAt(); ok {
				dayKey = in.Format(dateLayout)
			} else if out, ok := p.OutAt(); ok {
				dayKey = out.Format(dateLayout)
			}
		}
		if dayKey == "" {
			continue
		}
		seenDates[dayKey] = struct{}{}
		if in, ok := p.InAt(); ok && LateMinutesFor(in) > 0 {
			lateDates[dayKey] = struct{}{}
		}
	}
	return len(seenDates), len(lateDates)
}
