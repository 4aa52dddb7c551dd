package payroll

import (
	"fmt"
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Payslip is one employee-week payroll outcome. Week identity is the
// week start date, falling back to the label, falling back to a
// synthetic index key for records without attendance data.
type Payslip struct {
	WeekStart     string    `json:"week_start,omitempty"`
	WeekLabel     string    `json:"week_label,omitempty"`
	WeekKey       string    `json:"week_key"`
	Gross         float64   `json:"gross"`
	Statutory     float64   `json:"statutory"`
	LateHours     int       `json:"late_hours"`
	LateMinutes   int       `json:"late_minutes"`
	LateDeduction float64   `json:"late_deduction"`
	Net           float64   `json:"net"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// WeekID resolves the stable identity used for duplicate detection.
func (p Payslip) WeekID() string {
	if p.WeekKey != "" {
		return p.WeekKey
	}
	if p.WeekStart != "" {
		return p.WeekStart
	}
	if p.WeekLabel != "" {
		return p.WeekLabel
	}
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt.Format("2006-01-02")
	}
	return ""
}

// SameWeek matches on any of the three identity fields; old records may
// carry only a label.
func (p Payslip) SameWeek(weekKey, weekStart, weekLabel string) bool {
	if weekKey != "" && p.WeekKey == weekKey {
		return true
	}
	if weekStart != "" && p.WeekStart == weekStart {
		return true
	}
	if weekLabel != "" && p.WeekLabel == weekLabel {
		return true
	}
	return false
}

// SyntheticWeekKey is the last-resort identity for weeks with no
// attendance data.
func SyntheticWeekKey(weekIndex int) string {
	return fmt.Sprintf("week_%d", weekIndex)
}
