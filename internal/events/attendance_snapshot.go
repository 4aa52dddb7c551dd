package events

import "time"

const AttendanceMirrorTopic = "payroll.attendance.snapshot.v1"

// AttendanceSnapshotEvent is the flattened punch record pushed to the
// remote audit sink after every time-in / time-out write. It carries
// the derived pay figures so the sink never needs local state.
type AttendanceSnapshotEvent struct {
	AttendanceID   string    `json:"attendance_id"`
	EmployeeID     string    `json:"employee_id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Date           string    `json:"date"`
	TimeIn         string    `json:"time_in"`
	TimeOut        string    `json:"time_out"`
	TimeInISO      string    `json:"time_in_iso"`
	TimeOutISO     string    `json:"time_out_iso"`
	WorkedHours    float64   `json:"worked_hours"`
	PayableHours   float64   `json:"payable_hours"`
	WorkedMinutes  int       `json:"worked_minutes"`
	PayableMinutes int       `json:"payable_minutes"`
	LateMinutes    int       `json:"late_minutes"`
	LateDeduction  float64   `json:"late_deduction"`
	SSS            float64   `json:"sss"`
	Philhealth     float64   `json:"philhealth"`
	Pagibig        float64   `json:"pagibig"`
	StatutoryTotal float64   `json:"statutory_total"`
	GrossWeek      float64   `json:"gross_week"`
	NetWeek        float64   `json:"net_week"`
	WeeklySalary   float64   `json:"weekly_salary"`
	Source         string    `json:"source"`
	OccurredAt     time.Time `json:"occurred_at"`
}
