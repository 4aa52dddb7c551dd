package mirror

import (
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
)

// BuildSnapshot meratakan satu record absensi beserta angka gaji
// turunannya. Karyawan yang tidak ada di registry memakai gaji mingguan
// fallback dan potongan wajib default.
func BuildSnapshot(p attendance.Punch, emp *employee.Employee, now time.Time) events.AttendanceSnapshotEvent {
	weeklySalary := payroll.FallbackWeeklySalary
	sss := float64(employee.DefaultSSS)
	philhealth := float64(employee.DefaultPhilhealth)
	pagibig := float64(employee.DefaultPagibig)
	if emp != nil {
		weeklySalary = payroll.WeeklySalaryFor(emp)
		if weeklySalary <= 0 {
			weeklySalary = payroll.FallbackWeeklySalary
		}
		d := emp.EffectiveDeductions()
		sss, philhealth, pagibig = d.SSS, d.Philhealth, d.Pagibig
	}
	statutoryTotal := payroll.Round2(sss + philhealth + pagibig)

	lateDeduction := payroll.CalculateLateDeduction(weeklySalary, p.LateMinutes/60, p.LateMinutes%60)
	grossWeek := weeklySalary
	netWeek := payroll.Round2(grossWeek - statutoryTotal - lateDeduction)

	ev := events.AttendanceSnapshotEvent{
		AttendanceID:   p.AttendanceID,
		EmployeeID:     p.EmployeeID,
		Name:           p.Name,
		Role:           p.Role,
		Date:           p.Date,
		TimeIn:         p.TimeIn,
		TimeOut:        p.TimeOut,
		WorkedHours:    payroll.Round2(float64(p.WorkedMinutes) / 60),
		PayableHours:   payroll.Round2(float64(p.PayableMinutes) / 60),
		WorkedMinutes:  p.WorkedMinutes,
		PayableMinutes: p.PayableMinutes,
		LateMinutes:    p.LateMinutes,
		LateDeduction:  lateDeduction,
		SSS:            sss,
		Philhealth:     philhealth,
		Pagibig:        pagibig,
		StatutoryTotal: statutoryTotal,
		GrossWeek:      grossWeek,
		NetWeek:        netWeek,
		WeeklySalary:   weeklySalary,
		Source:         "api_local",
		OccurredAt:     now.UTC(),
	}
	if p.TimeInAt != nil {
		ev.TimeInISO = p.TimeInAt.Format(time.RFC3339)
	}
	if p.TimeOutAt != nil {
		ev.TimeOutISO = p.TimeOutAt.Format(time.RFC3339)
	}
	return ev
}
