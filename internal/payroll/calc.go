package payroll

import (
	"math"

	"go-payroll/internal/employee"
)

// DailyRate adalah tarif tetap per hari kerja 8 jam yang dipakai jalur
// payroll run. Ringkasan karyawan memakai annualSalary/52 — dua jalur
// ini memang berbeda dan dipertahankan apa adanya.
const (
	DailyRate            = 510.0
	FallbackWeeklySalary = DailyRate * 6
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Gross converts capped payable hours into gross pay at the fixed
// daily rate.
func Gross(payableHours float64) float64 {
	return Round2(payableHours / 8 * DailyRate)
}

// CalculateLateDeduction derives a per-minute rate from the weekly
// salary (6-day week, 8-hour day) and charges every late minute.
func CalculateLateDeduction(weeklySalary float64, lateHours, lateMinutes int) float64 {
	totalLateMinutes := lateHours*60 + lateMinutes
	if weeklySalary <= 0 || totalLateMinutes <= 0 {
		return 0
	}
	perMinute := weeklySalary / 6 / 8 / 60
	return Round2(float64(totalLateMinutes) * perMinute)
}

func Net(gross, statutory, lateDeduction float64) float64 {
	n := Round2(gross - statutory - lateDeduction)
	if n < 0 {
		return 0
	}
	return n
}

// WeeklySalaryFor returns the employee's derived weekly salary, or the
// fixed fallback when the employee or the salary is unknown.
func WeeklySalaryFor(e *employee.Employee) float64 {
	if e != nil {
		if w := e.WeeklySalary(); w > 0 {
			return w
		}
	}
	return FallbackWeeklySalary
}
