package employee

import (
	"math"
	"time"
)

// Statutory contribution defaults applied when an employee record has
// no deduction amounts of its own.
const (
	DefaultSSS        = 300
	DefaultPhilhealth = 250
	DefaultPagibig    = 200
)

type Deductions struct {
	SSS        float64 `json:"sss"`
	Philhealth float64 `json:"philhealth"`
	Pagibig    float64 `json:"pagibig"`
}

type Employee struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	AnnualSalary float64     `json:"annual_salary"`
	Deductions   *Deductions `json:"deductions,omitempty"`
	LastNet      float64     `json:"last_net"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// WeeklySalary menurunkan gaji mingguan dari gaji tahunan. Tidak pernah
// disimpan; selalu dihitung ulang. Nol berarti gaji tidak diketahui dan
// pemanggil harus memakai fallback-nya sendiri.
func (e Employee) WeeklySalary() float64 {
	if e.AnnualSalary <= 0 {
		return 0
	}
	return math.Round(e.AnnualSalary / 52)
}

// EffectiveDeductions fills statutory defaults for absent or zero
// amounts, matching how missing records are treated.
func (e Employee) EffectiveDeductions() Deductions {
	d := Deductions{
		SSS:        DefaultSSS,
		Philhealth: DefaultPhilhealth,
		Pagibig:    DefaultPagibig,
	}
	if e.Deductions == nil {
		return d
	}
	if e.Deductions.SSS > 0 {
		d.SSS = e.Deductions.SSS
	}
	if e.Deductions.Philhealth > 0 {
		d.Philhealth = e.Deductions.Philhealth
	}
	if e.Deductions.Pagibig > 0 {
		d.Pagibig = e.Deductions.Pagibig
	}
	return d
}

func (e Employee) StatutoryTotal() float64 {
	d := e.EffectiveDeductions()
	return math.Round((d.SSS+d.Philhealth+d.Pagibig)*100) / 100
}
