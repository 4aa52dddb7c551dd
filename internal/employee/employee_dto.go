package employee

type DeductionsPayload struct {
	SSS        float64 `json:"sss" binding:"min=0"`
	Philhealth float64 `json:"philhealth" binding:"min=0"`
	Pagibig    float64 `json:"pagibig" binding:"min=0"`
}

type CreateEmployeeRequest struct {
	ID           string             `json:"id"`
	Name         string             `json:"name" binding:"required"`
	Role         string             `json:"role"`
	AnnualSalary float64            `json:"annual_salary" binding:"min=0"`
	Deductions   *DeductionsPayload `json:"deductions"`
}

type UpdateEmployeeRequest struct {
	Name         string             `json:"name" binding:"required"`
	Role         string             `json:"role"`
	AnnualSalary float64            `json:"annual_salary" binding:"min=0"`
	Deductions   *DeductionsPayload `json:"deductions"`
}

type EmployeeResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	AnnualSalary float64     `json:"annual_salary"`
	Deductions   *Deductions `json:"deductions,omitempty"`
	LastNet      float64     `json:"last_net"`
	CreatedAt    string      `json:"created_at,omitempty"`
	UpdatedAt    string      `json:"updated_at,omitempty"`
}

// EmployeeSummaryResponse is the weekly pay view derived straight from
// the annual salary; the payroll run computes gross differently.
type EmployeeSummaryResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	AnnualSalary       float64    `json:"annual_salary"`
	WeeklySalary       float64    `json:"weekly_salary"`
	Deductions         Deductions `json:"deductions"`
	StatutoryTotal     float64    `json:"statutory_total"`
	EstimatedWeeklyNet float64    `json:"estimated_weekly_net"`
	LastNet            float64    `json:"last_net"`
}
