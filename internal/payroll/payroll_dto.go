package payroll

// RunPayrollRequest menjalankan payroll untuk satu karyawan-minggu.
// LateHours/LateMinutes adalah override manual admin; bila keduanya
// kosong, keterlambatan dihitung otomatis dari absensi.
type RunPayrollRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	WeekIndex   int    `json:"week_index" binding:"min=0"`
	LateHours   *int   `json:"late_hours" binding:"omitempty,min=0"`
	LateMinutes *int   `json:"late_minutes" binding:"omitempty,min=0"`
}

type DecidePayslipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CreatedAt  string `json:"created_at" binding:"required"`
}

type PayslipResponse struct {
	EmployeeID    string  `json:"employee_id"`
	WeekStart     string  `json:"week_start,omitempty"`
	WeekLabel     string  `json:"week_label,omitempty"`
	WeekKey       string  `json:"week_key"`
	Gross         float64 `json:"gross"`
	Statutory     float64 `json:"statutory"`
	LateHours     int     `json:"late_hours"`
	LateMinutes   int     `json:"late_minutes"`
	LateDeduction float64 `json:"late_deduction"`
	Net           float64 `json:"net"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

type PreviewResponse struct {
	EmployeeID      string  `json:"employee_id"`
	WeekIndex       int     `json:"week_index"`
	WeekStart       string  `json:"week_start,omitempty"`
	WeekLabel       string  `json:"week_label,omitempty"`
	Days            int     `json:"days"`
	PayableHours    float64 `json:"payable_hours"`
	RawHours        float64 `json:"raw_hours"`
	Gross           float64 `json:"gross"`
	Statutory       float64 `json:"statutory"`
	LateHours       int     `json:"late_hours"`
	LateMinutes     int     `json:"late_minutes"`
	LateDeduction   float64 `json:"late_deduction"`
	Net             float64 `json:"net"`
	WeekHasApproved bool    `json:"week_has_approved"`
}

type PendingCountResponse struct {
	Pending int `json:"pending"`
}
