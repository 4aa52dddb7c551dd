package attendance

// PunchRequest mencatat time-in atau time-out. Date dan At opsional;
// default hari ini / sekarang. At dipakai admin untuk koreksi manual.
type PunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Date       string `json:"date"`
	At         string `json:"at"`
}

type PunchResponse struct {
	AttendanceID   string `json:"attendance_id"`
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role,omitempty"`
	Date           string `json:"date"`
	TimeIn         string `json:"time_in,omitempty"`
	TimeOut        string `json:"time_out,omitempty"`
	LateMinutes    int    `json:"late_minutes"`
	WorkedMinutes  int    `json:"worked_minutes"`
	PayableMinutes int    `json:"payable_minutes"`
}

type WeekResponse struct {
	Index     int             `json:"index"`
	WeekStart string          `json:"week_start"`
	Label     string          `json:"label"`
	Punches   []PunchResponse `json:"punches"`
}

type StatsResponse struct {
	Lates   LateTotals   `json:"lates"`
	Absents AbsentTotals `json:"absents"`
}
