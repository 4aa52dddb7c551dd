package performance

type Row struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	PresentDays int    `json:"present_days"`
	LateDays    int    `json:"late_days"`
	AbsentDays  int    `json:"absent_days"`
	Status      string `json:"status"`
	Score       int    `json:"score"`
}

type WeekMetricsResponse struct {
	WeekIndex    int     `json:"week_index"`
	WeekStart    string  `json:"week_start,omitempty"`
	WeekLabel    string  `json:"week_label,omitempty"`
	Rows         []Row   `json:"rows"`
	AverageScore float64 `json:"average_score"`
}
