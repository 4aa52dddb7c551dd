package performance

import "math"

// Status labels, evaluated in strict rule order.
const (
	StatusNoData          = "No data"
	StatusPerfect         = "Perfect attendance"
	StatusMinorLates      = "Minor lates"
	StatusFewLates        = "Few lates"
	StatusFrequentlyLate  = "Frequently late"
	StatusPoorAttendance  = "Poor attendance"
	StatusIrregular       = "Irregular attendance"
	StatusSomeAbsences    = "Some absences"
)

// Classify maps one employee-week to a discrete label. Full attendance
// is judged on lates alone; anything less is judged on how much is
// missing first, then on lates.
func Classify(presentDays, lateDays, absentDays, expectedDays int) string {
	if presentDays >= expectedDays {
		switch {
		case lateDays == 0:
			return StatusPerfect
		case lateDays <= 1:
			return StatusMinorLates
		case lateDays <= 3:
			return StatusFewLates
		default:
			return StatusFrequentlyLate
		}
	}

	half := int(math.Ceil(float64(expectedDays) * 0.5))
	switch {
	case absentDays >= half:
		return StatusPoorAttendance
	case lateDays >= 3:
		return StatusFrequentlyLate
	case lateDays > 0:
		return StatusIrregular
	default:
		return StatusSomeAbsences
	}
}

// Score is the 0-100 ranking metric: on-time days weigh 1.0, late days
// 0.5, against the expected working days.
func Score(presentDays, lateDays, expectedDays int) int {
	onTime := presentDays - lateDays
	return int(math.Round((float64(onTime)*1.0 + float64(lateDays)*0.5) / float64(expectedDays) * 100))
}
