package attendance

import "time"

// Punch is one employee's attendance activity for one calendar day.
// At most one punch exists per (employee, date); a time-out mutates the
// record created by the matching time-in. Worked, payable and late
// minutes are cached on the record and recomputed on every write.
type Punch struct {
	AttendanceID   string     `json:"attendance_id"`
	EmployeeID     string     `json:"employee_id"`
	Name           string     `json:"name,omitempty"`
	Role           string     `json:"role,omitempty"`
	Date           string     `json:"date"`
	TimeIn         string     `json:"time_in,omitempty"`
	TimeOut        string     `json:"time_out,omitempty"`
	TimeInAt       *time.Time `json:"time_in_at,omitempty"`
	TimeOutAt      *time.Time `json:"time_out_at,omitempty"`
	LateMinutes    int        `json:"late_minutes"`
	WorkedMinutes  int        `json:"worked_minutes"`
	PayableMinutes int        `json:"payable_minutes"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// InAt resolves the time-in instant, falling back to parsing the
// display string against the punch date. Parse failure means the punch
// contributes nothing.
func (p Punch) InAt() (time.Time, bool) {
	if p.TimeInAt != nil {
		return *p.TimeInAt, true
	}
	if p.TimeIn != "" && p.Date != "" {
		if t, err := ParseClock(p.TimeIn, p.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p Punch) OutAt() (time.Time, bool) {
	if p.TimeOutAt != nil {
		return *p.TimeOutAt, true
	}
	if p.TimeOut != "" && p.Date != "" {
		if t, err := ParseClock(p.TimeOut, p.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveTime is the instant that decides which week a punch belongs
// to: time-out, then time-in, then the date field, then now for
// malformed records.
func (p Punch) EffectiveTime() time.Time {
	if p.TimeOutAt != nil {
		return *p.TimeOutAt
	}
	if p.TimeInAt != nil {
		return *p.TimeInAt
	}
	if p.Date != "" {
		if d, err := time.ParseInLocation(dateLayout, p.Date, time.Local); err == nil {
			return d
		}
	}
	return time.Now()
}

// Recompute refreshes the cached derived fields from the punch's
// instants.
func (p *Punch) Recompute() {
	p.LateMinutes = 0
	p.WorkedMinutes = 0
	p.PayableMinutes = 0

	in, hasIn := p.InAt()
	if hasIn {
		p.LateMinutes = LateMinutesFor(in)
	}
	out, hasOut := p.OutAt()
	if hasIn && hasOut {
		p.WorkedMinutes = NetMinutesBetween(in, out)
		p.PayableMinutes = PayableMinutes(p.WorkedMinutes)
	}
}
