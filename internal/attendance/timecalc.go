package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Jadwal kerja tetap: masuk 08:00 dengan toleransi 10 menit, istirahat
// makan siang 12:00-13:00 tidak dibayar, maksimal 8 jam dibayar per
// record absensi.
const (
	ScheduledStartMinute = 8 * 60
	GraceMinutes         = 10
	LunchStartMinute     = 12 * 60
	LunchEndMinute       = 13 * 60
	DailyCapMinutes      = 8 * 60
)

const dateLayout = "2006-01-02"

// NetMinutesBetween returns worked minutes between two instants,
// excluding the unpaid lunch window of every calendar day the interval
// touches. A time-out earlier than the time-in is taken to be on the
// next day (overnight shift). Never negative.
func NetMinutesBetween(in, out time.Time) int {
	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}
	total := int(math.Round(out.Sub(in).Minutes()))

	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location())
	for !day.After(out) {
		lunchStart := day.Add(time.Duration(LunchStartMinute) * time.Minute)
		lunchEnd := day.Add(time.Duration(LunchEndMinute) * time.Minute)

		start, end := in, out
		if lunchStart.After(start) {
			start = lunchStart
		}
		if lunchEnd.Before(end) {
			end = lunchEnd
		}
		if end.After(start) {
			total -= int(math.Round(end.Sub(start).Minutes()))
		}
		day = day.AddDate(0, 0, 1)
	}

	if total < 0 {
		total = 0
	}
	return total
}

// PayableMinutes caps net minutes at 8 hours. The cap is per record,
// not per calendar day; an overnight record is capped as one unit.
func PayableMinutes(net int) int {
	if net > DailyCapMinutes {
		return DailyCapMinutes
	}
	return net
}

// LateMinutesFor menghitung menit keterlambatan dari jam 08:00. Datang
// sampai 08:10 tidak kena penalti; lewat dari itu penalti dihitung dari
// 08:00, bukan dari batas toleransi (08:11 berarti telat 11 menit).
func LateMinutesFor(in time.Time) int {
	minuteOfDay := in.Hour()*60 + in.Minute()
	if minuteOfDay > ScheduledStartMinute+GraceMinutes {
		return minuteOfDay - ScheduledStartMinute
	}
	return 0
}

// ParseClock parses a human clock string ("8:05 am", "5:30 PM", or
// 24-hour "17:30") against a calendar date in local time.
func ParseClock(clock, date string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, err
	}

	normalized := strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range []string{"3:04 PM", "3:04PM", "15:04"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable clock value %q", clock)
}

// FormatClock renders an instant as the 12-hour display form used in
// punch records, e.g. "8:05 am".
func FormatClock(t time.Time) string {
	h := t.Hour()
	suffix := "am"
	if h >= 12 {
		suffix = "pm"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), suffix)
}
