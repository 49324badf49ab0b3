package reporting

import "time"

// TargetPeriod selects one calendar month as the reporting window.
type TargetPeriod struct {
	Year  int
	Month int
}

// NewTargetPeriod validates the month bound.
func NewTargetPeriod(year, month int) (TargetPeriod, error) {
	if month < 1 || month > 12 {
		return TargetPeriod{}, ErrInvalidMonth
	}
	return TargetPeriod{Year: year, Month: month}, nil
}

// MonthStart returns the first instant of the month (UTC).
func (p TargetPeriod) MonthStart() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the first instant of the following month (exclusive bound).
func (p TargetPeriod) MonthEnd() time.Time {
	return p.MonthStart().AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the month.
func (p TargetPeriod) DaysInMonth() int {
	return int(p.MonthEnd().Sub(p.MonthStart()).Hours() / 24)
}

// Key returns the persisted month key, e.g. "2025-08".
func (p TargetPeriod) Key() string {
	return p.MonthStart().Format("2006-01")
}
