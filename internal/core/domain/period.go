package domain

import (
	"fmt"
	"time"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// Period identifies a calendar month used to scope rankings and measurements.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Validate checks that the period is a plausible calendar month.
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return apperrors.ErrInvalidPeriod
	}
	if p.Year < 2000 || p.Year > 2100 {
		return apperrors.ErrInvalidPeriod
	}
	return nil
}

// Range returns the half-open UTC interval [start, end) covering the month.
// The first instant of the month is included; the first instant of the next
// month is excluded, so the last day is covered in full.
func (p Period) Range() (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// Contains reports whether t falls inside the month.
func (p Period) Contains(t time.Time) bool {
	start, end := p.Range()
	return !t.Before(start) && t.Before(end)
}

// Previous returns the immediately preceding calendar month.
func (p Period) Previous() Period {
	start, _ := p.Range()
	return PeriodOf(start.AddDate(0, -1, 0))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// RecentPeriods returns the n most recent periods, newest first, including
// the one containing now. This feeds the rolling period selector.
func RecentPeriods(now time.Time, n int) []Period {
	if n <= 0 {
		return nil
	}
	periods := make([]Period, 0, n)
	p := PeriodOf(now)
	for i := 0; i < n; i++ {
		periods = append(periods, p)
		p = p.Previous()
	}
	return periods
}
