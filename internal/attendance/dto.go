package attendance

import (
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/clock"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type ClockDTO struct {
	EmployeeID int64 `json:"employeeId"`
}

func (d ClockDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required().MinInt(1, internal.ErrCodeInvalidValue)
	return v.Validate()
}

// MonthFilter is an optional year-month. It only filters when both parts
// are present.
type MonthFilter struct {
	Month *int
	Year  *int
}

func (f MonthFilter) IsSet() bool {
	return f.Month != nil && f.Year != nil
}

func (f MonthFilter) Validate() *internal.AppError {
	v := validation.NewValidator()
	if f.Month != nil {
		v.Field("month", int64(*f.Month)).MinInt(1, internal.ErrCodeInvalidPeriod).MaxInt(12, internal.ErrCodeInvalidPeriod)
	}
	if f.Year != nil {
		v.Field("year", int64(*f.Year)).MinInt(1970, internal.ErrCodeInvalidPeriod).MaxInt(9999, internal.ErrCodeInvalidPeriod)
	}
	return v.Validate()
}

// Period is an inclusive date range in YYYY-MM-DD form.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.From, p.To)
}

// Range returns the whole month when the filter is set, otherwise the
// first of the current month up to today.
func (f MonthFilter) Range(clk *clock.Clock) Period {
	if f.IsSet() {
		first := time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return Period{From: first.Format(clock.DateLayout), To: last.Format(clock.DateLayout)}
	}

	now := clk.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{From: first.Format(clock.DateLayout), To: now.Format(clock.DateLayout)}
}
