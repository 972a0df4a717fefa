package bank

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldOrder is the order of the year, month and day components in a date string
type FieldOrder int

const (
	// YearMonthDay is YYYY<sep>MM<sep>DD
	YearMonthDay FieldOrder = iota
	// DayMonthYear is DD<sep>MM<sep>YYYY
	DayMonthYear
)

// DateFormat describes how a bank writes transaction dates
type DateFormat struct {
	Order     FieldOrder
	Separator string
}

// String renders the format as a pattern such as DD/MM/YYYY
func (f DateFormat) String() string {
	if f.Order == YearMonthDay {
		return strings.Join([]string{"YYYY", "MM", "DD"}, f.Separator)
	}
	return strings.Join([]string{"DD", "MM", "YYYY"}, f.Separator)
}

// ToCanonicalDate builds a timezone-naive calendar date (midnight UTC) from dateStr.
// Components are assembled with time.Date, so out-of-range days roll over into the
// following month.
func ToCanonicalDate(dateStr string, format DateFormat) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), format.Separator)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, dateStr, format)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, dateStr, format)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if format.Order == DayMonthYear {
		day, year = nums[0], nums[2]
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ToOutputDateString formats a calendar date as M/D/YYYY without zero padding
func ToOutputDateString(date time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(date.Month()), date.Day(), date.Year())
}
