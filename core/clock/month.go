package clock

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrInvalidMonthOfYear = errors.New("can not convert string to month of year")

type MonthOfYear struct {
	Month time.Month
	Year  int
}

func MonthOf(t time.Time) MonthOfYear {
	return MonthOfYear{Month: t.Month(), Year: t.Year()}
}

// ParseMonthOfYear reads the MMYYYY form used by card expiration dates.
func ParseMonthOfYear(s string) (MonthOfYear, error) {
	if len(s) != 6 {
		return MonthOfYear{}, ErrInvalidMonthOfYear
	}

	month, err := strconv.Atoi(s[:2])
	if err != nil {
		return MonthOfYear{}, fmt.Errorf("%w: %v", ErrInvalidMonthOfYear, err)
	}

	year, err := strconv.Atoi(s[2:])
	if err != nil {
		return MonthOfYear{}, fmt.Errorf("%w: %v", ErrInvalidMonthOfYear, err)
	}

	if month < 1 || month > 12 || year < 0 {
		return MonthOfYear{}, ErrInvalidMonthOfYear
	}

	return MonthOfYear{Month: time.Month(month), Year: year}, nil
}

func (m MonthOfYear) Before(o MonthOfYear) bool {
	return m.Year < o.Year || (m.Year == o.Year && m.Month < o.Month)
}

func (m MonthOfYear) Next() MonthOfYear {
	if m.Month == time.December {
		return MonthOfYear{Month: time.January, Year: m.Year + 1}
	}
	return MonthOfYear{Month: m.Month + 1, Year: m.Year}
}

func (m MonthOfYear) Prev() MonthOfYear {
	if m.Month == time.January {
		return MonthOfYear{Month: time.December, Year: m.Year - 1}
	}
	return MonthOfYear{Month: m.Month - 1, Year: m.Year}
}

func (m MonthOfYear) String() string {
	return fmt.Sprintf("%02d%04d", int(m.Month), m.Year)
}
