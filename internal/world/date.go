package world

import (
	"fmt"
	"strconv"
)

// Date is a point on the world's timeline. Year is required by the
// resolver; zero Month or Day means the field was not given.
type Date struct {
	Year  int64
	Month int32
	Day   int32
	Era   string
}

// SortKey orders dates chronologically: year, then month, then day.
// Absent fields sort before present ones within the same year.
func (d Date) SortKey() int64 {
	return d.Year*10000 + int64(d.Month)*100 + int64(d.Day)
}

func (d Date) String() string {
	s := strconv.FormatInt(d.Year, 10)
	if d.Month != 0 {
		s += fmt.Sprintf("-%02d", d.Month)
		if d.Day != 0 {
			s += fmt.Sprintf("-%02d", d.Day)
		}
	}
	if d.Era != "" {
		s += " " + d.Era
	}
	return s
}
