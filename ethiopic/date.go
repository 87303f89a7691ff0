// Package ethiopic converts between the proleptic Gregorian calendar and
// the Ethiopic calendar through Julian Day Numbers.
//
// All functions are pure. Conversions to and from time.Time read or
// build the date in whatever location the caller supplies; the package
// never consults the process-wide local zone.
package ethiopic

import (
	"fmt"
	"time"
)

// Date is an Ethiopic calendar date. Year may be zero or negative.
type Date struct {
	Year  int
	Month int // 1..13
	Day   int // 1..30, 1..5 or 1..6 in Pagume
}

// NewDate validates and returns an Ethiopic date.
func NewDate(year, month, day int) (Date, error) {
	if err := Validate(year, month, day); err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromGregorian converts a proleptic Gregorian date.
func FromGregorian(year, month, day int) Date {
	return JDNToEthiopic(GregorianToJDN(year, month, day))
}

// FromTime converts the calendar date of t, read in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return FromGregorian(y, int(m), d)
}

// JDN returns the Julian Day Number of d.
func (d Date) JDN() (JDN, error) {
	return EthiopicToJDN(d.Year, d.Month, d.Day)
}

// Gregorian returns the proleptic Gregorian (year, month, day) of d.
func (d Date) Gregorian() (year, month, day int, err error) {
	jdn, err := d.JDN()
	if err != nil {
		return 0, 0, 0, err
	}
	year, month, day = JDNToGregorian(jdn)
	return year, month, day, nil
}

// Time returns the start of d in loc.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	y, m, day, err := d.Gregorian()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, loc), nil
}

// Weekday returns the ISO weekday of d: Monday=1 .. Sunday=7.
func (d Date) Weekday() (int, error) {
	jdn, err := d.JDN()
	if err != nil {
		return 0, err
	}
	return Weekday(jdn), nil
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) (Date, error) {
	jdn, err := d.JDN()
	if err != nil {
		return Date{}, err
	}
	return JDNToEthiopic(jdn + JDN(n)), nil
}

// IsValid reports whether d is a real Ethiopic date.
func (d Date) IsValid() bool {
	return Validate(d.Year, d.Month, d.Day) == nil
}

// MonthName returns the name of d's month, or "" when the month is invalid.
func (d Date) MonthName() string {
	name, _ := MonthName(d.Month)
	return name
}

// String formats d as "Meskerem 1, 2010".
func (d Date) String() string {
	return fmt.Sprintf("%s %d, %d", d.MonthName(), d.Day, d.Year)
}

// ShortString formats d as "Meskerem 1".
func (d Date) ShortString() string {
	return fmt.Sprintf("%s %d", d.MonthName(), d.Day)
}

// ISO formats d as "2010-01-01".
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1 ordering d before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
