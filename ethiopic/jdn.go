/*
jdn.go - Julian Day Number conversions

PURPOSE:
  The Julian Day Number (JDN) is a calendar-free day count. Both the
  proleptic Gregorian calendar and the Ethiopic calendar map onto it,
  so every cross-calendar conversion pivots through a JDN.

FORMULAS:
  Gregorian -> JDN:  Fliegel/Van Flandern style integer formula
  JDN -> Gregorian:  the matching inverse
  Ethiopic  -> JDN:  EthiopicEpoch + 365 + 365*(y-1) + floor(y/4) + 30*m + d - 31
  JDN -> Ethiopic:   4-year cycle decomposition (1461 days per cycle)

  All divisions are floor divisions so years <= 0 round-trip as well.

ROUND-TRIP LAW:
  JDNToGregorian(GregorianToJDN(y, m, d)) == (y, m, d)
  JDNToEthiopic(EthiopicToJDN(d)) == d

SEE ALSO:
  - rules.go: leap years and month lengths
  - date.go:  Date value type built on these functions
*/
package ethiopic

// EthiopicEpoch anchors the Ethiopic calendar on the JDN scale.
// Ethiopic 2010-01-01 is JDN 2458008, Gregorian 2017-09-11.
const EthiopicEpoch = 1723856

// JDN is a Julian Day Number.
type JDN int

// =============================================================================
// GREGORIAN
// =============================================================================

// GregorianToJDN returns the JDN of a proleptic Gregorian date.
// The caller guarantees a real calendar date.
func GregorianToJDN(year, month, day int) JDN {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return JDN(day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045)
}

// JDNToGregorian returns the proleptic Gregorian (year, month, day) of a JDN.
func JDNToGregorian(jdn JDN) (year, month, day int) {
	a := int(jdn) + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	day = e - floorDiv(153*m+2, 5) + 1
	month = m + 3 - 12*floorDiv(m, 10)
	year = 100*b + d - 4800 + floorDiv(m, 10)
	return year, month, day
}

// =============================================================================
// ETHIOPIC
// =============================================================================

// EthiopicToJDN returns the JDN of an Ethiopic date. It fails with a
// *DateError wrapping ErrInvalidMonth or ErrInvalidDay when the triple
// is not a real Ethiopic date.
func EthiopicToJDN(year, month, day int) (JDN, error) {
	if err := Validate(year, month, day); err != nil {
		return 0, err
	}
	return ethiopicToJDN(year, month, day), nil
}

func ethiopicToJDN(year, month, day int) JDN {
	return JDN(EthiopicEpoch + 365 + 365*(year-1) + floorDiv(year, 4) + 30*month + day - 31)
}

// JDNToEthiopic returns the Ethiopic date of a JDN. Every JDN has one.
func JDNToEthiopic(jdn JDN) Date {
	offset := int(jdn) - EthiopicEpoch
	r := floorMod(offset, 1461)
	n := r%365 + 365*(r/1460)

	return Date{
		Year:  4*floorDiv(offset, 1461) + r/365 - r/1460,
		Month: n/30 + 1,
		Day:   n%30 + 1,
	}
}

// Weekday returns the ISO weekday of a JDN: Monday=1 .. Sunday=7.
// JDN 0 fell on a Monday.
func Weekday(jdn JDN) int {
	return floorMod(int(jdn), 7) + 1
}

// =============================================================================
// INTEGER HELPERS
// =============================================================================

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
