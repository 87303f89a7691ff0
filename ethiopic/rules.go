package ethiopic

// MonthsInYear is the number of Ethiopic months: twelve of 30 days and Pagume.
const MonthsInYear = 13

// Pagume is the intercalary thirteenth month.
const Pagume = 13

// DaysInWeek is shared by both calendars.
const DaysInWeek = 7

var monthNames = [MonthsInYear]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit",
	"Megabit", "Miazia", "Ginbot", "Sene", "Hamle", "Nehase", "Pagume",
}

// IsLeapYear reports whether Pagume of year has six days.
func IsLeapYear(year int) bool {
	return floorMod(year, 4) == 3
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns 30 for months 1..12 and 5 or 6 for Pagume.
// Any other month is rejected with ErrInvalidMonth.
func DaysInMonth(year, month int) (int, error) {
	switch {
	case month >= 1 && month <= 12:
		return 30, nil
	case month == Pagume:
		if IsLeapYear(year) {
			return 6, nil
		}
		return 5, nil
	}
	return 0, &DateError{Year: year, Month: month, Err: ErrInvalidMonth}
}

// Validate checks that (year, month, day) is a real Ethiopic date.
func Validate(year, month, day int) error {
	days, err := DaysInMonth(year, month)
	if err != nil {
		return err
	}
	if day < 1 || day > days {
		return &DateError{Year: year, Month: month, Day: day, Err: ErrInvalidDay}
	}
	return nil
}

// MonthName returns the fixed transliterated name of month.
func MonthName(month int) (string, error) {
	if month < 1 || month > MonthsInYear {
		return "", &DateError{Month: month, Err: ErrInvalidMonth}
	}
	return monthNames[month-1], nil
}

// MonthNames returns a copy of the name table, Meskerem first.
func MonthNames() []string {
	names := make([]string, MonthsInYear)
	copy(names, monthNames[:])
	return names
}
