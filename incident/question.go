package incident

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dayPattern  = regexp.MustCompile(`on\s+\w+\s+(\d{1,2})`)
	yearPattern = regexp.MustCompile(`on\s+\w+\s+\d{1,2}(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	monthNames  = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	monthPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(monthNames, "|") + `)\b`)
)

// DayFromQuestion returns the day of month in "... on <Month> <day>...".
func DayFromQuestion(question string) (int, bool) {
	m := dayPattern.FindStringSubmatch(question)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return day, true
}

// MonthFromQuestion returns the number of the first English month name in
// the question, matched as a whole word regardless of case.
func MonthFromQuestion(question string) (int, bool) {
	m := monthPattern.FindStringSubmatch(question)
	if m == nil {
		return 0, false
	}
	name := strings.ToLower(m[1])
	for i, n := range monthNames {
		if n == name {
			return i + 1, true
		}
	}
	return 0, false
}

// YearFromQuestion returns the four-digit year following the day, if any.
func YearFromQuestion(question string) (int, bool) {
	m := yearPattern.FindStringSubmatch(question)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}
