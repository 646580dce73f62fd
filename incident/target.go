package incident

import (
	"fmt"
	"time"

	apperrors "github.com/alextes/calabi/errors"
	"github.com/alextes/calabi/validation"
)

// Target is a market calabi bets YES on when its incident happens on its day.
type Target struct {
	ContractID string `json:"contract_id" yaml:"contract_id"`
	Month      int    `json:"month" yaml:"month"`
	Day        int    `json:"day" yaml:"day"`
	// Year is 0 when the question does not name one.
	Year int  `json:"year,omitempty" yaml:"year,omitempty"`
	Type Type `json:"type" yaml:"type"`
}

// ParseTarget builds the target for a market question. It fails when the
// question has no day or month, or names a day its month does not have.
// Without a year February 29 is allowed.
func ParseTarget(contractID, question string, t Type) (Target, error) {
	day, ok := DayFromQuestion(question)
	if !ok {
		return Target{}, apperrors.MissingField("day").WithDetail("question", question)
	}
	month, ok := MonthFromQuestion(question)
	if !ok {
		return Target{}, apperrors.MissingField("month").WithDetail("question", question)
	}
	year, _ := YearFromQuestion(question)

	err := validation.New().
		Required("contract_id", contractID).
		Range("day", day, 1, 31).
		Custom(day <= daysIn(month, year), "day", fmt.Sprintf("%s has no day %d", time.Month(month), day)).
		Validate()
	if err != nil {
		return Target{}, err
	}

	return Target{ContractID: contractID, Month: month, Day: day, Year: year, Type: t}, nil
}

// IsPast reports whether the target's day is over at now. Without a year the
// comparison ignores the calendar year: December targets seen in January are
// not past.
func (t Target) IsPast(now time.Time) bool {
	if t.Year != 0 {
		return t.date(now.Location()).Before(startOfDay(now))
	}
	month, day := int(now.Month()), now.Day()
	return month > t.Month || (month == t.Month && day > t.Day)
}

// Matches reports whether the target resolves today and a live incident of
// type live settles it YES.
func (t Target) Matches(now time.Time, live Type) bool {
	if int(now.Month()) != t.Month || now.Day() != t.Day {
		return false
	}
	if t.Year != 0 && now.Year() != t.Year {
		return false
	}
	return live.Satisfies(t.Type)
}

// DateString renders the target date as 2006-01-02, or 01-02 without a year.
func (t Target) DateString() string {
	if t.Year == 0 {
		return fmt.Sprintf("%02d-%02d", t.Month, t.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
}

func (t Target) date(loc *time.Location) time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, 0, 0, 0, 0, loc)
}

// daysIn is the length of month in year, or in a leap year when year is 0.
func daysIn(month, year int) int {
	if year == 0 {
		year = 2024
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
