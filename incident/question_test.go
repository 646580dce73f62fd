package incident

import "testing"

func TestDayFromQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     int
		wantOK   bool
	}{
		{"Will GitHub have any incident on August 30th 2023?", 30, true},
		{"Will GitHub have a red incident on August 30th 2023?", 30, true},
		{"Will GitHub have any incident on August 1st 2023?", 1, true},
		{"Will GitHub have any incident on August 01st 2023?", 1, true},
		{"Will GitHub have any incident?", 0, false},
		{"Will GitHub have any incident August 30th 2023?", 0, false},
		{"Will GitHub have any incident on on August 30th 2023?", 30, true},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			got, ok := DayFromQuestion(tc.question)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("DayFromQuestion() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestMonthFromQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     int
		wantOK   bool
	}{
		{"Will GitHub have any incident on August 30th 2023?", 8, true},
		{"Will GitHub have any incident on september 2nd?", 9, true},
		{"Will GitHub have a red incident on DECEMBER 24th?", 12, true},
		{"Will GitHub have any incident on January 3rd 2024?", 1, true},
		{"Will GitHub have any incident on May 3rd 2024?", 5, true},
		{"Will GitHub have any incident today?", 0, false},
		{"Will GitHub have any incident on Augusta 3rd?", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			got, ok := MonthFromQuestion(tc.question)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("MonthFromQuestion() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestYearFromQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     int
		wantOK   bool
	}{
		{"Will GitHub have any incident on August 30th 2023?", 2023, true},
		{"Will GitHub have any incident on August 30th, 2024?", 2024, true},
		{"Will GitHub have any incident on August 30 2025?", 2025, true},
		{"Will GitHub have any incident on August 30th?", 0, false},
		{"Will GitHub have any incident on August 30th (UTC) 2023?", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			got, ok := YearFromQuestion(tc.question)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("YearFromQuestion() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
