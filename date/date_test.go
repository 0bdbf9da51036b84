package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"same day", New(2021, time.May, 14), New(2021, time.May, 14), 0},
		{"one day", New(2021, time.May, 14), New(2021, time.May, 15), 1},
		{"backward", New(2021, time.May, 15), New(2021, time.May, 14), -1},
		{"across a leap day", New(2024, time.February, 28), New(2024, time.March, 1), 2},
		{"two calendar years with a leap day", New(2023, time.March, 1), New(2025, time.March, 1), 731},
		{"730 days", New(2019, time.January, 1), New(2019, time.January, 1).Add(730), 730},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.to.Sub(tc.from); got != tc.want {
				t.Errorf("%v.Sub(%v) = %d, want %d", tc.to, tc.from, got, tc.want)
			}
		})
	}
}

func TestAdd_Normalizes(t *testing.T) {
	got := New(2024, time.December, 31).Add(1)
	if want := New(2025, time.January, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
	if got := New(2025, time.January, 1).Add(-1); got != New(2024, time.December, 31) {
		t.Errorf("Add(-1) = %v, want 2024-12-31", got)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "01/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseFrench(t *testing.T) {
	got, err := ParseFrench("14/05/2021")
	if err != nil {
		t.Fatalf("ParseFrench() failed: %v", err)
	}
	if want := New(2021, time.May, 14); got != want {
		t.Errorf("ParseFrench() = %v, want %v", got, want)
	}
	if got.French() != "14/05/2021" {
		t.Errorf("French() = %q, want %q", got.French(), "14/05/2021")
	}
	if _, err := ParseFrench("2021-05-14"); err == nil {
		t.Error("ParseFrench(\"2021-05-14\") expected an error, got nil")
	}
}

func TestJSON(t *testing.T) {
	d := New(2023, time.March, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if string(data) != `"2023-03-09"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "2023-03-09")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if got != d {
		t.Errorf("json.Unmarshal() = %v, want %v", got, d)
	}
}
