package crsat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseTimeCode(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		want    DayPattern
		wantErr bool
	}{
		{
			name: "mwf morning",
			code: "MWF1000+050",
			want: DayPattern{Days: []Day{'M', 'W', 'F'}, Start: 36000, End: 39000},
		},
		{
			name: "single day afternoon",
			code: "R1330+075",
			want: DayPattern{Days: []Day{'R'}, Start: 48600, End: 53100},
		},
		{
			name:    "missing plus",
			code:    "MWF1000050",
			wantErr: true,
		},
		{
			name:    "no days",
			code:    "1000+050",
			wantErr: true,
		},
		{
			name:    "bad hour",
			code:    "MWF2500+050",
			wantErr: true,
		},
		{
			name:    "zero duration",
			code:    "MWF1000+000",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimeCode(tc.code)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeCode(%q): expected error, got none", tc.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeCode(%q): unexpected error: %v", tc.code, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseTimeCode(%q) mismatch (-want +got):\n%s", tc.code, diff)
			}
		})
	}
}

func TestDayPatternExplode(t *testing.T) {
	p, err := NewDayPattern([]Day{'F', 'M', 'W'}, 36000, 39000)
	if err != nil {
		t.Fatalf("NewDayPattern: %v", err)
	}
	want := []Timeslot{
		{Day: 'M', Start: 36000, End: 39000},
		{Day: 'W', Start: 36000, End: 39000},
		{Day: 'F', Start: 36000, End: 39000},
	}
	if diff := cmp.Diff(want, p.Explode()); diff != "" {
		t.Errorf("Explode mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlaps(t *testing.T) {
	base := Timeslot{Day: 'M', Start: 36000, End: 39000}
	cases := []struct {
		name string
		t    Timeslot
		want bool
	}{
		{"identical", base, true},
		{"different day", Timeslot{Day: 'T', Start: 36000, End: 39000}, false},
		{"overlapping start", Timeslot{Day: 'M', Start: 38000, End: 40000}, true},
		{"touching end is not overlap", Timeslot{Day: 'M', Start: 39000, End: 41000}, false},
		{"fully contained", Timeslot{Day: 'M', Start: 37000, End: 37500}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlaps(base, tc.t); got != tc.want {
				t.Errorf("overlaps(%+v, %+v) = %v, want %v", base, tc.t, got, tc.want)
			}
		})
	}
}

func TestBuildTimeConflictsCrossesAmPmBoundary(t *testing.T) {
	morning := Timeslot{Day: 'M', Start: 36000, End: 39000}
	afternoon := Timeslot{Day: 'M', Start: 75000, End: 78000}
	spanning := Timeslot{Day: 'M', Start: 38500, End: 76000}

	conflicts, err := BuildTimeConflicts([]Timeslot{morning, afternoon, spanning})
	if err != nil {
		t.Fatalf("BuildTimeConflicts: %v", err)
	}

	if _, ok := conflicts[morning][afternoon]; ok {
		t.Errorf("morning and afternoon slots should never be compared directly, got conflict")
	}
	if diff := cmp.Diff(
		map[Timeslot]struct{}{morning: {}, spanning: {}},
		conflicts[morning],
		cmpopts.EquateEmpty(),
	); diff != "" {
		t.Errorf("morning conflicts mismatch (-want +got):\n%s", diff)
	}
	if _, ok := conflicts[spanning][afternoon]; !ok {
		t.Errorf("spanning slot should conflict with afternoon slot across the AM/PM cutoff")
	}
}

func TestBuildTimeConflictsRejectsBadInterval(t *testing.T) {
	_, err := BuildTimeConflicts([]Timeslot{{Day: 'M', Start: 100, End: 100}})
	if err == nil {
		t.Fatal("expected error for zero-length interval")
	}
}
