package crsat

import (
	"sort"
	"strconv"
	"strings"
)

// Day is a single weekday character drawn from the registrar's alphabet,
// e.g. 'M', 'T', 'W', 'R' (Thursday), 'F', 'S', 'U'.
type Day byte

// dayOrder fixes a canonical ordering over the day alphabet so that a
// DayPattern's day set, and anything derived from it, sorts the same way
// on every run.
const dayOrder = "MTWRFSU"

func dayRank(d Day) int {
	if i := strings.IndexByte(dayOrder, byte(d)); i >= 0 {
		return i
	}
	// Unknown day letters still need a total order; sort them after the
	// known alphabet by byte value so output stays deterministic.
	return len(dayOrder) + int(d)
}

// Timeslot is the occupancy of a single day: one weekday plus a half-open
// [Start, End) interval measured in seconds since midnight.
type Timeslot struct {
	Day   Day
	Start int
	End   int
}

func (t Timeslot) validate() error {
	if t.End <= t.Start {
		return invariantf("timeslot", "end %d must be greater than start %d", t.End, t.Start)
	}
	return nil
}

// amCutoffSeconds is the boundary the Time Model uses to bucket single-day
// timeslots into AM/PM halves before computing overlaps (§4.1).
const amCutoffSeconds = 72000

// DayPattern is the timeslot shape a course section is actually offered
// in: a non-empty set of days sharing one start/end interval, e.g.
// Monday/Wednesday/Friday at 10:00-10:50.
type DayPattern struct {
	Days  []Day
	Start int
	End   int
}

// NewDayPattern builds a DayPattern from a set of days (deduplicated and
// sorted into canonical order) and an interval.
func NewDayPattern(days []Day, start, end int) (DayPattern, error) {
	if len(days) == 0 {
		return DayPattern{}, malformedf("day pattern", "no days given")
	}
	if end <= start {
		return DayPattern{}, malformedf("day pattern", "end %d must be greater than start %d", end, start)
	}
	seen := make(map[Day]struct{}, len(days))
	uniq := make([]Day, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}
	sort.Slice(uniq, func(i, j int) bool { return dayRank(uniq[i]) < dayRank(uniq[j]) })
	return DayPattern{Days: uniq, Start: start, End: end}, nil
}

// Explode expands a DayPattern into one single-day Timeslot per
// constituent day, in canonical day order.
func (p DayPattern) Explode() []Timeslot {
	out := make([]Timeslot, len(p.Days))
	for i, d := range p.Days {
		out[i] = Timeslot{Day: d, Start: p.Start, End: p.End}
	}
	return out
}

func (p DayPattern) daysString() string {
	b := make([]byte, len(p.Days))
	for i, d := range p.Days {
		b[i] = byte(d)
	}
	return string(b)
}

// ParseTimeCode parses the registrar TimeCode grammar
// "<days><HHMM>+<DDD>", e.g. "MWF1000+150" means days M/W/F, a 10:00
// start, and a 150-minute duration (end 45000s).
//
// HHMM is read as a clock time (hours then minutes, each two digits);
// DDD is read as a duration in minutes. Both of the resulting seconds
// values came from the source's "multiply by 60" convention; see
// DESIGN.md for why the naive "whole field times 60" reading was
// rejected in favor of this one.
func ParseTimeCode(code string) (DayPattern, error) {
	plus := strings.IndexByte(code, '+')
	if plus < 0 {
		return DayPattern{}, malformedf("time code", "missing '+' in %q", code)
	}
	if plus < 4 {
		return DayPattern{}, malformedf("time code", "too short before '+' in %q", code)
	}
	daysPart := code[:plus-4]
	if daysPart == "" {
		return DayPattern{}, malformedf("time code", "no day letters in %q", code)
	}
	hhmm := code[plus-4 : plus]
	if len(hhmm) != 4 {
		return DayPattern{}, malformedf("time code", "malformed clock time in %q", code)
	}
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return DayPattern{}, malformedf("time code", "bad hour in %q: %w", code, err)
	}
	minute, err := strconv.Atoi(hhmm[2:])
	if err != nil {
		return DayPattern{}, malformedf("time code", "bad minute in %q: %w", code, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return DayPattern{}, malformedf("time code", "clock time out of range in %q", code)
	}
	durationMinutes, err := strconv.Atoi(code[plus+1:])
	if err != nil {
		return DayPattern{}, malformedf("time code", "bad duration in %q: %w", code, err)
	}
	if durationMinutes <= 0 {
		return DayPattern{}, malformedf("time code", "non-positive duration in %q", code)
	}
	start := hour*3600 + minute*60
	end := start + durationMinutes*60

	days := make([]Day, len(daysPart))
	for i := 0; i < len(daysPart); i++ {
		days[i] = Day(daysPart[i])
	}
	return NewDayPattern(days, start, end)
}

// overlaps reports whether two single-day timeslots on the same day
// conflict, using the half-open interval rule of §4.1. Identical
// timeslots always conflict (reflexivity).
func overlaps(a, b Timeslot) bool {
	if a.Day != b.Day {
		return false
	}
	return (a.Start <= b.Start && b.Start < a.End) || (b.Start <= a.Start && a.Start < b.End)
}

type overlapBucketKey struct {
	pm  bool
	day Day
}

// BuildTimeConflicts computes the symmetric, reflexive overlap relation
// over a set of single-day timeslots. Slots are partitioned into AM/PM
// half-day buckets per day (§4.1) so overlaps are only ever checked
// within a bucket, never across all slots.
func BuildTimeConflicts(slots []Timeslot) (map[Timeslot]map[Timeslot]struct{}, error) {
	unique := make(map[Timeslot]struct{})
	for _, t := range slots {
		if err := t.validate(); err != nil {
			return nil, err
		}
		unique[t] = struct{}{}
	}

	buckets := make(map[overlapBucketKey][]Timeslot)
	for t := range unique {
		if t.Start <= amCutoffSeconds {
			k := overlapBucketKey{pm: false, day: t.Day}
			buckets[k] = append(buckets[k], t)
		}
		if t.End >= amCutoffSeconds {
			k := overlapBucketKey{pm: true, day: t.Day}
			buckets[k] = append(buckets[k], t)
		}
	}

	conflicts := make(map[Timeslot]map[Timeslot]struct{}, len(unique))
	for t := range unique {
		conflicts[t] = make(map[Timeslot]struct{})
	}
	for _, bucket := range buckets {
		for _, a := range bucket {
			for _, b := range bucket {
				if overlaps(a, b) {
					conflicts[a][b] = struct{}{}
					conflicts[b][a] = struct{}{}
				}
			}
		}
	}
	return conflicts, nil
}

// sortedTimeslots returns the keys of a Timeslot set in a canonical,
// deterministic order (day rank, then start, then end).
func sortedTimeslots(set map[Timeslot]struct{}) []Timeslot {
	out := make([]Timeslot, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sortTimeslots(out)
	return out
}

func sortTimeslots(ts []Timeslot) {
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.Day != b.Day {
			return dayRank(a.Day) < dayRank(b.Day)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}
