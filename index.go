package crsat

import "sort"

// Literal names a Boolean variable in the SAT encoding. Literal 0 is
// reserved by the DIMACS format and is never assigned to an Assignment.
type Literal int

// Assignment (a "CRT" in the original tool's vocabulary) is a candidate
// placement of one section into one room at one day-pattern timeslot.
// It is intentionally a plain comparable struct — not a pointer, not a
// tuple of interface{} — so it can be used directly as a map key and so
// the encoders never need a runtime type check to tell an Assignment
// from a raw literal (see DESIGN.md on discriminated boundary types).
type Assignment struct {
	Section string
	Room    string
	Days    string // canonical, sorted day letters, e.g. "MWF"
	Start   int
	End     int
}

// Pattern reconstructs the DayPattern this Assignment occupies.
func (a Assignment) Pattern() DayPattern {
	days := make([]Day, len(a.Days))
	for i := 0; i < len(a.Days); i++ {
		days[i] = Day(a.Days[i])
	}
	return DayPattern{Days: days, Start: a.Start, End: a.End}
}

// Timeslots returns the single-day timeslots this Assignment occupies.
func (a Assignment) Timeslots() []Timeslot {
	return a.Pattern().Explode()
}

// SectionPair is an unordered pair of section identifiers, canonicalized
// so that A < B. It is the key type for conflict-bucket membership.
type SectionPair struct {
	A, B string
}

func newSectionPair(a, b string) SectionPair {
	if a > b {
		a, b = b, a
	}
	return SectionPair{A: a, B: b}
}

// DefaultSoftBuckets lists the soft-conflict penalty tiers this system
// recognizes, highest priority first. Any soft weight outside this set
// is not tracked in any bucket, matching the fixed finite set in §3.
var DefaultSoftBuckets = []int{99, 60, 45, 32, 30}

// HardBucket is the bucket every hard-conflict pair is filed under.
const HardBucket = 100

// DefaultBuckets is HardBucket plus DefaultSoftBuckets.
func DefaultBuckets() []int {
	out := make([]int, 0, len(DefaultSoftBuckets)+1)
	out = append(out, HardBucket)
	out = append(out, DefaultSoftBuckets...)
	return out
}

// Index is the immutable, preprocessed view of a scheduling instance.
// It is built once by NewIndex and never mutated afterward: every
// accessor returns a fresh copy or a read-only value, never a reference
// into internal state, so encoders cannot corrupt it by accident (§9,
// "frozen view").
type Index struct {
	sections []string // sorted

	courseToLiteral map[Assignment]Literal
	literalToCourse map[Literal]Assignment

	sectionToAssignments map[string]map[Assignment]struct{}
	buildingRoomCourse   map[string]map[Timeslot]map[Assignment]struct{}
	coursesByTime        map[Timeslot]map[Assignment]struct{}
	timesBySection       map[string]map[Timeslot]struct{}

	timeConflicts map[Timeslot]map[Timeslot]struct{}

	conflictCombinations map[int]map[SectionPair]struct{}

	initialLiteral int
}

// NewIndex validates raw and builds the frozen Instance Index from it.
// It is the only way to construct an Index.
func NewIndex(raw RawCourseData) (*Index, error) {
	sections := make([]string, 0, len(raw))
	for s := range raw {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	for _, s := range sections {
		for _, other := range raw[s].Hard {
			if _, ok := raw[other]; !ok {
				return nil, malformedf("hard conflict", "section %q lists unknown hard conflict %q", s, other)
			}
		}
		for other := range raw[s].Soft {
			if _, ok := raw[other]; !ok {
				return nil, malformedf("soft conflict", "section %q lists unknown soft conflict %q", s, other)
			}
		}
	}

	ix := &Index{
		sections:             sections,
		courseToLiteral:      make(map[Assignment]Literal),
		literalToCourse:      make(map[Literal]Assignment),
		sectionToAssignments: make(map[string]map[Assignment]struct{}, len(sections)),
		buildingRoomCourse:   make(map[string]map[Timeslot]map[Assignment]struct{}),
		coursesByTime:        make(map[Timeslot]map[Assignment]struct{}),
		timesBySection:       make(map[string]map[Timeslot]struct{}, len(sections)),
		conflictCombinations: make(map[int]map[SectionPair]struct{}),
	}
	for _, b := range DefaultBuckets() {
		ix.conflictCombinations[b] = make(map[SectionPair]struct{})
	}

	nextLiteral := 1
	var allTimeslots []Timeslot
	for _, section := range sections {
		ix.sectionToAssignments[section] = make(map[Assignment]struct{})
		ix.timesBySection[section] = make(map[Timeslot]struct{})
		for _, rt := range raw[section].RoomTimes {
			pattern, err := ParseTimeCode(rt.TimeCode)
			if err != nil {
				return nil, err
			}
			assignment := Assignment{
				Section: section,
				Room:    rt.Room,
				Days:    pattern.daysString(),
				Start:   pattern.Start,
				End:     pattern.End,
			}
			if _, exists := ix.courseToLiteral[assignment]; !exists {
				lit := Literal(nextLiteral)
				nextLiteral++
				ix.courseToLiteral[assignment] = lit
				ix.literalToCourse[lit] = assignment
			}
			ix.sectionToAssignments[section][assignment] = struct{}{}

			if _, ok := ix.buildingRoomCourse[rt.Room]; !ok {
				ix.buildingRoomCourse[rt.Room] = make(map[Timeslot]map[Assignment]struct{})
			}
			for _, ts := range pattern.Explode() {
				allTimeslots = append(allTimeslots, ts)
				if _, ok := ix.buildingRoomCourse[rt.Room][ts]; !ok {
					ix.buildingRoomCourse[rt.Room][ts] = make(map[Assignment]struct{})
				}
				ix.buildingRoomCourse[rt.Room][ts][assignment] = struct{}{}

				if _, ok := ix.coursesByTime[ts]; !ok {
					ix.coursesByTime[ts] = make(map[Assignment]struct{})
				}
				ix.coursesByTime[ts][assignment] = struct{}{}

				ix.timesBySection[section][ts] = struct{}{}
			}
		}
	}
	ix.initialLiteral = nextLiteral

	conflicts, err := BuildTimeConflicts(allTimeslots)
	if err != nil {
		return nil, err
	}
	ix.timeConflicts = conflicts

	for i, s1 := range sections {
		for _, s2 := range sections[i+1:] {
			pair := newSectionPair(s1, s2)
			if containsString(raw[s1].Hard, s2) || containsString(raw[s2].Hard, s1) {
				ix.conflictCombinations[HardBucket][pair] = struct{}{}
			}
			for _, bucket := range DefaultSoftBuckets {
				if raw[s1].Soft[s2] == bucket || raw[s2].Soft[s1] == bucket {
					ix.conflictCombinations[bucket][pair] = struct{}{}
				}
			}
		}
	}

	return ix, nil
}

func containsString(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

// Sections returns every section identifier, sorted.
func (ix *Index) Sections() []string {
	out := make([]string, len(ix.sections))
	copy(out, ix.sections)
	return out
}

// Literal returns the literal bound to an Assignment.
func (ix *Index) Literal(a Assignment) (Literal, bool) {
	l, ok := ix.courseToLiteral[a]
	return l, ok
}

// AssignmentOf is the inverse of Literal.
func (ix *Index) AssignmentOf(l Literal) (Assignment, bool) {
	a, ok := ix.literalToCourse[l]
	return a, ok
}

// InitialLiteral is the first literal not already bound to an
// Assignment: the starting point for any auxiliary-variable counter.
func (ix *Index) InitialLiteral() int {
	return ix.initialLiteral
}

func (ix *Index) sortAssignments(set map[Assignment]struct{}) []Assignment {
	out := make([]Assignment, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		li := ix.courseToLiteral[out[i]]
		lj := ix.courseToLiteral[out[j]]
		return li < lj
	})
	return out
}

// AssignmentsForSection returns every candidate Assignment for a
// section, sorted by literal.
func (ix *Index) AssignmentsForSection(section string) []Assignment {
	return ix.sortAssignments(ix.sectionToAssignments[section])
}

// Rooms returns every room identifier that appears in the instance,
// sorted.
func (ix *Index) Rooms() []string {
	out := make([]string, 0, len(ix.buildingRoomCourse))
	for r := range ix.buildingRoomCourse {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// TimesInRoom returns the single-day timeslots occupied in a room,
// sorted canonically.
func (ix *Index) TimesInRoom(room string) []Timeslot {
	times := ix.buildingRoomCourse[room]
	out := make([]Timeslot, 0, len(times))
	for t := range times {
		out = append(out, t)
	}
	sortTimeslots(out)
	return out
}

// AssignmentsAt returns the Assignments occupying a room at a specific
// single-day timeslot, sorted by literal.
func (ix *Index) AssignmentsAt(room string, t Timeslot) []Assignment {
	return ix.sortAssignments(ix.buildingRoomCourse[room][t])
}

// AssignmentsAtTime returns every Assignment (in any room) occupying a
// single-day timeslot, sorted by literal.
func (ix *Index) AssignmentsAtTime(t Timeslot) []Assignment {
	return ix.sortAssignments(ix.coursesByTime[t])
}

// TimesForSection returns the single-day timeslots a section occupies
// across all of its candidate Assignments, sorted canonically.
func (ix *Index) TimesForSection(section string) []Timeslot {
	times := ix.timesBySection[section]
	out := make([]Timeslot, 0, len(times))
	for t := range times {
		out = append(out, t)
	}
	sortTimeslots(out)
	return out
}

// ConflictsOf returns every single-day timeslot (including t itself)
// that overlaps t, sorted canonically.
func (ix *Index) ConflictsOf(t Timeslot) []Timeslot {
	return sortedTimeslots(ix.timeConflicts[t])
}

// Buckets returns every conflict bucket tag known to the instance,
// sorted ascending.
func (ix *Index) Buckets() []int {
	out := make([]int, 0, len(ix.conflictCombinations))
	for b := range ix.conflictCombinations {
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

// PairsInBucket returns the section pairs filed under a conflict bucket,
// sorted lexicographically.
func (ix *Index) PairsInBucket(bucket int) []SectionPair {
	pairs := ix.conflictCombinations[bucket]
	out := make([]SectionPair, 0, len(pairs))
	for p := range pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
