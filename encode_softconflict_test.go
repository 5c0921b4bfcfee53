package crsat

import (
	"testing"

	"github.com/Bikes4Fun/sturdy-potato/internal/satsolver"
)

func twoOverlappingSections() RawCourseData {
	return RawCourseData{
		"CS 1000-01": RawSection{
			RoomTimes: []RoomTime{{Room: "Smith 108", TimeCode: "MWF0900+050"}},
			Soft:      map[string]int{"CS 1000-02": 99},
		},
		"CS 1000-02": RawSection{
			RoomTimes: []RoomTime{{Room: "Smith 109", TimeCode: "MWF0900+050"}},
		},
	}
}

func TestEncodeSoftConflictZeroKEmitsNothing(t *testing.T) {
	ix, err := NewIndex(twoOverlappingSections())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	sink := NewSink(false)
	counter := NewLiteralCounter(ix.InitialLiteral())
	aux, err := EncodeSoftConflict(ix, sink, counter, 99, 0)
	if err != nil {
		t.Fatalf("EncodeSoftConflict: %v", err)
	}
	if aux != nil {
		t.Errorf("expected no auxiliary literals for k=0, got %v", aux)
	}
	if sink.Total() != 0 {
		t.Errorf("Total() = %d, want 0", sink.Total())
	}
}

func TestEncodeSoftConflictKOneEmitsPairwiseNoAux(t *testing.T) {
	ix, err := NewIndex(twoOverlappingSections())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	sink := NewSink(false)
	counter := NewLiteralCounter(ix.InitialLiteral())
	aux, err := EncodeSoftConflict(ix, sink, counter, 99, 1)
	if err != nil {
		t.Fatalf("EncodeSoftConflict: %v", err)
	}
	if len(aux) != 0 {
		t.Errorf("k=1 should need no auxiliary literals, got %v", aux)
	}
	if sink.Total() != 1 {
		t.Errorf("Total() = %d, want 1 (one pairwise clause)", sink.Total())
	}
}

func TestEncodeSoftConflictKTwoCountsEachSharedDay(t *testing.T) {
	// With k=2 and one pair that overlaps on M, W and F, one "conflict
	// active" literal is introduced per shared day (three in all). Each
	// section has a single candidate, so both are forced on, all three
	// indicators must be true, and the at-most-2 bound is violated.
	ix, err := NewIndex(twoOverlappingSections())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	sink := NewSink(false)
	if err := EncodeSectionChoice(ix, sink); err != nil {
		t.Fatalf("EncodeSectionChoice: %v", err)
	}
	counter := NewLiteralCounter(ix.InitialLiteral())
	if _, err := EncodeSoftConflict(ix, sink, counter, 99, 2); err != nil {
		t.Fatalf("EncodeSoftConflict: %v", err)
	}

	_, _, sat := satsolver.Solve(sink.AllClauses())
	if sat {
		t.Fatal("expected unsatisfiable: three per-day conflict indicators exceed k=2")
	}
}

func TestEncodeSoftConflictSkipsBucketWithNoPairs(t *testing.T) {
	raw := RawCourseData{
		"CS 1000-01": RawSection{
			RoomTimes: []RoomTime{{Room: "Smith 108", TimeCode: "MWF0900+050"}},
		},
	}
	ix, err := NewIndex(raw)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	sink := NewSink(false)
	counter := NewLiteralCounter(ix.InitialLiteral())
	aux, err := EncodeSoftConflict(ix, sink, counter, 99, 1)
	if err != nil {
		t.Fatalf("EncodeSoftConflict: %v", err)
	}
	if len(aux) != 0 || sink.Total() != 0 {
		t.Errorf("expected no clauses or aux vars for a bucket with no pairs, got aux=%v total=%d", aux, sink.Total())
	}
}
