package crsat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTag(t *testing.T) {
	got := NewTag("one course per section", "CS 1000-01")
	want := Tag("(one course per section, CS 1000-01)")
	if got != want {
		t.Errorf("NewTag = %q, want %q", got, want)
	}
}

func TestSinkAddRejectsEmptyClause(t *testing.T) {
	s := NewSink(false)
	if err := s.Add(NewTag("t"), nil); err == nil {
		t.Fatal("expected error for empty clause")
	}
}

func TestSinkAddRejectsZeroLiteral(t *testing.T) {
	s := NewSink(false)
	if err := s.Add(NewTag("t"), []int{1, 0}); err == nil {
		t.Fatal("expected error for zero literal")
	}
}

func TestSinkAddRejectsDuplicateLiteral(t *testing.T) {
	s := NewSink(false)
	if err := s.Add(NewTag("t"), []int{1, 1}); err == nil {
		t.Fatal("expected error for duplicate literal")
	}
}

func TestSinkAddRejectsTautology(t *testing.T) {
	s := NewSink(false)
	if err := s.Add(NewTag("t"), []int{1, -2, -1}); err == nil {
		t.Fatal("expected error for tautology")
	}
}

func TestSinkAddDedupesGlobally(t *testing.T) {
	s := NewSink(false)
	if err := s.Add(NewTag("a"), []int{1, -2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(NewTag("b"), []int{-2, 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Total() != 1 {
		t.Errorf("Total() = %d, want 1 (same clause under two tags, normal mode dedups globally)", s.Total())
	}
}

func TestSinkAddDedupesPerTagInDebugMode(t *testing.T) {
	s := NewSink(true)
	if err := s.Add(NewTag("a"), []int{1, -2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(NewTag("b"), []int{-2, 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Total() != 2 {
		t.Errorf("Total() = %d, want 2 (debug mode dedups per tag, not globally)", s.Total())
	}

	// Adding the same clause again under tag "a" is still deduped.
	if err := s.Add(NewTag("a"), []int{-2, 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Total() != 2 {
		t.Errorf("Total() = %d after repeat add under same tag, want 2", s.Total())
	}
}

func TestSinkAllClausesPreservesDebugGrouping(t *testing.T) {
	s := NewSink(true)
	_ = s.Add(NewTag("first"), []int{1})
	_ = s.Add(NewTag("second"), []int{2})
	_ = s.Add(NewTag("first"), []int{3})

	want := [][]int{{1}, {3}, {2}}
	if diff := cmp.Diff(want, s.AllClauses()); diff != "" {
		t.Errorf("AllClauses() mismatch (-want +got):\n%s", diff)
	}
}

func TestSinkAddBatchStopsAtFirstError(t *testing.T) {
	s := NewSink(false)
	err := s.AddBatch(NewTag("t"), [][]int{{1}, {2, 0}, {3}})
	if err == nil {
		t.Fatal("expected error from malformed clause in batch")
	}
	if s.Total() != 1 {
		t.Errorf("Total() = %d, want 1 (only the clause before the bad one should be accepted)", s.Total())
	}
}

func TestAllClausesReturnsACopy(t *testing.T) {
	s := NewSink(false)
	_ = s.Add(NewTag("t"), []int{1, 2})

	got := s.AllClauses()
	got[0][0] = 99

	got2 := s.AllClauses()
	if got2[0][0] == 99 {
		t.Fatal("AllClauses() should return defensive copies, mutation leaked into the sink")
	}
}
