package load

import (
	"strings"
	"testing"
)

const sampleDataset = `
"CS 1000-01":
  room_times:
    - room: "Smith 108"
      time: "MWF0900+050"
      weight: 0
    - room: "Smith 109"
      time: "MWF1000+050"
      weight: 0
  hard: ["CS 1000-02"]
  soft: {}
"CS 1000-02":
  room_times:
    - room: "Smith 108"
      time: "MWF0900+050"
      weight: 0
  hard: []
  soft:
    "CS 1000-01": 99
`

func TestDatasetFromReader(t *testing.T) {
	data, err := DatasetFromReader(strings.NewReader(sampleDataset))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 {
		t.Fatalf("got %d sections, want 2", len(data))
	}
	s1 := data["CS 1000-01"]
	if len(s1.RoomTimes) != 2 {
		t.Fatalf("got %d room_times, want 2", len(s1.RoomTimes))
	}
	if s1.RoomTimes[0].Room != "Smith 108" || s1.RoomTimes[0].TimeCode != "MWF0900+050" {
		t.Fatalf("unexpected room_time: %+v", s1.RoomTimes[0])
	}
	if len(s1.Hard) != 1 || s1.Hard[0] != "CS 1000-02" {
		t.Fatalf("unexpected hard: %v", s1.Hard)
	}

	s2 := data["CS 1000-02"]
	if s2.Soft["CS 1000-01"] != 99 {
		t.Fatalf("unexpected soft: %v", s2.Soft)
	}
}

func TestDatasetFromReaderRejectsUnknownFields(t *testing.T) {
	const bad = `
"CS 1000-01":
  room_times: []
  hard: []
  soft: {}
  bogus_field: true
`
	if _, err := DatasetFromReader(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestConstraintsFromReader(t *testing.T) {
	const doc = `
100: 0
99: 2
60: 1
`
	constraints, err := ConstraintsFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]int{100: 0, 99: 2, 60: 1}
	if len(constraints) != len(want) {
		t.Fatalf("got %v, want %v", constraints, want)
	}
	for k, v := range want {
		if constraints[k] != v {
			t.Fatalf("constraints[%d] = %d, want %d", k, constraints[k], v)
		}
	}
}
