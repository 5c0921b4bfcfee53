// Package load reads a scheduling instance and its constraints from YAML
// dataset files, the external loader collaborator described in the core
// encoder's interface contract.
package load

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Bikes4Fun/sturdy-potato"
)

type datasetYAML map[string]sectionYAML

type sectionYAML struct {
	RoomTimes []roomTimeYAML `yaml:"room_times"`
	Hard      []string       `yaml:"hard"`
	Soft      map[string]int `yaml:"soft"`
}

type roomTimeYAML struct {
	Room   string `yaml:"room"`
	Time   string `yaml:"time"`
	Weight int    `yaml:"weight"`
}

// Dataset reads a course-data YAML document from path and converts it
// into the core's RawCourseData input contract.
func Dataset(path string) (crsat.RawCourseData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	defer f.Close()
	data, err := DatasetFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return data, nil
}

// DatasetFromReader is Dataset's io.Reader-based variant, used directly
// by tests and by callers that already have the document in memory.
func DatasetFromReader(r io.Reader) (crsat.RawCourseData, error) {
	var doc datasetYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset yaml: %w", err)
	}

	raw := make(crsat.RawCourseData, len(doc))
	for section, s := range doc {
		roomTimes := make([]crsat.RoomTime, len(s.RoomTimes))
		for i, rt := range s.RoomTimes {
			roomTimes[i] = crsat.RoomTime{
				Room:     rt.Room,
				TimeCode: rt.Time,
				Weight:   rt.Weight,
			}
		}
		raw[section] = crsat.RawSection{
			RoomTimes: roomTimes,
			Hard:      append([]string(nil), s.Hard...),
			Soft:      s.Soft,
		}
	}
	return raw, nil
}

// Constraints reads a Bucket -> k mapping from path, the "constraints"
// input described in §6.
func Constraints(path string) (map[int]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load constraints %s: %w", path, err)
	}
	defer f.Close()
	constraints, err := ConstraintsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("load constraints %s: %w", path, err)
	}
	return constraints, nil
}

// ConstraintsFromReader is Constraints's io.Reader-based variant.
func ConstraintsFromReader(r io.Reader) (map[int]int, error) {
	var doc map[int]int
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode constraints yaml: %w", err)
	}
	return doc, nil
}
