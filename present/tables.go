// Package present renders a solved schedule as human-readable tables,
// the pretty-printing collaborator described in the core encoder's
// interface contract. It never touches the CNF encoding itself; its
// only input is the final per-section Assignment chosen by a solver.
package present

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/Bikes4Fun/sturdy-potato"
)

// formatClock renders seconds-since-midnight as "HH:MM".
func formatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ByRoom renders one table per room, each row a section occupying that
// room, sorted by start time then section identifier.
func ByRoom(w io.Writer, assignments []crsat.Assignment) {
	byRoom := make(map[string][]crsat.Assignment)
	for _, a := range assignments {
		byRoom[a.Room] = append(byRoom[a.Room], a)
	}

	rooms := make([]string, 0, len(byRoom))
	for r := range byRoom {
		rooms = append(rooms, r)
	}
	sort.Strings(rooms)

	for _, room := range rooms {
		rows := byRoom[room]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Start != rows[j].Start {
				return rows[i].Start < rows[j].Start
			}
			return rows[i].Section < rows[j].Section
		})

		fmt.Fprintf(w, "%s\n", room)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Section", "Days", "Start", "End"})
		for _, a := range rows {
			table.Append([]string{
				a.Section,
				a.Days,
				formatClock(a.Start),
				formatClock(a.End),
			})
		}
		table.Render()
	}
}

// BySection renders a single table, one row per section, sorted by
// section identifier.
func BySection(w io.Writer, assignments []crsat.Assignment) {
	rows := make([]crsat.Assignment, len(assignments))
	copy(rows, assignments)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Section < rows[j].Section })

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Room", "Days", "Start", "End"})
	for _, a := range rows {
		table.Append([]string{
			a.Section,
			a.Room,
			a.Days,
			formatClock(a.Start),
			formatClock(a.End),
		})
	}
	table.Render()
}
