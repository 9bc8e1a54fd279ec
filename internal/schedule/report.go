package schedule

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport writes the fixed-format text report for an assignment. Lines
// whose underlying field is absent are omitted; a case's Room line appears
// only when it differs from the top-level room assignment.
func WriteReport(w io.Writer, a *Assignment) {
	if !a.Found {
		fmt.Fprintf(w, "\nPerson %q not found in the schedule for %s.\n", a.Person, a.Date)
		return
	}

	fmt.Fprintf(w, "\n=== Assignment for %s on %s ===\n\n", a.Person, a.Date)

	if a.PersonnelInfo != nil {
		fmt.Fprintln(w, "Personnel Information:")
		fmt.Fprintf(w, "  Group: %s\n", a.PersonnelInfo.Group)
		if a.PersonnelInfo.Rotation != "" {
			fmt.Fprintf(w, "  Rotation: %s\n", a.PersonnelInfo.Rotation)
		}
		if a.PersonnelInfo.Assignment != "" {
			fmt.Fprintf(w, "  Assignment: %s\n", a.PersonnelInfo.Assignment)
		}
		if a.PersonnelInfo.Comment != "" {
			fmt.Fprintf(w, "  Comment: %s\n", a.PersonnelInfo.Comment)
		}
		fmt.Fprintln(w)
	}

	if a.RoomAssignment != "" {
		fmt.Fprintf(w, "Room Assignment: %s\n\n", a.RoomAssignment)
	}

	if len(a.Cases) == 0 {
		fmt.Fprintln(w, "No specific cases found for this assignment.")
		return
	}

	fmt.Fprintln(w, "Cases:")
	for i, c := range a.Cases {
		fmt.Fprintf(w, "  Case %d:\n", i+1)
		if c.Room != "" && c.Room != a.RoomAssignment {
			fmt.Fprintf(w, "    Room: %s\n", c.Room)
		}
		if c.Time != "" {
			fmt.Fprintf(w, "    Time: %s\n", c.Time)
		}
		if len(c.Personnel) > 0 {
			fmt.Fprintf(w, "    Team: %s\n", strings.Join(c.Personnel, ", "))
		}
		if c.PatientAge != "" {
			fmt.Fprintf(w, "    Patient Age: %s\n", c.PatientAge)
		}
		if c.Description != "" {
			fmt.Fprintf(w, "    Procedure: %s\n", c.Description)
		}
		if c.AnesthesiaType != "" {
			fmt.Fprintf(w, "    Anesthesia: %s\n", c.AnesthesiaType)
		}
		if c.Surgeon != "" {
			fmt.Fprintf(w, "    Surgeon: %s\n", c.Surgeon)
		}
		fmt.Fprintln(w)
	}
}

// Report renders the assignment report as a string.
func Report(a *Assignment) string {
	var b strings.Builder
	WriteReport(&b, a)
	return b.String()
}
