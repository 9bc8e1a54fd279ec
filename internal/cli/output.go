package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kbecker/orwatch/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Result contains data to be output for one check run.
type Result struct {
	CheckedAt  time.Time            `json:"checked_at"`
	Changed    bool                 `json:"changed"`
	Snapshot   *schedule.Snapshot   `json:"snapshot,omitempty"`
	Assignment *schedule.Assignment `json:"assignment,omitempty"`
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the result as JSON
func writeJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the result as human-readable text
func writeText(w io.Writer, result *Result) error {
	snap := result.Snapshot
	if snap == nil {
		fmt.Fprintln(w, "No schedule available.")
		return nil
	}

	fmt.Fprintf(w, "Schedule for %s\n", snap.FormattedDate)
	if snap.GlobalComments != "" {
		fmt.Fprintf(w, "Comments: %s\n", snap.GlobalComments)
	}

	personnel := 0
	for _, entries := range snap.PersonnelSchedule {
		personnel += len(entries)
	}
	procedures := 0
	for _, entries := range snap.ProcedureSchedule {
		procedures += len(entries)
	}
	fmt.Fprintf(w, "Personnel: %d across %d groups\n", personnel, len(snap.PersonnelSchedule))
	fmt.Fprintf(w, "Procedures: %d across %d rooms\n", procedures, len(snap.ProcedureSchedule))

	if result.Changed {
		fmt.Fprintln(w, "Schedule content has changed since the last check.")
	} else {
		fmt.Fprintln(w, "No changes since the last check.")
	}

	if result.Assignment != nil {
		schedule.WriteReport(w, result.Assignment)
	}

	return nil
}
