// Package schedule provides the types and resolution logic for a parsed
// daily OR schedule.
//
// A Snapshot is one immutable view of the schedule: personnel entries grouped
// by subgroup title, procedures grouped by room, plus the document-level date
// and comments. Resolve locates one person's entry across the personnel
// groups and cross-references it against the procedure rooms to produce an
// Assignment, which can be rendered as a fixed-format text report.
package schedule
