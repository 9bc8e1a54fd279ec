package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kbecker/orwatch/internal/schedule"
)

// Parse extracts a schedule snapshot from the raw page markup. Missing
// elements are never an error: absent fields are omitted, rows that yield an
// entirely empty procedure are discarded, and rooms left without entries are
// dropped. Only unreadable input fails.
func Parse(r io.Reader) (*schedule.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	snap := &schedule.Snapshot{
		Date:     "Unknown Date",
		ParsedAt: time.Now().UTC(),
	}

	if sel := doc.Find(".date").First(); sel.Length() > 0 {
		snap.Date = sel.Text()
	}
	snap.FormattedDate = schedule.FormatDate(snap.Date)
	snap.GlobalComments = strings.TrimSpace(doc.Find(".global_comments").First().Text())

	snap.PersonnelSchedule, snap.GroupOrder = parsePersonnelSchedule(doc)
	snap.ProcedureSchedule, snap.RoomOrder = parseProcedureSchedule(doc)

	return snap, nil
}

// parsePersonnelSchedule partitions the flat document-order sequence of
// group-title and schedule-entry markers into per-group runs. The source
// markup relates entries to their group by sibling position, not nesting, so
// an entry belongs to the most recent title before it; entries before any
// title are ignored.
func parsePersonnelSchedule(doc *goquery.Document) (map[string][]schedule.PersonnelEntry, []string) {
	groups := make(map[string][]schedule.PersonnelEntry)
	order := make([]string, 0)

	current := ""
	doc.Find(".subgroup_title, .schedule_entry").Each(func(i int, sel *goquery.Selection) {
		if sel.HasClass("subgroup_title") {
			current = strings.TrimSpace(sel.Text())
			if _, exists := groups[current]; !exists {
				groups[current] = []schedule.PersonnelEntry{}
				order = append(order, current)
			}
			return
		}
		if current == "" {
			return
		}
		groups[current] = append(groups[current], parsePersonnelEntry(sel))
	})

	return groups, order
}

// parsePersonnelEntry probes the four labeled sub-elements independently;
// any of them may be missing.
func parsePersonnelEntry(sel *goquery.Selection) schedule.PersonnelEntry {
	var entry schedule.PersonnelEntry

	if s := sel.Find(".person").First(); s.Length() > 0 {
		entry.Person = strings.TrimSpace(s.Text())
	}
	if s := sel.Find(".rotation").First(); s.Length() > 0 {
		entry.Rotation = trimRotation(s.Text())
	}
	if s := sel.Find(".assignment").First(); s.Length() > 0 {
		entry.Assignment = strings.TrimSpace(s.Text())
	}
	if s := sel.Find(".comment").First(); s.Length() > 0 {
		entry.Comment = strings.TrimSpace(s.Text())
	}

	return entry
}

// parseProcedureSchedule groups room-attributed table rows by their room
// identifier. Rows that produce an empty entry are skipped, so a room only
// appears in the result once it has at least one non-empty entry.
func parseProcedureSchedule(doc *goquery.Document) (map[string][]schedule.ProcedureEntry, []string) {
	rooms := make(map[string][]schedule.ProcedureEntry)
	order := make([]string, 0)

	doc.Find("tr[data-orwatch-room]").Each(func(i int, row *goquery.Selection) {
		room, _ := row.Attr("data-orwatch-room")
		proc := parseProcedureRow(row)
		if proc.IsEmpty() {
			return
		}
		if _, exists := rooms[room]; !exists {
			order = append(order, room)
		}
		rooms[room] = append(rooms[room], proc)
	})

	return rooms, order
}

func parseProcedureRow(row *goquery.Selection) schedule.ProcedureEntry {
	var proc schedule.ProcedureEntry

	if s := row.Find(".time").First(); s.Length() > 0 {
		proc.Time = strings.TrimSpace(s.Text())
	}

	cells := row.Find("td")

	// Personnel live in the third cell, patient age in the fourth.
	if cells.Length() > 2 {
		cells.Eq(2).Find(".person").Each(func(i int, s *goquery.Selection) {
			proc.Personnel = append(proc.Personnel, strings.TrimSpace(s.Text()))
		})
	}
	if cells.Length() > 3 {
		if age := strings.TrimSpace(cells.Eq(3).Text()); age != "" {
			proc.PatientAge = age
		}
	}

	// The last cell holds one or two small text blocks: the procedure
	// description (with embedded CPT links and anesthesia type), then
	// optionally the surgeon in a nested span.
	if cells.Length() > 0 {
		smalls := cells.Eq(cells.Length() - 1).Find("small")
		if smalls.Length() > 0 {
			desc := smalls.Eq(0)
			proc.Description = strings.TrimSpace(desc.Text())
			proc.CPTCodes = extractCPTCodes(desc)
			proc.AnesthesiaType = anesthesiaType(proc.Description)
		}
		if smalls.Length() > 1 {
			if span := smalls.Eq(1).Find("span").First(); span.Length() > 0 {
				proc.Surgeon = strings.TrimSpace(span.Text())
			}
		}
	}

	return proc
}
