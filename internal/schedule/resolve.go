package schedule

import "strings"

// Resolve locates person's entry in the snapshot and cross-references it
// against the procedure rooms.
//
// Matching on the person field is case-insensitive exact match; groups are
// scanned in stored order and the first match wins. When the matched entry's
// assignment names a known room, that room's procedures become the cases
// verbatim. Otherwise every room is scanned for personnel-list membership:
// the first matching room becomes the room assignment, and each matching
// room contributes its full procedure list once.
//
// A person absent from the personnel schedule resolves to Found=false even
// if procedure rows mention the name; lookups never start from the procedure
// side.
func Resolve(snap *Snapshot, person string) *Assignment {
	result := &Assignment{
		Date:   snap.FormattedDate,
		Person: person,
		Cases:  []Case{},
	}

	for _, group := range snap.Groups() {
		for _, entry := range snap.PersonnelSchedule[group] {
			if entry.Person != "" && strings.EqualFold(entry.Person, person) {
				result.Found = true
				result.PersonnelInfo = &PersonnelInfo{
					Group:          group,
					PersonnelEntry: entry,
				}
				break
			}
		}
		if result.Found {
			break
		}
	}

	if !result.Found || result.PersonnelInfo.Assignment == "" {
		return result
	}

	assignment := result.PersonnelInfo.Assignment
	if procedures, ok := snap.ProcedureSchedule[assignment]; ok {
		result.RoomAssignment = assignment
		for _, proc := range procedures {
			result.Cases = append(result.Cases, Case{ProcedureEntry: proc, Room: assignment})
		}
		return result
	}

	// The assignment is free text (e.g. "Float"), not a room. Fall back to
	// scanning every room's personnel lists for the person.
	seen := make(map[string]bool)
	for _, room := range snap.Rooms() {
		for _, proc := range snap.ProcedureSchedule[room] {
			if !containsFold(proc.Personnel, person) {
				continue
			}
			if result.RoomAssignment == "" {
				result.RoomAssignment = room
			}
			if !seen[room] {
				seen[room] = true
				for _, p := range snap.ProcedureSchedule[room] {
					result.Cases = append(result.Cases, Case{ProcedureEntry: p, Room: room})
				}
			}
			break
		}
	}

	return result
}

func containsFold(names []string, target string) bool {
	for _, name := range names {
		if strings.EqualFold(name, target) {
			return true
		}
	}
	return false
}
