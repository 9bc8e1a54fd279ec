package schedule

import (
	"sort"
	"time"
)

// PersonnelEntry is one person's line in the personnel schedule. All fields
// are optional in the source markup; an empty string means the corresponding
// sub-element was absent.
type PersonnelEntry struct {
	Person     string `json:"person,omitempty"`
	Rotation   string `json:"rotation,omitempty"`
	Assignment string `json:"assignment,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// ProcedureEntry is one case row in a procedure room.
type ProcedureEntry struct {
	Time           string   `json:"time,omitempty"`
	Personnel      []string `json:"personnel,omitempty"`
	PatientAge     string   `json:"patient_age,omitempty"`
	Description    string   `json:"description,omitempty"`
	CPTCodes       []string `json:"cpt_codes,omitempty"`
	AnesthesiaType string   `json:"anesthesia_type,omitempty"`
	Surgeon        string   `json:"surgeon,omitempty"`
}

// IsEmpty reports whether every field of the entry is unset. Empty entries
// are excluded from snapshots; a room with only empty entries is dropped.
func (p ProcedureEntry) IsEmpty() bool {
	return p.Time == "" &&
		len(p.Personnel) == 0 &&
		p.PatientAge == "" &&
		p.Description == "" &&
		len(p.CPTCodes) == 0 &&
		p.AnesthesiaType == "" &&
		p.Surgeon == ""
}

// Snapshot is one fully-assembled view of the daily schedule. It is created
// once per successful parse and never mutated afterward.
//
// GroupOrder and RoomOrder record document order for the two schedule maps,
// since the resolver's "first encountered" semantics depend on it.
type Snapshot struct {
	Date              string                      `json:"date"`
	FormattedDate     string                      `json:"formatted_date"`
	GlobalComments    string                      `json:"global_comments"`
	PersonnelSchedule map[string][]PersonnelEntry `json:"personnel_schedule"`
	ProcedureSchedule map[string][]ProcedureEntry `json:"procedure_schedule"`
	GroupOrder        []string                    `json:"group_order,omitempty"`
	RoomOrder         []string                    `json:"room_order,omitempty"`
	ParsedAt          time.Time                   `json:"parsed_at"`
}

// Groups returns group names in document order. Snapshots deserialized
// without order information fall back to sorted names so that resolution
// stays deterministic.
func (s *Snapshot) Groups() []string {
	if len(s.GroupOrder) == len(s.PersonnelSchedule) {
		return s.GroupOrder
	}
	keys := make([]string, 0, len(s.PersonnelSchedule))
	for name := range s.PersonnelSchedule {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Rooms returns room identifiers in document order, with the same fallback
// as Groups.
func (s *Snapshot) Rooms() []string {
	if len(s.RoomOrder) == len(s.ProcedureSchedule) {
		return s.RoomOrder
	}
	keys := make([]string, 0, len(s.ProcedureSchedule))
	for room := range s.ProcedureSchedule {
		keys = append(keys, room)
	}
	sort.Strings(keys)
	return keys
}

// PersonnelInfo is a matched personnel entry together with the group it was
// found under.
type PersonnelInfo struct {
	Group string `json:"group"`
	PersonnelEntry
}

// Case is a procedure entry tagged with the room it takes place in.
type Case struct {
	ProcedureEntry
	Room string `json:"room,omitempty"`
}

// Assignment is the result of resolving one person against a snapshot. It is
// a transient view; nothing here is persisted.
type Assignment struct {
	Date           string         `json:"date"`
	Person         string         `json:"person"`
	Found          bool           `json:"found"`
	PersonnelInfo  *PersonnelInfo `json:"personnel_info"`
	RoomAssignment string         `json:"room_assignment,omitempty"`
	Cases          []Case         `json:"cases"`
}
