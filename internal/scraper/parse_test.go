package scraper

import (
	"strings"
	"testing"
)

const sampleSchedule = `<html><body>
<span class="date">2024-01-01 07:00:00</span>
<div class="global_comments">  Staff meeting at 0630.  </div>

<div class="schedule_entry"><span class="person">Orphan,X</span></div>

<div class="subgroup_title">CA-1</div>
<div class="schedule_entry">
  <span class="person">Smith,J</span>
  <span class="rotation">(Cardiac)</span>
  <div class="assignment">OR3</div>
  <div class="comment">Late start</div>
</div>
<div class="schedule_entry">
  <span class="person">Doe,A</span>
  <div class="assignment">Float</div>
</div>
<div class="subgroup_title">CA-2</div>
<div class="schedule_entry">
  <span class="person">Lee,M</span>
</div>
<div class="subgroup_title">CRNA</div>

<table>
<tr data-orwatch-room="OR3">
  <td><span class="time">2024-01-01 07:30:00</span></td>
  <td>Room 3</td>
  <td><span class="person">Smith,J</span><span class="person">Nguyen,P</span></td>
  <td>64yo</td>
  <td>
    <small>Appendectomy <a class="intranet" href="/lookup?cpt=44950&amp;src=desc">44950</a> (General)</small>
    <small>Surgeon: <span>Patel,R</span></small>
  </td>
</tr>
<tr data-orwatch-room="OR5">
  <td><span class="time">2024-01-01 09:00:00</span></td>
  <td>Room 5</td>
  <td><span class="person">Doe,A</span></td>
  <td></td>
  <td><small>Knee arthroscopy <a class="intranet" href="/lookup?cpt=29881">29881</a> <a class="intranet" href="/lookup?cpt=29881">29881</a> (MAC)</small></td>
</tr>
<tr data-orwatch-room="OR9">
  <td></td><td></td><td></td><td></td><td></td>
</tr>
</table>
</body></html>`

func TestParsePersonnelSchedule(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleSchedule))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantGroups := []string{"CA-1", "CA-2", "CRNA"}
	if len(snap.GroupOrder) != len(wantGroups) {
		t.Fatalf("expected %d groups, got %d (%v)", len(wantGroups), len(snap.GroupOrder), snap.GroupOrder)
	}
	for i, name := range wantGroups {
		if snap.GroupOrder[i] != name {
			t.Errorf("group order[%d] = %q, want %q", i, snap.GroupOrder[i], name)
		}
	}

	ca1 := snap.PersonnelSchedule["CA-1"]
	if len(ca1) != 2 {
		t.Fatalf("expected 2 entries in CA-1, got %d", len(ca1))
	}
	smith := ca1[0]
	if smith.Person != "Smith,J" {
		t.Errorf("person = %q, want %q", smith.Person, "Smith,J")
	}
	if smith.Rotation != "Cardiac" {
		t.Errorf("rotation = %q, want %q (parentheses stripped)", smith.Rotation, "Cardiac")
	}
	if smith.Assignment != "OR3" {
		t.Errorf("assignment = %q, want %q", smith.Assignment, "OR3")
	}
	if smith.Comment != "Late start" {
		t.Errorf("comment = %q, want %q", smith.Comment, "Late start")
	}

	doe := ca1[1]
	if doe.Rotation != "" || doe.Comment != "" {
		t.Errorf("missing sub-elements should stay empty, got rotation=%q comment=%q", doe.Rotation, doe.Comment)
	}

	// A group title with no entries is still recorded.
	if entries, ok := snap.PersonnelSchedule["CRNA"]; !ok {
		t.Error("empty group CRNA should be present")
	} else if len(entries) != 0 {
		t.Errorf("expected 0 entries in CRNA, got %d", len(entries))
	}

	// Entries before the first group title belong to no group.
	for group, entries := range snap.PersonnelSchedule {
		for _, entry := range entries {
			if entry.Person == "Orphan,X" {
				t.Errorf("entry before first group title leaked into group %q", group)
			}
		}
	}
}

func TestParseProcedureSchedule(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleSchedule))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantRooms := []string{"OR3", "OR5"}
	if len(snap.RoomOrder) != len(wantRooms) {
		t.Fatalf("expected rooms %v, got %v", wantRooms, snap.RoomOrder)
	}
	for i, room := range wantRooms {
		if snap.RoomOrder[i] != room {
			t.Errorf("room order[%d] = %q, want %q", i, snap.RoomOrder[i], room)
		}
	}

	// The all-empty OR9 row must not survive.
	if _, ok := snap.ProcedureSchedule["OR9"]; ok {
		t.Error("room with only empty entries should be dropped")
	}

	or3 := snap.ProcedureSchedule["OR3"]
	if len(or3) != 1 {
		t.Fatalf("expected 1 procedure in OR3, got %d", len(or3))
	}
	proc := or3[0]
	if proc.Time != "2024-01-01 07:30:00" {
		t.Errorf("time = %q", proc.Time)
	}
	if len(proc.Personnel) != 2 || proc.Personnel[0] != "Smith,J" || proc.Personnel[1] != "Nguyen,P" {
		t.Errorf("personnel = %v", proc.Personnel)
	}
	if proc.PatientAge != "64yo" {
		t.Errorf("patient age = %q", proc.PatientAge)
	}
	if !strings.HasPrefix(proc.Description, "Appendectomy") {
		t.Errorf("description = %q", proc.Description)
	}
	if len(proc.CPTCodes) != 1 || proc.CPTCodes[0] != "44950" {
		t.Errorf("cpt codes = %v", proc.CPTCodes)
	}
	if proc.AnesthesiaType != "General" {
		t.Errorf("anesthesia = %q, want %q", proc.AnesthesiaType, "General")
	}
	if proc.Surgeon != "Patel,R" {
		t.Errorf("surgeon = %q, want %q", proc.Surgeon, "Patel,R")
	}

	or5 := snap.ProcedureSchedule["OR5"]
	if len(or5) != 1 {
		t.Fatalf("expected 1 procedure in OR5, got %d", len(or5))
	}
	if or5[0].PatientAge != "" {
		t.Errorf("empty age cell should stay empty, got %q", or5[0].PatientAge)
	}
	// Duplicate CPT links are kept in encounter order, not deduplicated.
	if len(or5[0].CPTCodes) != 2 || or5[0].CPTCodes[0] != "29881" || or5[0].CPTCodes[1] != "29881" {
		t.Errorf("cpt codes = %v", or5[0].CPTCodes)
	}
	if or5[0].AnesthesiaType != "MAC" {
		t.Errorf("anesthesia = %q, want %q", or5[0].AnesthesiaType, "MAC")
	}
	if or5[0].Surgeon != "" {
		t.Errorf("surgeon should be empty without a second small block, got %q", or5[0].Surgeon)
	}
}

func TestParseDocumentMetadata(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleSchedule))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if snap.Date != "2024-01-01 07:00:00" {
		t.Errorf("date = %q", snap.Date)
	}
	if snap.FormattedDate != "Monday, January 01, 2024" {
		t.Errorf("formatted date = %q", snap.FormattedDate)
	}
	if snap.GlobalComments != "Staff meeting at 0630." {
		t.Errorf("global comments = %q", snap.GlobalComments)
	}
	if snap.ParsedAt.IsZero() {
		t.Error("parsed_at should be set")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	snap, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(snap.PersonnelSchedule) != 0 {
		t.Errorf("expected empty personnel schedule, got %v", snap.PersonnelSchedule)
	}
	if len(snap.ProcedureSchedule) != 0 {
		t.Errorf("expected empty procedure schedule, got %v", snap.ProcedureSchedule)
	}
	if snap.Date != "Unknown Date" {
		t.Errorf("date = %q, want %q", snap.Date, "Unknown Date")
	}
	if snap.FormattedDate != "Unknown Date" {
		t.Errorf("formatted date should fall back verbatim, got %q", snap.FormattedDate)
	}
	if snap.GlobalComments != "" {
		t.Errorf("global comments = %q, want empty", snap.GlobalComments)
	}
}
