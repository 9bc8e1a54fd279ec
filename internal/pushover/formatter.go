package pushover

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbecker/orwatch/internal/schedule"
)

const maxProcedureLength = 100

// FormatAssignment renders a resolved assignment as the HTML notification
// body. Absent fields are omitted, case times are shortened to clock times,
// and long procedure descriptions are truncated.
func FormatAssignment(a *schedule.Assignment) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("<b>📅 Schedule for %s</b>\n\n", a.Date))

	if a.PersonnelInfo != nil {
		msg.WriteString("<b>👤 Your Information:</b>\n")
		msg.WriteString(fmt.Sprintf("• <b>Group:</b> %s\n", a.PersonnelInfo.Group))
		if a.PersonnelInfo.Rotation != "" {
			msg.WriteString(fmt.Sprintf("• <b>Rotation:</b> %s\n", a.PersonnelInfo.Rotation))
		}
		if a.PersonnelInfo.Assignment != "" {
			msg.WriteString(fmt.Sprintf("• <b>Assignment:</b> %s\n", a.PersonnelInfo.Assignment))
		}
		if a.PersonnelInfo.Comment != "" {
			msg.WriteString(fmt.Sprintf("• <b>Comment:</b> %s\n", a.PersonnelInfo.Comment))
		}
		msg.WriteString("\n")
	}

	if a.RoomAssignment != "" {
		msg.WriteString(fmt.Sprintf("<b>🏥 Room Assignment:</b> %s\n\n", a.RoomAssignment))
	}

	if len(a.Cases) > 0 {
		msg.WriteString(fmt.Sprintf("<b>📋 Cases (%d):</b>\n", len(a.Cases)))
		for i, c := range a.Cases {
			msg.WriteString(fmt.Sprintf("<b>Case %d:</b>\n", i+1))
			if c.Time != "" {
				msg.WriteString(fmt.Sprintf("• <b>Time:</b> %s\n", schedule.FormatClock(c.Time)))
			}
			if len(c.Personnel) > 0 {
				msg.WriteString(fmt.Sprintf("• <b>Team:</b> %s\n", strings.Join(c.Personnel, ", ")))
			}
			if c.PatientAge != "" {
				msg.WriteString(fmt.Sprintf("• <b>Patient:</b> %s\n", c.PatientAge))
			}
			if c.Description != "" {
				msg.WriteString(fmt.Sprintf("• <b>Procedure:</b> %s\n", truncate(c.Description, maxProcedureLength)))
			}
			if c.AnesthesiaType != "" {
				msg.WriteString(fmt.Sprintf("• <b>Anesthesia:</b> %s\n", c.AnesthesiaType))
			}
			if c.Surgeon != "" {
				msg.WriteString(fmt.Sprintf("• <b>Surgeon:</b> %s\n", c.Surgeon))
			}
			msg.WriteString("\n")
		}
	} else {
		msg.WriteString("<b>No specific cases found for this assignment.</b>\n")
	}

	msg.WriteString(fmt.Sprintf("\n<i>Updated at %s</i>", time.Now().Format("3:04 PM on Monday, January 02, 2006")))

	return msg.String()
}

// FirstRunTitle is the notification title for the first schedule seen for a
// person.
func FirstRunTitle(person string) string {
	return fmt.Sprintf("📅 Schedule for %s", person)
}

// UpdatedTitle is the notification title when a person's schedule changed.
func UpdatedTitle(person string) string {
	return fmt.Sprintf("🔄 Schedule Updated for %s", person)
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
