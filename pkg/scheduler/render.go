package scheduler

import (
	"fmt"
	"strings"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// Column widths of the rendered timetable
const (
	NicknameWidth    = 30
	DescriptionWidth = 25
)

// FormatItem renders one placed item as "<nickname><description><minutes> mins"
func FormatItem(item *models.ScheduleItem, catalog *Catalog) string {
	nickname := catalog.Nickname(item)
	if item.NeedsVolunteer() {
		nickname += " (+ Volunteer)"
	}
	return fmt.Sprintf("%-*s%-*s%5d mins", NicknameWidth, nickname, DescriptionWidth, catalog.Description(item), item.Duration())
}

// Render formats the timetable hour by hour, marking hours without placements as Empty
func Render(timetable Timetable, catalog *Catalog) string {
	var b strings.Builder
	for hour, items := range timetable {
		fmt.Fprintf(&b, "Hour: %d\n", hour)
		if len(items) == 0 {
			b.WriteString("Empty\n")
		}
		for _, item := range items {
			b.WriteString(FormatItem(item, catalog))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
