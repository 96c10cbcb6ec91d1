package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"gameready/internal/schedule"
	"gameready/internal/service"
	"gameready/internal/store"
)

const cellWidth = 12

var cellStyle = lipgloss.NewStyle().Width(cellWidth)

// RenderCalendar renders a Monday-first month grid. Each cell shows the day
// number, its day type and the team average when anyone reported.
func RenderCalendar(m schedule.Month, days []service.CalendarDay) string {
	var b strings.Builder

	header := make([]string, 0, len(schedule.Weekdays))
	for _, wd := range schedule.Weekdays {
		header = append(header, cellStyle.Render(string(wd)))
	}
	b.WriteString(titleStyle.Render(m.First().Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(tableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...)))
	b.WriteString("\n")

	week := make([]string, 0, 7)
	if len(days) > 0 {
		for _, wd := range schedule.Weekdays {
			if wd == days[0].Weekday {
				break
			}
			week = append(week, cellStyle.Render(""))
		}
	}
	for _, d := range days {
		week = append(week, cellStyle.Render(renderCell(d)))
		if len(week) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
			b.WriteString("\n")
			week = week[:0]
		}
	}
	if len(week) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(d service.CalendarDay) string {
	lines := []string{fmt.Sprintf("%2d", d.Date.Day())}
	switch {
	case d.DayType != nil:
		name := truncateName(d.DayType.Name, cellWidth-1)
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(d.DayType.Color)).Render(name))
	case d.Override.IsCleared():
		lines = append(lines, mutedStyle.Render("cleared"))
	default:
		lines = append(lines, mutedStyle.Render("·"))
	}
	if d.ReportCount > 0 {
		lines = append(lines, fmt.Sprintf("%.0f (%d)", d.AvgScore, d.ReportCount))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// RenderCopySummary lists what CopyMonth wrote, e.g. "2nd Mon  Training"
func RenderCopySummary(src, dst schedule.Month, assignments []schedule.Assignment, types map[int64]store.DayType) string {
	lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-9s  %-9s  %s", "Date", "Slot", "From", "Day type"))}
	for _, a := range assignments {
		from := "-"
		if a.SourceOccurrence > 0 {
			from = fmt.Sprintf("%s %s", humanize.Ordinal(a.SourceOccurrence), a.Weekday)
		}
		name := mutedStyle.Render("cleared")
		if a.DayTypeID != nil {
			if dt, ok := types[*a.DayTypeID]; ok {
				name = dt.Name
			}
		}
		lines = append(lines, fmt.Sprintf("%-10s  %-9s  %-9s  %s",
			schedule.DateKey(a.Date),
			fmt.Sprintf("%s %s", humanize.Ordinal(a.Occurrence), a.Weekday),
			from,
			name,
		))
	}
	return card(fmt.Sprintf("Copied %s into %s (%d dates)", src, dst, len(assignments)), lines...)
}

// RenderDayTypes lists a team's day types ordered by name
func RenderDayTypes(types map[int64]store.DayType) string {
	if len(types) == 0 {
		return card("Day types", mutedStyle.Render("No day types defined"))
	}
	sorted := make([]store.DayType, 0, len(types))
	for _, dt := range types {
		sorted = append(sorted, dt)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%4s  %-20s  %-8s  %-7s  %s", "ID", "Name", "Color", "Target", "Mid"))}
	for _, dt := range sorted {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(dt.Color)).Render("■")
		lines = append(lines, fmt.Sprintf("%4d  %-20s  %s %-6s  %-7s  %d",
			dt.ID, truncateName(dt.Name, 20), swatch, dt.Color,
			fmt.Sprintf("%d-%d", dt.TargetMin, dt.TargetMax), dt.Midpoint()))
	}
	return card("Day types", lines...)
}
