package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gameready/internal/schedule"
	"gameready/internal/service"
	"gameready/internal/store"
)

// RenderRoster renders the coach's squad view for a date
func RenderRoster(r *service.Roster) string {
	var sections []string

	sections = append(sections, headerStyle.Render(fmt.Sprintf("%s  %s  %s",
		r.Team.Name, schedule.DateKey(r.Date), dayTypeName(r.DayType))))

	summary := card("Team",
		RenderMetric("Target", fmt.Sprintf("%s (mid %d)", r.Range, r.Range.Midpoint())),
		RenderMetric("Average today", rangeStyle(r.AverageStatus).Render(scoreOrDash(r.TeamAverage, r.Submitted > 0))),
		RenderMetric("7-day average", scoreOrDash(r.HistoricAverage, r.HistoricAverage > 0)),
		RenderMetric("Above / In / Below", fmt.Sprintf("%d / %d / %d", r.Above, r.Within, r.Below)),
		RenderMetric("Compliance", fmt.Sprintf("%d/%d  %d%%", r.Submitted, r.Total, r.CompliancePct)),
		RenderProgressBar(float64(r.CompliancePct)/100, 30),
	)

	insights := []string{mutedStyle.Render("No reports yet")}
	if r.HasInsights {
		insights = []string{
			RenderMetric("Lowest metric", fmt.Sprintf("%s (%.1f)", r.LowestMetric.Label(), r.MetricAverages[r.LowestMetric])),
			RenderMetric("Best metric", fmt.Sprintf("%s (%.1f)", r.BestMetric.Label(), r.MetricAverages[r.BestMetric])),
		}
		if r.HasLimiter {
			insights = append(insights, RenderMetric("Primary limiter",
				fmt.Sprintf("%s (%d of %d, %.1f%%)", r.Limiter.Metric.Label(), r.Limiter.Count, r.Limiter.Total, r.Limiter.Percent)))
		}
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, summary, "  ", card("Insights", insights...)))
	sections = append(sections, renderSquad(r.Squad))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderSquad(rows []service.RosterRow) string {
	if len(rows) == 0 {
		return card("Squad", mutedStyle.Render("No athletes on this team"))
	}

	lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-16s  %5s  %-6s  %-14s  %-18s  %s",
		"Athlete", "Score", "Range", "Status", "Limiter", "Availability"))}

	for _, row := range rows {
		score, rangeCol, limiter := "-", "-", "-"
		if row.Submitted() {
			score = fmt.Sprintf("%d", row.Report.Score)
			rangeCol = string(row.RangeStatus)
			limiter = row.Limiter.Label()
		}
		status := string(row.Status)
		if status == "" {
			status = "-"
		}
		line := fmt.Sprintf("%-16s  %5s  %-6s  %-14s  %-18s  %s",
			truncateName(row.Athlete.Username, 16),
			score,
			rangeCol,
			status,
			limiter,
			availability(row.Athlete),
		)
		style := statusStyle(row.Status)
		if row.Submitted() {
			style = rangeStyle(row.RangeStatus)
		}
		lines = append(lines, style.Render(line))
	}
	return card("Squad", lines...)
}

func availability(u store.User) string {
	if u.Status == "" {
		return string(store.AvailabilityAvailable)
	}
	if u.StatusNote != "" {
		return fmt.Sprintf("%s (%s)", u.Status, truncateName(u.StatusNote, 20))
	}
	return string(u.Status)
}

func dayTypeName(dt *store.DayType) string {
	if dt == nil {
		return "No day type"
	}
	return dt.Name
}

func scoreOrDash(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}
