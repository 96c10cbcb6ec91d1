package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"gameready/internal/analysis"
	"gameready/internal/schedule"
	"gameready/internal/service"
)

// RenderSubmitResult renders the athlete's confirmation after submitting
func RenderSubmitResult(res *service.SubmitResult) string {
	r := res.Report
	lines := []string{
		RenderMetric("Date", schedule.DateKey(r.Date)),
		RenderMetric("Readiness", fmt.Sprintf("%d", r.Score)),
		RenderMetric("Primary limiter", res.Limiter.Label()),
		RenderMetric("Strongest", res.Strength.Label()),
		"",
	}
	for _, m := range analysis.AllMetrics {
		v := analysis.Value(r.Metrics, m)
		lines = append(lines, RenderMetric(m.Label(), fmt.Sprintf("%2d  %s", v, analysis.Classify(v))))
	}
	lines = append(lines, "", successStyle.Render(res.Feedback))
	return card("Report saved", lines...)
}

// RenderDays renders an athlete's week or month as a list
func RenderDays(entries []service.DayEntry) string {
	lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-3s  %-16s  %-7s  %5s  %-6s  %s",
		"Date", "Day", "Day type", "Target", "Score", "Range", "Status"))}
	for _, e := range entries {
		score, rangeCol := "-", "-"
		style := tableRowStyle
		if e.Report != nil {
			score = fmt.Sprintf("%d", e.Report.Score)
			rangeCol = string(e.RangeStatus)
			style = rangeStyle(e.RangeStatus)
		}
		status := string(e.Status)
		if status == "" {
			status = "-"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-10s  %-3s  %-16s  %-7s  %5s  %-6s  %s",
			schedule.DateKey(e.Date),
			e.Weekday,
			truncateName(dayTypeName(e.DayType), 16),
			e.Range,
			score,
			rangeCol,
			status,
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderSummary renders an athlete's streak, baseline and score trend
func RenderSummary(s *service.Summary, now time.Time) string {
	lines := []string{
		RenderMetric("Athlete", s.Athlete.Username),
		RenderMetric("Availability", availability(s.Athlete)),
		RenderMetric("Teams", fmt.Sprintf("%d", len(s.Teams))),
		RenderMetric("Streak", fmt.Sprintf("%d days", s.Streak)),
	}
	if s.Latest != nil {
		lines = append(lines, RenderMetric("Last report",
			fmt.Sprintf("%d, %s", s.Latest.Score, humanize.RelTime(s.Latest.Date, now, "ago", "from now"))))
	} else {
		lines = append(lines, RenderMetric("Last report", "never"))
	}
	if s.HasBaseline {
		lines = append(lines, RenderMetric("14-day baseline", fmt.Sprintf("%.1f", s.Baseline)))
	}
	if s.HasConsistency {
		lines = append(lines, RenderMetric("Consistency (sd)", fmt.Sprintf("%.1f", s.Consistency)))
	}
	if s.HasLimiter {
		lines = append(lines, RenderMetric("Primary limiter", s.Limiter.Label()))
	}

	sections := []string{card("Summary", lines...)}
	if chart := renderTrend(s.TrendScores); chart != "" {
		sections = append(sections, card("Readiness - last 30 days", chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTrend plots scores once there are enough points to show a trend
func renderTrend(scores []float64) string {
	if len(scores) < analysis.MinTrendSamples {
		return ""
	}
	return asciigraph.Plot(scores,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
	)
}
