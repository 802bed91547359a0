// Package visuals renders Mermaid chart blocks the portal can embed next to
// the raw report JSON. Rendering is presentation sugar; nothing here feeds
// back into the report computations.
package visuals

import (
	"fmt"
	"math"
	"strings"

	"ria-analytics/internal/reports"
)

// GenerateBottleneckChart creates a Mermaid xychart-beta comparing observed
// mean dwell against expected duration per stage.
func GenerateBottleneckChart(stages []reports.BottleneckStage) string {
	if len(stages) == 0 {
		return ""
	}

	var labels []string
	var observed []string
	var expected []string

	maxY := 1.0
	for _, s := range stages {
		labels = append(labels, fmt.Sprintf("%d", s.StageNumber))
		observed = append(observed, fmt.Sprintf("%.1f", s.MeanDays))
		expected = append(expected, fmt.Sprintf("%d", s.ExpectedDays))
		if s.MeanDays > maxY {
			maxY = s.MeanDays
		}
		if float64(s.ExpectedDays) > maxY {
			maxY = float64(s.ExpectedDays)
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Stage Dwell vs Expected (Days)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Days\" 0 --> %d\n", int(math.Ceil(maxY*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(observed, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(expected, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateTimelineGantt creates a Mermaid gantt for one reconstructed
// timeline. Only dated stage events become tasks; pending and undated
// stages have no temporal extent to draw.
func GenerateTimelineGantt(trackingNumber string, events []reports.TimelineEvent) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString(fmt.Sprintf("    title Review Timeline %s\n", trackingNumber))
	sb.WriteString("    dateFormat YYYY-MM-DD\n")
	sb.WriteString("    section Pipeline\n")

	drawn := 0
	for _, ev := range events {
		if ev.Kind != reports.EventStage || ev.Date == nil {
			continue
		}
		duration := 1
		if ev.DurationDays != nil && *ev.DurationDays > 0 {
			duration = *ev.DurationDays
		}
		marker := ""
		if ev.Status == reports.EventCurrent {
			marker = "active, "
		}
		sb.WriteString(fmt.Sprintf("    %s :%s%s, %dd\n",
			sanitizeLabel(ev.Title), marker, ev.Date.Format("2006-01-02"), duration))
		drawn++
	}

	if drawn == 0 {
		return ""
	}
	sb.WriteString("```")
	return sb.String()
}

// sanitizeLabel strips characters Mermaid treats as syntax.
func sanitizeLabel(s string) string {
	replacer := strings.NewReplacer(":", "-", "#", "", ";", ",")
	return replacer.Replace(s)
}
