package report

import (
	"fmt"
	"strconv"
	"strings"

	"reportcraft/internal/logging"
)

// sectionHeadings maps the five prose sections to their fixed Roman-numeral
// headings, in document order.
var sectionHeadings = []struct {
	field   Field
	heading string
}{
	{FieldReason, "I. REASON FOR THE INITIATIVE"},
	{FieldContent, "II. CONTENT OF THE INITIATIVE"},
	{FieldImplementation, "III. IMPLEMENTATION APPROACH AND CONDITIONS"},
	{FieldResults, "IV. RESULTS ACHIEVED"},
	{FieldConclusion, "V. CONCLUSION AND RECOMMENDATIONS"},
}

const chartBarWidth = 24

// Assemble renders the aggregate into the canonical flat-text document:
// a title block followed by the five numbered sections, each normalized at
// assembly time. A non-empty chart series is rendered as a text bar chart
// under the results section. The output is deterministic and suitable for
// copy-to-clipboard.
func Assemble(r *Report, chart ChartSeries) string {
	timer := logging.StartTimer(logging.CategoryExport, "Assemble")
	defer timer.Stop()

	var b strings.Builder

	fmt.Fprintf(&b, "REPORT TITLE: %s\n", Normalize(r.Title))
	fmt.Fprintf(&b, "Subject: %s\n", Normalize(r.Subject))
	fmt.Fprintf(&b, "Class: %s\n", Normalize(r.Class))

	for _, s := range sectionHeadings {
		b.WriteString("\n")
		b.WriteString(s.heading)
		b.WriteString("\n")
		b.WriteString(Normalize(r.Get(s.field)))
		b.WriteString("\n")
		if s.field == FieldResults && len(chart) > 0 {
			b.WriteString("\n")
			b.WriteString(RenderChart(chart))
		}
	}

	doc := strings.TrimSpace(b.String())
	logging.Export("assembled document: %d bytes, chart points=%d", len(doc), len(chart))
	return doc
}

// RenderChart draws the series as right-padded hash bars scaled to the
// largest value. Returns the empty string for an empty series.
func RenderChart(chart ChartSeries) string {
	if len(chart) == 0 {
		return ""
	}

	maxVal := 0.0
	maxName := 0
	for _, p := range chart {
		if p.Value > maxVal {
			maxVal = p.Value
		}
		if len(p.Name) > maxName {
			maxName = len(p.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Illustrative chart:\n")
	for _, p := range chart {
		width := 0
		if maxVal > 0 && p.Value > 0 {
			width = int(p.Value / maxVal * chartBarWidth)
			if width == 0 {
				width = 1
			}
		}
		fmt.Fprintf(&b, "  %-*s  %-*s %s\n",
			maxName, p.Name,
			chartBarWidth, strings.Repeat("#", width),
			strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	return b.String()
}
