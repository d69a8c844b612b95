package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedReport() *Report {
	return &Report{
		Title:          "Improving reading fluency",
		Subject:        "Literature",
		Class:          "7A",
		Reason:         "**Many** students struggle with fluency.",
		Content:        "# Approach\nPaired reading sessions.",
		Implementation: "Weekly sessions with *rotating* pairs.",
		Results:        "Fluency scores rose sharply.",
		Conclusion:     "The approach [works](https://example.com).",
	}
}

func TestAssembleSectionOrder(t *testing.T) {
	doc := Assemble(populatedReport(), nil)

	headings := []string{
		"I. REASON FOR THE INITIATIVE",
		"II. CONTENT OF THE INITIATIVE",
		"III. IMPLEMENTATION APPROACH AND CONDITIONS",
		"IV. RESULTS ACHIEVED",
		"V. CONCLUSION AND RECOMMENDATIONS",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(doc, h)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", h)
		assert.Greater(t, idx, last, "heading %q out of order", h)
		last = idx
	}
}

func TestAssembleNormalizesAtAssemblyTime(t *testing.T) {
	doc := Assemble(populatedReport(), nil)

	assert.NotContains(t, doc, "**")
	assert.NotContains(t, doc, "# Approach")
	assert.NotContains(t, doc, "](")
	assert.Contains(t, doc, "Many students struggle")
	assert.Contains(t, doc, "The approach works.")
}

func TestAssembleTitleBlock(t *testing.T) {
	doc := Assemble(populatedReport(), nil)

	require.True(t, strings.HasPrefix(doc, "REPORT TITLE: Improving reading fluency\n"))
	assert.Contains(t, doc, "Subject: Literature\n")
	assert.Contains(t, doc, "Class: 7A\n")
}

func TestAssembleChartBlock(t *testing.T) {
	chart := ChartSeries{
		{Name: "Before", Value: 45},
		{Name: "After", Value: 90},
	}
	doc := Assemble(populatedReport(), chart)

	resultsIdx := strings.Index(doc, "IV. RESULTS ACHIEVED")
	conclusionIdx := strings.Index(doc, "V. CONCLUSION")
	chartIdx := strings.Index(doc, "Illustrative chart:")
	require.GreaterOrEqual(t, chartIdx, 0)
	assert.Greater(t, chartIdx, resultsIdx)
	assert.Less(t, chartIdx, conclusionIdx)
	assert.Contains(t, doc, "Before")
	assert.Contains(t, doc, "90")
}

func TestAssembleOmitsChartForEmptySeries(t *testing.T) {
	doc := Assemble(populatedReport(), ChartSeries{})
	assert.NotContains(t, doc, "Illustrative chart:")
}

func TestRenderChartScaling(t *testing.T) {
	out := RenderChart(ChartSeries{
		{Name: "Full", Value: 100},
		{Name: "Half", Value: 50},
		{Name: "Zero", Value: 0},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header + three bars

	full := strings.Count(lines[1], "#")
	half := strings.Count(lines[2], "#")
	zero := strings.Count(lines[3], "#")
	assert.Equal(t, chartBarWidth, full)
	assert.Equal(t, chartBarWidth/2, half)
	assert.Equal(t, 0, zero)
}
