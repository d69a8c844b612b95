package gen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"reportcraft/internal/report"
)

// ErrMalformedChart means the structured extraction returned a payload
// that does not validate as a chart series. Callers degrade to an empty
// series; the prose analysis is the primary deliverable and the chart is
// best-effort.
var ErrMalformedChart = errors.New("malformed chart payload")

// ParseChartSeries validates an untrusted structured-output payload into
// a chart series. The contract asks the service for bare JSON, but models
// sometimes wrap it in a code fence anyway, so fences are stripped before
// parsing. Every record must carry a non-empty name and a finite value.
func ParseChartSeries(payload string) (report.ChartSeries, error) {
	cleaned := stripCodeFence(payload)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedChart)
	}

	var series report.ChartSeries
	if err := json.Unmarshal([]byte(cleaned), &series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChart, err)
	}

	for i, p := range series {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrMalformedChart, i)
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, fmt.Errorf("%w: record %d has non-finite value", ErrMalformedChart, i)
		}
	}

	return series, nil
}

// stripCodeFence removes a surrounding ```json ... ``` (or bare ```)
// wrapper if present and trims whitespace.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
