package report

import (
	"encoding/json"
	"fmt"
)

// Draft is the persisted form of a report in progress: the aggregate plus
// the chart series extracted on the results step.
type Draft struct {
	Report Report      `json:"report"`
	Chart  ChartSeries `json:"chart,omitempty"`
}

// EncodeDraft serializes a draft for storage.
func EncodeDraft(d Draft) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}
	return string(b), nil
}

// DecodeDraft restores a draft from its stored form.
func DecodeDraft(raw string) (Draft, error) {
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}, fmt.Errorf("decoding draft: %w", err)
	}
	return d, nil
}
