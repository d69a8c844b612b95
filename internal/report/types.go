// Package report holds the document under construction: the aggregate the
// wizard mutates, the derived chart series, the step enumeration, and the
// normalization/assembly pipeline that turns the aggregate into the final
// plain-text document.
package report

// Step is the wizard's position, an ordinal in 1..7.
type Step int

const (
	StepIntro Step = iota + 1
	StepReason
	StepContent
	StepImplementation
	StepResults
	StepConclusion
	StepReview
)

// FirstStep and LastStep bound the wizard's linear progression.
const (
	FirstStep = StepIntro
	LastStep  = StepReview
)

// String returns the step's semantic name.
func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepReason:
		return "reason"
	case StepContent:
		return "content"
	case StepImplementation:
		return "implementation"
	case StepResults:
		return "results"
	case StepConclusion:
		return "conclusion"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Title returns the step's display heading.
func (s Step) Title() string {
	switch s {
	case StepIntro:
		return "Introduction"
	case StepReason:
		return "Reason for the Initiative"
	case StepContent:
		return "Content of the Initiative"
	case StepImplementation:
		return "Implementation"
	case StepResults:
		return "Results Achieved"
	case StepConclusion:
		return "Conclusion and Recommendations"
	case StepReview:
		return "Review and Export"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is inside the wizard's range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Field identifies one of the aggregate's eight fields.
type Field string

const (
	FieldTitle          Field = "title"
	FieldSubject        Field = "subject"
	FieldClass          Field = "class"
	FieldReason         Field = "reason"
	FieldContent        Field = "content"
	FieldImplementation Field = "implementation"
	FieldResults        Field = "results"
	FieldConclusion     Field = "conclusion"
)

// SectionFields lists the five generated/editable prose sections in
// document order.
var SectionFields = []Field{
	FieldReason,
	FieldContent,
	FieldImplementation,
	FieldResults,
	FieldConclusion,
}

// Report is the document under construction. Every field is always a
// defined string; the empty string is the unset sentinel. Updates replace
// a field's entire value, never patch it.
type Report struct {
	Title          string
	Subject        string
	Class          string
	Reason         string
	Content        string
	Implementation string
	Results        string
	Conclusion     string
}

// Get returns the current value of a field. Unknown fields read as empty.
func (r *Report) Get(f Field) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldSubject:
		return r.Subject
	case FieldClass:
		return r.Class
	case FieldReason:
		return r.Reason
	case FieldContent:
		return r.Content
	case FieldImplementation:
		return r.Implementation
	case FieldResults:
		return r.Results
	case FieldConclusion:
		return r.Conclusion
	default:
		return ""
	}
}

// Set overwrites a field wholesale. Unknown fields are ignored.
func (r *Report) Set(f Field, value string) {
	switch f {
	case FieldTitle:
		r.Title = value
	case FieldSubject:
		r.Subject = value
	case FieldClass:
		r.Class = value
	case FieldReason:
		r.Reason = value
	case FieldContent:
		r.Content = value
	case FieldImplementation:
		r.Implementation = value
	case FieldResults:
		r.Results = value
	case FieldConclusion:
		r.Conclusion = value
	}
}

// StepComplete reports whether the required fields for the given step are
// filled in, i.e. whether the wizard may advance past it. Review is
// terminal and always complete.
func (r *Report) StepComplete(s Step) bool {
	switch s {
	case StepIntro:
		return r.Title != "" && r.Subject != "" && r.Class != ""
	case StepReason:
		return r.Reason != ""
	case StepContent:
		return r.Content != ""
	case StepImplementation:
		return r.Implementation != ""
	case StepResults:
		return r.Results != ""
	case StepConclusion:
		return r.Conclusion != ""
	case StepReview:
		return true
	default:
		return false
	}
}

// ChartPoint is one labeled value of the results chart.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChartSeries is the ordered sequence of chart points derived from the
// results step's structured generation call. Empty on parse failure.
type ChartSeries []ChartPoint
