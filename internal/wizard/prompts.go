package wizard

import (
	"fmt"

	"reportcraft/internal/report"
)

// System instructions per role. These set the register of the model's
// output for each section of the document.
const (
	instructSuggest = "You are an education assistant who distills concise, " +
		"core ideas for professional reports."
	instructReason = "You are an education expert. Write the rationale " +
		"section persuasively, logically, and with solid grounding."
	instructContent = "You are an education expert. Structure the content " +
		"scientifically and use appropriate professional terminology."
	instructImplementation = "You are an education administrator. Present the " +
		"implementation plan in a detailed, feasible, and logical way."
	instructConclusion = "You are an erudite educator. Write the conclusion " +
		"and recommendations concisely, with depth and vision."
	instructSummarize = "You are an education assistant who summarizes and " +
		"proposes strategic recommendations."
	instructAnalysis = "You are an education expert. Write a professional and " +
		"persuasive paragraph analyzing the achieved results."
)

// suggestPrompt builds the idea-gathering prompt for a section. The
// result is a bullet list the user can edit before drafting; only the
// rationale, content, implementation, and conclusion sections support it.
func suggestPrompt(f report.Field, r *report.Report) (prompt, instruction string, ok bool) {
	switch f {
	case report.FieldReason:
		return fmt.Sprintf(
			"Given this information: the initiative is named %q, applied to %q for class %q, "+
				"infer and suggest the reasons (current situation) that make this initiative necessary. "+
				"Present them as bullet points.",
			r.Title, r.Subject, r.Class), instructSuggest, true
	case report.FieldContent:
		return fmt.Sprintf(
			"For the initiative %q with rationale %q, suggest the main content and solutions "+
				"to carry out. Present them as bullet points.",
			r.Title, r.Reason), instructSuggest, true
	case report.FieldImplementation:
		return fmt.Sprintf(
			"Based on the initiative's existing content: %q, suggest detailed implementation "+
				"steps for the initiative %q. Cover the steps to take, the timing, the coordination "+
				"involved, and the necessary conditions (facilities and people). "+
				"Present them as bullet points.",
			r.Content, r.Title), instructSuggest, true
	case report.FieldConclusion:
		return fmt.Sprintf(
			"Initiative: %s\nRationale: %s\nContent: %s\nResults: %s\n"+
				"Based on all the information above, suggest the main points for a "+
				"conclusion-and-recommendations section. The conclusion should reaffirm the "+
				"initiative's effectiveness; the recommendations should propose directions for "+
				"further development. Present them as bullet points.",
			r.Title, r.Reason, r.Content, r.Results), instructSummarize, true
	default:
		return "", "", false
	}
}

// draftPrompt builds the full-text drafting prompt for a section from
// the (possibly user-edited) suggestion notes.
func draftPrompt(f report.Field, r *report.Report, notes string) (prompt, instruction string, ok bool) {
	switch f {
	case report.FieldReason:
		return fmt.Sprintf(
			"Based on the following key points:\n%s\nWrite the 'Reason for choosing the initiative' "+
				"section in full for the initiative %q. The tone should be formal and persuasive, "+
				"highlighting the current situation and the necessity of the initiative.",
			notes, r.Title), instructReason, true
	case report.FieldContent:
		return fmt.Sprintf(
			"Based on the following key points:\n%s\nWrite the 'Content of the initiative' section "+
				"in detail for the initiative %q. Break the solutions down into concrete, clear, "+
				"and systematic steps.",
			notes, r.Title), instructContent, true
	case report.FieldImplementation:
		return fmt.Sprintf(
			"Based on the following implementation ideas:\n%s\nWrite the 'Method and conditions of "+
				"implementation' section in full for the initiative %q. It should be presented in a "+
				"detailed, feasible, and logical way.",
			notes, r.Title), instructImplementation, true
	case report.FieldConclusion:
		return fmt.Sprintf(
			"Based on the following key points:\n%s\nWrite the 'Conclusion and recommendations' "+
				"section in full. The conclusion should reaffirm the effectiveness and significance "+
				"of the initiative. The recommendations should propose concrete directions for "+
				"developing and replicating the model.",
			notes), instructConclusion, true
	default:
		return "", "", false
	}
}

// analysisPrompt builds the results-step prompt: a paragraph analyzing
// the raw figures the user supplied, in the context of the initiative.
func analysisPrompt(r *report.Report, figures string) string {
	context := fmt.Sprintf("Initiative: %q. Content: %q.", r.Title, r.Content)
	return fmt.Sprintf(
		"Based on the following information: %s\nWrite a paragraph analyzing the results achieved, "+
			"grounded in the figures the user provided: %q. Analyze the progress made and the "+
			"effectiveness of the initiative.",
		context, figures)
}
