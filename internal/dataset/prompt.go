package dataset

import "fmt"

// Prompt is a yes/no decision an operation needs from the user before it
// proceeds.
type Prompt int

const (
	// PromptResumeEdits asks whether to reload metadata.edited.json
	// instead of metadata.csv.
	PromptResumeEdits Prompt = iota + 1

	// PromptOverwriteEdits asks whether a save from a CSV-rooted session
	// may replace an existing metadata.edited.json.
	PromptOverwriteEdits

	// PromptExportPendingReview asks whether to export while entries are
	// still marked for review.
	PromptExportPendingReview

	// PromptSaveBeforeClose asks whether unsaved edits should be saved.
	PromptSaveBeforeClose
)

func (p Prompt) String() string {
	switch p {
	case PromptResumeEdits:
		return "resume-edits"
	case PromptOverwriteEdits:
		return "overwrite-edits"
	case PromptExportPendingReview:
		return "export-pending-review"
	case PromptSaveBeforeClose:
		return "save-before-close"
	}
	return fmt.Sprintf("Prompt(%d)", int(p))
}

// Message is the question shown to the user.
func (p Prompt) Message() string {
	switch p {
	case PromptResumeEdits:
		return "You have saved edits in this directory. Reload them?"
	case PromptOverwriteEdits:
		return "Saving will overwrite existing edits in " + EditedFile + ". Proceed?"
	case PromptExportPendingReview:
		return "Some items are marked as pending review. Export them anyway?"
	case PromptSaveBeforeClose:
		return "You have unsaved edits. Save them?"
	}
	return p.String()
}

// Decider answers prompts. A nil Decider answers no.
type Decider func(Prompt) bool

// Always answers every prompt the same way.
func Always(answer bool) Decider {
	return func(Prompt) bool { return answer }
}

// Answers looks prompts up in m; missing prompts are answered no.
func Answers(m map[Prompt]bool) Decider {
	return func(p Prompt) bool { return m[p] }
}

func (d Decider) ask(p Prompt) bool {
	if d == nil {
		return false
	}
	return d(p)
}
