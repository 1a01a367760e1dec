package domain

// DisplayState is the presentation-level state of a quiz. It is tracked next
// to a Session, never inside it; Session and Grade hold no lock state.
type DisplayState string

const (
	DisplayEmpty      DisplayState = "empty"
	DisplayInProgress DisplayState = "in_progress"
	DisplayDisplayed  DisplayState = "displayed"
)

// Display tracks whether results are on screen and whether they are stale.
type Display struct {
	State DisplayState `json:"state"`
	// Stale is set when an answer changed after the last grading.
	Stale bool `json:"stale"`
}

// Regenerated moves any state to InProgress.
func (d Display) Regenerated() Display {
	return Display{State: DisplayInProgress}
}

// Answered keeps the current state. Displayed results become stale until the
// next grading.
func (d Display) Answered() Display {
	if d.State == DisplayDisplayed {
		d.Stale = true
	}
	return d
}

// Graded moves to Displayed with fresh results.
func (d Display) Graded() Display {
	return Display{State: DisplayDisplayed}
}

// SessionRecord is what the repository stores per quiz.
type SessionRecord struct {
	Session *Session `json:"session"`
	Display Display  `json:"display"`
}
