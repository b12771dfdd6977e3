// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StageState is the status of one timeline stage.
type StageState string

const (
	StageUpcoming StageState = "upcoming"
	StageActive   StageState = "active"
	StageComplete StageState = "complete"
)

// TimelineStage is one named stage of the coarse progress timeline.
// Stage states advance monotonically: a stage reaches complete before a
// later stage becomes active, and no stage ever regresses.
type TimelineStage struct {
	ID    string     `json:"id" yaml:"id"`
	Label string     `json:"label" yaml:"label"`
	State StageState `json:"state" yaml:"state"`
}

// EventType discriminates workflow stream events.
type EventType string

const (
	EventStatus          EventType = "status"
	EventParameters      EventType = "parameters"
	EventSectionProgress EventType = "section_progress"
	EventArticleDraft    EventType = "article_draft"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

// Event is one element of the workflow progress stream. Exactly one
// terminal event (complete or error) ends every stream.
type Event struct {
	Type EventType `json:"type"`

	// status fields.
	Phase    string          `json:"phase,omitempty"`
	Message  string          `json:"message,omitempty"`
	Timeline []TimelineStage `json:"timeline,omitempty"`

	// parameters payload.
	Parameters *WriterParameters `json:"parameters,omitempty"`

	// section_progress payload. Current is 1-based.
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	// article_draft payload: the running compiled preview.
	HTML string `json:"html,omitempty"`

	// complete payload.
	Summary       string `json:"summary,omitempty"`
	FinalMarkdown string `json:"final_markdown,omitempty"`
	FinalHTML     string `json:"final_html,omitempty"`

	// error payload.
	Reason string `json:"reason,omitempty"`
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}
