// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import "github.com/docmaster/autowriter/pkg/types"

// Timeline stage identifiers, in pipeline order.
const (
	PhaseIntent  = "intent"
	PhaseParams  = "params"
	PhaseOutline = "outline"
	PhaseWriting = "writing"
	PhaseDeliver = "deliver"
)

// Timeline tracks coarse per-stage progress. Stage states only move
// forward: upcoming -> active -> complete. Activating a stage completes
// everything before it, so a consumer can never observe a regression.
type Timeline struct {
	stages []types.TimelineStage
}

// NewTimeline returns the five-stage generation timeline with every
// stage upcoming.
func NewTimeline() *Timeline {
	return &Timeline{stages: []types.TimelineStage{
		{ID: PhaseIntent, Label: "Intent analysis", State: types.StageUpcoming},
		{ID: PhaseParams, Label: "Parameter extraction", State: types.StageUpcoming},
		{ID: PhaseOutline, Label: "Structure design", State: types.StageUpcoming},
		{ID: PhaseWriting, Label: "Section drafting", State: types.StageUpcoming},
		{ID: PhaseDeliver, Label: "Delivery", State: types.StageUpcoming},
	}}
}

// Activate marks the named stage active and every earlier stage
// complete. A stage that already reached complete stays complete.
func (t *Timeline) Activate(id string) {
	for i := range t.stages {
		if t.stages[i].ID == id {
			if t.stages[i].State != types.StageComplete {
				t.stages[i].State = types.StageActive
			}
			return
		}
		t.stages[i].State = types.StageComplete
	}
}

// Complete marks the named stage and every earlier stage complete.
func (t *Timeline) Complete(id string) {
	for i := range t.stages {
		t.stages[i].State = types.StageComplete
		if t.stages[i].ID == id {
			return
		}
	}
}

// Snapshot returns a copy safe to hand to event consumers.
func (t *Timeline) Snapshot() []types.TimelineStage {
	out := make([]types.TimelineStage, len(t.stages))
	copy(out, t.stages)
	return out
}
