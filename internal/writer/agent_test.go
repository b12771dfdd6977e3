// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/pkg/types"
)

const (
	intentYes = `{"should_write": true, "confidence": 0.9, "reason": "article requested"}`
	intentNo  = `{"should_write": false, "confidence": 0.85, "reason": "just a greeting"}`
	paramsRaw = `{"title": "Edge Report", "topic": "edge computing", "paragraph_count": 3, "tone": "professional"}`
	outline3  = `[{"title": "A", "summary": "a"}, {"title": "B", "summary": "b"}, {"title": "C", "summary": "c"}]`
)

func collect(t *testing.T, ch <-chan types.Event) []types.Event {
	t.Helper()
	var events []types.Event
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func newTestAgent(t *testing.T, gw *fakeGateway) *Agent {
	t.Helper()
	agent, err := NewAgent(gw, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return agent
}

func TestAgentRunHappyPath(t *testing.T) {
	gw := &fakeGateway{responses: []string{intentYes, paramsRaw, outline3, "one", "two", "three"}}
	agent := newTestAgent(t, gw)

	events := collect(t, agent.Run(context.Background(), "write an edge computing report"))
	if len(events) == 0 {
		t.Fatal("no events emitted")
	}

	// Exactly one terminal event, and it is the last one.
	var terminals int
	for _, ev := range events {
		if ev.Terminal() {
			terminals++
		}
	}
	if terminals != 1 {
		t.Errorf("terminal events = %d, want 1", terminals)
	}
	last := events[len(events)-1]
	if last.Type != types.EventComplete {
		t.Fatalf("last event = %s, want complete", last.Type)
	}
	if last.FinalMarkdown == "" || last.FinalHTML == "" {
		t.Error("complete event missing final artifact")
	}
	if last.Title != "Edge Report" {
		t.Errorf("complete title = %q, want %q", last.Title, "Edge Report")
	}

	// One parameters event with normalized payload.
	var paramEvents []types.Event
	for _, ev := range events {
		if ev.Type == types.EventParameters {
			paramEvents = append(paramEvents, ev)
		}
	}
	if len(paramEvents) != 1 {
		t.Fatalf("parameters events = %d, want 1", len(paramEvents))
	}
	if paramEvents[0].Parameters.ParagraphCount != 3 {
		t.Errorf("ParagraphCount = %d, want 3", paramEvents[0].Parameters.ParagraphCount)
	}

	// Three section_progress events with 1-based indexes, each followed
	// by a running article_draft preview.
	var progress []types.Event
	for _, ev := range events {
		if ev.Type == types.EventSectionProgress {
			progress = append(progress, ev)
		}
	}
	if len(progress) != 3 {
		t.Fatalf("section_progress events = %d, want 3", len(progress))
	}
	for i, ev := range progress {
		if ev.Current != i+1 || ev.Total != 3 {
			t.Errorf("progress[%d] = %d/%d, want %d/3", i, ev.Current, ev.Total, i+1)
		}
	}

	var drafts int
	for _, ev := range events {
		if ev.Type == types.EventArticleDraft {
			drafts++
			if ev.HTML == "" {
				t.Error("article_draft event missing html")
			}
		}
	}
	if drafts != 3 {
		t.Errorf("article_draft events = %d, want 3", drafts)
	}
}

func TestAgentTimelineMonotonic(t *testing.T) {
	gw := &fakeGateway{responses: []string{intentYes, paramsRaw, outline3, "one", "two", "three"}}
	agent := newTestAgent(t, gw)

	rank := map[types.StageState]int{
		types.StageUpcoming: 0,
		types.StageActive:   1,
		types.StageComplete: 2,
	}

	prev := map[string]int{}
	for _, ev := range collect(t, agent.Run(context.Background(), "write it")) {
		for _, stage := range ev.Timeline {
			if rank[stage.State] < prev[stage.ID] {
				t.Fatalf("stage %s regressed from rank %d to %d", stage.ID, prev[stage.ID], rank[stage.State])
			}
			prev[stage.ID] = rank[stage.State]
		}
	}

	// The complete event carries a fully finished timeline.
	if prev[PhaseDeliver] != rank[types.StageComplete] {
		t.Error("deliver stage never completed")
	}
}

func TestAgentRefusesNonWritingIntent(t *testing.T) {
	gw := &fakeGateway{responses: []string{intentNo}}
	agent := newTestAgent(t, gw)

	events := collect(t, agent.Run(context.Background(), "hello there"))
	last := events[len(events)-1]
	if last.Type != types.EventError {
		t.Fatalf("last event = %s, want error", last.Type)
	}
	if last.Reason != "just a greeting" {
		t.Errorf("error reason = %q, want intent reason", last.Reason)
	}
	// Only the intent call went out.
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestAgentGatewayFailureEmitsSingleError(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
	}{
		{"intent call fails", 1},
		{"parameter call fails", 2},
		{"outline call fails", 3},
		{"drafting call fails", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{
				responses: []string{intentYes, paramsRaw, outline3, "one", "two", "three"},
				failAt:    tt.failAt,
			}
			agent := newTestAgent(t, gw)

			events := collect(t, agent.Run(context.Background(), "write it"))
			var terminals []types.Event
			for _, ev := range events {
				if ev.Terminal() {
					terminals = append(terminals, ev)
				}
			}
			if len(terminals) != 1 {
				t.Fatalf("terminal events = %d, want 1", len(terminals))
			}
			if terminals[0].Type != types.EventError {
				t.Errorf("terminal event = %s, want error", terminals[0].Type)
			}
			if last := events[len(events)-1]; !last.Terminal() {
				t.Error("terminal event must be the last event")
			}
		})
	}
}

func TestAgentCancelledConsumer(t *testing.T) {
	gw := &fakeGateway{responses: []string{intentYes, paramsRaw, outline3, "one", "two", "three"}}
	agent := newTestAgent(t, gw)

	ctx, cancel := context.WithCancel(context.Background())
	ch := agent.Run(ctx, "write it")
	<-ch // read one event, then walk away
	cancel()

	// The channel must still close rather than leaking the producer.
	for range ch {
	}
}

func TestTimelineActivateCompletesEarlierStages(t *testing.T) {
	tl := NewTimeline()
	tl.Activate(PhaseOutline)

	snap := tl.Snapshot()
	if snap[0].State != types.StageComplete || snap[1].State != types.StageComplete {
		t.Error("earlier stages should be complete")
	}
	if snap[2].State != types.StageActive {
		t.Errorf("outline state = %s, want active", snap[2].State)
	}
	if snap[3].State != types.StageUpcoming || snap[4].State != types.StageUpcoming {
		t.Error("later stages should stay upcoming")
	}
}

func TestTimelineSnapshotIsCopy(t *testing.T) {
	tl := NewTimeline()
	snap := tl.Snapshot()
	snap[0].State = types.StageComplete
	if tl.Snapshot()[0].State != types.StageUpcoming {
		t.Error("snapshot mutation leaked into the timeline")
	}
}
