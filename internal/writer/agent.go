// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/internal/intent"
	"github.com/docmaster/autowriter/internal/llm"
	"github.com/docmaster/autowriter/pkg/types"
)

// eventBuffer bounds the progress channel. The producer blocks once the
// consumer falls this far behind, keeping memory flat for slow readers.
const eventBuffer = 16

// Agent wires the intent classifier, parameter extractor, and workflow
// engine into one streaming run.
type Agent struct {
	client llm.Client
	log    zerolog.Logger
}

// NewAgent builds an agent around the given gateway client.
func NewAgent(client llm.Client, log zerolog.Logger) (*Agent, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{client: client, log: log}, nil
}

// Run executes one generation run and streams progress events. The
// returned channel is closed after exactly one terminal event (complete
// or error), or once ctx is cancelled. The consumer must not feed input
// back into the run; it only observes.
func (a *Agent) Run(ctx context.Context, request string) <-chan types.Event {
	ch := make(chan types.Event, eventBuffer)
	go func() {
		defer close(ch)
		a.run(ctx, request, ch)
	}()
	return ch
}

func (a *Agent) run(ctx context.Context, request string, ch chan<- types.Event) {
	runID := uuid.NewString()
	log := a.log.With().Str("run_id", runID).Logger()
	log.Info().Str("prompt_preview", truncateRunes(request, 120)).Msg("agent run started")

	emit := func(ev types.Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	fail := func(message string, reason string) {
		emit(types.Event{Type: types.EventError, Message: message, Reason: reason})
	}

	tl := NewTimeline()
	tl.Activate(PhaseIntent)
	if !emit(status("intent", "Analyzing task intent...", tl)) {
		return
	}

	decision, err := intent.Classify(ctx, a.client, log, request)
	if err != nil {
		log.Error().Err(err).Msg("intent classification failed")
		fail("intent classification failed", err.Error())
		return
	}
	if !decision.ShouldWrite {
		fail("the request does not call for document generation", decision.Reason)
		return
	}

	tl.Complete(PhaseIntent)
	tl.Activate(PhaseParams)
	if !emit(status("parameterizing", "Extracting writing parameters...", tl)) {
		return
	}

	params, err := intent.ExtractParameters(ctx, a.client, log, request)
	if err != nil {
		log.Error().Err(err).Msg("parameter extraction failed")
		fail("parameter extraction failed", err.Error())
		return
	}
	if !emit(types.Event{Type: types.EventParameters, Parameters: &params}) {
		return
	}

	tl.Complete(PhaseParams)
	tl.Activate(PhaseOutline)
	if !emit(status("outlining", "Designing document structure...", tl)) {
		return
	}

	engine := NewEngine(a.client, log, request, params)
	if err := engine.Step(ctx); err != nil {
		log.Error().Err(err).Msg("outline stage failed")
		fail("document generation failed", err.Error())
		return
	}

	tl.Complete(PhaseOutline)
	tl.Activate(PhaseWriting)
	if !emit(status("writing", "Structure ready, drafting content...", tl)) {
		return
	}

	total := len(engine.Outline())
	for engine.Stage() == StageDrafting {
		if err := engine.Step(ctx); err != nil {
			log.Error().Err(err).Msg("drafting failed")
			fail("document generation failed", err.Error())
			return
		}

		sections := engine.Sections()
		current := len(sections)
		section := sections[current-1]

		if !emit(status("writing", fmt.Sprintf("Completing section %d/%d", current, total), tl)) {
			return
		}
		if !emit(types.Event{
			Type:    types.EventSectionProgress,
			Current: current,
			Total:   total,
			Title:   section.Title,
			Content: section.Content,
		}) {
			return
		}
		if !emit(types.Event{Type: types.EventArticleDraft, HTML: BuildHTML(sections)}) {
			return
		}
	}

	// The explicit compile transition is always the path that produces
	// the terminal complete event.
	if err := engine.Step(ctx); err != nil {
		log.Error().Err(err).Msg("compile stage failed")
		fail("document generation failed", err.Error())
		return
	}
	article := engine.Article()

	tl.Complete(PhaseWriting)
	tl.Activate(PhaseDeliver)
	if !emit(status("delivering", "Article ready, delivering...", tl)) {
		return
	}
	tl.Complete(PhaseDeliver)

	emit(types.Event{
		Type:          types.EventComplete,
		Summary:       "Auto-writer run complete.",
		FinalMarkdown: article.Markdown,
		FinalHTML:     article.HTML,
		Title:         article.Title,
		Timeline:      tl.Snapshot(),
	})
	log.Info().Msg("agent run finished")
}

func status(phase, message string, tl *Timeline) types.Event {
	return types.Event{
		Type:     types.EventStatus,
		Phase:    phase,
		Message:  message,
		Timeline: tl.Snapshot(),
	}
}
