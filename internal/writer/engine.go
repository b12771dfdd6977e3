// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer runs the staged document-generation workflow:
// outline, serialized section drafting, and deterministic compilation,
// with granular progress events streamed to the consumer.
package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/internal/llm"
	"github.com/docmaster/autowriter/pkg/types"
)

// Stage is the engine's current state. Stages advance strictly forward;
// a fatal gateway error moves the engine directly to StageErrored.
type Stage int

const (
	StageOutline Stage = iota
	StageDrafting
	StageCompile
	StageDone
	StageErrored
)

func (s Stage) String() string {
	switch s {
	case StageOutline:
		return "outline"
	case StageDrafting:
		return "drafting"
	case StageCompile:
		return "compile"
	case StageDone:
		return "done"
	case StageErrored:
		return "errored"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Engine is the generation state machine. It holds the transient state
// of exactly one run and is advanced one stage (or one drafting
// iteration) at a time by an external driver calling Step. The engine
// never parallelizes drafting: each section's prompt depends on the
// previews of everything drafted before it.
type Engine struct {
	client  llm.Client
	log     zerolog.Logger
	request string
	params  types.WriterParameters

	stage    Stage
	outline  []types.OutlineEntry
	sections []types.Section
	article  types.Article
	err      error
}

// NewEngine prepares a run in the outline stage. The parameters are
// treated as read-only for the lifetime of the engine.
func NewEngine(client llm.Client, log zerolog.Logger, request string, params types.WriterParameters) *Engine {
	return &Engine{
		client:  client,
		log:     log,
		request: request,
		params:  params,
		stage:   StageOutline,
	}
}

// Stage returns the engine's current state.
func (e *Engine) Stage() Stage { return e.stage }

// Outline returns the planned entries; empty before the outline stage
// completes, exactly ParagraphCount entries afterwards.
func (e *Engine) Outline() []types.OutlineEntry { return e.outline }

// Sections returns the completed sections in draft order. The slice is
// append-only: sections are never reordered or overwritten.
func (e *Engine) Sections() []types.Section { return e.sections }

// Article returns the compiled artifact; zero before StageDone.
func (e *Engine) Article() types.Article { return e.article }

// Err returns the fatal error that moved the engine to StageErrored.
func (e *Engine) Err() error { return e.err }

// Step advances the machine by one transition: the whole outline stage,
// a single drafting iteration, or the compile stage. A gateway failure
// is fatal to the run; Step records it and returns it.
func (e *Engine) Step(ctx context.Context) error {
	switch e.stage {
	case StageOutline:
		return e.fatal(e.stepOutline(ctx))
	case StageDrafting:
		return e.fatal(e.stepDraft(ctx))
	case StageCompile:
		e.stepCompile()
		return nil
	case StageDone:
		return errors.New("workflow already complete")
	case StageErrored:
		return e.err
	}
	return fmt.Errorf("unknown stage %v", e.stage)
}

func (e *Engine) fatal(err error) error {
	if err != nil {
		e.err = err
		e.stage = StageErrored
	}
	return err
}

// stepOutline makes one gateway call and normalizes whatever came back
// to exactly ParagraphCount entries. The transition to drafting is
// unconditional: malformed output degrades to placeholders, never to an
// error.
func (e *Engine) stepOutline(ctx context.Context) error {
	raw, err := e.client.Complete(ctx, llm.Request{
		User:        buildOutlinePrompt(e.request, e.params),
		Temperature: outlineTemperature,
		MaxTokens:   e.params.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("outline stage: %w", err)
	}

	e.outline = decodeOutline(raw, e.params.ParagraphCount, e.params.Topic)
	e.stage = StageDrafting

	e.log.Info().Int("sections", len(e.outline)).Msg("outline generated")
	return nil
}

// stepDraft drafts the next pending section and appends it. Drafting
// ends the instant the completed count reaches the outline length; that
// count is the sole termination predicate.
func (e *Engine) stepDraft(ctx context.Context) error {
	entry := e.outline[len(e.sections)]

	raw, err := e.client.Complete(ctx, llm.Request{
		System:      buildSectionPrompt(e.params, entry, e.sections),
		Temperature: e.params.Temperature,
		MaxTokens:   e.params.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("drafting section %d: %w", len(e.sections)+1, err)
	}

	e.sections = append(e.sections, types.Section{
		Title:   entry.Title,
		Content: strings.TrimSpace(raw),
	})

	e.log.Debug().
		Int("index", len(e.sections)).
		Str("title", entry.Title).
		Msg("section drafted")

	if len(e.sections) >= len(e.outline) {
		e.stage = StageCompile
	}
	return nil
}

// stepCompile assembles the final artifact from the completed sections.
// No gateway call is involved and the result depends only on the
// section sequence, so compilation is idempotent.
func (e *Engine) stepCompile() {
	e.article = types.Article{
		Title:    e.params.Title,
		Markdown: BuildMarkdown(e.sections),
		HTML:     BuildHTML(e.sections),
	}
	e.stage = StageDone

	e.log.Info().
		Int("sections", len(e.sections)).
		Int("length", len(e.article.Markdown)).
		Msg("article compiled")
}
