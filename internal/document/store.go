// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document maintains an editable, paragraph-indexed document
// and the closed tool surface an external planner drives it with.
// Paragraph IDs are stable for the life of a session; indexes are
// rewritten after every structural mutation so they always form a
// contiguous 0-based sequence matching storage order.
package document

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/pkg/types"
)

// Store is an in-memory paragraph arena plus a stable-id lookup map.
// It assumes exclusive single-writer access for the duration of each
// call; concurrent editors must serialize access externally.
type Store struct {
	log    zerolog.Logger
	paras  []types.Paragraph
	slots  map[string]int // id -> current position
	issued int            // next id ordinal; never decremented
}

// NewStore builds a store over the initial paragraph sequence. Initial
// paragraphs keep their IDs; the issue counter starts past them so a
// later insert can never collide.
func NewStore(log zerolog.Logger, initial []types.Paragraph) *Store {
	s := &Store{
		log:    log,
		paras:  make([]types.Paragraph, len(initial)),
		slots:  make(map[string]int, len(initial)),
		issued: len(initial),
	}
	copy(s.paras, initial)
	s.reindex()

	log.Info().Int("paragraph_count", len(initial)).Msg("document store initialized")
	return s
}

// Len returns the current paragraph count.
func (s *Store) Len() int { return len(s.paras) }

// OpResult is the outcome of a mutating paragraph operation. Failures
// are values, never panics: the store is unchanged and the result
// carries diagnostic aid for the calling planner.
type OpResult struct {
	Success           bool              `json:"success"`
	ParagraphID       string            `json:"paragraph_id,omitempty"`
	Message           string            `json:"message"`
	AvailableIDs      []string          `json:"available_ids,omitempty"`
	SimilarIDs        []string          `json:"similar_ids,omitempty"`
	UpdatedParagraphs []types.Paragraph `json:"updated_paragraphs"`
}

// ListResult is the get-all payload.
type ListResult struct {
	Paragraphs      []types.Paragraph `json:"paragraphs"`
	TotalParagraphs int               `json:"total_paragraphs"`
	Message         string            `json:"message"`
}

// List returns all paragraphs ordered by index.
func (s *Store) List() ListResult {
	return ListResult{
		Paragraphs:      s.snapshot(),
		TotalParagraphs: len(s.paras),
		Message:         fmt.Sprintf("Document contains %d paragraph(s)", len(s.paras)),
	}
}

// Modify replaces a paragraph's content and recomputes its plain text.
// Lookup tries an exact ID match first, then a case-insensitive one.
// A miss returns every existing ID plus case-insensitive substring
// near-matches, so the caller can retry with a corrected ID.
func (s *Store) Modify(paragraphID, newContent string) OpResult {
	if paragraphID == "" {
		s.log.Warn().Msg("modify called with empty paragraph id")
		return OpResult{
			Message:           "Paragraph ID cannot be empty",
			UpdatedParagraphs: s.snapshot(),
		}
	}

	slot, ok := s.lookup(paragraphID)
	if !ok {
		return s.notFound(paragraphID)
	}

	s.paras[slot].Content = newContent
	s.paras[slot].Text = StripTags(newContent)

	s.log.Info().
		Str("paragraph_id", s.paras[slot].ID).
		Int("paragraph_index", slot).
		Int("new_content_length", len(newContent)).
		Msg("paragraph modified")

	return OpResult{
		Success:           true,
		ParagraphID:       s.paras[slot].ID,
		Message:           fmt.Sprintf("Successfully updated paragraph '%s'", s.paras[slot].ID),
		UpdatedParagraphs: s.snapshot(),
	}
}

// Insert adds a new paragraph at the given index and re-indexes the
// document. Out-of-range indexes are clamped so ordering can never be
// corrupted. The new ID comes from the monotonic issue counter and is
// never one that existed before, even after deletions.
func (s *Store) Insert(index int, content string) OpResult {
	if index < 0 {
		index = 0
	}
	if index > len(s.paras) {
		index = len(s.paras)
	}

	para := types.Paragraph{
		ID:      s.nextID(),
		Index:   index,
		Content: content,
		Text:    StripTags(content),
	}

	s.paras = append(s.paras, types.Paragraph{})
	copy(s.paras[index+1:], s.paras[index:])
	s.paras[index] = para
	s.reindex()

	s.log.Info().
		Str("paragraph_id", para.ID).
		Int("index", index).
		Int("total_paragraphs", len(s.paras)).
		Msg("paragraph added")

	return OpResult{
		Success:           true,
		ParagraphID:       para.ID,
		Message:           fmt.Sprintf("Successfully added paragraph at index %d", index),
		UpdatedParagraphs: s.snapshot(),
	}
}

// Delete removes a paragraph by exact ID and re-indexes the remainder
// contiguously from 0.
func (s *Store) Delete(paragraphID string) OpResult {
	slot, ok := s.slots[paragraphID]
	if !ok {
		s.log.Warn().Str("paragraph_id", paragraphID).Msg("paragraph not found for deletion")
		return OpResult{
			ParagraphID:       paragraphID,
			Message:           fmt.Sprintf("Paragraph with ID '%s' not found", paragraphID),
			AvailableIDs:      s.ids(),
			UpdatedParagraphs: s.snapshot(),
		}
	}

	delete(s.slots, paragraphID)
	s.paras = append(s.paras[:slot], s.paras[slot+1:]...)
	s.reindex()

	s.log.Info().
		Str("paragraph_id", paragraphID).
		Int("total_paragraphs", len(s.paras)).
		Msg("paragraph deleted")

	return OpResult{
		Success:           true,
		ParagraphID:       paragraphID,
		Message:           fmt.Sprintf("Successfully deleted paragraph '%s'", paragraphID),
		UpdatedParagraphs: s.snapshot(),
	}
}

// lookup resolves an ID to its slot: exact match first, then
// case-insensitive.
func (s *Store) lookup(paragraphID string) (int, bool) {
	if slot, ok := s.slots[paragraphID]; ok {
		return slot, true
	}
	lower := strings.ToLower(paragraphID)
	for i, p := range s.paras {
		if strings.ToLower(p.ID) == lower {
			s.log.Info().
				Str("requested_id", paragraphID).
				Str("actual_id", p.ID).
				Msg("paragraph found via case-insensitive match")
			return i, true
		}
	}
	return 0, false
}

// notFound builds the diagnostic failure for a missing ID.
func (s *Store) notFound(paragraphID string) OpResult {
	available := s.ids()

	lower := strings.ToLower(paragraphID)
	var similar []string
	for _, id := range available {
		idLower := strings.ToLower(id)
		if strings.Contains(idLower, lower) || strings.Contains(lower, idLower) {
			similar = append(similar, id)
		}
	}

	message := fmt.Sprintf("Paragraph with ID '%s' not found.", paragraphID)
	if len(similar) > 0 {
		message += fmt.Sprintf(" Did you mean one of these: %s?", strings.Join(head(similar, 3), ", "))
	} else {
		message += fmt.Sprintf(" Available paragraph IDs: %s", strings.Join(head(available, 5), ", "))
		if len(available) > 5 {
			message += "..."
		}
	}

	s.log.Warn().
		Str("paragraph_id", paragraphID).
		Strs("available_ids", available).
		Msg("paragraph not found")

	return OpResult{
		ParagraphID:       paragraphID,
		Message:           message,
		AvailableIDs:      available,
		SimilarIDs:        similar,
		UpdatedParagraphs: s.snapshot(),
	}
}

// nextID issues a fresh identifier. The counter only moves forward, so
// IDs freed by deletions are never reissued; if an initial paragraph
// already claimed the candidate, the counter skips past it.
func (s *Store) nextID() string {
	for {
		id := fmt.Sprintf("para-%d", s.issued)
		s.issued++
		if _, taken := s.slots[id]; !taken {
			return id
		}
	}
}

// reindex rewrites every paragraph's Index to its current position and
// rebuilds the slot map. O(N), run after each structural mutation.
func (s *Store) reindex() {
	clear(s.slots)
	for i := range s.paras {
		s.paras[i].Index = i
		s.slots[s.paras[i].ID] = i
	}
}

func (s *Store) snapshot() []types.Paragraph {
	out := make([]types.Paragraph, len(s.paras))
	copy(out, s.paras)
	return out
}

func (s *Store) ids() []string {
	ids := make([]string, len(s.paras))
	for i, p := range s.paras {
		ids[i] = p.ID
	}
	return ids
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
