// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/pkg/types"
)

func testStore(contents ...string) *Store {
	paras := make([]types.Paragraph, len(contents))
	for i, c := range contents {
		paras[i] = types.Paragraph{
			ID:      "para-" + string(rune('0'+i)),
			Index:   i,
			Content: c,
			Text:    StripTags(c),
		}
	}
	return NewStore(zerolog.Nop(), paras)
}

func checkContiguous(t *testing.T, s *Store) {
	t.Helper()
	for i, p := range s.List().Paragraphs {
		if p.Index != i {
			t.Errorf("paragraph %q has index %d at position %d", p.ID, p.Index, i)
		}
	}
}

func TestListOrderedByIndex(t *testing.T) {
	s := testStore("<p>one</p>", "<p>two</p>", "<p>three</p>")

	r := s.List()
	if r.TotalParagraphs != 3 {
		t.Fatalf("TotalParagraphs = %d, want 3", r.TotalParagraphs)
	}
	wantTexts := []string{"one", "two", "three"}
	for i, p := range r.Paragraphs {
		if p.Text != wantTexts[i] {
			t.Errorf("paragraph %d text = %q, want %q", i, p.Text, wantTexts[i])
		}
	}
	checkContiguous(t, s)
}

func TestModifyRecomputesText(t *testing.T) {
	s := testStore("<p>one</p>", "<p>two</p>")

	r := s.Modify("para-1", "<p>brand <b>new</b></p>")
	if !r.Success {
		t.Fatalf("Modify failed: %s", r.Message)
	}
	got := s.List().Paragraphs[1]
	if got.Content != "<p>brand <b>new</b></p>" {
		t.Errorf("content = %q", got.Content)
	}
	if got.Text != "brand new" {
		t.Errorf("text = %q, want %q", got.Text, "brand new")
	}
}

func TestModifyCaseInsensitiveLookup(t *testing.T) {
	s := testStore("<p>one</p>")

	r := s.Modify("PARA-0", "<p>updated</p>")
	if !r.Success {
		t.Fatalf("Modify failed: %s", r.Message)
	}
	if r.ParagraphID != "para-0" {
		t.Errorf("ParagraphID = %q, want the canonical id", r.ParagraphID)
	}
}

func TestModifyNotFoundListsAvailableIDs(t *testing.T) {
	s := testStore("<p>a</p>", "<p>b</p>", "<p>c</p>")

	r := s.Modify("para-99", "<p>x</p>")
	if r.Success {
		t.Fatal("expected failure for missing id")
	}
	want := []string{"para-0", "para-1", "para-2"}
	if !reflect.DeepEqual(r.AvailableIDs, want) {
		t.Errorf("AvailableIDs = %v, want %v", r.AvailableIDs, want)
	}
	// Near-miss ids surface as suggestions.
	if len(r.SimilarIDs) != 0 {
		t.Errorf("SimilarIDs = %v, want none for para-99", r.SimilarIDs)
	}
	if s.List().Paragraphs[0].Content != "<p>a</p>" {
		t.Error("failed modify mutated the store")
	}
}

func TestModifySimilarIDSuggestions(t *testing.T) {
	s := testStore("<p>a</p>", "<p>b</p>")

	r := s.Modify("para", "<p>x</p>")
	if r.Success {
		t.Fatal("expected failure")
	}
	if len(r.SimilarIDs) != 2 {
		t.Errorf("SimilarIDs = %v, want both ids suggested", r.SimilarIDs)
	}
}

func TestModifyEmptyID(t *testing.T) {
	s := testStore("<p>a</p>")

	if r := s.Modify("", "<p>x</p>"); r.Success {
		t.Fatal("expected failure for empty id")
	}
}

func TestInsertClampsIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		wantSlot int
	}{
		{name: "negative clamps to front", index: -5, wantSlot: 0},
		{name: "middle", index: 1, wantSlot: 1},
		{name: "past end clamps to back", index: 99, wantSlot: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore("<p>a</p>", "<p>b</p>")

			r := s.Insert(tt.index, "<p>new</p>")
			if !r.Success {
				t.Fatalf("Insert failed: %s", r.Message)
			}
			if got := s.List().Paragraphs[tt.wantSlot].Text; got != "new" {
				t.Errorf("slot %d text = %q, want %q", tt.wantSlot, got, "new")
			}
			checkContiguous(t, s)
		})
	}
}

func TestDeleteReindexes(t *testing.T) {
	s := testStore("<p>a</p>", "<p>b</p>", "<p>c</p>")

	r := s.Delete("para-1")
	if !r.Success {
		t.Fatalf("Delete failed: %s", r.Message)
	}
	paras := s.List().Paragraphs
	if len(paras) != 2 {
		t.Fatalf("len = %d, want 2", len(paras))
	}
	if paras[0].ID != "para-0" || paras[1].ID != "para-2" {
		t.Errorf("ids = %q, %q; deletion must not renumber survivors", paras[0].ID, paras[1].ID)
	}
	checkContiguous(t, s)
}

func TestDeleteNotFound(t *testing.T) {
	s := testStore("<p>a</p>")

	r := s.Delete("para-7")
	if r.Success {
		t.Fatal("expected failure")
	}
	if len(r.AvailableIDs) != 1 || r.AvailableIDs[0] != "para-0" {
		t.Errorf("AvailableIDs = %v", r.AvailableIDs)
	}
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	s := testStore("<p>a</p>", "<p>b</p>", "<p>c</p>")

	if r := s.Delete("para-2"); !r.Success {
		t.Fatalf("Delete failed: %s", r.Message)
	}
	r := s.Insert(2, "<p>replacement</p>")
	if !r.Success {
		t.Fatalf("Insert failed: %s", r.Message)
	}
	if r.ParagraphID == "para-2" {
		t.Error("freed id was reissued")
	}
	if r.ParagraphID != "para-3" {
		t.Errorf("ParagraphID = %q, want para-3", r.ParagraphID)
	}
	checkContiguous(t, s)
}

func TestInterleavedMutationsKeepInvariants(t *testing.T) {
	s := testStore("<p>a</p>", "<p>b</p>")

	s.Insert(0, "<p>front</p>")
	s.Delete("para-0")
	s.Insert(5, "<p>tail</p>")
	s.Delete("para-1")
	s.Insert(1, "<p>mid</p>")

	paras := s.List().Paragraphs
	if len(paras) != 3 {
		t.Fatalf("len = %d, want 3", len(paras))
	}
	seen := map[string]bool{}
	for _, p := range paras {
		if seen[p.ID] {
			t.Errorf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Text != StripTags(p.Content) {
			t.Errorf("paragraph %q text %q does not match stripped content", p.ID, p.Text)
		}
	}
	checkContiguous(t, s)
}
