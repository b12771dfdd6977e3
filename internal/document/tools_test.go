// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"
	"testing"
)

func TestDispatchKnownTools(t *testing.T) {
	tests := []struct {
		name        string
		tool        Tool
		args        ToolArgs
		wantSuccess bool
		check       func(t *testing.T, r DispatchResult)
	}{
		{
			name:        "get paragraphs",
			tool:        ToolGetParagraphs,
			wantSuccess: true,
			check: func(t *testing.T, r DispatchResult) {
				list, ok := r.Payload.(ListResult)
				if !ok {
					t.Fatalf("payload type %T", r.Payload)
				}
				if list.TotalParagraphs != 2 {
					t.Errorf("TotalParagraphs = %d", list.TotalParagraphs)
				}
			},
		},
		{
			name:        "search hit",
			tool:        ToolSearchParagraphs,
			args:        ToolArgs{Query: "alpha"},
			wantSuccess: true,
			check: func(t *testing.T, r DispatchResult) {
				sr, ok := r.Payload.(SearchResult)
				if !ok {
					t.Fatalf("payload type %T", r.Payload)
				}
				if sr.TotalMatches != 1 {
					t.Errorf("TotalMatches = %d", sr.TotalMatches)
				}
			},
		},
		{
			name:        "search miss is a failure result",
			tool:        ToolSearchParagraphs,
			args:        ToolArgs{Query: "zzzzz"},
			wantSuccess: false,
		},
		{
			name:        "modify",
			tool:        ToolModifyParagraph,
			args:        ToolArgs{ParagraphID: "para-0", NewContent: "<p>changed</p>"},
			wantSuccess: true,
		},
		{
			name:        "add",
			tool:        ToolAddParagraph,
			args:        ToolArgs{Index: 1, Content: "<p>inserted</p>"},
			wantSuccess: true,
		},
		{
			name:        "delete missing id",
			tool:        ToolDeleteParagraph,
			args:        ToolArgs{ParagraphID: "para-9"},
			wantSuccess: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore("<p>alpha</p>", "<p>beta</p>")

			r := s.Dispatch(tt.tool, tt.args)
			if r.Success != tt.wantSuccess {
				t.Fatalf("Success = %v, want %v (%s)", r.Success, tt.wantSuccess, r.Message)
			}
			if r.Error != "" {
				t.Errorf("Error = %q for a known tool", r.Error)
			}
			if tt.check != nil {
				tt.check(t, r)
			}
		})
	}
}

func TestDispatchRejectsUnknownTool(t *testing.T) {
	s := testStore("<p>alpha</p>")

	r := s.Dispatch("none", ToolArgs{})
	if r.Success {
		t.Fatal("unknown tool must fail")
	}
	if r.Error == "" {
		t.Error("rejection must set Error")
	}
	for _, valid := range ValidTools() {
		if !strings.Contains(r.Message, string(valid)) {
			t.Errorf("message %q does not enumerate %q", r.Message, valid)
		}
	}
	// Rejection must not touch the store.
	if s.Len() != 1 {
		t.Errorf("store length changed to %d", s.Len())
	}
}
