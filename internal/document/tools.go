// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"strings"
)

// Tool identifies one dispatchable paragraph operation. The set is a
// closed allow-list; dispatch never resolves names dynamically.
type Tool string

const (
	ToolGetParagraphs    Tool = "get_document_paragraphs"
	ToolSearchParagraphs Tool = "search_document_paragraphs"
	ToolModifyParagraph  Tool = "modify_document_paragraph"
	ToolAddParagraph     Tool = "add_document_paragraph"
	ToolDeleteParagraph  Tool = "delete_document_paragraph"
)

// ValidTools returns the allow-list in a fixed order.
func ValidTools() []Tool {
	return []Tool{
		ToolGetParagraphs,
		ToolSearchParagraphs,
		ToolModifyParagraph,
		ToolAddParagraph,
		ToolDeleteParagraph,
	}
}

// ToolArgs is the union of tool inputs. Each tool reads only the
// fields it needs and ignores the rest.
type ToolArgs struct {
	Query       string `json:"query,omitempty"`
	ParagraphID string `json:"paragraph_id,omitempty"`
	NewContent  string `json:"new_content,omitempty"`
	Index       int    `json:"index,omitempty"`
	Content     string `json:"content,omitempty"`
}

// DispatchResult carries any tool's outcome. Payload holds the
// tool-specific result value (ListResult, SearchResult or OpResult);
// Error is set only for rejected tool names.
type DispatchResult struct {
	Tool    Tool   `json:"tool"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Payload any    `json:"result,omitempty"`
}

// Dispatch executes one named tool against the store. An unknown name
// is a failure result naming the tool and enumerating the valid set;
// it never reaches the store and never panics.
func (s *Store) Dispatch(tool Tool, args ToolArgs) DispatchResult {
	s.log.Info().Str("tool", string(tool)).Msg("dispatching document tool")

	switch tool {
	case ToolGetParagraphs:
		r := s.List()
		return DispatchResult{Tool: tool, Success: true, Message: r.Message, Payload: r}
	case ToolSearchParagraphs:
		r := s.Search(args.Query)
		return DispatchResult{Tool: tool, Success: r.Found, Message: r.Message, Payload: r}
	case ToolModifyParagraph:
		r := s.Modify(args.ParagraphID, args.NewContent)
		return DispatchResult{Tool: tool, Success: r.Success, Message: r.Message, Payload: r}
	case ToolAddParagraph:
		r := s.Insert(args.Index, args.Content)
		return DispatchResult{Tool: tool, Success: r.Success, Message: r.Message, Payload: r}
	case ToolDeleteParagraph:
		r := s.Delete(args.ParagraphID)
		return DispatchResult{Tool: tool, Success: r.Success, Message: r.Message, Payload: r}
	default:
		names := make([]string, 0, 5)
		for _, t := range ValidTools() {
			names = append(names, string(t))
		}
		s.log.Warn().Str("tool", string(tool)).Msg("unknown tool rejected")
		return DispatchResult{
			Tool:    tool,
			Message: fmt.Sprintf("Unknown tool '%s'. Valid tools are: %s", tool, strings.Join(names, ", ")),
			Error:   fmt.Sprintf("invalid tool name: %s", tool),
		}
	}
}
