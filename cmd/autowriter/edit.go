// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docmaster/autowriter/internal/document"
	"github.com/docmaster/autowriter/pkg/types"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Apply one paragraph tool to an existing document",
	Long: `Edit loads a Markdown or HTML document into the paragraph store and
dispatches a single named tool against it. The result, including failure
diagnostics, prints as JSON. Mutating tools rewrite the file in place
when --write is set; otherwise the edited document prints to stdout.

Valid tools: get_document_paragraphs, search_document_paragraphs,
modify_document_paragraph, add_document_paragraph,
delete_document_paragraph.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	paras, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	store := document.NewStore(log, paras)

	tool, _ := cmd.Flags().GetString("tool")
	query, _ := cmd.Flags().GetString("query")
	paragraphID, _ := cmd.Flags().GetString("id")
	content, _ := cmd.Flags().GetString("content")
	index, _ := cmd.Flags().GetInt("index")

	result := store.Dispatch(document.Tool(tool), document.ToolArgs{
		Query:       query,
		ParagraphID: paragraphID,
		NewContent:  content,
		Index:       index,
		Content:     content,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	if mutatingTool(document.Tool(tool)) {
		html := document.JoinHTML(store.List().Paragraphs)
		if write, _ := cmd.Flags().GetBool("write"); write {
			if err := os.WriteFile(args[0], []byte(html), 0o644); err != nil {
				return fmt.Errorf("writing document: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", args[0])
		} else {
			fmt.Fprintln(os.Stdout, html)
		}
	}
	return nil
}

// loadDocument splits a file into paragraphs. Markdown converts to HTML
// first; everything else is treated as HTML.
func loadDocument(path string) ([]types.Paragraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".md" || ext == ".markdown" {
		return document.FromMarkdown(string(data))
	}
	return document.SplitHTML(string(data)), nil
}

func mutatingTool(tool document.Tool) bool {
	switch tool {
	case document.ToolModifyParagraph, document.ToolAddParagraph, document.ToolDeleteParagraph:
		return true
	}
	return false
}

func init() {
	editCmd.Flags().String("tool", string(document.ToolGetParagraphs), "paragraph tool to dispatch")
	editCmd.Flags().String("query", "", "search query (search_document_paragraphs)")
	editCmd.Flags().String("id", "", "paragraph ID (modify/delete)")
	editCmd.Flags().String("content", "", "paragraph content (modify/add)")
	editCmd.Flags().Int("index", 0, "insertion index (add_document_paragraph)")
	editCmd.Flags().Bool("write", false, "write the edited document back to the file")

	rootCmd.AddCommand(editCmd)
}
