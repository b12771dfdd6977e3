// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docmaster/autowriter/internal/archive"
	"github.com/docmaster/autowriter/internal/llm"
	"github.com/docmaster/autowriter/internal/writer"
	"github.com/docmaster/autowriter/pkg/types"
)

var writeCmd = &cobra.Command{
	Use:   "write [request]",
	Short: "Generate an article from a natural-language request",
	Long: `Write runs the full generation workflow: intent classification,
parameter extraction, outline design, section drafting, and compilation.
Progress streams to the terminal (or as JSON lines with --json); the
compiled article lands in the output directory and, unless disabled, in
the article archive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")
	log := newLogger(cmd)

	client, err := llm.NewOpenAIClient(llmConfig(cmd))
	if err != nil {
		return err
	}

	agent, err := writer.NewAgent(client, log)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx := cmd.Context()
	var (
		final  *types.Event
		params types.WriterParameters
	)
	for ev := range agent.Run(ctx, request) {
		if jsonOutput {
			if err := json.NewEncoder(os.Stdout).Encode(ev); err != nil {
				return err
			}
		} else {
			printEvent(ev)
		}
		if ev.Type == types.EventParameters && ev.Parameters != nil {
			params = *ev.Parameters
		}
		if ev.Terminal() {
			final = &ev
			break
		}
	}

	if final == nil {
		return ctx.Err()
	}
	if final.Type == types.EventError {
		if final.Reason != "" {
			return fmt.Errorf("%s: %s", final.Message, final.Reason)
		}
		return fmt.Errorf("%s", final.Message)
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	mdPath, htmlPath, err := writeArticle(outputDir, *final)
	if err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Fprintf(os.Stdout, "\nWrote %s and %s\n", mdPath, htmlPath)
	}

	if noArchive, _ := cmd.Flags().GetBool("no-archive"); !noArchive {
		if err := archiveRun(ctx, cmd, request, params, *final); err != nil {
			log.Warn().Err(err).Msg("archiving failed")
		}
	}

	return nil
}

// printEvent renders one stream event for a terminal consumer.
func printEvent(ev types.Event) {
	switch ev.Type {
	case types.EventStatus:
		fmt.Fprintf(os.Stdout, "[%s] %s\n", ev.Phase, ev.Message)
	case types.EventParameters:
		p := ev.Parameters
		fmt.Fprintf(os.Stdout, "  title=%q topic=%q sections=%d language=%s\n",
			p.Title, p.Topic, p.ParagraphCount, p.Language)
	case types.EventSectionProgress:
		fmt.Fprintf(os.Stdout, "  section %d/%d: %s\n", ev.Current, ev.Total, ev.Title)
	case types.EventArticleDraft:
		// Draft previews are for streaming UIs; skip on the terminal.
	case types.EventComplete:
		fmt.Fprintf(os.Stdout, "\n%s\n", ev.Summary)
	case types.EventError:
		fmt.Fprintf(os.Stderr, "error: %s\n", ev.Message)
	}
}

// writeArticle saves the compiled Markdown and HTML under dir.
func writeArticle(dir string, ev types.Event) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	base := slugify(ev.Title)
	mdPath := filepath.Join(dir, base+".md")
	htmlPath := filepath.Join(dir, base+".html")

	if err := os.WriteFile(mdPath, []byte(ev.FinalMarkdown), 0o644); err != nil {
		return "", "", fmt.Errorf("writing markdown: %w", err)
	}
	if err := os.WriteFile(htmlPath, []byte(ev.FinalHTML), 0o644); err != nil {
		return "", "", fmt.Errorf("writing html: %w", err)
	}
	return mdPath, htmlPath, nil
}

func archiveRun(ctx context.Context, cmd *cobra.Command, request string, params types.WriterParameters, final types.Event) error {
	store, err := archive.NewStore(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	rec := types.ArticleRecord{
		Title:          final.Title,
		Topic:          params.Topic,
		Language:       params.Language,
		ParagraphCount: params.ParagraphCount,
		Request:        request,
		Markdown:       final.FinalMarkdown,
		HTML:           final.FinalHTML,
		Parameters:     params,
	}
	return store.Save(ctx, &rec)
}

func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	dir, _ := cmd.Flags().GetString("archive-dir")
	if dir == "" {
		dir = viper.GetString("archive.dir")
	}
	if dir == "" {
		dir = "archive"
	}
	return types.ArchiveConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("archive.max_results"),
	}
}

// slugify reduces a title to a safe lowercase file name.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "article"
	}
	return slug
}

func init() {
	writeCmd.Flags().String("model", "", "chat model identifier (default from config or gpt-4o-mini)")
	writeCmd.Flags().String("output-dir", "output/articles", "directory for compiled articles")
	writeCmd.Flags().String("archive-dir", "", "directory for the article archive database")
	writeCmd.Flags().Bool("json", false, "stream events as JSON lines instead of terminal output")
	writeCmd.Flags().Bool("no-archive", false, "skip recording the run in the archive")

	rootCmd.AddCommand(writeCmd)
}
