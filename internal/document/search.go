// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"sort"
	"strings"
)

// Search scoring tiers. Each paragraph takes the score of the first
// tier that applies; tiers are never summed.
const (
	scoreExact    = 100
	scoreAllWords = 80
	scoreHeading  = 70
	scorePartial  = 50
	perWordBonus  = 10
	perCharScore  = 5

	minSequenceQueryLen = 3
)

// SearchMatch is one scored paragraph hit.
type SearchMatch struct {
	ParagraphID    string `json:"paragraph_id"`
	ParagraphIndex int    `json:"paragraph_index"`
	Text           string `json:"text"`
	Content        string `json:"paragraph_content"`
	RelevanceScore int    `json:"relevance_score"`
	MatchType      string `json:"match_type"`
}

// SearchResult is the ranked search payload. A miss or an empty query
// is a value, not an error.
type SearchResult struct {
	Found        bool          `json:"found"`
	Matches      []SearchMatch `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	Message      string        `json:"message"`
}

// Search ranks paragraphs against a lexical query. The cascade, top
// tier wins:
//
//	exact substring         -> 100
//	all words (len > 1)     -> 80
//	heading with any word   -> 70
//	some words              -> 50 + 10 per matched word
//	character subsequence   -> 5 per in-order character (query >= 3 chars)
//
// Results sort by score descending; ties keep document order. This is
// best-effort lexical relevance, not semantic search.
func (s *Store) Search(query string) SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		s.log.Warn().Msg("search called with empty query")
		return SearchResult{Message: "Search query cannot be empty"}
	}

	queryLower := strings.ToLower(query)
	var queryWords []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) > 1 {
			queryWords = append(queryWords, w)
		}
	}

	var matches []SearchMatch
	for _, p := range s.paras {
		score, matchType := scoreParagraph(p.Text, p.Content, queryLower, queryWords)
		if score <= 0 {
			continue
		}
		matches = append(matches, SearchMatch{
			ParagraphID:    p.ID,
			ParagraphIndex: p.Index,
			Text:           p.Text,
			Content:        p.Content,
			RelevanceScore: score,
			MatchType:      matchType,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})

	if len(matches) == 0 {
		s.log.Info().Str("query", query).Msg("search found no matches")
		return SearchResult{
			Message: fmt.Sprintf("No paragraphs found matching '%s'", query),
		}
	}

	s.log.Info().
		Str("query", query).
		Int("match_count", len(matches)).
		Str("top_match_type", matches[0].MatchType).
		Msg("search completed")

	return SearchResult{
		Found:        true,
		Matches:      matches,
		TotalMatches: len(matches),
		Message:      fmt.Sprintf("Found %d paragraph(s) matching '%s'", len(matches), query),
	}
}

// scoreParagraph applies the tier cascade to one paragraph.
func scoreParagraph(text, content, queryLower string, queryWords []string) (int, string) {
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, queryLower) {
		return scoreExact, "exact"
	}

	matched := 0
	for _, w := range queryWords {
		if strings.Contains(textLower, w) {
			matched++
		}
	}

	if len(queryWords) > 0 && matched == len(queryWords) {
		return scoreAllWords, "all_words"
	}

	if isHeading(content) && (strings.Contains(textLower, queryLower) || matched > 0) {
		return scoreHeading, "heading"
	}

	if matched > 0 {
		return scorePartial + perWordBonus*matched, "partial"
	}

	queryRunes := []rune(queryLower)
	if len(queryRunes) >= minSequenceQueryLen {
		if score := sequenceScore([]rune(textLower), queryRunes); score > 0 {
			return score, "sequence"
		}
	}

	return 0, ""
}

// sequenceScore walks the query characters left to right, awarding
// points for each one found after the previous hit. The scan stops at
// the first character with no remaining occurrence.
func sequenceScore(text, query []rune) int {
	score, pos := 0, 0
	for _, c := range query {
		idx := -1
		for i := pos; i < len(text); i++ {
			if text[i] == c {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		score += perCharScore
		pos = idx + 1
	}
	return score
}

// isHeading reports whether the raw content is an h1-h6 element.
func isHeading(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	for level := '1'; level <= '6'; level++ {
		if strings.HasPrefix(lower, "<h"+string(level)) {
			return true
		}
	}
	return false
}
