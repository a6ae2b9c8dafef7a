package service

import (
	"strings"

	"digitaltwin/internal/domain"
	"digitaltwin/internal/vectorstore"
)

// AssembleContext composes the grounding block for the generator from ranked
// retrieval results. It drops results without retrievable content, keeps the
// gateway's ranking order, and joins survivors as "title: content" entries
// separated by a blank line. ok is false when nothing survives, which the
// orchestrator maps to the no-information fallback.
func AssembleContext(results []domain.RetrievedResult) (block string, ok bool) {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Content == "" {
			continue
		}
		parts = append(parts, r.Title+": "+r.Content)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n\n"), true
}

// resultsFromMatches recovers title and content from stored metadata. The
// gateway does not echo chunk text, so the metadata copy is authoritative.
func resultsFromMatches(matches []vectorstore.QueryMatch) []domain.RetrievedResult {
	results := make([]domain.RetrievedResult, 0, len(matches))
	for _, m := range matches {
		r := domain.RetrievedResult{ID: m.ID, Score: m.Score, Title: "Information"}
		if title, ok := m.Metadata["title"].(string); ok && title != "" {
			r.Title = title
		}
		if content, ok := m.Metadata["content"].(string); ok {
			r.Content = content
		}
		results = append(results, r)
	}
	return results
}
