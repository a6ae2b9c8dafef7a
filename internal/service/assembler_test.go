package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitaltwin/internal/domain"
	"digitaltwin/internal/vectorstore"
)

func TestAssembleContextOrderAndFormat(t *testing.T) {
	block, ok := AssembleContext([]domain.RetrievedResult{
		{Title: "Education", Content: "BSc from MIT.", Score: 0.9},
		{Title: "Career Goals", Content: "Short term: Lead.", Score: 0.8},
	})
	require.True(t, ok)
	assert.Equal(t, "Education: BSc from MIT.\n\nCareer Goals: Short term: Lead.", block)
}

func TestAssembleContextDropsEmptyContent(t *testing.T) {
	block, ok := AssembleContext([]domain.RetrievedResult{
		{Title: "Empty", Content: ""},
		{Title: "Kept", Content: "text"},
	})
	require.True(t, ok)
	assert.Equal(t, "Kept: text", block)
}

func TestAssembleContextNothingSurvives(t *testing.T) {
	block, ok := AssembleContext([]domain.RetrievedResult{{Title: "Empty", Content: ""}})
	assert.False(t, ok)
	assert.Empty(t, block)

	block, ok = AssembleContext(nil)
	assert.False(t, ok)
	assert.Empty(t, block)
}

func TestResultsFromMatches(t *testing.T) {
	results := resultsFromMatches([]vectorstore.QueryMatch{
		{ID: "chunk_1", Score: 0.95, Metadata: map[string]any{"title": "Education", "content": "BSc."}},
		{ID: "chunk_2", Score: 0.5, Metadata: map[string]any{"content": "orphaned"}},
		{ID: "chunk_3", Score: 0.1, Metadata: nil},
	})
	require.Len(t, results, 3)
	assert.Equal(t, domain.RetrievedResult{ID: "chunk_1", Score: 0.95, Title: "Education", Content: "BSc."}, results[0])
	// Missing title falls back to a generic label; missing content stays empty
	// and is filtered by the assembler.
	assert.Equal(t, "Information", results[1].Title)
	assert.Equal(t, "orphaned", results[1].Content)
	assert.Empty(t, results[2].Content)
}
