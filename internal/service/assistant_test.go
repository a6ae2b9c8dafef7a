package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitaltwin/internal/chunker"
	"digitaltwin/internal/domain"
	"digitaltwin/internal/generator"
	"digitaltwin/internal/vectorstore"
)

// --- Fakes ---

type fakeIndex struct {
	info        vectorstore.IndexInfo
	infoErr     error
	queryResult []vectorstore.QueryMatch
	queryErr    error
	upserted    []vectorstore.Item
	queryCalled bool
	lastTopK    int
}

func (f *fakeIndex) Upsert(_ context.Context, items []vectorstore.Item) error {
	f.upserted = append(f.upserted, items...)
	return nil
}

func (f *fakeIndex) Query(_ context.Context, _ string, topK int, _ bool) ([]vectorstore.QueryMatch, error) {
	f.queryCalled = true
	f.lastTopK = topK
	return f.queryResult, f.queryErr
}

func (f *fakeIndex) Info(_ context.Context) (vectorstore.IndexInfo, error) {
	return f.info, f.infoErr
}

type fakeGenerator struct {
	answer  string
	err     error
	called  bool
	lastReq generator.CompletionRequest
}

func (f *fakeGenerator) Complete(_ context.Context, req generator.CompletionRequest) (string, error) {
	f.called = true
	f.lastReq = req
	return f.answer, f.err
}

func newAssistant(index *fakeIndex, gen *fakeGenerator) *Assistant {
	return New(Config{
		Chunker:   chunker.New(),
		Index:     index,
		Generator: gen,
	})
}

func match(title, content string, score float64) vectorstore.QueryMatch {
	return vectorstore.QueryMatch{
		ID:    "chunk_1",
		Score: score,
		Metadata: map[string]any{
			"title":   title,
			"content": content,
		},
	}
}

// --- Answer ---

func TestAnswerEmptyQuestionIsNoOp(t *testing.T) {
	index := &fakeIndex{}
	gen := &fakeGenerator{}
	a := newAssistant(index, gen)

	assert.Empty(t, a.Answer(context.Background(), ""))
	assert.Empty(t, a.Answer(context.Background(), "   \t  "))
	assert.False(t, index.queryCalled)
	assert.False(t, gen.called)
}

func TestAnswerNoRetrievalResults(t *testing.T) {
	index := &fakeIndex{}
	gen := &fakeGenerator{}
	a := newAssistant(index, gen)

	got := a.Answer(context.Background(), "What are your skills?")
	assert.Equal(t, FallbackAnswer, got)
	assert.False(t, gen.called)
}

func TestAnswerEmptyContentInMetadata(t *testing.T) {
	index := &fakeIndex{queryResult: []vectorstore.QueryMatch{match("Education", "", 0.9)}}
	gen := &fakeGenerator{}
	a := newAssistant(index, gen)

	got := a.Answer(context.Background(), "Where did you study?")
	assert.Equal(t, FallbackAnswer, got)
	assert.False(t, gen.called)
}

func TestAnswerRetrievalError(t *testing.T) {
	index := &fakeIndex{queryErr: domain.ErrRetrieval}
	gen := &fakeGenerator{}
	a := newAssistant(index, gen)

	got := a.Answer(context.Background(), "anything")
	assert.Equal(t, FallbackAnswer, got)
	assert.False(t, gen.called)
}

func TestAnswerHappyPath(t *testing.T) {
	index := &fakeIndex{queryResult: []vectorstore.QueryMatch{
		match("Education", "BSc from MIT.", 0.9),
		match("Career Goals", "Short term: Lead.", 0.7),
	}}
	gen := &fakeGenerator{answer: "  I studied at MIT.  "}
	a := newAssistant(index, gen)

	got := a.Answer(context.Background(), "Where did you study?")
	assert.Equal(t, "I studied at MIT.", got)
	assert.Equal(t, 3, index.lastTopK)

	require.True(t, gen.called)
	assert.Contains(t, gen.lastReq.System, "first person")
	assert.Contains(t, gen.lastReq.User, "Education: BSc from MIT.")
	assert.Contains(t, gen.lastReq.User, "Career Goals: Short term: Lead.")
	assert.Contains(t, gen.lastReq.User, "Question: Where did you study?")
	assert.InDelta(t, 0.7, gen.lastReq.Temperature, 1e-6)
	assert.Equal(t, 500, gen.lastReq.MaxTokens)
}

func TestAnswerGenerationError(t *testing.T) {
	index := &fakeIndex{queryResult: []vectorstore.QueryMatch{match("Education", "BSc.", 0.9)}}
	gen := &fakeGenerator{err: errors.New("rate limited")}
	a := newAssistant(index, gen)

	got := a.Answer(context.Background(), "Where did you study?")
	assert.Contains(t, got, "Sorry, I could not generate a response")
	assert.Contains(t, got, "rate limited")
}

// --- EnsureIndexed ---

func writeProfile(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestEnsureIndexedSkipsPopulatedIndex(t *testing.T) {
	index := &fakeIndex{info: vectorstore.IndexInfo{VectorCount: 42}}
	a := newAssistant(index, &fakeGenerator{})

	// The path does not exist; a populated index must not read it.
	report, err := a.EnsureIndexed(context.Background(), "/nonexistent/profile.json")
	require.NoError(t, err)
	assert.True(t, report.AlreadyIndexed)
	assert.Equal(t, 42, report.VectorCount)
	assert.Empty(t, index.upserted)
}

func TestEnsureIndexedBulkLoad(t *testing.T) {
	index := &fakeIndex{}
	a := newAssistant(index, &fakeGenerator{})
	path := writeProfile(t, `{
		"personal": {"name": "Ada", "title": "Engineer", "location": "Remote", "summary": "Builds systems."},
		"career_goals": {"short_term": "Lead"}
	}`)

	report, err := a.EnsureIndexed(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, report.AlreadyIndexed)
	assert.Equal(t, 2, report.ChunkCount)
	require.Len(t, index.upserted, 2)

	first := index.upserted[0]
	assert.Equal(t, "chunk_1", first.ID)
	assert.Equal(t, "Personal Information: Name: Ada. Title: Engineer. Location: Remote. Builds systems.", first.Data)
	assert.Equal(t, "Personal Information", first.Metadata["title"])
	assert.Equal(t, "Name: Ada. Title: Engineer. Location: Remote. Builds systems.", first.Metadata["content"])
	assert.Equal(t, "personal", first.Metadata["type"])
}

func TestEnsureIndexedMissingProfile(t *testing.T) {
	index := &fakeIndex{}
	a := newAssistant(index, &fakeGenerator{})

	_, err := a.EnsureIndexed(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, domain.ErrChunking)
}

func TestEnsureIndexedEmptyProfile(t *testing.T) {
	index := &fakeIndex{}
	a := newAssistant(index, &fakeGenerator{})
	path := writeProfile(t, `{}`)

	_, err := a.EnsureIndexed(context.Background(), path)
	require.ErrorIs(t, err, domain.ErrChunking)
}

func TestEnsureIndexedInfoFailure(t *testing.T) {
	index := &fakeIndex{infoErr: domain.ErrRetrieval}
	a := newAssistant(index, &fakeGenerator{})

	_, err := a.EnsureIndexed(context.Background(), "ignored.json")
	require.ErrorIs(t, err, domain.ErrRetrieval)
}
