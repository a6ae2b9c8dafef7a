package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"digitaltwin/internal/domain"
	"digitaltwin/internal/generator"
	"digitaltwin/internal/profile"
	"digitaltwin/internal/vectorstore"
)

// FallbackAnswer is returned whenever retrieval produces nothing usable.
const FallbackAnswer = "I don't have specific information about that topic."

const personaPrompt = "You are an AI digital twin. Answer questions as if you are the person, " +
	"speaking in first person about your background, skills, and experience."

const userPromptFormat = `Based on the following information about yourself, answer the question.
Speak in first person as if you are describing your own background.

Your Information:
%s

Question: %s

Provide a helpful, professional response:`

// Digester produces a brief digest of the indexed profile for the greeting.
type Digester interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Assistant ties chunking, retrieval and generation into the
// question-answering pipeline. It is stateless between questions; each call
// runs start to finish with no shared mutable state.
type Assistant struct {
	chunker         domain.Chunker
	index           vectorstore.Gateway
	gen             generator.Generator
	digester        Digester
	topK            int
	temperature     float32
	maxTokens       int
	digestSentences int
	logger          *zap.Logger
}

// Config wires the assistant's collaborators and tuning knobs.
type Config struct {
	Chunker         domain.Chunker
	Index           vectorstore.Gateway
	Generator       generator.Generator
	Digester        Digester
	TopK            int
	Temperature     float32
	MaxTokens       int
	DigestSentences int
	Logger          *zap.Logger
}

func New(cfg Config) *Assistant {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.DigestSentences <= 0 {
		cfg.DigestSentences = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Assistant{
		chunker:         cfg.Chunker,
		index:           cfg.Index,
		gen:             cfg.Generator,
		digester:        cfg.Digester,
		topK:            cfg.TopK,
		temperature:     cfg.Temperature,
		maxTokens:       cfg.MaxTokens,
		digestSentences: cfg.DigestSentences,
		logger:          cfg.Logger,
	}
}

// IndexReport describes what EnsureIndexed found or did.
type IndexReport struct {
	AlreadyIndexed bool
	VectorCount    int
	ChunkCount     int
	Digest         string
}

// EnsureIndexed performs the one-time bulk load: when the index reports zero
// vectors, the profile document is read, chunked and upserted. A populated
// index skips the load entirely, including reading the document.
func (a *Assistant) EnsureIndexed(ctx context.Context, profilePath string) (IndexReport, error) {
	info, err := a.index.Info(ctx)
	if err != nil {
		return IndexReport{}, fmt.Errorf("index info: %w", err)
	}
	if info.VectorCount > 0 {
		a.logger.Info("vector index already populated", zap.Int("vectors", info.VectorCount))
		return IndexReport{AlreadyIndexed: true, VectorCount: info.VectorCount}, nil
	}

	prof, err := profile.Load(profilePath)
	if err != nil {
		return IndexReport{}, err
	}
	chunks, err := a.chunker.Chunk(prof)
	if err != nil {
		return IndexReport{}, err
	}
	if len(chunks) == 0 {
		return IndexReport{}, fmt.Errorf("profile produced no chunks: %w", domain.ErrChunking)
	}

	items := make([]vectorstore.Item, len(chunks))
	var contents strings.Builder
	for i, ch := range chunks {
		items[i] = vectorstore.Item{
			ID:   ch.ID,
			Data: ch.Title + ": " + ch.Content,
			Metadata: map[string]any{
				"title":    ch.Title,
				"type":     string(ch.Kind),
				"content":  ch.Content,
				"category": string(ch.Kind),
				"tags":     ch.Tags,
			},
		}
		contents.WriteString(ch.Content)
		contents.WriteString("\n")
	}
	if err := a.index.Upsert(ctx, items); err != nil {
		return IndexReport{}, fmt.Errorf("bulk load: %w", err)
	}
	a.logger.Info("profile indexed", zap.Int("chunks", len(chunks)))

	report := IndexReport{ChunkCount: len(chunks), VectorCount: len(chunks)}
	if a.digester != nil {
		digest, err := a.digester.Summarize(contents.String(), a.digestSentences)
		if err != nil {
			a.logger.Warn("profile digest failed", zap.Error(err))
		} else {
			report.Digest = digest
		}
	}
	return report, nil
}

// Answer runs one question through retrieve → assemble → generate. Failures
// of either collaborator degrade to a textual answer; this method never
// aborts the surrounding session.
func (a *Assistant) Answer(ctx context.Context, question string) string {
	q := strings.TrimSpace(question)
	if q == "" {
		return ""
	}

	matches, err := a.index.Query(ctx, q, a.topK, true)
	if err != nil {
		a.logger.Warn("retrieval failed", zap.String("question", q), zap.Error(err))
		return FallbackAnswer
	}
	block, ok := AssembleContext(resultsFromMatches(matches))
	if !ok {
		return FallbackAnswer
	}

	answer, err := a.gen.Complete(ctx, generator.CompletionRequest{
		System:      personaPrompt,
		User:        fmt.Sprintf(userPromptFormat, block, q),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		a.logger.Error("generation failed", zap.String("question", q), zap.Error(err))
		return "Sorry, I could not generate a response: " + err.Error()
	}
	return strings.TrimSpace(answer)
}
