package vectorstore

import "context"

// Item is one text unit handed to the index for embedding and storage.
// Metadata must carry at least title and content so they can be recovered
// verbatim at query time.
type Item struct {
	ID       string
	Data     string
	Metadata map[string]any
}

// QueryMatch is one ranked similarity match.
type QueryMatch struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// IndexInfo describes the current state of the index.
type IndexInfo struct {
	VectorCount  int
	PendingCount int
	Dimension    int
}

// Gateway is the contract of the external vector index. The service embeds
// raw text on its own side, so both upsert and query carry text, not vectors.
type Gateway interface {
	Upsert(ctx context.Context, items []Item) error
	Query(ctx context.Context, text string, topK int, includeMetadata bool) ([]QueryMatch, error)
	Info(ctx context.Context) (IndexInfo, error)
}
