package upstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"digitaltwin/internal/domain"
	"digitaltwin/internal/vectorstore"
)

// Client is a minimal REST client to an Upstash Vector index. The index
// embeds raw text server-side, so the data plane speaks text throughout.
type Client struct {
	url    string
	token  string
	client *http.Client
	logger *zap.Logger
}

// Config holds connection details for the index.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    cfg.URL,
		token:  cfg.Token,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type upsertRecord struct {
	ID       string         `json:"id"`
	Data     string         `json:"data"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Upsert stores the items, letting the index compute embeddings.
func (c *Client) Upsert(ctx context.Context, items []vectorstore.Item) error {
	records := make([]upsertRecord, len(items))
	for i, it := range items {
		records[i] = upsertRecord{ID: it.ID, Data: it.Data, Metadata: it.Metadata}
	}
	if err := c.postJSON(ctx, c.url+"/upsert-data", records, nil); err != nil {
		return err
	}
	c.logger.Info("upserted items into vector index", zap.Int("count", len(items)))
	return nil
}

// Query runs a similarity search over the index's own embedding of text.
func (c *Client) Query(ctx context.Context, text string, topK int, includeMetadata bool) ([]vectorstore.QueryMatch, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"data":            text,
		"topK":            topK,
		"includeMetadata": includeMetadata,
	}
	var resp struct {
		Result []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"result"`
	}
	if err := c.postJSON(ctx, c.url+"/query-data", req, &resp); err != nil {
		return nil, err
	}
	matches := make([]vectorstore.QueryMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, vectorstore.QueryMatch{ID: r.ID, Score: r.Score, Metadata: r.Metadata})
	}
	return matches, nil
}

// Info reports index state; the vector count decides whether the one-time
// profile load is needed.
func (c *Client) Info(ctx context.Context) (vectorstore.IndexInfo, error) {
	var resp struct {
		Result struct {
			VectorCount        int `json:"vectorCount"`
			PendingVectorCount int `json:"pendingVectorCount"`
			Dimension          int `json:"dimension"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, c.url+"/info", &resp); err != nil {
		return vectorstore.IndexInfo{}, err
	}
	return vectorstore.IndexInfo{
		VectorCount:  resp.Result.VectorCount,
		PendingCount: resp.Result.PendingVectorCount,
		Dimension:    resp.Result.Dimension,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %s: %w", err, domain.ErrRetrieval)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %s: %w", err, domain.ErrRetrieval)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %s: %w", err, domain.ErrRetrieval)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upstash %s %s: %s: %w", req.Method, req.URL.Path, err, domain.ErrRetrieval)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstash %s %s: %s: %s: %w",
			req.Method, req.URL.Path, resp.Status, bytes.TrimSpace(body), domain.ErrRetrieval)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %s: %w", err, domain.ErrRetrieval)
		}
	}
	return nil
}

var _ vectorstore.Gateway = (*Client)(nil)
