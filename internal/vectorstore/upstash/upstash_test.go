package upstash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitaltwin/internal/domain"
	"digitaltwin/internal/vectorstore"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{URL: srv.URL, Token: "test-token"})
}

func TestUpsertEncodesItems(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"result": "Success"}`))
	})

	err := c.Upsert(context.Background(), []vectorstore.Item{{
		ID:       "chunk_1",
		Data:     "Education: BSc from MIT.",
		Metadata: map[string]any{"title": "Education", "content": "BSc from MIT."},
	}})
	require.NoError(t, err)

	assert.Equal(t, "/upsert-data", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, gotBody, 1)
	assert.Equal(t, "chunk_1", gotBody[0]["id"])
	assert.Equal(t, "Education: BSc from MIT.", gotBody[0]["data"])
}

func TestQueryParsesMatches(t *testing.T) {
	var gotReq map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query-data", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"result": [
			{"id": "chunk_2", "score": 0.92, "metadata": {"title": "Education", "content": "BSc."}},
			{"id": "chunk_5", "score": 0.41, "metadata": {"title": "Career Goals", "content": "Lead."}}
		]}`))
	})

	matches, err := c.Query(context.Background(), "where did you study", 3, true)
	require.NoError(t, err)

	assert.Equal(t, "where did you study", gotReq["data"])
	assert.Equal(t, float64(3), gotReq["topK"])
	assert.Equal(t, true, gotReq["includeMetadata"])

	require.Len(t, matches, 2)
	assert.Equal(t, "chunk_2", matches[0].ID)
	assert.InDelta(t, 0.92, matches[0].Score, 1e-9)
	assert.Equal(t, "Education", matches[0].Metadata["title"])
	assert.Equal(t, "chunk_5", matches[1].ID)
}

func TestQueryDefaultsTopK(t *testing.T) {
	var gotReq map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"result": []}`))
	})

	matches, err := c.Query(context.Background(), "q", 0, true)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, float64(3), gotReq["topK"])
}

func TestInfoReportsVectorCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/info", r.URL.Path)
		w.Write([]byte(`{"result": {"vectorCount": 37, "pendingVectorCount": 2, "dimension": 1024}}`))
	})

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 37, info.VectorCount)
	assert.Equal(t, 2, info.PendingCount)
	assert.Equal(t, 1024, info.Dimension)
}

func TestErrorStatusWrapsRetrievalSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Unauthorized"}`, http.StatusUnauthorized)
	})

	_, err := c.Query(context.Background(), "q", 3, true)
	require.ErrorIs(t, err, domain.ErrRetrieval)
	assert.Contains(t, err.Error(), "401")

	_, err = c.Info(context.Background())
	require.ErrorIs(t, err, domain.ErrRetrieval)

	err = c.Upsert(context.Background(), []vectorstore.Item{{ID: "x", Data: "y"}})
	require.ErrorIs(t, err, domain.ErrRetrieval)
}

func TestTransportFailureWrapsRetrievalSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewClient(Config{URL: srv.URL, Token: "t"})

	_, err := c.Query(context.Background(), "q", 3, true)
	require.ErrorIs(t, err, domain.ErrRetrieval)
}
