package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-advisor/internal/adapter/vector/qdrant"
)

func TestClient_EnsureCollection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		collection string
		handler    http.HandlerFunc
		wantErr    bool
	}{
		{
			name:       "collection already exists",
			collection: "courses",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.WriteHeader(http.StatusOK)
					require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"result": "ok"}))
				}
			},
		},
		{
			name:       "create new collection",
			collection: "courses_new",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if r.Method == http.MethodPut {
					var payload map[string]any
					require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
					vectors := payload["vectors"].(map[string]any)
					assert.Equal(t, float64(1536), vectors["size"])
					assert.Equal(t, "Cosine", vectors["distance"])
					w.WriteHeader(http.StatusOK)
				}
			},
		},
		{
			name:       "create fails",
			collection: "broken",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := qdrant.New(srv.URL, "")
			err := c.EnsureCollection(context.Background(), tt.collection, 1536, "Cosine")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/collections/courses/points/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5), body["limit"])
		assert.Equal(t, true, body["with_payload"])

		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"score": 0.92, "payload": map[string]any{"course": "BSc Software Engineering"}},
				{"score": 0.71, "payload": map[string]any{"course": "BSc Computer Science"}},
			},
		}))
	}))
	defer srv.Close()

	c := qdrant.New(srv.URL, "secret")
	results, err := c.Search(context.Background(), "courses", []float32{0.1, 0.2}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.InDelta(t, 0.92, results[0].Score, 0.001)
	assert.Equal(t, "BSc Software Engineering", results[0].Payload["course"])
}

func TestClient_Scroll(t *testing.T) {
	t.Parallel()

	page := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/courses/points/scroll", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		page++
		if page == 1 {
			assert.Nil(t, body["offset"])
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{
					"points":           []map[string]any{{"payload": map[string]any{"location": "Colombo"}}},
					"next_page_offset": "cursor-1",
				},
			}))
			return
		}
		assert.Equal(t, "cursor-1", body["offset"])
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"points":           []map[string]any{{"payload": map[string]any{"location": "Kandy"}}},
				"next_page_offset": nil,
			},
		}))
	}))
	defer srv.Close()

	c := qdrant.New(srv.URL, "")
	payloads, err := c.Scroll(context.Background(), "courses", 256)
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "Colombo", payloads[0]["location"])
	assert.Equal(t, "Kandy", payloads[1]["location"])
	assert.Equal(t, 2, page)
}

func TestClient_UpsertPoints(t *testing.T) {
	t.Parallel()

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		c := qdrant.New("http://localhost:0", "")
		err := c.UpsertPoints(context.Background(), "courses", [][]float32{{0.1}}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("upsert with ids", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			var body struct {
				Points []map[string]any `json:"points"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Points, 1)
			assert.Equal(t, "id-1", body.Points[0]["id"])
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := qdrant.New(srv.URL, "")
		err := c.UpsertPoints(context.Background(), "courses",
			[][]float32{{0.1, 0.2}},
			[]map[string]any{{"course": "BSc Software Engineering"}},
			[]any{"id-1"})
		assert.NoError(t, err)
	})
}
