package recommend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/showsync/showsync/pkg/show"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Candidate
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `[{"title": "Foo Returns", "reason": "same writers"}]`,
			want:    []Candidate{{Title: "Foo Returns", Reason: "same writers"}},
		},
		{
			name: "fenced array",
			content: "```json\n" + `[{"title": "Foo Returns", "reason": "same writers"}, {"title": "Bar", "reason": "slow burn"}]` + "\n```",
			want: []Candidate{
				{Title: "Foo Returns", Reason: "same writers"},
				{Title: "Bar", Reason: "slow burn"},
			},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []Candidate{},
		},
		{
			name:    "blank titles dropped",
			content: `[{"title": "  ", "reason": "?"}, {"title": "Bar", "reason": "slow burn"}]`,
			want:    []Candidate{{Title: "Bar", Reason: "slow burn"}},
		},
		{
			name:    "not json",
			content: "here are some shows you might like",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCandidates(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommend(t *testing.T) {
	t.Run("sends profile and parses completion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sekret", r.Header.Get("Authorization"))

			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			var req map[string]any
			require.NoError(t, json.Unmarshal(b, &req))
			assert.Equal(t, DefaultModel, req["model"])

			messages := req["messages"].([]any)
			require.Len(t, messages, 2)
			user := messages[1].(map[string]any)
			assert.Contains(t, user["content"], "Dark")

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{
						"role":    "assistant",
						"content": `[{"title": "Foo Returns", "reason": "same vibe"}]`,
					}},
				},
			})
		}))
		defer srv.Close()

		client, err := New(srv.URL, "sekret")
		require.NoError(t, err)

		candidates, err := client.Recommend(context.Background(), []TasteEntry{
			{Title: "Dark", Rating: show.RatingExcellent},
		})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Foo Returns", candidates[0].Title)
	})

	t.Run("no choices is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer srv.Close()

		client, err := New(srv.URL, "sekret")
		require.NoError(t, err)

		_, err = client.Recommend(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("requires a url", func(t *testing.T) {
		_, err := New("", "key")
		assert.Error(t, err)
	})
}
