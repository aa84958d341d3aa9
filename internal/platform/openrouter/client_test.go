package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  Tomato Soup\n6 ripe tomatoes  "}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")

	text, err := client.ExtractText(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup\n6 ripe tomatoes", text)

	assert.Equal(t, "test-model", gotBody["model"])

	// Raw base64 input is wrapped in a data URL for the model.
	messages := gotBody["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	imagePart := content[1].(map[string]interface{})["image_url"].(map[string]interface{})
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", imagePart["url"])
}

func TestExtractTextKeepsDataURL(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"content":"text"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")

	_, err := client.ExtractText(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	messages := gotBody["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	imagePart := content[1].(map[string]interface{})["image_url"].(map[string]interface{})
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", imagePart["url"])
}

func TestExtractTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")

	_, err := client.ExtractText(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestExtractTextNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")

	_, err := client.ExtractText(context.Background(), "aGVsbG8=")
	assert.Error(t, err)
}
