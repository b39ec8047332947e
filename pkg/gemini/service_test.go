package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"ok\"}"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGeminiService("k")
	g.BaseURL = srv.URL

	out, err := g.Generate(context.Background(), GenerateRequest{
		System:      "be brief",
		Prompt:      "hello",
		Temperature: 0.7,
		MaxTokens:   200,
		JSON:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	cfg := got["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.EqualValues(t, 200, cfg["maxOutputTokens"])
	assert.Contains(t, got, "systemInstruction")
}

func TestGenerate_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "quota" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGeminiService("quota")
	g.BaseURL = srv.URL
	_, err := g.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	g.ApiKey = "ok"
	_, err = g.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	assert.EqualError(t, err, "no completion returned")
}
